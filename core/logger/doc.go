// Package logger records rendered payloads as newline delimited JSON and
// summarizes the resulting history.
package logger
