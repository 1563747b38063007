package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// LogEntry is a single rendered payload.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Payload   string    `json:"payload"`
	LHost     string    `json:"lhost"`
	LPort     int       `json:"lport"`
	// Options holds the options given on the command line or in the
	// configuration, as KEY=VALUE right hand sides.
	Options map[string]string `json:"options,omitempty"`
}

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// Logger records rendered payloads.
type Logger struct {
	Record LogRecorder
	// Now returns the entry timestamp, defaults to time.Now.
	Now func() time.Time
}

// NewJSONLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJSONLinesLogRecorder(w io.Writer) *Logger {
	return &Logger{
		Record: func(le *LogEntry) error {
			entry, err := json.Marshal(le)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// Rendered records that a payload was generated.
func (l *Logger) Rendered(payload, lhost string, lport int, options map[string]string) error {
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}

	return l.Record(&LogEntry{
		Timestamp: now().UTC(),
		Payload:   payload,
		LHost:     lhost,
		LPort:     lport,
		Options:   options,
	})
}

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}
