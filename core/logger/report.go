package logger

import (
	"encoding/json"
	"net"
	"sort"
	"strconv"
	"time"
)

// Report holds statistics about the rendered payloads.
type Report struct {
	LogEntries int        `json:"log_entries"`
	First      *time.Time `json:"first,omitempty"`
	Last       *time.Time `json:"last,omitempty"`

	// Payloads counts renders per payload identifier.
	Payloads StrCounter `json:"payloads"`
	// Listeners counts renders per LHOST:LPORT.
	Listeners StrCounter `json:"listeners"`
	// Options counts option overrides per payload.
	Options *PathCounter `json:"options"`
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{
		Options: NewPathCounter("payload", "option", "value"),
	}
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	ts := le.Timestamp
	if r.First == nil || ts.Before(*r.First) {
		r.First = &ts
	}
	if r.Last == nil || ts.After(*r.Last) {
		r.Last = &ts
	}

	r.Payloads.Increment(le.Payload)
	r.Listeners.Increment(net.JoinHostPort(le.LHost, strconv.Itoa(le.LPort)))

	if r.Options == nil {
		r.Options = NewPathCounter("payload", "option", "value")
	}
	for name, value := range le.Options {
		r.Options.Increment(le.Payload, name, value)
	}
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Count returns the number of times key was seen.
func (s *StrCounter) Count(key string) int {
	return s.internal[key]
}

// MarshalJSON implements a custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	if s.internal == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts tuples of strings.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// Count returns the number of times the tuple was seen.
func (ctr *PathCounter) Count(vals ...string) int {
	return ctr.internal[toKey(vals...)]
}

// MarshalJSON implements a custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	out := []Count{}
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
