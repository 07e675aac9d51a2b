// Package events carries search progress to SSE subscribers.
package events

import (
	"encoding/json"
	"time"
)

// Event types published during a combined search.
const (
	TypeSearchStarted = "search_started"
	TypeSourceDone    = "source_done"
	TypeSearchDone    = "search_done"
)

// Version of the event envelope.
const Version = 1

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// SearchStarted is the payload of TypeSearchStarted.
type SearchStarted struct {
	Keywords string   `json:"keywords,omitempty"`
	Location string   `json:"location,omitempty"`
	Sources  []string `json:"sources"`
}

// SearchDone is the payload of TypeSearchDone.
type SearchDone struct {
	Jobs       int   `json:"jobs"`
	Matched    int   `json:"matched"`
	Failed     int   `json:"failed"`
	DurationMS int64 `json:"durationMs"`
}

// MakeEvent renders one event as a JSON line ready for the SSE stream.
func MakeEvent(reqID, typ string, data any) string {
	var raw json.RawMessage
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			raw = b
		}
	}
	b, _ := json.Marshal(Event{
		Type:      typ,
		Version:   Version,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	})
	return string(b)
}
