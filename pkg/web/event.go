// Package web provides an HTTP server streaming verification progress to a browser with SSE.
package web

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the type of event being streamed.
type EventType string

// event type constants for SSE streaming.
const (
	EventTypeOutput EventType = "output" // regular output line
	EventTypePass   EventType = "pass"   // passed check
	EventTypeFail   EventType = "fail"   // failed check or error
	EventTypeRun    EventType = "run"    // run started or finished
)

// Event represents a single event to be streamed to web clients.
type Event struct {
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id,omitempty"`
	Target    string    `json:"target,omitempty"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NewOutputEvent creates an output event with current timestamp.
func NewOutputEvent(target, text string) Event {
	return Event{Type: EventTypeOutput, Target: target, Text: text, Timestamp: time.Now()}
}

// NewPassEvent creates a passed check event.
func NewPassEvent(target, text string) Event {
	return Event{Type: EventTypePass, Target: target, Text: text, Timestamp: time.Now()}
}

// NewFailEvent creates a failed check event.
func NewFailEvent(target, text string) Event {
	return Event{Type: EventTypeFail, Target: target, Text: text, Timestamp: time.Now()}
}

// NewRunEvent creates a run boundary event, not bound to a target.
func NewRunEvent(runID, text string) Event {
	return Event{Type: EventTypeRun, RunID: runID, Text: text, Timestamp: time.Now()}
}

// JSON returns the event as JSON bytes for SSE streaming.
func (e Event) JSON() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}
