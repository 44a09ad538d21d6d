// Package stream carries upload progress as server-sent events: typed
// frames of the form "data: {json}\n\n", ending in a final_data or error
// event.
package stream

import (
	"encoding/json"
	"time"
)

type EventType string

const (
	EventConnection         EventType = "connection"
	EventProgress           EventType = "progress"
	EventSectionsDetected   EventType = "sections_detected"
	EventProcessingStart    EventType = "processing_start"
	EventAgentProcessing    EventType = "agent_processing"
	EventProcessingStrategy EventType = "processing_strategy"
	EventComplete           EventType = "complete"
	EventFinalData          EventType = "final_data"
	EventError              EventType = "error"
)

// Done is the payload of the frame that closes a stream. Consumers ignore
// it; the terminal event has already been seen.
const Done = "[DONE]"

type Event struct {
	Type      EventType `json:"type"`
	Progress  int       `json:"progress"`
	Message   string    `json:"message"`
	Timestamp string    `json:"timestamp,omitempty"`

	// final_data
	Data json.RawMessage `json:"data,omitempty"`

	// sections_detected
	Sections []string `json:"sections,omitempty"`
	// agent_processing
	Agent  string `json:"agent,omitempty"`
	Failed bool   `json:"failed,omitempty"`
	// processing_strategy: agent name to input strategy
	Strategy map[string]string `json:"strategy,omitempty"`
	// error
	Error string `json:"error,omitempty"`
}

func NewEvent(t EventType, progress int, message string) Event {
	return Event{Type: t, Progress: progress, Message: message, Timestamp: time.Now().UTC().Format(time.RFC3339)}
}

// Terminal reports whether e ends the stream.
func (e Event) Terminal() bool {
	return e.Type == EventFinalData || e.Type == EventError
}
