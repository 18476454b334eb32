// ABOUTME: Event types emitted by the engine over its event channel
// ABOUTME: Each command yields zero or more progress events then one terminal event
package models

// EventType identifies the kind of engine event.
type EventType string

const (
	// EventProgress is an advisory, ordered status update. Consumers may
	// ignore it without affecting correctness.
	EventProgress EventType = "PROGRESS"
	// EventWorkerReady is the terminal event of a successful initialize.
	EventWorkerReady EventType = "WORKER_READY"
	// EventDoneProcessing is the terminal event of a successful document
	// processing run, emitted even when zero chunks qualified.
	EventDoneProcessing EventType = "DONE_PROCESSING"
	// EventAnswer is the terminal event of a successful query.
	EventAnswer EventType = "ANSWER"
	// EventContextCleared is the terminal event of a successful context clear.
	EventContextCleared EventType = "CONTEXT_CLEARED"
	// EventError is the terminal event of any failed command.
	EventError EventType = "ERROR"
)

// Event is one notification from the engine. Exactly one terminal event
// (anything other than PROGRESS) closes each command's event stream.
type Event struct {
	Type    EventType `json:"type"`
	Message string    `json:"message,omitempty"`
	// Answer carries the generated answer text for EventAnswer.
	Answer string `json:"answer,omitempty"`
	// Stored carries the number of chunks persisted for EventDoneProcessing.
	Stored int `json:"stored,omitempty"`
	// Err carries the failure for EventError. The engine never sends a
	// terminal error event without it.
	Err error `json:"-"`
}

// Terminal reports whether the event ends its command's stream.
func (e Event) Terminal() bool {
	return e.Type != EventProgress
}
