package events

import "time"

// CRM event types published on every store mutation.
const (
	AccountCreated    = "ACCOUNT_CREATED"
	StageChanged      = "STAGE_CHANGED"
	CallRecorded      = "CALL_RECORDED"
	RiskFlagged       = "RISK_FLAGGED"
	FollowUpScheduled = "FOLLOW_UP_SCHEDULED"
	NoteAdded         = "NOTE_ADDED"
	LikelihoodUpdated = "LIKELIHOOD_UPDATED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "STAGE_CHANGED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic Event implementation used across the CRM.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
