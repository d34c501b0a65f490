package dto

import (
	"time"

	"github.com/google/uuid"
)

// VoiceWebhookRequest is the call-lifecycle event posted by the voice
// provider. Only completed-call events mutate the CRM.
type VoiceWebhookRequest struct {
	Event      string    `json:"event" validate:"required"` // call.started | call.completed | call.failed
	CallSid    string    `json:"call_sid"`
	Timestamp  time.Time `json:"timestamp"`
	Duration   int       `json:"duration" validate:"min=0"`
	Transcript string    `json:"transcript"`
	Outcome    string    `json:"outcome"`
}

type VoiceWebhookResponse struct {
	Handled    bool      `json:"handled"`
	AccountId  uuid.UUID `json:"account_id,omitempty"`
	Company    string    `json:"company,omitempty"`
	NewAccount bool      `json:"new_account"`
}
