package entity

import (
	"time"

	"github.com/google/uuid"
)

type ActivityType string

const (
	ActivityCall        ActivityType = "call"
	ActivityEmail       ActivityType = "email"
	ActivityNote        ActivityType = "note"
	ActivityStageChange ActivityType = "stage_change"
	ActivityMeeting     ActivityType = "meeting"
)

// Activity is an append-only audit log entry created as a side effect of
// every store mutation. Never updated or deleted.
type Activity struct {
	Id        uuid.UUID    `json:"id"`
	AccountId uuid.UUID    `json:"account_id"`
	Type      ActivityType `json:"type"`
	Message   string       `json:"message"`
	Timestamp time.Time    `json:"timestamp"`
}
