package entity

import (
	"time"

	"github.com/google/uuid"
)

// CallSentiment is the structured score embedded in a call record.
type CallSentiment struct {
	Score        int      `json:"score"`        // 1-10
	Satisfaction int      `json:"satisfaction"` // 1-10
	Summary      string   `json:"summary"`
	Tags         []string `json:"tags"`
}

// CallRecord is an immutable log of a completed call against an account.
type CallRecord struct {
	Id         uuid.UUID      `json:"id"`
	AccountId  uuid.UUID      `json:"account_id"`
	Date       time.Time      `json:"date"`
	Duration   int            `json:"duration"` // seconds, non-negative
	Transcript string         `json:"transcript"`
	Sentiment  *CallSentiment `json:"sentiment"`
	Outcome    string         `json:"outcome"`
	CreatedAt  time.Time      `json:"created_at"`
}
