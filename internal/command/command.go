package command

import (
	"time"

	"sales-crm-be/internal/entity"

	"github.com/google/uuid"
)

// Command is the closed set of dashboard mutations. Every action and its
// parameter shape is a concrete type, so dispatch is an exhaustive type
// switch instead of a string branch with a runtime fallback.
type Command interface {
	isCommand()
}

// MoveStage moves an account (resolved by id or company name) to the target
// stage.
type MoveStage struct {
	AccountId *uuid.UUID
	Company   string
	Stage     entity.Stage
}

// AddNote appends a note to the account resolved by company name.
type AddNote struct {
	Company string
	Text    string
}

// GetAccountBrief fetches a summary of the account resolved by company name.
type GetAccountBrief struct {
	Company string
}

// UpdateLikelihood sets the close likelihood of the account resolved by
// company name.
type UpdateLikelihood struct {
	Company    string
	Likelihood int
}

// FlagRisk marks the account resolved by company name as at risk.
type FlagRisk struct {
	Company string
	Reason  string
}

// RecordCall stores a completed call and runs the post-call rule engine.
type RecordCall struct {
	AccountId  uuid.UUID
	Date       time.Time
	Duration   int
	Transcript string
	Sentiment  *entity.CallSentiment
	Outcome    string
	Analysis   *entity.CallAnalysis
}

// CreateAccount registers a new lead account.
type CreateAccount struct {
	Company   string
	Contact   entity.Contact
	Plan      entity.Plan
	DealValue float64
	Industry  string
}

func (MoveStage) isCommand()        {}
func (AddNote) isCommand()          {}
func (GetAccountBrief) isCommand()  {}
func (UpdateLikelihood) isCommand() {}
func (FlagRisk) isCommand()         {}
func (RecordCall) isCommand()       {}
func (CreateAccount) isCommand()    {}
