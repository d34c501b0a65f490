package dto

import (
	"time"

	"sales-crm-be/internal/entity"

	"github.com/google/uuid"
)

// ActionEnvelope carries the action discriminator; the action-specific
// payload is decoded in a second pass.
type ActionEnvelope struct {
	Action string `json:"action" validate:"required"`
}

type MoveStageRequest struct {
	AccountId string `json:"account_id"`
	Company   string `json:"company"`
	Stage     string `json:"stage" validate:"required"`
}

type AddNoteRequest struct {
	Company string `json:"company" validate:"required"`
	Text    string `json:"text" validate:"required"`
}

type AccountBriefRequest struct {
	Company string `json:"company" validate:"required"`
}

type UpdateLikelihoodRequest struct {
	Company    string `json:"company" validate:"required"`
	Likelihood int    `json:"likelihood" validate:"min=0,max=100"`
}

type FlagRiskRequest struct {
	Company string `json:"company" validate:"required"`
	Reason  string `json:"reason" validate:"required"`
}

type CallAnalysisPayload struct {
	OverallSentiment  *int     `json:"overall_sentiment" validate:"omitempty,min=1,max=10"`
	LikelihoodToClose *int     `json:"likelihood_to_close" validate:"omitempty,min=0,max=100"`
	PainPoints        []string `json:"pain_points"`
	NextSteps         []string `json:"next_steps"`
	Summary           string   `json:"summary"`
}

type CallSentimentPayload struct {
	Score        int      `json:"score" validate:"min=1,max=10"`
	Satisfaction int      `json:"satisfaction" validate:"min=1,max=10"`
	Summary      string   `json:"summary"`
	Tags         []string `json:"tags"`
}

type RecordCallRequest struct {
	AccountId  string                `json:"account_id" validate:"required,uuid"`
	Date       time.Time             `json:"date" validate:"required"`
	Duration   int                   `json:"duration" validate:"min=0"`
	Transcript string                `json:"transcript"`
	Sentiment  *CallSentimentPayload `json:"sentiment"`
	Outcome    string                `json:"outcome"`
	Analysis   *CallAnalysisPayload  `json:"analysis"`
}

type CreateAccountRequest struct {
	Company      string  `json:"company" validate:"required"`
	ContactName  string  `json:"contact_name" validate:"required"`
	ContactRole  string  `json:"contact_role"`
	ContactEmail string  `json:"contact_email" validate:"omitempty,email"`
	Plan         string  `json:"plan" validate:"omitempty,oneof=free team enterprise"`
	DealValue    float64 `json:"deal_value" validate:"min=0"`
	Industry     string  `json:"industry"`
}

type AccountBriefResponse struct {
	Id              uuid.UUID      `json:"id"`
	Company         string         `json:"company"`
	Contact         entity.Contact `json:"contact"`
	Stage           entity.Stage   `json:"stage"`
	DealValue       float64        `json:"deal_value"`
	Likelihood      int            `json:"likelihood"`
	Tags            []string       `json:"tags"`
	LastContactDate time.Time      `json:"last_contact_date"`
	NextFollowUp    *time.Time     `json:"next_follow_up"`
	RecentNotes     []string       `json:"recent_notes"`
}

type AccountIdResponse struct {
	Id uuid.UUID `json:"id"`
}

type RecordCallResponse struct {
	CallId    uuid.UUID `json:"call_id"`
	AccountId uuid.UUID `json:"account_id"`
}
