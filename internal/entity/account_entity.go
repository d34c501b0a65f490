package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Plan is the subscription tier of the prospect's company.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanTeam       Plan = "team"
	PlanEnterprise Plan = "enterprise"
)

type Contact struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

// Account is a deal in the sales pipeline. Notes are append-only and Tags
// behave as a set (no duplicates). Likelihood is always kept in [0,100].
type Account struct {
	Id              uuid.UUID  `json:"id"`
	Company         string     `json:"company"`
	Contact         Contact    `json:"contact"`
	Plan            Plan       `json:"plan"`
	Stage           Stage      `json:"stage"`
	DealValue       float64    `json:"deal_value"`
	Likelihood      int        `json:"likelihood"`
	Industry        string     `json:"industry"`
	Notes           []string   `json:"notes"`
	Tags            []string   `json:"tags"`
	LastContactDate time.Time  `json:"last_contact_date"`
	NextFollowUp    *time.Time `json:"next_follow_up"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

// HasTag reports whether the account carries the given tag.
func (a *Account) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddTag appends the tag if absent. Adding an existing tag is a no-op.
func (a *Account) AddTag(tag string) {
	if !a.HasTag(tag) {
		a.Tags = append(a.Tags, tag)
	}
}

// RemoveTag removes the tag if present. Removing an absent tag is a no-op.
func (a *Account) RemoveTag(tag string) {
	for i, t := range a.Tags {
		if t == tag {
			a.Tags = append(a.Tags[:i], a.Tags[i+1:]...)
			return
		}
	}
}

// Matches reports whether the query matches the company or contact name
// (case-insensitive substring).
func (a *Account) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(a.Company), q) ||
		strings.Contains(strings.ToLower(a.Contact.Name), q)
}

// ClampLikelihood clips v to the valid [0,100] likelihood range.
func ClampLikelihood(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
