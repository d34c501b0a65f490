package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"sales-crm-be/internal/entity"
	"sales-crm-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// NotFoundError identifies the lookup that failed so the handler can surface
// it as a 404.
type NotFoundError struct {
	Resource string
	Query    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %q", e.Resource, e.Query)
}

// NewAccount carries the lead fields for account creation. Everything else
// (stage, likelihood, tags, follow-up) is defaulted by the store.
type NewAccount struct {
	Company   string
	Contact   entity.Contact
	Plan      entity.Plan
	DealValue float64
	Industry  string
}

// NewCall carries the fields for recording a completed call.
type NewCall struct {
	AccountId  uuid.UUID
	Date       time.Time
	Duration   int
	Transcript string
	Sentiment  *entity.CallSentiment
	Outcome    string
}

// Store is the authoritative in-memory state for accounts, calls and
// activities, persisted as a single JSON snapshot that is rewritten wholesale
// on every mutation. A mutex serializes mutations within the process; there is
// no per-record versioning, so concurrent writers to the same account are
// last-write-wins.
type Store struct {
	mu         sync.Mutex
	accounts   []*entity.Account
	calls      []*entity.CallRecord
	activities []*entity.Activity

	snapshotPath string
	log          logger.ILogger
	now          func() time.Time
}

// New creates a store bound to the given snapshot path. Call Load before use.
func New(snapshotPath string, log logger.ILogger) *Store {
	return &Store{
		snapshotPath: snapshotPath,
		log:          log,
		now:          time.Now,
	}
}

// CreateAccount registers a new lead account with the store defaults:
// stage lead, likelihood 25, tag "inbound" and a follow-up in 3 days.
func (s *Store) CreateAccount(req NewAccount) *entity.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	followUp := dateOnly(now.AddDate(0, 0, 3))
	acc := &entity.Account{
		Id:              uuid.New(),
		Company:         req.Company,
		Contact:         req.Contact,
		Plan:            req.Plan,
		Stage:           entity.StageLead,
		DealValue:       req.DealValue,
		Likelihood:      25,
		Industry:        req.Industry,
		Notes:           []string{},
		Tags:            []string{entity.TagInbound},
		LastContactDate: now,
		NextFollowUp:    &followUp,
		CreatedAt:       now,
	}
	s.accounts = append(s.accounts, acc)
	s.appendActivity(acc.Id, entity.ActivityNote, fmt.Sprintf("New lead created: %s", acc.Company))
	s.persist()
	return acc
}

// UpdateStage moves the account to the target stage. Calling it with the
// current stage is a no-op: no activity is appended and nothing is persisted.
func (s *Store) UpdateStage(acc *entity.Account, to entity.Stage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if acc.Stage == to {
		return
	}
	from := acc.Stage
	acc.Stage = to
	s.touch(acc)
	s.appendActivity(acc.Id, entity.ActivityStageChange, fmt.Sprintf("%s: %s → %s", acc.Company, from, to))
	s.persist()
}

// UpdateLikelihood writes the clamped likelihood back to the account.
func (s *Store) UpdateLikelihood(acc *entity.Account, likelihood int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc.Likelihood = entity.ClampLikelihood(likelihood)
	s.touch(acc)
	s.appendActivity(acc.Id, entity.ActivityNote, fmt.Sprintf("%s: likelihood set to %d%%", acc.Company, acc.Likelihood))
	s.persist()
}

// AppendNote pushes a note onto the account's append-only note list.
func (s *Store) AppendNote(acc *entity.Account, note string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc.Notes = append(acc.Notes, note)
	s.touch(acc)
	s.appendActivity(acc.Id, entity.ActivityNote, fmt.Sprintf("Note added to %s", acc.Company))
	s.persist()
}

// AddCallRecord stores an immutable call record and refreshes the account's
// last contact date.
func (s *Store) AddCallRecord(req NewCall) (*entity.CallRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc := s.findByID(req.AccountId)
	if acc == nil {
		return nil, &NotFoundError{Resource: "account", Query: req.AccountId.String()}
	}

	call := &entity.CallRecord{
		Id:         uuid.New(),
		AccountId:  req.AccountId,
		Date:       req.Date,
		Duration:   req.Duration,
		Transcript: req.Transcript,
		Sentiment:  req.Sentiment,
		Outcome:    req.Outcome,
		CreatedAt:  s.now(),
	}
	s.calls = append(s.calls, call)
	acc.LastContactDate = req.Date
	s.touch(acc)
	s.appendActivity(acc.Id, entity.ActivityCall, fmt.Sprintf("Call with %s (%ds): %s", acc.Company, call.Duration, call.Outcome))
	s.persist()
	return call, nil
}

// FlagAtRisk adds the at-risk tag if absent and always appends an explanatory
// note. Tagging is idempotent; repeated notes for the same reason are kept as
// an audit trail.
func (s *Store) FlagAtRisk(acc *entity.Account, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc.AddTag(entity.TagAtRisk)
	acc.Notes = append(acc.Notes, fmt.Sprintf("At risk: %s", reason))
	s.touch(acc)
	s.appendActivity(acc.Id, entity.ActivityNote, fmt.Sprintf("%s flagged at risk: %s", acc.Company, reason))
	s.persist()
}

// AddTags adds each tag with set semantics.
func (s *Store) AddTags(acc *entity.Account, tags ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for _, tag := range tags {
		if !acc.HasTag(tag) {
			acc.AddTag(tag)
			changed = true
		}
	}
	if changed {
		s.touch(acc)
		s.persist()
	}
}

// RemoveTags removes each tag; removing an absent tag is a no-op.
func (s *Store) RemoveTags(acc *entity.Account, tags ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for _, tag := range tags {
		if acc.HasTag(tag) {
			acc.RemoveTag(tag)
			changed = true
		}
	}
	if changed {
		s.touch(acc)
		s.persist()
	}
}

// SetFollowUp schedules the next follow-up at date-only precision.
func (s *Store) SetFollowUp(acc *entity.Account, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := dateOnly(at)
	acc.NextFollowUp = &d
	s.touch(acc)
	s.persist()
}

// Accounts returns the current account set.
func (s *Store) Accounts() []*entity.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Calls returns all recorded calls.
func (s *Store) Calls() []*entity.CallRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.CallRecord, len(s.calls))
	copy(out, s.calls)
	return out
}

// RecentActivities returns up to n activities, newest first.
func (s *Store) RecentActivities(n int) []*entity.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n > len(s.activities) {
		n = len(s.activities)
	}
	out := make([]*entity.Activity, 0, n)
	for i := len(s.activities) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.activities[i])
	}
	return out
}

// FindAccountByID resolves an account by id.
func (s *Store) FindAccountByID(id uuid.UUID) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if acc := s.findByID(id); acc != nil {
		return acc, nil
	}
	return nil, &NotFoundError{Resource: "account", Query: id.String()}
}

// FindAccountByCompany resolves an account by company name, preferring an
// exact case-insensitive match over a substring match.
func (s *Store) FindAccountByCompany(company string) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(company))
	for _, acc := range s.accounts {
		if strings.ToLower(acc.Company) == q {
			return acc, nil
		}
	}
	for _, acc := range s.accounts {
		if strings.Contains(strings.ToLower(acc.Company), q) {
			return acc, nil
		}
	}
	return nil, &NotFoundError{Resource: "account", Query: company}
}

// MatchAccountByText resolves the account whose company or contact name
// appears in the given text (used by the voice webhook to match transcripts).
func (s *Store) MatchAccountByText(text string) *entity.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	lower := strings.ToLower(text)
	for _, acc := range s.accounts {
		if acc.Company != "" && strings.Contains(lower, strings.ToLower(acc.Company)) {
			return acc
		}
		if acc.Contact.Name != "" && strings.Contains(lower, strings.ToLower(acc.Contact.Name)) {
			return acc
		}
	}
	return nil
}

func (s *Store) findByID(id uuid.UUID) *entity.Account {
	for _, acc := range s.accounts {
		if acc.Id == id {
			return acc
		}
	}
	return nil
}

func (s *Store) appendActivity(accountId uuid.UUID, typ entity.ActivityType, message string) {
	s.activities = append(s.activities, &entity.Activity{
		Id:        uuid.New(),
		AccountId: accountId,
		Type:      typ,
		Message:   message,
		Timestamp: s.now(),
	})
}

func (s *Store) touch(acc *entity.Account) {
	now := s.now()
	acc.UpdatedAt = &now
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
