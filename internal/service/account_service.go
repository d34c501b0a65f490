package service

import (
	"context"
	"fmt"
	"time"

	"sales-crm-be/internal/command"
	"sales-crm-be/internal/dto"
	"sales-crm-be/internal/entity"
	"sales-crm-be/internal/pkg/logger"
	"sales-crm-be/internal/store"
	"sales-crm-be/pkg/dashboard"
	"sales-crm-be/pkg/events"
	"sales-crm-be/pkg/ruleengine"
)

const recentActivityLimit = 20

type IAccountService interface {
	GetDashboard(ctx context.Context) (*dto.DashboardResponse, error)
	Execute(ctx context.Context, cmd command.Command) (interface{}, error)
	RecordCall(ctx context.Context, cmd command.RecordCall) (*dto.RecordCallResponse, error)
	CreateLead(ctx context.Context, req store.NewAccount) *entity.Account
}

type accountService struct {
	store     *store.Store
	engine    *ruleengine.Engine
	publisher IPublisherService
	log       logger.ILogger
}

func NewAccountService(
	accountStore *store.Store,
	engine *ruleengine.Engine,
	publisher IPublisherService,
	log logger.ILogger,
) IAccountService {
	return &accountService{
		store:     accountStore,
		engine:    engine,
		publisher: publisher,
		log:       log,
	}
}

// GetDashboard assembles the single read payload: collections, recent
// activities and stats recomputed from the current account set.
func (s *accountService) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	accounts := s.store.Accounts()
	return &dto.DashboardResponse{
		Accounts:   accounts,
		Calls:      s.store.Calls(),
		Activities: s.store.RecentActivities(recentActivityLimit),
		Stats:      dashboard.ComputeStats(accounts),
	}, nil
}

// Execute dispatches a typed dashboard command. The union is closed in
// internal/command, so the default branch is unreachable for parsed input.
func (s *accountService) Execute(ctx context.Context, cmd command.Command) (interface{}, error) {
	switch c := cmd.(type) {
	case command.MoveStage:
		return s.moveStage(ctx, c)
	case command.AddNote:
		return s.addNote(ctx, c)
	case command.GetAccountBrief:
		return s.accountBrief(ctx, c)
	case command.UpdateLikelihood:
		return s.updateLikelihood(ctx, c)
	case command.FlagRisk:
		return s.flagRisk(ctx, c)
	case command.RecordCall:
		return s.RecordCall(ctx, c)
	case command.CreateAccount:
		return s.createAccount(ctx, c)
	default:
		return nil, fmt.Errorf("unhandled command type %T", cmd)
	}
}

func (s *accountService) moveStage(ctx context.Context, cmd command.MoveStage) (*dto.AccountBriefResponse, error) {
	var acc *entity.Account
	var err error
	if cmd.AccountId != nil {
		acc, err = s.store.FindAccountByID(*cmd.AccountId)
	} else {
		acc, err = s.store.FindAccountByCompany(cmd.Company)
	}
	if err != nil {
		return nil, err
	}

	from := acc.Stage
	s.store.UpdateStage(acc, cmd.Stage)
	if from != acc.Stage {
		s.publishEvent(ctx, events.StageChanged, map[string]interface{}{
			"account_id": acc.Id,
			"company":    acc.Company,
			"from":       string(from),
			"to":         string(acc.Stage),
		})
	}
	return briefOf(acc), nil
}

func (s *accountService) addNote(ctx context.Context, cmd command.AddNote) (*dto.AccountBriefResponse, error) {
	acc, err := s.store.FindAccountByCompany(cmd.Company)
	if err != nil {
		return nil, err
	}
	s.store.AppendNote(acc, cmd.Text)
	s.publishEvent(ctx, events.NoteAdded, map[string]interface{}{
		"account_id": acc.Id,
		"company":    acc.Company,
	})
	return briefOf(acc), nil
}

func (s *accountService) accountBrief(ctx context.Context, cmd command.GetAccountBrief) (*dto.AccountBriefResponse, error) {
	acc, err := s.store.FindAccountByCompany(cmd.Company)
	if err != nil {
		return nil, err
	}
	return briefOf(acc), nil
}

func (s *accountService) updateLikelihood(ctx context.Context, cmd command.UpdateLikelihood) (*dto.AccountBriefResponse, error) {
	acc, err := s.store.FindAccountByCompany(cmd.Company)
	if err != nil {
		return nil, err
	}
	s.store.UpdateLikelihood(acc, cmd.Likelihood)
	s.publishEvent(ctx, events.LikelihoodUpdated, map[string]interface{}{
		"account_id": acc.Id,
		"company":    acc.Company,
		"likelihood": acc.Likelihood,
	})
	return briefOf(acc), nil
}

func (s *accountService) flagRisk(ctx context.Context, cmd command.FlagRisk) (*dto.AccountBriefResponse, error) {
	acc, err := s.store.FindAccountByCompany(cmd.Company)
	if err != nil {
		return nil, err
	}
	s.store.FlagAtRisk(acc, cmd.Reason)
	s.publishEvent(ctx, events.RiskFlagged, map[string]interface{}{
		"account_id": acc.Id,
		"company":    acc.Company,
		"reason":     cmd.Reason,
	})
	return briefOf(acc), nil
}

func (s *accountService) createAccount(ctx context.Context, cmd command.CreateAccount) (*dto.AccountIdResponse, error) {
	acc := s.CreateLead(ctx, store.NewAccount{
		Company:   cmd.Company,
		Contact:   cmd.Contact,
		Plan:      cmd.Plan,
		DealValue: cmd.DealValue,
		Industry:  cmd.Industry,
	})
	return &dto.AccountIdResponse{Id: acc.Id}, nil
}

// CreateLead registers a new lead account with the store defaults and
// publishes the creation event. Shared with the voice webhook flow.
func (s *accountService) CreateLead(ctx context.Context, req store.NewAccount) *entity.Account {
	acc := s.store.CreateAccount(req)
	s.publishEvent(ctx, events.AccountCreated, map[string]interface{}{
		"account_id": acc.Id,
		"company":    acc.Company,
	})
	return acc
}

// RecordCall stores the call, derives an effective analysis, runs the rule
// engine and publishes events for everything the rules changed.
func (s *accountService) RecordCall(ctx context.Context, cmd command.RecordCall) (*dto.RecordCallResponse, error) {
	acc, err := s.store.FindAccountByID(cmd.AccountId)
	if err != nil {
		return nil, err
	}

	call, err := s.store.AddCallRecord(store.NewCall{
		AccountId:  cmd.AccountId,
		Date:       cmd.Date,
		Duration:   cmd.Duration,
		Transcript: cmd.Transcript,
		Sentiment:  cmd.Sentiment,
		Outcome:    cmd.Outcome,
	})
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.CallRecorded, map[string]interface{}{
		"account_id": acc.Id,
		"company":    acc.Company,
		"call_id":    call.Id,
		"outcome":    call.Outcome,
	})

	analysis := effectiveAnalysis(cmd.Analysis, cmd.Sentiment)
	if analysis == nil {
		return &dto.RecordCallResponse{CallId: call.Id, AccountId: acc.Id}, nil
	}

	stageBefore := acc.Stage
	atRiskBefore := acc.HasTag(entity.TagAtRisk)
	followUpBefore := acc.NextFollowUp

	s.engine.Apply(acc, call, analysis, time.Now())

	if acc.Stage != stageBefore {
		s.publishEvent(ctx, events.StageChanged, map[string]interface{}{
			"account_id": acc.Id,
			"company":    acc.Company,
			"from":       string(stageBefore),
			"to":         string(acc.Stage),
		})
	}
	if !atRiskBefore && acc.HasTag(entity.TagAtRisk) {
		s.publishEvent(ctx, events.RiskFlagged, map[string]interface{}{
			"account_id": acc.Id,
			"company":    acc.Company,
			"likelihood": acc.Likelihood,
		})
	}
	if followUpChanged(followUpBefore, acc.NextFollowUp) {
		s.publishEvent(ctx, events.FollowUpScheduled, map[string]interface{}{
			"account_id":    acc.Id,
			"company":       acc.Company,
			"contact_email": acc.Contact.Email,
			"follow_up":     acc.NextFollowUp.Format(time.RFC3339),
		})
	}

	return &dto.RecordCallResponse{CallId: call.Id, AccountId: acc.Id}, nil
}

// effectiveAnalysis prefers the explicit analysis; without one, the call's
// embedded sentiment score still feeds the rules. Neither present means no
// rule applies.
func effectiveAnalysis(analysis *entity.CallAnalysis, sentiment *entity.CallSentiment) *entity.CallAnalysis {
	if analysis != nil {
		return analysis
	}
	if sentiment == nil || sentiment.Score == 0 {
		return nil
	}
	score := sentiment.Score
	return &entity.CallAnalysis{
		OverallSentiment: &score,
		Summary:          sentiment.Summary,
	}
}

func followUpChanged(before, after *time.Time) bool {
	if after == nil {
		return false
	}
	return before == nil || !before.Equal(*after)
}

func briefOf(acc *entity.Account) *dto.AccountBriefResponse {
	notes := acc.Notes
	if len(notes) > 3 {
		notes = notes[len(notes)-3:]
	}
	return &dto.AccountBriefResponse{
		Id:              acc.Id,
		Company:         acc.Company,
		Contact:         acc.Contact,
		Stage:           acc.Stage,
		DealValue:       acc.DealValue,
		Likelihood:      acc.Likelihood,
		Tags:            acc.Tags,
		LastContactDate: acc.LastContactDate,
		NextFollowUp:    acc.NextFollowUp,
		RecentNotes:     notes,
	}
}

// publishEvent logs and moves on when the bus is unavailable; events are
// auxiliary and must never fail a mutation.
func (s *accountService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.log.Warn("AccountService", "Failed to publish event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}
