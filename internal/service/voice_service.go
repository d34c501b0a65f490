package service

import (
	"context"
	"time"

	"sales-crm-be/internal/command"
	"sales-crm-be/internal/dto"
	"sales-crm-be/internal/entity"
	"sales-crm-be/internal/pkg/logger"
	"sales-crm-be/internal/store"
	"sales-crm-be/pkg/analysis"
)

const eventCallCompleted = "call.completed"

type IVoiceService interface {
	HandleWebhook(ctx context.Context, req *dto.VoiceWebhookRequest) (*dto.VoiceWebhookResponse, error)
}

type voiceService struct {
	store    *store.Store
	accounts IAccountService
	analyzer *analysis.Analyzer
	log      logger.ILogger
}

func NewVoiceService(
	crmStore *store.Store,
	accounts IAccountService,
	analyzer *analysis.Analyzer,
	log logger.ILogger,
) IVoiceService {
	return &voiceService{
		store:    crmStore,
		accounts: accounts,
		analyzer: analyzer,
		log:      log,
	}
}

// HandleWebhook ingests a provider call event. Completed calls are matched to
// an account by transcript (or registered as a new lead), analyzed, and fed
// through the standard record-call flow. Other lifecycle events are
// acknowledged without effect.
func (s *voiceService) HandleWebhook(ctx context.Context, req *dto.VoiceWebhookRequest) (*dto.VoiceWebhookResponse, error) {
	if req.Event != eventCallCompleted {
		s.log.Debug("VoiceService", "Ignoring voice event", map[string]interface{}{
			"event":    req.Event,
			"call_sid": req.CallSid,
		})
		return &dto.VoiceWebhookResponse{Handled: false}, nil
	}

	acc, newAccount := s.resolveAccount(ctx, req.Transcript)

	outcome := req.Outcome
	if outcome == "" {
		outcome = "completed"
	}

	callDate := req.Timestamp
	if callDate.IsZero() {
		callDate = time.Now()
	}

	callAnalysis := s.analyzer.AnalyzeCall(ctx, req.Transcript, outcome)

	_, err := s.accounts.RecordCall(ctx, command.RecordCall{
		AccountId:  acc.Id,
		Date:       callDate,
		Duration:   req.Duration,
		Transcript: req.Transcript,
		Outcome:    outcome,
		Analysis:   callAnalysis,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("VoiceService", "Voice call processed", map[string]interface{}{
		"call_sid":    req.CallSid,
		"account_id":  acc.Id,
		"company":     acc.Company,
		"new_account": newAccount,
	})

	return &dto.VoiceWebhookResponse{
		Handled:    true,
		AccountId:  acc.Id,
		Company:    acc.Company,
		NewAccount: newAccount,
	}, nil
}

// resolveAccount matches the transcript against known companies and contacts;
// on a miss it extracts lead details and registers a fresh lead account.
func (s *voiceService) resolveAccount(ctx context.Context, transcript string) (*entity.Account, bool) {
	if acc := s.store.MatchAccountByText(transcript); acc != nil {
		return acc, false
	}

	lead := s.analyzer.ExtractLead(ctx, transcript)
	acc := s.accounts.CreateLead(ctx, store.NewAccount{
		Company: lead.Company,
		Contact: entity.Contact{
			Name: lead.ContactName,
			Role: lead.ContactRole,
		},
		Industry: lead.Industry,
	})
	return acc, true
}
