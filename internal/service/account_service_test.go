package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"sales-crm-be/internal/command"
	"sales-crm-be/internal/dto"
	"sales-crm-be/internal/entity"
	"sales-crm-be/internal/pkg/logger"
	"sales-crm-be/internal/store"
	"sales-crm-be/pkg/events"
	"sales-crm-be/pkg/ruleengine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	published []events.Event
}

func (p *capturePublisher) Publish(ctx context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

func (p *capturePublisher) types() []string {
	out := make([]string, 0, len(p.published))
	for _, e := range p.published {
		out = append(out, e.EventType())
	}
	return out
}

func newTestAccountService(t *testing.T) (IAccountService, *store.Store, *capturePublisher) {
	t.Helper()
	s := store.New(filepath.Join(t.TempDir(), "crm.json"), logger.NewNopLogger())
	require.NoError(t, s.Load())
	pub := &capturePublisher{}
	engine := ruleengine.New(s, logger.NewNopLogger())
	return NewAccountService(s, engine, pub, logger.NewNopLogger()), s, pub
}

func TestExecuteMoveStage(t *testing.T) {
	svc, _, pub := newTestAccountService(t)

	res, err := svc.Execute(context.Background(), command.MoveStage{
		Company: "Acme Logistics",
		Stage:   entity.StageNegotiation,
	})
	require.NoError(t, err)

	brief := res.(*dto.AccountBriefResponse)
	assert.Equal(t, entity.StageNegotiation, brief.Stage)
	assert.Contains(t, pub.types(), events.StageChanged)
}

func TestExecuteMoveStageNoOpPublishesNothing(t *testing.T) {
	svc, s, pub := newTestAccountService(t)
	acc, err := s.FindAccountByCompany("Acme Logistics")
	require.NoError(t, err)

	_, err = svc.Execute(context.Background(), command.MoveStage{
		Company: "Acme Logistics",
		Stage:   acc.Stage,
	})
	require.NoError(t, err)

	assert.Empty(t, pub.published, "a same-stage move is a no-op")
}

func TestExecuteUnknownCompany(t *testing.T) {
	svc, _, _ := newTestAccountService(t)

	_, err := svc.Execute(context.Background(), command.AddNote{Company: "Nonexistent Inc", Text: "hi"})

	var nf *store.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestRecordCallRunsRules(t *testing.T) {
	svc, s, pub := newTestAccountService(t)
	acc, err := s.FindAccountByCompany("BlueSky Media")
	require.NoError(t, err)
	require.Equal(t, entity.StageDiscovery, acc.Stage)

	sentiment := 9
	likelihood := 80
	_, err = svc.RecordCall(context.Background(), command.RecordCall{
		AccountId:  acc.Id,
		Date:       time.Now(),
		Duration:   600,
		Transcript: "great call",
		Outcome:    "send contract",
		Analysis: &entity.CallAnalysis{
			OverallSentiment:  &sentiment,
			LikelihoodToClose: &likelihood,
			NextSteps:         []string{"send contract"},
			Summary:           "Ready to move forward.",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StageProposal, acc.Stage)
	got := pub.types()
	assert.Contains(t, got, events.CallRecorded)
	assert.Contains(t, got, events.StageChanged)
	assert.Contains(t, got, events.FollowUpScheduled)
}

func TestRecordCallWithoutAnalysisRecordsOnly(t *testing.T) {
	svc, s, pub := newTestAccountService(t)
	acc, err := s.FindAccountByCompany("Ferro Manufacturing")
	require.NoError(t, err)
	stageBefore := acc.Stage

	_, err = svc.RecordCall(context.Background(), command.RecordCall{
		AccountId: acc.Id,
		Date:      time.Now(),
		Outcome:   "voicemail",
	})
	require.NoError(t, err)

	assert.Equal(t, stageBefore, acc.Stage)
	assert.Equal(t, []string{events.CallRecorded}, pub.types())
}

func TestEffectiveAnalysis(t *testing.T) {
	score := 3
	explicit := &entity.CallAnalysis{Summary: "explicit"}

	t.Run("explicit analysis wins", func(t *testing.T) {
		got := effectiveAnalysis(explicit, &entity.CallSentiment{Score: 9})
		assert.Same(t, explicit, got)
	})

	t.Run("embedded sentiment synthesizes one", func(t *testing.T) {
		got := effectiveAnalysis(nil, &entity.CallSentiment{Score: score, Summary: "rough call"})
		require.NotNil(t, got)
		assert.Equal(t, score, *got.OverallSentiment)
		assert.Equal(t, "rough call", got.Summary)
		assert.Nil(t, got.LikelihoodToClose)
	})

	t.Run("nothing present means no rules", func(t *testing.T) {
		assert.Nil(t, effectiveAnalysis(nil, nil))
		assert.Nil(t, effectiveAnalysis(nil, &entity.CallSentiment{}))
	})
}
