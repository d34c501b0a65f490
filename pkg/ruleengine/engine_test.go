package ruleengine

import (
	"path/filepath"
	"testing"
	"time"

	"sales-crm-be/internal/entity"
	"sales-crm-be/internal/pkg/logger"
	"sales-crm-be/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func newTestEngine(t *testing.T) (*Engine, *store.Store) {
	t.Helper()
	s := store.New(filepath.Join(t.TempDir(), "crm.json"), logger.NewNopLogger())
	require.NoError(t, s.Load())
	return New(s, logger.NewNopLogger()), s
}

func setupAccount(t *testing.T, s *store.Store, stage entity.Stage, likelihood int) *entity.Account {
	t.Helper()
	acc := s.CreateAccount(store.NewAccount{Company: "Testco"})
	acc.Stage = stage
	acc.Likelihood = likelihood
	acc.Tags = []string{}
	acc.Notes = []string{}
	return acc
}

func TestApplyNegativeCall(t *testing.T) {
	e, s := newTestEngine(t)
	acc := setupAccount(t, s, entity.StageProposal, 50)
	call := &entity.CallRecord{Outcome: "prospect unhappy with pricing"}
	analysis := &entity.CallAnalysis{
		OverallSentiment:  intPtr(2),
		LikelihoodToClose: intPtr(40),
		Summary:           "Call went poorly; pricing is a sticking point.",
	}

	e.Apply(acc, call, analysis, time.Now())

	// round(50*0.3 + 40*0.7) = 43
	assert.Equal(t, 43, acc.Likelihood)
	assert.Equal(t, entity.StageDiscovery, acc.Stage, "low sentiment regresses one stage")
	assert.True(t, acc.HasTag(entity.TagAtRisk))
	assert.Contains(t, acc.Notes, "At risk: call sentiment 2/10, outcome: prospect unhappy with pricing")
	assert.Contains(t, acc.Notes, "Call went poorly; pricing is a sticking point.")
}

func TestApplyPositiveCall(t *testing.T) {
	e, s := newTestEngine(t)
	acc := setupAccount(t, s, entity.StageDiscovery, 60)
	now := time.Date(2026, 8, 10, 14, 0, 0, 0, time.UTC)
	analysis := &entity.CallAnalysis{
		OverallSentiment:  intPtr(9),
		LikelihoodToClose: intPtr(80),
		NextSteps:         []string{"Send contract draft", "Book demo with eng team"},
		Summary:           "Very strong call.",
	}

	e.Apply(acc, &entity.CallRecord{}, analysis, now)

	// round(60*0.3 + 80*0.7) = 74
	assert.Equal(t, 74, acc.Likelihood)
	assert.Equal(t, entity.StageProposal, acc.Stage, "high sentiment advances one stage")
	assert.True(t, acc.HasTag(entity.TagEngaged))
	assert.True(t, acc.HasTag(entity.TagHighPriority))
	assert.False(t, acc.HasTag(entity.TagAtRisk))

	// sentiment >= 7 books the follow-up 2 days out, at date precision
	require.NotNil(t, acc.NextFollowUp)
	assert.Equal(t, time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC), *acc.NextFollowUp)

	assert.Contains(t, acc.Notes, "Very strong call. Next steps: Send contract draft; Book demo with eng team")
}

func TestApplyEngagedClearsAtRisk(t *testing.T) {
	e, s := newTestEngine(t)
	acc := setupAccount(t, s, entity.StageNegotiation, 55)
	acc.Tags = []string{entity.TagAtRisk}

	e.Apply(acc, &entity.CallRecord{}, &entity.CallAnalysis{OverallSentiment: intPtr(8)}, time.Now())

	assert.False(t, acc.HasTag(entity.TagAtRisk), "a great call clears the at-risk tag")
	assert.True(t, acc.HasTag(entity.TagEngaged))
	assert.Equal(t, entity.StageNegotiation, acc.Stage, "negotiation is the last working stage; no advance")
}

func TestApplyPainPointKeywordTags(t *testing.T) {
	e, s := newTestEngine(t)
	acc := setupAccount(t, s, entity.StageDiscovery, 50)
	analysis := &entity.CallAnalysis{
		OverallSentiment: intPtr(5),
		PainPoints: []string{
			"Worried about the total COST of migration",
			"Needs security signoff from compliance",
		},
	}

	e.Apply(acc, &entity.CallRecord{}, analysis, time.Now())

	assert.True(t, acc.HasTag(entity.TagBudgetConcern))
	assert.True(t, acc.HasTag(entity.TagComplianceBlocker))
	assert.False(t, acc.HasTag(entity.TagUrgentTimeline))
	assert.Equal(t, entity.StageDiscovery, acc.Stage, "neutral sentiment leaves the stage alone")
}

func TestApplyLowLikelihoodFlagsRisk(t *testing.T) {
	e, s := newTestEngine(t)
	acc := setupAccount(t, s, entity.StageDiscovery, 20)
	analysis := &entity.CallAnalysis{
		OverallSentiment:  intPtr(5),
		LikelihoodToClose: intPtr(20),
	}

	e.Apply(acc, &entity.CallRecord{}, analysis, time.Now())

	// round(20*0.3 + 20*0.7) = 20, below the 30 threshold
	assert.Equal(t, 20, acc.Likelihood)
	assert.True(t, acc.HasTag(entity.TagAtRisk))
	assert.Contains(t, acc.Notes, "At risk: likelihood dropped to 20%")
}

func TestApplyNilAnalysisIsNoOp(t *testing.T) {
	e, s := newTestEngine(t)
	acc := setupAccount(t, s, entity.StageProposal, 50)

	e.Apply(acc, &entity.CallRecord{}, nil, time.Now())

	assert.Equal(t, entity.StageProposal, acc.Stage)
	assert.Equal(t, 50, acc.Likelihood)
	assert.Empty(t, acc.Tags)
	assert.Empty(t, acc.Notes)
}

func TestApplyTerminalStageIsNoOp(t *testing.T) {
	e, s := newTestEngine(t)
	acc := setupAccount(t, s, entity.StageClosedWon, 100)
	analysis := &entity.CallAnalysis{
		OverallSentiment:  intPtr(2),
		LikelihoodToClose: intPtr(10),
		Summary:           "should never be applied",
	}

	e.Apply(acc, &entity.CallRecord{}, analysis, time.Now())

	assert.Equal(t, entity.StageClosedWon, acc.Stage)
	assert.Equal(t, 100, acc.Likelihood)
	assert.Empty(t, acc.Notes)
}

func TestApplyLeadNegativeCallStaysLead(t *testing.T) {
	e, s := newTestEngine(t)
	acc := setupAccount(t, s, entity.StageLead, 30)

	e.Apply(acc, &entity.CallRecord{Outcome: "hung up"}, &entity.CallAnalysis{OverallSentiment: intPtr(1)}, time.Now())

	assert.Equal(t, entity.StageLead, acc.Stage, "lead is the first working stage; no regress below it")
	assert.True(t, acc.HasTag(entity.TagAtRisk), "the risk flag still applies")
}
