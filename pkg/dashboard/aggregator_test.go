package dashboard

import (
	"testing"

	"sales-crm-be/internal/entity"
)

func account(stage entity.Stage, value float64, likelihood int) *entity.Account {
	return &entity.Account{Stage: stage, DealValue: value, Likelihood: likelihood}
}

func TestComputeStats(t *testing.T) {
	accounts := []*entity.Account{
		account(entity.StageLead, 1000, 20),
		account(entity.StageDiscovery, 2000, 50),
		account(entity.StageProposal, 3000, 40),
		account(entity.StageNegotiation, 4000, 80),
		account(entity.StageClosedWon, 5000, 100),
		account(entity.StageClosedLost, 600, 0),
	}

	stats := ComputeStats(accounts)

	if stats.TotalAccounts != 6 {
		t.Errorf("TotalAccounts = %d, want 6", stats.TotalAccounts)
	}
	if stats.ActiveAccounts != 4 {
		t.Errorf("ActiveAccounts = %d, want 4", stats.ActiveAccounts)
	}
	if stats.TotalPipelineValue != 10000 {
		t.Errorf("TotalPipelineValue = %v, want 10000", stats.TotalPipelineValue)
	}
	// 1000*0.2 + 2000*0.5 + 3000*0.4 + 4000*0.8 = 5600
	if stats.WeightedPipelineValue != 5600 {
		t.Errorf("WeightedPipelineValue = %v, want 5600", stats.WeightedPipelineValue)
	}
	// avg deal size is over ALL accounts: 15600 / 6
	if stats.AvgDealSize != 2600 {
		t.Errorf("AvgDealSize = %v, want 2600", stats.AvgDealSize)
	}
	// avg likelihood only over active: (20+50+40+80)/4
	if stats.AvgLikelihood != 47.5 {
		t.Errorf("AvgLikelihood = %v, want 47.5", stats.AvgLikelihood)
	}

	if got := stats.Stages[entity.StageClosedWon]; got.Count != 1 || got.Value != 5000 {
		t.Errorf("closed_won breakdown = %+v, want {1 5000}", got)
	}
	if got := stats.Stages[entity.StageLead]; got.Count != 1 || got.Value != 1000 {
		t.Errorf("lead breakdown = %+v, want {1 1000}", got)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)

	if stats.TotalAccounts != 0 || stats.ActiveAccounts != 0 {
		t.Errorf("expected zero counts, got %+v", stats)
	}
	if stats.AvgDealSize != 0 || stats.AvgLikelihood != 0 || stats.WeightedPipelineValue != 0 {
		t.Errorf("expected zero averages on empty set, got %+v", stats)
	}
	// all six stages are always present, zero-valued
	if len(stats.Stages) != len(entity.AllStages) {
		t.Errorf("expected %d stage entries, got %d", len(entity.AllStages), len(stats.Stages))
	}
	for stage, b := range stats.Stages {
		if b.Count != 0 || b.Value != 0 {
			t.Errorf("stage %q should be zero-valued, got %+v", stage, b)
		}
	}
}

func TestComputeStatsAllClosed(t *testing.T) {
	accounts := []*entity.Account{
		account(entity.StageClosedWon, 5000, 100),
		account(entity.StageClosedLost, 1000, 0),
	}

	stats := ComputeStats(accounts)

	if stats.ActiveAccounts != 0 {
		t.Errorf("ActiveAccounts = %d, want 0", stats.ActiveAccounts)
	}
	if stats.AvgLikelihood != 0 {
		t.Errorf("AvgLikelihood = %v, want 0 with no active accounts", stats.AvgLikelihood)
	}
	if stats.AvgDealSize != 3000 {
		t.Errorf("AvgDealSize = %v, want 3000", stats.AvgDealSize)
	}
}
