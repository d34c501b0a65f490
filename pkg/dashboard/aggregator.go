package dashboard

import (
	"math"

	"sales-crm-be/internal/entity"
)

// StageBreakdown is the per-stage slice of the pipeline.
type StageBreakdown struct {
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

// PipelineStats is derived on demand from the current account set; it has no
// independent lifecycle and is recomputed on every read.
type PipelineStats struct {
	TotalAccounts         int                             `json:"total_accounts"`
	ActiveAccounts        int                             `json:"active_accounts"`
	TotalPipelineValue    float64                         `json:"total_pipeline_value"`
	WeightedPipelineValue float64                         `json:"weighted_pipeline_value"`
	AvgDealSize           float64                         `json:"avg_deal_size"`
	AvgLikelihood         float64                         `json:"avg_likelihood"`
	Stages                map[entity.Stage]StageBreakdown `json:"stages"`
}

// ComputeStats aggregates pipeline statistics over the account set.
//
// "Active" excludes both closed_won and closed_lost everywhere: value totals,
// weighted value and likelihood averaging. Average deal size is taken over ALL
// accounts including closed ones. Empty denominators yield zero values.
func ComputeStats(accounts []*entity.Account) *PipelineStats {
	stats := &PipelineStats{
		Stages: make(map[entity.Stage]StageBreakdown, len(entity.AllStages)),
	}
	for _, stage := range entity.AllStages {
		stats.Stages[stage] = StageBreakdown{}
	}

	var totalValue float64
	var likelihoodSum int

	for _, acc := range accounts {
		stats.TotalAccounts++
		totalValue += acc.DealValue

		b := stats.Stages[acc.Stage]
		b.Count++
		b.Value += acc.DealValue
		stats.Stages[acc.Stage] = b

		if acc.Stage.IsTerminal() {
			continue
		}
		stats.ActiveAccounts++
		stats.TotalPipelineValue += acc.DealValue
		stats.WeightedPipelineValue += acc.DealValue * float64(acc.Likelihood) / 100
		likelihoodSum += acc.Likelihood
	}

	if stats.TotalAccounts > 0 {
		stats.AvgDealSize = round2(totalValue / float64(stats.TotalAccounts))
	}
	if stats.ActiveAccounts > 0 {
		stats.AvgLikelihood = round2(float64(likelihoodSum) / float64(stats.ActiveAccounts))
	}
	stats.WeightedPipelineValue = round2(stats.WeightedPipelineValue)

	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
