package entity

import (
	"fmt"
	"strings"
)

// Stage is one of the six ordered pipeline states an account can occupy.
type Stage string

const (
	StageLead        Stage = "lead"
	StageDiscovery   Stage = "discovery"
	StageProposal    Stage = "proposal"
	StageNegotiation Stage = "negotiation"
	StageClosedWon   Stage = "closed_won"
	StageClosedLost  Stage = "closed_lost"
)

// AllStages lists every valid stage in pipeline order.
var AllStages = []Stage{
	StageLead,
	StageDiscovery,
	StageProposal,
	StageNegotiation,
	StageClosedWon,
	StageClosedLost,
}

// WorkingStages are the ordered non-terminal stages eligible for automatic
// stage adjustment after a call.
var WorkingStages = []Stage{
	StageLead,
	StageDiscovery,
	StageProposal,
	StageNegotiation,
}

// NormalizeStage maps a free-form stage string to one of the six valid values.
// Accepts case differences and spaces/dashes instead of underscores
// ("Closed Won" -> closed_won).
func NormalizeStage(raw string) (Stage, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")

	for _, stage := range AllStages {
		if s == string(stage) {
			return stage, nil
		}
	}
	return "", fmt.Errorf("unknown stage %q", raw)
}

// IsValid reports whether s is one of the six enum values.
func (s Stage) IsValid() bool {
	for _, stage := range AllStages {
		if s == stage {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the stage is closed_won or closed_lost.
// Terminal accounts are immutable to the post-call rule engine.
func (s Stage) IsTerminal() bool {
	return s == StageClosedWon || s == StageClosedLost
}

// WorkingIndex returns the position of s in WorkingStages, or -1 if s is not
// a working stage.
func (s Stage) WorkingIndex() int {
	for i, stage := range WorkingStages {
		if s == stage {
			return i
		}
	}
	return -1
}
