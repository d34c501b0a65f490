package entity

import (
	"testing"
)

func TestNormalizeStage(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Stage
		wantErr bool
	}{
		{name: "plain", raw: "lead", want: StageLead},
		{name: "uppercase", raw: "DISCOVERY", want: StageDiscovery},
		{name: "padded", raw: "  proposal ", want: StageProposal},
		{name: "space separator", raw: "Closed Won", want: StageClosedWon},
		{name: "dash separator", raw: "closed-lost", want: StageClosedLost},
		{name: "underscore", raw: "closed_won", want: StageClosedWon},
		{name: "unknown", raw: "qualified", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeStage(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NormalizeStage(%q) expected error, got %q", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeStage(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeStage(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestStageIsTerminal(t *testing.T) {
	for _, stage := range WorkingStages {
		if stage.IsTerminal() {
			t.Errorf("%q should not be terminal", stage)
		}
	}
	if !StageClosedWon.IsTerminal() || !StageClosedLost.IsTerminal() {
		t.Error("closed stages should be terminal")
	}
}

func TestStageWorkingIndex(t *testing.T) {
	tests := []struct {
		stage Stage
		want  int
	}{
		{StageLead, 0},
		{StageDiscovery, 1},
		{StageProposal, 2},
		{StageNegotiation, 3},
		{StageClosedWon, -1},
		{StageClosedLost, -1},
	}

	for _, tt := range tests {
		if got := tt.stage.WorkingIndex(); got != tt.want {
			t.Errorf("WorkingIndex(%q) = %d, want %d", tt.stage, got, tt.want)
		}
	}
}

func TestAccountTagSetSemantics(t *testing.T) {
	acc := &Account{Tags: []string{}}

	acc.AddTag(TagEngaged)
	acc.AddTag(TagEngaged)
	if len(acc.Tags) != 1 {
		t.Fatalf("expected 1 tag after duplicate add, got %v", acc.Tags)
	}

	acc.RemoveTag(TagAtRisk) // absent, no-op
	if len(acc.Tags) != 1 {
		t.Fatalf("removing absent tag changed set: %v", acc.Tags)
	}

	acc.RemoveTag(TagEngaged)
	if len(acc.Tags) != 0 {
		t.Fatalf("expected empty tag set, got %v", acc.Tags)
	}
}
