package ruleengine

import (
	"fmt"
	"math"
	"strings"

	"sales-crm-be/internal/entity"
)

// keywordTags maps pain-point keyword families to the tag they imply.
// Matching is a case-insensitive substring scan over every pain point.
var keywordTags = []struct {
	keywords []string
	tag      string
}{
	{[]string{"budget", "price", "cost"}, entity.TagBudgetConcern},
	{[]string{"compliance", "security", "legal"}, entity.TagComplianceBlocker},
	{[]string{"timeline", "deadline", "urgent"}, entity.TagUrgentTimeline},
}

// blendLikelihood blends the analysis likelihood into the account:
// round(old*0.3 + new*0.7), clamped by the store.
func (e *Engine) blendLikelihood(rc *Context) {
	ltc := rc.Analysis.LikelihoodToClose
	if ltc == nil {
		return
	}
	blended := int(math.Round(float64(rc.Account.Likelihood)*0.3 + float64(*ltc)*0.7))
	e.mutator.UpdateLikelihood(rc.Account, blended)
}

// adjustStage regresses or advances one working stage depending on sentiment.
// Regress and advance are mutually exclusive by the score thresholds; a score
// in [4,7] leaves the stage alone.
func (e *Engine) adjustStage(rc *Context) {
	sentiment := rc.Analysis.OverallSentiment
	if sentiment == nil {
		return
	}
	idx := rc.Account.Stage.WorkingIndex()
	if idx < 0 {
		return
	}

	switch {
	case *sentiment <= 3:
		if idx > 0 {
			e.mutator.UpdateStage(rc.Account, entity.WorkingStages[idx-1])
		}
		e.mutator.FlagAtRisk(rc.Account, fmt.Sprintf("call sentiment %d/10, outcome: %s", *sentiment, rc.Call.Outcome))
	case *sentiment >= 8 && idx < len(entity.WorkingStages)-1:
		e.mutator.UpdateStage(rc.Account, entity.WorkingStages[idx+1])
	}
}

// appendNote records the analysis summary plus up to the first three next
// steps as one account note.
func (e *Engine) appendNote(rc *Context) {
	if rc.Analysis.Summary == "" {
		return
	}
	note := rc.Analysis.Summary
	steps := rc.Analysis.NextSteps
	if len(steps) > 3 {
		steps = steps[:3]
	}
	if len(steps) > 0 {
		note = fmt.Sprintf("%s Next steps: %s", note, strings.Join(steps, "; "))
	}
	e.mutator.AppendNote(rc.Account, note)
}

// updateTags applies threshold tags and scans pain points for keyword
// families. Tags are a set, so repeated adds and absent removes are no-ops.
func (e *Engine) updateTags(rc *Context) {
	var add, remove []string

	if s := rc.Analysis.OverallSentiment; s != nil {
		if *s >= 8 {
			add = append(add, entity.TagEngaged)
			remove = append(remove, entity.TagAtRisk)
		}
		if *s <= 3 {
			add = append(add, entity.TagAtRisk)
			remove = append(remove, entity.TagEngaged)
		}
	}
	if ltc := rc.Analysis.LikelihoodToClose; ltc != nil && *ltc >= 75 {
		add = append(add, entity.TagHighPriority)
	}

	painText := strings.ToLower(strings.Join(rc.Analysis.PainPoints, " "))
	for _, family := range keywordTags {
		for _, kw := range family.keywords {
			if strings.Contains(painText, kw) {
				add = append(add, family.tag)
				break
			}
		}
	}

	if len(add) > 0 {
		e.mutator.AddTags(rc.Account, add...)
	}
	if len(remove) > 0 {
		e.mutator.RemoveTags(rc.Account, remove...)
	}
}

// scheduleFollowUp books the next touchpoint when the call produced next
// steps: 2 days out on a good call, otherwise 5.
func (e *Engine) scheduleFollowUp(rc *Context) {
	if len(rc.Analysis.NextSteps) == 0 {
		return
	}
	days := 5
	if s := rc.Analysis.OverallSentiment; s != nil && *s >= 7 {
		days = 2
	}
	e.mutator.SetFollowUp(rc.Account, rc.Now.AddDate(0, 0, days))
}

// checkRisk re-reads the account after all other rules and flags it when the
// blended likelihood dropped below 30. FlagAtRisk keeps the tag idempotent.
func (e *Engine) checkRisk(rc *Context) {
	if rc.Account.Likelihood < 30 && !rc.Account.HasTag(entity.TagAtRisk) {
		e.mutator.FlagAtRisk(rc.Account, fmt.Sprintf("likelihood dropped to %d%%", rc.Account.Likelihood))
	}
}
