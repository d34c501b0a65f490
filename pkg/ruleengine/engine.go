package ruleengine

import (
	"time"

	"sales-crm-be/internal/entity"
	"sales-crm-be/internal/pkg/logger"
)

// AccountMutator is the store mutation contract the engine writes through.
// Every write becomes an auditable store mutation (activity + snapshot).
type AccountMutator interface {
	UpdateStage(acc *entity.Account, to entity.Stage)
	UpdateLikelihood(acc *entity.Account, likelihood int)
	AppendNote(acc *entity.Account, note string)
	FlagAtRisk(acc *entity.Account, reason string)
	AddTags(acc *entity.Account, tags ...string)
	RemoveTags(acc *entity.Account, tags ...string)
	SetFollowUp(acc *entity.Account, at time.Time)
}

// Context threads one account through the rule pipeline. Later stages read
// state written by earlier ones, so ordering is part of the contract.
type Context struct {
	Account  *entity.Account
	Call     *entity.CallRecord
	Analysis *entity.CallAnalysis
	Now      time.Time
}

type ruleStage struct {
	name  string
	apply func(*Engine, *Context)
}

// rulePipeline is the fixed, ordered sequence of post-call business rules.
var rulePipeline = []ruleStage{
	{"likelihood_blend", (*Engine).blendLikelihood},
	{"stage_adjust", (*Engine).adjustStage},
	{"note_append", (*Engine).appendNote},
	{"tag_update", (*Engine).updateTags},
	{"follow_up", (*Engine).scheduleFollowUp},
	{"risk_check", (*Engine).checkRisk},
}

// Engine applies the post-call business rules to an account. It never returns
// an error: an absent or malformed analysis field means the corresponding
// rule does not apply.
type Engine struct {
	mutator AccountMutator
	log     logger.ILogger
}

func New(mutator AccountMutator, log logger.ILogger) *Engine {
	return &Engine{
		mutator: mutator,
		log:     log,
	}
}

// Apply runs the rule pipeline for a just-completed call. Accounts in a
// terminal stage are never touched, and a nil analysis applies no rule at all
// (the call itself is still recorded by the caller).
func (e *Engine) Apply(acc *entity.Account, call *entity.CallRecord, analysis *entity.CallAnalysis, now time.Time) {
	if acc.Stage.IsTerminal() {
		e.log.Debug("RuleEngine", "Skipping terminal account", map[string]interface{}{
			"account_id": acc.Id,
			"stage":      string(acc.Stage),
		})
		return
	}
	if analysis == nil {
		e.log.Debug("RuleEngine", "No analysis, skipping rules", map[string]interface{}{
			"account_id": acc.Id,
		})
		return
	}

	rc := &Context{
		Account:  acc,
		Call:     call,
		Analysis: analysis,
		Now:      now,
	}
	for _, stage := range rulePipeline {
		stage.apply(e, rc)
		e.log.Debug("RuleEngine", "Rule stage applied", map[string]interface{}{
			"stage":      stage.name,
			"account_id": acc.Id,
		})
	}
}
