package entity

// Well-known account tags managed by the store and the post-call rule engine.
const (
	TagInbound           = "inbound"
	TagEngaged           = "engaged"
	TagAtRisk            = "at-risk"
	TagHighPriority      = "high-priority"
	TagBudgetConcern     = "budget-concern"
	TagComplianceBlocker = "compliance-blocker"
	TagUrgentTimeline    = "urgent-timeline"
)
