package dto

import (
	"sales-crm-be/internal/entity"
	"sales-crm-be/pkg/dashboard"
)

// DashboardResponse is the single read payload the dashboard renders from:
// full account and call collections, the most recent activities, and the
// pipeline stats recomputed for this read.
type DashboardResponse struct {
	Accounts   []*entity.Account        `json:"accounts"`
	Calls      []*entity.CallRecord     `json:"calls"`
	Activities []*entity.Activity       `json:"activities"`
	Stats      *dashboard.PipelineStats `json:"stats"`
}
