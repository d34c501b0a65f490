package store

import (
	"time"

	"sales-crm-be/internal/entity"

	"github.com/google/uuid"
)

// seedSnapshot builds the fixed demo dataset used on first run.
func seedSnapshot(now time.Time) snapshot {
	followUp := func(days int) *time.Time {
		d := dateOnly(now.AddDate(0, 0, days))
		return &d
	}

	acme := &entity.Account{
		Id:      uuid.New(),
		Company: "Acme Logistics",
		Contact: entity.Contact{Name: "Dana Whitfield", Role: "VP Operations", Email: "dana@acmelogistics.example"},
		Plan:    entity.PlanTeam, Stage: entity.StageProposal,
		DealValue: 48000, Likelihood: 60, Industry: "Logistics",
		Notes:           []string{"Sent pricing deck after discovery call."},
		Tags:            []string{"engaged"},
		LastContactDate: now.AddDate(0, 0, -4),
		NextFollowUp:    followUp(2),
		CreatedAt:       now.AddDate(0, -2, 0),
	}
	northwind := &entity.Account{
		Id:      uuid.New(),
		Company: "Northwind Health",
		Contact: entity.Contact{Name: "Priya Raman", Role: "CTO", Email: "priya@northwindhealth.example"},
		Plan:    entity.PlanEnterprise, Stage: entity.StageNegotiation,
		DealValue: 120000, Likelihood: 75, Industry: "Healthcare",
		Notes:           []string{"Security review in progress; legal wants a DPA."},
		Tags:            []string{"high-priority", "compliance-blocker"},
		LastContactDate: now.AddDate(0, 0, -2),
		NextFollowUp:    followUp(1),
		CreatedAt:       now.AddDate(0, -3, 0),
	}
	bluesky := &entity.Account{
		Id:      uuid.New(),
		Company: "BlueSky Media",
		Contact: entity.Contact{Name: "Tom Okafor", Role: "Head of Growth", Email: "tom@blueskymedia.example"},
		Plan:    entity.PlanFree, Stage: entity.StageDiscovery,
		DealValue: 18000, Likelihood: 40, Industry: "Media",
		Notes:           []string{},
		Tags:            []string{"inbound"},
		LastContactDate: now.AddDate(0, 0, -9),
		NextFollowUp:    followUp(5),
		CreatedAt:       now.AddDate(0, -1, 0),
	}
	ferro := &entity.Account{
		Id:      uuid.New(),
		Company: "Ferro Manufacturing",
		Contact: entity.Contact{Name: "Karl Janssen", Role: "Plant Director", Email: "karl@ferromfg.example"},
		Plan:    entity.PlanTeam, Stage: entity.StageLead,
		DealValue: 32000, Likelihood: 25, Industry: "Manufacturing",
		Notes:           []string{},
		Tags:            []string{"inbound"},
		LastContactDate: now.AddDate(0, 0, -14),
		NextFollowUp:    followUp(3),
		CreatedAt:       now.AddDate(0, 0, -20),
	}
	veridian := &entity.Account{
		Id:      uuid.New(),
		Company: "Veridian Energy",
		Contact: entity.Contact{Name: "Lucia Marquez", Role: "Procurement Lead", Email: "lucia@veridian.example"},
		Plan:    entity.PlanEnterprise, Stage: entity.StageClosedWon,
		DealValue: 95000, Likelihood: 100, Industry: "Energy",
		Notes:           []string{"Signed annual contract."},
		Tags:            []string{"engaged"},
		LastContactDate: now.AddDate(0, -1, 0),
		CreatedAt:       now.AddDate(0, -6, 0),
	}
	quickbite := &entity.Account{
		Id:      uuid.New(),
		Company: "QuickBite Delivery",
		Contact: entity.Contact{Name: "Sam Devereux", Role: "COO", Email: "sam@quickbite.example"},
		Plan:    entity.PlanFree, Stage: entity.StageClosedLost,
		DealValue: 12000, Likelihood: 0, Industry: "Food Delivery",
		Notes:           []string{"Went with an in-house build."},
		Tags:            []string{"budget-concern"},
		LastContactDate: now.AddDate(0, -2, 0),
		CreatedAt:       now.AddDate(0, -5, 0),
	}

	accounts := []*entity.Account{acme, northwind, bluesky, ferro, veridian, quickbite}

	calls := []*entity.CallRecord{
		{
			Id:         uuid.New(),
			AccountId:  acme.Id,
			Date:       now.AddDate(0, 0, -4),
			Duration:   1860,
			Transcript: "Walked Dana through the proposal. Main concern is onboarding timeline for the Chicago warehouse.",
			Sentiment:  &entity.CallSentiment{Score: 7, Satisfaction: 8, Summary: "Positive, wants onboarding plan", Tags: []string{"timeline"}},
			Outcome:    "Send onboarding plan by Friday",
			CreatedAt:  now.AddDate(0, 0, -4),
		},
		{
			Id:         uuid.New(),
			AccountId:  northwind.Id,
			Date:       now.AddDate(0, 0, -2),
			Duration:   2700,
			Transcript: "Priya confirmed budget approval pending the security review. Legal asked for SOC 2 report and a signed DPA.",
			Sentiment:  &entity.CallSentiment{Score: 8, Satisfaction: 7, Summary: "Strong intent, compliance gating", Tags: []string{"security", "legal"}},
			Outcome:    "Share SOC 2 report with legal",
			CreatedAt:  now.AddDate(0, 0, -2),
		},
	}

	activities := []*entity.Activity{
		{Id: uuid.New(), AccountId: acme.Id, Type: entity.ActivityCall, Message: "Call with Acme Logistics (1860s): Send onboarding plan by Friday", Timestamp: now.AddDate(0, 0, -4)},
		{Id: uuid.New(), AccountId: northwind.Id, Type: entity.ActivityCall, Message: "Call with Northwind Health (2700s): Share SOC 2 report with legal", Timestamp: now.AddDate(0, 0, -2)},
		{Id: uuid.New(), AccountId: bluesky.Id, Type: entity.ActivityEmail, Message: "Sent discovery recap to BlueSky Media", Timestamp: now.AddDate(0, 0, -8)},
		{Id: uuid.New(), AccountId: veridian.Id, Type: entity.ActivityStageChange, Message: "Veridian Energy: negotiation → closed_won", Timestamp: now.AddDate(0, -1, 0)},
	}

	return snapshot{Accounts: accounts, Calls: calls, Activities: activities}
}
