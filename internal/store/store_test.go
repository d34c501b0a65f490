package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sales-crm-be/internal/entity"
	"sales-crm-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "crm.json"), logger.NewNopLogger())
	require.NoError(t, s.Load())
	return s
}

func TestCreateAccountDefaults(t *testing.T) {
	s := newTestStore(t)

	acc := s.CreateAccount(NewAccount{
		Company:   "Orbit Systems",
		Contact:   entity.Contact{Name: "Dana Reyes", Role: "CTO"},
		Plan:      entity.PlanTeam,
		DealValue: 25000,
		Industry:  "Aerospace",
	})

	assert.Equal(t, entity.StageLead, acc.Stage)
	assert.Equal(t, 25, acc.Likelihood)
	assert.Equal(t, []string{entity.TagInbound}, acc.Tags)
	assert.Empty(t, acc.Notes)

	require.NotNil(t, acc.NextFollowUp)
	wantDay := time.Now().AddDate(0, 0, 3)
	assert.Equal(t, wantDay.Year(), acc.NextFollowUp.Year())
	assert.Equal(t, wantDay.YearDay(), acc.NextFollowUp.YearDay())
	// date-only precision
	assert.Equal(t, 0, acc.NextFollowUp.Hour())
	assert.Equal(t, 0, acc.NextFollowUp.Minute())
}

func TestUpdateStageNoOp(t *testing.T) {
	s := newTestStore(t)
	acc, err := s.FindAccountByCompany("Acme Logistics")
	require.NoError(t, err)

	before := len(s.RecentActivities(100))
	s.UpdateStage(acc, acc.Stage)

	assert.Equal(t, before, len(s.RecentActivities(100)), "same-stage move must not append an activity")
	assert.Nil(t, acc.UpdatedAt)
}

func TestUpdateStageAppendsActivity(t *testing.T) {
	s := newTestStore(t)
	acc, err := s.FindAccountByCompany("Acme Logistics")
	require.NoError(t, err)
	require.Equal(t, entity.StageProposal, acc.Stage)

	s.UpdateStage(acc, entity.StageNegotiation)

	assert.Equal(t, entity.StageNegotiation, acc.Stage)
	latest := s.RecentActivities(1)[0]
	assert.Equal(t, entity.ActivityStageChange, latest.Type)
	assert.Equal(t, "Acme Logistics: proposal → negotiation", latest.Message)
}

func TestUpdateLikelihoodClamps(t *testing.T) {
	s := newTestStore(t)
	acc, err := s.FindAccountByCompany("BlueSky Media")
	require.NoError(t, err)

	s.UpdateLikelihood(acc, 150)
	assert.Equal(t, 100, acc.Likelihood)

	s.UpdateLikelihood(acc, -5)
	assert.Equal(t, 0, acc.Likelihood)
}

func TestFlagAtRiskIdempotentTag(t *testing.T) {
	s := newTestStore(t)
	acc, err := s.FindAccountByCompany("Ferro Manufacturing")
	require.NoError(t, err)
	notesBefore := len(acc.Notes)

	s.FlagAtRisk(acc, "no response in 3 weeks")
	s.FlagAtRisk(acc, "champion left the company")

	count := 0
	for _, tag := range acc.Tags {
		if tag == entity.TagAtRisk {
			count++
		}
	}
	assert.Equal(t, 1, count, "at-risk tag must stay unique")
	// every flagging keeps its note as an audit trail
	assert.Len(t, acc.Notes, notesBefore+2)
	assert.Equal(t, "At risk: champion left the company", acc.Notes[len(acc.Notes)-1])
}

func TestAddCallRecordUnknownAccount(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddCallRecord(NewCall{AccountId: uuid.New()})

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "account", nf.Resource)
}

func TestAddCallRecordUpdatesLastContact(t *testing.T) {
	s := newTestStore(t)
	acc, err := s.FindAccountByCompany("Northwind Health")
	require.NoError(t, err)

	callDate := time.Date(2026, 8, 20, 15, 30, 0, 0, time.UTC)
	call, err := s.AddCallRecord(NewCall{
		AccountId:  acc.Id,
		Date:       callDate,
		Duration:   900,
		Transcript: "contract redlines discussion",
		Outcome:    "positive",
	})
	require.NoError(t, err)

	assert.Equal(t, acc.Id, call.AccountId)
	assert.Equal(t, callDate, acc.LastContactDate)
	assert.Len(t, s.Calls(), 3) // two seeded + this one
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crm.json")

	s := New(path, logger.NewNopLogger())
	require.NoError(t, s.Load())
	acc := s.CreateAccount(NewAccount{Company: "Roundtrip Co"})
	s.AppendNote(acc, "first touch")

	reloaded := New(path, logger.NewNopLogger())
	require.NoError(t, reloaded.Load())

	got, err := reloaded.FindAccountByCompany("Roundtrip Co")
	require.NoError(t, err)
	assert.Equal(t, acc.Id, got.Id)
	assert.Equal(t, []string{"first touch"}, got.Notes)
}

func TestLoadSanitizesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crm.json")
	raw := map[string]interface{}{
		"accounts": []map[string]interface{}{
			{
				"id":      "7e6f4a9c-93b2-4f1d-8c35-2f8f6f8f0001",
				"company": "Legacy Corp",
				"stage":   "qualified", // not a valid stage anymore
			},
		},
		"calls": []interface{}{},
		"activities": []map[string]interface{}{
			{
				"id":         "7e6f4a9c-93b2-4f1d-8c35-2f8f6f8f0002",
				"account_id": "7e6f4a9c-93b2-4f1d-8c35-2f8f6f8f0001",
				"type":       "stage_change",
				"message":    "Legacy Corp: proposal → undefined",
				"timestamp":  "2026-01-01T00:00:00Z",
			},
			{
				"id":         "7e6f4a9c-93b2-4f1d-8c35-2f8f6f8f0003",
				"account_id": "7e6f4a9c-93b2-4f1d-8c35-2f8f6f8f0001",
				"type":       "note",
				"message":    "intro call booked",
				"timestamp":  "2026-01-02T00:00:00Z",
			},
		},
	}
	data, err := json.Marshal(raw)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	s := New(path, logger.NewNopLogger())
	require.NoError(t, s.Load())

	acc, err := s.FindAccountByCompany("Legacy Corp")
	require.NoError(t, err)
	assert.Equal(t, entity.StageLead, acc.Stage, "invalid stage resets to lead")
	assert.NotNil(t, acc.Notes)
	assert.NotNil(t, acc.Tags)

	activities := s.RecentActivities(10)
	require.Len(t, activities, 1, "corrupt stage-change entry must be dropped")
	assert.Equal(t, "intro call booked", activities[0].Message)
}

func TestFindAccountByCompanyPrefersExactMatch(t *testing.T) {
	s := newTestStore(t)
	s.CreateAccount(NewAccount{Company: "Acme"})

	acc, err := s.FindAccountByCompany("acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme", acc.Company, "exact match wins over substring match")

	sub, err := s.FindAccountByCompany("logisti")
	require.NoError(t, err)
	assert.Equal(t, "Acme Logistics", sub.Company)
}

func TestMatchAccountByText(t *testing.T) {
	s := newTestStore(t)

	acc := s.MatchAccountByText("Hi, this is a call about the acme logistics renewal")
	require.NotNil(t, acc)
	assert.Equal(t, "Acme Logistics", acc.Company)

	assert.Nil(t, s.MatchAccountByText("no known company mentioned here"))
}
