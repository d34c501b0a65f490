package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"sales-crm-be/internal/entity"
)

// corruptActivityMarker matches activity messages written by a previously
// fixed stage-change bug; such entries are dropped on load.
const corruptActivityMarker = "→ undefined"

type snapshot struct {
	Accounts   []*entity.Account    `json:"accounts"`
	Calls      []*entity.CallRecord `json:"calls"`
	Activities []*entity.Activity   `json:"activities"`
}

// Load reads the snapshot file into memory, seeding the fixed demo dataset on
// first run. Accounts with a stage outside the six enum values are reset to
// lead, and known-corrupt activity entries are filtered out.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.snapshotPath)
	if os.IsNotExist(err) {
		s.log.Info("Store", "Snapshot not found, seeding initial dataset", map[string]interface{}{
			"path": s.snapshotPath,
		})
		seed := seedSnapshot(s.now())
		s.accounts = seed.Accounts
		s.calls = seed.Calls
		s.activities = seed.Activities
		s.persist()
		return nil
	}
	if err != nil {
		return err
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}

	s.accounts = snap.Accounts
	s.calls = snap.Calls
	s.activities = nil

	for _, acc := range s.accounts {
		if !acc.Stage.IsValid() {
			s.log.Warn("Store", "Account has invalid stage, resetting to lead", map[string]interface{}{
				"account_id": acc.Id,
				"company":    acc.Company,
				"stage":      string(acc.Stage),
			})
			acc.Stage = entity.StageLead
		}
		if acc.Notes == nil {
			acc.Notes = []string{}
		}
		if acc.Tags == nil {
			acc.Tags = []string{}
		}
	}

	dropped := 0
	for _, act := range snap.Activities {
		if strings.Contains(act.Message, corruptActivityMarker) {
			dropped++
			continue
		}
		s.activities = append(s.activities, act)
	}
	if dropped > 0 {
		s.log.Warn("Store", "Dropped corrupt activity entries", map[string]interface{}{
			"count": dropped,
		})
	}

	s.log.Info("Store", "Snapshot loaded", map[string]interface{}{
		"accounts":   len(s.accounts),
		"calls":      len(s.calls),
		"activities": len(s.activities),
	})
	return nil
}

// persist rewrites the whole snapshot file. A write failure is logged and the
// in-memory mutation stands uncommitted for the running process; it is neither
// retried nor rolled back, and never surfaced to the caller.
// Callers must hold s.mu.
func (s *Store) persist() {
	snap := snapshot{
		Accounts:   s.accounts,
		Calls:      s.calls,
		Activities: s.activities,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		s.log.Error("Store", "Failed to marshal snapshot", map[string]interface{}{"error": err.Error()})
		return
	}
	if dir := filepath.Dir(s.snapshotPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.log.Error("Store", "Failed to create snapshot directory", map[string]interface{}{"error": err.Error()})
			return
		}
	}
	if err := os.WriteFile(s.snapshotPath, data, 0o644); err != nil {
		s.log.Error("Store", "Failed to write snapshot, mutation stands in memory only", map[string]interface{}{
			"path":  s.snapshotPath,
			"error": err.Error(),
		})
	}
}
