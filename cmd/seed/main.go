package main

import (
	"flag"
	"fmt"
	"os"

	"sales-crm-be/internal/config"
	"sales-crm-be/internal/pkg/logger"
	"sales-crm-be/internal/store"

	"github.com/fatih/color"
)

// Resets the CRM snapshot to the demo dataset. Refuses to overwrite an
// existing snapshot unless -force is given.
func main() {
	force := flag.Bool("force", false, "overwrite an existing snapshot")
	flag.Parse()

	cfg := config.Load()
	path := cfg.Store.SnapshotPath

	if _, err := os.Stat(path); err == nil {
		if !*force {
			color.Red("✗ Snapshot already exists at %s (use -force to overwrite)", path)
			os.Exit(1)
		}
		if err := os.Remove(path); err != nil {
			color.Red("✗ Failed to remove existing snapshot: %v", err)
			os.Exit(1)
		}
		color.Yellow("! Removed existing snapshot at %s", path)
	}

	log := logger.NewIsolatedLogger("logs/seed.log")
	crmStore := store.New(path, log)
	if err := crmStore.Load(); err != nil {
		color.Red("✗ Seeding failed: %v", err)
		os.Exit(1)
	}

	color.Green("✓ Seeded demo dataset to %s", path)
	fmt.Printf("  accounts:   %d\n", len(crmStore.Accounts()))
	fmt.Printf("  calls:      %d\n", len(crmStore.Calls()))
	fmt.Printf("  activities: %d\n", len(crmStore.RecentActivities(100)))
}
