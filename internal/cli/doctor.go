package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/fitcoach/internal/constants"
	"github.com/julianstephens/fitcoach/internal/keyring"
	"github.com/julianstephens/fitcoach/internal/migration"
	"github.com/julianstephens/fitcoach/internal/models"
	"github.com/julianstephens/fitcoach/internal/profile"
	"github.com/julianstephens/fitcoach/internal/storage"
	"github.com/julianstephens/fitcoach/internal/storage/postgres"
	"github.com/julianstephens/fitcoach/internal/storage/sqlite"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	fail := func(name string, err error) {
		fmt.Printf("❌ %s: FAIL\n", name)
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	}

	users, err := checkStoreReachable(ctx)
	reachable := err == nil
	if err != nil {
		fail("Store reachable", err)
	} else {
		fmt.Printf("✓ Store reachable: OK (%d users)\n", len(users))
	}

	if !reachable {
		fmt.Printf("⊘ Schema version: SKIPPED (store not reachable)\n")
	} else if runner, ok, err := migrationRunner(ctx); !ok {
		fmt.Printf("⊘ Schema version: SKIPPED (store has no schema)\n")
	} else if err != nil {
		fail("Schema version", err)
	} else if err := checkSchemaVersion(runner); err != nil {
		fail("Schema version", err)
	} else {
		fmt.Printf("✓ Schema version: OK\n")
	}

	if reachable {
		if problems := checkUsers(users); len(problems) > 0 {
			fail("User records", fmt.Errorf("%s", strings.Join(problems, "; ")))
		} else {
			fmt.Printf("✓ User records: OK\n")
		}

		if err := checkPlans(ctx.Store, users); err != nil {
			fail("Cached plans", err)
		} else {
			fmt.Printf("✓ Cached plans: OK\n")
		}

		if err := checkActiveUser(ctx.Store, users); err != nil {
			fmt.Printf("⚠ Active user: WARNING\n")
			fmt.Printf("   %v\n", err)
		} else {
			fmt.Printf("✓ Active user: OK\n")
		}
	} else {
		fmt.Printf("⊘ User records: SKIPPED (store not reachable)\n")
		fmt.Printf("⊘ Cached plans: SKIPPED (store not reachable)\n")
		fmt.Printf("⊘ Active user: SKIPPED (store not reachable)\n")
	}

	if err := checkAPIKey(ctx); err != nil {
		fmt.Printf("⚠ Gemini API key: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Gemini API key: OK\n")
	}

	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	if err := checkClockTimezone(); err != nil {
		fail("Clock/timezone", err)
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *Context) ([]models.UserProfile, error) {
	if err := ctx.Store.Load(); err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}
	users, err := ctx.Store.LoadUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	return users, nil
}

// migrationRunner reports ok=false for stores without a SQL schema.
func migrationRunner(ctx *Context) (*migration.Runner, bool, error) {
	kv, ok := ctx.Store.(*storage.KVStore)
	if !ok {
		return nil, false, nil
	}
	switch b := kv.Backend().(type) {
	case *sqlite.Store:
		r, err := b.Migrations()
		return r, true, err
	case *postgres.Store:
		r, err := b.Migrations()
		return r, true, err
	}
	return nil, false, nil
}

func checkSchemaVersion(runner *migration.Runner) error {
	current, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}
	if current != latest {
		return fmt.Errorf("schema version %d, expected %d (run 'fitcoach init')", current, latest)
	}
	return nil
}

// checkUsers looks for records the session layer could not have written.
func checkUsers(users []models.UserProfile) []string {
	var problems []string
	ids := make(map[string]bool)
	emails := make(map[string]bool)

	for i, u := range users {
		label := u.Email
		if label == "" {
			label = fmt.Sprintf("record %d", i)
		}
		switch {
		case u.ID == "":
			problems = append(problems, fmt.Sprintf("%s has no id", label))
		case ids[u.ID]:
			problems = append(problems, fmt.Sprintf("duplicate id %s", u.ID))
		}
		ids[u.ID] = true

		email := strings.ToLower(strings.TrimSpace(u.Email))
		switch {
		case email == "":
			problems = append(problems, fmt.Sprintf("%s has no email", label))
		case emails[email]:
			problems = append(problems, fmt.Sprintf("duplicate email %s", u.Email))
		}
		emails[email] = true

		seen := make(map[string]bool)
		for j, l := range u.WeightLogs {
			if _, err := time.Parse(constants.DateFormat, l.Date); err != nil {
				problems = append(problems, fmt.Sprintf("%s has a weight log with bad date %q", label, l.Date))
			}
			if seen[l.Date] {
				problems = append(problems, fmt.Sprintf("%s has two weight logs on %s", label, l.Date))
			}
			seen[l.Date] = true
			if j > 0 && l.Date < u.WeightLogs[j-1].Date {
				problems = append(problems, fmt.Sprintf("%s weight logs are out of order at %s", label, l.Date))
			}
		}
	}
	return problems
}

func checkPlans(store storage.Provider, users []models.UserProfile) error {
	for _, u := range users {
		if _, err := store.LoadPlan(u.ID); err != nil {
			return fmt.Errorf("plan for %s is unreadable: %w", u.Email, err)
		}
	}
	return nil
}

func checkActiveUser(store storage.Provider, users []models.UserProfile) error {
	email, err := store.ActiveUser()
	if err != nil {
		return fmt.Errorf("failed to read active user: %w", err)
	}
	if email == "" {
		return nil
	}
	if _, ok := profile.FindByEmail(users, email); !ok {
		return fmt.Errorf("active user %s has no account; the next start will show the login screen", email)
	}
	return nil
}

func checkAPIKey(ctx *Context) error {
	explicit := ""
	if ctx.Config != nil {
		explicit = ctx.Config.GeminiAPIKey
	}
	if key, _ := keyring.ResolveAPIKey(explicit); key == "" {
		return fmt.Errorf("no API key configured; plan generation is disabled (set GEMINI_API_KEY or run 'fitcoach keyring set')")
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'fitcoach backup create'")
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()

	// Weight logs are keyed by local calendar day
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	_, offset := now.Zone()
	if offset == 0 && now.Location() == time.UTC {
		fmt.Printf("   Note: timezone is UTC; weight logs roll over at UTC midnight\n")
	}
	return nil
}
