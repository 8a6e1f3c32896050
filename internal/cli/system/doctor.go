package system

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/pausa/internal/backup"
	"github.com/julianstephens/pausa/internal/cli"
	"github.com/julianstephens/pausa/internal/constants"
	"github.com/julianstephens/pausa/internal/storage"
)

type DoctorCmd struct{}

// errWarning marks a check result that is reported but does not fail the run
type errWarning struct{ msg string }

func (w errWarning) Error() string { return w.msg }

func warnf(format string, args ...interface{}) error {
	return errWarning{msg: fmt.Sprintf(format, args...)}
}

type check struct {
	name    string
	needsDB bool
	run     func(ctx *cli.Context) error
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	checks := []check{
		{"Database reachable", false, checkDBReachable},
		{"Schema version", true, checkSchemaVersion},
		{"Migrations complete", true, checkMigrationsComplete},
		{"Check-in data", true, checkRecordData},
		{"Check-in integrity", true, checkRecordIntegrity},
		{"Backups present", false, checkBackupsPresent},
		{"Configuration", false, checkConfig},
		{"Clock/timezone", false, checkClockTimezone},
	}

	hasError := false
	dbReachable := false
	for i, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		var warning errWarning
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case errors.As(err, &warning):
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
		if i == 0 {
			dbReachable = err == nil
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if withDB, ok := ctx.Store.(interface{ GetDB() *sql.DB }); ok {
		db := withDB.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	versioned, ok := ctx.Store.(storage.SchemaVersioner)
	if !ok {
		return nil
	}
	current, latest, err := versioned.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	versioned, ok := ctx.Store.(storage.SchemaVersioner)
	if !ok {
		return nil
	}
	current, latest, err := versioned.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'pausa migrate')", current, latest)
	}
	return nil
}

// checkRecordData inspects the raw collection, which the record store
// would otherwise silently treat as empty.
func checkRecordData(ctx *cli.Context) error {
	raw, ok, err := ctx.Store.Get(constants.StorageKey)
	if err != nil {
		return fmt.Errorf("failed to read check-ins: %w", err)
	}
	if !ok {
		ctx.Printf("   no check-ins stored yet\n")
		return nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return fmt.Errorf("stored check-ins are not a JSON array (%v), the app will show an empty history", err)
	}

	recs := ctx.Records()
	stored, readable := recs.Count(), len(recs.GetAll())
	ctx.Printf("   %d stored, %d readable\n", stored, readable)
	if readable < stored {
		return warnf("%d entries are unreadable or deleted and are hidden", stored-readable)
	}
	return nil
}

func checkRecordIntegrity(ctx *cli.Context) error {
	seen := make(map[string]bool)
	for _, rec := range ctx.Records().GetAll() {
		if seen[rec.ID] {
			return warnf("duplicate check-in id found: %s", rec.ID)
		}
		seen[rec.ID] = true

		if !rec.Intensity.Valid() {
			return fmt.Errorf("check-in %s has invalid intensity %q", rec.ID, rec.Intensity)
		}
		if !rec.ClarityAnswer.Valid() {
			return fmt.Errorf("check-in %s has invalid clarity answer %q", rec.ID, rec.ClarityAnswer)
		}
		if rec.MicroPause != "" && !rec.MicroPause.Valid() {
			return warnf("check-in %s has unknown micro-pause %q", rec.ID, rec.MicroPause)
		}
		if rec.CreatedAt.IsZero() {
			return warnf("check-in %s has an unreadable timestamp", rec.ID)
		}
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if ctx.Store.GetConfigPath() == ":memory:" {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return warnf("no backups found - consider creating one with 'pausa backup create'")
	}
	return nil
}

func checkConfig(ctx *cli.Context) error {
	if err := ctx.Settings().Validate(); err != nil {
		return err
	}
	if _, err := ctx.Summaries(); err != nil {
		return err
	}
	return nil
}

func checkClockTimezone(_ *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
