package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/pausa/internal/cli"
	"github.com/julianstephens/pausa/internal/records"
	"github.com/julianstephens/pausa/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database (.db or .json) to copy check-ins from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()

	if c.Force && dbPath != ":memory:" {
		if c.Source != "" && samePath(c.Source, dbPath) {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Close first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized pausa storage at: %s\n", dbPath)

	if c.Source != "" {
		ctx.Printf("Copying check-ins from: %s\n", c.Source)
		n, err := c.copyFrom(ctx, c.Source)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Printf("Copied %d check-in(s).\n", n)
	}
	return nil
}

// copyFrom appends every readable record of the source store, skipping ids
// that already exist in the destination.
func (c *InitCmd) copyFrom(ctx *cli.Context, sourcePath string) (int, error) {
	source := storage.Open(sourcePath)
	if err := source.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	dest := ctx.Records()
	copied := 0
	for _, rec := range records.NewStore(source).GetAll() {
		if _, exists := dest.GetByID(rec.ID); exists {
			continue
		}
		if err := dest.Add(rec); err != nil {
			return copied, fmt.Errorf("failed to add check-in %s: %w", rec.ID, err)
		}
		copied++
	}
	return copied, nil
}
