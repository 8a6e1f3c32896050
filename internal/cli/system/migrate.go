package system

import (
	"fmt"

	"github.com/julianstephens/pausa/internal/cli"
	"github.com/julianstephens/pausa/internal/storage"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

	versioned, ok := ctx.Store.(storage.SchemaVersioner)
	if !ok {
		ctx.Println("This storage backend has no schema. Nothing to migrate.")
		return nil
	}

	count, err := versioned.Migrate(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
