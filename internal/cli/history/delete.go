package history

import (
	"fmt"

	"github.com/julianstephens/pausa/internal/cli"
	"github.com/julianstephens/pausa/internal/utils"
)

type DeleteCmd struct {
	ID  string `arg:"" help:"Check-in id or unique id prefix."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	recs := ctx.Records()
	rec, err := cli.FindRecord(recs, c.ID)
	if err != nil {
		return err
	}

	assume := c.Yes || !ctx.Settings().UI.ConfirmDelete
	title := fmt.Sprintf("Excluir o check-in de %s?", utils.FormatDateTime(rec.CreatedAt, nil))
	ok, err := cli.Confirm(title, assume)
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Delete cancelled.")
		return nil
	}

	if err := recs.Remove(rec.ID); err != nil {
		return fmt.Errorf("failed to delete check-in: %w", err)
	}
	ctx.Printf("✓ Deleted check-in %s\n", cli.ShortID(rec.ID))
	return nil
}

type ClearCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	recs := ctx.Records()
	n := recs.Count()
	if n == 0 {
		ctx.Println("No check-ins to clear.")
		return nil
	}

	ok, err := cli.Confirm(fmt.Sprintf("Apagar todos os %d check-ins? Isso não pode ser desfeito.", n), c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Clear cancelled.")
		return nil
	}

	if err := recs.ClearAll(); err != nil {
		return fmt.Errorf("failed to clear check-ins: %w", err)
	}
	ctx.Printf("✓ Cleared %d check-in(s)\n", n)
	return nil
}
