package history

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/julianstephens/pausa/internal/cli"
	"github.com/julianstephens/pausa/internal/summary"
)

// copyText is replaced in tests
var copyText = clipboard.WriteAll

type ShowCmd struct {
	ID string `arg:"" help:"Check-in id or unique id prefix."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	rec, err := cli.FindRecord(ctx.Records(), c.ID)
	if err != nil {
		return err
	}
	renderer, err := ctx.Summaries()
	if err != nil {
		return err
	}
	text, err := renderer.Summary(rec)
	if err != nil {
		return err
	}

	ctx.Printf("ID: %s\n\n", rec.ID)
	ctx.Printf("%s", text)
	return nil
}

type SummaryCmd struct {
	ID   string `arg:"" help:"Check-in id or unique id prefix."`
	Copy bool   `help:"Copy the summary to the clipboard instead of printing it."`
}

func (c *SummaryCmd) Run(ctx *cli.Context) error {
	rec, err := cli.FindRecord(ctx.Records(), c.ID)
	if err != nil {
		return err
	}
	renderer, err := ctx.Summaries()
	if err != nil {
		return err
	}
	text, err := renderer.Summary(rec)
	if err != nil {
		return err
	}

	if c.Copy {
		err := copyText(text)
		if err == nil {
			ctx.Println("✓ Summary copied to clipboard")
			return nil
		}
		// No clipboard available, print so the user can copy by hand
		ctx.Printf("Clipboard unavailable (%v), printing instead:\n\n", err)
	}
	ctx.Printf("%s", text)
	return nil
}

type ShareCmd struct {
	ID  string `arg:"" help:"Check-in id or unique id prefix."`
	URL bool   `name:"url" help:"Print a WhatsApp link instead of the text."`
}

func (c *ShareCmd) Run(ctx *cli.Context) error {
	rec, err := cli.FindRecord(ctx.Records(), c.ID)
	if err != nil {
		return err
	}
	renderer, err := ctx.Summaries()
	if err != nil {
		return err
	}
	text, err := renderer.Share(rec)
	if err != nil {
		return fmt.Errorf("failed to build share text: %w", err)
	}

	if c.URL {
		ctx.Println(summary.ShareURL(text))
		return nil
	}
	ctx.Printf("%s", text)
	return nil
}
