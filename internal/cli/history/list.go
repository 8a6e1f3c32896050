package history

import (
	"time"

	"github.com/julianstephens/pausa/internal/cli"
	"github.com/julianstephens/pausa/internal/constants"
	"github.com/julianstephens/pausa/internal/models"
	"github.com/julianstephens/pausa/internal/utils"
)

// now is replaced in tests
var now = time.Now

type ListCmd struct {
	Since string `help:"Only show check-ins after this date (2026-10-01, \"yesterday\", \"last week\")."`
	Limit int    `help:"Maximum number of check-ins to show (0 for all)." default:"20"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	recs := ctx.Records().GetAll()

	if c.Since != "" {
		since, err := utils.ParseSince(c.Since, now())
		if err != nil {
			return err
		}
		recs = filterSince(recs, since)
	}

	if len(recs) == 0 {
		ctx.Println("No check-ins found")
		return nil
	}

	total := len(recs)
	if c.Limit > 0 && total > c.Limit {
		recs = recs[:c.Limit]
	}

	ctx.Println("Check-ins:")
	for _, rec := range recs {
		ctx.Printf("  %s  %s (%s)  %s · %s\n",
			cli.ShortID(rec.ID),
			utils.FormatDateTime(rec.CreatedAt, time.Local),
			utils.Since(rec.CreatedAt),
			rec.Intensity.Label(),
			rec.ClarityAnswer.Label())

		if theme := rec.ThemeText(); theme != "" {
			ctx.Printf("      Tema: %s\n", theme)
		}
		if note := utils.Snippet(utils.OneLine(rec.NoteText()), constants.SnippetLength); note != "" {
			ctx.Printf("      %s\n", note)
		}
	}
	if len(recs) < total {
		ctx.Printf("\nShowing %d of %d (use --limit 0 for all)\n", len(recs), total)
	}
	return nil
}

// filterSince keeps records created at or after since. recs is newest first.
func filterSince(recs []models.CheckinRecord, since time.Time) []models.CheckinRecord {
	var kept []models.CheckinRecord
	for _, rec := range recs {
		if !rec.CreatedAt.Before(since) {
			kept = append(kept, rec)
		}
	}
	return kept
}
