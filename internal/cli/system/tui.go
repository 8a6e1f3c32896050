package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/pausa/internal/cli"
	"github.com/julianstephens/pausa/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadOrInit(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	summaries, err := ctx.Summaries()
	if err != nil {
		return err
	}
	model, err := tui.NewModel(tui.Options{
		Store:        ctx.Records(),
		Config:       ctx.Settings(),
		Summaries:    summaries,
		SettingsPath: ctx.SettingsPath,
	})
	if err != nil {
		return err
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with an error: %w", err)
	}
	return nil
}
