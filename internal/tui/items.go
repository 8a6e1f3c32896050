package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/julianstephens/pausa/internal/constants"
	"github.com/julianstephens/pausa/internal/models"
	"github.com/julianstephens/pausa/internal/utils"
)

type recordItem struct {
	rec models.CheckinRecord
}

func (i recordItem) Title() string {
	return utils.FormatDateTime(i.rec.CreatedAt, nil) + "  " + i.rec.Intensity.Label()
}

func (i recordItem) Description() string {
	parts := []string{i.rec.ClarityAnswer.Label()}
	if theme := i.rec.ThemeText(); theme != "" {
		parts = append(parts, theme)
	}
	if note := utils.Snippet(utils.OneLine(i.rec.NoteText()), constants.SnippetLength); note != "" {
		parts = append(parts, note)
	}
	return strings.Join(parts, " · ")
}

func (i recordItem) FilterValue() string {
	return i.rec.ThemeText() + " " + i.rec.NoteText()
}

func recordItems(recs []models.CheckinRecord) []list.Item {
	items := make([]list.Item, len(recs))
	for i, rec := range recs {
		items[i] = recordItem{rec: rec}
	}
	return items
}

func newHistoryList() list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Histórico"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("check-in", "check-ins")
	l.SetShowStatusBar(true)
	l.DisableQuitKeybindings()
	return l
}
