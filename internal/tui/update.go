package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/pausa/internal/config"
	"github.com/julianstephens/pausa/internal/flow"
	"github.com/julianstephens/pausa/internal/logger"
	"github.com/julianstephens/pausa/internal/models"
	"github.com/julianstephens/pausa/internal/summary"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.history.SetSize(msg.Width-4, msg.Height-8)
		m.dump.SetWidth(min(msg.Width-4, 80))
		m.progress.Width = min(msg.Width-4, 60)
		return m, nil

	case callbackMsg:
		msg.fn()
		m.sync()
		return m, waitForCallback(m.queue)
	}

	if m.confirm != nil {
		return m.updateConfirm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateWidgets(msg)
	}
	if key.Matches(keyMsg, m.keys.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.showHow {
		if key.Matches(keyMsg, m.keys.Enter, m.keys.Back, m.keys.How) {
			m.showHow = false
		}
		return m, nil
	}

	m.status = ""
	switch m.state().Screen {
	case flow.ScreenHome:
		return m.updateHome(keyMsg)
	case flow.ScreenCheckin:
		return m.updateCheckin(keyMsg)
	case flow.ScreenDump:
		return m.updateDump(keyMsg)
	case flow.ScreenClarity:
		return m.updateClarity(keyMsg)
	case flow.ScreenPause:
		return m.updatePause(keyMsg)
	case flow.ScreenTimer:
		return m.updateTimer(keyMsg)
	case flow.ScreenPauseDone:
		return m.updatePauseDone(keyMsg)
	case flow.ScreenFinish:
		return m.updateFinish(keyMsg)
	case flow.ScreenHistory:
		return m.updateHistory(keyMsg)
	case flow.ScreenDetail:
		return m.updateDetail(keyMsg)
	case flow.ScreenConfig:
		return m.updateConfig(keyMsg)
	}
	return m, nil
}

// updateWidgets forwards non-key messages (cursor blink and the like) to the focused widget
func (m Model) updateWidgets(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state().Screen {
	case flow.ScreenDump:
		m.dump, cmd = m.dump.Update(msg)
	case flow.ScreenCheckin:
		if m.editingTheme {
			m.themeInput, cmd = m.themeInput.Update(msg)
		}
	case flow.ScreenHistory:
		m.history, cmd = m.history.Update(msg)
	}
	return m, cmd
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		m.dispatch(flow.StartFlow{})
	case key.Matches(msg, m.keys.History):
		m.dispatch(flow.Navigate{Screen: flow.ScreenHistory})
	case key.Matches(msg, m.keys.Config):
		m.dispatch(flow.Navigate{Screen: flow.ScreenConfig})
	case key.Matches(msg, m.keys.How):
		m.showHow = true
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateCheckin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editingTheme {
		switch {
		case key.Matches(msg, m.keys.Enter):
			m.dispatch(flow.Theme(m.themeInput.Value()))
			m.editingTheme = false
			m.themeInput.Blur()
			return m, nil
		case key.Matches(msg, m.keys.Back):
			m.editingTheme = false
			m.themeInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.themeInput, cmd = m.themeInput.Update(msg)
		return m, cmd
	}

	if i, ok := choice(msg.String()); ok && i < len(models.Intensities) {
		m.dispatch(flow.SetIntensity{Value: models.Intensities[i]})
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Theme):
		m.editingTheme = true
		cmd := m.themeInput.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Enter):
		if !m.dispatch(flow.AdvanceFromCheckin{}) {
			m.status = "Escolha como você está (1-3) para continuar."
		}
	case key.Matches(msg, m.keys.Back):
		m.dispatch(flow.CancelFlow{})
	}
	return m, nil
}

func (m Model) updateDump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.SaveDump):
		m.dispatch(flow.AdvanceFromDump{})
		return m, nil
	case key.Matches(msg, m.keys.ToggleSave):
		if d := m.state().Draft; d != nil {
			m.dispatch(flow.SetSaveNote{Value: !d.SaveNote})
		}
		return m, nil
	case key.Matches(msg, m.keys.ClearDump):
		m.dispatch(flow.ClearDump{})
		m.dump.Reset()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.dispatch(flow.CancelFlow{})
		return m, nil
	}

	var cmd tea.Cmd
	before := m.dump.Value()
	m.dump, cmd = m.dump.Update(msg)
	if value := m.dump.Value(); value != before {
		m.dispatch(flow.SetNoteDraft{Text: value})
	}
	return m, cmd
}

func (m Model) updateClarity(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if i, ok := choice(msg.String()); ok && i < len(models.ClarityAnswers) {
		m.dispatch(flow.SetClarityAnswer{Value: models.ClarityAnswers[i]})
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Enter):
		if !m.dispatch(flow.AdvanceFromClarity{}) {
			m.status = "Escolha uma resposta (1-3) para continuar."
		}
	case key.Matches(msg, m.keys.Prev):
		m.dispatch(flow.BackToDump{})
	case key.Matches(msg, m.keys.Back):
		m.dispatch(flow.CancelFlow{})
	}
	return m, nil
}

func (m Model) updatePause(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if i, ok := choice(msg.String()); ok && i < len(models.MicroPauses) {
		m.dispatch(flow.SetMicroPause{Value: models.MicroPauses[i]})
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Enter):
		if !m.dispatch(flow.AdvanceFromPause{}) {
			m.status = "Escolha uma micro-pausa (1-5) para continuar."
		}
	case key.Matches(msg, m.keys.Prev):
		m.dispatch(flow.BackToClarity{})
	case key.Matches(msg, m.keys.Back):
		m.dispatch(flow.CancelFlow{})
	}
	return m, nil
}

func (m Model) updateTimer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		m.dispatch(flow.EndTimerEarly{})
	case key.Matches(msg, m.keys.Back):
		m.dispatch(flow.CancelFlow{})
	}
	return m, nil
}

func (m Model) updatePauseDone(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		m.dispatch(flow.AdvanceFromPauseDone{})
	case key.Matches(msg, m.keys.Back):
		m.dispatch(flow.CancelFlow{})
	}
	return m, nil
}

func (m Model) updateFinish(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		m.succeeded(flow.FinalizeKeepingHome{}, "Check-in salvo.")
	case key.Matches(msg, m.keys.ToHistory):
		m.dispatch(flow.FinalizeGoingToHistory{})
	case key.Matches(msg, m.keys.Back):
		m.dispatch(flow.CancelFlow{})
	}
	return m, nil
}

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.history.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Open):
			if item, ok := m.history.SelectedItem().(recordItem); ok {
				m.dispatch(flow.OpenDetail{ID: item.rec.ID})
			}
			return m, nil
		case key.Matches(msg, m.keys.ClearAll):
			cmd := m.askConfirm(confirmClear, "Limpar dados?", "Isso apaga todo o histórico local.", "Apagar tudo")
			return m, cmd
		case key.Matches(msg, m.keys.Back) && m.history.FilterState() == list.Unfiltered,
			key.Matches(msg, m.keys.Prev):
			m.dispatch(flow.Navigate{Screen: flow.ScreenHome})
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.state()
	switch {
	case key.Matches(msg, m.keys.Prev), key.Matches(msg, m.keys.Back):
		m.dispatch(flow.BackToHistory{})
	case !s.DetailFound:
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		m.copySummary(s.Detail)
	case key.Matches(msg, m.keys.Share):
		m.shareLink(s.Detail)
	case key.Matches(msg, m.keys.Delete):
		if !m.cfg.UI.ConfirmDelete {
			m.succeeded(flow.DeleteCurrent{}, "Check-in apagado.")
			return m, nil
		}
		cmd := m.askConfirm(confirmDelete, "Deletar check-in?", "Esse registro será removido deste dispositivo.", "Deletar")
		return m, cmd
	}
	return m, nil
}

func (m *Model) copySummary(rec models.CheckinRecord) {
	text, err := m.summaries.Summary(rec)
	if err != nil {
		m.status = fmt.Sprintf("Não foi possível gerar o resumo: %v", err)
		return
	}
	if err := copyText(text); err != nil {
		logger.Debug("clipboard unavailable", "error", err)
		m.status = "Não foi possível copiar. Selecione o texto abaixo:"
		m.preview = text
		return
	}
	m.status = "Resumo copiado."
}

func (m *Model) shareLink(rec models.CheckinRecord) {
	text, err := m.summaries.Share(rec)
	if err != nil {
		m.status = fmt.Sprintf("Não foi possível gerar o texto: %v", err)
		return
	}
	m.status = "Link para compartilhar:"
	m.preview = summary.ShareURL(text)
}

func (m Model) updateConfig(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleTheme):
		m.toggleTheme()
	case key.Matches(msg, m.keys.ClearAll):
		cmd := m.askConfirm(confirmClear, "Limpar dados?", "Isso apaga todo o histórico local.", "Apagar tudo")
		return m, cmd
	case key.Matches(msg, m.keys.How):
		m.showHow = true
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Prev):
		m.dispatch(flow.Navigate{Screen: flow.ScreenHome})
	}
	return m, nil
}

func (m *Model) toggleTheme() {
	if m.cfg.UI.Theme == config.ThemeLight {
		m.cfg.UI.Theme = config.ThemeDark
	} else {
		m.cfg.UI.Theme = config.ThemeLight
	}
	m.styles = NewStyles(m.cfg.UI.Theme)

	if m.settingsPath == "" {
		return
	}
	if err := m.cfg.Write(m.settingsPath, true); err != nil {
		logger.Warn("failed to save settings", "path", m.settingsPath, "error", err)
		m.status = "Tema alterado, mas não foi possível salvar o ajuste."
	}
}

func (m *Model) askConfirm(action confirmAction, title, description, affirmative string) tea.Cmd {
	m.confirm = &confirmState{action: action}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative(affirmative).
				Negative("Cancelar").
				Value(&m.confirm.value),
		),
	).WithShowHelp(false)
	return m.form.Init()
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, m.keys.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEsc {
			m.closeConfirm()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if m.confirm.value {
			m.applyConfirm(m.confirm.action)
		}
		m.closeConfirm()
		return m, nil
	case huh.StateAborted:
		m.closeConfirm()
		return m, nil
	}
	return m, cmd
}

func (m *Model) applyConfirm(action confirmAction) {
	switch action {
	case confirmDelete:
		m.succeeded(flow.DeleteCurrent{}, "Check-in apagado.")
	case confirmClear:
		m.succeeded(flow.ClearAll{}, "Dados apagados.")
	}
}

// succeeded dispatches intent and shows status only when it was accepted
// without a failure notice. A failed write is still an accepted intent.
func (m *Model) succeeded(intent flow.Intent, status string) {
	if m.dispatch(intent) && m.state().Notice == "" {
		m.status = status
	}
}

func (m *Model) closeConfirm() {
	m.confirm = nil
	m.form = nil
}
