package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pausa/internal/flow"
	"github.com/julianstephens/pausa/internal/models"
	"github.com/julianstephens/pausa/internal/utils"
)

const howTitle = "Como o Pausa Interna funciona"

var howBody = []string{
	"• Você faz um check-in rápido.",
	"• Solta os pensamentos sem se preocupar em organizar.",
	"• A gente te faz uma pergunta de clareza.",
	"• Você escolhe uma micro-pausa (se quiser).",
	"",
	"Leve, sem cobrança. Do seu jeito.",
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.confirm != nil && m.form != nil {
		return m.styles.Doc.Render(m.form.View())
	}
	if m.showHow {
		return m.styles.Doc.Render(m.viewHow())
	}

	s := m.state()
	var content string
	switch s.Screen {
	case flow.ScreenHome:
		content = m.viewHome()
	case flow.ScreenCheckin:
		content = m.viewCheckin(s)
	case flow.ScreenDump:
		content = m.viewDump(s)
	case flow.ScreenClarity:
		content = m.viewClarity(s)
	case flow.ScreenPause:
		content = m.viewPause(s)
	case flow.ScreenTimer:
		content = m.viewTimer(s)
	case flow.ScreenPauseDone:
		content = m.viewPauseDone()
	case flow.ScreenFinish:
		content = m.viewFinish(s)
	case flow.ScreenHistory:
		content = m.viewHistory(s)
	case flow.ScreenDetail:
		content = m.viewDetail(s)
	case flow.ScreenConfig:
		content = m.viewConfig()
	}

	parts := []string{m.viewHeader(s), content}
	if s.Notice != "" {
		parts = append(parts, m.styles.Danger.Render(s.Notice))
	}
	if m.status != "" {
		parts = append(parts, m.styles.Status.Render(m.status))
	}
	if m.preview != "" {
		parts = append(parts, m.styles.Box.Render(m.preview))
	}
	parts = append(parts, m.help.View(m))

	return m.styles.Doc.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) viewHeader(s flow.RenderState) string {
	title := m.styles.Title.Render("Pausa Interna")
	if step, total := s.Screen.Step(); step > 0 {
		title += "  " + m.styles.Step.Render(fmt.Sprintf("passo %d de %d", step, total))
	}
	return title + "\n"
}

func (m Model) viewHow() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(howTitle),
		"",
		strings.Join(howBody, "\n"),
		"",
		m.styles.Subtle.Render("[enter] Entendi"),
	)
}

func (m Model) viewHome() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		"Um minuto para se escutar.",
		m.styles.Subtle.Render("Check-in rápido, descarrego, clareza e uma micro-pausa."),
		"",
	)
}

// options renders a numbered list with the current choice highlighted
func (m Model) options(labels []string, selected int) string {
	var b strings.Builder
	for i, label := range labels {
		line := fmt.Sprintf("[%d] %s", i+1, label)
		if i == selected {
			b.WriteString(m.styles.Selected.Render("› " + line))
		} else {
			b.WriteString(m.styles.Option.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewCheckin(s flow.RenderState) string {
	labels := make([]string, len(models.Intensities))
	selected := -1
	for i, in := range models.Intensities {
		labels[i] = in.Label()
		if s.Draft != nil && s.Draft.Intensity == in {
			selected = i
		}
	}

	theme := m.styles.Subtle.Render("[t] adicionar um tema (opcional)")
	if m.editingTheme {
		theme = "Tema: " + m.themeInput.View()
	} else if s.Draft != nil && s.Draft.Theme != nil {
		theme = "Tema: " + *s.Draft.Theme + m.styles.Subtle.Render("  [t] alterar")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		"Como você está agora?",
		"",
		m.options(labels, selected),
		theme,
		"",
	)
}

func (m Model) viewDump(s flow.RenderState) string {
	save := "[ ] salvar o texto no histórico"
	if s.Draft != nil && s.Draft.SaveNote {
		save = "[x] salvar o texto no histórico"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		"Solte o que está na cabeça.",
		m.styles.Subtle.Render("Não precisa fazer sentido."),
		"",
		m.dump.View(),
		"",
		save,
		"",
	)
}

func (m Model) viewClarity(s flow.RenderState) string {
	labels := make([]string, len(models.ClarityAnswers))
	selected := -1
	for i, c := range models.ClarityAnswers {
		labels[i] = c.Label()
		if s.Draft != nil && s.Draft.ClarityAnswer == c {
			selected = i
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		"Do que você precisa agora?",
		"",
		m.options(labels, selected),
	)
}

func (m Model) viewPause(s flow.RenderState) string {
	labels := make([]string, len(models.MicroPauses))
	selected := -1
	for i, p := range models.MicroPauses {
		labels[i] = p.Label()
		if s.Draft != nil && s.Draft.MicroPause == p {
			selected = i
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		"Escolha uma micro-pausa.",
		"",
		m.options(labels, selected),
	)
}

func (m Model) viewTimer(s flow.RenderState) string {
	t := s.Timer
	fraction := 0.0
	if t.Total > 0 {
		fraction = float64(t.Total-t.Remaining) / float64(t.Total)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		t.Label,
		m.styles.Clock.Render(formatClock(t.Remaining)),
		m.progress.ViewAs(fraction),
		"",
	)
}

func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func (m Model) viewPauseDone() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		"Pronto. Obrigado por se dar esse tempo.",
		"",
	)
}

func (m Model) viewFinish(s flow.RenderState) string {
	if s.Draft == nil {
		return ""
	}
	d := s.Draft
	lines := []string{
		"Seu check-in:",
		"",
		"Como você estava: " + d.Intensity.Label(),
	}
	if d.Theme != nil {
		lines = append(lines, "Tema: "+*d.Theme)
	}
	lines = append(lines,
		"Clareza: "+d.ClarityAnswer.Label(),
		"Micro-pausa: "+d.MicroPause.Label(),
	)
	if d.SaveNote && strings.TrimSpace(d.NoteDraft) != "" {
		lines = append(lines, "Descarrego: "+utils.Snippet(utils.OneLine(d.NoteDraft), 60))
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (m Model) viewHistory(s flow.RenderState) string {
	if len(s.Records) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			"Nenhum check-in ainda.",
			m.styles.Subtle.Render("Quando você fizer um, ele aparece aqui."),
			"",
		)
	}
	return m.history.View()
}

func (m Model) viewDetail(s flow.RenderState) string {
	if !s.DetailFound {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.styles.Warning.Render("Registro não encontrado."),
			"",
		)
	}

	r := s.Detail
	note := r.NoteText()
	if note == "" {
		note = "— (texto não foi salvo)"
	}
	theme := r.ThemeText()
	if theme == "" {
		theme = "—"
	}
	kv := []string{
		"Quando:       " + utils.FormatDateTime(r.CreatedAt, nil),
		"Intensidade:  " + r.Intensity.Label(),
		"Tema:         " + theme,
		"Clareza:      " + r.ClarityAnswer.Label(),
		"Micro-pausa:  " + r.MicroPause.Label(),
		"",
		"Descarrego",
		note,
	}
	return m.styles.Box.Render(strings.Join(kv, "\n")) + "\n"
}

func (m Model) viewConfig() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		"Ajustes",
		"",
		fmt.Sprintf("Tema da interface: %s", m.cfg.UI.Theme),
		fmt.Sprintf("Respirar: %ds · Pausa: %ds", m.cfg.Pause.BreatheSeconds, m.cfg.Pause.SilentSeconds),
		"",
		m.styles.Subtle.Render("Os dados ficam só neste dispositivo."),
		"",
	)
}
