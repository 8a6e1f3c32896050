// Package tui hosts the check-in flow machine inside a bubbletea program.
package tui

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/pausa/internal/config"
	"github.com/julianstephens/pausa/internal/flow"
	"github.com/julianstephens/pausa/internal/loop"
	"github.com/julianstephens/pausa/internal/summary"
	"github.com/julianstephens/pausa/internal/timer"
)

// copyText is replaced in tests
var copyText = clipboard.WriteAll

type Options struct {
	Store     flow.RecordStore
	Config    *config.Config
	Summaries *summary.Renderer

	// SettingsPath receives the config when the theme is toggled. Empty disables saving.
	SettingsPath string

	// Scheduler drives the countdown. Nil uses a ticker delivering through the model's queue.
	Scheduler timer.Scheduler
}

type confirmAction int

const (
	confirmDelete confirmAction = iota + 1
	confirmClear
)

// confirmState lives on the heap so the huh form can keep a pointer to value
type confirmState struct {
	action confirmAction
	value  bool
}

type Model struct {
	machine   *flow.Machine
	countdown *timer.Service
	queue     *loop.Queue
	frame     *flow.RenderState
	last      flow.Screen

	cfg          *config.Config
	settingsPath string
	summaries    *summary.Renderer

	styles     Styles
	keys       KeyMap
	help       help.Model
	history    list.Model
	progress   progress.Model
	dump       textarea.Model
	themeInput textinput.Model

	editingTheme bool
	showHow      bool
	form         *huh.Form
	confirm      *confirmState

	status   string
	preview  string
	quitting bool
	width    int
	height   int
}

func NewModel(opts Options) (Model, error) {
	if opts.Store == nil {
		return Model{}, errors.New("tui: record store is required")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	summaries := opts.Summaries
	if summaries == nil {
		s, err := summary.New(summary.Options{})
		if err != nil {
			return Model{}, err
		}
		summaries = s
	}

	queue := loop.NewQueue(16)
	sched := opts.Scheduler
	if sched == nil {
		sched = timer.NewTickerScheduler(queue)
	}
	countdown := timer.NewService(sched)

	frame := &flow.RenderState{}
	machine, err := flow.New(flow.Deps{
		Store:    opts.Store,
		Timer:    countdown,
		Renderer: flow.RendererFunc(func(s flow.RenderState) { *frame = s }),
		Pauses:   cfg.Pauses(),
	})
	if err != nil {
		return Model{}, err
	}
	*frame = machine.Snapshot()

	dump := textarea.New()
	dump.Placeholder = "Escreva o que vier, sem organizar…"
	dump.ShowLineNumbers = false
	dump.CharLimit = 0
	dump.SetWidth(60)
	dump.SetHeight(8)

	themeInput := textinput.New()
	themeInput.Placeholder = "trabalho, família, corpo…"
	themeInput.CharLimit = 60

	m := Model{
		machine:      machine,
		countdown:    countdown,
		queue:        queue,
		frame:        frame,
		last:         frame.Screen,
		cfg:          cfg,
		settingsPath: opts.SettingsPath,
		summaries:    summaries,
		styles:       NewStyles(cfg.UI.Theme),
		keys:         DefaultKeyMap(),
		help:         help.New(),
		history:      newHistoryList(),
		progress:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		dump:         dump,
		themeInput:   themeInput,
	}
	return m, nil
}

// Close stops any running countdown and releases the callback queue
func (m Model) Close() {
	m.countdown.Stop()
	m.queue.Close()
}

func (m Model) Init() tea.Cmd {
	return waitForCallback(m.queue)
}

// callbackMsg carries a timer callback onto the update goroutine
type callbackMsg struct {
	fn func()
}

// waitForCallback blocks until the queue yields a callback. Update runs it
// and re-arms the command.
func waitForCallback(q *loop.Queue) tea.Cmd {
	if q == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case fn := <-q.Next():
			return callbackMsg{fn: fn}
		case <-q.Done():
			return nil
		}
	}
}

func (m Model) state() flow.RenderState {
	return *m.frame
}

func (m *Model) dispatch(intent flow.Intent) bool {
	ok := m.machine.Dispatch(intent)
	m.sync()
	return ok
}

// sync brings the widgets in line with the latest render state
func (m *Model) sync() {
	s := m.state()
	if s.Screen != m.last {
		m.enter(s)
		m.last = s.Screen
	}
	if s.Screen == flow.ScreenHistory {
		m.history.SetItems(recordItems(s.Records))
	}
}

func (m *Model) enter(s flow.RenderState) {
	m.preview = ""
	m.editingTheme = false
	m.themeInput.Blur()
	m.dump.Blur()

	switch s.Screen {
	case flow.ScreenCheckin:
		if s.Draft != nil && s.Draft.Theme != nil {
			m.themeInput.SetValue(*s.Draft.Theme)
		} else {
			m.themeInput.SetValue("")
		}
	case flow.ScreenDump:
		if s.Draft != nil {
			m.dump.SetValue(s.Draft.NoteDraft)
		}
		m.dump.Focus()
	case flow.ScreenHistory:
		m.history.ResetFilter()
	}
}

func (m Model) ShortHelp() []key.Binding {
	k := m.keys
	switch m.state().Screen {
	case flow.ScreenHome:
		return []key.Binding{withHelp(k.Enter, "começar"), k.History, k.Config, k.How, k.Quit}
	case flow.ScreenCheckin:
		if m.editingTheme {
			return []key.Binding{withHelp(k.Enter, "confirmar"), withHelp(k.Back, "fechar")}
		}
		return []key.Binding{chooseUpTo(3), k.Theme, k.Enter, withHelp(k.Back, "cancelar")}
	case flow.ScreenDump:
		return []key.Binding{k.SaveDump, k.ToggleSave, k.ClearDump, withHelp(k.Back, "cancelar")}
	case flow.ScreenClarity:
		return []key.Binding{chooseUpTo(3), k.Enter, k.Prev, withHelp(k.Back, "cancelar")}
	case flow.ScreenPause:
		return []key.Binding{k.Choose, k.Enter, k.Prev, withHelp(k.Back, "cancelar")}
	case flow.ScreenTimer:
		return []key.Binding{withHelp(k.Enter, "encerrar"), withHelp(k.Back, "cancelar")}
	case flow.ScreenPauseDone:
		return []key.Binding{k.Enter, withHelp(k.Back, "cancelar")}
	case flow.ScreenFinish:
		return []key.Binding{withHelp(k.Enter, "salvar"), k.ToHistory, withHelp(k.Back, "cancelar")}
	case flow.ScreenHistory:
		return []key.Binding{k.Open, k.ClearAll, withHelp(k.Back, "início")}
	case flow.ScreenDetail:
		return []key.Binding{k.Copy, k.Share, k.Delete, k.Prev}
	case flow.ScreenConfig:
		return []key.Binding{k.ToggleTheme, k.ClearAll, k.How, withHelp(k.Back, "início")}
	}
	return nil
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp()}
}

func chooseUpTo(n int) key.Binding {
	return key.NewBinding(key.WithKeys("1"), key.WithHelp(fmt.Sprintf("1-%d", n), "escolher"))
}

func withHelp(b key.Binding, desc string) key.Binding {
	h := b.Help()
	b.SetHelp(h.Key, desc)
	return b
}
