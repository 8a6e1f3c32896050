package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/pausa/internal/config"
	"github.com/julianstephens/pausa/internal/flow"
	"github.com/julianstephens/pausa/internal/loop"
	"github.com/julianstephens/pausa/internal/models"
	"github.com/julianstephens/pausa/internal/records"
	"github.com/julianstephens/pausa/internal/storage"
	"github.com/julianstephens/pausa/internal/timer"
)

type fixture struct {
	m     Model
	sched *timer.ManualScheduler
	kv    *storage.MemoryStore
	store *records.Store
	cfg   *config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.Default()
	cfg.Pause.BreatheSeconds = 3

	kv := storage.NewMemoryStore()
	f := &fixture{
		sched: timer.NewManualScheduler(),
		kv:    kv,
		store: records.NewStore(kv),
		cfg:   cfg,
	}
	m, err := NewModel(Options{Store: f.store, Config: cfg, Scheduler: f.sched})
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	f.m = m
	t.Cleanup(m.Close)
	return f
}

func (f *fixture) send(t *testing.T, msgs ...tea.Msg) {
	t.Helper()
	for _, msg := range msgs {
		next, _ := f.m.Update(msg)
		m, ok := next.(Model)
		if !ok {
			t.Fatalf("Update() returned %T, want Model", next)
		}
		f.m = m
	}
}

func (f *fixture) screen() flow.Screen {
	return f.m.state().Screen
}

// mustScreen stops the test when the flow is not where the next steps expect it.
func (f *fixture) mustScreen(t *testing.T, want flow.Screen) {
	t.Helper()
	if got := f.screen(); got != want {
		t.Fatalf("screen = %v, want %v", got, want)
	}
}

func (f *fixture) wantView(t *testing.T, text string) {
	t.Helper()
	if v := f.m.View(); !strings.Contains(v, text) {
		t.Errorf("View() does not contain %q:\n%s", text, v)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	ctrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
)

func TestFullCheckinWithTimedPause(t *testing.T) {
	f := newFixture(t)

	f.send(t, enter)
	f.mustScreen(t, flow.ScreenCheckin)

	f.send(t, runes("3"), enter)
	f.mustScreen(t, flow.ScreenDump)

	f.send(t, runes("a"), runes("b"), runes("c"))
	if got := f.m.state().Draft.NoteDraft; got != "abc" {
		t.Errorf("NoteDraft = %q, want %q", got, "abc")
	}

	f.send(t, ctrlS)
	f.mustScreen(t, flow.ScreenClarity)

	f.send(t, runes("2"), enter)
	f.mustScreen(t, flow.ScreenPause)

	f.send(t, runes("1"), enter)
	f.mustScreen(t, flow.ScreenTimer)
	f.wantView(t, "0:03")

	f.sched.FireN(3)
	f.mustScreen(t, flow.ScreenPauseDone)

	f.send(t, enter)
	f.mustScreen(t, flow.ScreenFinish)
	f.send(t, enter)
	f.mustScreen(t, flow.ScreenHome)
	f.wantView(t, "Check-in salvo.")

	all := f.store.GetAll()
	if len(all) != 1 {
		t.Fatalf("stored %d records, want 1", len(all))
	}
	rec := all[0]
	if rec.Intensity != models.IntensityPesado {
		t.Errorf("Intensity = %q, want %q", rec.Intensity, models.IntensityPesado)
	}
	if rec.ClarityAnswer != models.ClarityAcolhimento {
		t.Errorf("ClarityAnswer = %q, want %q", rec.ClarityAnswer, models.ClarityAcolhimento)
	}
	if rec.MicroPause != models.PauseRespirar {
		t.Errorf("MicroPause = %q, want %q", rec.MicroPause, models.PauseRespirar)
	}
	if got := rec.NoteText(); got != "abc" {
		t.Errorf("NoteText() = %q, want %q", got, "abc")
	}
}

// toFinish walks an untimed check-in up to the finish screen.
func toFinish(t *testing.T, f *fixture) {
	t.Helper()
	f.send(t, enter, runes("1"), enter, ctrlS, runes("1"), enter, runes("4"), enter, enter)
	f.mustScreen(t, flow.ScreenFinish)
}

func TestFinishWriteFailureShowsNoSuccess(t *testing.T) {
	f := newFixture(t)
	toFinish(t, f)

	f.kv.FailSet = errors.New("disk full")
	f.send(t, enter)

	f.mustScreen(t, flow.ScreenFinish)
	if f.m.status == "Check-in salvo." {
		t.Error("success status shown after a failed save")
	}
	if f.m.state().Draft == nil {
		t.Error("draft dropped after a failed save")
	}
	f.wantView(t, "Não foi possível salvar o check-in")

	// The retry succeeds once the store recovers
	f.kv.FailSet = nil
	f.send(t, enter)
	f.mustScreen(t, flow.ScreenHome)
	if f.m.status != "Check-in salvo." {
		t.Errorf("status = %q after retry, want %q", f.m.status, "Check-in salvo.")
	}
	if n := len(f.store.GetAll()); n != 1 {
		t.Errorf("stored %d records after retry, want 1", n)
	}
}

func TestDeleteFailuresShowNoSuccess(t *testing.T) {
	tests := []struct {
		name   string
		action confirmAction
		ok     string
		notice string
	}{
		{"delete", confirmDelete, "Check-in apagado.", "Não foi possível apagar o registro."},
		{"clear", confirmClear, "Dados apagados.", "Não foi possível apagar os dados."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			addRecord(t, f, "rec-1")
			f.send(t, runes("h"), enter)
			f.mustScreen(t, flow.ScreenDetail)

			f.kv.FailSet = errors.New("read-only")
			f.m.applyConfirm(tt.action)

			if f.m.status == tt.ok {
				t.Errorf("status %q shown after a failed write", tt.ok)
			}
			if got := f.m.state().Notice; got != tt.notice {
				t.Errorf("Notice = %q, want %q", got, tt.notice)
			}
			if n := len(f.store.GetAll()); n != 1 {
				t.Errorf("records = %d after a failed write, want 1", n)
			}
		})
	}
}

func TestDirectDeleteFailureShowsNoSuccess(t *testing.T) {
	f := newFixture(t)
	f.cfg.UI.ConfirmDelete = false
	addRecord(t, f, "rec-1")
	f.send(t, runes("h"), enter)
	f.mustScreen(t, flow.ScreenDetail)

	f.kv.FailSet = errors.New("read-only")
	f.send(t, runes("d"))
	if f.m.status == "Check-in apagado." {
		t.Error("success status shown after a failed delete")
	}
}

func TestAdvanceWithoutChoiceShowsHint(t *testing.T) {
	f := newFixture(t)
	f.send(t, enter, enter)
	if got := f.screen(); got != flow.ScreenCheckin {
		t.Errorf("screen = %v, want %v", got, flow.ScreenCheckin)
	}
	f.wantView(t, "Escolha como você está")
}

func TestThemeInput(t *testing.T) {
	f := newFixture(t)
	f.send(t, enter, runes("t"))
	if !f.m.editingTheme {
		t.Fatal("t did not open the theme input")
	}

	// Digits go to the input while editing, not to the intensity choice
	f.send(t, runes("casa 2"), enter)
	if f.m.editingTheme {
		t.Error("enter did not close the theme input")
	}

	d := f.m.state().Draft
	if d.Theme == nil {
		t.Fatal("Theme = nil, want the typed text")
	}
	if *d.Theme != "casa 2" {
		t.Errorf("Theme = %q, want %q", *d.Theme, "casa 2")
	}
	if d.Intensity != "" {
		t.Errorf("Intensity = %q, want none", d.Intensity)
	}
}

func TestDumpToggleAndClear(t *testing.T) {
	f := newFixture(t)
	f.send(t, enter, runes("1"), enter, runes("x"))
	f.mustScreen(t, flow.ScreenDump)

	f.send(t, tea.KeyMsg{Type: tea.KeyTab})
	if f.m.state().Draft.SaveNote {
		t.Error("tab did not turn off SaveNote")
	}

	f.send(t, tea.KeyMsg{Type: tea.KeyCtrlX})
	if got := f.m.state().Draft.NoteDraft; got != "" {
		t.Errorf("NoteDraft = %q after clear, want empty", got)
	}
	if got := f.m.dump.Value(); got != "" {
		t.Errorf("dump textarea = %q after clear, want empty", got)
	}
}

func TestEscCancelsFlow(t *testing.T) {
	f := newFixture(t)
	f.send(t, enter, runes("1"), enter, esc)
	if got := f.screen(); got != flow.ScreenHome {
		t.Errorf("screen = %v, want %v", got, flow.ScreenHome)
	}
	if f.m.state().Draft != nil {
		t.Error("draft kept after cancel")
	}
}

func TestTimerEndEarly(t *testing.T) {
	f := newFixture(t)
	f.send(t, enter, runes("1"), enter, ctrlS, runes("1"), enter, runes("1"), enter)
	f.mustScreen(t, flow.ScreenTimer)

	f.send(t, enter)
	if got := f.screen(); got != flow.ScreenPauseDone {
		t.Errorf("screen = %v, want %v", got, flow.ScreenPauseDone)
	}
	if n := f.sched.Active(); n != 0 {
		t.Errorf("%d tickers still active after ending early", n)
	}
}

func addRecord(t *testing.T, f *fixture, id string) {
	t.Helper()
	err := f.store.Add(models.CheckinRecord{
		ID:            id,
		CreatedAt:     time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC),
		Intensity:     models.IntensityNeutro,
		ClarityAnswer: models.ClarityAcao,
		MicroPause:    models.PauseAgua,
	})
	if err != nil {
		t.Fatalf("Add(%s) failed: %v", id, err)
	}
}

func TestHistoryDetailCopyAndDelete(t *testing.T) {
	f := newFixture(t)
	f.cfg.UI.ConfirmDelete = false
	addRecord(t, f, "rec-1")

	var copied string
	prev := copyText
	copyText = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { copyText = prev })

	f.send(t, runes("h"))
	f.mustScreen(t, flow.ScreenHistory)
	if n := len(f.m.history.Items()); n != 1 {
		t.Fatalf("history shows %d items, want 1", n)
	}

	f.send(t, enter)
	f.mustScreen(t, flow.ScreenDetail)
	if got := f.m.state().DetailID; got != "rec-1" {
		t.Errorf("DetailID = %q, want %q", got, "rec-1")
	}

	f.send(t, runes("c"))
	if !strings.Contains(copied, "Resumo do meu check-in") {
		t.Errorf("copied text = %q, want the summary", copied)
	}
	f.wantView(t, "Resumo copiado.")

	f.send(t, runes("s"))
	if !strings.HasPrefix(f.m.preview, "https://wa.me/?text=") {
		t.Errorf("preview = %q, want a wa.me link", f.m.preview)
	}

	f.send(t, runes("d"))
	if got := f.screen(); got != flow.ScreenHistory {
		t.Errorf("screen = %v after delete, want %v", got, flow.ScreenHistory)
	}
	if n := len(f.store.GetAll()); n != 0 {
		t.Errorf("records = %d after delete, want 0", n)
	}
	if f.m.status != "Check-in apagado." {
		t.Errorf("status = %q, want %q", f.m.status, "Check-in apagado.")
	}
}

func TestCopyFallbackShowsText(t *testing.T) {
	f := newFixture(t)
	addRecord(t, f, "rec-1")

	prev := copyText
	copyText = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { copyText = prev })

	f.send(t, runes("h"), enter, runes("c"))
	if !strings.Contains(f.m.preview, "Resumo do meu check-in") {
		t.Errorf("preview = %q, want the summary text", f.m.preview)
	}
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	f := newFixture(t)
	addRecord(t, f, "rec-1")

	f.send(t, runes("h"), enter, runes("d"))
	if f.m.confirm == nil {
		t.Fatal("delete did not ask for confirmation")
	}
	if f.m.confirm.action != confirmDelete {
		t.Errorf("confirm action = %v, want %v", f.m.confirm.action, confirmDelete)
	}
	if n := len(f.store.GetAll()); n != 1 {
		t.Errorf("records = %d before confirming, want 1", n)
	}

	// Esc dismisses without deleting
	f.send(t, esc)
	if f.m.confirm != nil {
		t.Error("esc did not dismiss the confirmation")
	}
	if n := len(f.store.GetAll()); n != 1 {
		t.Errorf("records = %d after dismissing, want 1", n)
	}

	f.m.applyConfirm(confirmDelete)
	if n := len(f.store.GetAll()); n != 0 {
		t.Errorf("records = %d after confirming, want 0", n)
	}
	if got := f.screen(); got != flow.ScreenHistory {
		t.Errorf("screen = %v, want %v", got, flow.ScreenHistory)
	}
}

func TestClearAllFromConfig(t *testing.T) {
	f := newFixture(t)
	addRecord(t, f, "a")
	addRecord(t, f, "b")

	f.send(t, runes("c"))
	f.mustScreen(t, flow.ScreenConfig)
	f.send(t, runes("x"))
	if f.m.confirm == nil {
		t.Fatal("clear did not ask for confirmation")
	}
	if f.m.confirm.action != confirmClear {
		t.Errorf("confirm action = %v, want %v", f.m.confirm.action, confirmClear)
	}

	f.m.applyConfirm(confirmClear)
	if n := len(f.store.GetAll()); n != 0 {
		t.Errorf("records = %d after clear, want 0", n)
	}
	if got := f.screen(); got != flow.ScreenHistory {
		t.Errorf("screen = %v, want %v", got, flow.ScreenHistory)
	}
	if f.m.status != "Dados apagados." {
		t.Errorf("status = %q, want %q", f.m.status, "Dados apagados.")
	}
}

func TestToggleThemeSavesSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	store := records.NewStore(storage.NewMemoryStore())
	m, err := NewModel(Options{Store: store, SettingsPath: path, Scheduler: timer.NewManualScheduler()})
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	t.Cleanup(m.Close)
	f := &fixture{m: m, store: store}

	f.send(t, runes("c"), runes("t"))
	if got := f.m.cfg.UI.Theme; got != config.ThemeLight {
		t.Errorf("Theme = %q, want %q", got, config.ThemeLight)
	}

	saved, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if saved.UI.Theme != config.ThemeLight {
		t.Errorf("saved Theme = %q, want %q", saved.UI.Theme, config.ThemeLight)
	}

	f.send(t, runes("t"))
	if got := f.m.cfg.UI.Theme; got != config.ThemeDark {
		t.Errorf("Theme = %q after second toggle, want %q", got, config.ThemeDark)
	}
}

func TestHowItWorks(t *testing.T) {
	f := newFixture(t)
	f.send(t, runes("?"))
	f.wantView(t, howTitle)

	// Other keys are ignored while the help is open
	f.send(t, runes("h"))
	if got := f.screen(); got != flow.ScreenHome {
		t.Errorf("screen = %v with help open, want %v", got, flow.ScreenHome)
	}

	f.send(t, enter)
	if f.m.showHow {
		t.Error("enter did not close the help")
	}
	if got := f.screen(); got != flow.ScreenHome {
		t.Errorf("screen = %v, want %v", got, flow.ScreenHome)
	}
}

func TestQuit(t *testing.T) {
	f := newFixture(t)
	_, cmd := f.m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q on home returned no command")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Errorf("q returned %T, want tea.QuitMsg", msg)
	}

	// q is plain text inside the flow
	f.send(t, enter)
	if _, cmd = f.m.Update(runes("q")); cmd != nil {
		t.Error("q inside the flow returned a command")
	}
}

func TestWaitForCallback(t *testing.T) {
	q := loop.NewQueue(1)
	ran := false
	if !q.Post(func() { ran = true }, nil) {
		t.Fatal("Post() rejected on an open queue")
	}

	msg := waitForCallback(q)()
	cb, ok := msg.(callbackMsg)
	if !ok {
		t.Fatalf("waitForCallback() = %T, want callbackMsg", msg)
	}
	cb.fn()
	if !ran {
		t.Error("callback did not run")
	}

	q.Close()
	if msg := waitForCallback(q)(); msg != nil {
		t.Errorf("waitForCallback() on closed queue = %v, want nil", msg)
	}
	if waitForCallback(nil) != nil {
		t.Error("waitForCallback(nil) returned a command")
	}
}

func TestCallbackMsgSyncsWidgets(t *testing.T) {
	f := newFixture(t)
	f.send(t, enter, runes("1"), enter, ctrlS, runes("1"), enter, runes("1"), enter)
	f.mustScreen(t, flow.ScreenTimer)

	// Deliver the final tick the way the event loop would
	f.sched.FireN(2)
	f.send(t, callbackMsg{fn: f.sched.Fire})
	if got := f.screen(); got != flow.ScreenPauseDone {
		t.Errorf("screen = %v, want %v", got, flow.ScreenPauseDone)
	}
	if f.m.last != flow.ScreenPauseDone {
		t.Errorf("last = %v, want %v", f.m.last, flow.ScreenPauseDone)
	}
}

func TestFormatClock(t *testing.T) {
	tests := map[int]string{0: "0:00", 5: "0:05", 60: "1:00", 125: "2:05", -1: "0:00"}
	for in, want := range tests {
		if got := formatClock(in); got != want {
			t.Errorf("formatClock(%d) = %q, want %q", in, got, want)
		}
	}
}
