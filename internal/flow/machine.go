// Package flow sequences the check-in screens. A Machine owns the draft,
// validates every intent against the current screen, drives the countdown
// and writes the finished record.
package flow

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/pausa/internal/logger"
	"github.com/julianstephens/pausa/internal/models"
	"github.com/julianstephens/pausa/internal/timer"
)

// RecordStore is the persistence the machine writes finished check-ins to
type RecordStore interface {
	GetAll() []models.CheckinRecord
	GetByID(id string) (models.CheckinRecord, bool)
	Add(rec models.CheckinRecord) error
	Remove(id string) error
	ClearAll() error
}

// Countdown is the timer the machine drives; *timer.Service implements it
type Countdown interface {
	Start(totalSeconds int, label string) error
	Stop()
	Session() timer.Session
	SetListener(l timer.Listener)
}

type Deps struct {
	Store    RecordStore
	Timer    Countdown
	Renderer Renderer

	// Optional
	Clock  func() time.Time
	NewID  func() string
	Pauses Pauses
}

// Machine is not safe for concurrent use. Dispatch and timer callbacks must
// run on the same goroutine.
type Machine struct {
	store    RecordStore
	timer    Countdown
	renderer Renderer
	clock    func() time.Time
	newID    func() string
	pauses   Pauses

	screen      Screen
	draft       *models.CheckinDraft
	records     []models.CheckinRecord
	detailID    string
	detail      models.CheckinRecord
	detailFound bool
	notice      string

	dispatching bool
}

func New(deps Deps) (*Machine, error) {
	if deps.Store == nil {
		return nil, errors.New("flow: record store is required")
	}
	if deps.Timer == nil {
		return nil, errors.New("flow: timer is required")
	}

	m := &Machine{
		store:    deps.Store,
		timer:    deps.Timer,
		renderer: deps.Renderer,
		clock:    deps.Clock,
		newID:    deps.NewID,
		pauses:   deps.Pauses,
		screen:   ScreenHome,
	}
	if m.renderer == nil {
		m.renderer = nopRenderer{}
	}
	if m.clock == nil {
		m.clock = time.Now
	}
	if m.newID == nil {
		m.newID = uuid.NewString
	}
	if m.pauses == nil {
		m.pauses = DefaultPauses()
	}

	m.timer.SetListener(m.onTimer)
	return m, nil
}

// Screen returns the current state
func (m *Machine) Screen() Screen {
	return m.screen
}

// Dispatch applies intent and renders when it was accepted. Intents whose
// preconditions do not hold are ignored and Dispatch returns false.
func (m *Machine) Dispatch(intent Intent) bool {
	prevNotice := m.notice
	m.notice = ""

	m.dispatching = true
	accepted := m.apply(intent)
	m.dispatching = false

	if !accepted {
		m.notice = prevNotice
		logger.Debug("intent ignored", "intent", fmt.Sprintf("%T", intent), "screen", m.screen)
		return false
	}
	m.render()
	return true
}

func (m *Machine) apply(intent Intent) bool {
	switch in := intent.(type) {
	case StartFlow:
		return m.startFlow()
	case CancelFlow:
		return m.cancelFlow()

	case SetIntensity:
		if !m.in(ScreenCheckin) || !in.Value.Valid() {
			return false
		}
		m.draft.Intensity = in.Value
		return true
	case SetTheme:
		if !m.in(ScreenCheckin) {
			return false
		}
		m.draft.Theme = normalizeTheme(in.Text)
		return true
	case AdvanceFromCheckin:
		if !m.in(ScreenCheckin) || m.draft.Intensity == "" {
			return false
		}
		m.screen = ScreenDump
		return true

	case SetNoteDraft:
		if !m.in(ScreenDump) {
			return false
		}
		m.draft.NoteDraft = in.Text
		return true
	case SetSaveNote:
		if !m.in(ScreenDump) {
			return false
		}
		m.draft.SaveNote = in.Value
		return true
	case ClearDump:
		if !m.in(ScreenDump) {
			return false
		}
		m.draft.NoteDraft = ""
		m.draft.SaveNote = false
		return true
	case AdvanceFromDump:
		if !m.in(ScreenDump) {
			return false
		}
		m.draft.Note = finalizeNote(m.draft.NoteDraft, m.draft.SaveNote)
		m.screen = ScreenClarity
		return true

	case BackToDump:
		return m.move(ScreenClarity, ScreenDump)
	case SetClarityAnswer:
		if !m.in(ScreenClarity) || !in.Value.Valid() {
			return false
		}
		m.draft.ClarityAnswer = in.Value
		return true
	case AdvanceFromClarity:
		if !m.in(ScreenClarity) || m.draft.ClarityAnswer == "" {
			return false
		}
		m.screen = ScreenPause
		return true

	case BackToClarity:
		return m.move(ScreenPause, ScreenClarity)
	case SetMicroPause:
		if !m.in(ScreenPause) || !in.Value.Valid() {
			return false
		}
		m.draft.MicroPause = in.Value
		return true
	case AdvanceFromPause:
		return m.advanceFromPause()

	case EndTimerEarly:
		if !m.in(ScreenTimer) {
			return false
		}
		m.timer.Stop()
		m.screen = ScreenPauseDone
		return true
	case AdvanceFromPauseDone:
		return m.move(ScreenPauseDone, ScreenFinish)

	case FinalizeKeepingHome:
		return m.finalize(ScreenHome)
	case FinalizeGoingToHistory:
		return m.finalize(ScreenHistory)

	case Navigate:
		return m.navigate(in.Screen)
	case OpenDetail:
		return m.openDetail(in.ID)
	case BackToHistory:
		if m.screen != ScreenDetail {
			return false
		}
		m.enterHistory()
		return true
	case DeleteCurrent:
		return m.deleteCurrent()
	case ClearAll:
		return m.clearAll()
	}
	return false
}

// in reports whether the machine is on screen s with a live draft
func (m *Machine) in(s Screen) bool {
	return m.screen == s && m.draft != nil
}

func (m *Machine) move(from, to Screen) bool {
	if !m.in(from) {
		return false
	}
	m.screen = to
	return true
}

func (m *Machine) startFlow() bool {
	if m.screen.IsFlow() {
		return false
	}
	m.timer.Stop()
	m.clearDetail()
	m.records = nil
	m.draft = &models.CheckinDraft{
		ID:        m.newID(),
		CreatedAt: m.clock().UTC().Truncate(time.Millisecond),
		SaveNote:  true,
	}
	m.screen = ScreenCheckin
	return true
}

func (m *Machine) cancelFlow() bool {
	if m.draft == nil && !m.screen.IsFlow() {
		return false
	}
	m.abandon()
	m.screen = ScreenHome
	return true
}

func (m *Machine) abandon() {
	m.timer.Stop()
	m.draft = nil
}

func (m *Machine) advanceFromPause() bool {
	if !m.in(ScreenPause) || m.draft.MicroPause == "" {
		return false
	}

	tp, timed := m.pauses.Timed(m.draft.MicroPause)
	if !timed {
		m.screen = ScreenPauseDone
		return true
	}

	// The screen must be Timer before Start so an immediate expiry is seen
	m.screen = ScreenTimer
	if err := m.timer.Start(tp.Seconds, tp.Label); err != nil {
		logger.Warn("failed to start pause timer", "error", err)
		m.timer.Stop()
		m.screen = ScreenPauseDone
	}
	return true
}

func (m *Machine) finalize(next Screen) bool {
	if !m.in(ScreenFinish) {
		return false
	}

	rec := m.draft.Record()
	if err := m.store.Add(rec); err != nil {
		logger.Error("failed to save check-in", "id", rec.ID, "error", err)
		m.notice = noticeSaveFailed
		return true
	}
	logger.Info("check-in saved", "id", rec.ID, "intensity", rec.Intensity)

	m.abandon()
	if next == ScreenHistory {
		m.enterHistory()
	} else {
		m.screen = ScreenHome
	}
	return true
}

func (m *Machine) navigate(target Screen) bool {
	if !target.Navigable() {
		return false
	}
	if m.screen.IsFlow() || m.draft != nil {
		m.abandon()
	}
	m.clearDetail()
	if target == ScreenHistory {
		m.enterHistory()
		return true
	}
	m.records = nil
	m.screen = target
	return true
}

func (m *Machine) openDetail(id string) bool {
	if m.screen != ScreenHistory && m.screen != ScreenDetail {
		return false
	}
	m.detailID = id
	m.detail, m.detailFound = m.store.GetByID(id)
	m.screen = ScreenDetail
	return true
}

func (m *Machine) deleteCurrent() bool {
	if m.screen != ScreenDetail || m.detailID == "" {
		return false
	}
	if err := m.store.Remove(m.detailID); err != nil {
		logger.Error("failed to delete check-in", "id", m.detailID, "error", err)
		m.notice = noticeDeleteFailed
		return true
	}
	logger.Info("check-in deleted", "id", m.detailID)
	m.enterHistory()
	return true
}

func (m *Machine) clearAll() bool {
	if m.screen.IsFlow() {
		return false
	}
	if err := m.store.ClearAll(); err != nil {
		logger.Error("failed to clear check-ins", "error", err)
		m.notice = noticeClearFailed
		return true
	}
	logger.Info("all check-ins cleared")
	m.enterHistory()
	return true
}

func (m *Machine) enterHistory() {
	m.clearDetail()
	m.records = m.store.GetAll()
	m.screen = ScreenHistory
}

func (m *Machine) clearDetail() {
	m.detailID = ""
	m.detail = models.CheckinRecord{}
	m.detailFound = false
}

func (m *Machine) onTimer(e timer.Event) {
	if e.Kind == timer.Expired && m.screen == ScreenTimer {
		m.screen = ScreenPauseDone
	}
	if !m.dispatching {
		m.render()
	}
}

func (m *Machine) render() {
	m.renderer.Render(m.Snapshot())
}

// Snapshot returns the current render state
func (m *Machine) Snapshot() RenderState {
	s := m.timer.Session()
	state := RenderState{
		Screen: m.screen,
		Timer: TimerView{
			Total:     s.TotalSeconds,
			Remaining: s.RemainingSeconds,
			Label:     s.Label,
			Running:   s.Running,
		},
		DetailID:    m.detailID,
		DetailFound: m.detailFound,
		Notice:      m.notice,
	}
	if m.draft != nil {
		d := m.draft.Clone()
		state.Draft = &d
	}
	if m.records != nil {
		state.Records = make([]models.CheckinRecord, len(m.records))
		for i, rec := range m.records {
			state.Records[i] = rec.Clone()
		}
	}
	if m.detailFound {
		state.Detail = m.detail.Clone()
	}
	return state
}

func normalizeTheme(text *string) *string {
	if text == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*text)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func finalizeNote(draft string, save bool) *string {
	if !save {
		return nil
	}
	trimmed := strings.TrimSpace(draft)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
