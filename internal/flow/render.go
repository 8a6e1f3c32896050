package flow

import "github.com/julianstephens/pausa/internal/models"

// TimerView mirrors the countdown session for display
type TimerView struct {
	Total     int
	Remaining int
	Label     string
	Running   bool
}

// RenderState is everything presentation needs to draw the current screen.
// All fields are copies; mutating them does not affect the machine.
type RenderState struct {
	Screen Screen
	// Draft is nil when no check-in is in progress
	Draft *models.CheckinDraft
	Timer TimerView

	// Records is populated on the history screen
	Records []models.CheckinRecord

	// Detail is meaningful only when DetailFound is true
	DetailID    string
	Detail      models.CheckinRecord
	DetailFound bool

	// Notice reports a recoverable failure of the last intent
	Notice string
}

type Renderer interface {
	Render(RenderState)
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(RenderState)

func (f RendererFunc) Render(s RenderState) { f(s) }

type nopRenderer struct{}

func (nopRenderer) Render(RenderState) {}
