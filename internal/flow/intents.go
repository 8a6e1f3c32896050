package flow

import "github.com/julianstephens/pausa/internal/models"

// Intent is a request from presentation. The set of intents is closed.
type Intent interface {
	intent()
}

type (
	StartFlow  struct{}
	CancelFlow struct{}

	SetIntensity struct{ Value models.Intensity }
	// SetTheme with nil, empty or whitespace-only text clears the theme
	SetTheme           struct{ Text *string }
	AdvanceFromCheckin struct{}

	SetNoteDraft    struct{ Text string }
	SetSaveNote     struct{ Value bool }
	ClearDump       struct{}
	AdvanceFromDump struct{}

	BackToDump         struct{}
	SetClarityAnswer   struct{ Value models.ClarityAnswer }
	AdvanceFromClarity struct{}

	BackToClarity    struct{}
	SetMicroPause    struct{ Value models.MicroPause }
	AdvanceFromPause struct{}

	EndTimerEarly        struct{}
	AdvanceFromPauseDone struct{}

	FinalizeKeepingHome    struct{}
	FinalizeGoingToHistory struct{}

	Navigate      struct{ Screen Screen }
	OpenDetail    struct{ ID string }
	BackToHistory struct{}
	DeleteCurrent struct{}
	ClearAll      struct{}
)

func (StartFlow) intent()              {}
func (CancelFlow) intent()             {}
func (SetIntensity) intent()           {}
func (SetTheme) intent()               {}
func (AdvanceFromCheckin) intent()     {}
func (SetNoteDraft) intent()           {}
func (SetSaveNote) intent()            {}
func (ClearDump) intent()              {}
func (AdvanceFromDump) intent()        {}
func (BackToDump) intent()             {}
func (SetClarityAnswer) intent()       {}
func (AdvanceFromClarity) intent()     {}
func (BackToClarity) intent()          {}
func (SetMicroPause) intent()          {}
func (AdvanceFromPause) intent()       {}
func (EndTimerEarly) intent()          {}
func (AdvanceFromPauseDone) intent()   {}
func (FinalizeKeepingHome) intent()    {}
func (FinalizeGoingToHistory) intent() {}
func (Navigate) intent()               {}
func (OpenDetail) intent()             {}
func (BackToHistory) intent()          {}
func (DeleteCurrent) intent()          {}
func (ClearAll) intent()               {}

// Theme is a convenience for building a SetTheme from a plain string
func Theme(text string) SetTheme {
	return SetTheme{Text: &text}
}
