package flow

import (
	"github.com/julianstephens/pausa/internal/constants"
	"github.com/julianstephens/pausa/internal/models"
)

// TimedPause is the countdown attached to a micro-pause choice
type TimedPause struct {
	Seconds int
	Label   string
}

// Pauses maps micro-pause choices to their countdown. Choices without an
// entry go straight to the pause-done screen.
type Pauses map[models.MicroPause]TimedPause

func DefaultPauses() Pauses {
	return Pauses{
		models.PauseRespirar: {Seconds: constants.DefaultBreatheSeconds, Label: constants.DefaultBreatheLabel},
		models.PausePausa:    {Seconds: constants.DefaultSilentSeconds, Label: constants.DefaultSilentLabel},
	}
}

func (p Pauses) Timed(choice models.MicroPause) (TimedPause, bool) {
	tp, ok := p[choice]
	if !ok || tp.Seconds <= 0 {
		return TimedPause{}, false
	}
	return tp, true
}

const (
	noticeSaveFailed   = "Não foi possível salvar o check-in. Tente novamente."
	noticeDeleteFailed = "Não foi possível apagar o registro."
	noticeClearFailed  = "Não foi possível apagar os dados."
)
