package models

import "time"

type Intensity string

const (
	IntensityLeve   Intensity = "leve"
	IntensityNeutro Intensity = "neutro"
	IntensityPesado Intensity = "pesado"
)

// Intensities lists the selectable intensities in display order
var Intensities = []Intensity{IntensityLeve, IntensityNeutro, IntensityPesado}

func (i Intensity) Valid() bool {
	switch i {
	case IntensityLeve, IntensityNeutro, IntensityPesado:
		return true
	}
	return false
}

func (i Intensity) Label() string {
	switch i {
	case IntensityLeve:
		return "Leve"
	case IntensityNeutro:
		return "Neutro"
	case IntensityPesado:
		return "Pesado"
	}
	return "—"
}

type ClarityAnswer string

const (
	ClarityAcao        ClarityAnswer = "acao"
	ClarityAcolhimento ClarityAnswer = "acolhimento"
	ClarityNaoSei      ClarityAnswer = "nao_sei"
)

var ClarityAnswers = []ClarityAnswer{ClarityAcao, ClarityAcolhimento, ClarityNaoSei}

func (c ClarityAnswer) Valid() bool {
	switch c {
	case ClarityAcao, ClarityAcolhimento, ClarityNaoSei:
		return true
	}
	return false
}

func (c ClarityAnswer) Label() string {
	switch c {
	case ClarityAcao:
		return "Ação (um passo pequeno)"
	case ClarityAcolhimento:
		return "Acolhimento"
	case ClarityNaoSei:
		return "Não sei"
	}
	return "—"
}

type MicroPause string

const (
	PauseRespirar MicroPause = "respirar"
	PausePausa    MicroPause = "pausa"
	PauseAlongar  MicroPause = "alongar"
	PauseAgua     MicroPause = "agua"
	PausePular    MicroPause = "pular"
)

var MicroPauses = []MicroPause{PauseRespirar, PausePausa, PauseAlongar, PauseAgua, PausePular}

func (p MicroPause) Valid() bool {
	switch p {
	case PauseRespirar, PausePausa, PauseAlongar, PauseAgua, PausePular:
		return true
	}
	return false
}

func (p MicroPause) Label() string {
	switch p {
	case PauseRespirar:
		return "Respirar 60s"
	case PausePausa:
		return "Pausa de 2 min"
	case PauseAlongar:
		return "Alongar"
	case PauseAgua:
		return "Água"
	case PausePular:
		return "Pulou por agora"
	}
	return "—"
}

// CheckinDraft is the in-progress check-in owned by the flow machine.
// Theme and Note are nil when absent; they are never set to a blank string.
type CheckinDraft struct {
	ID            string
	CreatedAt     time.Time
	Intensity     Intensity
	Theme         *string
	NoteDraft     string
	SaveNote      bool
	Note          *string
	ClarityAnswer ClarityAnswer
	MicroPause    MicroPause
}

// Clone returns a deep copy so callers cannot mutate the machine's draft
func (d CheckinDraft) Clone() CheckinDraft {
	d.Theme = cloneString(d.Theme)
	d.Note = cloneString(d.Note)
	return d
}

// Record converts the draft into the immutable record that gets persisted
func (d CheckinDraft) Record() CheckinRecord {
	return CheckinRecord{
		ID:            d.ID,
		CreatedAt:     d.CreatedAt,
		Intensity:     d.Intensity,
		Theme:         cloneString(d.Theme),
		Note:          cloneString(d.Note),
		ClarityAnswer: d.ClarityAnswer,
		MicroPause:    d.MicroPause,
		Deleted:       false,
	}
}

// CheckinRecord is a finished check-in. MicroPause may be empty for records
// written by older clients; everything reading records must tolerate that.
type CheckinRecord struct {
	ID            string
	CreatedAt     time.Time
	Intensity     Intensity
	Theme         *string
	Note          *string
	ClarityAnswer ClarityAnswer
	MicroPause    MicroPause
	Deleted       bool // reserved, deletion is currently hard
}

// Clone returns a copy that shares no pointers with r
func (r CheckinRecord) Clone() CheckinRecord {
	r.Theme = cloneString(r.Theme)
	r.Note = cloneString(r.Note)
	return r
}

func (r CheckinRecord) ThemeText() string {
	if r.Theme == nil {
		return ""
	}
	return *r.Theme
}

func (r CheckinRecord) NoteText() string {
	if r.Note == nil {
		return ""
	}
	return *r.Note
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
