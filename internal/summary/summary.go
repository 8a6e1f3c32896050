// Package summary renders check-in records as plain text for copying and sharing.
package summary

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/cbroglie/mustache"

	"github.com/julianstephens/pausa/internal/models"
	"github.com/julianstephens/pausa/internal/utils"
)

// Tags sit on the same line as text so output does not depend on
// standalone-line handling.
const DefaultSummaryTemplate = `Resumo do meu check-in (Pausa Interna)
-----------------------------------
Quando: {{{when}}}
Como eu estava: {{{intensity}}}{{#has_theme}}
Tema: {{{theme}}}{{/has_theme}}
Clareza: {{{clarity}}}{{#has_micro_pause}}
Micro-pausa: {{{micro_pause}}}{{/has_micro_pause}}{{#has_note}}

Descarrego:
{{{note}}}{{/has_note}}

Observação: este app não é terapia; é um apoio leve para organização interna.`

const DefaultShareTemplate = `Resumo de um check-in pessoal
(feito no app Pausa Interna)

Quando: {{{when}}}
Como eu estava: {{{intensity}}}{{#has_theme}}
Tema: {{{theme}}}{{/has_theme}}
Clareza: {{{clarity}}}{{#has_micro_pause}}
Micro-pausa: {{{micro_pause}}}{{/has_micro_pause}}{{#has_note}}

Descarrego:
{{{note}}}{{/has_note}}

Compartilho isso porque confio em você.
Não precisa responder agora.`

const shareBaseURL = "https://wa.me/?text="

type Options struct {
	// Template file paths; empty uses the built-in templates
	SummaryPath string
	SharePath   string
	// Location for displayed timestamps; nil means local time
	Location *time.Location
}

type Renderer struct {
	summary *mustache.Template
	share   *mustache.Template
	loc     *time.Location
}

func New(opts Options) (*Renderer, error) {
	summaryTpl, err := loadTemplate(opts.SummaryPath, DefaultSummaryTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to load summary template: %w", err)
	}
	shareTpl, err := loadTemplate(opts.SharePath, DefaultShareTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to load share template: %w", err)
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &Renderer{summary: summaryTpl, share: shareTpl, loc: loc}, nil
}

func loadTemplate(path, fallback string) (*mustache.Template, error) {
	if path == "" {
		return mustache.ParseString(fallback)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return mustache.ParseString(string(data))
}

// Summary is the text meant for a therapist or a personal journal
func (r *Renderer) Summary(rec models.CheckinRecord) (string, error) {
	out, err := r.summary.Render(r.context(rec))
	if err != nil {
		return "", fmt.Errorf("failed to render summary: %w", err)
	}
	return out, nil
}

// Share is the text meant to be sent to a trusted person
func (r *Renderer) Share(rec models.CheckinRecord) (string, error) {
	out, err := r.share.Render(r.context(rec))
	if err != nil {
		return "", fmt.Errorf("failed to render share text: %w", err)
	}
	return out, nil
}

func (r *Renderer) context(rec models.CheckinRecord) map[string]interface{} {
	return map[string]interface{}{
		"id":              rec.ID,
		"when":            utils.FormatDateTime(rec.CreatedAt, r.loc),
		"intensity":       rec.Intensity.Label(),
		"has_theme":       rec.ThemeText() != "",
		"theme":           rec.ThemeText(),
		"clarity":         rec.ClarityAnswer.Label(),
		"has_micro_pause": rec.MicroPause != "",
		"micro_pause":     rec.MicroPause.Label(),
		"has_note":        rec.NoteText() != "",
		"note":            rec.NoteText(),
	}
}

// ShareURL builds a WhatsApp link carrying text. Spaces are encoded as %20.
func ShareURL(text string) string {
	return shareBaseURL + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
