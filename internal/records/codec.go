package records

import (
	"encoding/json"
	"time"

	"github.com/julianstephens/pausa/internal/constants"
	"github.com/julianstephens/pausa/internal/models"
)

// wireRecord is the JSON shape of one stored check-in. Optional fields are
// pointers so that null and missing both decode to absent.
type wireRecord struct {
	ID            string  `json:"id"`
	CreatedAt     string  `json:"created_at"`
	Intensity     string  `json:"intensity"`
	Theme         *string `json:"theme"`
	Text          *string `json:"text"`
	ClarityAnswer string  `json:"clarity_answer"`
	MicroPause    *string `json:"micro_pause"`
	Deleted       bool    `json:"deleted"`
}

func encodeRecord(rec models.CheckinRecord) (json.RawMessage, error) {
	w := wireRecord{
		ID:            rec.ID,
		CreatedAt:     rec.CreatedAt.UTC().Format(constants.TimestampFormat),
		Intensity:     string(rec.Intensity),
		Theme:         rec.Theme,
		Text:          rec.Note,
		ClarityAnswer: string(rec.ClarityAnswer),
		Deleted:       rec.Deleted,
	}
	if rec.MicroPause != "" {
		p := string(rec.MicroPause)
		w.MicroPause = &p
	}
	return json.Marshal(w)
}

// decodeRecord returns ok=false for null or undecodable entries
func decodeRecord(raw json.RawMessage) (models.CheckinRecord, bool) {
	var w *wireRecord
	if err := json.Unmarshal(raw, &w); err != nil || w == nil {
		return models.CheckinRecord{}, false
	}

	rec := models.CheckinRecord{
		ID:            w.ID,
		CreatedAt:     parseTimestamp(w.CreatedAt),
		Intensity:     models.Intensity(w.Intensity),
		Theme:         w.Theme,
		Note:          w.Text,
		ClarityAnswer: models.ClarityAnswer(w.ClarityAnswer),
		Deleted:       w.Deleted,
	}
	if w.MicroPause != nil {
		rec.MicroPause = models.MicroPause(*w.MicroPause)
	}
	return rec, true
}

// parseTimestamp accepts the stored format and any RFC 3339 variant.
// Unparsable values become the zero time and therefore sort last.
func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(constants.TimestampFormat, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

// entryID extracts the id of a raw entry without a full decode. Null and
// undecodable entries report ok=false.
func entryID(raw json.RawMessage) (string, bool) {
	var probe *struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || probe == nil {
		return "", false
	}
	return probe.ID, true
}
