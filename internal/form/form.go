// Package form turns raw multi-valued submission fields into a report draft.
package form

import (
	"laporantdx/backend/internal/config"
	"laporantdx/backend/internal/models"
	"strings"
	"time"
)

// Form field names as posted by the submission page.
const (
	FieldDate          = "tanggal"
	FieldOfficerTD     = "petugas_td"
	FieldOfficerPDU    = "petugas_pdu"
	FieldOfficerTX     = "petugas_transmisi"
	FieldIncidentDesc  = "kendala_keterangan[]"
	FieldIncidentTime  = "kendala_waktu[]"
	FileStudio         = "bukti_studio"
	FileStreaming      = "bukti_streaming"
	FileSubcontrol     = "bukti_subcontrol"
	FileIncidentProofs = "kendala_bukti[]"
)

var programFields = [4][2]string{
	{"acara_15", "format_15"},
	{"acara_16", "format_16"},
	{"acara_17", "format_17"},
	{"acara_18", "format_18"},
}

// Normalizer builds drafts against an injectable clock in the desk zone.
type Normalizer struct {
	Now      func() time.Time
	Location *time.Location
}

func NewNormalizer() *Normalizer {
	return &Normalizer{Now: time.Now, Location: config.DeskLocation()}
}

// Normalize never fails: a missing or malformed date falls back to the
// server's current date.
func (n *Normalizer) Normalize(values map[string][]string) models.Draft {
	now := n.Now().In(n.Location).Truncate(time.Minute)

	draft := models.Draft{
		SubmittedAt: now,
		ReportDate:  n.reportDate(First(values, FieldDate), now),
		OfficerTD:   First(values, FieldOfficerTD),
		OfficerPDU:  First(values, FieldOfficerPDU),
		OfficerTX:   nonEmpty(values[FieldOfficerTX]),

		IncidentDescriptions: trimmed(values[FieldIncidentDesc]),
		IncidentTimes:        trimmed(values[FieldIncidentTime]),
	}
	for i, f := range programFields {
		draft.Slots[i] = models.Slot{
			Label:   config.ScheduleSlots[i],
			Program: First(values, f[0]),
			Format:  First(values, f[1]),
		}
	}
	return draft
}

func (n *Normalizer) reportDate(raw string, now time.Time) time.Time {
	if raw != "" {
		if d, err := time.ParseInLocation(config.DateLayout, raw, n.Location); err == nil {
			return d
		}
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, n.Location)
}

// First returns the first value of a field, trimmed, or "".
func First(values map[string][]string, key string) string {
	if v := values[key]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

// trimmed keeps positions so incident lists stay index-aligned.
func trimmed(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
