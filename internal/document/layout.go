// Package document renders a stored report as a printable PDF.
package document

import (
	"laporantdx/backend/internal/config"
	"laporantdx/backend/internal/models"
	"strconv"
	"time"
)

const (
	Title       = "LAPORAN TEKNIS HARIAN"
	placeholder = "-"

	submittedLayout = "02-01-2006 15:04"
	dateLayout      = "02-01-2006"
)

// Field is one labelled value. Link is set when the value should be clickable.
type Field struct {
	Label string
	Value string
	Link  string
}

type ScheduleRow struct {
	Slot    string
	Program string
	Format  string
}

type IncidentRow struct {
	Description string
	Time        string
	Link        string
}

// Layout is everything printed for one report, already resolved to text.
type Layout struct {
	Title     string
	Identity  []Field
	Evidence  []Field
	Schedule  []ScheduleRow
	Incidents []IncidentRow
	Outcome   string
}

type Renderer struct {
	loc      *time.Location
	compress bool
}

func NewRenderer() *Renderer {
	return &Renderer{loc: config.DeskLocation(), compress: true}
}

// SetCompression toggles stream compression of rendered documents. It is on
// by default; turning it off leaves page text readable in the raw bytes.
func (rd *Renderer) SetCompression(compress bool) {
	rd.compress = compress
}

// Build resolves a report into its printable sections. It depends only on
// the record.
func (rd *Renderer) Build(r *models.Report) Layout {
	l := Layout{
		Title: Title,
		Identity: []Field{
			{Label: "No. Laporan", Value: strconv.FormatUint(uint64(r.ID), 10)},
			{Label: "Waktu Submit", Value: r.SubmittedAt.In(rd.loc).Format(submittedLayout) + " " + config.DeskZoneLabel},
			{Label: "Tanggal", Value: orDash(time.Time(r.ReportDate).Format(dateLayout))},
			{Label: "Petugas TD", Value: orDash(r.OfficerTD)},
			{Label: "Petugas PDU", Value: orDash(r.OfficerPDU)},
			{Label: "Petugas Transmisi", Value: orDash(r.OfficerTX)},
		},
		Evidence: []Field{
			linkField("Studio", r.EvidenceStudio),
			linkField("Streaming", r.EvidenceStreaming),
			linkField("Subcontrol", r.EvidenceSubcontrol),
		},
		Outcome: orDash(r.Outcome),
	}

	for _, slot := range r.Slots() {
		l.Schedule = append(l.Schedule, ScheduleRow{
			Slot:    slot.Label,
			Program: orDash(slot.Program),
			Format:  orDash(slot.Format),
		})
	}

	if hasIncidents(r.Incidents) {
		for _, inc := range r.Incidents {
			l.Incidents = append(l.Incidents, IncidentRow{
				Description: orDash(inc.Description),
				Time:        orDash(inc.Time),
				Link:        orDash(inc.Link),
			})
		}
	}
	return l
}

func hasIncidents(incidents []models.Incident) bool {
	for _, inc := range incidents {
		if !inc.Blank() {
			return true
		}
	}
	return false
}

func linkField(label, url string) Field {
	if url == "" {
		return Field{Label: label, Value: placeholder}
	}
	return Field{Label: label, Value: url, Link: url}
}

func orDash(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}
