package models

import (
	"laporantdx/backend/internal/config"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Report is one submitted shift-handover record. It is written once by the
// store and never updated.
type Report struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// SubmittedAt is the server clock at submission, in the desk zone, minute precision.
	SubmittedAt time.Time `gorm:"not null;index" json:"submitted_at"`
	// ReportDate is the calendar date the report covers.
	ReportDate datatypes.Date `gorm:"not null;index" json:"report_date"`

	OfficerTD  string `gorm:"type:text" json:"officer_td"`
	OfficerPDU string `gorm:"type:text" json:"officer_pdu"`
	// OfficerTX holds every transmission officer, joined with ", ".
	OfficerTX string `gorm:"type:text" json:"officer_tx"`

	EvidenceStudio     string `gorm:"type:text" json:"evidence_studio"`
	EvidenceStreaming  string `gorm:"type:text" json:"evidence_streaming"`
	EvidenceSubcontrol string `gorm:"type:text" json:"evidence_subcontrol"`

	Program15 string `gorm:"column:program_15;type:text" json:"program_15"`
	Format15  string `gorm:"column:format_15;type:text" json:"format_15"`
	Program16 string `gorm:"column:program_16;type:text" json:"program_16"`
	Format16  string `gorm:"column:format_16;type:text" json:"format_16"`
	Program17 string `gorm:"column:program_17;type:text" json:"program_17"`
	Format17  string `gorm:"column:format_17;type:text" json:"format_17"`
	Program18 string `gorm:"column:program_18;type:text" json:"program_18"`
	Format18  string `gorm:"column:format_18;type:text" json:"format_18"`

	Incidents datatypes.JSONSlice[Incident] `json:"incidents"`

	Outcome string `gorm:"type:text;not null" json:"outcome"`
}

func (Report) TableName() string { return "reports" }

// Incident is one problem noted during the shift. Empty fields are allowed.
type Incident struct {
	Description string `json:"description"`
	Time        string `json:"time"`
	Link        string `json:"link"`
}

// Blank reports whether the incident carries no data at all.
func (i Incident) Blank() bool {
	return i.Description == "" && i.Time == "" && i.Link == ""
}

// Slot is one row of the fixed schedule grid.
type Slot struct {
	Label   string
	Program string
	Format  string
}

// Slots returns the four schedule rows in slot order.
func (r *Report) Slots() [4]Slot {
	pairs := [4][2]string{
		{r.Program15, r.Format15},
		{r.Program16, r.Format16},
		{r.Program17, r.Format17},
		{r.Program18, r.Format18},
	}
	var out [4]Slot
	for i, p := range pairs {
		out[i] = Slot{Label: config.ScheduleSlots[i], Program: p[0], Format: p[1]}
	}
	return out
}

// SetSlots copies program/format pairs into the fixed slot columns.
func (r *Report) SetSlots(slots [4]Slot) {
	r.Program15, r.Format15 = slots[0].Program, slots[0].Format
	r.Program16, r.Format16 = slots[1].Program, slots[1].Format
	r.Program17, r.Format17 = slots[2].Program, slots[2].Format
	r.Program18, r.Format18 = slots[3].Program, slots[3].Format
}

// IncidentTimes lists the time of every incident, in order.
func (r *Report) IncidentTimes() []string {
	out := make([]string, 0, len(r.Incidents))
	for _, inc := range r.Incidents {
		out = append(out, inc.Time)
	}
	return out
}

// PackedIncidents joins descriptions, times and links with ", " each, the
// layout used by the spreadsheet mirror.
func (r *Report) PackedIncidents() (descriptions, times, links string) {
	d := make([]string, 0, len(r.Incidents))
	t := make([]string, 0, len(r.Incidents))
	l := make([]string, 0, len(r.Incidents))
	for _, inc := range r.Incidents {
		d = append(d, inc.Description)
		t = append(t, inc.Time)
		l = append(l, inc.Link)
	}
	return strings.Join(d, ", "), strings.Join(t, ", "), strings.Join(l, ", ")
}

// AlignIncidents zips the three incident sequences into one list. The result
// has the length of the longest input; shorter inputs leave empty fields.
func AlignIncidents(descriptions, times, links []string) []Incident {
	n := len(descriptions)
	if len(times) > n {
		n = len(times)
	}
	if len(links) > n {
		n = len(links)
	}
	out := make([]Incident, n)
	for i := 0; i < n; i++ {
		out[i] = Incident{
			Description: at(descriptions, i),
			Time:        at(times, i),
			Link:        at(links, i),
		}
	}
	return out
}

func at(values []string, i int) string {
	if i < len(values) {
		return strings.TrimSpace(values[i])
	}
	return ""
}
