package models

import "time"

// Draft is normalized form input, before evidence upload and persistence.
type Draft struct {
	SubmittedAt time.Time
	ReportDate  time.Time

	OfficerTD  string
	OfficerPDU string
	OfficerTX  []string

	Slots [4]Slot

	IncidentDescriptions []string
	IncidentTimes        []string
}
