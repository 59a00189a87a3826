package models

import "time"

const FeedEventReportCreated = "report_created"

// FeedEvent is pushed to connected admin dashboards.
type FeedEvent struct {
	Type        string    `json:"type"`
	ReportID    uint      `json:"id"`
	ReportDate  string    `json:"report_date"`
	Outcome     string    `json:"outcome"`
	OfficerTD   string    `json:"officer_td"`
	SubmittedAt time.Time `json:"submitted_at"`
}
