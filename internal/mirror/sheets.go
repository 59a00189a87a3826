// Package mirror appends every stored report as one row of an external
// spreadsheet.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"laporantdx/backend/internal/config"
	"laporantdx/backend/internal/models"
	"strconv"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const timestampLayout = "2006-01-02 15:04:05"

// Columns is the header matching Row, in order.
var Columns = []string{
	"id", "report_date", "officer_td", "officer_pdu", "officer_tx",
	"evidence_studio", "evidence_streaming", "evidence_subcontrol",
	"program_15", "format_15", "program_16", "format_16",
	"program_17", "format_17", "program_18", "format_18",
	"incident_descriptions", "incident_times", "incident_links",
	"outcome", "submitted_at",
}

// Row flattens a stored report into the spreadsheet's column order.
func Row(r *models.Report) []string {
	descriptions, times, links := r.PackedIncidents()
	row := []string{
		strconv.FormatUint(uint64(r.ID), 10),
		time.Time(r.ReportDate).Format(config.DateLayout),
		r.OfficerTD,
		r.OfficerPDU,
		r.OfficerTX,
		r.EvidenceStudio,
		r.EvidenceStreaming,
		r.EvidenceSubcontrol,
	}
	for _, slot := range r.Slots() {
		row = append(row, slot.Program, slot.Format)
	}
	return append(row,
		descriptions,
		times,
		links,
		r.Outcome,
		r.SubmittedAt.In(config.DeskLocation()).Format(timestampLayout),
	)
}

// Appender is the part of the Sheets API the mirror uses.
type Appender interface {
	Append(ctx context.Context, spreadsheetID, writeRange string, values [][]interface{}) error
}

type SheetsMirror struct {
	appender      Appender
	spreadsheetID string
	writeRange    string
}

func NewSheetsMirror(appender Appender, spreadsheetID, writeRange string) *SheetsMirror {
	return &SheetsMirror{appender: appender, spreadsheetID: spreadsheetID, writeRange: writeRange}
}

// Append writes row after the last row of the configured range.
func (m *SheetsMirror) Append(ctx context.Context, row []string) error {
	if len(row) == 0 {
		return errors.New("mirror: empty row")
	}
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}
	if err := m.appender.Append(ctx, m.spreadsheetID, m.writeRange, [][]interface{}{values}); err != nil {
		return fmt.Errorf("mirror append: %w", err)
	}
	return nil
}

// AppendReport mirrors one stored report.
func (m *SheetsMirror) AppendReport(ctx context.Context, r *models.Report) error {
	return m.Append(ctx, Row(r))
}

// SheetsAppender talks to the Google Sheets v4 API.
type SheetsAppender struct {
	svc *sheets.Service
}

func NewSheetsAppender(ctx context.Context, opts ...option.ClientOption) (*SheetsAppender, error) {
	opts = append(opts, option.WithScopes(sheets.SpreadsheetsScope))
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return &SheetsAppender{svc: svc}, nil
}

func (a *SheetsAppender) Append(ctx context.Context, spreadsheetID, writeRange string, values [][]interface{}) error {
	_, err := a.svc.Spreadsheets.Values.
		Append(spreadsheetID, writeRange, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}
