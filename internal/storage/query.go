package storage

import (
	"laporantdx/backend/internal/config"
	"strings"
)

const (
	listAllQuery = `SELECT * FROM reports ORDER BY id DESC LIMIT ? OFFSET ?`

	listByTokenQuery = `SELECT * FROM reports WHERE program_15 ILIKE ? OR program_16 ILIKE ? OR program_17 ILIKE ? OR program_18 ILIKE ? ORDER BY id DESC LIMIT ? OFFSET ?`
)

// ListFilter selects a page of reports. Waktu is a time-window token matched
// against the program columns; unknown tokens select everything.
type ListFilter struct {
	Waktu  string
	Limit  int
	Offset int
}

// Normalize clamps the page bounds and canonicalizes the token.
func (f ListFilter) Normalize() ListFilter {
	f.Waktu = strings.ToLower(strings.TrimSpace(f.Waktu))
	if !config.FilterTokens[f.Waktu] {
		f.Waktu = ""
	}
	f.Limit = min(max(f.Limit, config.ListMinLimit), config.ListMaxLimit)
	f.Offset = max(f.Offset, 0)
	return f
}

// Pattern is the ILIKE pattern for the token, or "" when unfiltered.
func (f ListFilter) Pattern() string {
	if f.Waktu == "" {
		return ""
	}
	return "%," + f.Waktu + "%"
}

// BuildListQuery picks one of two fixed statements; caller input only ever
// reaches the database as bound parameters.
func BuildListQuery(filter ListFilter) (string, []interface{}) {
	f := filter.Normalize()
	if p := f.Pattern(); p != "" {
		return listByTokenQuery, []interface{}{p, p, p, p, f.Limit, f.Offset}
	}
	return listAllQuery, []interface{}{f.Limit, f.Offset}
}
