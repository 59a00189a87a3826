// Package analysis derives the qualitative outcome of a shift from the times
// its incidents were noted.
package analysis

import (
	"laporantdx/backend/internal/config"
	"strconv"
	"strings"
)

// Classify maps incident times to one of the four outcomes. Entries that do
// not parse as HH:MM (or HH.MM) are ignored. Only whether any incident falls
// before or at/after the broadcast cutoff matters, not order or count.
func Classify(times []string) string {
	var before, after bool
	for _, raw := range times {
		hour, ok := parseHour(raw)
		if !ok {
			continue
		}
		if hour < config.BroadcastCutoffHour {
			before = true
		} else {
			after = true
		}
	}

	switch {
	case before && after:
		return config.OutcomeDegraded
	case before:
		return config.OutcomeBeforeAir
	case after:
		return config.OutcomeDuringAir
	default:
		return config.OutcomeClear
	}
}

func parseHour(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	sep := strings.IndexAny(s, ":.")
	if sep <= 0 || sep > 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(s[:sep])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minutes := s[sep+1:]
	if len(minutes) != 2 {
		return 0, false
	}
	minute, err := strconv.Atoi(minutes)
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour, true
}
