package config

import "time"

const (
	// Outcome
	BroadcastCutoffHour = 15

	OutcomeClear          = "lancar"
	OutcomeBeforeAir      = "ada kendala sebelum siaran"
	OutcomeDuringAir      = "ada kendala saat siaran"
	OutcomeDegraded       = "kurang lancar"
	DateLayout            = "2006-01-02"
	DeskZoneName          = "Asia/Jakarta"
	DeskZoneLabel         = "WIB"
	DeskZoneOffsetSeconds = 7 * 60 * 60

	// Evidence
	EvidenceJPEGQuality   = 75
	EvidenceMaxDimension  = 1600
	EvidenceMaxPixels     = 40_000_000
	EvidenceMaxFileBytes  = 15 << 20
	EvidenceNameMaxRunes  = 64
	EvidenceMaxNameProbes = 20

	// Timeouts for collaborators
	UploadTimeout = 30 * time.Second
	MirrorTimeout = 15 * time.Second
	NotifyTimeout = 10 * time.Second
	FeedTimeout   = 5 * time.Second

	// Admin listing
	ListDefaultLimit = 200
	ListMinLimit     = 1
	ListMaxLimit     = 1000

	// Sessions
	SessionTTL        = 12 * time.Hour
	SessionCookieName = "laporan_session"

	OfficerCacheTTL = 5 * time.Minute
)

// ScheduleSlots are the fixed rows of the schedule grid, in display order.
var ScheduleSlots = [4]string{
	"15.00-15.59",
	"16.00-16.59",
	"17.00-17.59",
	"18.00-18.59",
}

// FilterTokens are the time-window tokens accepted by the admin listing.
var FilterTokens = map[string]bool{
	"pagi": true,
	"sore": true,
}

// DeskLocation returns the fixed zone every timestamp is recorded in.
func DeskLocation() *time.Location {
	loc, err := time.LoadLocation(DeskZoneName)
	if err != nil {
		return time.FixedZone(DeskZoneLabel, DeskZoneOffsetSeconds)
	}
	return loc
}
