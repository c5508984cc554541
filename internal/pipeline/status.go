package pipeline

import "time"

// Status is the derived lifecycle status of a time-bounded listing
// (ICO rounds, airdrop campaigns). It is computed from the clock on
// every read and never stored.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

// Badge is the display tuple the frontend renders next to a status.
type Badge struct {
	Indicator string `json:"indicator"`
	Text      string `json:"text"`
}

// Classify derives the status of a record from its start/end window.
// The live window is inclusive on both ends: now==start and now==end
// both classify as live. Records with a missing start or end date are
// treated as upcoming.
func Classify(now time.Time, start, end *time.Time) Status {
	if start == nil || end == nil {
		return StatusUpcoming
	}
	if now.Before(*start) {
		return StatusUpcoming
	}
	if now.After(*end) {
		return StatusCompleted
	}
	return StatusLive
}

// BadgeFor returns the indicator/text colors for a status.
func BadgeFor(s Status) Badge {
	switch s {
	case StatusLive:
		return Badge{Indicator: "#22c55e", Text: "#16a34a"}
	case StatusCompleted:
		return Badge{Indicator: "#9ca3af", Text: "#6b7280"}
	default:
		return Badge{Indicator: "#eab308", Text: "#ca8a04"}
	}
}
