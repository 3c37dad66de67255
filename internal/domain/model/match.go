// Package model contains domain models passed between layers.
package model

// ShotRecord is one attempt at goal as delivered by the match scraper.
type ShotRecord struct {
	MinuteText string  // raw minute, may carry a "+N" stoppage suffix
	Team       string  // team identifier
	XG         float64 // expected-goals value of the attempt, non-negative
	Player     string  // shooter display name, may be empty
	Outcome    string  // free-form result tag, e.g. "Goal", "Saved"
}

// RawEvent is one notable incident as delivered by the match scraper.
type RawEvent struct {
	MinuteText  string // raw minute, may carry a "+N" stoppage suffix
	Team        string // side the incident is attributed to
	Description string // free text used for classification
	Player      string // display name
}

// TimelinePoint is one step of a team's cumulative xG series.
type TimelinePoint struct {
	Minute     int     `json:"minute"`
	Cumulative float64 `json:"cumulative_xg"`
	Player     string  `json:"player,omitempty"`
	Sentinel   bool    `json:"sentinel"`
}

// ClassifiedEvent is a RawEvent with its type, normalized minute and the
// team's cumulative xG at that minute. CumulativeXG is nil when no timeline
// point was eligible.
type ClassifiedEvent struct {
	RawEvent
	Type         EventType
	Minute       int
	CumulativeXG *float64
}
