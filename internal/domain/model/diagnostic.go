package model

// DiagnosticKind names a record-level data problem found while assembling a match.
type DiagnosticKind string

// Diagnostic kinds. None of them fails a match.
const (
	DiagMalformedMinute        DiagnosticKind = "malformed_minute"
	DiagUnknownTeamReference   DiagnosticKind = "unknown_team_reference"
	DiagMissingCumulativeValue DiagnosticKind = "missing_cumulative_value"
)

// RecordSource tells which input list a diagnostic refers to.
type RecordSource string

// Record sources.
const (
	SourceShot  RecordSource = "shot"
	SourceEvent RecordSource = "event"
)

// Diagnostic describes one dropped or flagged input record. Index is the
// record's position in its input list.
type Diagnostic struct {
	Kind       DiagnosticKind `json:"kind"`
	Source     RecordSource   `json:"source"`
	Index      int            `json:"index"`
	Team       string         `json:"team"`
	MinuteText string         `json:"minute"`
	Detail     string         `json:"detail,omitempty"`
}
