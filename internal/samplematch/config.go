// Package samplematch generates synthetic matches, submits them to a running
// xgflow API and checks the returned timelines.
package samplematch

import (
	"errors"
	"time"

	"github.com/okian/xgflow/internal/adapters/matchfile"
)

// Errors reported by Run.
var (
	ErrUnhealthy    = errors.New("service unhealthy")
	ErrVerification = errors.New("timeline verification failed")
)

// Config holds configuration for a sample run.
type Config struct {
	BaseURL    string        // Base URL of the service
	NumMatches int           // Number of matches to generate
	Workers    int           // Number of concurrent submissions
	Timeout    time.Duration // HTTP request timeout
	OutputDir  string        // Directory for generated match files, empty to skip
	Seed       uint64        // Generator seed, 0 picks one from the clock
	Verbose    bool          // Log every verified match
}

// timelineResponse is the body of a successful POST /api/v1/timelines.
type timelineResponse struct {
	RequestID string `json:"request_id"`
	matchfile.Document
}

// Stats holds run statistics.
type Stats struct {
	MatchesGenerated int
	Submitted        int
	Successful       int
	Rejected         int
	Failed           int
	Verified         int
	Violations       int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
