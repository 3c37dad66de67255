// Package repository keeps recently assembled timeline documents.
package repository

import (
	"context"

	"github.com/okian/xgflow/internal/adapters/matchfile"
)

// Summary is the listing row of a stored document.
type Summary struct {
	MatchID string  `json:"match_id"`
	Label   string  `json:"label"`
	Home    string  `json:"home"`
	Away    string  `json:"away"`
	HomeXG  float64 `json:"home_xg"`
	AwayXG  float64 `json:"away_xg"`
}

// Store provides read/write access to assembled documents.
type Store interface {
	// Put stores doc under its match id, replacing any previous version.
	Put(ctx context.Context, doc matchfile.Document) error

	// Get returns the document stored for matchID.
	// Returns ErrNotFound if the match is unknown.
	Get(ctx context.Context, matchID string) (matchfile.Document, error)

	// List returns up to limit summaries, most recently stored first.
	List(ctx context.Context, limit int) ([]Summary, error)

	// Count returns the number of documents held.
	Count(ctx context.Context) int
}

func summarize(doc matchfile.Document) Summary {
	return Summary{
		MatchID: doc.MatchID,
		Label:   doc.Label,
		Home:    doc.Home.Team,
		Away:    doc.Away.Team,
		HomeXG:  doc.Home.TotalXG,
		AwayXG:  doc.Away.TotalXG,
	}
}
