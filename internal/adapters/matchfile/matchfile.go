// Package matchfile reads and writes the JSON documents exchanged with the
// match scraper and the chart renderer.
package matchfile

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/okian/xgflow/internal/domain/assemble"
	"github.com/okian/xgflow/internal/domain/model"
	"github.com/okian/xgflow/pkg/metrics"
)

// File is one scraped match.
type File struct {
	MatchID     string  `json:"match_id,omitempty"`
	Date        string  `json:"date,omitempty"`
	Competition string  `json:"competition,omitempty"`
	Home        string  `json:"home"`
	Away        string  `json:"away"`
	HomeGoals   *int    `json:"home_goals,omitempty"`
	AwayGoals   *int    `json:"away_goals,omitempty"`
	Shots       []Shot  `json:"shots"`
	Events      []Event `json:"events"`
}

// Shot is one row of the scraper's shots table.
type Shot struct {
	Minute  string  `json:"minute"`
	Team    string  `json:"team"`
	XG      float64 `json:"xg"`
	Player  string  `json:"player,omitempty"`
	Outcome string  `json:"outcome,omitempty"`
}

// Event is one row of the scraper's match events list.
type Event struct {
	Minute      string `json:"minute"`
	Team        string `json:"team"`
	Description string `json:"description"`
	Player      string `json:"player,omitempty"`
}

// Decode parses one match document from r.
func Decode(r io.Reader) (File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		metrics.RecordMatchFileDecoded("error")
		return File{}, fmt.Errorf("%w: read: %w", ErrDecode, err)
	}
	return Unmarshal(data)
}

// Unmarshal parses one match document from data.
func Unmarshal(data []byte) (File, error) {
	var f File
	if err := sonic.Unmarshal(data, &f); err != nil {
		metrics.RecordMatchFileDecoded("error")
		return File{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	metrics.RecordMatchFileDecoded("ok")
	return f, nil
}

// Read decodes the match document stored at path.
func Read(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		metrics.RecordMatchFileDecoded("error")
		return File{}, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	f, err := Unmarshal(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Encode writes v to w as indented JSON followed by a newline.
func Encode(w io.Writer, v any) error {
	data, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: write: %w", ErrEncode, err)
	}
	return nil
}

// Match converts the document into the assembler's input.
func (f File) Match() assemble.Match {
	m := assemble.Match{
		Home:   f.Home,
		Away:   f.Away,
		Shots:  make([]model.ShotRecord, len(f.Shots)),
		Events: make([]model.RawEvent, len(f.Events)),
	}
	for i, s := range f.Shots {
		m.Shots[i] = model.ShotRecord{
			MinuteText: s.Minute,
			Team:       s.Team,
			XG:         s.XG,
			Player:     s.Player,
			Outcome:    s.Outcome,
		}
	}
	for i, e := range f.Events {
		m.Events[i] = model.RawEvent{
			MinuteText:  e.Minute,
			Team:        e.Team,
			Description: e.Description,
			Player:      e.Player,
		}
	}
	return m
}

// Label renders the match selector label seen from team:
// "<date> <opponent> (H|A) <home goals> - <away goals>". The score is left out
// when the document carries none.
func (f File) Label(team string) string {
	opponent, venue := f.Away, "(H)"
	if team == f.Away {
		opponent, venue = f.Home, "(A)"
	}
	parts := []string{}
	if f.Date != "" {
		parts = append(parts, f.Date)
	}
	parts = append(parts, opponent, venue)
	if f.HomeGoals != nil && f.AwayGoals != nil {
		parts = append(parts, fmt.Sprintf("%d - %d", *f.HomeGoals, *f.AwayGoals))
	}
	return strings.Join(parts, " ")
}
