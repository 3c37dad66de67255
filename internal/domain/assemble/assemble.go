// Package assemble reconciles a match's shots and events into the per-team xG
// flow and the annotated event overlay.
package assemble

import (
	"fmt"
	"strings"

	"github.com/okian/xgflow/internal/domain/events"
	"github.com/okian/xgflow/internal/domain/model"
	"github.com/okian/xgflow/internal/domain/timeline"
)

// Match is the scraped input for one fixture.
type Match struct {
	Home   string
	Away   string
	Shots  []model.ShotRecord
	Events []model.RawEvent
}

// Result is the reconciled view of one match. It shares no memory with the
// Match it was built from.
type Result struct {
	HomeTeam    string
	AwayTeam    string
	Home        timeline.Series
	Away        timeline.Series
	Events      []model.ClassifiedEvent
	Diagnostics []model.Diagnostic
}

// Assemble builds both teams' series and resolves the event list against them.
// Record-level problems are reported in Result.Diagnostics and never fail the
// call; only an unusable home/away designation returns an error.
func Assemble(m Match) (Result, error) {
	if err := validate(m); err != nil {
		return Result{}, err
	}

	var diags []model.Diagnostic
	for i, s := range m.Shots {
		if s.Team != m.Home && s.Team != m.Away {
			diags = append(diags, model.Diagnostic{
				Kind:       model.DiagUnknownTeamReference,
				Source:     model.SourceShot,
				Index:      i,
				Team:       s.Team,
				MinuteText: s.MinuteText,
				Detail:     fmt.Sprintf("team %q is neither %q nor %q", s.Team, m.Home, m.Away),
			})
		}
	}

	home, homeDiags := timeline.Build(m.Shots, m.Home)
	away, awayDiags := timeline.Build(m.Shots, m.Away)
	diags = append(diags, homeDiags...)
	diags = append(diags, awayDiags...)

	classified, eventDiags := events.Resolve(m.Events, map[string]timeline.Series{
		m.Home: home,
		m.Away: away,
	})
	diags = append(diags, eventDiags...)

	return Result{
		HomeTeam:    m.Home,
		AwayTeam:    m.Away,
		Home:        home,
		Away:        away,
		Events:      classified,
		Diagnostics: diags,
	}, nil
}

func validate(m Match) error {
	switch {
	case strings.TrimSpace(m.Home) == "":
		return fmt.Errorf("%w: missing home team", ErrInvalidMatch)
	case strings.TrimSpace(m.Away) == "":
		return fmt.Errorf("%w: missing away team", ErrInvalidMatch)
	case m.Home == m.Away:
		return fmt.Errorf("%w: home and away are both %q", ErrInvalidMatch, m.Home)
	}
	return nil
}

// CountByKind tallies diagnostics by kind.
func (r Result) CountByKind() map[model.DiagnosticKind]int {
	counts := make(map[model.DiagnosticKind]int, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		counts[d.Kind]++
	}
	return counts
}
