package samplematch

import (
	"errors"
	"fmt"
	"math"

	"github.com/okian/xgflow/internal/adapters/matchfile"
	"github.com/okian/xgflow/internal/domain/events"
	"github.com/okian/xgflow/internal/domain/timeline"
)

const xgTolerance = 1e-9

// Verify checks doc against the match f it was assembled from. Every
// violation found is returned, joined.
func Verify(f matchfile.File, doc matchfile.Document) error {
	var errs []error
	errs = append(errs, verifySeries(f, f.Home, doc.Home)...)
	errs = append(errs, verifySeries(f, f.Away, doc.Away)...)

	if len(doc.Diagnostics) > 0 {
		errs = append(errs, fmt.Errorf("%d unexpected diagnostics, first: %s", len(doc.Diagnostics), doc.Diagnostics[0].Kind))
	}

	if want := notableEvents(f); len(doc.Events) != want {
		errs = append(errs, fmt.Errorf("events: got %d, want %d", len(doc.Events), want))
	}
	for i, ev := range doc.Events {
		if ev.CumulativeXG == nil {
			errs = append(errs, fmt.Errorf("event %d (%s %s): missing cumulative xG", i, ev.Type, ev.MinuteLabel))
		}
		if i > 0 && ev.Minute < doc.Events[i-1].Minute {
			errs = append(errs, fmt.Errorf("event %d: minute %d before %d", i, ev.Minute, doc.Events[i-1].Minute))
		}
	}
	return errors.Join(errs...)
}

func verifySeries(f matchfile.File, team string, s matchfile.TeamSeries) []error {
	var errs []error
	if s.Team != team {
		errs = append(errs, fmt.Errorf("series team: got %q, want %q", s.Team, team))
	}
	if len(s.Points) < 2 {
		return append(errs, fmt.Errorf("%s: %d points, want at least the two sentinels", team, len(s.Points)))
	}

	first := s.Points[0]
	if !first.Sentinel || first.Minute != timeline.KickOff || first.Cumulative != 0 {
		errs = append(errs, fmt.Errorf("%s: first point %+v is not the kick-off sentinel", team, first))
	}

	fullTime := 0
	for i, p := range s.Points {
		if p.Sentinel && p.Minute == timeline.FullTime {
			fullTime++
		}
		if i == 0 {
			continue
		}
		prev := s.Points[i-1]
		if p.Minute < prev.Minute {
			errs = append(errs, fmt.Errorf("%s: point %d minute %d before %d", team, i, p.Minute, prev.Minute))
		}
		if p.Cumulative < prev.Cumulative {
			errs = append(errs, fmt.Errorf("%s: point %d cumulative %.4f below %.4f", team, i, p.Cumulative, prev.Cumulative))
		}
	}
	if fullTime != 1 {
		errs = append(errs, fmt.Errorf("%s: %d full-time sentinels, want 1", team, fullTime))
	}

	var sum float64
	for _, shot := range f.Shots {
		if shot.Team == team {
			sum += shot.XG
		}
	}
	last := s.Points[len(s.Points)-1].Cumulative
	if math.Abs(last-sum) > xgTolerance || math.Abs(s.TotalXG-sum) > xgTolerance {
		errs = append(errs, fmt.Errorf("%s: final %.4f total %.4f, want %.4f", team, last, s.TotalXG, sum))
	}
	return errs
}

func notableEvents(f matchfile.File) int {
	n := 0
	for _, ev := range f.Events {
		if _, ok := events.Classify(ev.Description); ok {
			n++
		}
	}
	return n
}
