// Package timeline builds per-team cumulative xG step series from shot records.
package timeline

import (
	"fmt"
	"sort"

	"github.com/okian/xgflow/internal/domain/minute"
	"github.com/okian/xgflow/internal/domain/model"
)

// Match-clock anchors of every series.
const (
	KickOff  = 0
	FullTime = 90
)

// Series is an ordered, non-decreasing cumulative xG step function for one team.
// The zero value has no points; every lookup on it misses.
type Series struct {
	points []model.TimelinePoint
	total  float64
}

// shot is a filtered shot with its normalized minute.
type shot struct {
	minute int
	xg     float64
	player string
}

// Build filters shots to team and returns the team's cumulative series bounded
// by the kick-off and full-time sentinels. Shots with unparseable minutes are
// dropped and reported; the rest of the series is still built.
func Build(shots []model.ShotRecord, team string) (Series, []model.Diagnostic) {
	var (
		kept  []shot
		diags []model.Diagnostic
	)
	for i, s := range shots {
		if s.Team != team {
			continue
		}
		m, err := minute.Normalize(s.MinuteText)
		if err != nil {
			diags = append(diags, model.Diagnostic{
				Kind:       model.DiagMalformedMinute,
				Source:     model.SourceShot,
				Index:      i,
				Team:       s.Team,
				MinuteText: s.MinuteText,
				Detail:     err.Error(),
			})
			continue
		}
		kept = append(kept, shot{minute: m, xg: s.XG, player: s.Player})
	}

	// Same-minute shots keep their input order.
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].minute < kept[j].minute })

	points := make([]model.TimelinePoint, 0, len(kept)+2)
	points = append(points, model.TimelinePoint{Minute: KickOff, Sentinel: true})

	var running float64
	closed := false
	for _, s := range kept {
		// Shots past full time (extra time) follow the full-time sentinel.
		if !closed && s.minute > FullTime {
			points = append(points, fullTimePoint(running))
			closed = true
		}
		running += s.xg
		points = append(points, model.TimelinePoint{
			Minute:     s.minute,
			Cumulative: running,
			Player:     s.player,
		})
	}
	if !closed {
		points = append(points, fullTimePoint(running))
	}

	return Series{points: points, total: running}, diags
}

func fullTimePoint(value float64) model.TimelinePoint {
	return model.TimelinePoint{Minute: FullTime, Cumulative: value, Sentinel: true}
}

// FromPoints wraps already-built points in a Series after checking they are
// ordered by minute and non-decreasing. The slice is copied.
func FromPoints(points []model.TimelinePoint) (Series, error) {
	for i := 1; i < len(points); i++ {
		if points[i].Minute < points[i-1].Minute {
			return Series{}, fmt.Errorf("%w: index %d", ErrUnordered, i)
		}
		if points[i].Cumulative < points[i-1].Cumulative {
			return Series{}, fmt.Errorf("%w: index %d", ErrNotMonotonic, i)
		}
	}
	cp := make([]model.TimelinePoint, len(points))
	copy(cp, points)

	var total float64
	if len(cp) > 0 {
		total = cp[len(cp)-1].Cumulative
	}
	return Series{points: cp, total: total}, nil
}

// Points returns a copy of the series points in chronological order.
func (s Series) Points() []model.TimelinePoint {
	cp := make([]model.TimelinePoint, len(s.points))
	copy(cp, s.points)
	return cp
}

// Len returns the number of points, sentinels included.
func (s Series) Len() int { return len(s.points) }

// Total returns the team's summed xG.
func (s Series) Total() float64 { return s.total }

// At returns the cumulative value in effect at minute m: the value of the last
// point whose minute is <= m. ok is false when no such point exists.
func (s Series) At(m int) (value float64, ok bool) {
	i := sort.Search(len(s.points), func(i int) bool { return s.points[i].Minute > m })
	if i == 0 {
		return 0, false
	}
	return s.points[i-1].Cumulative, true
}
