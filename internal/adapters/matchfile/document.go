package matchfile

import (
	"github.com/okian/xgflow/internal/domain/assemble"
	"github.com/okian/xgflow/internal/domain/minute"
	"github.com/okian/xgflow/internal/domain/model"
	"github.com/okian/xgflow/internal/domain/timeline"
)

// ColorLookup resolves a team's chart colour.
type ColorLookup interface {
	ColorOr(team string) string
}

// Document is the reconciled match handed to the chart renderer.
type Document struct {
	MatchID     string             `json:"match_id,omitempty"`
	Label       string             `json:"label,omitempty"`
	Home        TeamSeries         `json:"home"`
	Away        TeamSeries         `json:"away"`
	Events      []EventMarker      `json:"events"`
	Diagnostics []model.Diagnostic `json:"diagnostics"`
}

// TeamSeries is one side's cumulative xG line.
type TeamSeries struct {
	Team    string                `json:"team"`
	Color   string                `json:"color,omitempty"`
	TotalXG float64               `json:"total_xg"`
	Points  []model.TimelinePoint `json:"points"`
}

// EventMarker is one notable event placed on the chart. CumulativeXG is null
// when the event could not be valued.
type EventMarker struct {
	Minute       int      `json:"minute"`
	MinuteLabel  string   `json:"minute_label"`
	Team         string   `json:"team"`
	Type         string   `json:"type"`
	Player       string   `json:"player,omitempty"`
	Description  string   `json:"description"`
	CumulativeXG *float64 `json:"cumulative_xg"`
}

// NewDocument renders res for the chart. colors may be nil.
func NewDocument(f File, res assemble.Result, colors ColorLookup) Document {
	doc := Document{
		MatchID:     f.MatchID,
		Label:       f.Label(res.HomeTeam),
		Home:        teamSeries(res.HomeTeam, res.Home, colors),
		Away:        teamSeries(res.AwayTeam, res.Away, colors),
		Events:      make([]EventMarker, len(res.Events)),
		Diagnostics: res.Diagnostics,
	}
	if doc.Diagnostics == nil {
		doc.Diagnostics = []model.Diagnostic{}
	}
	for i, ev := range res.Events {
		doc.Events[i] = EventMarker{
			Minute:       ev.Minute,
			MinuteLabel:  minuteLabel(ev.MinuteText, ev.Minute),
			Team:         ev.Team,
			Type:         ev.Type.String(),
			Player:       ev.Player,
			Description:  ev.Description,
			CumulativeXG: ev.CumulativeXG,
		}
	}
	return doc
}

func teamSeries(team string, s timeline.Series, colors ColorLookup) TeamSeries {
	ts := TeamSeries{Team: team, TotalXG: s.Total(), Points: s.Points()}
	if colors != nil {
		ts.Color = colors.ColorOr(team)
	}
	return ts
}

func minuteLabel(text string, normalized int) string {
	base, added, err := minute.Split(text)
	if err != nil {
		return minute.Format(normalized, 0)
	}
	return minute.Format(base, added)
}
