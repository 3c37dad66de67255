package events

import (
	"fmt"
	"sort"

	"github.com/okian/xgflow/internal/domain/minute"
	"github.com/okian/xgflow/internal/domain/model"
	"github.com/okian/xgflow/internal/domain/timeline"
)

// Resolve classifies raw and attaches to every notable event the cumulative xG
// of its team at the event's minute. Records that are not notable are dropped
// silently; records with an unknown team or malformed minute are dropped and
// reported. An event whose lookup finds no timeline point is kept with a nil
// value and reported. The result is ordered by minute, ties in input order.
func Resolve(raw []model.RawEvent, timelines map[string]timeline.Series) ([]model.ClassifiedEvent, []model.Diagnostic) {
	out := make([]model.ClassifiedEvent, 0, len(raw))
	var diags []model.Diagnostic

	for i, ev := range raw {
		typ, ok := Classify(ev.Description)
		if !ok {
			continue
		}

		series, known := timelines[ev.Team]
		if !known {
			diags = append(diags, diagnostic(model.DiagUnknownTeamReference, i, ev,
				fmt.Sprintf("team %q is not part of the match", ev.Team)))
			continue
		}

		m, err := minute.Normalize(ev.MinuteText)
		if err != nil {
			diags = append(diags, diagnostic(model.DiagMalformedMinute, i, ev, err.Error()))
			continue
		}

		ce := model.ClassifiedEvent{RawEvent: ev, Type: typ, Minute: m}
		if v, ok := series.At(m); ok {
			ce.CumulativeXG = &v
		} else {
			diags = append(diags, diagnostic(model.DiagMissingCumulativeValue, i, ev,
				fmt.Sprintf("no timeline point at or before minute %d", m)))
		}
		out = append(out, ce)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Minute < out[j].Minute })
	return out, diags
}

func diagnostic(kind model.DiagnosticKind, index int, ev model.RawEvent, detail string) model.Diagnostic {
	return model.Diagnostic{
		Kind:       kind,
		Source:     model.SourceEvent,
		Index:      index,
		Team:       ev.Team,
		MinuteText: ev.MinuteText,
		Detail:     detail,
	}
}
