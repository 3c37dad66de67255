// Package events classifies raw match incidents and pins each notable one to
// its team's cumulative xG at the minute it happened.
package events

import (
	"strings"

	"github.com/okian/xgflow/internal/domain/model"
)

// rule maps a description predicate to the event type it implies.
type rule struct {
	name  string
	match func(desc string) bool
	typ   model.EventType
}

func containsAny(subs ...string) func(string) bool {
	return func(desc string) bool {
		for _, s := range subs {
			if strings.Contains(desc, s) {
				return true
			}
		}
		return false
	}
}

// rules are evaluated in order against the lower-cased description; the first
// match wins.
var rules = []rule{
	{name: "dismissal", match: containsAny("red card", "second yellow card"), typ: model.EventRedCard},
	{name: "own_goal", match: containsAny("own goal"), typ: model.EventOwnGoal},
	{name: "penalty", match: containsAny("penalty kick"), typ: model.EventGoal},
	{name: "goal", match: containsAny("goal"), typ: model.EventGoal},
}

// Classify returns the event type implied by description. ok is false when the
// description is not a notable event.
func Classify(description string) (model.EventType, bool) {
	desc := strings.ToLower(description)
	for _, r := range rules {
		if r.match(desc) {
			return r.typ, true
		}
	}
	return model.EventUnknown, false
}
