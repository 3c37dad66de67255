package model

import "fmt"

// EventType enumerates the notable match events drawn on the flow chart.
type EventType int

// Event types. The zero value is invalid so an unset type never passes as a goal.
const (
	EventUnknown EventType = iota
	EventGoal
	EventOwnGoal
	EventRedCard
)

var eventTypeNames = map[EventType]string{
	EventGoal:    "goal",
	EventOwnGoal: "own_goal",
	EventRedCard: "red_card",
}

func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the type by name.
func (t EventType) MarshalText() ([]byte, error) {
	if _, ok := eventTypeNames[t]; !ok {
		return nil, fmt.Errorf("invalid event type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a type name produced by MarshalText.
func (t *EventType) UnmarshalText(b []byte) error {
	for k, v := range eventTypeNames {
		if v == string(b) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("invalid event type %q", string(b))
}
