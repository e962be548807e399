package enums

import "fmt"

// EventSource distinguishes calendar entries projected from orders from
// entries created directly by an operator.
type EventSource string

const (
	EventSourceOrder  EventSource = "order"
	EventSourceCustom EventSource = "custom"
)

var validEventSources = []EventSource{
	EventSourceOrder,
	EventSourceCustom,
}

// String implements fmt.Stringer.
func (e EventSource) String() string {
	return string(e)
}

// IsValid reports whether the value is a known EventSource.
func (e EventSource) IsValid() bool {
	for _, candidate := range validEventSources {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEventSource converts raw input into an EventSource.
func ParseEventSource(value string) (EventSource, error) {
	for _, candidate := range validEventSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event source %q", value)
}
