package service

import (
	"fmt"
	"time"
)

var offsetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// ParseTimestamp reads an ISO 8601 timestamp with an explicit offset. A
// trailing "Z" is UTC. Timestamps without an offset are rejected.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	for _, layout := range naiveLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return time.Time{}, fmt.Errorf("timestamp %q has no UTC offset", value)
		}
	}
	return time.Time{}, fmt.Errorf("timestamp %q is not ISO 8601", value)
}
