package utils

import "time"

// ParseDuration parses a duration string such as "30s", falling back to
// def if d is empty or malformed. Used for the drain-timeout flag the
// front end passes through to the orchestrator.
func ParseDuration(d string, def time.Duration) time.Duration {
	if d == "" {
		return def
	}
	duration, err := time.ParseDuration(d)
	if err != nil {
		return def
	}
	return duration
}
