package utils

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultJobTimeout bounds a job when its spec names no timeout.
const DefaultJobTimeout = 30 * time.Minute

// ParseDuration safely parses a duration string like "5m", falling back to
// fallback (or DefaultJobTimeout when fallback is zero) on empty or bad input.
func ParseDuration(d string, fallback time.Duration) time.Duration {
	if fallback <= 0 {
		fallback = DefaultJobTimeout
	}
	if d == "" {
		return fallback
	}
	duration, err := time.ParseDuration(d)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}

// ParseFloat parses a trimmed cell as a float.
func ParseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// WithinDir reports whether path resolves to base or a location beneath it.
func WithinDir(base, path string) bool {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// IsPlainName reports whether name is a single path element with no separators.
func IsPlainName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}
