package core

import "time"

const (
	// DateKeyLayout is the persisted and grouping format of a record date.
	DateKeyLayout = "2006-01-02"
	// DateHeaderLayout is how day groups are titled.
	DateHeaderLayout = "January 2, 2006"
)

// DateKey converts a calendar date to its YYYY-MM-DD key in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD key.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(DateKeyLayout, key)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// FormatDateHeader renders a date key for display, returning the key
// unchanged when it is not a valid date.
func FormatDateHeader(key string) string {
	t, err := ParseDateKey(key)
	if err != nil {
		return key
	}
	return t.Format(DateHeaderLayout)
}
