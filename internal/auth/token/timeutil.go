package token

import (
	"strings"
	"time"
)

// naive layouts are ISO-8601 timestamps without an offset; they are read as UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// CoerceUTC turns a stored timestamp into a UTC time. It accepts native times
// and ISO-8601 strings with or without a zone suffix. Anything else, including
// unparsable strings, yields nil.
func CoerceUTC(v interface{}) *time.Time {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return nil
		}
		t := x.UTC()
		return &t
	case *time.Time:
		if x == nil {
			return nil
		}
		return CoerceUTC(*x)
	case string:
		return parseISO(strings.TrimSpace(x))
	default:
		return nil
	}
}

func parseISO(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t = t.UTC()
		return &t
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return &t
		}
	}
	return nil
}
