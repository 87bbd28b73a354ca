package util

import (
	"fmt"
	"strings"
	"time"
)

// isoLayouts are tried in order. Clients send ISO-8601 strings; a trailing Z
// is normalized to an explicit UTC offset before parsing.
var isoLayouts = []string{
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02T15:04:05-07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseISOTime parses an ISO-8601 timestamp. Timestamps without an offset are
// taken as UTC.
func ParseISOTime(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}
