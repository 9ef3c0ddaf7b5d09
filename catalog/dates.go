package catalog

import (
	"errors"
	"strings"
	"time"
)

var errBadTime = errors.New("unrecognized time format")

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateTime,
	time.DateOnly,
}

// ParseTime parses an ISO 8601 date or date-time. Values without a zone are
// read as UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errBadTime
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errBadTime
}

// EffectiveTime returns the time a post sorts by: its timestamp when set,
// otherwise its date. field names which one was used.
func EffectiveTime(p Post) (t time.Time, field string, err error) {
	field, raw := "date", p.Date
	if strings.TrimSpace(p.Timestamp) != "" {
		field, raw = "timestamp", p.Timestamp
	}
	t, err = ParseTime(raw)
	return t, field, err
}

// FormatDate renders the post date as "Jan 2, 2006". Unparseable dates are
// returned unchanged.
func FormatDate(p Post) string {
	t, err := ParseTime(p.Date)
	if err != nil {
		return p.Date
	}
	return t.Format("Jan 2, 2006")
}
