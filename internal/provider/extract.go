package provider

import (
	"strconv"
	"strings"
	"time"
)

// ExtractValue normalizes a numeric cell from an upstream row.
//
// JSON decoding yields float64 for numbers; some columns (minutes, ids) come
// back as strings. Null cells and non-numeric strings are not extractable.
//
// Returns the scalar float64 value, and ok=false if not extractable.
func ExtractValue(val interface{}) (float64, bool) {
	if val == nil {
		return 0, false
	}

	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// ExtractString renders a cell as a string. Whole numbers are printed without
// a decimal part so numeric ids survive the round trip.
func ExtractString(val interface{}) (string, bool) {
	switch v := val.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10), true
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	default:
		return "", false
	}
}

var dateLayouts = []string{
	"Jan 02, 2006",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// ParseGameDate parses the date formats the upstream API uses for game dates
// ("APR 13, 2025", "2025-04-13T00:00:00", "2025-04-13").
func ParseGameDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
