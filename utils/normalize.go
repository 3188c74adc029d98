package utils

import (
	"strconv"
	"strings"
	"time"
)

// Date layouts the legacy records and the frontends actually produce.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
}

// NormalizeDate coerces any accepted date representation to "YYYY-MM-DD".
// Empty or unparseable input yields "". Already-normalized input passes
// through unchanged, so the function is idempotent.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// FormatDateIndian renders an accepted date representation as "DD-MM-YYYY"
// for report cells, or "" when unset or unparseable.
func FormatDateIndian(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02-01-2006")
		}
	}
	return ""
}

// NormalizeNumber coerces a stored numeric value to float64 for report
// arithmetic. Strings may carry thousands separators ("1,00,000"). Bad
// input counts as zero; a single malformed record must not break a total.
func NormalizeNumber(v interface{}) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", "")
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// ResolveOtherField collapses a classification field with an "Other"
// escape hatch: when value is the sentinel, the paired free-text field
// always wins, even when it is empty. The sentinel itself never reaches a
// report cell.
func ResolveOtherField(value, other string) string {
	if value == "Other" {
		return other
	}
	return value
}
