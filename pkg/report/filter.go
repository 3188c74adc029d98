package report

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"p9e.in/loantrack/models"
)

var (
	// ErrInvalidMonth is returned for month filters not in YYYY-MM form.
	ErrInvalidMonth = errors.New("month must be in YYYY-MM format")
	// ErrNoMatchingRecords is returned when a filter matches nothing.
	ErrNoMatchingRecords = errors.New("no matching records")
)

var monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)

// SanitizeMonth strips the junk some clients append to the month query
// parameter (trailing ":1" fragments, stray characters).
func SanitizeMonth(month string) string {
	month = strings.TrimSpace(month)
	if i := strings.IndexByte(month, ':'); i >= 0 {
		month = month[:i]
	}
	var b strings.Builder
	for _, r := range month {
		if (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MonthRange parses YYYY-MM into the inclusive [first instant, last
// instant] range of that month.
func MonthRange(month string) (time.Time, time.Time, error) {
	if !monthRe.MatchString(month) {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end, nil
}

// FilterByMonth keeps the applications whose login date falls inside the
// month, ordered by login date ascending. ErrNoMatchingRecords is returned
// when nothing survives the filter.
func FilterByMonth(apps []models.Application, month string) ([]models.Application, error) {
	start, end, err := MonthRange(month)
	if err != nil {
		return nil, err
	}

	out := make([]models.Application, 0, len(apps))
	for _, app := range apps {
		t := app.LoginDate.Time()
		if t.IsZero() {
			continue
		}
		if !t.Before(start) && !t.After(end) {
			out = append(out, app)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoMatchingRecords
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LoginDate.Time().Before(out[j].LoginDate.Time())
	})
	return out, nil
}
