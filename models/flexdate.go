package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// FlexDate wraps time.Time so we can control both JSON un/marshaling and
// SQL driver encoding. The frontends and the legacy data set hand us dates
// in three shapes: a real datetime, "DD-MM-YYYY" (report display form) and
// "YYYY-MM-DD" (HTML date-input form). All three must round-trip.
type FlexDate time.Time

const (
	layoutISO    = "2006-01-02"
	layoutIndian = "02-01-2006"
)

// UnmarshalJSON accepts RFC3339 (with or without fractional seconds),
// YYYY-MM-DD, DD-MM-YYYY, or an empty string (zero date). Unparseable
// input yields the zero date rather than an error; exports must not
// abort on a single malformed record.
func (fd *FlexDate) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" || s == "null" {
		*fd = FlexDate(time.Time{})
		return nil
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		*fd = FlexDate(t)
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		*fd = FlexDate(t)
		return nil
	}
	if t, err := time.Parse(layoutISO, s); err == nil {
		*fd = FlexDate(t)
		return nil
	}
	if t, err := time.Parse(layoutIndian, s); err == nil {
		*fd = FlexDate(t)
		return nil
	}

	*fd = FlexDate(time.Time{})
	return nil
}

// MarshalJSON emits YYYY-MM-DD so the value feeds straight back into an
// HTML date input; the zero date marshals as "".
func (fd FlexDate) MarshalJSON() ([]byte, error) {
	t := time.Time(fd)
	if t.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(t.Format(layoutISO))
}

// Time returns the underlying time.Time.
func (fd FlexDate) Time() time.Time { return time.Time(fd) }

// IsZero reports whether the date is unset.
func (fd FlexDate) IsZero() bool { return time.Time(fd).IsZero() }

// Indian formats the date as DD-MM-YYYY for report cells, or "" when unset.
func (fd FlexDate) Indian() string {
	t := time.Time(fd)
	if t.IsZero() {
		return ""
	}
	return t.Format(layoutIndian)
}

// Value implements driver.Valuer so GORM can store FlexDate as a SQL
// timestamp; the zero date is stored as NULL.
func (fd FlexDate) Value() (driver.Value, error) {
	t := time.Time(fd)
	if t.IsZero() {
		return nil, nil
	}
	return t, nil
}

// Scan implements sql.Scanner so GORM can read the column back.
func (fd *FlexDate) Scan(src interface{}) error {
	if src == nil {
		*fd = FlexDate(time.Time{})
		return nil
	}

	switch v := src.(type) {
	case time.Time:
		*fd = FlexDate(v)
		return nil
	case []byte:
		return fd.scanString(string(v))
	case string:
		return fd.scanString(v)
	default:
		return fmt.Errorf("FlexDate.Scan: unsupported type %T", src)
	}
}

func (fd *FlexDate) scanString(s string) error {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05", layoutISO, layoutIndian} {
		if t, err := time.Parse(layout, s); err == nil {
			*fd = FlexDate(t)
			return nil
		}
	}
	return fmt.Errorf("FlexDate.Scan: cannot parse %q", s)
}
