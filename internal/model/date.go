package model

import (
	"bytes"
	"fmt"
	"time"

	"github.com/theirongolddev/glidepath/internal/calendar"
)

// Date is a whole calendar day that marshals as a YYYY-MM-DD JSON string.
// The zero value marshals as null and reports IsZero.
type Date struct {
	time.Time
}

// DateOf normalizes a time to its calendar day.
func DateOf(t time.Time) Date {
	return Date{calendar.DayStart(t)}
}

// ParseDateString parses a YYYY-MM-DD string, failing fast on bad input.
func ParseDateString(s string) (Date, error) {
	t, err := calendar.ParseDate(s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

// String renders the date as YYYY-MM-DD, or empty for the zero value.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return calendar.FormatDate(d.Time)
}

// MarshalJSON renders the date as a YYYY-MM-DD string, or null when zero.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + calendar.FormatDate(d.Time) + `"`), nil
}

// UnmarshalJSON accepts a YYYY-MM-DD string, null, or "" (treated as unset).
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		*d = Date{}
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid date value %s: expected a YYYY-MM-DD string", data)
	}
	t, err := calendar.ParseDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = Date{t}
	return nil
}
