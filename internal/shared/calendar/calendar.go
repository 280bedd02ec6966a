package calendar

import (
	"time"

	"poolops/internal/shared/apperror"
)

const layout = "2006-01-02"

var errInvalidDate = apperror.New(
	apperror.CodeInvalidInput,
	"invalid date format, expected YYYY-MM-DD",
	400,
)

// LocalDate is a calendar day anchored to server-local midnight. Time entries
// use it: a shift submitted for "2024-06-03" stays on that day regardless of
// the server's UTC offset.
type LocalDate struct {
	t time.Time
}

// UTCDate is a calendar day anchored to UTC midnight. Pay period boundaries
// and payout dates use it. LocalDate and UTCDate never convert implicitly;
// the only cross-type comparison is the YYYY-MM-DD key.
type UTCDate struct {
	t time.Time
}

func ParseLocalDate(v string) (LocalDate, error) {
	t, err := time.ParseInLocation(layout, v, time.Local)
	if err != nil {
		return LocalDate{}, errInvalidDate
	}
	return LocalDate{t: t}, nil
}

func LocalDateOf(t time.Time) LocalDate {
	local := t.Local()
	return LocalDate{t: time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)}
}

func ParseUTCDate(v string) (UTCDate, error) {
	t, err := time.Parse(layout, v)
	if err != nil {
		return UTCDate{}, errInvalidDate
	}
	return UTCDate{t: t}, nil
}

func UTCDateOf(t time.Time) UTCDate {
	utc := t.UTC()
	return UTCDate{t: time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d LocalDate) Key() string       { return d.t.Format(layout) }
func (d LocalDate) Time() time.Time   { return d.t }
func (d LocalDate) IsZero() bool      { return d.t.IsZero() }
func (d LocalDate) AddDays(n int) LocalDate {
	return LocalDate{t: d.t.AddDate(0, 0, n)}
}
func (d LocalDate) Before(o LocalDate) bool { return d.t.Before(o.t) }
func (d LocalDate) Equal(o LocalDate) bool  { return d.Key() == o.Key() }

func (d UTCDate) Key() string     { return d.t.Format(layout) }
func (d UTCDate) Time() time.Time { return d.t }
func (d UTCDate) IsZero() bool    { return d.t.IsZero() }
func (d UTCDate) AddDays(n int) UTCDate {
	return UTCDate{t: d.t.AddDate(0, 0, n)}
}
func (d UTCDate) Before(o UTCDate) bool { return d.t.Before(o.t) }
func (d UTCDate) After(o UTCDate) bool  { return d.t.After(o.t) }
func (d UTCDate) Equal(o UTCDate) bool  { return d.Key() == o.Key() }

// DaysInclusive counts the calendar days in [start, end], both ends included.
func DaysInclusive(start, end UTCDate) int {
	if end.Before(start) {
		return 0
	}
	return int(end.t.Sub(start.t).Hours()/24) + 1
}

// Key formats any instant as its YYYY-MM-DD day key without shifting zones.
// This is the comparison currency between LocalDate entries and UTCDate
// boundaries: both sides are reduced to their own calendar-day string.
func Key(t time.Time) string {
	return t.Format(layout)
}

// KeyInRange reports whether key falls within [startKey, endKey]. The layout
// sorts lexicographically, so plain string comparison is exact.
func KeyInRange(key, startKey, endKey string) bool {
	return key >= startKey && key <= endKey
}
