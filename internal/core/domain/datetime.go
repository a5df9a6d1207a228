package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateTimeLayout is the wire format for all timestamps: `yyyy-MM-dd HH:mm:ss`
// in local time, no zone designator.
const DateTimeLayout = "2006-01-02 15:04:05"

// DateTime wraps time.Time so JSON serialization matches the catalog wire
// format instead of RFC 3339.
type DateTime struct {
	time.Time
}

// Now returns the current local time truncated to second precision, which is
// the finest granularity the wire format can carry.
func Now() DateTime {
	return DateTime{time.Now().Truncate(time.Second)}
}

// ParseDateTime parses a wire-format timestamp.
func ParseDateTime(s string) (DateTime, error) {
	t, err := time.ParseInLocation(DateTimeLayout, s, time.Local)
	if err != nil {
		return DateTime{}, fmt.Errorf("parse datetime %q: %w", s, err)
	}
	return DateTime{t}, nil
}

func (d DateTime) String() string {
	return d.Format(DateTimeLayout)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateTimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = DateTime{}
		return nil
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so DateTime columns can be written directly.
func (d DateTime) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements sql.Scanner.
func (d *DateTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateTime{v.In(time.Local).Truncate(time.Second)}
		return nil
	case string:
		parsed, err := ParseDateTime(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case nil:
		*d = DateTime{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DateTime", src)
	}
}
