package sqlite

import (
	"fmt"
	"time"
)

// Timestamps are stored as fixed-width UTC text so lexicographic
// comparison in SQL matches chronological order. The fraction is always
// nine digits: RFC3339Nano trims trailing zeros, which makes
// "…00.1Z" sort after "…00.12Z". Reads tolerate the other formats
// SQLite tooling may have written.

const timeLayout = "2006-01-02T15:04:05.000000000Z"

func bindTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func bindTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return bindTime(*t)
}

// parseTime tries multiple SQLite datetime formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.000",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}

// timeValue scans a sqlite text timestamp into a time.Time.
type timeValue struct {
	dst *time.Time
}

func (v timeValue) Scan(src any) error {
	switch s := src.(type) {
	case string:
		t, err := parseTime(s)
		if err != nil {
			return err
		}
		*v.dst = t
		return nil
	case []byte:
		t, err := parseTime(string(s))
		if err != nil {
			return err
		}
		*v.dst = t
		return nil
	case time.Time:
		*v.dst = s
		return nil
	default:
		return fmt.Errorf("scan time: unsupported type %T", src)
	}
}

// timePtrValue scans a nullable sqlite text timestamp into a *time.Time.
type timePtrValue struct {
	dst **time.Time
}

func (v timePtrValue) Scan(src any) error {
	if src == nil {
		*v.dst = nil
		return nil
	}

	var t time.Time
	if err := (timeValue{dst: &t}).Scan(src); err != nil {
		return err
	}
	*v.dst = &t
	return nil
}
