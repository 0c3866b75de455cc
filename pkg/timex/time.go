// Package timex provides a time type tolerant of the timestamp shapes the
// portfolio backend emits.
package timex

import (
	"database/sql/driver"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Time wraps time.Time. It decodes RFC 3339 strings, zone-less ISO local
// date-times and epoch milliseconds, and always encodes as RFC 3339.
type Time time.Time

// localLayouts are tried after RFC 3339 and interpreted in the local zone
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Now 返回当前时间
func Now() Time {
	return Time(time.Now())
}

func (t Time) Std() time.Time   { return time.Time(t) }
func (t Time) IsZero() bool     { return time.Time(t).IsZero() }
func (t Time) Unix() int64      { return time.Time(t).Unix() }
func (t Time) UnixMilli() int64 { return time.Time(t).UnixMilli() }
func (t Time) UnixMicro() int64 { return time.Time(t).UnixMicro() }
func (t Time) UnixNano() int64  { return time.Time(t).UnixNano() }

func (t Time) String() string {
	return time.Time(t).Format(time.RFC3339)
}

// Ptr returns a *time.Time copy, nil for the zero time
func (t Time) Ptr() *time.Time {
	if t.IsZero() {
		return nil
	}
	v := time.Time(t)
	return &v
}

// Parse 解析字符串时间，支持 RFC 3339、无时区的本地时间与毫秒时间戳
func Parse(s string) (Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Time{}, nil
	}
	if v, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Time(v), nil
	}
	for _, layout := range localLayouts {
		if v, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Time(v), nil
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Time(time.UnixMilli(ms)), nil
	}
	return Time{}, errors.Errorf("timex: unrecognised time %q", s)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(time.Time(t).Format(time.RFC3339Nano))), nil
}

func (t *Time) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*t = Time{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		unq, err := strconv.Unquote(s)
		if err != nil {
			return errors.Wrap(err, "timex: invalid time string")
		}
		s = unq
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Value implements driver.Valuer; the zero time is stored as NULL
func (t Time) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return time.Time(t), nil
}

// Scan implements sql.Scanner
func (t *Time) Scan(v any) error {
	switch x := v.(type) {
	case nil:
		*t = Time{}
	case time.Time:
		*t = Time(x)
	case string:
		return t.scanString(x)
	case []byte:
		return t.scanString(string(x))
	default:
		return errors.Errorf("timex: cannot scan %T", v)
	}
	return nil
}

// sqlite drivers store time as text in this layout
const sqliteLayout = "2006-01-02 15:04:05.999999999-07:00"

func (t *Time) scanString(s string) error {
	if v, err := time.Parse(sqliteLayout, s); err == nil {
		*t = Time(v)
		return nil
	}
	p, err := Parse(s)
	if err != nil {
		return err
	}
	*t = p
	return nil
}
