package model

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// The perpus API is loose about scalar encodings: numbers come as numbers or
// numeric strings, nullable fields as null. The types below accept all of them.

var null = []byte("null")

func unquote(b []byte) (string, bool) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, null) {
		return "", false
	}
	return strings.TrimSpace(strings.Trim(string(b), `"`)), true
}

// ID is a numeric upstream identifier. Zero means absent.
type ID int64

func (id *ID) UnmarshalJSON(b []byte) error {
	n, err := parseInt(b)
	if err != nil {
		return errors.Wrap(err, "id")
	}
	*id = ID(n)
	return nil
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func ParseID(s string) (ID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return ID(n), nil
}

// Int is a count or a year.
type Int int64

func (i *Int) UnmarshalJSON(b []byte) error {
	n, err := parseInt(b)
	if err != nil {
		return err
	}
	*i = Int(n)
	return nil
}

func parseInt(b []byte) (int64, error) {
	s, ok := unquote(b)
	if !ok || s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Errorf("not a number: %s", s)
	}
	return d.IntPart(), nil
}

// Flag is the 0/1 returned marker; booleans are accepted too.
type Flag int8

func (f *Flag) UnmarshalJSON(b []byte) error {
	s, ok := unquote(b)
	switch {
	case !ok, s == "", s == "0", s == "false":
		*f = 0
	case s == "1", s == "true":
		*f = 1
	default:
		return errors.Errorf("invalid flag %s", s)
	}
	return nil
}

// Rupiah is a whole-rupiah amount. The API sends "4000.00" as often as 4000.
type Rupiah int64

func (r *Rupiah) UnmarshalJSON(b []byte) error {
	s, ok := unquote(b)
	if !ok || s == "" {
		*r = 0
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return errors.Wrap(err, "amount")
	}
	*r = Rupiah(d.Round(0).IntPart())
	return nil
}

// String formats the amount the Indonesian way, e.g. "Rp 12.500".
func (r Rupiah) String() string {
	s := strconv.FormatInt(int64(r), 10)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var sb strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(c)
	}
	if neg {
		return "Rp -" + sb.String()
	}
	return "Rp " + sb.String()
}

// Date is a calendar day, encoded as YYYY-MM-DD. The zero value encodes as null.
type Date struct {
	time.Time `json:",inline"`
}

func NewDate(y int, m time.Month, d int) Date {
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the time of day, keeping the calendar day as seen in t's location.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return NewDate(t.Year(), t.Month(), t.Day())
}

func ParseDate(s string) (Date, error) {
	t, err := parseTime(s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s, ok := unquote(b)
	if !ok || s == "" {
		*d = Date{}
		return nil
	}
	date, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = date
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return null, nil
	}
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

func (d Date) String() string {
	if d.IsZero() {
		return "-"
	}
	return d.Format(time.DateOnly)
}

// Timestamp is a created_at/updated_at moment.
type Timestamp struct {
	time.Time `json:",inline"`
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	s, ok := unquote(b)
	if !ok || s == "" {
		*ts = Timestamp{}
		return nil
	}
	t, err := parseTime(s)
	if err != nil {
		return err
	}
	*ts = Timestamp{Time: t}
	return nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return null, nil
	}
	return []byte(`"` + ts.UTC().Format(time.RFC3339) + `"`), nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.DateTime,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("unsupported time %q", s)
}
