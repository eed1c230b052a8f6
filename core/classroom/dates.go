package classroom

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/semillerodigital/educompass/core"
)

// ErrInvalidDate is returned in strict mode for date values that cannot be understood.
var ErrInvalidDate = errors.New("invalid date")

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DateParts is a calendar date without time of day, as sent by the upstream API.
type DateParts struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

func (dp DateParts) IsZero() bool { return dp.Year == 0 && dp.Month == 0 && dp.Day == 0 }

// TimeOfDay is the optional time part accompanying DateParts.
type TimeOfDay struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// DateNormalizer turns every date shape the sources produce into a time.Time.
//
// Absent values (nil, "", zero DateParts) normalize to an invalid null.Time.
// Malformed values normalize to Now unless Strict is set, in which case ErrInvalidDate is returned.
type DateNormalizer struct {
	Strict   bool
	Location *time.Location
	Now      func() time.Time
	Logger   core.Logger
}

func (n DateNormalizer) now() time.Time {
	if n.Now != nil {
		return n.Now()
	}
	return time.Now()
}

func (n DateNormalizer) loc() *time.Location {
	if n.Location != nil {
		return n.Location
	}
	return time.UTC
}

// Normalize accepts time.Time, *time.Time, null.Time, strings, DateParts, *DateParts,
// JSON objects with year/month/day keys and epoch milliseconds.
func (n DateNormalizer) Normalize(v interface{}) (null.Time, error) {
	t, absent, err := n.parse(v)
	switch {
	case absent:
		return null.Time{}, nil
	case err == nil:
		return null.TimeFrom(t), nil
	case n.Strict:
		return null.Time{}, errors.Wrapf(ErrInvalidDate, "%v", err)
	}
	now := n.now()
	if n.Logger != nil {
		n.Logger.Warn(fmt.Sprintf("unparseable date %#v, using now", v), err)
	}
	return null.TimeFrom(now), nil
}

// Time is Normalize for required fields: absent values become Now too.
func (n DateNormalizer) Time(v interface{}) (time.Time, error) {
	t, err := n.Normalize(v)
	if err != nil {
		return time.Time{}, err
	}
	if !t.Valid {
		return n.now(), nil
	}
	return t.Time, nil
}

// DueDate combines upstream date and optional time parts.
func (n DateNormalizer) DueDate(date *DateParts, tod *TimeOfDay) (null.Time, error) {
	if date == nil {
		return null.Time{}, nil
	}
	due, err := n.Normalize(*date)
	if err != nil || !due.Valid || tod == nil {
		return due, err
	}
	if tod.Hours < 0 || tod.Hours > 23 || tod.Minutes < 0 || tod.Minutes > 59 {
		return due, nil
	}
	// upstream times of day are UTC
	d := due.Time
	t := time.Date(d.Year(), d.Month(), d.Day(), tod.Hours, tod.Minutes, 0, 0, time.UTC)
	return null.TimeFrom(t), nil
}

// parse returns the parsed time, or absent=true for missing values, or an error for malformed ones.
func (n DateNormalizer) parse(v interface{}) (t time.Time, absent bool, err error) {
	switch val := v.(type) {
	case nil:
		return t, true, nil
	case time.Time:
		if val.IsZero() {
			return t, true, nil
		}
		return val, false, nil
	case *time.Time:
		if val == nil {
			return t, true, nil
		}
		return n.parse(*val)
	case null.Time:
		if !val.Valid {
			return t, true, nil
		}
		return n.parse(val.Time)
	case string:
		return n.parseString(val)
	case DateParts:
		if val.IsZero() {
			return t, true, nil
		}
		t, err = n.fromParts(val)
		return t, false, err
	case *DateParts:
		if val == nil {
			return t, true, nil
		}
		return n.parse(*val)
	case map[string]interface{}:
		if len(val) == 0 {
			return t, true, nil
		}
		dp, err := partsFromMap(val)
		if err != nil {
			return t, false, err
		}
		return n.parse(dp)
	case int64:
		return time.UnixMilli(val).In(n.loc()), false, nil
	case int:
		return time.UnixMilli(int64(val)).In(n.loc()), false, nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return t, false, fmt.Errorf("not a timestamp: %v", val)
		}
		return time.UnixMilli(int64(val)).In(n.loc()), false, nil
	}
	return t, false, fmt.Errorf("unsupported date type %T", v)
}

func (n DateNormalizer) parseString(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, true, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, n.loc()); err == nil {
			return t, false, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("unrecognized date string %q", s)
}

func (n DateNormalizer) fromParts(dp DateParts) (time.Time, error) {
	t := time.Date(dp.Year, time.Month(dp.Month), dp.Day, 0, 0, 0, 0, n.loc())
	// time.Date normalizes out of range values (e.g. Feb 30), which we treat as malformed
	if t.Year() != dp.Year || int(t.Month()) != dp.Month || t.Day() != dp.Day {
		return time.Time{}, fmt.Errorf("invalid calendar date %d-%d-%d", dp.Year, dp.Month, dp.Day)
	}
	return t, nil
}

func partsFromMap(m map[string]interface{}) (DateParts, error) {
	var dp DateParts
	for key, dst := range map[string]*int{"year": &dp.Year, "month": &dp.Month, "day": &dp.Day} {
		raw, ok := m[key]
		if !ok {
			return dp, fmt.Errorf("date object missing %q", key)
		}
		switch num := raw.(type) {
		case float64:
			*dst = int(num)
		case int:
			*dst = num
		default:
			return dp, fmt.Errorf("date object %q is %T", key, raw)
		}
	}
	return dp, nil
}
