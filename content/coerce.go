package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// CoerceDate converts a front-matter value into a time. Strings are parsed
// against the accepted layouts (UTC unless the layout carries a zone),
// numbers are Unix milliseconds and TOML dates arrive as time.Time already.
func CoerceDate(v any) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return val, nil
	case *time.Time:
		if val == nil {
			return time.Time{}, errors.New("invalid date: null")
		}
		return *val, nil
	case string:
		return parseDate(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q", val.String())
		}
		return fromMillis(f)
	case int:
		return time.UnixMilli(int64(val)).UTC(), nil
	case int64:
		return time.UnixMilli(val).UTC(), nil
	case uint64:
		if val > math.MaxInt64 {
			return time.Time{}, fmt.Errorf("invalid date %d", val)
		}
		return time.UnixMilli(int64(val)).UTC(), nil
	case float64:
		return fromMillis(val)
	case nil:
		return time.Time{}, errors.New("invalid date: null")
	default:
		return time.Time{}, fmt.Errorf("invalid date of type %T", v)
	}
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("invalid date: empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func fromMillis(f float64) (time.Time, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > 8.64e15 {
		return time.Time{}, fmt.Errorf("invalid date %v", f)
	}
	return time.UnixMilli(int64(f)).UTC(), nil
}
