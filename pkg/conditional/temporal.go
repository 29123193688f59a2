package conditional

import (
	"errors"
	"time"
)

// comparer orders two serialized values. ok is false when either side
// cannot be parsed, which makes the calling condition a non-match.
type comparer func(a, b string) (cmp int, ok bool)

// parseDate parses an entry or condition date. Supports ISO 8601 formats.
// Only the calendar date is kept.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	formats := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// parseTime parses a time of day into seconds since midnight.
func parseTime(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	formats := []string{
		"15:04",
		"15:04:05",
		"15:04:05.000",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t.Hour()*3600 + t.Minute()*60 + t.Second(), true
		}
	}
	return 0, false
}

func compareDate(a, b string) (int, bool) {
	x, okA := parseDate(a)
	y, okB := parseDate(b)
	if !okA || !okB {
		return 0, false
	}
	return x.Compare(y), true
}

func compareTime(a, b string) (int, bool) {
	x, okA := parseTime(a)
	y, okB := parseTime(b)
	if !okA || !okB {
		return 0, false
	}
	switch {
	case x < y:
		return -1, true
	case x > y:
		return 1, true
	default:
		return 0, true
	}
}

// pointCatalog builds the conditions of a widget holding a single date or time.
func pointCatalog(cmp comparer, attrType AttributeType) Catalog {
	single := []AttributeSpec{{Key: "value", Title: "Value", Type: attrType}}
	against := func(match func(int) bool) TestFunc {
		return func(value, attributes, _ Data) bool {
			c, ok := cmp(value.String("value"), attributes.String("value"))
			return ok && match(c)
		}
	}

	return Catalog{
		{Key: "isEqualTo", Definition: Definition{
			Title:      "Is equal to",
			Attributes: single,
			Test:       against(func(c int) bool { return c == 0 }),
		}},
		{Key: "after", Definition: Definition{
			Title:      "After",
			Attributes: single,
			Test:       against(func(c int) bool { return c > 0 }),
		}},
		{Key: "before", Definition: Definition{
			Title:      "Before",
			Attributes: single,
			Test:       against(func(c int) bool { return c < 0 }),
		}},
		{Key: "isInBetween", Definition: Definition{
			Title: "Is in between",
			Attributes: []AttributeSpec{
				{Key: "minValue", Title: "Min value", Type: attrType},
				{Key: "maxValue", Title: "Max value", Type: attrType},
			},
			// Open interval: both bounds are excluded.
			Test: func(value, attributes, _ Data) bool {
				minValue := attributes.String("minValue")
				maxValue := attributes.String("maxValue")
				if minValue == "" || maxValue == "" {
					return false
				}
				v := value.String("value")
				lower, okLower := cmp(v, minValue)
				upper, okUpper := cmp(v, maxValue)
				return okLower && okUpper && lower > 0 && upper < 0
			},
			Validate: func(attributes Data) error {
				c, ok := cmp(attributes.String("minValue"), attributes.String("maxValue"))
				if !ok {
					return errors.New("min value and max value are required")
				}
				if c >= 0 {
					return errors.New("min value must be before max value")
				}
				return nil
			},
		}},
	}
}

// rangeCatalog builds the conditions of a widget holding a from/to range.
// The condition supplies a single probe value.
func rangeCatalog(cmp comparer, attrType AttributeType) Catalog {
	probe := []AttributeSpec{{Key: "value", Title: "Value", Type: attrType}}
	against := func(match func(fromCmp, toCmp int) bool) TestFunc {
		return func(value, attributes, _ Data) bool {
			r := value.Object("value")
			p := attributes.String("value")
			fromCmp, okFrom := cmp(p, r.String("fromValue"))
			toCmp, okTo := cmp(p, r.String("toValue"))
			return okFrom && okTo && match(fromCmp, toCmp)
		}
	}

	return Catalog{
		{Key: "includes", Definition: Definition{
			Title:      "Includes",
			Attributes: probe,
			Test:       against(func(f, t int) bool { return f >= 0 && t <= 0 }),
		}},
		// "after" holds when the probe lies before the whole range.
		{Key: "after", Definition: Definition{
			Title:      "After",
			Attributes: probe,
			Test:       against(func(f, t int) bool { return f < 0 && t < 0 }),
		}},
		{Key: "before", Definition: Definition{
			Title:      "Before",
			Attributes: probe,
			Test:       against(func(f, t int) bool { return f > 0 && t > 0 }),
		}},
	}
}

func dateConditions() Catalog      { return pointCatalog(compareDate, AttrDate) }
func dateRangeConditions() Catalog { return rangeCatalog(compareDate, AttrDate) }
func timeConditions() Catalog      { return pointCatalog(compareTime, AttrTime) }
func timeRangeConditions() Catalog { return rangeCatalog(compareTime, AttrTime) }
