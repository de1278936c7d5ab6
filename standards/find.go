package standards

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Criteria are column/value pairs a row must match.
type Criteria map[string]any

// String renders criteria in sorted key order for log and error messages.
func (c Criteria) String() string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, c[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// FindObjects returns the rows of table that match criteria.
//
// A criterion is ignored for rows that do not have its column, and a row value
// of "Any" matches every criterion value. When capacity is given, rows must
// satisfy minimum_capacity < capacity <= maximum_capacity. Whole-number
// capacities are bumped by 1% first so that a capacity sitting exactly on a
// band edge lands in the upper band; if no band matches, the search is repeated
// once at 99% of that value. When date is given, rows must satisfy
// start_date < date <= end_date.
func FindObjects(table Table, criteria Criteria, capacity *float64, date *time.Time) []Row {
	var candidates []Row
	for _, row := range table {
		if rowMatches(row, criteria) {
			candidates = append(candidates, row)
		}
	}

	matches := candidates
	if capacity != nil {
		c := *capacity
		if c == math.Round(c) {
			c += c * 0.01
		}
		matches = inCapacityBand(candidates, c)
		if len(matches) == 0 {
			matches = inCapacityBand(candidates, c*0.99)
		}
	}

	if date != nil {
		var dated []Row
		for _, row := range matches {
			start, okStart := rowDate(row, "start_date")
			end, okEnd := rowDate(row, "end_date")
			if !okStart || !okEnd {
				continue
			}
			if !date.After(start) || date.After(end) {
				continue
			}
			dated = append(dated, row)
		}
		matches = dated
	}
	return matches
}

// FindObject returns the first row FindObjects matches. It logs a warning
// when several rows match and reports false when none do.
func FindObject(table Table, criteria Criteria, capacity *float64, date *time.Time) (Row, bool) {
	matches := FindObjects(table, criteria, capacity, date)
	switch {
	case len(matches) == 0:
		logrus.WithField("component", "data").Debugf("Find object search criteria returned no results. Search criteria: %s, capacity = %s.", criteria, fmtCapacity(capacity))
		return nil, false
	case len(matches) > 1:
		logrus.WithField("component", "data").Warnf("Find object search criteria returned %d results, the first one will be returned. Search criteria: %s, capacity = %s.", len(matches), criteria, fmtCapacity(capacity))
	}
	return matches[0], true
}

func fmtCapacity(c *float64) string {
	if c == nil {
		return "none"
	}
	return fmt.Sprintf("%g", *c)
}

func rowMatches(row Row, criteria Criteria) bool {
	for key, want := range criteria {
		got, has := row[key]
		if !has {
			continue
		}
		if s, ok := got.(string); ok && s == "Any" {
			continue
		}
		if !valuesEqual(got, want) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func inCapacityBand(rows []Row, capacity float64) []Row {
	var out []Row
	for _, row := range rows {
		lo, okLo := row.Float("minimum_capacity")
		hi, okHi := row.Float("maximum_capacity")
		if !okLo || !okHi {
			continue
		}
		if capacity <= lo || capacity > hi {
			continue
		}
		out = append(out, row)
	}
	return out
}

func rowDate(row Row, key string) (time.Time, bool) {
	s, ok := row.String(key)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Ptr returns a pointer to v, for the optional capacity argument.
func Ptr(v float64) *float64 { return &v }

// ParseCriteria turns column=value pairs, as typed on a command line or in
// a query string, into criteria. Numbers become float64 and "null" becomes
// nil; everything else stays a string.
func ParseCriteria(pairs []string) (Criteria, error) {
	c := make(Criteria, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("criterion %q is not column=value", p)
		}
		c[k] = criterionValue(v)
	}
	return c, nil
}

func criterionValue(v string) any {
	if v == "null" {
		return nil
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}
