package standards

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

// newTestStandard builds a Standard over an empty table set and a fixed
// clock. Callers add the tables a test needs with Data().Set.
func newTestStandard(t *testing.T, template string, opts ...Option) *Standard {
	t.Helper()
	all := append([]Option{WithData(NewData()), WithClock(func() time.Time { return testNow })}, opts...)
	s, err := NewStandard(template, all...)
	require.NoError(t, err)
	return s
}

// dated marks a row as valid for every date the tests use.
func dated(r Row) Row {
	r["start_date"] = "1919-09-09"
	r["end_date"] = "2999-09-09"
	return r
}

// motorTable is a four-pole enclosed motor table for template.
func motorTable(template string) Table {
	bands := []struct{ lo, hi, eff float64 }{
		{0, 1, 0.855}, {1, 1.5, 0.865}, {1.5, 2, 0.865}, {2, 3, 0.895}, {3, 5, 0.895},
		{5, 7.5, 0.917}, {7.5, 10, 0.917}, {10, 15, 0.924}, {15, 20, 0.930}, {20, 9999, 0.936},
	}
	var t Table
	for _, b := range bands {
		t = append(t, dated(Row{
			"template": template, "number_of_poles": 4.0, "type": "Enclosed",
			"minimum_capacity": b.lo, "maximum_capacity": b.hi, "nominal_full_load_efficiency": b.eff,
		}))
	}
	return t
}
