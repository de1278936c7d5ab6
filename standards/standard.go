package standards

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/openstudio-standards/osstd/standards/curve"
)

// Standard applies one template's rules against a set of standards data.
// It is safe for concurrent use once constructed.
type Standard struct {
	template string
	profile  Profile
	custom   string
	data     *Data
	now      func() time.Time

	curvesOnce sync.Once
	curves     *curve.Library
}

// Option configures a Standard.
type Option func(*Standard)

// WithData replaces the embedded standards data.
func WithData(d *Data) Option {
	return func(s *Standard) { s.data = d }
}

// WithCustom sets a customization such as CustomXcelEDA.
func WithCustom(custom string) Option {
	return func(s *Standard) { s.custom = custom }
}

// WithClock sets the date used to filter dated table rows.
func WithClock(now func() time.Time) Option {
	return func(s *Standard) { s.now = now }
}

// NewStandard builds a Standard for a registered template.
func NewStandard(template string, opts ...Option) (*Standard, error) {
	p, err := LookupProfile(template)
	if err != nil {
		return nil, err
	}
	s := &Standard{template: template, profile: p, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	if s.data == nil {
		d, err := DefaultData()
		if err != nil {
			return nil, fmt.Errorf("load embedded standards data: %w", err)
		}
		s.data = d
	}
	return s, nil
}

// Template returns the template name.
func (s *Standard) Template() string { return s.template }

// Profile returns the rule profile.
func (s *Standard) Profile() Profile { return s.profile }

// Custom returns the customization, if any.
func (s *Standard) Custom() string { return s.custom }

// Data returns the standards data.
func (s *Standard) Data() *Data { return s.data }

// Curves returns the curve library backing this Standard. It is built from
// the curves table on first use.
func (s *Standard) Curves() *curve.Library {
	s.curvesOnce.Do(func() {
		var rows []map[string]any
		if t, err := s.data.Table("curves"); err == nil {
			rows = make([]map[string]any, len(t))
			for i, r := range t {
				rows[i] = r
			}
		}
		s.curves = curve.NewLibrary(rows)
	})
	return s.curves
}

// addCurve resolves a curve name and reports whether the curve exists.
// A miss is logged by the library.
func (s *Standard) addCurve(name string) bool {
	if name == "" {
		return false
	}
	_, err := s.Curves().Add(name)
	return err == nil
}

func (s *Standard) isXcel() bool { return s.custom == CustomXcelEDA }

func (s *Standard) log(component string) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{"component": component, "template": s.template})
}

func (s *Standard) today() *time.Time {
	t := s.now()
	return &t
}

// lookup finds one row of a table and wraps ErrNotFound with the search
// when nothing matches.
func (s *Standard) lookup(table string, criteria Criteria, capacity *float64, date *time.Time) (Row, error) {
	t, err := s.data.Table(table)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	row, ok := FindObject(t, criteria, capacity, date)
	if !ok {
		return nil, fmt.Errorf("%w in %s for %s, capacity %s", ErrNotFound, table, criteria, fmtCapacity(capacity))
	}
	return row, nil
}

// tableHasColumn reports whether the first row of a table has a column.
func (s *Standard) tableHasColumn(table, column string) bool {
	t, err := s.data.Table(table)
	if err != nil || len(t) == 0 {
		return false
	}
	_, ok := t[0][column]
	return ok
}

// TableRows returns the rows of a table matching criteria, for generic
// lookups from the CLI and API.
func (s *Standard) TableRows(table string, criteria Criteria, capacity *float64) ([]Row, error) {
	t, err := s.data.Table(table)
	if err != nil {
		return nil, err
	}
	return FindObjects(t, criteria, capacity, nil), nil
}
