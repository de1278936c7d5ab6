package curve

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// Library resolves curve names against the curves table and keeps every
// curve it has built, so asking for the same name twice returns the same
// *Curve.
type Library struct {
	mu     sync.Mutex
	rows   map[string]map[string]any
	curves map[string]*Curve
}

// NewLibrary indexes the rows of a curves table by name. Later rows with a
// duplicate name are ignored.
func NewLibrary(rows []map[string]any) *Library {
	l := &Library{
		rows:   make(map[string]map[string]any, len(rows)),
		curves: make(map[string]*Curve),
	}
	for _, r := range rows {
		name, _ := r["name"].(string)
		if name == "" {
			continue
		}
		if _, dup := l.rows[name]; !dup {
			l.rows[name] = r
		}
	}
	return l
}

// Add returns the curve with the given name, building it from the table on
// first use.
func (l *Library) Add(name string) (*Curve, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c, ok := l.curves[name]; ok {
		logrus.WithField("component", "curve").Debugf("Already added curve: %s", name)
		return c, nil
	}
	row, ok := l.rows[name]
	if !ok {
		logrus.WithField("component", "curve").Warnf("Could not find a curve called '%s' in the standards.", name)
		return nil, fmt.Errorf("curve %q not found", name)
	}
	c, err := FromRow(row)
	if err != nil {
		logrus.WithField("component", "curve").Errorf("%v, cannot create this curve.", err)
		return nil, err
	}
	l.curves[name] = c
	return c, nil
}

// Added lists the names of curves built so far, sorted.
func (l *Library) Added() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	names := make([]string, 0, len(l.curves))
	for n := range l.curves {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
