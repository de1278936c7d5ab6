package standards

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/openstudio-standards/osstd/standards/stddata"
)

// Row is one record of a standards table. Numbers are float64.
type Row map[string]any

// Table is an ordered list of rows.
type Table []Row

// Data holds every standards table by name.
type Data struct {
	tables map[string]Table
}

// NewData returns an empty table set.
func NewData() *Data {
	return &Data{tables: make(map[string]Table)}
}

// LoadData reads every *.json, *.yaml and *.yml file below root. Each file is
// an object mapping table names to either an array of rows or an object with
// a "table" array. Tables with the same name in several files are
// concatenated in sorted path order.
func LoadData(fsys fs.FS, root string) (*Data, error) {
	var files []string
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(path.Ext(p)) {
		case ".json", ".yaml", ".yml":
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk standards data %q: %w", root, err)
	}
	sort.Strings(files)

	d := NewData()
	for _, f := range files {
		raw, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("read standards data %q: %w", f, err)
		}
		doc := map[string]any{}
		if path.Ext(f) == ".json" {
			err = json.Unmarshal(raw, &doc)
		} else {
			err = yaml.Unmarshal(raw, &doc)
		}
		if err != nil {
			return nil, fmt.Errorf("parse standards data %q: %w", f, err)
		}
		for name, v := range doc {
			rows, err := tableRows(v)
			if err != nil {
				return nil, fmt.Errorf("%s: table %q: %w", f, name, err)
			}
			d.tables[name] = append(d.tables[name], rows...)
		}
	}
	logrus.WithField("component", "data").Debugf("loaded %d standards tables from %d files", len(d.tables), len(files))
	return d, nil
}

func tableRows(v any) (Table, error) {
	if m, ok := v.(map[string]any); ok {
		inner, has := m["table"]
		if !has {
			return nil, fmt.Errorf("object without a \"table\" array")
		}
		v = inner
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected an array of rows, got %T", v)
	}
	rows := make(Table, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("row %d: expected an object, got %T", i, item)
		}
		row := make(Row, len(obj))
		for k, val := range obj {
			row[k] = normalize(val)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// normalize turns YAML integers into float64 so rows from both formats
// compare the same way.
func normalize(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	}
	return v
}

// Merge appends the tables of other to d.
func (d *Data) Merge(other *Data) {
	for name, rows := range other.tables {
		d.tables[name] = append(d.tables[name], rows...)
	}
}

// Set replaces a table.
func (d *Data) Set(name string, rows Table) {
	d.tables[name] = rows
}

// Table returns the named table or an error listing the available tables.
func (d *Data) Table(name string) (Table, error) {
	t, ok := d.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w %q; available: %s", ErrUnknownTable, name, strings.Join(d.Names(), ", "))
	}
	return t, nil
}

// Names lists the table names, sorted.
func (d *Data) Names() []string {
	names := make([]string, 0, len(d.tables))
	for n := range d.tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var (
	defaultOnce sync.Once
	defaultData *Data
	defaultErr  error
)

// DefaultData returns the embedded standards data, parsed once.
func DefaultData() (*Data, error) {
	defaultOnce.Do(func() {
		defaultData, defaultErr = LoadData(stddata.FS, stddata.Root)
	})
	return defaultData, defaultErr
}

// OverlayData loads the tables under root in fsys and places them ahead of
// the embedded data, so a row there shadows any embedded row that matches
// the same search.
func OverlayData(fsys fs.FS, root string) (*Data, error) {
	extra, err := LoadData(fsys, root)
	if err != nil {
		return nil, err
	}
	def, err := DefaultData()
	if err != nil {
		return nil, err
	}
	d := NewData()
	d.Merge(extra)
	d.Merge(def)
	return d, nil
}

// Float returns a numeric column.
func (r Row) Float(key string) (float64, bool) {
	switch n := r[key].(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// String returns a string column.
func (r Row) String(key string) (string, bool) {
	s, ok := r[key].(string)
	return s, ok
}
