package codes

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/subdivisions.yaml
var embeddedTable []byte

// ErrInvalidTable is returned when a code table cannot be loaded.
var ErrInvalidTable = errors.New("invalid code table")

// tableFile is the YAML layout of a code table.
//
//	countries:
//	  XK: Kosovo
//	subdivisions:
//	  AT:
//	    AT-1: Burgenland
type tableFile struct {
	Countries    map[string]string            `yaml:"countries"`
	Subdivisions map[string]map[string]string `yaml:"subdivisions"`
}

// Table is an in-memory Lookup. Countries resolve against CLDR unless the
// table carries its own entry; subdivisions resolve against the table only.
// It is safe for concurrent use.
type Table struct {
	mu           sync.RWMutex
	countries    map[string]Country
	subdivisions map[string]Subdivision
}

// NewTable creates a table preloaded with the embedded subdivision data.
func NewTable() (*Table, error) {
	t := NewEmptyTable()
	if err := t.LoadYAML(bytes.NewReader(embeddedTable)); err != nil {
		return nil, fmt.Errorf("load embedded table: %w", err)
	}
	return t, nil
}

// NewEmptyTable creates a table with no subdivisions.
func NewEmptyTable() *Table {
	return &Table{
		countries:    make(map[string]Country),
		subdivisions: make(map[string]Subdivision),
	}
}

// LoadYAML merges the entries of a YAML code table into t. Entries replace
// existing ones with the same code. Nothing is merged if the table is invalid.
func (t *Table) LoadYAML(r io.Reader) error {
	var f tableFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}

	countries := make([]Country, 0, len(f.Countries))
	for code, name := range f.Countries {
		if !IsAlpha2(code) {
			return fmt.Errorf("%w: country code %q is not alpha-2", ErrInvalidTable, code)
		}
		countries = append(countries, Country{Code: strings.ToUpper(code), Name: name})
	}

	var subdivisions []Subdivision
	for country, entries := range f.Subdivisions {
		if !IsAlpha2(country) {
			return fmt.Errorf("%w: country code %q is not alpha-2", ErrInvalidTable, country)
		}
		country = strings.ToUpper(country)
		for code, name := range entries {
			code = strings.ToUpper(code)
			if !strings.HasPrefix(code, country+"-") || len(code) == len(country)+1 {
				return fmt.Errorf("%w: subdivision %q is not under %s", ErrInvalidTable, code, country)
			}
			subdivisions = append(subdivisions, Subdivision{Code: code, Name: name, Country: country})
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, c := range countries {
		t.countries[c.Code] = c
	}
	for _, s := range subdivisions {
		t.subdivisions[s.Code] = s
	}
	return nil
}

// Country implements Lookup.
func (t *Table) Country(code string) (Country, bool) {
	t.mu.RLock()
	c, ok := t.countries[strings.ToUpper(code)]
	t.mu.RUnlock()
	if ok {
		return c, true
	}
	return regionCountry(code)
}

// Subdivision implements Lookup.
func (t *Table) Subdivision(code string) (Subdivision, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.subdivisions[strings.ToUpper(code)]
	return s, ok
}

// Len returns the number of subdivisions in the table.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.subdivisions)
}

var (
	defaultOnce   sync.Once
	defaultLookup Lookup
)

// Default returns a process-wide cached lookup over the embedded table.
func Default() Lookup {
	defaultOnce.Do(func() {
		t, err := NewTable()
		if err != nil {
			// The embedded table is part of the build.
			panic(err)
		}
		defaultLookup = NewCached(t, DefaultCacheSize)
	})
	return defaultLookup
}
