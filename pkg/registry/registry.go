// Package registry maps schema names to geofeed schemas.
//
// The registry is process-wide. Schema packages register their dialects from
// init functions; afterwards the registry is only read. Unregister exists for
// tests that register temporary schemas.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/geofeed/validator/pkg/validator"
)

// Errors returned by the registry.
var (
	ErrNotFound  = errors.New("schema not registered")
	ErrDuplicate = errors.New("schema already registered")
)

var (
	mu      sync.RWMutex
	schemas = make(map[string]*validator.Schema)
)

// Register adds a schema under its name. The schema must pass
// validator.Schema.Validate and its name must not be taken.
func Register(s *validator.Schema) error {
	if err := s.Validate(); err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	if _, ok := schemas[s.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, s.Name)
	}
	schemas[s.Name] = s
	return nil
}

// MustRegister is like Register but panics on error.
// It is meant for init functions.
func MustRegister(s *validator.Schema) {
	if err := Register(s); err != nil {
		panic(err)
	}
}

// Find returns the schema registered under name.
func Find(name string) (*validator.Schema, error) {
	mu.RLock()
	defer mu.RUnlock()
	s, ok := schemas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return s, nil
}

// Names returns the registered names in sorted order.
func Names() []string {
	mu.RLock()
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	mu.RUnlock()

	sort.Strings(names)
	return names
}

// Unregister removes a schema. It reports whether the name was registered.
// Only tests should need it.
func Unregister(name string) bool {
	mu.Lock()
	defer mu.Unlock()
	_, ok := schemas[name]
	delete(schemas, name)
	return ok
}
