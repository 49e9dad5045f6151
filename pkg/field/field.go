// Package field defines the typed columns of a geofeed schema.
//
// A Field is built from a Definition: a name, default error and warning
// texts, and a small set of composable functions that check, parse and format
// raw values. The concrete geofeed fields (networks, country and subdivision
// codes, city, postal code and allocation size) are constructors in this
// package built from the primitives in primitives.go.
package field

import (
	"errors"
	"fmt"
)

// Sentinel errors for broken schema definitions.
var (
	ErrInvalidDefinition = errors.New("invalid field definition")
	ErrInvalidCheck      = errors.New("invalid check result")
)

// Role tells cross-field rules what a field stands for, independent of its
// name in a given schema revision.
type Role uint8

// Field roles.
const (
	RoleNone Role = iota
	RoleNetwork
	RoleCountry
	RoleSubdivision
	RoleCity
	RolePostal
	RoleAllocationSize
)

// String returns the string representation of the role.
func (r Role) String() string {
	switch r {
	case RoleNetwork:
		return "network"
	case RoleCountry:
		return "country"
	case RoleSubdivision:
		return "subdivision"
	case RoleCity:
		return "city"
	case RolePostal:
		return "postal"
	case RoleAllocationSize:
		return "allocation-size"
	default:
		return "none"
	}
}

// Checker inspects a raw value and reports a Check.
type Checker func(raw string) Check

// Parser converts a raw value to the field's semantic type.
// A nil value with a nil error means the value is absent.
type Parser func(raw string) (any, error)

// Formatter renders a parsed value in canonical form.
type Formatter func(v any) string

// Definition configures a Field.
type Definition struct {
	Name        string
	ErrorText   string
	WarningText string
	Role        Role

	// Errors and Warnings default to a check that always passes.
	Errors   Checker
	Warnings Checker

	// Parse defaults to returning the raw value unchanged.
	Parse Parser

	// Format defaults to fmt.Sprint.
	Format Formatter
}

// Outcome is the result of validating one raw value.
type Outcome struct {
	Errors   []string
	Warnings []string
	Value    any
}

// Field is a named, self-describing schema column.
type Field struct {
	def Definition
}

// New creates a Field from a definition.
// The name and the error text must not be empty.
func New(def Definition) (*Field, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("%w: name is empty", ErrInvalidDefinition)
	}
	if def.ErrorText == "" {
		return nil, fmt.Errorf("%w: field %q has no error text", ErrInvalidDefinition, def.Name)
	}
	if def.Errors == nil {
		def.Errors = Unvalidated
	}
	if def.Warnings == nil {
		def.Warnings = Unvalidated
	}
	return &Field{def: def}, nil
}

// MustNew is like New but panics on an invalid definition.
// It is meant for package-level field declarations.
func MustNew(def Definition) *Field {
	f, err := New(def)
	if err != nil {
		panic(err)
	}
	return f
}

// Name returns the field name.
func (f *Field) Name() string { return f.def.Name }

// ErrorText returns the default error text.
func (f *Field) ErrorText() string { return f.def.ErrorText }

// WarningText returns the default warning text, which may be empty.
func (f *Field) WarningText() string { return f.def.WarningText }

// Role returns the field role.
func (f *Field) Role() Role { return f.def.Role }

// Validate checks a raw value and returns its diagnostics and parsed value.
// Parse failures are not returned; they leave Outcome.Value nil.
// A non-nil error means the field definition itself is broken.
func (f *Field) Validate(raw string) (Outcome, error) {
	errs, err := f.def.Errors(raw).Messages(f.def.ErrorText)
	if err != nil {
		return Outcome{}, fmt.Errorf("field %q errors: %w", f.def.Name, err)
	}
	warns, err := f.def.Warnings(raw).Messages(f.def.WarningText)
	if err != nil {
		return Outcome{}, fmt.Errorf("field %q warnings: %w", f.def.Name, err)
	}

	out := Outcome{Errors: errs, Warnings: warns}
	if v, perr := f.Parse(raw); perr == nil {
		out.Value = v
	}
	return out, nil
}

// Parse converts a raw value to the field's semantic type.
func (f *Field) Parse(raw string) (any, error) {
	if f.def.Parse == nil {
		return raw, nil
	}
	return f.def.Parse(raw)
}

// String returns the canonical form of a raw value, or an empty string if it
// does not parse.
func (f *Field) String(raw string) string {
	v, err := f.Parse(raw)
	if err != nil {
		return ""
	}
	return f.Format(v)
}

// Format renders a parsed value. Absent values render as an empty string.
func (f *Field) Format(v any) string {
	if v == nil {
		return ""
	}
	if f.def.Format == nil {
		return fmt.Sprint(v)
	}
	return f.def.Format(v)
}

// Ref identifies a field by name. *Field and Name both satisfy it.
type Ref interface {
	Name() string
}

// Name is a bare field name usable wherever a Ref is accepted.
type Name string

// Name returns n as a string.
func (n Name) Name() string { return string(n) }
