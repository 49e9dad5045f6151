package field

import (
	"errors"
	"strconv"
	"strings"
)

var errNoSlash = errors.New("allocation size must start with '/'")

// ParseAllocationSize parses a CIDR suffix such as "/24".
// An empty value is valid and returns ok == false.
func ParseAllocationSize(raw string) (size int, ok bool, err error) {
	if raw == "" {
		return 0, false, nil
	}
	rest, found := strings.CutPrefix(raw, "/")
	if !found {
		return 0, false, errNoSlash
	}
	size, err = strconv.Atoi(rest)
	if err != nil {
		return 0, false, err
	}
	return size, true, nil
}

func parseAllocationSize(raw string) (any, error) {
	size, ok, err := ParseAllocationSize(raw)
	if err != nil {
		return nil, err
	}
	if !ok {
		return "", nil
	}
	return size, nil
}

func formatAllocationSize(v any) string {
	if size, ok := v.(int); ok {
		return "/" + strconv.Itoa(size)
	}
	return ""
}

// AllocationSize returns the allocation_size field of the draft
// allocation-size extension.
func AllocationSize() *Field {
	return MustNew(Definition{
		Name:      "allocation_size",
		ErrorText: "Must be valid CIDR notation",
		Role:      RoleAllocationSize,
		Errors:    ParseCheck(parseAllocationSize),
		Parse:     parseAllocationSize,
		Format:    formatAllocationSize,
	})
}
