package field

import "strings"

// Unvalidated accepts every value.
func Unvalidated(string) Check {
	return Pass()
}

// Deprecated reports the default text for any non-blank value.
func Deprecated(raw string) Check {
	if strings.TrimSpace(raw) == "" {
		return Pass()
	}
	return Default()
}

// ParseCheck reports the default text when p fails on the raw value.
func ParseCheck(p Parser) Checker {
	return func(raw string) Check {
		if _, err := p(raw); err != nil {
			return Default()
		}
		return Pass()
	}
}

// FormatCheck reports the default text for a non-empty value that ok rejects.
func FormatCheck(ok func(string) bool) Checker {
	return func(raw string) Check {
		if raw == "" || ok(raw) {
			return Pass()
		}
		return Default()
	}
}

// When runs c only for values accepted by cond.
func When(cond func(string) bool, c Checker) Checker {
	return func(raw string) Check {
		if !cond(raw) {
			return Pass()
		}
		return c(raw)
	}
}

// FirstOf runs the checkers in order and returns the first check that does
// not pass.
func FirstOf(checkers ...Checker) Checker {
	return func(raw string) Check {
		for _, c := range checkers {
			if res := c(raw); !res.IsPass() {
				return res
			}
		}
		return Pass()
	}
}
