package field

// checkKind discriminates the variants of Check.
type checkKind uint8

const (
	checkInvalid checkKind = iota
	checkPass
	checkDefault
	checkCustom
)

// Check is the outcome of an error or warning check on a raw value.
//
// A Check is one of three variants:
//   - Pass: nothing to report
//   - Default: report the field's default error or warning text
//   - Custom: report the given messages
//
// The zero value is not a valid Check and is rejected by Field.Validate.
type Check struct {
	kind     checkKind
	messages []string
}

// Pass reports nothing.
func Pass() Check {
	return Check{kind: checkPass}
}

// Default reports the field's default text.
func Default() Check {
	return Check{kind: checkDefault}
}

// Custom reports the given messages. Custom with no messages is a Pass.
func Custom(messages ...string) Check {
	if len(messages) == 0 {
		return Pass()
	}
	return Check{kind: checkCustom, messages: messages}
}

// IsPass returns true if the check reports nothing.
func (c Check) IsPass() bool {
	return c.kind == checkPass
}

// IsValid returns true if the check was built by Pass, Default or Custom.
func (c Check) IsValid() bool {
	return c.kind != checkInvalid
}

// Messages normalizes the check against the given default text.
// Default with an empty default text yields no messages.
func (c Check) Messages(defaultText string) ([]string, error) {
	switch c.kind {
	case checkPass:
		return nil, nil
	case checkDefault:
		if defaultText == "" {
			return nil, nil
		}
		return []string{defaultText}, nil
	case checkCustom:
		out := make([]string, len(c.messages))
		copy(out, c.messages)
		return out, nil
	default:
		return nil, ErrInvalidCheck
	}
}
