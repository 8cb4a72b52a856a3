package settings

import "fmt"

// Mask is the fixed token used whenever a secret value is rendered in
// human-readable or serialized output.
const Mask = "********"

// Secret is a string whose value must never appear in logs, reports, or
// serialized output. Its String, GoString, Format, and MarshalJSON
// implementations all render the fixed Mask token; Reveal is the only way to
// obtain the raw value.
type Secret string

// String returns the mask token for a set secret and the empty string for an
// unset one, so "value present" remains observable without leaking the value.
func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return Mask
}

// GoString prevents %#v from leaking the raw value.
func (s Secret) GoString() string {
	return fmt.Sprintf("settings.Secret(%q)", s.String())
}

// Format implements fmt.Formatter so that every verb (%s, %v, %q, %x, ...)
// renders the mask rather than the raw value.
func (s Secret) Format(f fmt.State, verb rune) {
	switch verb {
	case 'q':
		fmt.Fprintf(f, "%q", s.String())
	default:
		fmt.Fprint(f, s.String())
	}
}

// MarshalJSON renders the mask token, never the raw value.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", s.String())), nil
}

// Reveal returns the raw secret value. It is the only accessor that does.
func (s Secret) Reveal() string {
	return string(s)
}

// IsSet reports whether the secret carries a value.
func (s Secret) IsSet() bool {
	return s != ""
}
