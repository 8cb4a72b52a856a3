package settings

import (
	"fmt"
	"io"
)

// WriteReport renders the human-readable success report: every field's
// resolved value in schema order, secrets rendered as the mask token and
// absent optional fields as "(not set)".
func WriteReport(w io.Writer, s *Settings) error {
	if _, err := fmt.Fprintf(w, "resolved configuration (%s):\n", s.AppEnv); err != nil {
		return err
	}
	for _, rv := range s.Resolved() {
		value := rv.Value
		if value == "" {
			value = "(not set)"
		}
		if _, err := fmt.Fprintf(w, "  %-34s %s\n", rv.Key, value); err != nil {
			return err
		}
	}
	return nil
}

// WriteErrorReport renders every entry of the validation error, one line per
// (field, message) pair. Entries are never truncated.
func WriteErrorReport(w io.Writer, verr ValidationError) error {
	if _, err := fmt.Fprintf(w, "validation failed with %d error(s):\n", len(verr.Errors)); err != nil {
		return err
	}
	for _, fe := range verr.Errors {
		if _, err := fmt.Fprintf(w, "  [%s] %s\n", fe.Field, fe.Message); err != nil {
			return err
		}
	}
	return nil
}
