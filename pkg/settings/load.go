package settings

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
)

// Snapshot is a flat string-keyed view of the environment variable boundary.
// All values arrive as strings; coercion to typed fields happens in Load.
//
// Snapshots passed to Load are treated as immutable for the duration of the
// load; use Clone before handing a snapshot to code that may mutate it.
type Snapshot map[string]string

// FromEnviron captures the current process environment as a snapshot.
func FromEnviron() Snapshot {
	environ := os.Environ()
	snap := make(Snapshot, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		snap[k] = v
	}
	return snap
}

// Clone returns an independent copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Merge returns a new snapshot with overrides applied on top of s.
// On key collision the override wins; neither input is modified.
func (s Snapshot) Merge(overrides map[string]string) Snapshot {
	out := s.Clone()
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Fingerprint returns a stable content hash of the snapshot, used as the
// loader cache key. Two snapshots with identical key-value pairs produce
// identical fingerprints regardless of map iteration order.
func (s Snapshot) Fingerprint() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	for _, k := range keys {
		fmt.Fprintf(h, "%s=%s\n", k, s[k])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Load builds a validated Settings instance from the snapshot.
//
// Every schema field is coerced from its raw string (or default), collecting
// all field-level failures before reporting. Only when every coercion
// succeeded do the cross-field weight-sum invariant and the production-only
// security rules run; both always run and their failures are aggregated into
// the same report. On any failure the returned Settings is nil: callers never
// observe a partially valid instance.
func Load(snap Snapshot) (*Settings, error) {
	s := &Settings{}
	var errs []FieldError

	for _, f := range schema {
		raw, ok := snap[f.Key]
		if !ok || raw == "" {
			switch {
			case f.Required:
				errs = append(errs, FieldError{Field: f.Key, Message: "required field is missing"})
				continue
			case f.Optional:
				// Absent optional fields skip coercion and constraints.
				continue
			default:
				raw = f.Default
			}
		}

		v, ferr := f.coerce(raw)
		if ferr != nil {
			errs = append(errs, *ferr)
			continue
		}
		f.assign(s, v)
	}

	// Cross-field validators read typed fields, so a coercion failure aborts
	// them; it never aborts sibling field checks above.
	if len(errs) > 0 {
		return nil, ValidationError{Errors: errs}
	}

	errs = append(errs, validateDimensionWeights(s)...)
	errs = append(errs, validateProduction(s)...)
	if len(errs) > 0 {
		return nil, ValidationError{Errors: errs}
	}

	return s, nil
}

// validateDimensionWeights enforces the weight-sum invariant: the seven
// dimension weights must sum to 1.0 within WeightSumTolerance.
func validateDimensionWeights(s *Settings) []FieldError {
	total := s.WeightSum()
	if math.Abs(total-1.0) > WeightSumTolerance {
		return []FieldError{{
			Field:   WeightsField,
			Message: fmt.Sprintf("dimension weights must sum to 1.0, got %.6g", total),
		}}
	}
	return nil
}

// validateProduction enforces the production-only security rules. Each rule is
// an independent check and every violation is collected; outside the
// production environment this validator is a no-op.
func validateProduction(s *Settings) []FieldError {
	if !s.IsProduction() {
		return nil
	}

	var errs []FieldError

	if s.Debug {
		errs = append(errs, FieldError{
			Field:   "DEBUG",
			Message: "DEBUG must be false in the production environment",
		})
	}
	if len(s.SecretKey.Reveal()) < MinProductionSecretKeyLength {
		errs = append(errs, FieldError{
			Field: "SECRET_KEY",
			Message: fmt.Sprintf("SECRET_KEY must be at least %d characters in the production environment",
				MinProductionSecretKeyLength),
		})
	}
	if !s.OpenAIAPIKey.IsSet() && !s.AnthropicAPIKey.IsSet() {
		errs = append(errs, FieldError{
			Field:   GeneralField,
			Message: "at least one LLM API key (OPENAI_API_KEY or ANTHROPIC_API_KEY) is required in the production environment",
		})
	}

	return errs
}
