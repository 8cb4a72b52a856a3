// Package history records validation outcomes so operators can audit when a
// configuration went bad and what the failures were.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"orgair-hq/atlas/pkg/settings"
)

// Source identifies where the validated snapshot came from.
const (
	SourceEnviron  = "environ"
	SourceEnvFile  = "envfile"
	SourceScenario = "scenario"
)

// Record is one validation outcome.
type Record struct {
	// ID is a generated identifier, unique per record.
	ID string `json:"id"`

	// Timestamp is when the validation ran.
	Timestamp time.Time `json:"timestamp"`

	// Source names where the snapshot came from: environ, envfile, or
	// scenario.
	Source string `json:"source"`

	// Detail carries source-specific context, such as the scenario name or
	// the env file path.
	Detail string `json:"detail,omitempty"`

	// Fingerprint is the snapshot fingerprint that was validated.
	Fingerprint string `json:"fingerprint"`

	// Valid is the outcome.
	Valid bool `json:"valid"`

	// AppEnv is the resolved environment for valid outcomes.
	AppEnv string `json:"app_env,omitempty"`

	// Errors carries the aggregated failures for invalid outcomes.
	Errors []settings.FieldError `json:"errors,omitempty"`
}

// NewRecord builds a record with a fresh ID and the current time.
func NewRecord(source, detail string, fingerprint string) Record {
	return Record{
		ID:          uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		Source:      source,
		Detail:      detail,
		Fingerprint: fingerprint,
	}
}

// ListOptions filters and bounds List results.
type ListOptions struct {
	// Limit bounds the result count; zero means no bound.
	Limit int

	// OnlyInvalid restricts results to failed validations.
	OnlyInvalid bool

	// Source restricts results to one source when non-empty.
	Source string
}

// Store persists validation records. Implementations must order List results
// newest first.
type Store interface {
	// Append stores a record.
	Append(ctx context.Context, rec Record) error

	// List returns stored records, newest first.
	List(ctx context.Context, opts ListOptions) ([]Record, error)

	// Prune deletes records older than the cutoff and reports how many
	// were removed.
	Prune(ctx context.Context, olderThan time.Time) (int64, error)

	// Close releases the store's resources.
	Close() error
}
