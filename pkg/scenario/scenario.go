// Package scenario simulates configuration environments against the settings
// schema. A scenario is a named set of environment overrides; the runner
// applies each one on top of a baseline snapshot, validates it, and reports
// the outcome without stopping at failures.
package scenario

import (
	"fmt"
	"sort"
	"time"

	"orgair-hq/atlas/pkg/settings"
)

// Scenario is a named environment simulation.
type Scenario struct {
	// Name identifies the scenario in reports and on the command line.
	Name string `yaml:"name" json:"name"`

	// Description is optional free text shown in listings.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Env holds the environment overrides the scenario applies on top of
	// the runner's baseline.
	Env map[string]string `yaml:"env" json:"env"`

	// ExpectFailure marks scenarios that demonstrate a misconfiguration.
	// The CLI exits non-zero only when a scenario without this flag fails.
	ExpectFailure bool `yaml:"expect_failure,omitempty" json:"expect_failure,omitempty"`
}

// Report is the outcome of validating one scenario.
type Report struct {
	Scenario string `json:"scenario"`

	// Valid is true when the simulated environment passed every check.
	Valid bool `json:"valid"`

	// Errors carries the aggregated failures for invalid scenarios.
	Errors []settings.FieldError `json:"errors,omitempty"`

	// AppEnv and WeightSum summarize the resolved settings for valid
	// scenarios.
	AppEnv    string  `json:"app_env,omitempty"`
	Debug     bool    `json:"debug,omitempty"`
	WeightSum float64 `json:"weight_sum,omitempty"`

	// Duration is the wall-clock time the validation took.
	Duration time.Duration `json:"duration_ns"`

	// Settings is the validated result, nil for invalid scenarios.
	Settings *settings.Settings `json:"-"`
}

// Runner validates scenarios against a baseline snapshot. The baseline
// supplies placeholder values for required fields so a scenario only has to
// name the keys it cares about.
type Runner struct {
	base settings.Snapshot
}

// NewRunner creates a Runner whose baseline carries development placeholders
// for every required field.
func NewRunner() *Runner {
	return &Runner{base: Baseline()}
}

// NewRunnerWithBase creates a Runner over a caller-supplied baseline. The
// snapshot is cloned; later mutations of the argument do not affect the
// runner.
func NewRunnerWithBase(base settings.Snapshot) *Runner {
	return &Runner{base: base.Clone()}
}

// Baseline returns the development placeholder values for the required
// fields.
func Baseline() settings.Snapshot {
	return settings.Snapshot{
		"SECRET_KEY":            "default_secret_for_dev_env_testing_0123456789",
		"SNOWFLAKE_ACCOUNT":     "test_account",
		"SNOWFLAKE_USER":        "test_user",
		"SNOWFLAKE_PASSWORD":    "test_snowflake_password",
		"SNOWFLAKE_WAREHOUSE":   "test_warehouse",
		"AWS_ACCESS_KEY_ID":     "test_aws_key_id",
		"AWS_SECRET_ACCESS_KEY": "test_aws_secret_key",
		"S3_BUCKET":             "test_s3_bucket",
	}
}

// Run validates a single scenario and reports the outcome.
func (r *Runner) Run(sc Scenario) Report {
	snap := r.base.Merge(sc.Env)

	start := time.Now()
	s, err := settings.Load(snap)
	elapsed := time.Since(start)

	if err != nil {
		report := Report{Scenario: sc.Name, Duration: elapsed}
		if verr, ok := settings.AsValidationError(err); ok {
			report.Errors = verr.Errors
		} else {
			report.Errors = []settings.FieldError{{
				Field:   settings.GeneralField,
				Message: err.Error(),
			}}
		}
		return report
	}

	return Report{
		Scenario:  sc.Name,
		Valid:     true,
		AppEnv:    s.AppEnv,
		Debug:     s.Debug,
		WeightSum: s.WeightSum(),
		Duration:  elapsed,
		Settings:  s,
	}
}

// RunAll validates every scenario in order. A failing scenario never stops
// the run; the returned slice has one report per scenario.
func (r *Runner) RunAll(scs []Scenario) []Report {
	reports := make([]Report, 0, len(scs))
	for _, sc := range scs {
		reports = append(reports, r.Run(sc))
	}
	return reports
}

// Find returns the scenario with the given name from the slice.
func Find(scs []Scenario, name string) (Scenario, error) {
	for _, sc := range scs {
		if sc.Name == name {
			return sc, nil
		}
	}
	names := make([]string, 0, len(scs))
	for _, sc := range scs {
		names = append(names, sc.Name)
	}
	sort.Strings(names)
	return Scenario{}, fmt.Errorf("unknown scenario %q (known: %v)", name, names)
}
