package settings

import (
	"strings"
	"testing"
)

// baseSnapshot returns the minimal snapshot satisfying every required field,
// with all other fields at their defaults.
func baseSnapshot() Snapshot {
	return Snapshot{
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

// fieldErrors extracts the aggregated field errors from a Load failure.
func fieldErrors(t *testing.T, err error) []FieldError {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	verr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	return verr.Errors
}

// requireEntry asserts that exactly one error entry exists for field and that
// its message contains want.
func requireEntry(t *testing.T, errs []FieldError, field, want string) {
	t.Helper()
	var found int
	for _, fe := range errs {
		if fe.Field != field {
			continue
		}
		found++
		if !strings.Contains(fe.Message, want) {
			t.Errorf("entry for %s: message %q does not contain %q", field, fe.Message, want)
		}
	}
	if found != 1 {
		t.Errorf("expected exactly one entry for %s, got %d (all: %v)", field, found, errs)
	}
}

func TestLoadDefaults(t *testing.T) {
	s, err := Load(baseSnapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.AppName != DefaultAppName {
		t.Errorf("expected app name %q, got %q", DefaultAppName, s.AppName)
	}
	if s.AppEnv != EnvDevelopment {
		t.Errorf("expected environment %q, got %q", EnvDevelopment, s.AppEnv)
	}
	if s.Debug {
		t.Error("expected debug to default to false")
	}
	if s.RateLimitPerMinute != DefaultRateLimitPerMinute {
		t.Errorf("expected rate limit %d, got %d", DefaultRateLimitPerMinute, s.RateLimitPerMinute)
	}
	if s.DailyCostBudgetUSD != DefaultDailyCostBudgetUSD {
		t.Errorf("expected budget %v, got %v", DefaultDailyCostBudgetUSD, s.DailyCostBudgetUSD)
	}
	if got := s.WeightSum(); got != 1.0 && !withinTolerance(got) {
		t.Errorf("default weights should sum to 1.0, got %v", got)
	}
	if s.SnowflakeDatabase != DefaultSnowflakeDatabase {
		t.Errorf("expected snowflake database %q, got %q", DefaultSnowflakeDatabase, s.SnowflakeDatabase)
	}
	if s.CostAlertThresholdPct != DefaultCostAlertThresholdPct {
		t.Errorf("expected alert threshold %v, got %v", DefaultCostAlertThresholdPct, s.CostAlertThresholdPct)
	}
	if s.HITLScoreChangeThreshold != DefaultHITLScoreChangeThreshold {
		t.Errorf("expected HITL score threshold %v, got %v", DefaultHITLScoreChangeThreshold, s.HITLScoreChangeThreshold)
	}
	if s.HITLEBITDAProjectionThreshold != DefaultHITLEBITDAProjectionThreshold {
		t.Errorf("expected HITL EBITDA threshold %v, got %v", DefaultHITLEBITDAProjectionThreshold, s.HITLEBITDAProjectionThreshold)
	}
	if s.CacheTTLSectors != DefaultCacheTTLSectors || s.CacheTTLScores != DefaultCacheTTLScores {
		t.Errorf("expected cache TTLs %d/%d, got %d/%d",
			DefaultCacheTTLSectors, DefaultCacheTTLScores, s.CacheTTLSectors, s.CacheTTLScores)
	}
	if s.AlphaVRWeight != DefaultAlphaVRWeight || s.BetaSynergyWeight != DefaultBetaSynergyWeight {
		t.Errorf("unexpected coefficient defaults: alpha %v beta %v", s.AlphaVRWeight, s.BetaSynergyWeight)
	}
	if s.LambdaPenalty != DefaultLambdaPenalty || s.DeltaPosition != DefaultDeltaPosition {
		t.Errorf("unexpected coefficient defaults: lambda %v delta %v", s.LambdaPenalty, s.DeltaPosition)
	}
	if s.WDataInfra != DefaultWDataInfra || s.WCulture != DefaultWCulture {
		t.Errorf("unexpected weight defaults: %v %v", s.WDataInfra, s.WCulture)
	}
	if s.OpenAIAPIKey.IsSet() {
		t.Error("expected OPENAI_API_KEY to be absent by default")
	}
}

func withinTolerance(sum float64) bool {
	d := sum - 1.0
	if d < 0 {
		d = -d
	}
	return d <= WeightSumTolerance
}

func TestRequiredFields(t *testing.T) {
	for _, key := range []string{
		"SECRET_KEY",
		"SNOWFLAKE_ACCOUNT",
		"SNOWFLAKE_USER",
		"SNOWFLAKE_PASSWORD",
		"SNOWFLAKE_WAREHOUSE",
		"AWS_ACCESS_KEY_ID",
		"AWS_SECRET_ACCESS_KEY",
		"S3_BUCKET",
	} {
		t.Run(key, func(t *testing.T) {
			snap := baseSnapshot()
			delete(snap, key)
			_, err := Load(snap)
			requireEntry(t, fieldErrors(t, err), key, "required")
		})
	}
}

func TestRequiredFieldEmptyStringIsMissing(t *testing.T) {
	snap := baseSnapshot()
	snap["S3_BUCKET"] = ""
	_, err := Load(snap)
	requireEntry(t, fieldErrors(t, err), "S3_BUCKET", "required")
}

func TestNumericRangeBoundaries(t *testing.T) {
	tests := []struct {
		key      string
		pass     []string
		fail     []string
		boundMsg string
	}{
		{"RATE_LIMIT_PER_MINUTE", []string{"1", "1000", "500"}, []string{"0", "1001", "1500"}, ""},
		{"DAILY_COST_BUDGET_USD", []string{"0", "500.0", "100000"}, []string{"-0.01", "-50.0"}, "at least 0"},
		{"COST_ALERT_THRESHOLD_PCT", []string{"0", "1", "0.8"}, []string{"-0.001", "1.001", "1.5"}, ""},
		{"HITL_SCORE_CHANGE_THRESHOLD", []string{"5", "30", "15.0"}, []string{"4.999", "30.001", "2.0"}, ""},
		{"HITL_EBITDA_PROJECTION_THRESHOLD", []string{"5", "25", "10.0"}, []string{"4.999", "25.001", "50.0"}, ""},
		{"ALPHA_VR_WEIGHT", []string{"0.55", "0.70", "0.60"}, []string{"0.549", "0.701"}, ""},
		{"BETA_SYNERGY_WEIGHT", []string{"0.08", "0.20", "0.12"}, []string{"0.079", "0.201"}, ""},
		{"LAMBDA_PENALTY", []string{"0", "0.50", "0.25"}, []string{"-0.001", "0.501"}, ""},
		{"DELTA_POSITION", []string{"0.10", "0.20", "0.15"}, []string{"0.099", "0.201"}, ""},
	}

	for _, tt := range tests {
		for _, raw := range tt.pass {
			t.Run(tt.key+"/pass/"+raw, func(t *testing.T) {
				snap := baseSnapshot()
				snap[tt.key] = raw
				if _, err := Load(snap); err != nil {
					t.Errorf("expected %s=%s to pass, got: %v", tt.key, raw, err)
				}
			})
		}
		for _, raw := range tt.fail {
			t.Run(tt.key+"/fail/"+raw, func(t *testing.T) {
				snap := baseSnapshot()
				snap[tt.key] = raw
				_, err := Load(snap)
				requireEntry(t, fieldErrors(t, err), tt.key, "must be")
			})
		}
	}
}

func TestNonFiniteNumbersRejected(t *testing.T) {
	// strconv.ParseFloat accepts these spellings, but a NaN weight would
	// defeat the sum invariant (every comparison against NaN is false) and
	// an infinite budget can never sit inside an inclusive range.
	for _, tt := range []struct {
		key string
		raw string
	}{
		{"W_DATA_INFRA", "NaN"},
		{"W_DATA_INFRA", "nan"},
		{"DAILY_COST_BUDGET_USD", "nan"},
		{"DAILY_COST_BUDGET_USD", "Inf"},
		{"DAILY_COST_BUDGET_USD", "+inf"},
		{"COST_ALERT_THRESHOLD_PCT", "-inf"},
	} {
		t.Run(tt.key+"/"+tt.raw, func(t *testing.T) {
			snap := baseSnapshot()
			snap[tt.key] = tt.raw
			_, err := Load(snap)
			requireEntry(t, fieldErrors(t, err), tt.key, "invalid number")
		})
	}
}

func TestNaNWeightNeverValidates(t *testing.T) {
	snap := baseSnapshot()
	snap["W_DATA_INFRA"] = "NaN"
	s, err := Load(snap)
	if err == nil {
		t.Fatalf("NaN weight produced a settings instance with sum %v", s.WeightSum())
	}
}

func TestWeightBoundaries(t *testing.T) {
	// A single weight at exactly 0 or 1 passes field-level validation; the
	// cross-field sum check is what rejects the combination.
	snap := baseSnapshot()
	snap["W_DATA_INFRA"] = "1"
	snap["W_AI_GOVERNANCE"] = "0"
	snap["W_TECH_STACK"] = "0"
	snap["W_TALENT"] = "0"
	snap["W_LEADERSHIP"] = "0"
	snap["W_USE_CASES"] = "0"
	snap["W_CULTURE"] = "0"
	if _, err := Load(snap); err != nil {
		t.Errorf("weights at field boundaries summing to 1.0 should pass, got: %v", err)
	}

	snap = baseSnapshot()
	snap["W_DATA_INFRA"] = "1.001"
	_, err := Load(snap)
	requireEntry(t, fieldErrors(t, err), "W_DATA_INFRA", "at most 1")
}

func TestRateLimitUpperBoundMessage(t *testing.T) {
	snap := baseSnapshot()
	snap["RATE_LIMIT_PER_MINUTE"] = "1500"
	_, err := Load(snap)
	errs := fieldErrors(t, err)
	if len(errs) != 1 {
		t.Fatalf("expected a single error, got %d: %v", len(errs), errs)
	}
	requireEntry(t, errs, "RATE_LIMIT_PER_MINUTE", "1000")
}

func TestEnumFields(t *testing.T) {
	tests := []struct {
		key     string
		invalid string
		listed  string
	}{
		{"APP_ENV", "qa", "development, staging, production"},
		{"LOG_LEVEL", "TRACE", "DEBUG, INFO, WARNING, ERROR"},
		{"LOG_FORMAT", "xml", "json, console"},
		{"PARAM_VERSION", "v3.0", "v1.0, v2.0"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			snap := baseSnapshot()
			snap[tt.key] = tt.invalid
			_, err := Load(snap)
			requireEntry(t, fieldErrors(t, err), tt.key, tt.listed)
		})
	}
}

func TestOpenAIKeyPrefix(t *testing.T) {
	snap := baseSnapshot()
	snap["OPENAI_API_KEY"] = "pk-xxx"
	_, err := Load(snap)
	requireEntry(t, fieldErrors(t, err), "OPENAI_API_KEY", `"sk-"`)

	snap["OPENAI_API_KEY"] = "sk-dev_test_key_xxxx"
	if _, err := Load(snap); err != nil {
		t.Errorf("expected sk- prefixed key to pass, got: %v", err)
	}

	// Absent values are not checked against the prefix.
	delete(snap, "OPENAI_API_KEY")
	if _, err := Load(snap); err != nil {
		t.Errorf("expected absent key to be skipped, got: %v", err)
	}
}

func TestAnthropicKeyHasNoPrefixConstraint(t *testing.T) {
	snap := baseSnapshot()
	snap["ANTHROPIC_API_KEY"] = "anthropic_valid_key"
	if _, err := Load(snap); err != nil {
		t.Errorf("expected unprefixed anthropic key to pass, got: %v", err)
	}
}

func TestBooleanCoercion(t *testing.T) {
	for _, raw := range []string{"true", "True", "TRUE", "1"} {
		snap := baseSnapshot()
		snap["DEBUG"] = raw
		s, err := Load(snap)
		if err != nil {
			t.Fatalf("DEBUG=%s: unexpected error: %v", raw, err)
		}
		if !s.Debug {
			t.Errorf("DEBUG=%s: expected true", raw)
		}
	}

	snap := baseSnapshot()
	snap["DEBUG"] = "yes"
	_, err := Load(snap)
	requireEntry(t, fieldErrors(t, err), "DEBUG", "invalid boolean")
}

func TestDimensionWeightSum(t *testing.T) {
	t.Run("defaults sum to 1.0", func(t *testing.T) {
		if _, err := Load(baseSnapshot()); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("within tolerance passes", func(t *testing.T) {
		snap := baseSnapshot()
		snap["W_DATA_INFRA"] = "0.1805" // sum 1.0005, inside epsilon
		if _, err := Load(snap); err != nil {
			t.Errorf("sum within 0.001 of 1.0 should pass, got: %v", err)
		}
	})

	t.Run("outside tolerance fails with actual sum", func(t *testing.T) {
		snap := baseSnapshot()
		snap["W_DATA_INFRA"] = "0.20" // sum 1.02
		_, err := Load(snap)
		errs := fieldErrors(t, err)
		if len(errs) != 1 {
			t.Fatalf("expected a single cross-field error, got %d: %v", len(errs), errs)
		}
		requireEntry(t, errs, WeightsField, "1.02")
	})

	t.Run("below one fails", func(t *testing.T) {
		snap := baseSnapshot()
		snap["W_CULTURE"] = "0.05" // sum 0.95
		_, err := Load(snap)
		requireEntry(t, fieldErrors(t, err), WeightsField, "0.95")
	})
}

func TestCoercionFailureAbortsCrossFieldChecks(t *testing.T) {
	snap := baseSnapshot()
	snap["W_DATA_INFRA"] = "not-a-number"
	_, err := Load(snap)
	errs := fieldErrors(t, err)
	requireEntry(t, errs, "W_DATA_INFRA", "invalid number")
	for _, fe := range errs {
		if fe.Field == WeightsField {
			t.Errorf("cross-field check should not run after a coercion failure: %v", fe)
		}
	}
}

func TestFieldFailuresDoNotShortCircuitSiblings(t *testing.T) {
	snap := baseSnapshot()
	snap["RATE_LIMIT_PER_MINUTE"] = "1500"
	snap["DAILY_COST_BUDGET_USD"] = "-50.0"
	snap["COST_ALERT_THRESHOLD_PCT"] = "1.5"
	snap["HITL_SCORE_CHANGE_THRESHOLD"] = "2.0"
	snap["HITL_EBITDA_PROJECTION_THRESHOLD"] = "50.0"

	_, err := Load(snap)
	errs := fieldErrors(t, err)
	if len(errs) != 5 {
		t.Fatalf("expected all 5 failures collected, got %d: %v", len(errs), errs)
	}
	requireEntry(t, errs, "RATE_LIMIT_PER_MINUTE", "at most 1000")
	requireEntry(t, errs, "DAILY_COST_BUDGET_USD", "at least 0")
	requireEntry(t, errs, "COST_ALERT_THRESHOLD_PCT", "at most 1")
	requireEntry(t, errs, "HITL_SCORE_CHANGE_THRESHOLD", "at least 5")
	requireEntry(t, errs, "HITL_EBITDA_PROJECTION_THRESHOLD", "at most 25")
}

func TestProductionRulesSkippedOutsideProduction(t *testing.T) {
	for _, env := range []string{EnvDevelopment, EnvStaging} {
		t.Run(env, func(t *testing.T) {
			snap := baseSnapshot()
			snap["APP_ENV"] = env
			snap["DEBUG"] = "true"
			snap["SECRET_KEY"] = "short" // well under 32 chars
			// no LLM keys either
			if _, err := Load(snap); err != nil {
				t.Errorf("conditional validator must be a no-op outside production, got: %v", err)
			}
		})
	}
}

func TestProductionRules(t *testing.T) {
	validProd := func() Snapshot {
		snap := baseSnapshot()
		snap["APP_ENV"] = EnvProduction
		snap["DEBUG"] = "false"
		snap["SECRET_KEY"] = "prod_secure_key_12345678901234567890123456789012"
		snap["ANTHROPIC_API_KEY"] = "sk-ant-REDACTED"
		return snap
	}

	t.Run("valid production passes", func(t *testing.T) {
		if _, err := Load(validProd()); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("debug enabled fails", func(t *testing.T) {
		snap := validProd()
		snap["DEBUG"] = "true"
		_, err := Load(snap)
		requireEntry(t, fieldErrors(t, err), "DEBUG", "must be false")
	})

	t.Run("short secret key fails", func(t *testing.T) {
		snap := validProd()
		snap["SECRET_KEY"] = "too_short_key"
		_, err := Load(snap)
		requireEntry(t, fieldErrors(t, err), "SECRET_KEY", "32")
	})

	t.Run("secret key at exactly 32 characters passes", func(t *testing.T) {
		snap := validProd()
		snap["SECRET_KEY"] = strings.Repeat("k", 32)
		if _, err := Load(snap); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing llm keys fails under general", func(t *testing.T) {
		snap := validProd()
		delete(snap, "ANTHROPIC_API_KEY")
		_, err := Load(snap)
		requireEntry(t, fieldErrors(t, err), GeneralField, "LLM API key")
	})

	t.Run("one llm key suffices", func(t *testing.T) {
		snap := validProd()
		delete(snap, "ANTHROPIC_API_KEY")
		snap["OPENAI_API_KEY"] = "sk-xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx"
		if _, err := Load(snap); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestProductionFailuresAreAllCollected(t *testing.T) {
	snap := baseSnapshot()
	snap["APP_ENV"] = EnvProduction
	snap["DEBUG"] = "true"
	snap["SECRET_KEY"] = "short"
	snap["OPENAI_API_KEY"] = ""
	snap["ANTHROPIC_API_KEY"] = ""

	_, err := Load(snap)
	errs := fieldErrors(t, err)
	if len(errs) != 3 {
		t.Fatalf("expected exactly three independent failures, got %d: %v", len(errs), errs)
	}
	requireEntry(t, errs, "DEBUG", "must be false")
	requireEntry(t, errs, "SECRET_KEY", "32")
	requireEntry(t, errs, GeneralField, "LLM API key")
}

func TestWeightAndProductionFailuresAggregate(t *testing.T) {
	// Both the cross-field and the conditional validators run even when the
	// other has already failed; one report carries both.
	snap := baseSnapshot()
	snap["APP_ENV"] = EnvProduction
	snap["DEBUG"] = "true"
	snap["SECRET_KEY"] = "prod_secure_key_12345678901234567890123456789012"
	snap["ANTHROPIC_API_KEY"] = "sk-ant-REDACTED"
	snap["W_DATA_INFRA"] = "0.20"

	_, err := Load(snap)
	errs := fieldErrors(t, err)
	if len(errs) != 2 {
		t.Fatalf("expected 2 aggregated failures, got %d: %v", len(errs), errs)
	}
	requireEntry(t, errs, WeightsField, "sum to 1.0")
	requireEntry(t, errs, "DEBUG", "must be false")
}

func TestValidationErrorRendering(t *testing.T) {
	snap := baseSnapshot()
	snap["RATE_LIMIT_PER_MINUTE"] = "1500"
	snap["APP_ENV"] = "qa"
	_, err := Load(snap)

	msg := err.Error()
	if !strings.Contains(msg, "2 errors") {
		t.Errorf("expected error count in message, got: %q", msg)
	}
	if !strings.Contains(msg, "RATE_LIMIT_PER_MINUTE") || !strings.Contains(msg, "APP_ENV") {
		t.Errorf("expected every entry rendered, got: %q", msg)
	}
}
