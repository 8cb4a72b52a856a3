package settings

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the declared type of a configuration field.
type Kind int

const (
	// KindString is a free-form string field.
	KindString Kind = iota
	// KindBool is a boolean field ("true"/"false", case-insensitive).
	KindBool
	// KindInt is an integer field, optionally range-constrained.
	KindInt
	// KindFloat is a floating-point field, optionally range-constrained.
	KindFloat
	// KindEnum is a string field constrained to a fixed literal set.
	KindEnum
	// KindSecret is a masked string field, optionally prefix-constrained.
	KindSecret
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindEnum:
		return "enum"
	case KindSecret:
		return "secret"
	default:
		return "unknown"
	}
}

// Range is an inclusive numeric constraint. Values exactly at a bound pass.
type Range struct {
	Min, Max       float64
	HasMin, HasMax bool
}

// Between returns a range constraint inclusive at both ends.
func Between(lo, hi float64) *Range {
	return &Range{Min: lo, Max: hi, HasMin: true, HasMax: true}
}

// AtLeast returns a lower-bound-only range constraint.
func AtLeast(lo float64) *Range {
	return &Range{Min: lo, HasMin: true}
}

// check validates v against the range and returns a failure message naming
// the violated bound, or "" if v is within bounds.
func (r *Range) check(v float64) string {
	if r == nil {
		return ""
	}
	if r.HasMin && v < r.Min {
		return fmt.Sprintf("must be at least %s, got %s", formatNumber(r.Min), formatNumber(v))
	}
	if r.HasMax && v > r.Max {
		return fmt.Sprintf("must be at most %s, got %s", formatNumber(r.Max), formatNumber(v))
	}
	return ""
}

// String renders the range for schema listings, e.g. "[1, 1000]" or "[0, +inf)".
func (r *Range) String() string {
	switch {
	case r == nil:
		return ""
	case r.HasMin && r.HasMax:
		return fmt.Sprintf("[%s, %s]", formatNumber(r.Min), formatNumber(r.Max))
	case r.HasMin:
		return fmt.Sprintf("[%s, +inf)", formatNumber(r.Min))
	case r.HasMax:
		return fmt.Sprintf("(-inf, %s]", formatNumber(r.Max))
	default:
		return ""
	}
}

// Field declares one configuration key: its type, default, and per-field
// constraint. Fields are immutable once declared; the registry order is the
// report order.
type Field struct {
	// Key is the configuration key, unique within the schema.
	Key string

	// Kind is the declared type.
	Kind Kind

	// Default is the raw string default, applied when the snapshot has no
	// value for Key. Ignored for Required and Optional fields.
	Default string

	// Required marks a field with no default: an absent or empty raw value
	// is a validation failure.
	Required bool

	// Optional marks a field that may be absent entirely; absent values skip
	// all constraint checks.
	Optional bool

	// Range is the inclusive numeric constraint for int and float fields.
	Range *Range

	// Enum is the permitted literal set for enum fields.
	Enum []string

	// Prefix is the required value prefix for present secret fields.
	Prefix string

	// Secret marks fields whose values are masked in all rendered output.
	Secret bool

	assign func(*Settings, any)
	get    func(*Settings) (raw string, present bool)
}

// Constraint renders the field's constraint for schema listings.
func (f Field) Constraint() string {
	switch {
	case f.Range != nil:
		return "range " + f.Range.String()
	case len(f.Enum) > 0:
		return "one of " + strings.Join(f.Enum, "|")
	case f.Prefix != "":
		return fmt.Sprintf("prefix %q", f.Prefix)
	default:
		return "-"
	}
}

// coerce converts a raw string to the field's typed value, applying the
// field-level constraint. It is a pure function: raw in, value or failure out.
func (f Field) coerce(raw string) (any, *FieldError) {
	fail := func(msg string) (any, *FieldError) {
		return nil, &FieldError{Field: f.Key, Message: msg}
	}

	switch f.Kind {
	case KindString:
		return raw, nil

	case KindBool:
		b, err := strconv.ParseBool(strings.ToLower(raw))
		if err != nil {
			return fail(fmt.Sprintf("invalid boolean %q", raw))
		}
		return b, nil

	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fail(fmt.Sprintf("invalid integer %q", raw))
		}
		if msg := f.Range.check(float64(n)); msg != "" {
			return fail(msg)
		}
		return n, nil

	case KindFloat:
		v, err := strconv.ParseFloat(raw, 64)
		// ParseFloat accepts "NaN" and "Inf", neither of which can satisfy
		// an inclusive range or a sum invariant. Reject them as non-numbers.
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return fail(fmt.Sprintf("invalid number %q", raw))
		}
		if msg := f.Range.check(v); msg != "" {
			return fail(msg)
		}
		return v, nil

	case KindEnum:
		for _, lit := range f.Enum {
			if raw == lit {
				return raw, nil
			}
		}
		return fail(fmt.Sprintf("invalid value %q: must be one of %s", raw, strings.Join(f.Enum, ", ")))

	case KindSecret:
		if f.Prefix != "" && !strings.HasPrefix(raw, f.Prefix) {
			return fail(fmt.Sprintf("invalid key format: must start with %q", f.Prefix))
		}
		return Secret(raw), nil

	default:
		return fail(fmt.Sprintf("unsupported field kind %v", f.Kind))
	}
}

// formatNumber renders a float without a trailing ".0" for whole values, so
// messages read "at most 1000" rather than "at most 1000.0".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatFloat is the raw form used for round-tripping resolved float fields
// back into a snapshot; 'g' with -1 precision round-trips exactly.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// schema is the canonical field registry, in declaration (and report) order.
var schema = buildSchema()

// Fields returns a copy of the schema registry in declaration order.
func Fields() []Field {
	out := make([]Field, len(schema))
	copy(out, schema)
	return out
}

func buildSchema() []Field {
	fields := []Field{
		// Application
		{
			Key: "APP_NAME", Kind: KindString, Default: DefaultAppName,
			assign: func(s *Settings, v any) { s.AppName = v.(string) },
			get:    func(s *Settings) (string, bool) { return s.AppName, true },
		},
		{
			Key: "APP_VERSION", Kind: KindString, Default: DefaultAppVersion,
			assign: func(s *Settings, v any) { s.AppVersion = v.(string) },
			get:    func(s *Settings) (string, bool) { return s.AppVersion, true },
		},
		{
			Key: "APP_ENV", Kind: KindEnum, Default: DefaultAppEnv,
			Enum:   []string{EnvDevelopment, EnvStaging, EnvProduction},
			assign: func(s *Settings, v any) { s.AppEnv = v.(string) },
			get:    func(s *Settings) (string, bool) { return s.AppEnv, true },
		},
		{
			Key: "DEBUG", Kind: KindBool, Default: "false",
			assign: func(s *Settings, v any) { s.Debug = v.(bool) },
			get:    func(s *Settings) (string, bool) { return strconv.FormatBool(s.Debug), true },
		},
		{
			Key: "LOG_LEVEL", Kind: KindEnum, Default: DefaultLogLevel,
			Enum:   []string{"DEBUG", "INFO", "WARNING", "ERROR"},
			assign: func(s *Settings, v any) { s.LogLevel = v.(string) },
			get:    func(s *Settings) (string, bool) { return s.LogLevel, true },
		},
		{
			Key: "LOG_FORMAT", Kind: KindEnum, Default: DefaultLogFormat,
			Enum:   []string{"json", "console"},
			assign: func(s *Settings, v any) { s.LogFormat = v.(string) },
			get:    func(s *Settings) (string, bool) { return s.LogFormat, true },
		},
		{
			Key: "SECRET_KEY", Kind: KindSecret, Required: true, Secret: true,
			assign: func(s *Settings, v any) { s.SecretKey = v.(Secret) },
			get:    func(s *Settings) (string, bool) { return s.SecretKey.Reveal(), true },
		},

		// API
		{
			Key: "API_V1_PREFIX", Kind: KindString, Default: DefaultAPIV1Prefix,
			assign: func(s *Settings, v any) { s.APIV1Prefix = v.(string) },
			get:    func(s *Settings) (string, bool) { return s.APIV1Prefix, true },
		},
		{
			Key: "API_V2_PREFIX", Kind: KindString, Default: DefaultAPIV2Prefix,
			assign: func(s *Settings, v any) { s.APIV2Prefix = v.(string) },
			get:    func(s *Settings) (string, bool) { return s.APIV2Prefix, true },
		},
		{
			Key: "RATE_LIMIT_PER_MINUTE", Kind: KindInt, Default: strconv.Itoa(DefaultRateLimitPerMinute), Range: Between(1, 1000),
			assign: func(s *Settings, v any) { s.RateLimitPerMinute = v.(int) },
			get:    func(s *Settings) (string, bool) { return strconv.Itoa(s.RateLimitPerMinute), true },
		},

		// Parameter versioning
		{
			Key: "PARAM_VERSION", Kind: KindEnum, Default: DefaultParamVersion,
			Enum:   []string{"v1.0", "v2.0"},
			assign: func(s *Settings, v any) { s.ParamVersion = v.(string) },
			get:    func(s *Settings) (string, bool) { return s.ParamVersion, true },
		},

		// LLM providers
		{
			Key: "OPENAI_API_KEY", Kind: KindSecret, Optional: true, Secret: true, Prefix: OpenAIKeyPrefix,
			assign: func(s *Settings, v any) { s.OpenAIAPIKey = v.(Secret) },
			get:    func(s *Settings) (string, bool) { return s.OpenAIAPIKey.Reveal(), s.OpenAIAPIKey.IsSet() },
		},
		{
			Key: "ANTHROPIC_API_KEY", Kind: KindSecret, Optional: true, Secret: true,
			assign: func(s *Settings, v any) { s.AnthropicAPIKey = v.(Secret) },
			get:    func(s *Settings) (string, bool) { return s.AnthropicAPIKey.Reveal(), s.AnthropicAPIKey.IsSet() },
		},
		{
			Key: "DEFAULT_LLM_MODEL", Kind: KindString, Default: DefaultLLMModel,
			assign: func(s *Settings, v any) { s.DefaultLLMModel = v.(string) },
			get:    func(s *Settings) (string, bool) { return s.DefaultLLMModel, true },
		},
		{
			Key: "FALLBACK_LLM_MODEL", Kind: KindString, Default: DefaultFallbackLLMModel,
			assign: func(s *Settings, v any) { s.FallbackLLMModel = v.(string) },
			get:    func(s *Settings) (string, bool) { return s.FallbackLLMModel, true },
		},

		// Cost management
		{
			Key: "DAILY_COST_BUDGET_USD", Kind: KindFloat, Default: formatFloat(DefaultDailyCostBudgetUSD), Range: AtLeast(0),
			assign: func(s *Settings, v any) { s.DailyCostBudgetUSD = v.(float64) },
			get:    func(s *Settings) (string, bool) { return formatFloat(s.DailyCostBudgetUSD), true },
		},
		{
			Key: "COST_ALERT_THRESHOLD_PCT", Kind: KindFloat, Default: formatFloat(DefaultCostAlertThresholdPct), Range: Between(0, 1),
			assign: func(s *Settings, v any) { s.CostAlertThresholdPct = v.(float64) },
			get:    func(s *Settings) (string, bool) { return formatFloat(s.CostAlertThresholdPct), true },
		},

		// HITL thresholds
		{
			Key: "HITL_SCORE_CHANGE_THRESHOLD", Kind: KindFloat, Default: formatFloat(DefaultHITLScoreChangeThreshold), Range: Between(5, 30),
			assign: func(s *Settings, v any) { s.HITLScoreChangeThreshold = v.(float64) },
			get:    func(s *Settings) (string, bool) { return formatFloat(s.HITLScoreChangeThreshold), true },
		},
		{
			Key: "HITL_EBITDA_PROJECTION_THRESHOLD", Kind: KindFloat, Default: formatFloat(DefaultHITLEBITDAProjectionThreshold), Range: Between(5, 25),
			assign: func(s *Settings, v any) { s.HITLEBITDAProjectionThreshold = v.(float64) },
			get:    func(s *Settings) (string, bool) { return formatFloat(s.HITLEBITDAProjectionThreshold), true },
		},

		// Snowflake
		{
			Key: "SNOWFLAKE_ACCOUNT", Kind: KindString, Required: true,
			assign: func(s *Settings, v any) { s.SnowflakeAccount = v.(string) },
			get:    func(s *Settings) (string, bool) { return s.SnowflakeAccount, true },
		},
		{
			Key: "SNOWFLAKE_USER", Kind: KindString, Required: true,
			assign: func(s *Settings, v any) { s.SnowflakeUser = v.(string) },
			get:    func(s *Settings) (string, bool) { return s.SnowflakeUser, true },
		},
		{
			Key: "SNOWFLAKE_PASSWORD", Kind: KindSecret, Required: true, Secret: true,
			assign: func(s *Settings, v any) { s.SnowflakePassword = v.(Secret) },
			get:    func(s *Settings) (string, bool) { return s.SnowflakePassword.Reveal(), true },
		},
		{
			Key: "SNOWFLAKE_DATABASE", Kind: KindString, Default: DefaultSnowflakeDatabase,
			assign: func(s *Settings, v any) { s.SnowflakeDatabase = v.(string) },
			get:    func(s *Settings) (string, bool) { return s.SnowflakeDatabase, true },
		},
		{
			Key: "SNOWFLAKE_SCHEMA", Kind: KindString, Default: DefaultSnowflakeSchema,
			assign: func(s *Settings, v any) { s.SnowflakeSchema = v.(string) },
			get:    func(s *Settings) (string, bool) { return s.SnowflakeSchema, true },
		},
		{
			Key: "SNOWFLAKE_WAREHOUSE", Kind: KindString, Required: true,
			assign: func(s *Settings, v any) { s.SnowflakeWarehouse = v.(string) },
			get:    func(s *Settings) (string, bool) { return s.SnowflakeWarehouse, true },
		},
		{
			Key: "SNOWFLAKE_ROLE", Kind: KindString, Default: DefaultSnowflakeRole,
			assign: func(s *Settings, v any) { s.SnowflakeRole = v.(string) },
			get:    func(s *Settings) (string, bool) { return s.SnowflakeRole, true },
		},

		// AWS / object storage
		{
			Key: "AWS_ACCESS_KEY_ID", Kind: KindSecret, Required: true, Secret: true,
			assign: func(s *Settings, v any) { s.AWSAccessKeyID = v.(Secret) },
			get:    func(s *Settings) (string, bool) { return s.AWSAccessKeyID.Reveal(), true },
		},
		{
			Key: "AWS_SECRET_ACCESS_KEY", Kind: KindSecret, Required: true, Secret: true,
			assign: func(s *Settings, v any) { s.AWSSecretAccessKey = v.(Secret) },
			get:    func(s *Settings) (string, bool) { return s.AWSSecretAccessKey.Reveal(), true },
		},
		{
			Key: "AWS_REGION", Kind: KindString, Default: DefaultAWSRegion,
			assign: func(s *Settings, v any) { s.AWSRegion = v.(string) },
			get:    func(s *Settings) (string, bool) { return s.AWSRegion, true },
		},
		{
			Key: "S3_BUCKET", Kind: KindString, Required: true,
			assign: func(s *Settings, v any) { s.S3Bucket = v.(string) },
			get:    func(s *Settings) (string, bool) { return s.S3Bucket, true },
		},

		// Redis / cache
		{
			Key: "REDIS_URL", Kind: KindString, Default: DefaultRedisURL,
			assign: func(s *Settings, v any) { s.RedisURL = v.(string) },
			get:    func(s *Settings) (string, bool) { return s.RedisURL, true },
		},
		{
			Key: "CACHE_TTL_SECTORS", Kind: KindInt, Default: strconv.Itoa(DefaultCacheTTLSectors),
			assign: func(s *Settings, v any) { s.CacheTTLSectors = v.(int) },
			get:    func(s *Settings) (string, bool) { return strconv.Itoa(s.CacheTTLSectors), true },
		},
		{
			Key: "CACHE_TTL_SCORES", Kind: KindInt, Default: strconv.Itoa(DefaultCacheTTLScores),
			assign: func(s *Settings, v any) { s.CacheTTLScores = v.(int) },
			get:    func(s *Settings) (string, bool) { return strconv.Itoa(s.CacheTTLScores), true },
		},

		// Scoring model coefficients
		{
			Key: "ALPHA_VR_WEIGHT", Kind: KindFloat, Default: formatFloat(DefaultAlphaVRWeight), Range: Between(0.55, 0.70),
			assign: func(s *Settings, v any) { s.AlphaVRWeight = v.(float64) },
			get:    func(s *Settings) (string, bool) { return formatFloat(s.AlphaVRWeight), true },
		},
		{
			Key: "BETA_SYNERGY_WEIGHT", Kind: KindFloat, Default: formatFloat(DefaultBetaSynergyWeight), Range: Between(0.08, 0.20),
			assign: func(s *Settings, v any) { s.BetaSynergyWeight = v.(float64) },
			get:    func(s *Settings) (string, bool) { return formatFloat(s.BetaSynergyWeight), true },
		},
		{
			Key: "LAMBDA_PENALTY", Kind: KindFloat, Default: formatFloat(DefaultLambdaPenalty), Range: Between(0, 0.50),
			assign: func(s *Settings, v any) { s.LambdaPenalty = v.(float64) },
			get:    func(s *Settings) (string, bool) { return formatFloat(s.LambdaPenalty), true },
		},
		{
			Key: "DELTA_POSITION", Kind: KindFloat, Default: formatFloat(DefaultDeltaPosition), Range: Between(0.10, 0.20),
			assign: func(s *Settings, v any) { s.DeltaPosition = v.(float64) },
			get:    func(s *Settings) (string, bool) { return formatFloat(s.DeltaPosition), true },
		},

		// Dimension weights
		{
			Key: "W_DATA_INFRA", Kind: KindFloat, Default: formatFloat(DefaultWDataInfra), Range: Between(0, 1),
			assign: func(s *Settings, v any) { s.WDataInfra = v.(float64) },
			get:    func(s *Settings) (string, bool) { return formatFloat(s.WDataInfra), true },
		},
		{
			Key: "W_AI_GOVERNANCE", Kind: KindFloat, Default: formatFloat(DefaultWAIGovernance), Range: Between(0, 1),
			assign: func(s *Settings, v any) { s.WAIGovernance = v.(float64) },
			get:    func(s *Settings) (string, bool) { return formatFloat(s.WAIGovernance), true },
		},
		{
			Key: "W_TECH_STACK", Kind: KindFloat, Default: formatFloat(DefaultWTechStack), Range: Between(0, 1),
			assign: func(s *Settings, v any) { s.WTechStack = v.(float64) },
			get:    func(s *Settings) (string, bool) { return formatFloat(s.WTechStack), true },
		},
		{
			Key: "W_TALENT", Kind: KindFloat, Default: formatFloat(DefaultWTalent), Range: Between(0, 1),
			assign: func(s *Settings, v any) { s.WTalent = v.(float64) },
			get:    func(s *Settings) (string, bool) { return formatFloat(s.WTalent), true },
		},
		{
			Key: "W_LEADERSHIP", Kind: KindFloat, Default: formatFloat(DefaultWLeadership), Range: Between(0, 1),
			assign: func(s *Settings, v any) { s.WLeadership = v.(float64) },
			get:    func(s *Settings) (string, bool) { return formatFloat(s.WLeadership), true },
		},
		{
			Key: "W_USE_CASES", Kind: KindFloat, Default: formatFloat(DefaultWUseCases), Range: Between(0, 1),
			assign: func(s *Settings, v any) { s.WUseCases = v.(float64) },
			get:    func(s *Settings) (string, bool) { return formatFloat(s.WUseCases), true },
		},
		{
			Key: "W_CULTURE", Kind: KindFloat, Default: formatFloat(DefaultWCulture), Range: Between(0, 1),
			assign: func(s *Settings, v any) { s.WCulture = v.(float64) },
			get:    func(s *Settings) (string, bool) { return formatFloat(s.WCulture), true },
		},

		// Celery
		{
			Key: "CELERY_BROKER_URL", Kind: KindString, Default: DefaultCeleryBrokerURL,
			assign: func(s *Settings, v any) { s.CeleryBrokerURL = v.(string) },
			get:    func(s *Settings) (string, bool) { return s.CeleryBrokerURL, true },
		},
		{
			Key: "CELERY_RESULT_BACKEND", Kind: KindString, Default: DefaultCeleryResultBackend,
			assign: func(s *Settings, v any) { s.CeleryResultBackend = v.(string) },
			get:    func(s *Settings) (string, bool) { return s.CeleryResultBackend, true },
		},

		// Observability
		{
			Key: "OTEL_EXPORTER_OTLP_ENDPOINT", Kind: KindString, Optional: true,
			assign: func(s *Settings, v any) { s.OTELExporterOTLPEndpoint = v.(string) },
			get: func(s *Settings) (string, bool) {
				return s.OTELExporterOTLPEndpoint, s.OTELExporterOTLPEndpoint != ""
			},
		},
		{
			Key: "OTEL_SERVICE_NAME", Kind: KindString, Default: DefaultOTELServiceName,
			assign: func(s *Settings, v any) { s.OTELServiceName = v.(string) },
			get:    func(s *Settings) (string, bool) { return s.OTELServiceName, true },
		},
	}

	return fields
}
