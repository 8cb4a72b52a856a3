package settings

// Environment mode literals for the APP_ENV discriminator field.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Settings is the validated configuration aggregate for the Org-AI-R platform.
// An instance exists only if every field-level, cross-field, and conditional
// rule passed: Load never returns a partially valid Settings.
//
// Settings values are constructed by Load and must be treated as immutable;
// a changed snapshot produces a new instance rather than mutating an old one.
type Settings struct {
	// Application
	AppName    string `json:"APP_NAME"`
	AppVersion string `json:"APP_VERSION"`
	AppEnv     string `json:"APP_ENV"`
	Debug      bool   `json:"DEBUG"`
	LogLevel   string `json:"LOG_LEVEL"`
	LogFormat  string `json:"LOG_FORMAT"`
	SecretKey  Secret `json:"SECRET_KEY"`

	// API
	APIV1Prefix        string `json:"API_V1_PREFIX"`
	APIV2Prefix        string `json:"API_V2_PREFIX"`
	RateLimitPerMinute int    `json:"RATE_LIMIT_PER_MINUTE"`

	// Parameter versioning
	ParamVersion string `json:"PARAM_VERSION"`

	// LLM providers
	OpenAIAPIKey     Secret `json:"OPENAI_API_KEY"`
	AnthropicAPIKey  Secret `json:"ANTHROPIC_API_KEY"`
	DefaultLLMModel  string `json:"DEFAULT_LLM_MODEL"`
	FallbackLLMModel string `json:"FALLBACK_LLM_MODEL"`

	// Cost management
	DailyCostBudgetUSD    float64 `json:"DAILY_COST_BUDGET_USD"`
	CostAlertThresholdPct float64 `json:"COST_ALERT_THRESHOLD_PCT"`

	// HITL thresholds
	HITLScoreChangeThreshold      float64 `json:"HITL_SCORE_CHANGE_THRESHOLD"`
	HITLEBITDAProjectionThreshold float64 `json:"HITL_EBITDA_PROJECTION_THRESHOLD"`

	// Snowflake
	SnowflakeAccount   string `json:"SNOWFLAKE_ACCOUNT"`
	SnowflakeUser      string `json:"SNOWFLAKE_USER"`
	SnowflakePassword  Secret `json:"SNOWFLAKE_PASSWORD"`
	SnowflakeDatabase  string `json:"SNOWFLAKE_DATABASE"`
	SnowflakeSchema    string `json:"SNOWFLAKE_SCHEMA"`
	SnowflakeWarehouse string `json:"SNOWFLAKE_WAREHOUSE"`
	SnowflakeRole      string `json:"SNOWFLAKE_ROLE"`

	// AWS / object storage
	AWSAccessKeyID     Secret `json:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey Secret `json:"AWS_SECRET_ACCESS_KEY"`
	AWSRegion          string `json:"AWS_REGION"`
	S3Bucket           string `json:"S3_BUCKET"`

	// Redis / cache
	RedisURL        string `json:"REDIS_URL"`
	CacheTTLSectors int    `json:"CACHE_TTL_SECTORS"`
	CacheTTLScores  int    `json:"CACHE_TTL_SCORES"`

	// Scoring model coefficients
	AlphaVRWeight     float64 `json:"ALPHA_VR_WEIGHT"`
	BetaSynergyWeight float64 `json:"BETA_SYNERGY_WEIGHT"`
	LambdaPenalty     float64 `json:"LAMBDA_PENALTY"`
	DeltaPosition     float64 `json:"DELTA_POSITION"`

	// Dimension weights
	WDataInfra    float64 `json:"W_DATA_INFRA"`
	WAIGovernance float64 `json:"W_AI_GOVERNANCE"`
	WTechStack    float64 `json:"W_TECH_STACK"`
	WTalent       float64 `json:"W_TALENT"`
	WLeadership   float64 `json:"W_LEADERSHIP"`
	WUseCases     float64 `json:"W_USE_CASES"`
	WCulture      float64 `json:"W_CULTURE"`

	// Celery
	CeleryBrokerURL     string `json:"CELERY_BROKER_URL"`
	CeleryResultBackend string `json:"CELERY_RESULT_BACKEND"`

	// Observability
	OTELExporterOTLPEndpoint string `json:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTELServiceName          string `json:"OTEL_SERVICE_NAME"`
}

// IsProduction reports whether the settings describe the production
// environment, the discriminator for the conditional security rules.
func (s *Settings) IsProduction() bool {
	return s.AppEnv == EnvProduction
}

// DimensionWeights returns the seven dimension weights in declaration order.
func (s *Settings) DimensionWeights() []float64 {
	return []float64{
		s.WDataInfra, s.WAIGovernance, s.WTechStack,
		s.WTalent, s.WLeadership, s.WUseCases, s.WCulture,
	}
}

// WeightSum returns the sum of the seven dimension weights.
func (s *Settings) WeightSum() float64 {
	var total float64
	for _, w := range s.DimensionWeights() {
		total += w
	}
	return total
}

// Snapshot converts the resolved settings back into a raw snapshot, with
// secrets revealed, such that loading the result reproduces an identical
// instance. Optional fields without a value are omitted.
func (s *Settings) Snapshot() Snapshot {
	snap := make(Snapshot, len(schema))
	for _, f := range schema {
		raw, present := f.get(s)
		if !present {
			continue
		}
		snap[f.Key] = raw
	}
	return snap
}

// ResolvedValue is one entry of the human-readable success report.
type ResolvedValue struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Secret bool   `json:"secret"`
}

// Resolved returns every field's resolved value in schema declaration order,
// with secret values rendered as the fixed mask token and absent optional
// fields rendered as empty.
func (s *Settings) Resolved() []ResolvedValue {
	out := make([]ResolvedValue, 0, len(schema))
	for _, f := range schema {
		raw, present := f.get(s)
		v := ResolvedValue{Key: f.Key, Secret: f.Secret}
		switch {
		case !present:
			v.Value = ""
		case f.Secret:
			v.Value = Mask
		default:
			v.Value = raw
		}
		out = append(out, v)
	}
	return out
}
