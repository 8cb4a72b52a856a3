package settings

// Default values for configuration fields. These mirror the documented
// platform defaults; the seven dimension weight defaults sum to exactly 1.0.
const (
	// Application defaults
	DefaultAppName    = "PE Org-AI-R Platform"
	DefaultAppVersion = "4.0.0"
	DefaultAppEnv     = "development"
	DefaultLogLevel   = "INFO"
	DefaultLogFormat  = "json"

	// API defaults
	DefaultAPIV1Prefix        = "/api/v1"
	DefaultAPIV2Prefix        = "/api/v2"
	DefaultRateLimitPerMinute = 60

	// Parameter versioning
	DefaultParamVersion = "v2.0"

	// LLM provider defaults
	DefaultLLMModel         = "gpt-40-2024-08-06"
	DefaultFallbackLLMModel = "claude-sonnet-4-20250514"

	// Cost management defaults
	DefaultDailyCostBudgetUSD    = 500.0
	DefaultCostAlertThresholdPct = 0.8

	// HITL (human-in-the-loop) threshold defaults
	DefaultHITLScoreChangeThreshold      = 15.0
	DefaultHITLEBITDAProjectionThreshold = 10.0

	// Snowflake defaults
	DefaultSnowflakeDatabase = "PE_ORGAIR"
	DefaultSnowflakeSchema   = "PUBLIC"
	DefaultSnowflakeRole     = "PE_ORGAIR_ROLE"

	// AWS defaults
	DefaultAWSRegion = "us-east-1"

	// Redis defaults
	DefaultRedisURL        = "redis://localhost:6379/0"
	DefaultCacheTTLSectors = 86400 // 24 hours
	DefaultCacheTTLScores  = 3600  // 1 hour

	// Scoring model coefficient defaults
	DefaultAlphaVRWeight     = 0.60
	DefaultBetaSynergyWeight = 0.12
	DefaultLambdaPenalty     = 0.25
	DefaultDeltaPosition     = 0.15

	// Dimension weight defaults (sum: 1.0)
	DefaultWDataInfra    = 0.18
	DefaultWAIGovernance = 0.15
	DefaultWTechStack    = 0.15
	DefaultWTalent       = 0.17
	DefaultWLeadership   = 0.13
	DefaultWUseCases     = 0.12
	DefaultWCulture      = 0.10

	// Celery defaults
	DefaultCeleryBrokerURL     = "redis://localhost:6379/1"
	DefaultCeleryResultBackend = "redis://localhost:6379/2"

	// Observability defaults
	DefaultOTELServiceName = "pe-orgair"
)

// WeightSumTolerance is the epsilon for the dimension-weight sum invariant:
// abs(sum - 1.0) must not exceed this value.
const WeightSumTolerance = 0.001

// MinProductionSecretKeyLength is the minimum raw length of SECRET_KEY when
// APP_ENV is "production".
const MinProductionSecretKeyLength = 32

// OpenAIKeyPrefix is the required prefix for a present OPENAI_API_KEY.
const OpenAIKeyPrefix = "sk-"
