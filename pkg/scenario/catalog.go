package scenario

// Builtin returns the bundled scenario catalog. The set covers one valid
// configuration per environment plus the three classic misconfigurations:
// debug enabled in production, dimension weights off balance, and a rate
// limit outside its range.
func Builtin() []Scenario {
	return []Scenario{
		{
			Name:        "valid-development",
			Description: "Development environment with debug enabled and an OpenAI key",
			Env: map[string]string{
				"APP_ENV":                          "development",
				"DEBUG":                            "True",
				"SECRET_KEY":                       "dev_key_for_testing_12345678901234567890",
				"OPENAI_API_KEY":                   "sk-dev_test_key_xxxx",
				"W_DATA_INFRA":                     "0.18",
				"W_AI_GOVERNANCE":                  "0.15",
				"W_TECH_STACK":                     "0.15",
				"W_TALENT":                         "0.17",
				"W_LEADERSHIP":                     "0.13",
				"W_USE_CASES":                      "0.12",
				"W_CULTURE":                        "0.10",
				"RATE_LIMIT_PER_MINUTE":            "100",
				"DAILY_COST_BUDGET_USD":            "750.0",
				"COST_ALERT_THRESHOLD_PCT":         "0.85",
				"HITL_SCORE_CHANGE_THRESHOLD":      "18.0",
				"HITL_EBITDA_PROJECTION_THRESHOLD": "12.5",
			},
		},
		{
			Name:        "valid-production",
			Description: "Hardened production environment with an Anthropic key",
			Env: map[string]string{
				"APP_ENV":                          "production",
				"DEBUG":                            "False",
				"SECRET_KEY":                       "prod_secure_key_12345678901234567890123456789012",
				"ANTHROPIC_API_KEY":                "sk-ant-REDACTED",
				"W_DATA_INFRA":                     "0.18",
				"W_AI_GOVERNANCE":                  "0.15",
				"W_TECH_STACK":                     "0.15",
				"W_TALENT":                         "0.17",
				"W_LEADERSHIP":                     "0.13",
				"W_USE_CASES":                      "0.12",
				"W_CULTURE":                        "0.10",
				"RATE_LIMIT_PER_MINUTE":            "500",
				"DAILY_COST_BUDGET_USD":            "10000.0",
				"COST_ALERT_THRESHOLD_PCT":         "0.9",
				"HITL_SCORE_CHANGE_THRESHOLD":      "25.0",
				"HITL_EBITDA_PROJECTION_THRESHOLD": "20.0",
			},
		},
		{
			Name:          "invalid-production-debug",
			Description:   "Production with DEBUG left on",
			ExpectFailure: true,
			Env: map[string]string{
				"APP_ENV":               "production",
				"DEBUG":                 "True",
				"SECRET_KEY":            "prod_secure_key_12345678901234567890123456789012",
				"OPENAI_API_KEY":        "sk-xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx",
				"W_DATA_INFRA":          "0.18",
				"W_AI_GOVERNANCE":       "0.15",
				"W_TECH_STACK":          "0.15",
				"W_TALENT":              "0.17",
				"W_LEADERSHIP":          "0.13",
				"W_USE_CASES":           "0.12",
				"W_CULTURE":             "0.10",
				"RATE_LIMIT_PER_MINUTE": "60",
			},
		},
		{
			Name:          "invalid-weight-sum",
			Description:   "Dimension weights summing to 1.02",
			ExpectFailure: true,
			Env: map[string]string{
				"APP_ENV":               "development",
				"DEBUG":                 "False",
				"SECRET_KEY":            "dev_key_for_testing_12345678901234567890",
				"W_DATA_INFRA":          "0.20",
				"W_AI_GOVERNANCE":       "0.15",
				"W_TECH_STACK":          "0.15",
				"W_TALENT":              "0.17",
				"W_LEADERSHIP":          "0.13",
				"W_USE_CASES":           "0.12",
				"W_CULTURE":             "0.10",
				"RATE_LIMIT_PER_MINUTE": "60",
			},
		},
		{
			Name:          "invalid-rate-limit",
			Description:   "Rate limit above the 1000 req/min ceiling",
			ExpectFailure: true,
			Env: map[string]string{
				"APP_ENV":               "development",
				"DEBUG":                 "False",
				"SECRET_KEY":            "dev_key_for_testing_12345678901234567890",
				"RATE_LIMIT_PER_MINUTE": "1200",
				"W_DATA_INFRA":          "0.18",
				"W_AI_GOVERNANCE":       "0.15",
				"W_TECH_STACK":          "0.15",
				"W_TALENT":              "0.17",
				"W_LEADERSHIP":          "0.13",
				"W_USE_CASES":           "0.12",
				"W_CULTURE":             "0.10",
			},
		},
	}
}
