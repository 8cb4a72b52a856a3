// Atlas validates environment configuration for the PE Org-AI-R platform.
//
// It resolves settings from the process environment and optional dotenv
// files, validates them against the declarative schema, and reports every
// failure at once: per-field ranges and formats, the dimension weight-sum
// rule, and the production hardening rules.
//
// Usage:
//
//	# Validate the current environment
//	atlas validate
//
//	# Validate a dotenv file, re-checking on every change
//	atlas validate --env-file .env --watch
//
//	# Run the bundled what-if scenarios
//	atlas scenarios run --all
//
//	# Show the configuration schema
//	atlas schema
//
//	# Inspect past validation outcomes
//	atlas history list --invalid
package main

func main() {
	Execute()
}
