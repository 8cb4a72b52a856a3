// Package telemetry groups the observability subpackages: structured logging
// with secret redaction, and Prometheus metrics for validation activity.
package telemetry
