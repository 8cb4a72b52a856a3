// Package settings provides the typed configuration model for the Org-AI-R
// platform and the validation engine that guards it.
//
// Configuration arrives as a flat string-keyed snapshot (the environment
// variable boundary). The package coerces every declared field to its typed
// form, applies per-field constraints, then runs cross-field and
// environment-conditional rules, and either returns an immutable Settings
// instance or an aggregated ValidationError listing every failure found.
//
// # Validation Pipeline
//
// Loading a snapshot proceeds in three stages:
//
//  1. Field coercion: every field in the schema registry is coerced from its
//     raw string (or default) to its declared type, with range, enumeration,
//     and format constraints checked per field. All field failures across all
//     fields are collected; a failing field never short-circuits its siblings.
//  2. Cross-field validation: runs only when every coercion succeeded. The
//     seven dimension weights must sum to 1.0 within a 0.001 tolerance.
//  3. Conditional validation: production-only security rules (debug disabled,
//     secret key length, at least one LLM API key). A no-op outside the
//     production environment.
//
// Stages 2 and 3 both run and their failures are aggregated into one report.
// There is no partially-valid state: callers receive either a fully validated
// Settings or the full error set, never both.
//
// # Caching
//
// A Loader caches the last successful load keyed by a fingerprint of the
// input snapshot. Identical snapshots return the cached instance; Invalidate
// forces the next load to rebuild even for an unchanged snapshot.
//
// # Secrets
//
// Secret-typed fields (keys, passwords) never reveal their raw value through
// String, Format, or JSON marshaling; Reveal is the only raw accessor.
package settings
