package logging

import (
	"log/slog"
	"regexp"

	"orgair-hq/atlas/pkg/settings"
)

// Redactor scrubs credentials from log attribute values.
type Redactor struct {
	patterns []redactPattern
}

type redactPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// Pattern names for the built-in redactions.
const (
	PatternAPIKey      = "api_key"
	PatternBearerToken = "bearer_token"
	PatternPassword    = "password"
	PatternAWSKey      = "aws_key"
)

// NewRedactor creates a Redactor with the built-in credential patterns.
func NewRedactor() *Redactor {
	compile := func(name, expr, replacement string) redactPattern {
		return redactPattern{name: name, regex: regexp.MustCompile(expr), replacement: replacement}
	}
	return &Redactor{
		patterns: []redactPattern{
			// LLM provider keys share the sk- prefix.
			compile(PatternAPIKey, `sk-[a-zA-Z0-9_-]+`, "sk-***"),
			compile(PatternBearerToken, `Bearer\s+[a-zA-Z0-9\-._~+/]+=*`, "Bearer ***"),
			compile(PatternPassword, `(?i)(password|passwd|secret)[-_:=]\s*\S+`, "$1="+settings.Mask),
			compile(PatternAWSKey, `\bAKIA[0-9A-Z]{16}\b`, "AKIA****************"),
		},
	}
}

// RedactString applies every pattern to a string.
func (r *Redactor) RedactString(s string) string {
	for _, p := range r.patterns {
		s = p.regex.ReplaceAllString(s, p.replacement)
	}
	return s
}

// RedactAttr scrubs string-valued attributes. Non-string values pass through
// untouched; settings.Secret already masks itself when rendered.
func (r *Redactor) RedactAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		a.Value = slog.StringValue(r.RedactString(a.Value.String()))
	}
	return a
}
