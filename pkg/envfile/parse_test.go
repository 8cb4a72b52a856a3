package envfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"orgair-hq/atlas/pkg/settings"
)

func TestParse(t *testing.T) {
	snap, err := Parse([]byte(`
# development overrides
APP_ENV=staging
export DEBUG=true
SECRET_KEY="quoted value with spaces"
SNOWFLAKE_ROLE='literal $VALUE'
RATE_LIMIT_PER_MINUTE=120 # inline comment
EMPTY=
MULTILINE="line one\nline two"
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := settings.Snapshot{
		"APP_ENV":               "staging",
		"DEBUG":                 "true",
		"SECRET_KEY":            "quoted value with spaces",
		"SNOWFLAKE_ROLE":        "literal $VALUE",
		"RATE_LIMIT_PER_MINUTE": "120",
		"EMPTY":                 "",
		"MULTILINE":             "line one\nline two",
	}
	for k, v := range want {
		if snap[k] != v {
			t.Errorf("%s = %q, want %q", k, snap[k], v)
		}
	}
	if len(snap) != len(want) {
		t.Errorf("expected %d keys, got %d: %v", len(want), len(snap), snap)
	}
}

func TestParseLastAssignmentWins(t *testing.T) {
	snap, err := Parse([]byte("APP_ENV=development\nAPP_ENV=production\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap["APP_ENV"] != "production" {
		t.Errorf("expected later assignment to win, got %q", snap["APP_ENV"])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"missing equals", "JUSTAKEY\n", "missing '='"},
		{"empty key", "=value\n", "empty key"},
		{"unterminated double quote", `KEY="oops` + "\n", "unterminated"},
		{"unterminated single quote", "KEY='oops\n", "unterminated"},
		{"bad escape", `KEY="\x"` + "\n", "unknown escape"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got: %v", tt.want, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("APP_ENV=staging\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	snap, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap["APP_ENV"] != "staging" {
		t.Errorf("unexpected snapshot: %v", snap)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadFeedsSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := `
SECRET_KEY=default_secret_for_dev_env_testing_0123456789
SNOWFLAKE_ACCOUNT=test_account
SNOWFLAKE_USER=test_user
SNOWFLAKE_PASSWORD=test_snowflake_password
SNOWFLAKE_WAREHOUSE=test_warehouse
AWS_ACCESS_KEY_ID=test_aws_key_id
AWS_SECRET_ACCESS_KEY=test_aws_secret_key
S3_BUCKET=test_s3_bucket
RATE_LIMIT_PER_MINUTE=200
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	snap, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, err := settings.Load(snap)
	if err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if s.RateLimitPerMinute != 200 {
		t.Errorf("expected rate limit 200, got %d", s.RateLimitPerMinute)
	}
}
