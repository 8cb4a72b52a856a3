package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"orgair-hq/atlas/pkg/settings"
)

func devSettings(t *testing.T, overrides map[string]string) *settings.Settings {
	t.Helper()
	snap := settings.Snapshot{
		"SECRET_KEY":            "default_secret_for_dev_env_testing_0123456789",
		"SNOWFLAKE_ACCOUNT":     "test_account",
		"SNOWFLAKE_USER":        "test_user",
		"SNOWFLAKE_PASSWORD":    "test_snowflake_password",
		"SNOWFLAKE_WAREHOUSE":   "test_warehouse",
		"AWS_ACCESS_KEY_ID":     "test_aws_key_id",
		"AWS_SECRET_ACCESS_KEY": "test_aws_secret_key",
		"S3_BUCKET":             "test_s3_bucket",
	}.Merge(overrides)
	s, err := settings.Load(snap)
	if err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	return s
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "INFO", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("validation completed", "result", "valid")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "validation completed" {
		t.Errorf("unexpected message: %v", entry["msg"])
	}
	if entry["result"] != "valid" {
		t.Errorf("unexpected attr: %v", entry["result"])
	}
}

func TestNewConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "INFO", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("hello")
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("expected key=value output, got %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "ERROR", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("dropped")
	logger.Debug("dropped")
	if buf.Len() != 0 {
		t.Errorf("expected sub-error levels filtered, got %q", buf.String())
	}

	logger.Error("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("expected error entry, got %q", buf.String())
	}
}

func TestParseLevelRejectsUnknown(t *testing.T) {
	if _, err := New(Config{Level: "TRACE", Format: "json"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestParseFormatRejectsUnknown(t *testing.T) {
	if _, err := New(Config{Level: "INFO", Format: "xml"}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestFromSettings(t *testing.T) {
	s := devSettings(t, map[string]string{
		"LOG_LEVEL":  "WARNING",
		"LOG_FORMAT": "console",
	})

	cfg := FromSettings(s)
	if cfg.Level != "WARNING" || cfg.Format != "console" {
		t.Errorf("unexpected config: %+v", cfg)
	}

	var buf bytes.Buffer
	cfg.Writer = &buf
	logger, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("dropped")
	logger.Warn("kept")
	out := buf.String()
	if strings.Contains(out, "dropped") || !strings.Contains(out, "kept") {
		t.Errorf("WARNING level not honored: %q", out)
	}
}

func TestMustFromSettings(t *testing.T) {
	logger := MustFromSettings(devSettings(t, nil))
	if logger == nil {
		t.Fatal("expected logger")
	}
}

func TestRedactionInLogOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "INFO", Format: "json", Redact: true, Writer: &buf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("loaded key", "key", "sk-live_abc123")
	out := buf.String()
	if strings.Contains(out, "sk-live_abc123") {
		t.Errorf("raw key leaked into logs: %q", out)
	}
	if !strings.Contains(out, "sk-***") {
		t.Errorf("expected redacted key in logs: %q", out)
	}
}

func TestSecretAttrIsMasked(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "INFO", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	secret := settings.Secret("raw_secret_value")
	logger.Info("settings", slog.Any("secret_key", secret))
	if strings.Contains(buf.String(), "raw_secret_value") {
		t.Errorf("secret leaked into logs: %q", buf.String())
	}
}
