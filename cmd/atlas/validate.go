package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"orgair-hq/atlas/pkg/cli"
	"orgair-hq/atlas/pkg/envfile"
	"orgair-hq/atlas/pkg/history"
	"orgair-hq/atlas/pkg/settings"
	"orgair-hq/atlas/pkg/telemetry/logging"
	"orgair-hq/atlas/pkg/telemetry/metrics"
)

var (
	validateFormat      string
	validateWatch       bool
	validateMetricsAddr string
	validateRecord      bool
	validateRetention   int
	validatePruneCron   string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the current configuration",
	Long: `Validate resolves settings from the process environment (plus --env-file
overrides) and checks them against the schema. Every failure is reported, not
just the first.

With --watch the command keeps running, re-validating whenever the dotenv
file changes. Watch mode can expose Prometheus metrics with --metrics-addr
and record outcomes to the history store with --record.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", "text", "output format (text, json)")
	validateCmd.Flags().BoolVarP(&validateWatch, "watch", "w", false, "re-validate when the env file changes (requires --env-file)")
	validateCmd.Flags().StringVar(&validateMetricsAddr, "metrics-addr", "", "expose Prometheus metrics on this address in watch mode")
	validateCmd.Flags().BoolVar(&validateRecord, "record", false, "record outcomes in the history store")
	validateCmd.Flags().IntVar(&validateRetention, "retention-days", 30, "history retention window for scheduled pruning")
	validateCmd.Flags().StringVar(&validatePruneCron, "prune-schedule", "", "cron expression for automatic history pruning in watch mode")
	rootCmd.AddCommand(validateCmd)
}

// validateResult is the JSON shape of one validation outcome.
type validateResult struct {
	Valid     bool                     `json:"valid"`
	AppEnv    string                   `json:"app_env,omitempty"`
	WeightSum float64                  `json:"weight_sum,omitempty"`
	Errors    []settings.FieldError    `json:"errors,omitempty"`
	Resolved  []settings.ResolvedValue `json:"resolved,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(validateFormat)
	if err != nil {
		return err
	}
	if format == cli.FormatCSV {
		return cli.NewUsageError("--format", "validate supports text and json")
	}
	if validateWatch && envFile == "" {
		return cli.NewUsageError("--watch", "requires --env-file")
	}

	loader := settings.NewLoader()
	collector := metrics.NewCollector(metrics.Config{}, nil)

	var store history.Store
	if validateRecord {
		store, err = openHistoryStore()
		if err != nil {
			return cli.NewCommandError("validate", fmt.Errorf("opening history store: %w", err))
		}
		defer store.Close()
	}

	if !validateWatch {
		valid, err := validateOnce(cmd.Context(), loader, collector, store, format)
		if err != nil {
			return err
		}
		if !valid {
			// The report already went to stdout.
			return errValidationFailed
		}
		return nil
	}

	return watchAndValidate(cmd.Context(), loader, collector, store, format)
}

// validateOnce resolves, validates, reports, and records a single snapshot.
// The returned bool is the validation outcome; the error covers operational
// failures only.
func validateOnce(ctx context.Context, loader *settings.Loader, collector *metrics.Collector, store history.Store, format cli.OutputFormat) (bool, error) {
	snap, err := resolveSnapshot()
	if err != nil {
		return false, err
	}

	hits, misses := loader.Stats()
	start := time.Now()
	s, loadErr := loader.Load(snap)
	collector.RecordLoad(loadErr == nil, time.Since(start))
	switch hitsNow, missesNow := loader.Stats(); {
	case hitsNow > hits:
		collector.RecordCacheHit()
	case missesNow > misses:
		collector.RecordCacheMiss()
	}

	result := validateResult{Valid: loadErr == nil}
	if loadErr != nil {
		verr, ok := settings.AsValidationError(loadErr)
		if !ok {
			return false, loadErr
		}
		result.Errors = verr.Errors
		for _, fe := range verr.Errors {
			collector.RecordFailure(fe.Field)
		}
	} else {
		result.AppEnv = s.AppEnv
		result.WeightSum = s.WeightSum()
		result.Resolved = s.Resolved()
	}

	if store != nil {
		source, detail := snapshotSource()
		rec := history.NewRecord(source, detail, snap.Fingerprint())
		rec.Valid = result.Valid
		rec.AppEnv = result.AppEnv
		rec.Errors = result.Errors
		if err := store.Append(ctx, rec); err != nil {
			return false, fmt.Errorf("recording outcome: %w", err)
		}
	}

	if err := writeResult(result, format); err != nil {
		return false, err
	}
	return result.Valid, nil
}

func writeResult(result validateResult, format cli.OutputFormat) error {
	if format == cli.FormatJSON {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, result)
	}
	if !result.Valid {
		return settings.WriteErrorReport(os.Stdout, settings.ValidationError{Errors: result.Errors})
	}
	fmt.Printf("configuration valid (%s), weight sum %.6g\n", result.AppEnv, result.WeightSum)
	return nil
}

// watchAndValidate validates once, then re-validates on every change to the
// env file until interrupted.
func watchAndValidate(ctx context.Context, loader *settings.Loader, collector *metrics.Collector, store history.Store, format cli.OutputFormat) error {
	logger := watchLogger(loader)

	if validateMetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		server := &http.Server{Addr: validateMetricsAddr, Handler: mux}
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer server.Close()
		logger.Info("metrics listening", "addr", validateMetricsAddr)
	}

	if store != nil && validatePruneCron != "" {
		pruner := history.NewPruner(store, history.PrunerConfig{
			RetentionDays: validateRetention,
			PruneSchedule: validatePruneCron,
		}, logger)
		scheduler := history.NewScheduler(pruner)
		if err := scheduler.Start(ctx); err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	if _, err := validateOnce(ctx, loader, collector, store, format); err != nil {
		return err
	}

	watcher, err := envfile.NewWatcher(envFile, envfile.DefaultDebounceInterval, logger)
	if err != nil {
		return err
	}
	defer watcher.Stop()

	return watcher.Watch(ctx, func() error {
		loader.Invalidate()
		_, err := validateOnce(ctx, loader, collector, store, format)
		return err
	})
}

// watchLogger builds a logger for watch mode. When the current snapshot is
// itself valid its LOG_LEVEL and LOG_FORMAT drive the logger; otherwise the
// defaults apply.
func watchLogger(loader *settings.Loader) *slog.Logger {
	if snap, err := resolveSnapshot(); err == nil {
		if s, err := loader.Load(snap); err == nil {
			return logging.MustFromSettings(s)
		}
	}
	logger, err := logging.New(logging.Config{
		Level:  settings.DefaultLogLevel,
		Format: settings.DefaultLogFormat,
		Redact: true,
	})
	if err != nil {
		return slog.Default()
	}
	return logger
}
