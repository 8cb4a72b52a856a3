package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"orgair-hq/atlas/pkg/cli"
	"orgair-hq/atlas/pkg/envfile"
	"orgair-hq/atlas/pkg/history"
	"orgair-hq/atlas/pkg/settings"
)

var (
	// Global flags
	envFile   string
	historyDB string
)

// errValidationFailed signals an invalid configuration or a failing scenario.
// The report has already been written when it is returned; Execute translates
// it into exit status 1 after deferred cleanup has run.
var errValidationFailed = errors.New("validation failed")

var rootCmd = &cobra.Command{
	Use:   "atlas",
	Short: "Atlas - configuration validation for the PE Org-AI-R platform",
	Long: `Atlas is a declarative configuration validator. It resolves settings from
the process environment and optional dotenv files, checks every field against
the schema, and aggregates all failures into one report:

  - typed coercion with ranges, enums, and key-format rules
  - dimension weights that must sum to 1.0
  - production hardening: debug off, long secret key, an LLM API key

Invalid configurations are caught before they can cause harm.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command under a signal-canceled context, so watch
// mode shuts its watcher, metrics server, and history store down cleanly on
// SIGINT or SIGTERM.
func Execute() {
	if err := rootCmd.ExecuteContext(cli.SetupSignalHandler()); err != nil {
		if !errors.Is(err, errValidationFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "e", "", "dotenv file layered over the process environment")
	rootCmd.PersistentFlags().StringVar(&historyDB, "history-db", "", "SQLite database for validation history (default in-memory)")
}

// resolveSnapshot builds the snapshot to validate: the process environment
// with dotenv overrides layered on top when --env-file is set.
func resolveSnapshot() (settings.Snapshot, error) {
	snap := settings.FromEnviron()
	if envFile == "" {
		return snap, nil
	}
	overrides, err := envfile.Load(envFile)
	if err != nil {
		return nil, err
	}
	return snap.Merge(overrides), nil
}

// snapshotSource names where the validated snapshot came from for history
// records.
func snapshotSource() (source, detail string) {
	if envFile != "" {
		return history.SourceEnvFile, envFile
	}
	return history.SourceEnviron, ""
}

// openHistoryStore opens the configured history backend. Without --history-db
// records are held in memory and vanish when the process exits.
func openHistoryStore() (history.Store, error) {
	if historyDB == "" {
		return history.NewMemoryStore(), nil
	}
	return history.NewSQLiteStore(historyDB)
}
