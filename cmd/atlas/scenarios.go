package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"orgair-hq/atlas/pkg/cli"
	"orgair-hq/atlas/pkg/history"
	"orgair-hq/atlas/pkg/scenario"
	"orgair-hq/atlas/pkg/telemetry/metrics"
)

var (
	scenarioFile   string
	scenarioFormat string
	scenarioAll    bool
	scenarioRecord bool
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List and run what-if configuration scenarios",
	Long: `Scenarios simulate environments against the schema without touching the
real process environment. The bundled catalog covers valid development and
production setups plus the classic misconfigurations; --file loads a custom
YAML catalog instead.`,
}

var scenariosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available scenarios",
	Args:  cobra.NoArgs,
	RunE:  runScenariosList,
}

var scenariosRunCmd = &cobra.Command{
	Use:   "run [name...]",
	Short: "Run scenarios by name, or all with --all",
	Args:  cobra.ArbitraryArgs,
	RunE:  runScenariosRun,
}

func init() {
	scenariosCmd.PersistentFlags().StringVar(&scenarioFile, "file", "", "YAML scenario catalog (defaults to the bundled catalog)")
	scenariosCmd.PersistentFlags().StringVarP(&scenarioFormat, "format", "f", "text", "output format (text, json)")
	scenariosRunCmd.Flags().BoolVar(&scenarioAll, "all", false, "run every scenario in the catalog")
	scenariosRunCmd.Flags().BoolVar(&scenarioRecord, "record", false, "record outcomes in the history store")
	scenariosCmd.AddCommand(scenariosListCmd)
	scenariosCmd.AddCommand(scenariosRunCmd)
	rootCmd.AddCommand(scenariosCmd)
}

func loadCatalog() ([]scenario.Scenario, error) {
	if scenarioFile == "" {
		return scenario.Builtin(), nil
	}
	return scenario.LoadFile(scenarioFile)
}

func runScenariosList(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(scenarioFormat)
	if err != nil {
		return err
	}

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	if format == cli.FormatJSON {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, catalog)
	}
	for _, sc := range catalog {
		if sc.Description != "" {
			fmt.Printf("%-28s %s\n", sc.Name, sc.Description)
		} else {
			fmt.Println(sc.Name)
		}
	}
	return nil
}

func runScenariosRun(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(scenarioFormat)
	if err != nil {
		return err
	}
	if format == cli.FormatCSV {
		return cli.NewUsageError("--format", "scenarios support text and json")
	}

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	var selected []scenario.Scenario
	switch {
	case scenarioAll:
		if len(args) > 0 {
			return cli.NewUsageError("--all", "cannot combine with scenario names")
		}
		selected = catalog
	case len(args) > 0:
		for _, name := range args {
			sc, err := scenario.Find(catalog, name)
			if err != nil {
				return err
			}
			selected = append(selected, sc)
		}
	default:
		return cli.NewUsageError("run", "name a scenario or pass --all")
	}

	collector := metrics.NewCollector(metrics.Config{}, nil)
	runner := scenario.NewRunner()
	reports := runner.RunAll(selected)

	for _, report := range reports {
		collector.RecordScenarioRun(report.Valid)
	}

	if scenarioRecord {
		store, err := openHistoryStore()
		if err != nil {
			return cli.NewCommandError("scenarios run", fmt.Errorf("opening history store: %w", err))
		}
		defer store.Close()

		for i, report := range reports {
			snap := scenario.Baseline().Merge(selected[i].Env)
			rec := history.NewRecord(history.SourceScenario, report.Scenario, snap.Fingerprint())
			rec.Valid = report.Valid
			rec.AppEnv = report.AppEnv
			rec.Errors = report.Errors
			if err := store.Append(cmd.Context(), rec); err != nil {
				return fmt.Errorf("recording outcome: %w", err)
			}
		}
	}

	if format == cli.FormatJSON {
		if err := cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, reports); err != nil {
			return err
		}
	} else {
		for _, report := range reports {
			writeScenarioReport(report)
		}
	}

	for i, report := range reports {
		if !report.Valid && !selected[i].ExpectFailure {
			return errValidationFailed
		}
	}
	return nil
}

func writeScenarioReport(report scenario.Report) {
	if report.Valid {
		fmt.Printf("PASS %s (env %s, weight sum %.6g)\n", report.Scenario, report.AppEnv, report.WeightSum)
		return
	}
	fmt.Printf("FAIL %s with %d error(s):\n", report.Scenario, len(report.Errors))
	for _, fe := range report.Errors {
		fmt.Printf("  [%s] %s\n", fe.Field, fe.Message)
	}
}
