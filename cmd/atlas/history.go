package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"orgair-hq/atlas/pkg/cli"
	"orgair-hq/atlas/pkg/history"
)

var (
	histFormat      string
	histLimit       int
	histOnlyInvalid bool
	histSource      string
	histRetention   int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded validation outcomes",
	Long: `History lists and prunes validation records. Records are written by
validate --record and scenarios run --record; use --history-db to point at
the persistent store.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List validation records, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete records older than the retention window",
	Args:  cobra.NoArgs,
	RunE:  runHistoryPrune,
}

func init() {
	historyListCmd.Flags().StringVarP(&histFormat, "format", "f", "text", "output format (text, json, csv)")
	historyListCmd.Flags().IntVar(&histLimit, "limit", 20, "maximum records to show (0 for all)")
	historyListCmd.Flags().BoolVar(&histOnlyInvalid, "invalid", false, "show only failed validations")
	historyListCmd.Flags().StringVar(&histSource, "source", "", "filter by source (environ, envfile, scenario)")
	historyPruneCmd.Flags().IntVar(&histRetention, "retention-days", 30, "delete records older than this many days")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}

// recordList adapts history records to the CSV formatter.
type recordList []history.Record

func (recordList) Headers() []string {
	return []string{"id", "timestamp", "source", "detail", "valid", "app_env", "error_count"}
}

func (rl recordList) Rows() [][]string {
	rows := make([][]string, 0, len(rl))
	for _, rec := range rl {
		rows = append(rows, []string{
			rec.ID,
			rec.Timestamp.Format(time.RFC3339),
			rec.Source,
			rec.Detail,
			strconv.FormatBool(rec.Valid),
			rec.AppEnv,
			strconv.Itoa(len(rec.Errors)),
		})
	}
	return rows
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(histFormat)
	if err != nil {
		return err
	}

	store, err := openHistoryStore()
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer store.Close()

	recs, err := store.List(cmd.Context(), history.ListOptions{
		Limit:       histLimit,
		OnlyInvalid: histOnlyInvalid,
		Source:      histSource,
	})
	if err != nil {
		return err
	}

	switch format {
	case cli.FormatJSON:
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, recs)
	case cli.FormatCSV:
		return cli.NewFormatter(cli.FormatCSV).FormatTo(os.Stdout, recordList(recs))
	default:
		if len(recs) == 0 {
			fmt.Println("no records")
			return nil
		}
		for _, rec := range recs {
			outcome := "valid"
			if !rec.Valid {
				outcome = fmt.Sprintf("invalid (%d errors)", len(rec.Errors))
			}
			detail := rec.Source
			if rec.Detail != "" {
				detail += " " + rec.Detail
			}
			fmt.Printf("%s  %-24s %-10s %s\n",
				rec.Timestamp.Format(time.RFC3339), detail, outcome, rec.ID)
		}
		return nil
	}
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	store, err := openHistoryStore()
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer store.Close()

	pruner := history.NewPruner(store, history.PrunerConfig{RetentionDays: histRetention}, nil)
	deleted, err := pruner.Prune(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("pruned %d record(s)\n", deleted)
	return nil
}
