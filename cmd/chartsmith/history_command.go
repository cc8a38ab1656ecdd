package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chartsmith/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var (
		limit int
		runID string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent conversions from the run ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			path := cfg.HistoryPath()
			if _, err := os.Stat(path); os.IsNotExist(err) {
				fmt.Fprintln(out, "No conversions recorded yet")
				return nil
			}

			store, err := history.Open(cmd.Context(), path)
			if err != nil {
				return err
			}
			defer store.Close()

			var records []history.Record
			if runID != "" {
				records, err = store.ByRun(cmd.Context(), runID)
			} else {
				records, err = store.Recent(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}
			if len(records) == 0 {
				if runID != "" {
					fmt.Fprintf(out, "No conversions recorded for run %s\n", runID)
					return nil
				}
				fmt.Fprintln(out, "No conversions recorded yet")
				return nil
			}
			fmt.Fprintln(out, renderHistory(records))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of records to show")
	cmd.Flags().StringVar(&runID, "run", "", "Show every record from one run (id or its prefix)")
	return cmd
}

func renderHistory(records []history.Record) string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		status := string(rec.Status)
		if rec.Category != "" {
			status = rec.Category
		}
		finished := "-"
		if !rec.FinishedAt.IsZero() {
			finished = rec.FinishedAt.Local().Format("2006-01-02 15:04")
		}
		run := rec.RunID
		if len(run) > 8 {
			run = run[:8]
		}
		rows = append(rows, []string{
			finished,
			run,
			rec.SongGroup,
			status,
			fmt.Sprintf("%d", rec.FilesWritten),
			formatDuration(rec.Duration()),
		})
	}
	return renderTable([]tableColumn{
		{title: "Finished"},
		{title: "Run"},
		{title: "Song group"},
		{title: "Status"},
		{title: "Files", numeric: true},
		{title: "Time", numeric: true},
	}, rows)
}
