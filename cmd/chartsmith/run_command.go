package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"chartsmith/internal/config"
	"chartsmith/internal/history"
	"chartsmith/internal/logging"
	"chartsmith/internal/pipeline"
	"chartsmith/internal/services/midich"
)

type runFlags struct {
	continueOnError *bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var continueOnError bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Convert every merged.mid under the input tree",
		Long: "Wipes the output root, converts each merged.mid through the MIDI-CH page in\n" +
			"headless Chrome, and writes one chart package per song group.",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := runFlags{}
			if cmd.Flags().Changed("continue-on-error") {
				flags.continueOnError = &continueOnError
			}
			return runBatch(cmd, ctx, flags)
		},
	}
	cmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "Keep converting after an input fails")
	return cmd
}

func runBatch(cmd *cobra.Command, ctx *commandContext, flags runFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if flags.continueOnError != nil {
		cfg.Run.ContinueOnError = *flags.continueOnError
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if cfg.Paths.LogDir != "" {
		logging.CleanupOldLogs(logger, cfg.Paths.LogDir, "chartsmith-*.log", cfg.LogFilePath(), cfg.Logging.RetentionDays)
	}

	opts := []pipeline.Option{}
	if store := openHistory(cmd.Context(), cfg, logger); store != nil {
		defer store.Close()
		opts = append(opts, pipeline.WithRecorder(store))
	}

	session := midich.NewSession(midich.OptionsFromConfig(cfg), logger)
	driver := pipeline.New(cfg, session, logger, opts...)
	summary, runErr := driver.Run(cmd.Context())

	if len(summary.Results) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summary))
	}
	if runErr != nil {
		return runErr
	}
	if failed := summary.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, summary.Inputs)
	}
	return nil
}

// openHistory returns nil when the ledger is disabled or cannot be opened;
// a broken ledger never blocks a conversion run.
func openHistory(ctx context.Context, cfg *config.Config, logger *slog.Logger) *history.Store {
	if !cfg.History.Enabled {
		return nil
	}
	store, err := history.Open(ctx, cfg.HistoryPath())
	if err != nil {
		logging.WarnWithContext(logger, "history ledger unavailable", "history_open_failed",
			logging.Error(err),
			logging.String("path", cfg.HistoryPath()),
			logging.String(logging.FieldErrorHint, "delete the ledger file or set history.enabled = false"),
			logging.String(logging.FieldImpact, "this run will not be recorded"),
		)
		return nil
	}
	return store
}
