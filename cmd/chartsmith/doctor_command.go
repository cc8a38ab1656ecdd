package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"chartsmith/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check paths, converter page and browser before a run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			results := preflight.RunAll(cfg)
			heading := "Preflight"
			if ctx.configPath != "" {
				heading += " (" + ctx.configPath + ")"
			}
			fmt.Fprintln(out, renderHeading(heading, colorize))
			for _, line := range preflightLines(results, colorize) {
				fmt.Fprintln(out, line)
			}
			if preflight.Failed(results) {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}
}

func preflightLines(results []preflight.Result, colorize bool) []string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, renderCheckLine(r.Name, r.Passed, r.Detail, colorize))
	}
	return lines
}
