package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docmgr/internal/job"
)

// NewBuildCmd creates the build command.
func NewBuildCmd() *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "build JOB...",
		Short: "Build documents from job files",
		Long: `Build one document per job file. Jobs run concurrently; a failing job
does not stop the others and every failure is reported at the end.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := job.NewRunner(job.WithConcurrency(concurrency))
			results, err := runner.RunAll(cmd.Context(), args)
			for _, result := range results {
				if result == nil {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%d steps, %d tables)\n",
					result.Job, result.Output, result.Steps, result.Tables)
			}
			return err
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Maximum number of jobs built at once")
	return cmd
}
