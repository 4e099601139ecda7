package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docmgr/pkg/docmgr"
)

// NewRootCmd creates the root command for docmgr.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docmgr",
		Short: "Build and edit Word documents",
		Long: `docmgr builds Word (.docx) reports from YAML or TOML job files and edits
the tables of existing documents.

Configuration comes from DOCMGR_* environment variables, optionally
layered over a YAML or TOML file given with --config.`,
		Version:           getVersion(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Configuration file (.yaml or .toml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewBuildCmd())
	cmd.AddCommand(NewInspectCmd())
	cmd.AddCommand(NewTableCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// setup loads the configuration and sets the log level before any subcommand runs
func setup(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	config := docmgr.ConfigFromEnvironment()
	if configPath != "" {
		var err error
		if config, err = docmgr.LoadConfigFile(configPath); err != nil {
			return err
		}
	}
	if verbose {
		config.LogLevel = "debug"
	}
	if err := config.Validate(); err != nil {
		return err
	}
	docmgr.SetGlobalConfig(config)
	return nil
}

// Execute runs the root command. An interrupt cancels running builds.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
