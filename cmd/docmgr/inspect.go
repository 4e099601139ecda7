package main

import (
	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docmgr/internal/inspect"
	"github.com/benjaminschreck/go-docmgr/pkg/docmgr"
)

// NewInspectCmd creates the inspect command.
func NewInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect DOCX",
		Short: "Print a Markdown outline of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := docmgr.Open(args[0])
			if err != nil {
				return err
			}
			_, err = inspect.Outline(cmd.OutOrStdout(), mgr)
			return err
		},
	}
}
