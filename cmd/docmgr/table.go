package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docmgr/internal/dataset"
	"github.com/benjaminschreck/go-docmgr/pkg/docmgr"
)

// NewTableCmd creates the table command and its subcommands.
func NewTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Edit tables of an existing document",
		Long: `Edit one table of an existing document, addressed by its zero-based
index. The document is updated in place unless --output is given.`,
	}

	cmd.AddCommand(newTableClearCmd())
	cmd.AddCommand(newTablePruneCmd())
	cmd.AddCommand(newTableFillCmd())
	return cmd
}

// tableFlags are shared by every table subcommand
type tableFlags struct {
	index  int
	output string
}

func (f *tableFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.index, "index", 0, "Zero-based table index")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Write the result here instead of updating the document")
}

// edit opens the document, applies fn and saves the result
func (f *tableFlags) edit(path string, fn func(*docmgr.Manager) error) (string, error) {
	mgr, err := docmgr.Open(path)
	if err != nil {
		return "", err
	}
	if err := fn(mgr); err != nil {
		return "", err
	}
	output := f.output
	if output == "" {
		output = path
	}
	return output, mgr.Save(output)
}

func newTableClearCmd() *cobra.Command {
	var (
		flags tableFlags
		keep  []int
	)
	cmd := &cobra.Command{
		Use:   "clear DOCX",
		Short: "Blank every row of a table except the kept ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := flags.edit(args[0], func(m *docmgr.Manager) error {
				return m.ClearTableContentExcept(flags.index, keep)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared table %d -> %s\n", flags.index, output)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().IntSliceVar(&keep, "keep", nil, "Rows to keep, e.g. 0,1")
	return cmd
}

func newTablePruneCmd() *cobra.Command {
	var flags tableFlags
	cmd := &cobra.Command{
		Use:   "prune DOCX",
		Short: "Delete rows whose cells are all blank",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var removed int
			output, err := flags.edit(args[0], func(m *docmgr.Manager) error {
				var err error
				removed, err = m.DeleteEmptyRows(flags.index)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d rows from table %d -> %s\n", removed, flags.index, output)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newTableFillCmd() *cobra.Command {
	var (
		flags tableFlags
		start int
		data  string
		sheet string
	)
	cmd := &cobra.Command{
		Use:   "fill DOCX",
		Short: "Write a CSV or XLSX dataset into a table",
		Long: `Write the rows of a dataset into a table starting at --start, adding
rows as needed. Values beyond the table's columns are dropped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			df, err := dataset.Load(data, sheet)
			if err != nil {
				return err
			}
			output, err := flags.edit(args[0], func(m *docmgr.Manager) error {
				return m.AddDataToTable(flags.index, df.ToColumns(), start)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "filled table %d with %d rows -> %s\n", flags.index, len(df.Rows), output)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&start, "start", 0, "First row to write")
	cmd.Flags().StringVar(&data, "data", "", "Dataset file (.csv, .xlsx)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet of an XLSX dataset (default: first)")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}
