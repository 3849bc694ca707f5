package main

import (
	"github.com/spf13/cobra"

	"tally/internal/diagfmt"
	"tally/internal/driver"
	"tally/internal/source"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Print the syntax trees of a file (or stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runParse,
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	s := stateFrom(cmd).settings
	fs := source.NewFileSet()
	file, err := openInput(cmd, fs, args)
	if err != nil {
		reportFailure(cmd.ErrOrStderr(), s, err)
		return errPipeline
	}
	r := driver.Parse(cmd.Context(), fs, file, driverOptions(s))
	if err := diagfmt.FormatTrees(cmd.OutOrStdout(), s.format, file, r.Trees, r.Err); err != nil {
		return err
	}
	return reportResult(cmd, s, r)
}
