package main

import (
	"github.com/spf13/cobra"

	"tally/internal/diagfmt"
	"tally/internal/driver"
	"tally/internal/source"
)

func newTokenizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize [file]",
		Short: "Print the tokens of a file (or stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTokenize,
	}
}

func runTokenize(cmd *cobra.Command, args []string) error {
	s := stateFrom(cmd).settings
	fs := source.NewFileSet()
	file, err := openInput(cmd, fs, args)
	if err != nil {
		reportFailure(cmd.ErrOrStderr(), s, err)
		return errPipeline
	}
	r := driver.Tokenize(cmd.Context(), fs, file, driverOptions(s))
	if err := diagfmt.FormatTokens(cmd.OutOrStdout(), s.format, file, r.Tokens, r.Err); err != nil {
		return err
	}
	return reportResult(cmd, s, r)
}
