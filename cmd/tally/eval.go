package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/diagfmt"
	"tally/internal/driver"
	"tally/internal/source"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [files...]",
		Short: "Evaluate files (or stdin) and print one value per expression",
		RunE:  runEval,
	}
	mode := progressAuto
	cmd.Flags().Int("jobs", 0, "files evaluated in parallel (0 = GOMAXPROCS)")
	cmd.Flags().Var(&mode, "ui", "live progress view for multi-file runs")
	return cmd
}

func progressModeOf(cmd *cobra.Command) progressMode {
	if f := cmd.Flags().Lookup("ui"); f != nil {
		if m, ok := f.Value.(*progressMode); ok {
			return *m
		}
	}
	return progressOff
}

func runEval(cmd *cobra.Command, args []string) error {
	s := stateFrom(cmd).settings
	if len(args) > 1 {
		return runEvalFiles(cmd, s, args)
	}

	fs := source.NewFileSet()
	file, err := openInput(cmd, fs, args)
	if err != nil {
		reportFailure(cmd.ErrOrStderr(), s, err)
		return errPipeline
	}
	r := driver.Evaluate(cmd.Context(), fs, file, driverOptions(s))
	if err := diagfmt.FormatValues(cmd.OutOrStdout(), s.format, file, r.Values, r.Err); err != nil {
		return err
	}
	return reportResult(cmd, s, r)
}

func runEvalFiles(cmd *cobra.Command, s settings, paths []string) error {
	opts := driverOptions(s)

	var (
		results []*driver.Result
		err     error
	)
	if progressModeOf(cmd).showProgress(s) {
		_, results, err = runEvalWithUI(cmd.Context(), "eval", paths, opts)
	} else {
		_, results, err = driver.EvaluateFiles(cmd.Context(), paths, opts)
	}
	if err != nil {
		reportFailure(cmd.ErrOrStderr(), s, err)
		return errPipeline
	}

	out := cmd.OutOrStdout()
	var failed bool
	for _, r := range results {
		if s.format == diagfmt.FormatPretty {
			fmt.Fprintf(out, "# %s\n", r.File.Path)
		}
		if err := diagfmt.FormatValues(out, s.format, r.File, r.Values, r.Err); err != nil {
			return err
		}
		if err := reportResult(cmd, s, r); err != nil {
			failed = true
		}
	}
	if failed {
		return errPipeline
	}
	return nil
}
