package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tally/internal/diag"
	"tally/internal/diagfmt"
	"tally/internal/driver"
	"tally/internal/source"
)

// openInput loads the single input of a command: args[0], or stdin when
// there is no argument or it is "-".
func openInput(cmd *cobra.Command, fs *source.FileSet, args []string) (*source.File, error) {
	if len(args) == 0 || args[0] == "-" {
		return driver.LoadReader(fs, source.StdinName, cmd.InOrStdin())
	}
	return driver.LoadFile(fs, args[0])
}

func driverOptions(s settings) driver.Options {
	return driver.Options{
		MaxDiagnostics: s.maxDiagnostics,
		// в структурированных форматах тайминги едут в диагностиках
		Timings: s.timings && s.format != diagfmt.FormatPretty,
		Jobs:    s.jobs,
	}
}

func prettyOpts(s settings) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     s.color,
		Context:   2,
		Paths:     diagfmt.PathRelative,
		ShowNotes: true,
	}
}

// reportFailure renders a load or pipeline error on w.
func reportFailure(w io.Writer, s settings, err error) {
	de, ok := diag.AsError(err)
	if !ok {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	if s.format == diagfmt.FormatPretty {
		if perr := diagfmt.PrettyError(w, de, prettyOpts(s)); perr != nil {
			fmt.Fprintf(w, "error: %v\n", err)
		}
		return
	}
	// без файла (ошибка загрузки) структурированный вывод невозможен
	if de.File == nil {
		fmt.Fprintf(w, "error: %v\n", err)
	}
}

// reportResult writes diagnostics and timings of r to stderr and returns
// errPipeline when r failed.
func reportResult(cmd *cobra.Command, s settings, r *driver.Result) error {
	errOut := cmd.ErrOrStderr()
	if s.format != diagfmt.FormatPretty && r.Bag.Len() > 0 {
		dopts := diagfmt.DocOpts{Paths: diagfmt.PathRelative, Positions: true}
		if err := diagfmt.Diagnostics(errOut, s.format, r.Bag, r.FileSet, prettyOpts(s), dopts); err != nil {
			return err
		}
	}
	if r.Err != nil {
		reportFailure(errOut, s, r.Err)
	}
	if s.timings && s.format == diagfmt.FormatPretty && r.Timing != nil && !s.quiet {
		for _, st := range r.Timing.Stages {
			fmt.Fprintf(errOut, "%s %s %.2f ms, %d items\n", r.File.Path, st.Name, st.DurationMS, st.Items)
		}
	}
	if r.Failed() {
		return errPipeline
	}
	return nil
}
