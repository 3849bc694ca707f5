package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tally/internal/version"
)

// errPipeline signals that a pipeline error was already reported; main only
// has to set the exit code.
var errPipeline = errors.New("pipeline failed")

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tally [file]",
		Short: "Evaluate integer addition expressions",
		Long: `tally reads expressions like "81 + 2" from a file or stdin,
evaluates each one and prints the values, one per line.`,
		Version:           version.Get().Version,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupCommand,
		PersistentPostRun: teardownCommand,
		RunE:              runEval,
	}

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("format", "pretty", "output format (pretty|json|yaml|msgpack)")
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to collect per file")
	pf.String("config", "", "path to tally.toml (default: search upwards from the working directory)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|file|stage|expr)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept in ring mode")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")

	rootCmd.AddCommand(newEvalCmd())
	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func main() {
	cmd, err := newRootCmd().ExecuteC()
	if cmd != nil && cmd.Context() != nil {
		teardownCommand(cmd, nil)
	}
	if err != nil {
		if !errors.Is(err, errPipeline) {
			fmt.Fprintf(os.Stderr, "tally: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
