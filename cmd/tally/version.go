package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tally/internal/diagfmt"
	"tally/internal/version"
)

type versionPayload struct {
	Tool string `json:"tool"`
	version.Info
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show tally build metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := stateFrom(cmd).settings
			info := version.Get()
			switch s.format {
			case diagfmt.FormatPretty:
				renderVersionPretty(cmd.OutOrStdout(), info, s.color)
				return nil
			case diagfmt.FormatJSON:
				return renderVersionJSON(cmd.OutOrStdout(), info)
			default:
				return fmt.Errorf("unsupported format %q for version (must be pretty or json)", s.format)
			}
		},
	}
}

func renderVersionPretty(w io.Writer, info version.Info, colored bool) {
	fmt.Fprintf(w, "tally %s\n", version.Colored(info.Version, colored))
	if info.GitCommit != "" {
		fmt.Fprintf(w, "  commit: %s\n", info.GitCommit)
	}
	if info.BuildDate != "" {
		fmt.Fprintf(w, "  built:  %s\n", info.BuildDate)
	}
	if info.GoVersion != "" {
		fmt.Fprintf(w, "  go:     %s\n", info.GoVersion)
	}
}

func renderVersionJSON(w io.Writer, info version.Info) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(versionPayload{Tool: "tally", Info: info})
}
