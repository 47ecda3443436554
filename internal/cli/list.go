package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"pymeta/internal/pydist"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the distributions visible in the Python environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}
}

func runList(cmd *cobra.Command, opts *rootOptions) error {
	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	idx, err := s.index(cmd.Context())
	if err != nil {
		return err
	}
	dists, err := idx.Distributions(cmd.Context())
	if err != nil {
		return fmt.Errorf("list distributions: %w", err)
	}
	s.logger.Debug("listed distributions", "count", len(dists))

	if opts.outputJSON {
		if dists == nil {
			dists = []pydist.Distribution{}
		}
		data, err := json.MarshalIndent(dists, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	printDistTable(cmd, dists)
	return nil
}

func printDistTable(cmd *cobra.Command, dists []pydist.Distribution) {
	out := cmd.OutOrStdout()
	if len(dists) == 0 {
		fmt.Fprintln(out, "(no distributions found)")
		return
	}

	t := &table{
		styled:  isTerminal(out),
		headers: []string{"NAME", "VERSION", "KIND", "LOCATION"},
		styleFor: func(row, col int) (lipgloss.Style, bool) {
			switch col {
			case 2:
				style, ok := kindStyles[dists[row].Kind]
				return style, ok
			case 3:
				return faintStyle, true
			default:
				return lipgloss.Style{}, false
			}
		},
	}
	for _, d := range dists {
		version := d.Version
		if version == "" {
			version = "-"
		}
		t.add(d.Name, version, string(d.Kind), d.Location)
	}
	t.render(out)
}
