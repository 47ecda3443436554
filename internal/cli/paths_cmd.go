package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"pymeta/internal/paths"
	"pymeta/internal/python"
)

func newPathsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show the directories scanned for installed distributions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPaths(cmd, opts)
		},
	}
}

type pathReport struct {
	python.SearchPath
	Exists bool `json:"exists"`
}

func runPaths(cmd *cobra.Command, opts *rootOptions) error {
	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	sp, err := s.searchPaths(cmd.Context())
	if err != nil {
		return err
	}

	reports := make([]pathReport, 0, len(sp))
	for _, p := range sp {
		exists, err := paths.DirExists(p.Dir)
		if err != nil {
			s.logger.Debug("stat search path", "dir", p.Dir, "error", err)
		}
		reports = append(reports, pathReport{SearchPath: p, Exists: exists})
	}

	if opts.outputJSON {
		data, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	out := cmd.OutOrStdout()
	t := &table{styled: isTerminal(out), headers: []string{"ORIGIN", "EXISTS", "DIR"}}
	for _, r := range reports {
		exists := "no"
		if r.Exists {
			exists = "yes"
		}
		t.add(string(r.Origin), exists, r.Dir)
	}
	t.render(out)
	return nil
}
