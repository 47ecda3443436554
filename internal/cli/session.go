package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pymeta/internal/config"
	"pymeta/internal/logx"
	"pymeta/internal/paths"
	"pymeta/internal/pydist"
	"pymeta/internal/python"
)

// session is the per-invocation environment shared by all commands: the
// resolved project paths, the effective config and the logger.
type session struct {
	paths  paths.ProjectPaths
	cfg    config.Config
	logger *slog.Logger
	closer io.Closer
}

func openSession(cmd *cobra.Command, opts *rootOptions) (*session, error) {
	pp, err := paths.Resolve(opts.workDir, opts.configFile)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(pp.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", pp.ConfigFile, err)
	}
	applyFlagOverrides(cmd, opts, &cfg)

	results, err := checkConfig(pp.ConfigFile, cfg)
	if err != nil {
		return nil, err
	}

	base, err := logx.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	pp = paths.ApplyConfig(pp, cfg)
	logger, closer, err := logx.New(logx.Options{
		Level:  logx.LevelFor(base, opts.quiet, opts.verbose),
		Stderr: cmd.ErrOrStderr(),
		File:   pp.LogFile,
	})
	if err != nil {
		return nil, err
	}

	for _, r := range results {
		if r.Level == "warning" {
			logger.Warn(r.Message, "config", pp.ConfigFile)
		}
	}

	host, _ := os.Hostname()
	logger.Debug("invocation", "host", host, "argv", strings.Join(opts.argv, " "), "project", pp.Root)

	return &session{paths: pp, cfg: cfg, logger: logger, closer: closer}, nil
}

// checkConfig validates cfg and folds every error-level result into one
// error naming file.
func checkConfig(file string, cfg config.Config) ([]config.ValidationResult, error) {
	results := cfg.Validate()
	if errs := config.Errors(results); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, r := range errs {
			msgs[i] = r.Message
		}
		return results, fmt.Errorf("invalid config %s: %s", file, strings.Join(msgs, "; "))
	}
	return results, nil
}

func applyFlagOverrides(cmd *cobra.Command, opts *rootOptions, cfg *config.Config) {
	if flagChanged(cmd, "python") {
		cfg.Python = opts.python
	}
	if flagChanged(cmd, "search-path") {
		cfg.SearchPaths = append([]string(nil), opts.searchPaths...)
	}
	if flagChanged(cmd, "egginfo-path") {
		cfg.EgginfoPath = opts.egginfoPath
	}
	if opts.strict {
		cfg.Strict = true
	}
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func (s *session) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (s *session) searchPaths(ctx context.Context) ([]python.SearchPath, error) {
	sp, err := python.SearchPaths(ctx, python.Options{
		Interpreter: s.cfg.Python,
		Static:      s.cfg.SearchPaths,
		PythonPath:  os.Getenv("PYTHONPATH"),
		WorkDir:     s.paths.Root,
		Timeout:     s.cfg.ProbeTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("discover search paths: %w", err)
	}
	for _, p := range sp {
		s.logger.Debug("search path", "dir", p.Dir, "origin", p.Origin)
	}
	return sp, nil
}

func (s *session) index(ctx context.Context) (pydist.PathIndex, error) {
	sp, err := s.searchPaths(ctx)
	if err != nil {
		return pydist.PathIndex{}, err
	}
	return pydist.PathIndex{Paths: python.Dirs(sp), WorkDir: s.paths.Root}, nil
}

func (s *session) resolver(ctx context.Context) (*pydist.Resolver, error) {
	idx, err := s.index(ctx)
	if err != nil {
		return nil, err
	}
	return pydist.NewResolver(idx, s.paths.Root, s.logger), nil
}
