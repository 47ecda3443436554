package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pymeta/internal/pydist"
)

// Args is the parse result of one meta invocation.
type Args struct {
	EgginfoPath string
	Name        bool
	Version     bool
	Quiet       bool
	Verbose     bool
	Strict      bool
	// Order lists the order-tracked flags in the sequence they were given,
	// duplicates included. It is empty, never nil, when none was given.
	Order []string
}

func (o *rootOptions) args(s *session) Args {
	return Args{
		EgginfoPath: s.cfg.EgginfoPath,
		Name:        o.name,
		Version:     o.version,
		Quiet:       o.quiet,
		Verbose:     o.verbose,
		Strict:      s.cfg.Strict,
		Order:       o.record.Order(),
	}
}

func runMeta(cmd *cobra.Command, opts *rootOptions) error {
	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	args := opts.args(s)
	s.logger.Debug("parsed arguments",
		"egginfo_path", args.EgginfoPath,
		"name", args.Name,
		"version", args.Version,
		"order", args.Order,
		"strict", args.Strict,
	)
	if !args.Name && !args.Version {
		return nil
	}

	ctx := cmd.Context()
	resolver, err := s.resolver(ctx)
	if err != nil {
		return err
	}

	lines, err := describe(ctx, resolver, args)
	if err != nil {
		if !errors.Is(err, pydist.ErrDistributionNotFound) && !errors.Is(err, pydist.ErrPackageNotFound) {
			return err
		}
		var nf *pydist.NotFoundError
		if errors.As(err, &nf) {
			s.logger.Error(err.Error(), "path", nf.Path, "candidates", nf.Candidates)
		} else {
			s.logger.Error(err.Error())
		}
		if args.Strict {
			return &ExitError{Code: 1, Err: err, Logged: true}
		}
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
	return nil
}

// describe resolves the distribution at args.EgginfoPath once and renders one
// line per entry of args.Order.
func describe(ctx context.Context, resolver *pydist.Resolver, args Args) ([]string, error) {
	name, err := resolver.Name(ctx, args.EgginfoPath)
	if err != nil {
		return nil, err
	}

	var version string
	lines := make([]string, 0, len(args.Order))
	for _, dest := range args.Order {
		switch dest {
		case "name":
			lines = append(lines, name)
		case "version":
			if version == "" {
				if version, err = resolver.Version(ctx, name); err != nil {
					return nil, err
				}
			}
			lines = append(lines, version)
		}
	}
	return lines, nil
}
