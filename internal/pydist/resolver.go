package pydist

import (
	"context"
	"fmt"
	"log/slog"

	"pymeta/internal/logx"
	"pymeta/internal/paths"
)

// Resolver answers which distribution is installed from a directory, and
// which version a distribution carries. It keeps no state between calls.
type Resolver struct {
	Index Index
	// WorkDir anchors relative paths passed to Resolve and Name.
	WorkDir string
	Logger  *slog.Logger
}

// NewResolver returns a resolver over idx. A nil logger discards output.
func NewResolver(idx Index, workDir string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = logx.Discard()
	}
	return &Resolver{Index: idx, WorkDir: workDir, Logger: logger}
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return logx.Discard()
	}
	return r.Logger
}

// Resolve returns the single distribution whose canonical install location
// equals the canonical form of path. Zero or several matches yield a
// *NotFoundError listing the matched names.
func (r *Resolver) Resolve(ctx context.Context, path string) (Distribution, error) {
	target, err := paths.Canonical(r.WorkDir, path)
	if err != nil {
		return Distribution{}, err
	}

	dists, err := r.Index.Distributions(ctx)
	if err != nil {
		return Distribution{}, fmt.Errorf("list distributions: %w", err)
	}

	log := r.logger()
	var matches []Distribution
	for _, dist := range dists {
		location, err := paths.Canonical(r.WorkDir, dist.Location)
		if err != nil {
			log.Debug("skip distribution", "name", dist.Name, "location", dist.Location, "error", err)
			continue
		}
		log.Debug("candidate", "name", dist.Name, "location", location)
		if location == target {
			matches = append(matches, dist)
		}
	}

	if len(matches) == 1 {
		return matches[0], nil
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Name
	}
	return Distribution{}, &NotFoundError{Path: target, Candidates: names}
}

// Name returns the name of the single distribution installed at path.
func (r *Resolver) Name(ctx context.Context, path string) (string, error) {
	dist, err := r.Resolve(ctx, path)
	if err != nil {
		return "", err
	}
	return dist.Name, nil
}

// Lookup returns the first distribution, in search order, whose normalized
// name equals name.
func (r *Resolver) Lookup(ctx context.Context, name string) (Distribution, error) {
	dists, err := r.Index.Distributions(ctx)
	if err != nil {
		return Distribution{}, fmt.Errorf("list distributions: %w", err)
	}

	want := NormalizeName(name)
	for _, dist := range dists {
		if NormalizeName(dist.Name) == want {
			return dist, nil
		}
	}
	return Distribution{}, &PackageNotFoundError{Name: name}
}

// Version returns the installed version of the named distribution.
func (r *Resolver) Version(ctx context.Context, name string) (string, error) {
	dist, err := r.Lookup(ctx, name)
	if err != nil {
		return "", err
	}
	return dist.Version, nil
}
