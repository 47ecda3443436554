package pydist

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the metadata layout a distribution was found through.
type Kind string

const (
	KindDistInfo Kind = "dist-info"
	KindEggInfo  Kind = "egg-info"
)

// Distribution is one installed package as recorded in a search path.
type Distribution struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	// Location is the canonical directory the distribution is installed
	// into: the parent of its metadata entry.
	Location     string `json:"location"`
	MetadataPath string `json:"metadata_path"`
	Kind         Kind   `json:"kind"`
}

// Index lists the distributions visible in an environment. Implementations
// are read-only and return distributions in search-path order.
type Index interface {
	Distributions(ctx context.Context) ([]Distribution, error)
}

var (
	// ErrDistributionNotFound matches NotFoundError.
	ErrDistributionNotFound = errors.New("distribution not found")
	// ErrPackageNotFound matches PackageNotFoundError.
	ErrPackageNotFound = errors.New("package not found")
)

// NotFoundError reports that zero or more than one distribution is installed
// at Path. Candidates holds the names that matched.
type NotFoundError struct {
	Path       string
	Candidates []string
}

func (e *NotFoundError) Error() string {
	quoted := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return fmt.Sprintf("could not determine distribution name for %s; distributions: [%s]", e.Path, strings.Join(quoted, ", "))
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrDistributionNotFound
}

// PackageNotFoundError reports that no installed distribution carries Name.
type PackageNotFoundError struct {
	Name string
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("no package metadata was found for %s", e.Name)
}

func (e *PackageNotFoundError) Is(target error) bool {
	return target == ErrPackageNotFound
}
