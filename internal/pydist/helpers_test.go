package pydist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeDistInfo(t *testing.T, dir, name, version string) string {
	t.Helper()
	meta := filepath.Join(dir, fmt.Sprintf("%s-%s.dist-info", name, version))
	require.NoError(t, os.MkdirAll(meta, 0o755))
	body := fmt.Sprintf("Metadata-Version: 2.1\nName: %s\nVersion: %s\nSummary: test\n\nName: not-a-header\n", name, version)
	require.NoError(t, os.WriteFile(filepath.Join(meta, "METADATA"), []byte(body), 0o644))
	return meta
}

func writeEggInfo(t *testing.T, dir, name, version string) string {
	t.Helper()
	meta := filepath.Join(dir, name+".egg-info")
	require.NoError(t, os.MkdirAll(meta, 0o755))
	body := fmt.Sprintf("Metadata-Version: 2.1\nName: %s\nVersion: %s\n", name, version)
	require.NoError(t, os.WriteFile(filepath.Join(meta, "PKG-INFO"), []byte(body), 0o644))
	return meta
}

// staticIndex serves a fixed list, for tests that only exercise matching.
type staticIndex []Distribution

func (s staticIndex) Distributions(context.Context) ([]Distribution, error) {
	return s, nil
}

type failingIndex struct{ err error }

func (f failingIndex) Distributions(context.Context) ([]Distribution, error) {
	return nil, f.err
}
