package pydist

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"pymeta/internal/paths"
)

func TestPathIndexFindsBothLayouts(t *testing.T) {
	root := t.TempDir()
	site := filepath.Join(root, "site-packages")
	src := filepath.Join(root, "src")
	writeDistInfo(t, site, "requests", "2.31.0")
	writeEggInfo(t, src, "demo", "1.2.3")
	require.NoError(t, os.WriteFile(filepath.Join(site, "README.txt"), []byte("x"), 0o644))

	dists, err := PathIndex{Paths: []string{site, src}}.Distributions(context.Background())
	require.NoError(t, err)
	require.Len(t, dists, 2)

	canonicalSite, err := paths.Canonical("", site)
	require.NoError(t, err)
	canonicalSrc, err := paths.Canonical("", src)
	require.NoError(t, err)

	require.Equal(t, "requests", dists[0].Name)
	require.Equal(t, "2.31.0", dists[0].Version)
	require.Equal(t, KindDistInfo, dists[0].Kind)
	require.Equal(t, canonicalSite, dists[0].Location)

	require.Equal(t, "demo", dists[1].Name)
	require.Equal(t, "1.2.3", dists[1].Version)
	require.Equal(t, KindEggInfo, dists[1].Kind)
	require.Equal(t, canonicalSrc, dists[1].Location)
}

func TestPathIndexEggInfoFile(t *testing.T) {
	site := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(site, "legacy-0.9-py3.11.egg-info"),
		[]byte("Metadata-Version: 1.0\nName: legacy\nVersion: 0.9\n"),
		0o644,
	))

	dists, err := PathIndex{Paths: []string{site}}.Distributions(context.Background())
	require.NoError(t, err)
	require.Len(t, dists, 1)
	require.Equal(t, "legacy", dists[0].Name)
	require.Equal(t, "0.9", dists[0].Version)
}

func TestPathIndexFallsBackToEntryName(t *testing.T) {
	site := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(site, "bare-3.0.dist-info"), 0o755))

	dists, err := PathIndex{Paths: []string{site}}.Distributions(context.Background())
	require.NoError(t, err)
	require.Len(t, dists, 1)
	require.Equal(t, "bare", dists[0].Name)
	require.Equal(t, "3.0", dists[0].Version)
}

func TestPathIndexSkipsMissingAndDuplicatePaths(t *testing.T) {
	site := t.TempDir()
	writeDistInfo(t, site, "once", "1.0")

	idx := PathIndex{Paths: []string{filepath.Join(site, "nope"), site, site + "/."}}
	dists, err := idx.Distributions(context.Background())
	require.NoError(t, err)
	require.Len(t, dists, 1)
}

func TestPathIndexRelativeToWorkDir(t *testing.T) {
	root := t.TempDir()
	writeEggInfo(t, filepath.Join(root, "src"), "demo", "1.0")

	dists, err := PathIndex{Paths: []string{"src"}, WorkDir: root}.Distributions(context.Background())
	require.NoError(t, err)
	require.Len(t, dists, 1)
	require.Equal(t, "demo", dists[0].Name)
}

func TestPathIndexHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := PathIndex{Paths: []string{t.TempDir()}}.Distributions(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestReadHeadersStopsAtBody(t *testing.T) {
	site := t.TempDir()
	meta := writeDistInfo(t, site, "demo", "1.2.3")

	headers, err := readHeaders(filepath.Join(meta, "METADATA"))
	require.NoError(t, err)
	require.Equal(t, map[string]string{"name": "demo", "version": "1.2.3"}, headers)
}

func TestSplitEntryName(t *testing.T) {
	tests := []struct {
		entry      string
		kind       Kind
		name, vers string
	}{
		{"demo-1.2.3.dist-info", KindDistInfo, "demo", "1.2.3"},
		{"demo.egg-info", KindEggInfo, "demo", ""},
		{"legacy-0.9-py3.11.egg-info", KindEggInfo, "legacy", "0.9"},
	}
	for _, tt := range tests {
		name, vers := splitEntryName(tt.entry, tt.kind)
		require.Equal(t, tt.name, name, tt.entry)
		require.Equal(t, tt.vers, vers, tt.entry)
	}
}

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "foo-bar-baz", NormalizeName("Foo_Bar..baz"))
	require.Equal(t, NormalizeName("zope.interface"), NormalizeName("Zope-Interface"))
}
