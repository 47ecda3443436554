package pydist

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"pymeta/internal/paths"
)

// PathIndex scans directories the way an interpreter walks its search path:
// every *.dist-info directory and every *.egg-info directory or file directly
// inside a search path is one distribution.
type PathIndex struct {
	Paths []string
	// WorkDir anchors relative search paths. Empty means the process
	// working directory.
	WorkDir string
}

// Distributions implements Index. Search paths that do not exist or cannot
// be read are skipped; a path listed twice is scanned once.
func (p PathIndex) Distributions(ctx context.Context) ([]Distribution, error) {
	var (
		dists []Distribution
		seen  = make(map[string]bool, len(p.Paths))
	)

	for _, dir := range p.Paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		canonical, err := paths.Canonical(p.WorkDir, dir)
		if err != nil {
			continue
		}
		if seen[canonical] {
			continue
		}
		seen[canonical] = true

		found, err := scanDir(canonical)
		if err != nil {
			continue
		}
		dists = append(dists, found...)
	}
	return dists, nil
}

func scanDir(dir string) ([]Distribution, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var dists []Distribution
	for _, entry := range entries {
		kind, ok := entryKind(entry.Name())
		if !ok {
			continue
		}
		metaPath := filepath.Join(dir, entry.Name())
		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(metaPath)
			if err != nil {
				continue
			}
			isDir = info.IsDir()
		}
		if kind == KindDistInfo && !isDir {
			continue
		}

		dist, err := readDistribution(dir, metaPath, entry.Name(), kind, isDir)
		if err != nil {
			continue
		}
		dists = append(dists, dist)
	}
	return dists, nil
}

func entryKind(name string) (Kind, bool) {
	switch {
	case strings.HasSuffix(name, "."+string(KindDistInfo)):
		return KindDistInfo, true
	case strings.HasSuffix(name, "."+string(KindEggInfo)):
		return KindEggInfo, true
	default:
		return "", false
	}
}

func readDistribution(dir, metaPath, entry string, kind Kind, isDir bool) (Distribution, error) {
	dist := Distribution{
		Location:     dir,
		MetadataPath: metaPath,
		Kind:         kind,
	}

	headerFile := metaPath
	if isDir {
		headerFile = filepath.Join(metaPath, metadataFile(kind))
	}
	headers, err := readHeaders(headerFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Distribution{}, err
	}

	fallbackName, fallbackVersion := splitEntryName(entry, kind)
	dist.Name = firstNonEmpty(headers["name"], fallbackName)
	dist.Version = firstNonEmpty(headers["version"], fallbackVersion)
	if dist.Name == "" {
		return Distribution{}, fmt.Errorf("%s: no distribution name", metaPath)
	}
	return dist, nil
}

func metadataFile(kind Kind) string {
	if kind == KindDistInfo {
		return "METADATA"
	}
	return "PKG-INFO"
}

// readHeaders returns the Name and Version headers of a core metadata file,
// keyed lower-case. Reading stops at the first blank line, where the long
// description body begins.
func readHeaders(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	headers := make(map[string]string, 2)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		if line[0] == ' ' || line[0] == '\t' {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key != "name" && key != "version" {
			continue
		}
		if _, dup := headers[key]; !dup {
			headers[key] = strings.TrimSpace(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return headers, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
