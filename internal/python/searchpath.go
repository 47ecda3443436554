package python

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Options selects how search paths are discovered.
type Options struct {
	// Interpreter is probed when Static is empty.
	Interpreter string
	// Static lists site directories to use instead of probing. Each one is
	// expanded with the .pth files it contains.
	Static []string
	// PythonPath is a PYTHONPATH-style list prepended in static mode.
	PythonPath string
	WorkDir    string
	Timeout    time.Duration
}

// SearchPaths returns the directories to scan, in interpreter order.
func SearchPaths(ctx context.Context, opts Options) ([]SearchPath, error) {
	if len(opts.Static) > 0 {
		return staticPaths(opts), nil
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	exe, err := Locate(opts.Interpreter)
	if err != nil {
		return nil, err
	}
	env, err := Probe(ctx, exe, opts.WorkDir)
	if err != nil {
		return nil, err
	}

	out := make([]SearchPath, 0, len(env.Path))
	for _, p := range env.Path {
		out = append(out, SearchPath{Dir: p, Origin: OriginInterpreter})
	}
	return out, nil
}

func staticPaths(opts Options) []SearchPath {
	var out []SearchPath
	for _, p := range filepath.SplitList(opts.PythonPath) {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, SearchPath{Dir: absFrom(opts.WorkDir, p), Origin: OriginPythonPath})
	}
	for _, site := range opts.Static {
		site = absFrom(opts.WorkDir, strings.TrimSpace(site))
		out = append(out, SearchPath{Dir: site, Origin: OriginConfig})
		extra, err := ExpandPth(site)
		if err != nil {
			continue
		}
		for _, dir := range extra {
			out = append(out, SearchPath{Dir: dir, Origin: OriginPth})
		}
	}
	return out
}

func absFrom(base, p string) string {
	if filepath.IsAbs(p) || base == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// ExpandPth reads the .pth files of a site directory, in name order, and
// returns the existing directories they add. Comment lines and lines
// starting with "import" are skipped; relative entries are taken against
// site.
func ExpandPth(site string) ([]string, error) {
	entries, err := os.ReadDir(site)
	if err != nil {
		return nil, fmt.Errorf("read site dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".pth") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var dirs []string
	seen := map[string]bool{}
	for _, name := range names {
		lines, err := readPth(filepath.Join(site, name))
		if err != nil {
			continue
		}
		for _, line := range lines {
			dir := absFrom(site, line)
			if seen[dir] {
				continue
			}
			if info, err := os.Stat(dir); err != nil || !info.IsDir() {
				continue
			}
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs, nil
}

func readPth(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "import ") || strings.HasPrefix(line, "import\t") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
