package paths

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"pymeta/internal/config"
)

// ConfigFileName is the project-level configuration file looked up in the
// working directory.
const ConfigFileName = "meta.yaml"

// ProjectPaths captures canonical locations for a project checkout.
type ProjectPaths struct {
	Root       string
	ConfigFile string
	LogFile    string
}

// Resolve determines the project root from workDir, or the current working
// directory when workDir is empty. configFlag overrides the config location.
func Resolve(workDir, configFlag string) (ProjectPaths, error) {
	var (
		root string
		err  error
	)

	if workDir != "" {
		root, err = filepath.Abs(workDir)
	} else {
		root, err = os.Getwd()
	}
	if err != nil {
		return ProjectPaths{}, fmt.Errorf("resolve project root: %w", err)
	}

	pp := ProjectPaths{
		Root:       root,
		ConfigFile: filepath.Join(root, ConfigFileName),
	}
	if strings.TrimSpace(configFlag) != "" {
		pp.ConfigFile = resolveProjectPath(root, configFlag)
	}
	return pp, nil
}

// ApplyConfig resolves config-relative locations against the project root.
func ApplyConfig(pp ProjectPaths, cfg config.Config) ProjectPaths {
	if file := strings.TrimSpace(cfg.Log.File); file != "" {
		pp.LogFile = resolveProjectPath(pp.Root, file)
	}
	return pp
}

func resolveProjectPath(root, value string) string {
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Join(root, value)
}

// Canonical returns p as an absolute, cleaned path with symlinks evaluated.
// Relative paths are taken against base. When p does not exist, symlinks
// are evaluated in its longest existing prefix and the missing tail is
// appended unchanged, so two spellings of the same missing directory still
// compare equal.
func Canonical(base, p string) (string, error) {
	if !filepath.IsAbs(p) {
		if base == "" {
			wd, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf("resolve working directory: %w", err)
			}
			base = wd
		}
		p = filepath.Join(base, p)
	}
	p = filepath.Clean(p)

	head, tail := p, ""
	for {
		resolved, err := filepath.EvalSymlinks(head)
		if err == nil {
			if tail == "" {
				return resolved, nil
			}
			return filepath.Join(resolved, tail), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("canonicalize %s: %w", p, err)
		}
		parent := filepath.Dir(head)
		if parent == head {
			return p, nil
		}
		tail = filepath.Join(filepath.Base(head), tail)
		head = parent
	}
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
