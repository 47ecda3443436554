package python

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const probeScript = `import json, sys
json.dump({
    "executable": sys.executable,
    "version": "%d.%d.%d" % tuple(sys.version_info[:3]),
    "prefix": sys.prefix,
    "path": sys.path,
}, sys.stdout)
`

func executableName(base string) string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(base), ".exe") {
		return base + ".exe"
	}
	return base
}

// Locate resolves an interpreter name or path to an executable on disk.
func Locate(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("no python interpreter configured")
	}
	path, err := exec.LookPath(executableName(name))
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH", name)
	}
	return path, nil
}

// Probe runs the interpreter at exe from workDir and decodes what it reports.
// Empty search path entries, which stand for the interpreter's working
// directory, are replaced by workDir.
func Probe(ctx context.Context, exe, workDir string) (Environment, error) {
	cmd := exec.CommandContext(ctx, exe, "-c", probeScript)
	cmd.Dir = workDir
	cmd.WaitDelay = time.Second
	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return Environment{}, fmt.Errorf("probe %s: %w", exe, ctx.Err())
		}
		return Environment{}, fmt.Errorf("probe %s: %w", exe, err)
	}

	var env Environment
	if err := json.Unmarshal(output, &env); err != nil {
		return Environment{}, fmt.Errorf("decode probe output of %s: %w", exe, err)
	}
	if env.Executable == "" {
		env.Executable = exe
	}
	for i, p := range env.Path {
		if p == "" {
			env.Path[i] = workDir
		} else if !filepath.IsAbs(p) && workDir != "" {
			env.Path[i] = filepath.Join(workDir, p)
		}
	}
	return env, nil
}
