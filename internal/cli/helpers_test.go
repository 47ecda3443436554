package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// project lays out a checkout with a develop-installed distribution under
// src/ and an unrelated site directory.
type project struct {
	root string
	site string
}

func newProject(t *testing.T) project {
	t.Helper()
	root := t.TempDir()
	p := project{root: root, site: filepath.Join(root, "venv", "site-packages")}
	if err := os.MkdirAll(p.site, 0o755); err != nil {
		t.Fatalf("mkdir site: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(root, "src"), 0o755); err != nil {
		t.Fatalf("mkdir src: %v", err)
	}
	writeMetadata(t, filepath.Join(p.site, "requests-2.31.0.dist-info"), "METADATA", "requests", "2.31.0")
	return p
}

func (p project) installSrc(t *testing.T, name, version string) {
	t.Helper()
	writeMetadata(t, filepath.Join(p.root, "src", name+".egg-info"), "PKG-INFO", name, version)
}

func (p project) writeConfig(t *testing.T, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(p.root, "meta.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// run executes meta inside the project with both search dirs configured.
func (p project) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	base := []string{"-C", p.root, "--search-path", p.site, "--search-path", "src"}
	return execute(t, append(base, args...)...)
}

func writeMetadata(t *testing.T, dir, file, name, version string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	body := fmt.Sprintf("Metadata-Version: 2.1\nName: %s\nVersion: %s\n", name, version)
	if err := os.WriteFile(filepath.Join(dir, file), []byte(body), 0o644); err != nil {
		t.Fatalf("write metadata: %v", err)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("PYTHONPATH", "")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := Run(context.Background(), args, stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func countErrors(log string) int {
	return strings.Count(log, "level=ERROR")
}
