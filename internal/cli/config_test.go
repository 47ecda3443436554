package cli

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestConfigShowAppliesOverrides(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "meta.yaml"), []byte("egginfo_path: lib\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	stdout, _, err := execute(t, "-C", root, "--python", "python3.12", "config", "show")
	if err != nil {
		t.Fatalf("config show returned error: %v", err)
	}
	for _, want := range []string{"egginfo_path: lib", "python: python3.12", "probe_timeout: 5s", "level: info"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestConfigShowCustomFile(t *testing.T) {
	root := t.TempDir()
	custom := filepath.Join(root, "conf", "alt.yaml")
	if err := os.MkdirAll(filepath.Dir(custom), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(custom, []byte("strict: true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	stdout, _, err := execute(t, "-C", root, "--config", "conf/alt.yaml", "config", "show")
	if err != nil {
		t.Fatalf("config show returned error: %v", err)
	}
	if !strings.Contains(stdout, "strict: true") {
		t.Fatalf("expected custom config, got:\n%s", stdout)
	}
}

func TestEnsureConfigFileExistsWritesDefaults(t *testing.T) {
	root := t.TempDir()
	opts := &rootOptions{workDir: root}
	cmd := newConfigEditCmd(opts)
	t.Setenv("EDITOR", "true")
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("config edit returned error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(root, "meta.yaml"))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), "egginfo_path: ./src") {
		t.Fatalf("expected default config, got:\n%s", data)
	}
}

func TestConfigEditValidatesResult(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script editor")
	}
	root := t.TempDir()
	editor := filepath.Join(root, "editor.sh")
	script := "#!/bin/sh\nprintf 'log:\\n  level: loud\\n' > \"$1\"\n"
	if err := os.WriteFile(editor, []byte(script), 0o755); err != nil {
		t.Fatalf("write editor: %v", err)
	}
	t.Setenv("EDITOR", editor)

	_, _, err := execute(t, "-C", root, "--config", "conf/meta.yaml", "config", "edit")
	if err == nil {
		t.Fatal("expected invalid edited config to be reported")
	}
	if !strings.Contains(err.Error(), filepath.Join(root, "conf", "meta.yaml")) || !strings.Contains(err.Error(), "loud") {
		t.Fatalf("unexpected error: %v", err)
	}
}
