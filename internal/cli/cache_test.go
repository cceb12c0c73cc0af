package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	if dir, _ := cacheDir(); dir != filepath.Join("/tmp/xdg", appName) {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q", dir)
	}
}

func TestCacheCommands(t *testing.T) {
	xdg := t.TempDir()
	spec := writeSpec(t, "gate.toml", gateTOML)

	c := New(io.Discard, LogInfo)
	t.Setenv("XDG_CACHE_HOME", xdg)
	exec := func(args ...string) string {
		t.Helper()
		root := c.RootCommand()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(io.Discard)
		root.SetArgs(args)
		if err := root.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return out.String()
	}

	if got := strings.TrimSpace(exec("cache", "path")); got != filepath.Join(xdg, appName) {
		t.Errorf("cache path = %q", got)
	}

	exec("render", spec, "-o", filepath.Join(t.TempDir(), "g.svg"))
	if out := exec("cache", "stats"); !strings.Contains(out, "entries") {
		t.Errorf("cache stats output:\n%s", out)
	}
	entries, err := os.ReadDir(filepath.Join(xdg, appName))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) == 0 {
		t.Fatal("render should populate the cache")
	}

	exec("cache", "clear")
	entries, err = os.ReadDir(filepath.Join(xdg, appName))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir not empty after clear: %d entries", len(entries))
	}
}

func TestFormatBytes(t *testing.T) {
	tests := map[int64]string{
		0:       "0 B",
		1023:    "1023 B",
		1024:    "1.0 KiB",
		1536:    "1.5 KiB",
		1 << 20: "1.0 MiB",
	}
	for in, want := range tests {
		if got := formatBytes(in); got != want {
			t.Errorf("formatBytes(%d) = %q, want %q", in, got, want)
		}
	}
}
