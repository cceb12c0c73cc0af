package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/fencedraw/pkg/errors"
)

const gateTOML = `
title = "Gate G-1"
width = 1200
height = 1800
frame_thickness = 40
panels = [520, 520, 520]
gaps = [50, 30, 30, 50]

[omega]
height = 60
`

const gateJSON = `{
  "title": "Gate G-1",
  "width": 1200,
  "height": 1800,
  "frame_thickness": 40,
  "panels": [520, 520, 520],
  "gaps": [50, 30, 30, 50]
}
`

// run executes the CLI with args and returns what commands wrote to their
// output stream.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeSpec(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	for _, name := range []string{"render", "inspect", "convert", "serve", "cache", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	spec := writeSpec(t, "gate.toml", gateTOML)
	dir := filepath.Dir(spec)

	if _, err := run(t, "render", spec); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "gate.svg"))
	if err != nil {
		t.Fatalf("default output: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("output is not SVG")
	}

	base := filepath.Join(dir, "out", "diagram")
	if _, err := run(t, "render", spec, "-f", "svg,json,pdf", "-o", base+".svg", "--unit", "cm"); err != nil {
		t.Fatalf("render multiple: %v", err)
	}
	for _, ext := range []string{"svg", "json", "pdf"} {
		if _, err := os.Stat(base + "." + ext); err != nil {
			t.Errorf("missing %s output: %v", ext, err)
		}
	}

	single := filepath.Join(dir, "custom.drawing")
	if _, err := run(t, "render", spec, "-f", "png", "-o", single); err != nil {
		t.Fatalf("render single: %v", err)
	}
	if _, err := os.Stat(single); err != nil {
		t.Errorf("single output should keep its name: %v", err)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	spec := writeSpec(t, "gate.toml", gateTOML)
	short := writeSpec(t, "short.toml", strings.Replace(gateTOML, "520, 520, 520", "500, 500, 500", 1))

	tests := []struct {
		name string
		args []string
	}{
		{"bad format", []string{"render", spec, "-f", "gif"}},
		{"missing file", []string{"render", filepath.Join(t.TempDir(), "nope.toml")}},
		{"strict", []string{"render", short, "--strict"}},
		{"bad output", []string{"render", spec, "-o", "dir/"}},
		{"no args", []string{"render"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestInspectCommand(t *testing.T) {
	spec := writeSpec(t, "gate.toml", gateTOML)

	out, err := run(t, "inspect", spec, "--primitives")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"Gate G-1", "1200.00 mm", "1860.00 mm", "balanced", "frame-top", "omega"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "inspect", spec, "--json", "--unit", "in")
	if err != nil {
		t.Fatalf("inspect --json: %v", err)
	}
	if !strings.Contains(out, `"unit": "in"`) {
		t.Errorf("inspect --json output:\n%s", out)
	}
}

func TestConvertValue(t *testing.T) {
	tests := []struct {
		value, from, to string
		want            string
		wantErr         bool
	}{
		{"12,5", "cm", "mm", "125.00 mm", false},
		{"25.4", "mm", "in", "1.00 in", false},
		{"1", "in", "cm", "2.54 cm", false},
		{"7", "", "", "7.00 mm", false},
		{"abc", "mm", "cm", "", true},
		{"1", "ft", "mm", "", true},
	}
	for _, tt := range tests {
		got, err := convertValue(tt.value, tt.from, tt.to)
		if (err != nil) != tt.wantErr {
			t.Errorf("convertValue(%q, %q, %q) error = %v", tt.value, tt.from, tt.to, err)
			continue
		}
		if got != tt.want {
			t.Errorf("convertValue(%q, %q, %q) = %q, want %q", tt.value, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestConvertCommand(t *testing.T) {
	out, err := run(t, "convert", "12,5", "--from", "cm", "--to", "in")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "4.92 in" {
		t.Errorf("convert output = %q", out)
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{"derived", "", []string{"svg"}, map[string]string{"svg": "specs/gate.svg"}},
		{"single verbatim", "out.img", []string{"png"}, map[string]string{"png": "out.img"}},
		{"base with ext", "out/g.svg", []string{"svg", "pdf"}, map[string]string{"svg": "out/g.svg", "pdf": "out/g.pdf"}},
		{"base without ext", "out/g", []string{"svg", "json"}, map[string]string{"svg": "out/g.svg", "json": "out/g.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths("specs/gate.toml", tt.output, tt.formats)
			for f, want := range tt.want {
				if got[f] != want {
					t.Errorf("path[%s] = %q, want %q", f, got[f], want)
				}
			}
		})
	}
}

func TestOutputPathsKeepInput(t *testing.T) {
	tests := []struct {
		input   string
		formats []string
		want    map[string]string
	}{
		{"gate.json", []string{"json"}, map[string]string{"json": "gate.diagram.json"}},
		{"specs/gate.json", []string{"svg", "json"}, map[string]string{"svg": "specs/gate.svg", "json": "specs/gate.diagram.json"}},
		{"gate.toml", []string{"json"}, map[string]string{"json": "gate.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := outputPaths(tt.input, "", tt.formats)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("outputPaths() mismatch (-want +got):\n%s", diff)
			}
			if err := checkOutputPaths(tt.input, got); err != nil {
				t.Errorf("derived paths rejected: %v", err)
			}
		})
	}

	if err := checkOutputPaths("gate.json", map[string]string{"json": "./gate.json"}); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("explicit output naming the input: err = %v, want INVALID_PATH", err)
	}
}

func TestRenderJSONSpecKeepsInput(t *testing.T) {
	spec := writeSpec(t, "gate.json", gateJSON)
	if _, err := run(t, "render", spec, "-f", "json", "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(spec)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != gateJSON {
		t.Error("input spec was overwritten")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(spec), "gate.diagram.json")); err != nil {
		t.Errorf("diagram output: %v", err)
	}

	if _, err := run(t, "render", spec, "-f", "json", "-o", spec); err == nil {
		t.Error("explicit output naming the input should fail")
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := run(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion should mention the binary name")
	}
}
