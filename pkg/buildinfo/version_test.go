package buildinfo

import (
	"strings"
	"testing"
)

func TestStringAndTemplate(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	defer func() { Version, Commit, Date = oldV, oldC, oldD }()
	Version, Commit, Date = "v1.2.3", "abc123", "2026-01-02"

	if got := Get(); got != (Info{Version: "v1.2.3", Commit: "abc123", Date: "2026-01-02"}) {
		t.Errorf("Get() = %+v", got)
	}
	for _, s := range []string{String(), Template()} {
		for _, want := range []string{"v1.2.3", "abc123", "2026-01-02"} {
			if !strings.Contains(s, want) {
				t.Errorf("%q missing %q", s, want)
			}
		}
	}
	if !strings.HasPrefix(Template(), "{{.Name}} version") {
		t.Errorf("Template() = %q", Template())
	}
}
