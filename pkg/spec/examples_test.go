package spec

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/fencedraw/pkg/fence"
)

func TestExampleSpecs(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example specs")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			f, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			res, err := Resolve(f)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if c := fence.CheckStack(res.Spec); !c.Balanced() {
				t.Errorf("stack not balanced: sum %.2f, target %.2f", c.Sum, c.Target)
			}
		})
	}
}
