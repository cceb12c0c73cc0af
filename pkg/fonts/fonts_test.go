package fonts

import (
	"bytes"
	"testing"
)

func TestTTF(t *testing.T) {
	// TrueType files start with the 0x00010000 sfnt version.
	magic := []byte{0, 1, 0, 0}
	for name, data := range map[string][]byte{"regular": RegularTTF(), "bold": BoldTTF()} {
		if !bytes.HasPrefix(data, magic) {
			t.Errorf("%s: not a TrueType font", name)
		}
	}
	if bytes.Equal(RegularTTF(), BoldTTF()) {
		t.Error("regular and bold should differ")
	}
}
