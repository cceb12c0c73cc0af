package spec

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/fencedraw/pkg/errors"
)

// Format is a spec file encoding.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot tell spec format from %q (use .toml or .json)", path)
}

// Sniff guesses the format of raw spec data: a leading '{' means JSON,
// anything else is read as TOML.
func Sniff(data []byte) Format {
	if t := bytes.TrimSpace(data); len(t) > 0 && t[0] == '{' {
		return FormatJSON
	}
	return FormatTOML
}

// Load reads and decodes a spec file.
func Load(path string) (*File, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	return LoadFormat(path, format)
}

// LoadFormat reads a spec file in an explicit format, ignoring its
// extension.
func LoadFormat(path string, format Format) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "spec file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return Parse(data, format)
}

// Parse decodes spec data in the given format.
func Parse(data []byte, format Format) (*File, error) {
	return Decode(bytes.NewReader(data), format)
}

// Decode reads a spec from r. Unknown keys are errors.
func Decode(r io.Reader, format Format) (*File, error) {
	var f File
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidSpec, "unknown key %q", undecoded[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported spec format %q", format)
	}
	return &f, nil
}
