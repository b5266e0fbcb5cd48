package brief

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/blueprint/pkg/errors"
)

// Supported brief encodings.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// FormatFromPath infers the encoding from a file extension. Unknown
// extensions are treated as JSON.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode reads a brief in the given format from r and sanitizes it.
//
// Decode returns an INVALID_FORMAT error for unknown formats and an
// INVALID_BRIEF error when the input cannot be decoded. Decode does not
// close r.
func Decode(r io.Reader, format string) (*Brief, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	var b Brief
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		err = dec.Decode(&b)
	case FormatTOML:
		_, err = toml.Decode(string(data), &b)
	case FormatYAML:
		err = yaml.Unmarshal(data, &b)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported brief format: %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidBrief, err, "decode %s brief", format)
	}
	return b.Sanitize(), nil
}

// ReadFile reads and decodes the brief at path, inferring the format from
// the extension.
func ReadFile(path string) (*Brief, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "brief %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f, FormatFromPath(path))
}
