package placement

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ReadFile loads a placement file. JSON is the default format; files ending
// in .yaml, .yml or .toml are decoded accordingly.
func ReadFile(path string) (Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("read placement: %w", err)
	}
	return Unmarshal(filepath.Ext(path), data)
}

// Unmarshal decodes data in the format named by the file extension ext.
func Unmarshal(ext string, data []byte) (Input, error) {
	var in Input
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&in); err != nil {
			return Input{}, fmt.Errorf("%w: decode placement: %v", ErrMalformedInput, err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			return Input{}, fmt.Errorf("%w: decode placement: %v", ErrMalformedInput, err)
		}
	default:
		return Decode(bytes.NewReader(data))
	}
	return in, nil
}
