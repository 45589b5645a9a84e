package effect

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse reads a single effect definition from YAML.
func Parse(r io.Reader) (*Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("effect: read definition: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes decodes and validates an effect definition from YAML bytes.
func ParseBytes(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("effect: decode definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// ParseFile loads an effect definition from a YAML file on disk.
func ParseFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("effect: read %s: %w", path, err)
	}
	def, err := ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("effect: %s: %w", path, err)
	}
	return def, nil
}
