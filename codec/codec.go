// Package codec reads and writes trees as JSON or YAML and validates trees
// that come from outside the engine.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brettbedarf/vfstree"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	JSONFormat Format = "json"
	YAMLFormat Format = "yaml"
)

var (
	ErrUnknownFormat = errors.New("unknown tree format")
	ErrInvalidTree   = errors.New("invalid tree")
)

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSONFormat, nil
	case ".yaml", ".yml":
		return YAMLFormat, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Marshal encodes tree. JSON output is indented for readability.
func Marshal(tree *vfstree.Node, format Format) ([]byte, error) {
	switch format {
	case JSONFormat:
		return json.MarshalIndent(tree, "", "  ")
	case YAMLFormat:
		return yaml.Marshal(tree)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Unmarshal decodes and validates a tree. See [Validate].
func Unmarshal(data []byte, format Format) (*vfstree.Node, error) {
	var tree vfstree.Node
	switch format {
	case JSONFormat:
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("failed to unmarshal json tree: %w", err)
		}
	case YAMLFormat:
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("failed to unmarshal yaml tree: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err := Validate(&tree); err != nil {
		return nil, err
	}
	return &tree, nil
}

// LoadFile reads a tree from path, choosing the format by extension
func LoadFile(path string) (*vfstree.Node, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data, format)
}

// SaveFile writes tree to path, choosing the format by extension
func SaveFile(path string, tree *vfstree.Node) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(tree, format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
