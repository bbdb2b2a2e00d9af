package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSettingsFile is the conventional location of the untracked override file.
const DefaultSettingsFile = "settings/local.yaml"

var (
	// ErrNotMapping is returned when an override document is not a mapping or
	// a recognised setting holds a non-scalar value.
	ErrNotMapping = errors.New("settings document must map setting names to scalar values")

	// ErrTrailingData is returned when a JSON document is followed by more input.
	ErrTrailingData = errors.New("unexpected data after JSON document")
)

// Source supplies override values by setting name.
type Source interface {
	Lookup(name string) (string, bool)
}

// MapSource is a Source backed by a plain map.
type MapSource map[string]string

// Lookup implements Source.
func (m MapSource) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// ReadFile reads an override file. Files ending in .json are decoded as JSON,
// anything else as YAML. Null values are treated as absent.
func ReadFile(path string) (MapSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Parse(data, strings.EqualFold(filepath.Ext(path), ".json"))
}

// Parse decodes override data held in memory.
func Parse(data []byte, isJSON bool) (MapSource, error) {
	if isJSON {
		src, err := parseJSON(data)
		if err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
		return src, nil
	}
	src, err := parseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	return src, nil
}

func parseYAML(data []byte) (MapSource, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	src := MapSource{}
	// An empty document has no content at all.
	if len(doc.Content) == 0 {
		return src, nil
	}

	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, ErrNotMapping
	}
	if err := collectYAML(root, src); err != nil {
		return nil, err
	}
	return src, nil
}

// collectYAML copies recognised settings from a mapping node into src.
// Merged mappings are applied first so explicit keys take precedence.
func collectYAML(mapping *yaml.Node, src MapSource) error {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], resolveAlias(mapping.Content[i+1])
		if key.ShortTag() != "!!merge" {
			continue
		}
		merged := []*yaml.Node{value}
		if value.Kind == yaml.SequenceNode {
			merged = value.Content
		}
		// Earlier entries of a merge sequence win over later ones.
		for j := len(merged) - 1; j >= 0; j-- {
			if m := resolveAlias(merged[j]); m.Kind == yaml.MappingNode {
				if err := collectYAML(m, src); err != nil {
					return err
				}
			}
		}
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], resolveAlias(mapping.Content[i+1])
		if key.Kind != yaml.ScalarNode || key.ShortTag() == "!!merge" || !isSettingName(key.Value) {
			continue
		}
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("%w: %s at line %d", ErrNotMapping, key.Value, key.Line)
		}
		if value.ShortTag() == "!!null" {
			delete(src, key.Value)
			continue
		}
		src[key.Value] = value.Value
	}
	return nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isSettingName(name string) bool {
	return slices.Contains(Names(), name)
}

func parseJSON(data []byte) (MapSource, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	if raw == nil {
		return nil, ErrNotMapping
	}

	src := make(MapSource, len(raw))
	for name, value := range raw {
		if !isSettingName(name) {
			continue
		}
		switch v := value.(type) {
		case nil:
		case string:
			src[name] = v
		case json.Number:
			src[name] = v.String()
		case bool:
			src[name] = strconv.FormatBool(v)
		default:
			return nil, fmt.Errorf("%w: key %q", ErrNotMapping, name)
		}
	}
	return src, nil
}
