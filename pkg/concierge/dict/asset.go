package dict

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Asset is the on-disk dictionary format. A bare list of entries is also
// accepted by the parsers.
type Asset struct {
	Version string  `json:"version" yaml:"version"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// ParseJSON decodes a JSON dictionary asset, either an Asset object or a
// bare entry array.
func ParseJSON(data []byte) (*Asset, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var entries []Entry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, err
		}
		return &Asset{Entries: entries}, nil
	}
	var asset Asset
	if err := json.Unmarshal(trimmed, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// ParseYAML decodes a YAML dictionary asset.
//
// Expected format:
//
//	version: "2024-06"
//	entries:
//	  - keyword: mui ne
//	    fragments: [mui, ne]
//	    type: phrase
func ParseYAML(data []byte) (*Asset, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		var entries []Entry
		if err := node.Content[0].Decode(&entries); err != nil {
			return nil, err
		}
		return &Asset{Entries: entries}, nil
	}
	var asset Asset
	if len(node.Content) > 0 {
		if err := node.Content[0].Decode(&asset); err != nil {
			return nil, err
		}
	}
	return &asset, nil
}

// Load reads a dictionary asset from path and builds an Index. Files ending
// in .yaml or .yml are parsed as YAML, everything else as JSON.
func Load(path string) (*Index, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	var asset *Asset
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		asset, err = ParseYAML(data)
	default:
		asset, err = ParseJSON(data)
	}
	if err != nil {
		return nil, "", fmt.Errorf("parse %s: %w", path, err)
	}

	idx, err := New(asset.Entries)
	if err != nil {
		return nil, "", fmt.Errorf("build index: %w", err)
	}
	return idx, asset.Version, nil
}
