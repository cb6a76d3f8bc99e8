package domain

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is a parsed YAML document. It keeps the underlying node tree so a
// load/mutate/serialize round trip preserves mapping key order and emits
// block style, which a struct-based unmarshal would not.
type Document struct {
	root *yaml.Node
}

func ParseDocument(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("document is empty")
	}
	return &Document{root: &root}, nil
}

// Root returns the top-level mapping of the document.
func (d *Document) Root() (*Mapping, bool) {
	return asMapping(d.root.Content[0])
}

// Serialize re-encodes the document with two-space indent. Flow-style
// compacting is undone so the output is always block style; scalar quoting
// styles are kept as parsed.
func (d *Document) Serialize() ([]byte, error) {
	forceBlockStyle(d.root)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(d.root); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// Mapping wraps a YAML mapping node with lookups that report absence instead
// of failing, so callers can chain optional descents.
type Mapping struct {
	node *yaml.Node
}

// Has reports whether the mapping contains the key, of any value kind.
func (m *Mapping) Has(key string) bool {
	_, ok := m.value(key)
	return ok
}

// Map returns the child mapping under key. Absent keys and non-mapping
// values both report false.
func (m *Mapping) Map(key string) (*Mapping, bool) {
	value, ok := m.value(key)
	if !ok {
		return nil, false
	}
	return asMapping(value)
}

// Seq returns the child sequence under key.
func (m *Mapping) Seq(key string) (*Sequence, bool) {
	value, ok := m.value(key)
	if !ok {
		return nil, false
	}
	if value.Kind != yaml.SequenceNode {
		return nil, false
	}
	return &Sequence{node: value}, true
}

// Scalar returns the scalar string value under key.
func (m *Mapping) Scalar(key string) (string, bool) {
	value, ok := m.value(key)
	if !ok || value.Kind != yaml.ScalarNode {
		return "", false
	}
	return value.Value, true
}

// Set replaces the value under key with the YAML encoding of value, keeping
// the key's position in the mapping. A missing key is appended at the end.
func (m *Mapping) Set(key string, value interface{}) error {
	var node yaml.Node
	if err := node.Encode(value); err != nil {
		return fmt.Errorf("failed to encode value for %q: %w", key, err)
	}

	for i := 0; i+1 < len(m.node.Content); i += 2 {
		if m.node.Content[i].Kind == yaml.ScalarNode && m.node.Content[i].Value == key {
			m.node.Content[i+1] = &node
			return nil
		}
	}

	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
	m.node.Content = append(m.node.Content, keyNode, &node)
	return nil
}

func (m *Mapping) value(key string) (*yaml.Node, bool) {
	for i := 0; i+1 < len(m.node.Content); i += 2 {
		if m.node.Content[i].Kind == yaml.ScalarNode && m.node.Content[i].Value == key {
			return m.node.Content[i+1], true
		}
	}
	return nil, false
}

// Sequence wraps a YAML sequence node.
type Sequence struct {
	node *yaml.Node
}

func (s *Sequence) Len() int {
	return len(s.node.Content)
}

// Map returns the mapping at index i.
func (s *Sequence) Map(i int) (*Mapping, bool) {
	if i < 0 || i >= len(s.node.Content) {
		return nil, false
	}
	return asMapping(s.node.Content[i])
}

func forceBlockStyle(node *yaml.Node) {
	switch node.Kind {
	case yaml.DocumentNode, yaml.MappingNode, yaml.SequenceNode:
		node.Style = 0
	}
	for _, child := range node.Content {
		forceBlockStyle(child)
	}
}

func asMapping(node *yaml.Node) (*Mapping, bool) {
	if node.Kind != yaml.MappingNode {
		return nil, false
	}
	return &Mapping{node: node}, true
}
