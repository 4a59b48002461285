package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a flat YAML mapping that keeps keys in file order. The zero value is an empty Document.
// Values stay as YAML nodes so the schemas can report the original type of a bad value.
type Document struct {
	keys  []string
	nodes map[string]*yaml.Node
}

// NewDocument returns an empty Document.
func NewDocument() *Document {
	return &Document{nodes: make(map[string]*yaml.Node)}
}

// DocumentFromMap builds a Document from plain Go values. Keys are inserted in sorted order.
func DocumentFromMap(values map[string]any) (*Document, error) {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	doc := NewDocument()
	for _, key := range keys {
		if err := doc.Set(key, values[key]); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// ParseDocument parses data as a flat YAML mapping. Empty input yields an empty Document.
func ParseDocument(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	doc := NewDocument()
	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return doc, nil
		}
		return nil, &ParseError{Err: err}
	}

	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case err == nil:
		return nil, &ParseError{Err: errors.New("multiple documents are not supported")}
	case !errors.Is(err, io.EOF):
		return nil, &ParseError{Err: err}
	}

	if len(root.Content) == 0 {
		return doc, nil
	}

	mapping := resolveAlias(root.Content[0])
	if mapping.Kind == yaml.ScalarNode && mapping.ShortTag() == "!!null" {
		return doc, nil
	}
	if mapping.Kind != yaml.MappingNode {
		return nil, &ParseError{Err: fmt.Errorf("line %d: top level must be a mapping, got %s", mapping.Line, describeNode(mapping))}
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], mapping.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, &ParseError{Err: fmt.Errorf("line %d: mapping keys must be scalars, got %s", key.Line, describeNode(key))}
		}
		if _, exists := doc.nodes[key.Value]; exists {
			return nil, &ParseError{Err: fmt.Errorf("line %d: duplicate key %q", key.Line, key.Value)}
		}
		doc.keys = append(doc.keys, key.Value)
		doc.nodes[key.Value] = resolveAlias(value)
	}

	return doc, nil
}

// Set stores value under key, keeping the position of an existing key.
// Values that are not already *yaml.Node are encoded first.
func (d *Document) Set(key string, value any) error {
	node, ok := value.(*yaml.Node)
	if !ok {
		node = &yaml.Node{}
		if err := node.Encode(value); err != nil {
			return fmt.Errorf("encode %q: %w", key, err)
		}
	}

	if d.nodes == nil {
		d.nodes = make(map[string]*yaml.Node)
	}
	if _, exists := d.nodes[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.nodes[key] = node
	return nil
}

// Delete removes key if present.
func (d *Document) Delete(key string) {
	if _, exists := d.nodes[key]; !exists {
		return
	}
	delete(d.nodes, key)
	if i := slices.Index(d.keys, key); i >= 0 {
		d.keys = slices.Delete(d.keys, i, i+1)
	}
}

// Lookup returns the node stored under key.
func (d *Document) Lookup(key string) (*yaml.Node, bool) {
	if d == nil {
		return nil, false
	}
	node, ok := d.nodes[key]
	return node, ok
}

// Keys returns the keys in insertion order.
func (d *Document) Keys() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of keys.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func describeNode(node *yaml.Node) string {
	switch node.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!null":
			return "null"
		case "!!str":
			return fmt.Sprintf("string %q", node.Value)
		default:
			return fmt.Sprintf("%s %s", strings.TrimPrefix(node.ShortTag(), "!!"), node.Value)
		}
	default:
		return "unsupported node"
	}
}
