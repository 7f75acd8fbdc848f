// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package savedoc

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNotFound means a path names no value in the document.
	ErrNotFound = errors.New("path not found")

	// ErrTypeMismatch means a path crosses a node of the wrong kind,
	// such as indexing into a mapping.
	ErrTypeMismatch = errors.New("path crosses a node of the wrong kind")
)

// Document is a parsed save body.
type Document struct {
	root *yaml.Node
}

// Parse parses a plaintext save body. An empty body yields an empty
// mapping.
func Parse(body []byte) (*Document, error) {
	var file yaml.Node
	if err := yaml.Unmarshal(body, &file); err != nil {
		return nil, fmt.Errorf("parsing save document: %w", err)
	}
	if file.Kind == 0 {
		return &Document{root: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}, nil
	}
	if file.Kind != yaml.DocumentNode || len(file.Content) != 1 {
		return nil, fmt.Errorf("parsing save document: expected a single YAML document")
	}
	if file.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing save document: top level is not a mapping")
	}
	return &Document{root: file.Content[0]}, nil
}

// Marshal renders the document back to YAML.
func (d *Document) Marshal() ([]byte, error) {
	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)
	if err := encoder.Encode(d.root); err != nil {
		return nil, fmt.Errorf("encoding save document: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encoding save document: %w", err)
	}
	return buffer.Bytes(), nil
}

// Node returns the node at path.
func (d *Document) Node(path string) (*yaml.Node, error) {
	segments, err := parsePath(path)
	if err != nil {
		return nil, err
	}
	node := d.root
	for position, segment := range segments {
		next, err := child(node, segment)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", joinPath(segments[:position+1]), err)
		}
		node = next
	}
	return node, nil
}

// Get decodes the value at path into a Go value: scalars become
// string, int, float64, bool or nil; mappings and sequences become
// map[string]any and []any.
func (d *Document) Get(path string) (any, error) {
	node, err := d.Node(path)
	if err != nil {
		return nil, err
	}
	var value any
	if err := node.Decode(&value); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return value, nil
}

// Text returns the scalar at path as text.
func (d *Document) Text(path string) (string, error) {
	node, err := d.Node(path)
	if err != nil {
		return "", err
	}
	if node.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("%s: %w: not a scalar", path, ErrTypeMismatch)
	}
	return node.Value, nil
}

// Uint returns the scalar at path as an unsigned integer.
func (d *Document) Uint(path string) (uint64, error) {
	text, err := d.Text(path)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %q is not an unsigned integer", path, ErrTypeMismatch, text)
	}
	return value, nil
}

// Set stores value at path. Missing mapping keys along the way are
// created; a sequence index may name an existing element or the
// position just past the end, which appends. value may be any Go value
// yaml.v3 can encode, or a *yaml.Node used as is.
func (d *Document) Set(path string, value any) error {
	segments, err := parsePath(path)
	if err != nil {
		return err
	}
	replacement, err := toNode(value)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	node := d.root
	for position, segment := range segments {
		last := position == len(segments)-1
		var next *yaml.Node
		if last {
			next = replacement
		} else if segments[position+1].isIndex {
			next = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		} else {
			next = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		}

		existing, err := ensureChild(node, segment, next, last)
		if err != nil {
			return fmt.Errorf("%s: %w", joinPath(segments[:position+1]), err)
		}
		node = existing
	}
	return nil
}

// child returns the direct child of node named by segment.
func child(node *yaml.Node, segment segment) (*yaml.Node, error) {
	node = resolveAlias(node)
	if segment.isIndex {
		if node.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("%w: indexing a non-sequence", ErrTypeMismatch)
		}
		if segment.index >= len(node.Content) {
			return nil, fmt.Errorf("%w: index %d of %d", ErrNotFound, segment.index, len(node.Content))
		}
		return node.Content[segment.index], nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: key %q in a non-mapping", ErrTypeMismatch, segment.key)
	}
	for position := 0; position+1 < len(node.Content); position += 2 {
		if node.Content[position].Value == segment.key {
			return node.Content[position+1], nil
		}
	}
	return nil, ErrNotFound
}

// ensureChild returns the child of node named by segment, creating it
// from create when absent. When replace is set the child is replaced
// by create even if it exists.
func ensureChild(node *yaml.Node, segment segment, create *yaml.Node, replace bool) (*yaml.Node, error) {
	node = resolveAlias(node)
	if segment.isIndex {
		if node.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("%w: indexing a non-sequence", ErrTypeMismatch)
		}
		switch {
		case segment.index < len(node.Content):
			if replace {
				node.Content[segment.index] = create
			}
			return node.Content[segment.index], nil
		case segment.index == len(node.Content):
			node.Content = append(node.Content, create)
			return create, nil
		default:
			return nil, fmt.Errorf("%w: index %d past the end of %d", ErrNotFound, segment.index, len(node.Content))
		}
	}

	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: key %q in a non-mapping", ErrTypeMismatch, segment.key)
	}
	for position := 0; position+1 < len(node.Content); position += 2 {
		if node.Content[position].Value == segment.key {
			if replace {
				node.Content[position+1] = create
			}
			return node.Content[position+1], nil
		}
	}
	key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: segment.key}
	node.Content = append(node.Content, key, create)
	return create, nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func toNode(value any) (*yaml.Node, error) {
	if node, ok := value.(*yaml.Node); ok {
		if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
			return node.Content[0], nil
		}
		return node, nil
	}
	var node yaml.Node
	if err := node.Encode(value); err != nil {
		return nil, fmt.Errorf("encoding value: %w", err)
	}
	return &node, nil
}

// SerialRef is one item serial found in a document.
type SerialRef struct {
	Path   string `json:"path"`
	Serial string `json:"serial"`
}

// Serials returns every scalar stored under a "serial" key, in
// document order.
func (d *Document) Serials() []SerialRef {
	var found []SerialRef
	var walk func(node *yaml.Node, path []segment)
	walk = func(node *yaml.Node, path []segment) {
		switch node.Kind {
		case yaml.MappingNode:
			for position := 0; position+1 < len(node.Content); position += 2 {
				key, value := node.Content[position], node.Content[position+1]
				childPath := append(path[:len(path):len(path)], segment{key: key.Value})
				if key.Value == "serial" && value.Kind == yaml.ScalarNode && value.Value != "" {
					found = append(found, SerialRef{Path: joinPath(childPath), Serial: value.Value})
					continue
				}
				walk(value, childPath)
			}
		case yaml.SequenceNode:
			for index, element := range node.Content {
				walk(element, append(path[:len(path):len(path)], segment{index: index, isIndex: true}))
			}
		}
	}
	walk(d.root, nil)
	return found
}
