// Package xmlnode reads the text of a node addressed by its path from the
// document root.
package xmlnode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

var (
	ErrNilDocument  = errors.New("document must not be nil")
	ErrNoRoot       = errors.New("document has no root element")
	ErrNodeNotFound = errors.New("node not found")
	ErrEmptyName    = errors.New("node name must not be empty")
)

// Read parses XML content into a document.
func Read(content string) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(content); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	return doc, nil
}

// ReadFile parses the XML file at path.
func ReadFile(path string) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("failed to read XML file %s: %w", path, err)
	}

	return doc, nil
}

// Value returns the trimmed text of the child called node of the element
// reached by following parents from the root element. With no parents the
// node is looked up directly under the root.
func Value(doc *etree.Document, parents []string, node string) (string, error) {
	if doc == nil {
		return "", ErrNilDocument
	}

	if strings.TrimSpace(node) == "" {
		return "", ErrEmptyName
	}

	current := doc.Root()
	if current == nil {
		return "", ErrNoRoot
	}

	path := "/" + current.Tag
	for _, parent := range parents {
		next := current.SelectElement(parent)
		if next == nil {
			return "", fmt.Errorf("%w: no node named %s under %s", ErrNodeNotFound, parent, path)
		}

		current = next
		path += "/" + parent
	}

	target := current.SelectElement(node)
	if target == nil {
		return "", fmt.Errorf("%w: no node named %s under %s", ErrNodeNotFound, node, path)
	}

	return strings.TrimSpace(target.Text()), nil
}

// ValuePath is Value with the parents and node given as one slash separated
// path relative to the root element, e.g. "server/port".
func ValuePath(doc *etree.Document, path string) (string, error) {
	parts := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(parts) == 0 {
		return "", ErrEmptyName
	}

	return Value(doc, parts[:len(parts)-1], parts[len(parts)-1])
}
