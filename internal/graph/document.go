package graph

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when a graph document declares no nodes.
var ErrEmptyDocument = errors.New("graph document has no nodes")

// Document is the on-disk form of a graph. JSON documents are accepted too,
// since JSON is valid YAML.
//
//	directed: true
//	nodes:
//	  - id: a
//	    attributes: {kind: person}
//	edges:
//	  - source: a
//	    target: b
//	    attributes: {relation: knows}
type Document struct {
	Directed bool           `yaml:"directed" json:"directed"`
	Nodes    []NodeDocument `yaml:"nodes" json:"nodes"`
	Edges    []EdgeDocument `yaml:"edges" json:"edges"`
}

// NodeDocument describes one node of a Document.
type NodeDocument struct {
	ID         string         `yaml:"id" json:"id"`
	Attributes map[string]any `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// EdgeDocument describes one edge of a Document.
type EdgeDocument struct {
	Source     string         `yaml:"source" json:"source"`
	Target     string         `yaml:"target" json:"target"`
	Attributes map[string]any `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// Build converts the document into a Graph.
func (d *Document) Build() (*Graph, error) {
	g := New(d.Directed)

	for i, n := range d.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node %d: id is required", i)
		}

		g.AddNode(n.ID, n.Attributes)
	}

	for i, e := range d.Edges {
		if e.Source == "" || e.Target == "" {
			return nil, fmt.Errorf("edge %d: source and target are required", i)
		}

		g.AddEdge(e.Source, e.Target, e.Attributes)
	}

	if g.Len() == 0 {
		return nil, ErrEmptyDocument
	}

	return g, nil
}

// Decode reads a YAML or JSON document from r and builds it.
func Decode(r io.Reader) (*Graph, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding graph document: %w", err)
	}

	return doc.Build()
}

// LoadFile reads a graph document from path.
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path) //nolint:gosec // path is supplied by the operator.
	if err != nil {
		return nil, fmt.Errorf("opening graph file: %w", err)
	}
	defer f.Close()

	g, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return g, nil
}

// ToDocument converts an Accessor back into its document form.
func ToDocument(a Accessor) *Document {
	doc := &Document{Directed: a.Directed()}

	for _, id := range a.Nodes() {
		doc.Nodes = append(doc.Nodes, NodeDocument{ID: id, Attributes: a.NodeAttributes(id)})
	}

	for _, e := range a.Edges() {
		doc.Edges = append(doc.Edges, EdgeDocument{
			Source:     e[0],
			Target:     e[1],
			Attributes: a.EdgeAttributes(e[0], e[1]),
		})
	}

	return doc
}
