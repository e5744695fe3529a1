package graph

import (
	"fmt"
	"strings"

	"github.com/TM9657/flowdoc/model"
)

// Node is a vertex on the workflow canvas. The canvas itself lives outside
// this subsystem; documents only point into it by id.
type Node struct {
	ID    string
	Label string
}

// Edge is a directed connection between two nodes.
type Edge struct {
	From  string
	To    string
	Label string
}

// Graph is a directed graph composed of nodes and edges.
type Graph struct {
	Nodes []*Node
	Edges []*Edge
}

// Resolver maps workflow node ids to display labels. The reference renderer
// consults one when a document reference carries no name of its own.
type Resolver interface {
	Lookup(id string) (string, bool)
}

// Index is an in-memory Resolver over a fixed node set.
type Index struct {
	byID map[string]*Node
}

// NewIndex builds an Index from canvas nodes.
func NewIndex(nodes ...*Node) *Index {
	idx := &Index{byID: make(map[string]*Node, len(nodes))}
	for _, n := range nodes {
		idx.byID[n.ID] = n
	}
	return idx
}

// Lookup returns the label of the node with the given id.
func (i *Index) Lookup(id string) (string, bool) {
	n, ok := i.byID[id]
	if !ok {
		return "", false
	}
	return n.Label, true
}

// Renderer renders a Graph into a specific output format.
type Renderer interface {
	Render(g *Graph) (string, error)
}

// MermaidRenderer outputs Graphs in Mermaid flowchart syntax.
type MermaidRenderer struct{}

// NewReferenceGraph creates a Graph of the given document's workflow
// references: one vertex per document plus one per referenced canvas node,
// with an edge for each reference in document order.
func NewReferenceGraph(doc *model.Document) *Graph {
	g := &Graph{}
	if doc == nil {
		return g
	}
	refs := model.References(doc)
	if len(refs) == 0 {
		return g
	}
	docID := doc.Name
	if docID == "" {
		docID = "document"
	}
	g.Nodes = append(g.Nodes, &Node{ID: docID, Label: docID})
	seen := map[string]bool{}
	for _, ref := range refs {
		if !seen[ref.NodeID] {
			g.Nodes = append(g.Nodes, &Node{ID: ref.NodeID, Label: ref.Label()})
			seen[ref.NodeID] = true
		}
		g.Edges = append(g.Edges, &Edge{From: docID, To: ref.NodeID, Label: "references"})
	}
	return g
}

// Render renders the graph using Mermaid syntax.
func (r *MermaidRenderer) Render(g *Graph) (string, error) {
	if len(g.Nodes) == 0 {
		return "", nil
	}
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	// Output node definitions
	for _, node := range g.Nodes {
		sb.WriteString(fmt.Sprintf("%s[%s]\n", node.ID, node.Label))
	}
	// Output edges
	for _, edge := range g.Edges {
		if edge.Label != "" {
			sb.WriteString(fmt.Sprintf("%s -->|%s| %s\n", edge.From, edge.Label, edge.To))
		} else {
			sb.WriteString(fmt.Sprintf("%s --> %s\n", edge.From, edge.To))
		}
	}
	return sb.String(), nil
}

// ExportMermaid is a helper to create a Mermaid diagram of a document's
// workflow references.
func ExportMermaid(doc *model.Document) (string, error) {
	g := NewReferenceGraph(doc)
	renderer := &MermaidRenderer{}
	return renderer.Render(g)
}
