package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Node type discriminators. A node's Type determines which renderer owns it;
// unknown types are legal data and degrade to the default renderer.
const (
	TypeParagraph = "paragraph"
	TypeReference = "focus_node"
	TypeCodeBlock = "code_block"
	TypeCodeLine  = "code_line"
	TypeText      = "text"
)

// Document is a structured rich-text document attached to a flow: a copilot
// explanation, a run annotation, or a free-form note.
type Document struct {
	ID        uuid.UUID  `yaml:"id" json:"id"`
	Name      string     `yaml:"name" json:"name"`
	FlowName  string     `yaml:"flow_name,omitempty" json:"flow_name,omitempty"`
	Nodes     []*Node    `yaml:"nodes" json:"nodes"`
	CreatedAt time.Time  `yaml:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt *time.Time `yaml:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// Node is one element or leaf in a document tree. Elements carry Children;
// text leaves (Type == TypeText) carry Text plus an opaque highlight class.
// Attribute fields are sparse: which ones are meaningful depends on Type.
type Node struct {
	Type      string  `yaml:"type" json:"type"`
	Text      string  `yaml:"text,omitempty" json:"text,omitempty"`
	ClassName string  `yaml:"class_name,omitempty" json:"className,omitempty"`
	NodeID    string  `yaml:"node_id,omitempty" json:"nodeId,omitempty"`
	NodeName  string  `yaml:"node_name,omitempty" json:"nodeName,omitempty"`
	Language  string  `yaml:"language,omitempty" json:"language,omitempty"`
	Children  []*Node `yaml:"children,omitempty" json:"children,omitempty"`
}

// IsLeaf reports whether n is a text leaf.
func (n *Node) IsLeaf() bool {
	return n.Type == TypeText
}

// IsVoid reports whether nodes of type t are atomic: their content is not
// independently editable and their children are ignored for display.
func IsVoid(t string) bool {
	return t == TypeReference
}

// IsInline reports whether nodes of type t flow with surrounding text.
func IsInline(t string) bool {
	return t == TypeReference || t == TypeText
}

// NewText returns a text leaf carrying an opaque highlight class.
func NewText(text, className string) *Node {
	return &Node{Type: TypeText, Text: text, ClassName: className}
}

// NewParagraph returns a paragraph element wrapping the given children.
func NewParagraph(children ...*Node) *Node {
	return &Node{Type: TypeParagraph, Children: children}
}

// NewReferenceNode returns an inline reference to a workflow node. The empty
// text leaf child is required by the editing substrate's void-node contract;
// its content is ignored everywhere else.
func NewReferenceNode(nodeID, nodeName string) (*Node, error) {
	if nodeID == "" {
		return nil, fmt.Errorf("reference node requires a node id")
	}
	return &Node{
		Type:     TypeReference,
		NodeID:   nodeID,
		NodeName: nodeName,
		Children: []*Node{NewText("", "")},
	}, nil
}

// NewCodeLine returns a code line element wrapping the given token leaves.
func NewCodeLine(tokens ...*Node) *Node {
	return &Node{Type: TypeCodeLine, Children: tokens}
}

// NewCodeBlock returns a code block element with an optional language hint.
func NewCodeBlock(language string, lines ...*Node) *Node {
	return &Node{Type: TypeCodeBlock, Language: language, Children: lines}
}

// Walk visits n and its descendants depth-first, left-to-right. It stops
// early if fn returns false.
func Walk(n *Node, fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !Walk(c, fn) {
			return false
		}
	}
	return true
}

// LeafText concatenates the text of every leaf under n, depth-first,
// left-to-right, with no separator. It never mutates the tree.
func LeafText(n *Node) string {
	var sb strings.Builder
	Walk(n, func(c *Node) bool {
		if c.IsLeaf() {
			sb.WriteString(c.Text)
		}
		return true
	})
	return sb.String()
}

// CodeBlockText reconstructs the plain text of a code block: each line's
// leaf texts concatenated, lines joined with a single newline. A block with
// zero lines yields the empty string; no trailing newline is appended.
// The walk is pure, so calling it repeatedly yields identical strings.
func CodeBlockText(block *Node) string {
	if block == nil || len(block.Children) == 0 {
		return ""
	}
	lines := make([]string, 0, len(block.Children))
	for _, line := range block.Children {
		lines = append(lines, LeafText(line))
	}
	return strings.Join(lines, "\n")
}

// PlainText flattens a whole document: block nodes become lines, code
// blocks keep their internal line structure, references contribute their
// display label.
func PlainText(doc *Document) string {
	if doc == nil {
		return ""
	}
	var parts []string
	for _, n := range doc.Nodes {
		switch n.Type {
		case TypeCodeBlock:
			parts = append(parts, CodeBlockText(n))
		case TypeReference:
			parts = append(parts, n.Label())
		default:
			parts = append(parts, blockText(n))
		}
	}
	return strings.Join(parts, "\n")
}

func blockText(n *Node) string {
	if n.IsLeaf() {
		return n.Text
	}
	var sb strings.Builder
	for _, c := range n.Children {
		if c.Type == TypeReference {
			sb.WriteString(c.Label())
			continue
		}
		sb.WriteString(LeafText(c))
	}
	return sb.String()
}

// Label returns the display label of a reference node, falling back to the
// node id when no name is set. Display-only: an empty name is not an error.
func (n *Node) Label() string {
	if n.NodeName != "" {
		return n.NodeName
	}
	return n.NodeID
}

// References collects every reference node in document order.
func References(doc *Document) []*Node {
	if doc == nil {
		return nil
	}
	var refs []*Node
	for _, n := range doc.Nodes {
		Walk(n, func(c *Node) bool {
			if c.Type == TypeReference {
				refs = append(refs, c)
			}
			return true
		})
	}
	return refs
}

// HasVoidChild reports whether a void node carries the dummy leaf child the
// editing substrate requires.
func HasVoidChild(n *Node) bool {
	if !IsVoid(n.Type) {
		return true
	}
	return len(n.Children) == 1 && n.Children[0].IsLeaf()
}
