package dsl

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/TM9657/flowdoc/model"
)

// DocumentToYAML converts a Document struct to YAML bytes.
func DocumentToYAML(doc *model.Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

// DocumentToYAMLString converts a Document struct to a YAML string.
func DocumentToYAMLString(doc *model.Document) (string, error) {
	b, err := DocumentToYAML(doc)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

const (
	focusOpen  = "<focus_node>"
	focusClose = "</focus_node>"
)

// ParseFocusTags converts copilot prose into a document. The copilot
// references canvas nodes as <focus_node>NODE_ID</focus_node> inside plain
// text; each non-empty line becomes a paragraph whose children interleave
// text leaves and reference nodes. resolve maps a node id to its display
// name and may be nil (labels then fall back to the id). Tags that never
// close, or close on an empty id, stay in the text untouched.
func ParseFocusTags(text string, resolve func(nodeID string) string) *model.Document {
	doc := &model.Document{Name: "copilot"}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		doc.Nodes = append(doc.Nodes, parseFocusLine(line, resolve))
	}
	return doc
}

func parseFocusLine(line string, resolve func(string) string) *model.Node {
	var children []*model.Node
	rest := line
	for {
		start := strings.Index(rest, focusOpen)
		if start < 0 {
			break
		}
		end := strings.Index(rest[start:], focusClose)
		if end < 0 {
			break
		}
		id := rest[start+len(focusOpen) : start+end]
		if id == "" {
			break
		}
		if start > 0 {
			children = append(children, model.NewText(rest[:start], ""))
		}
		name := ""
		if resolve != nil {
			name = resolve(id)
		}
		// id is non-empty here, so the constructor cannot fail
		ref, err := model.NewReferenceNode(id, name)
		if err == nil {
			children = append(children, ref)
		}
		rest = rest[start+end+len(focusClose):]
	}
	if rest != "" {
		children = append(children, model.NewText(rest, ""))
	}
	return model.NewParagraph(children...)
}
