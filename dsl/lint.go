package dsl

import (
	"fmt"

	"github.com/TM9657/flowdoc/model"
)

// Lint performs semantic checks a schema cannot express and returns a slice
// of warnings. A linted document may still render; these flag editor data
// that degrades display or external lookups.
func Lint(doc *model.Document) []error {
	if doc == nil {
		return []error{fmt.Errorf("document is nil")}
	}
	var errs []error
	known := map[string]bool{
		model.TypeParagraph: true,
		model.TypeReference: true,
		model.TypeCodeBlock: true,
		model.TypeCodeLine:  true,
		model.TypeText:      true,
	}
	for i, n := range doc.Nodes {
		idx := i
		model.Walk(n, func(c *model.Node) bool {
			switch {
			case c.Type == "":
				errs = append(errs, fmt.Errorf("node %d: missing type", idx))
			case !known[c.Type]:
				errs = append(errs, fmt.Errorf("node %d: unknown type %q (renders as default)", idx, c.Type))
			}
			switch c.Type {
			case model.TypeReference:
				if c.NodeID == "" {
					errs = append(errs, fmt.Errorf("node %d: reference without node id", idx))
				}
				if c.NodeName == "" {
					errs = append(errs, fmt.Errorf("node %d: reference %q has no display name, label falls back to id", idx, c.NodeID))
				}
				if !model.HasVoidChild(c) {
					errs = append(errs, fmt.Errorf("node %d: reference %q missing its empty leaf child", idx, c.NodeID))
				}
			case model.TypeCodeBlock:
				if len(c.Children) == 0 {
					errs = append(errs, fmt.Errorf("node %d: empty code block", idx))
				}
				for _, line := range c.Children {
					if line.Type != model.TypeCodeLine {
						errs = append(errs, fmt.Errorf("node %d: code block child %q is not a code line", idx, line.Type))
					}
				}
			}
			return true
		})
	}
	return errs
}
