package render

import (
	"strings"

	"github.com/TM9657/flowdoc/model"
)

func renderParagraph(r *HTMLRenderer, sb *strings.Builder, n *model.Node) {
	sb.WriteString("<p>")
	r.renderChildren(sb, n)
	sb.WriteString("</p>")
}

// renderText emits a token leaf. The highlight class comes precomputed from
// the tokenizer upstream and is passed through verbatim (attribute-escaped
// only, never interpreted).
func renderText(r *HTMLRenderer, sb *strings.Builder, n *model.Node) {
	if n.ClassName == "" {
		sb.WriteString(escapeText(n.Text))
		return
	}
	sb.WriteString(`<span class="` + escapeAttr(n.ClassName) + `">`)
	sb.WriteString(escapeText(n.Text))
	sb.WriteString("</span>")
}

// renderReference emits the inline chip for a workflow reference. The node
// is void: its dummy child is never rendered. data-node-id is the query
// surface the canvas highlighter locates rendered references by.
func renderReference(r *HTMLRenderer, sb *strings.Builder, n *model.Node) {
	label := n.NodeName
	if label == "" && r.resolver != nil {
		if resolved, ok := r.resolver.Lookup(n.NodeID); ok {
			label = resolved
		}
	}
	if label == "" {
		label = n.NodeID
	}
	sb.WriteString(`<span class="flowdoc-ref" contenteditable="false" data-node-id="` + escapeAttr(n.NodeID) + `">`)
	sb.WriteString(`<span class="flowdoc-ref-icon" aria-hidden="true"></span>`)
	sb.WriteString(escapeText(label))
	sb.WriteString("</span>")
}

// renderCodeBlock emits the scrollable monospace container with lines in
// document order plus the overlay copy control. The control carries no
// precomputed text: copy always re-extracts from current content.
func renderCodeBlock(r *HTMLRenderer, sb *strings.Builder, n *model.Node) {
	sb.WriteString(`<div class="flowdoc-code"`)
	if n.Language != "" {
		sb.WriteString(` data-language="` + escapeAttr(n.Language) + `"`)
	}
	sb.WriteString(`><pre><code>`)
	for i, line := range n.Children {
		if i > 0 {
			sb.WriteString("\n")
		}
		r.renderNode(sb, line)
	}
	sb.WriteString(`</code></pre>`)
	sb.WriteString(`<div class="flowdoc-code-actions">`)
	sb.WriteString(`<button type="button" class="flowdoc-copy" aria-label="Copy code"></button>`)
	sb.WriteString(`</div></div>`)
}

// renderCodeLine is a structural pass-through: tokens in order, nothing
// added.
func renderCodeLine(r *HTMLRenderer, sb *strings.Builder, n *model.Node) {
	r.renderChildren(sb, n)
}
