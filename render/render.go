package render

import (
	"html"
	"strings"

	"github.com/TM9657/flowdoc/graph"
	"github.com/TM9657/flowdoc/model"
)

// NodeRenderer renders a single document node into the builder. Renderers
// only read the node; the tree is never mutated during rendering.
type NodeRenderer func(r *HTMLRenderer, sb *strings.Builder, n *model.Node)

// Renderer renders a Document into a specific output format.
type Renderer interface {
	Render(doc *model.Document) (string, error)
}

// HTMLRenderer renders documents to HTML fragments. Dispatch is an explicit
// registry keyed by node type with a mandatory default: unknown types render
// their children and nothing else, so one malformed node never takes down
// its siblings.
type HTMLRenderer struct {
	registry map[string]NodeRenderer
	fallback NodeRenderer
	resolver graph.Resolver

	// Attrs are host-supplied attributes spread verbatim onto the root
	// element of the rendered fragment (editing metadata, ARIA wiring).
	Attrs map[string]string
}

var _ Renderer = (*HTMLRenderer)(nil)

// NewHTMLRenderer creates an HTMLRenderer with the built-in node renderers
// registered. resolver may be nil; it is only consulted for reference nodes
// without a display name.
func NewHTMLRenderer(resolver graph.Resolver) *HTMLRenderer {
	r := &HTMLRenderer{
		registry: make(map[string]NodeRenderer),
		fallback: renderChildrenOnly,
		resolver: resolver,
	}
	r.Register(model.TypeParagraph, renderParagraph)
	r.Register(model.TypeText, renderText)
	r.Register(model.TypeReference, renderReference)
	r.Register(model.TypeCodeBlock, renderCodeBlock)
	r.Register(model.TypeCodeLine, renderCodeLine)
	return r
}

// Register installs (or replaces) the renderer owning the given node type.
func (r *HTMLRenderer) Register(nodeType string, fn NodeRenderer) {
	r.registry[nodeType] = fn
}

// Render renders the whole document into an HTML fragment rooted at a
// single div. The error return satisfies the Renderer interface; HTML
// rendering itself cannot fail.
func (r *HTMLRenderer) Render(doc *model.Document) (string, error) {
	var sb strings.Builder
	sb.WriteString(`<div class="flowdoc"`)
	for _, k := range sortedKeys(r.Attrs) {
		sb.WriteString(` ` + k + `="` + escapeAttr(r.Attrs[k]) + `"`)
	}
	sb.WriteString(">")
	if doc != nil {
		for _, n := range doc.Nodes {
			r.renderNode(&sb, n)
		}
	}
	sb.WriteString("</div>")
	return sb.String(), nil
}

// RenderNode renders a single node to an HTML fragment.
func (r *HTMLRenderer) RenderNode(n *model.Node) string {
	var sb strings.Builder
	r.renderNode(&sb, n)
	return sb.String()
}

func (r *HTMLRenderer) renderNode(sb *strings.Builder, n *model.Node) {
	if n == nil {
		return
	}
	fn, ok := r.registry[n.Type]
	if !ok {
		fn = r.fallback
	}
	fn(r, sb, n)
}

func (r *HTMLRenderer) renderChildren(sb *strings.Builder, n *model.Node) {
	for _, c := range n.Children {
		r.renderNode(sb, c)
	}
}

func renderChildrenOnly(r *HTMLRenderer, sb *strings.Builder, n *model.Node) {
	r.renderChildren(sb, n)
}

func escapeText(s string) string {
	return html.EscapeString(s)
}

func escapeAttr(s string) string {
	return html.EscapeString(s)
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Deterministic output keeps rendering pure w.r.t. map iteration order.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}
