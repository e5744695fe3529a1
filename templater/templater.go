// Package templater wraps pongo2 for rendering exportable HTML pages around
// document bodies produced by the render package.
package templater

import (
	"github.com/TM9657/flowdoc/utils"
	pongo2 "github.com/flosch/pongo2/v6"
)

// defaultPage is the shell used when no custom template is registered.
// The document body is injected pre-rendered, so it must not be re-escaped.
const defaultPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ title }}</title>
<meta name="generator" content="flowdoc">
</head>
<body>
{{ body | safe }}
</body>
</html>
`

// Templater renders pongo2 templates around document exports.
type Templater struct {
	page *pongo2.Template
}

// NewTemplater creates a Templater with the built-in page shell.
func NewTemplater() (*Templater, error) {
	page, err := pongo2.FromString(defaultPage)
	if err != nil {
		return nil, utils.Errorf("invalid built-in page template: %w", err)
	}
	return &Templater{page: page}, nil
}

// SetPageTemplate replaces the page shell. The template receives "title" and
// "body" in its context.
func (t *Templater) SetPageTemplate(src string) error {
	page, err := pongo2.FromString(src)
	if err != nil {
		return utils.Errorf("invalid page template: %w", err)
	}
	t.page = page
	return nil
}

// RenderPage wraps pre-rendered body HTML in the page shell.
func (t *Templater) RenderPage(title, bodyHTML string) (string, error) {
	return t.page.Execute(pongo2.Context{
		"title": title,
		"body":  bodyHTML,
	})
}

// Render parses and executes an ad-hoc template against data.
func (t *Templater) Render(tmpl string, data map[string]any) (string, error) {
	tpl, err := pongo2.FromString(tmpl)
	if err != nil {
		return "", err
	}
	return tpl.Execute(pongo2.Context(data))
}

// RegisterFilters allows registering custom pongo2 filters.
func (t *Templater) RegisterFilters(filters map[string]pongo2.FilterFunction) {
	for name, fn := range filters {
		_ = pongo2.RegisterFilter(name, fn)
	}
}
