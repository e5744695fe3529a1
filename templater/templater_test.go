package templater

import (
	"strings"
	"testing"
)

func TestRenderPage_Default(t *testing.T) {
	tp, err := NewTemplater()
	if err != nil {
		t.Fatalf("NewTemplater failed: %v", err)
	}
	out, err := tp.RenderPage("My Notes", `<div class="flowdoc"><p>hi</p></div>`)
	if err != nil {
		t.Fatalf("RenderPage failed: %v", err)
	}
	if !strings.Contains(out, "<title>My Notes</title>") {
		t.Errorf("title missing: %s", out)
	}
	if !strings.Contains(out, `<div class="flowdoc"><p>hi</p></div>`) {
		t.Errorf("body was escaped or dropped: %s", out)
	}
}

func TestRenderPage_TitleEscaped(t *testing.T) {
	tp, err := NewTemplater()
	if err != nil {
		t.Fatalf("NewTemplater failed: %v", err)
	}
	out, err := tp.RenderPage("<script>", "")
	if err != nil {
		t.Fatalf("RenderPage failed: %v", err)
	}
	if strings.Contains(out, "<title><script></title>") {
		t.Errorf("title not escaped: %s", out)
	}
}

func TestSetPageTemplate(t *testing.T) {
	tp, err := NewTemplater()
	if err != nil {
		t.Fatalf("NewTemplater failed: %v", err)
	}
	if err := tp.SetPageTemplate(`<main data-title="{{ title }}">{{ body | safe }}</main>`); err != nil {
		t.Fatalf("SetPageTemplate failed: %v", err)
	}
	out, err := tp.RenderPage("x", "<p>y</p>")
	if err != nil {
		t.Fatalf("RenderPage failed: %v", err)
	}
	if out != `<main data-title="x"><p>y</p></main>` {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestSetPageTemplate_Invalid(t *testing.T) {
	tp, err := NewTemplater()
	if err != nil {
		t.Fatalf("NewTemplater failed: %v", err)
	}
	if err := tp.SetPageTemplate(`{% if %}`); err == nil {
		t.Error("expected error for invalid template")
	}
}

func TestRender_AdHoc(t *testing.T) {
	tp, err := NewTemplater()
	if err != nil {
		t.Fatalf("NewTemplater failed: %v", err)
	}
	out, err := tp.Render(`{{ name }} has {{ count }} references`, map[string]any{
		"name":  "tweet-summarizer",
		"count": 3,
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if out != "tweet-summarizer has 3 references" {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestRender_ParseError(t *testing.T) {
	tp, err := NewTemplater()
	if err != nil {
		t.Fatalf("NewTemplater failed: %v", err)
	}
	if _, err := tp.Render(`{{ unterminated`, nil); err == nil {
		t.Error("expected parse error")
	}
}
