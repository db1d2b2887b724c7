package html

import (
	"errors"
	"testing"
)

func TestParser_SingleElement(t *testing.T) {
	doc, err := Parse("<div></div>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.root.TagName != "div" {
		t.Errorf("expected root 'div', got '%s'", doc.root.TagName)
	}
	if len(doc.root.Children) != 0 {
		t.Errorf("expected no children, got %d", len(doc.root.Children))
	}
}

func TestParser_SurroundingWhitespaceIgnored(t *testing.T) {
	doc, err := Parse("\n  <body><p>x</p></body>\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.root.TagName != "body" {
		t.Errorf("expected root 'body', got '%s'", doc.root.TagName)
	}
}

func TestParser_RootErrors(t *testing.T) {
	tests := []struct {
		name   string
		markup string
	}{
		{"empty", ""},
		{"only whitespace", "   \n"},
		{"two roots", "<div></div><p></p>"},
		{"text outside root", "hello<div></div>"},
		{"stray end tag", "<div></span></div>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.markup)
			if err == nil {
				t.Fatalf("expected parse error for %q", tt.markup)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Errorf("expected *ParseError, got %T", err)
			}
		})
	}
}

func TestParser_WithAttributes(t *testing.T) {
	doc, err := Parse(`<div style="color: red" id=main></div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	style, ok := doc.root.GetAttribute("style")
	if !ok || style != "color: red" {
		t.Error("expected style attribute 'color: red'")
	}
	if id, _ := doc.root.ID(); id != "main" {
		t.Errorf("expected id 'main', got '%s'", id)
	}
}

func TestParser_NestedElements(t *testing.T) {
	doc, err := Parse(`<div><p>Hello</p></div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	div := doc.root
	if len(div.Children) != 1 {
		t.Fatalf("expected div to have 1 child, got %d", len(div.Children))
	}

	p := div.Children[0]
	if p.TagName != "p" {
		t.Errorf("expected 'p', got '%s'", p.TagName)
	}

	// P should have one text child
	if len(p.Children) != 1 {
		t.Fatalf("expected p to have 1 text child, got %d", len(p.Children))
	}
	if p.Children[0].Type != TextNode || p.Children[0].Text != "Hello" {
		t.Error("expected text node with 'Hello'")
	}
}

func TestParser_UnclosedElementsCloseImplicitly(t *testing.T) {
	doc, err := Parse(`<div><p>one<p>two</div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Without auto-closing rules the second <p> nests inside the first.
	first := doc.root.Children[0]
	if first.TagName != "p" || len(first.Children) != 2 {
		t.Fatalf("unexpected tree: %s", doc.root.OuterHTML())
	}
	if first.Children[1].TagName != "p" {
		t.Errorf("expected nested p, got %q", first.Children[1].TagName)
	}
}

func TestParser_VoidElements(t *testing.T) {
	doc, err := Parse(`<div>a<br>b<img src="x.png"/>c</div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(doc.root.Children); got != 5 {
		t.Fatalf("expected 5 children, got %d", got)
	}
	if doc.root.Children[1].TagName != "br" || len(doc.root.Children[1].Children) != 0 {
		t.Error("br must not take children")
	}
}

func TestParser_RawTextElements(t *testing.T) {
	doc, err := Parse(`<body><script>if (a < b) { x.innerHTML = "<p>loaded</p>"; }</script><style>p > a { color: red }</style></body>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	script := doc.root.Children[0]
	if len(script.Children) != 1 || script.Children[0].Type != TextNode {
		t.Fatalf("script body should be one text node, got %s", script.OuterHTML())
	}
	want := `if (a < b) { x.innerHTML = "<p>loaded</p>"; }`
	if script.Children[0].Text != want {
		t.Errorf("script text = %q, want %q", script.Children[0].Text, want)
	}
	if got := CollectTagInners(doc.root, "style"); len(got) != 1 || got[0] != "p > a { color: red }" {
		t.Errorf("style inners = %q", got)
	}
}

func TestParser_CommentsDropped(t *testing.T) {
	doc, err := Parse(`<!DOCTYPE html><!-- top --><div><!-- inner -->x</div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.root.Children) != 1 || doc.root.Children[0].Text != "x" {
		t.Errorf("unexpected children: %s", doc.root.InnerHTML())
	}
}

func TestParseFragment(t *testing.T) {
	nodes, err := ParseFragment(`<p>loaded</p> tail <span class="a">s</span>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(nodes))
	}
	if nodes[0].TagName != "p" || nodes[1].Text != " tail " || nodes[2].Attributes["class"] != "a" {
		t.Errorf("unexpected fragment: %+v", nodes)
	}

	empty, err := ParseFragment("")
	if err != nil || len(empty) != 0 {
		t.Errorf("empty fragment: nodes=%v err=%v", empty, err)
	}

	if _, err := ParseFragment("</p>"); err == nil {
		t.Error("expected error for unmatched end tag")
	}
}
