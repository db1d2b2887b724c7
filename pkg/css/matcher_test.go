package css

import (
	"testing"

	"rendertree/pkg/html"
)

func TestMatchesSelector_TypeSelector(t *testing.T) {
	node := html.NewElement("div", nil)

	if !MatchesSelector(node, Selector{Kind: TypeSelector, Tag: "div"}) {
		t.Error("div should match selector 'div'")
	}
	if MatchesSelector(node, Selector{Kind: TypeSelector, Tag: "p"}) {
		t.Error("div should not match selector 'p'")
	}
}

func TestMatchesSelector_Universal(t *testing.T) {
	if !MatchesSelector(html.NewElement("span", nil), Selector{Kind: UniversalSelector}) {
		t.Error("universal selector should match any element")
	}
}

func TestMatchesSelector_ClassSelector(t *testing.T) {
	node := html.NewElement("div", map[string]string{"class": "note  highlight"})

	sel, _ := ParseSelector(".highlight")
	if !MatchesSelector(node, sel) {
		t.Error("div with class 'note highlight' should match '.highlight'")
	}
	sel, _ = ParseSelector(".high")
	if MatchesSelector(node, sel) {
		t.Error("class match is per word, '.high' must not match")
	}
	sel, _ = ParseSelector("p.highlight")
	if MatchesSelector(node, sel) {
		t.Error("tag part of 'p.highlight' must restrict the match")
	}
}

func TestMatchesSelector_IDSelector(t *testing.T) {
	node := html.NewElement("div", map[string]string{"id": "header"})

	sel, _ := ParseSelector("#header")
	if !MatchesSelector(node, sel) {
		t.Error("div with id='header' should match selector '#header'")
	}
	sel, _ = ParseSelector("#footer")
	if MatchesSelector(node, sel) {
		t.Error("div with id='header' should not match selector '#footer'")
	}
}

func TestMatchesSelector_AttributeOperators(t *testing.T) {
	node := html.NewElement("a", map[string]string{
		"href": "https://example.com/page.html",
		"lang": "en-US",
		"rel":  "nofollow noopener",
	})

	tests := []struct {
		sel  string
		want bool
	}{
		{"a[href]", true},
		{"a[title]", false},
		{`a[href="https://example.com/page.html"]`, true},
		{`a[href="https"]`, false},
		{`a[href^="https"]`, true},
		{`a[href$=".html"]`, true},
		{`a[href*="example"]`, true},
		{`a[href*="nope"]`, false},
		{`[rel~=noopener]`, true},
		{`[rel~=noop]`, false},
		{`[lang|=en]`, true},
		{`[lang|=US]`, false},
		{`[href^=""]`, false},
	}
	for _, tt := range tests {
		sel, ok := ParseSelector(tt.sel)
		if !ok {
			t.Fatalf("selector %q did not parse", tt.sel)
		}
		if got := MatchesSelector(node, sel); got != tt.want {
			t.Errorf("MatchesSelector(%q) = %v, want %v", tt.sel, got, tt.want)
		}
	}
}

func TestFindMatchingRules(t *testing.T) {
	stylesheet, _ := ParseStylesheet(`
		div { color: red; }
		.highlight { background-color: yellow; }
		p { color: green; }
		#header { width: 100px; }
	`)

	node := html.NewElement("div", map[string]string{
		"class": "highlight",
		"id":    "header",
	})

	matches := FindMatchingRules(node, stylesheet)
	if len(matches) != 3 {
		t.Fatalf("expected 3 matching rules, got %d", len(matches))
	}

	// Source order is kept; ranks follow the selector kinds
	wantRanks := []int{2, 3, 3}
	for i, m := range matches {
		if m.Specificity != wantRanks[i] {
			t.Errorf("match %d: expected specificity %d, got %d", i, wantRanks[i], m.Specificity)
		}
	}
}

func TestFindMatchingRules_HighestMatchingSelectorRanks(t *testing.T) {
	stylesheet, _ := ParseStylesheet(`*, div, .x { color: red; }`)

	plain := html.NewElement("div", nil)
	classed := html.NewElement("div", map[string]string{"class": "x"})
	span := html.NewElement("span", nil)

	if m := FindMatchingRules(plain, stylesheet); len(m) != 1 || m[0].Specificity != 2 {
		t.Errorf("plain div: expected rank 2, got %+v", m)
	}
	if m := FindMatchingRules(classed, stylesheet); len(m) != 1 || m[0].Specificity != 3 {
		t.Errorf("classed div: expected rank 3, got %+v", m)
	}
	if m := FindMatchingRules(span, stylesheet); len(m) != 1 || m[0].Specificity != 1 {
		t.Errorf("span: expected rank 1, got %+v", m)
	}
}

func TestMatchesSelector_NoMatchTextNode(t *testing.T) {
	node := html.NewText("Hello")

	if MatchesSelector(node, Selector{Kind: UniversalSelector}) {
		t.Error("text nodes should not match selectors")
	}
	if MatchesSelector(node, Selector{Kind: TypeSelector, Tag: "div"}) {
		t.Error("text nodes should not match selectors")
	}
}
