package css

import (
	"testing"

	"rendertree/pkg/html"
)

func TestComputeStyle_TypeSelector(t *testing.T) {
	stylesheet, _ := ParseStylesheet(`div { color: red; }`)
	node := html.NewElement("div", nil)

	style := ComputeStyle(node, stylesheet)

	if color, ok := style.Get("color"); !ok || color != "red" {
		t.Errorf("expected color='red', got '%s'", color)
	}
}

func TestComputeStyle_NoMatchIsEmpty(t *testing.T) {
	stylesheet, _ := ParseStylesheet(`p { color: red; } .x { display: block; }`)
	node := html.NewElement("div", nil)

	style := ComputeStyle(node, stylesheet)
	if len(style) != 0 {
		t.Errorf("expected empty property map, got %v", style)
	}
	if _, ok := style.Get("display"); ok {
		t.Error("display must be unset when nothing matches")
	}
}

func TestComputeStyle_TextNodeIsEmpty(t *testing.T) {
	stylesheet, _ := ParseStylesheet(`* { color: red; }`)
	if style := ComputeStyle(html.NewText("x"), stylesheet); len(style) != 0 {
		t.Errorf("text node should carry no declarations, got %v", style)
	}
}

func TestComputeStyle_SpecificityBeatsOrder(t *testing.T) {
	node := html.NewElement("div", nil)
	for _, text := range []string{
		`* { display: block; } div { display: inline; }`,
		`div { display: inline; } * { display: block; }`,
	} {
		stylesheet, err := ParseStylesheet(text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := ComputeStyle(node, stylesheet)["display"]; got != "inline" {
			t.Errorf("%s: expected display 'inline', got %q", text, got)
		}
	}
}

func TestComputeStyle_SpecificityOverride(t *testing.T) {
	stylesheet, _ := ParseStylesheet(`
		.highlight { color: blue; }
		div { color: red; }
	`)
	node := html.NewElement("div", map[string]string{"class": "highlight"})

	style := ComputeStyle(node, stylesheet)

	// Class selector (.highlight) should override element selector (div)
	if color, ok := style.Get("color"); !ok || color != "blue" {
		t.Errorf("expected color='blue' (class overrides element), got '%s'", color)
	}
}

func TestComputeStyle_LaterRuleWinsAtEqualSpecificity(t *testing.T) {
	stylesheet, _ := ParseStylesheet(`
		#header { color: green; }
		.highlight { color: blue; }
	`)
	node := html.NewElement("div", map[string]string{"class": "highlight", "id": "header"})

	if color := ComputeStyle(node, stylesheet)["color"]; color != "blue" {
		t.Errorf("expected later rule to win, got %q", color)
	}
}

func TestComputeStyle_MultipleProperties(t *testing.T) {
	stylesheet, _ := ParseStylesheet(`
		div { color: red; width: 100px; }
		div { height: 50px; color: black; }
	`)
	node := html.NewElement("div", nil)
	style := ComputeStyle(node, stylesheet)

	want := PropertyMap{"color": "black", "width": "100px", "height": "50px"}
	if len(style) != len(want) {
		t.Fatalf("expected %d properties, got %v", len(want), style)
	}
	for k, v := range want {
		if style[k] != v {
			t.Errorf("%s: expected %q, got %q", k, v, style[k])
		}
	}
}
