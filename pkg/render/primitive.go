// Package render turns box trees into something a person can look at.
//
// Every backend works from the same primitive tree: a titled panel per
// element, a plain group per anonymous box, a label per non-blank text run and
// an empty placeholder per blank one.
package render

import (
	"strings"

	"rendertree/pkg/html"
	"rendertree/pkg/layout"
)

// Backend receives every finished box tree. Present replaces whatever was
// shown before.
type Backend interface {
	Present(root *layout.LayoutBox)
}

// Kind is the kind of a display primitive.
type Kind int

const (
	Panel       Kind = iota // titled, children stacked vertically
	Group                   // untitled, children laid out horizontally
	Label                   // a line of text
	Placeholder             // occupies no space
)

func (k Kind) String() string {
	switch k {
	case Panel:
		return "Panel"
	case Group:
		return "Group"
	case Label:
		return "Label"
	default:
		return "Placeholder"
	}
}

// Primitive is a backend-neutral display node.
type Primitive struct {
	Kind     Kind
	Title    string
	Text     string
	Children []*Primitive
}

// Convert maps a box tree onto display primitives.
func Convert(box *layout.LayoutBox) *Primitive {
	if box.Type == layout.AnonymousBox {
		return &Primitive{Kind: Group, Children: convertChildren(box)}
	}
	if box.Node.Type == html.TextNode {
		text := strings.TrimSpace(strings.ReplaceAll(box.Node.Text, "\n", ""))
		if text == "" {
			return &Primitive{Kind: Placeholder}
		}
		return &Primitive{Kind: Label, Text: text}
	}
	return &Primitive{Kind: Panel, Title: box.Node.TagName, Children: convertChildren(box)}
}

func convertChildren(box *layout.LayoutBox) []*Primitive {
	children := make([]*Primitive, 0, len(box.Children))
	for _, c := range box.Children {
		children = append(children, Convert(c))
	}
	return children
}

// Texts returns the label texts of the tree in display order.
func (p *Primitive) Texts() []string {
	var texts []string
	var visit func(*Primitive)
	visit = func(q *Primitive) {
		if q.Kind == Label {
			texts = append(texts, q.Text)
		}
		for _, c := range q.Children {
			visit(c)
		}
	}
	visit(p)
	return texts
}
