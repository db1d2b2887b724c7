// Package style resolves the cascade over a document tree and produces the
// styled tree consumed by the box builder.
package style

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/xlab/treeprint"

	"rendertree/pkg/css"
	"rendertree/pkg/html"
)

// StyledNode pairs a document node with its resolved properties. Hidden
// subtrees never appear in a styled tree.
type StyledNode struct {
	Node       *html.Node
	Properties css.PropertyMap
	Children   []*StyledNode
}

// Display classifies how a styled node takes part in box construction.
type Display int

const (
	DisplayInline Display = iota
	DisplayBlock
	DisplayNone
)

func (d Display) String() string {
	switch d {
	case DisplayBlock:
		return "block"
	case DisplayNone:
		return "none"
	default:
		return "inline"
	}
}

// ParseDisplay maps a display value to its class. Unset and unknown values
// are inline.
func ParseDisplay(value string) Display {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "none":
		return DisplayNone
	case "block", "list-item", "flex", "grid", "table":
		return DisplayBlock
	default:
		return DisplayInline
	}
}

// Display returns the node's display class.
func (s *StyledNode) Display() Display {
	return ParseDisplay(s.Properties["display"])
}

// Value returns a resolved property.
func (s *StyledNode) Value(name string) (string, bool) {
	return s.Properties.Get(name)
}

// Resolve computes the styled tree rooted at node. It returns nil when node
// resolves to display:none; hidden children are dropped from their parent.
// The walk uses an explicit stack, since scripts can nest the document
// arbitrarily deep.
func Resolve(node *html.Node, sheet *css.Stylesheet) *StyledNode {
	type pending struct {
		node   *html.Node
		parent *StyledNode
	}

	var root *StyledNode
	stack := arraystack.New()
	stack.Push(pending{node: node})
	for !stack.Empty() {
		top, _ := stack.Pop()
		item := top.(pending)

		props := css.ComputeStyle(item.node, sheet)
		if ParseDisplay(props["display"]) == DisplayNone {
			continue
		}
		styled := &StyledNode{
			Node:       item.node,
			Properties: props,
			Children:   make([]*StyledNode, 0, len(item.node.Children)),
		}
		if item.parent == nil {
			root = styled
		} else {
			item.parent.Children = append(item.parent.Children, styled)
		}
		// Pushed in reverse so siblings are attached in document order
		for i := len(item.node.Children) - 1; i >= 0; i-- {
			stack.Push(pending{node: item.node.Children[i], parent: styled})
		}
	}
	return root
}

// ResolveRoot is Resolve for a document root, which must stay visible.
func ResolveRoot(root *html.Node, sheet *css.Stylesheet) *StyledNode {
	styled := Resolve(root, sheet)
	if styled == nil {
		panic(html.InvariantViolation{What: fmt.Sprintf("document root <%s> resolves to display:none", root.TagName)})
	}
	return styled
}

// String renders the styled tree as an indented outline.
func (s *StyledNode) String() string {
	tree := treeprint.NewWithRoot(s.label())
	s.addBranches(tree)
	return tree.String()
}

func (s *StyledNode) addBranches(tree treeprint.Tree) {
	for _, c := range s.Children {
		if len(c.Children) == 0 {
			tree.AddNode(c.label())
			continue
		}
		c.addBranches(tree.AddBranch(c.label()))
	}
}

func (s *StyledNode) label() string {
	if s.Node.Type == html.TextNode {
		return fmt.Sprintf("%q", s.Node.Text)
	}
	return fmt.Sprintf("<%s> %s", s.Node.TagName, s.Display())
}
