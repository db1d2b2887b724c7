package layout

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/xlab/treeprint"

	"rendertree/pkg/css"
	"rendertree/pkg/html"
	"rendertree/pkg/style"
)

// BoxType is the kind of a layout box.
type BoxType int

const (
	BlockBox BoxType = iota
	InlineBox
	AnonymousBox // synthetic block container around a run of inline boxes
)

func (t BoxType) String() string {
	switch t {
	case BlockBox:
		return "Block"
	case InlineBox:
		return "Inline"
	default:
		return "Anonymous"
	}
}

// LayoutBox is a node of the box tree. Anonymous boxes carry no node and no
// properties.
type LayoutBox struct {
	Type       BoxType
	Node       *html.Node
	Properties css.PropertyMap
	Children   []*LayoutBox
}

// Build converts a styled tree into a box tree. Boxes are created as soon as
// their parent is visited, so every child lands in its final slot before
// its own children are built; the walk keeps an explicit stack.
func Build(styled *style.StyledNode) *LayoutBox {
	type pending struct {
		styled *style.StyledNode
		box    *LayoutBox
	}

	root := newBox(styled)
	stack := arraystack.New()
	stack.Push(pending{styled: styled, box: root})
	for !stack.Empty() {
		top, _ := stack.Pop()
		item := top.(pending)
		box := item.box

		// Consecutive inline children share one anonymous box; a block
		// child closes the current run.
		var anon *LayoutBox
		for _, child := range item.styled.Children {
			childBox := newBox(child)
			stack.Push(pending{styled: child, box: childBox})
			if childBox.Type == BlockBox {
				anon = nil
				box.Children = append(box.Children, childBox)
				continue
			}
			if anon == nil {
				anon = &LayoutBox{Type: AnonymousBox, Children: make([]*LayoutBox, 0)}
				box.Children = append(box.Children, anon)
			}
			anon.Children = append(anon.Children, childBox)
		}
	}
	return root
}

func newBox(styled *style.StyledNode) *LayoutBox {
	box := &LayoutBox{
		Node:       styled.Node,
		Properties: styled.Properties,
		Children:   make([]*LayoutBox, 0, len(styled.Children)),
	}
	switch styled.Display() {
	case style.DisplayBlock:
		box.Type = BlockBox
	case style.DisplayInline:
		box.Type = InlineBox
	default:
		panic(html.InvariantViolation{What: fmt.Sprintf("display:none node <%s> reached the box builder", styled.Node.TagName)})
	}
	return box
}

// String renders the box tree as an indented outline.
func (b *LayoutBox) String() string {
	tree := treeprint.NewWithRoot(b.label())
	b.addBranches(tree)
	return tree.String()
}

func (b *LayoutBox) addBranches(tree treeprint.Tree) {
	for _, c := range b.Children {
		if len(c.Children) == 0 {
			tree.AddNode(c.label())
			continue
		}
		c.addBranches(tree.AddBranch(c.label()))
	}
}

func (b *LayoutBox) label() string {
	switch {
	case b.Type == AnonymousBox:
		return "Anonymous"
	case b.Node.Type == html.TextNode:
		return fmt.Sprintf("%s %q", b.Type, b.Node.Text)
	default:
		return fmt.Sprintf("%s <%s>", b.Type, b.Node.TagName)
	}
}

// Outline is a compact structural description of a box tree, used to compare
// trees in tests and in the dump command's summary mode.
type Outline struct {
	Type     string
	Tag      string    `json:",omitempty"`
	Text     string    `json:",omitempty"`
	Children []Outline `json:",omitempty"`
}

// Outline returns the structural outline of the tree rooted at b.
func (b *LayoutBox) Outline() Outline {
	o := Outline{Type: b.Type.String()}
	if b.Node != nil {
		if b.Node.Type == html.TextNode {
			o.Text = b.Node.Text
		} else {
			o.Tag = b.Node.TagName
		}
	}
	for _, c := range b.Children {
		o.Children = append(o.Children, c.Outline())
	}
	return o
}
