package html

import (
	"sort"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
)

// Node is either an element or a run of text. A node owns its children;
// there are no parent pointers, so a subtree can be dropped wholesale.
type Node struct {
	Type       NodeType
	TagName    string
	Attributes map[string]string
	Text       string
	Children   []*Node
}

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// NewElement creates an element node with the given attributes and children.
func NewElement(tag string, attrs map[string]string, children ...*Node) *Node {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	return &Node{
		Type:       ElementNode,
		TagName:    tag,
		Attributes: attrs,
		Children:   children,
	}
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{Type: TextNode, Text: text}
}

func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[name]
	return val, ok
}

// ID returns the element's id attribute, if any.
func (n *Node) ID() (string, bool) {
	if n.Type != ElementNode {
		return "", false
	}
	return n.GetAttribute("id")
}

// AddChild appends a child node.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// AppendText creates a text node and adds it as a child
func (n *Node) AppendText(text string) {
	if text == "" {
		return
	}
	n.Children = append(n.Children, NewText(text))
}

// SetChildren replaces all children of n.
func (n *Node) SetChildren(children []*Node) {
	n.Children = children
}

// InnerText returns the concatenated text of all descendant text nodes.
func (n *Node) InnerText() string {
	var sb strings.Builder
	walk(n, func(m *Node) bool {
		if m.Type == TextNode {
			sb.WriteString(m.Text)
		}
		return true
	})
	return sb.String()
}

// InnerHTML returns the serialized markup of all child nodes, but not the
// node's own tags. Text is written verbatim; nothing is escaped.
func (n *Node) InnerHTML() string {
	var sb strings.Builder
	for _, child := range n.Children {
		serializeNode(&sb, child)
	}
	return sb.String()
}

// OuterHTML returns the node's own tags plus all descendants.
func (n *Node) OuterHTML() string {
	var sb strings.Builder
	serializeNode(&sb, n)
	return sb.String()
}

// closeTag marks the point where an element's end tag is due.
type closeTag string

func serializeNode(sb *strings.Builder, root *Node) {
	stack := arraystack.New()
	stack.Push(root)
	for !stack.Empty() {
		top, _ := stack.Pop()
		switch item := top.(type) {
		case closeTag:
			sb.WriteString("</")
			sb.WriteString(string(item))
			sb.WriteByte('>')
		case *Node:
			if item.Type == TextNode {
				sb.WriteString(item.Text)
				continue
			}
			writeStartTag(sb, item)
			if isVoidElement(item.TagName) {
				continue
			}
			stack.Push(closeTag(item.TagName))
			for i := len(item.Children) - 1; i >= 0; i-- {
				stack.Push(item.Children[i])
			}
		}
	}
}

func writeStartTag(sb *strings.Builder, n *Node) {
	sb.WriteByte('<')
	sb.WriteString(n.TagName)

	// Sort attributes for deterministic output
	if len(n.Attributes) > 0 {
		keys := make([]string, 0, len(n.Attributes))
		for k := range n.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteByte(' ')
			v := n.Attributes[k]
			// Values are not escaped; a value holding a double quote is
			// written in single quotes so it reads back unchanged.
			quote := byte('"')
			if strings.IndexByte(v, '"') >= 0 && strings.IndexByte(v, '\'') < 0 {
				quote = '\''
			}
			sb.WriteString(k)
			sb.WriteByte('=')
			sb.WriteByte(quote)
			sb.WriteString(v)
			sb.WriteByte(quote)
		}
	}
	sb.WriteByte('>')
}

func isVoidElement(tag string) bool {
	switch tag {
	case "br", "hr", "img", "input", "meta", "link", "area", "base",
		"col", "embed", "param", "source", "track", "wbr":
		return true
	}
	return false
}

// walk visits root and its descendants in depth-first pre-order. Returning
// false from visit stops the walk. An explicit stack keeps deeply nested
// documents from exhausting the goroutine stack.
func walk(root *Node, visit func(*Node) bool) {
	if root == nil {
		return
	}
	stack := arraystack.New()
	stack.Push(root)
	for !stack.Empty() {
		top, _ := stack.Pop()
		n := top.(*Node)
		if !visit(n) {
			return
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack.Push(n.Children[i])
		}
	}
}

// GetElementByID returns the first element in pre-order whose id attribute
// equals id, or nil.
func GetElementByID(root *Node, id string) *Node {
	var found *Node
	walk(root, func(n *Node) bool {
		if v, ok := n.ID(); ok && v == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// CollectTagInners returns the inner text of every element named tag, in
// document order. Matching elements are not searched further.
func CollectTagInners(root *Node, tag string) []string {
	var inners []string
	if root == nil {
		return inners
	}
	stack := arraystack.New()
	stack.Push(root)
	for !stack.Empty() {
		top, _ := stack.Pop()
		n := top.(*Node)
		if n.Type == ElementNode && n.TagName == tag {
			inners = append(inners, n.InnerText())
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack.Push(n.Children[i])
		}
	}
	return inners
}

// Contains reports whether other is root or one of its descendants.
func Contains(root, other *Node) bool {
	if other == nil {
		return false
	}
	found := false
	walk(root, func(n *Node) bool {
		if n == other {
			found = true
			return false
		}
		return true
	})
	return found
}
