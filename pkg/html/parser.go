package html

import (
	"errors"
	"fmt"
	"io"
	"strings"

	xhtml "golang.org/x/net/html"
)

// Parser builds a node tree from markup. Tokenizing is delegated to
// golang.org/x/net/html; the parser only keeps the stack of open elements.
type Parser struct {
	tokenizer *xhtml.Tokenizer
	top       *Node   // synthetic container collecting top-level nodes
	stack     []*Node // open elements, top[0] is the container
}

func NewParser(markup string) *Parser {
	top := &Node{Type: ElementNode, TagName: "#fragment"}
	return &Parser{
		tokenizer: xhtml.NewTokenizer(strings.NewReader(markup)),
		top:       top,
		stack:     []*Node{top},
	}
}

// Parse parses a complete document. The markup must contain exactly one
// top-level element; whitespace around it is ignored.
func Parse(markup string) (*Document, error) {
	nodes, err := NewParser(markup).parse()
	if err != nil {
		return nil, err
	}
	var root *Node
	for _, n := range nodes {
		if n.Type == TextNode {
			if strings.TrimSpace(n.Text) != "" {
				return nil, &ParseError{Msg: fmt.Sprintf("text %q outside of the document root", clip(n.Text))}
			}
			continue
		}
		if root != nil {
			return nil, &ParseError{Msg: fmt.Sprintf("second document root <%s> after <%s>", n.TagName, root.TagName)}
		}
		root = n
	}
	if root == nil {
		return nil, &ParseError{Msg: "no document root element"}
	}
	return NewDocument(root), nil
}

// ParseFragment parses markup into an ordered list of sibling nodes, as
// used for innerHTML writes.
func ParseFragment(markup string) ([]*Node, error) {
	return NewParser(markup).parse()
}

func (p *Parser) parse() ([]*Node, error) {
	for {
		tt := p.tokenizer.Next()
		if tt == xhtml.ErrorToken {
			err := p.tokenizer.Err()
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &ParseError{Msg: "tokenizer error", Err: err}
		}
		// Token unescapes in place, so the raw bytes are copied first.
		// Text and attribute values are kept exactly as written.
		raw := append([]byte(nil), p.tokenizer.Raw()...)
		token := p.tokenizer.Token()

		switch tt {
		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			node := NewElement(token.Data, attributes(token.Attr, rawAttrValues(raw)))
			p.currentParent().AddChild(node)
			// Void elements and <x/> never become parents
			if tt == xhtml.StartTagToken && !isVoidElement(token.Data) {
				p.push(node)
			}

		case xhtml.TextToken:
			if len(raw) > 0 {
				p.currentParent().AppendText(string(raw))
			}

		case xhtml.EndTagToken:
			if isVoidElement(token.Data) {
				continue
			}
			if !p.closeTag(token.Data) {
				return nil, &ParseError{Msg: fmt.Sprintf("end tag </%s> has no matching start tag", token.Data)}
			}

		default:
			// Comments and doctype carry nothing we render
		}
	}
	return p.top.Children, nil
}

// attributes builds the attribute map from the tokenizer's keys and the
// undecoded values. If the raw scan disagrees with the tokenizer about the
// number of attributes, the decoded values are used.
func attributes(attrs []xhtml.Attribute, rawVals []string) map[string]string {
	useRaw := len(rawVals) == len(attrs)
	m := make(map[string]string, len(attrs))
	for i, a := range attrs {
		if _, dup := m[a.Key]; dup {
			continue // first occurrence wins, as in browsers
		}
		if useRaw {
			m[a.Key] = rawVals[i]
		} else {
			m[a.Key] = a.Val
		}
	}
	return m
}

// rawAttrValues returns the attribute values of a raw start tag in source
// order, without entity decoding. Valueless attributes yield "".
func rawAttrValues(tag []byte) []string {
	var vals []string
	n := len(tag)
	i := 1
	for i < n && !isTagSpace(tag[i]) && tag[i] != '/' && tag[i] != '>' {
		i++
	}
	for {
		for i < n && (isTagSpace(tag[i]) || tag[i] == '/') {
			i++
		}
		if i >= n || tag[i] == '>' {
			return vals
		}
		start := i
		for i < n && !isTagSpace(tag[i]) && tag[i] != '/' && tag[i] != '=' && tag[i] != '>' {
			i++
		}
		if i == start {
			i++
			continue
		}
		for i < n && isTagSpace(tag[i]) {
			i++
		}
		if i >= n || tag[i] != '=' {
			vals = append(vals, "")
			continue
		}
		i++
		for i < n && isTagSpace(tag[i]) {
			i++
		}
		if i < n && (tag[i] == '"' || tag[i] == '\'') {
			quote := tag[i]
			i++
			start = i
			for i < n && tag[i] != quote {
				i++
			}
			vals = append(vals, string(tag[start:i]))
			i++
			continue
		}
		start = i
		for i < n && !isTagSpace(tag[i]) && tag[i] != '>' {
			i++
		}
		vals = append(vals, string(tag[start:i]))
	}
}

func isTagSpace(c byte) bool {
	switch c {
	case ' ', '\n', '\r', '\t', '\f':
		return true
	}
	return false
}

// currentParent returns the current parent node (top of stack)
func (p *Parser) currentParent() *Node {
	return p.stack[len(p.stack)-1]
}

// push adds a node to the stack
func (p *Parser) push(node *Node) {
	p.stack = append(p.stack, node)
}

// closeTag pops the stack until the matching tag is found and closed.
// Elements left open in between are closed implicitly.
func (p *Parser) closeTag(tagName string) bool {
	for i := len(p.stack) - 1; i >= 1; i-- {
		if p.stack[i].TagName == tagName {
			p.stack = p.stack[:i]
			return true
		}
	}
	return false
}

func clip(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 20 {
		return s[:20] + "..."
	}
	return s
}
