package css

import (
	"strings"
)

// SelectorKind distinguishes the three selector shapes we match.
type SelectorKind int

const (
	UniversalSelector SelectorKind = iota // *
	TypeSelector                          // div
	AttributeSelector                     // div[lang|=en], .c, #i
)

// Selector is a single simple selector.
//
// For AttributeSelector, Tag may be empty to match any element, Op is one of
// "=", "~=", "|=", "^=", "$=", "*=" or "" (attribute present).
type Selector struct {
	Kind  SelectorKind
	Tag   string
	Attr  string
	Op    string
	Value string
}

// Specificity ranks selector kinds: attribute selectors beat type selectors
// which beat the universal selector.
func (s Selector) Specificity() int {
	switch s.Kind {
	case AttributeSelector:
		return 3
	case TypeSelector:
		return 2
	default:
		return 1
	}
}

func (s Selector) String() string {
	switch s.Kind {
	case UniversalSelector:
		return "*"
	case TypeSelector:
		return s.Tag
	}
	var sb strings.Builder
	sb.WriteString(s.Tag)
	sb.WriteByte('[')
	sb.WriteString(s.Attr)
	if s.Op != "" {
		sb.WriteString(s.Op)
		sb.WriteByte('"')
		sb.WriteString(s.Value)
		sb.WriteByte('"')
	}
	sb.WriteByte(']')
	return sb.String()
}

var attributeOperators = []string{"~=", "|=", "^=", "$=", "*=", "="}

// ParseSelector converts one selector from a rule's selector list. It
// understands *, tag, .class, #id, and a tag (or *) followed by exactly one
// of .class, #id or [attr op value]. Anything else reports false.
func ParseSelector(raw string) (Selector, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Selector{}, false
	}

	tag, rest := splitTag(raw)
	if tag == "" && rest == raw && raw[0] != '.' && raw[0] != '#' && raw[0] != '[' {
		return Selector{}, false
	}
	anyTag := tag == "*"
	if anyTag {
		tag = ""
	}

	if rest == "" {
		if anyTag {
			return Selector{Kind: UniversalSelector}, true
		}
		return Selector{Kind: TypeSelector, Tag: tag}, true
	}

	switch rest[0] {
	case '.':
		class := rest[1:]
		if !isIdent(class) {
			return Selector{}, false
		}
		return Selector{Kind: AttributeSelector, Tag: tag, Attr: "class", Op: "~=", Value: class}, true

	case '#':
		id := rest[1:]
		if !isIdent(id) {
			return Selector{}, false
		}
		return Selector{Kind: AttributeSelector, Tag: tag, Attr: "id", Op: "=", Value: id}, true

	case '[':
		if !strings.HasSuffix(rest, "]") {
			return Selector{}, false
		}
		return parseAttributeSelector(tag, rest[1:len(rest)-1])
	}
	return Selector{}, false
}

func parseAttributeSelector(tag, body string) (Selector, bool) {
	body = strings.TrimSpace(body)
	sel := Selector{Kind: AttributeSelector, Tag: tag}

	for _, op := range attributeOperators {
		if i := strings.Index(body, op); i >= 0 {
			sel.Attr = strings.TrimSpace(body[:i])
			sel.Op = op
			sel.Value = unquote(strings.TrimSpace(body[i+len(op):]))
			break
		}
	}
	if sel.Op == "" {
		sel.Attr = body
	}
	if !isIdent(sel.Attr) {
		return Selector{}, false
	}
	sel.Attr = strings.ToLower(sel.Attr)
	return sel, true
}

// splitTag splits a leading tag name or "*" off the selector.
func splitTag(raw string) (tag, rest string) {
	if raw[0] == '*' {
		return "*", raw[1:]
	}
	i := 0
	for i < len(raw) && isIdentByte(raw[i]) {
		i++
	}
	return strings.ToLower(raw[:i]), raw[i:]
}

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return false
		}
	}
	return true
}

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_'
}
