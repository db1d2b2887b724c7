package css

import (
	"strings"

	"rendertree/pkg/html"
)

// MatchesSelector reports whether node matches selector. Text nodes match
// nothing.
func MatchesSelector(node *html.Node, selector Selector) bool {
	if node == nil || node.Type != html.ElementNode {
		return false
	}

	switch selector.Kind {
	case UniversalSelector:
		return true
	case TypeSelector:
		return node.TagName == selector.Tag
	case AttributeSelector:
		if selector.Tag != "" && node.TagName != selector.Tag {
			return false
		}
		return matchesAttributeSelector(node, selector)
	}
	return false
}

// matchesAttributeSelector checks the attribute part of an attribute selector
func matchesAttributeSelector(node *html.Node, sel Selector) bool {
	value, ok := node.GetAttribute(sel.Attr)
	if !ok {
		return false
	}

	switch sel.Op {
	case "":
		return true
	case "=":
		return value == sel.Value
	case "^=":
		return sel.Value != "" && strings.HasPrefix(value, sel.Value)
	case "$=":
		return sel.Value != "" && strings.HasSuffix(value, sel.Value)
	case "*=":
		return sel.Value != "" && strings.Contains(value, sel.Value)
	case "~=":
		// Word match (whitespace-separated)
		for _, word := range strings.Fields(value) {
			if word == sel.Value {
				return true
			}
		}
		return false
	case "|=":
		// Language prefix (value or value-)
		return value == sel.Value || strings.HasPrefix(value, sel.Value+"-")
	}
	return false
}

// MatchedRule is a rule that applies to a node, with the rank it applies at.
type MatchedRule struct {
	Rule        *Rule
	Specificity int
}

// FindMatchingRules returns the rules of stylesheet that apply to node, in
// source order. A rule's specificity is the highest rank among its selectors
// that match the node.
func FindMatchingRules(node *html.Node, stylesheet *Stylesheet) []MatchedRule {
	matches := make([]MatchedRule, 0)
	if stylesheet == nil {
		return matches
	}

	for i := range stylesheet.Rules {
		rule := &stylesheet.Rules[i]
		best := 0
		for _, sel := range rule.Selectors {
			if sel.Specificity() > best && MatchesSelector(node, sel) {
				best = sel.Specificity()
			}
		}
		if best > 0 {
			matches = append(matches, MatchedRule{Rule: rule, Specificity: best})
		}
	}
	return matches
}
