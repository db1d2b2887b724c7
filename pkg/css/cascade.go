package css

import (
	"sort"

	"rendertree/pkg/html"
)

// PropertyMap holds resolved property values by name.
type PropertyMap map[string]string

// Get returns the value of a property.
func (p PropertyMap) Get(name string) (string, bool) {
	v, ok := p[name]
	return v, ok
}

// ComputeStyle runs the cascade for a single node. Matching rules are applied
// in ascending specificity; the sort is stable, so among rules of equal
// specificity the later one in source order wins.
func ComputeStyle(node *html.Node, stylesheet *Stylesheet) PropertyMap {
	props := make(PropertyMap)

	matches := FindMatchingRules(node, stylesheet)
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Specificity < matches[j].Specificity
	})

	for _, m := range matches {
		for _, decl := range m.Rule.Declarations {
			props[decl.Name] = decl.Value
		}
	}
	return props
}
