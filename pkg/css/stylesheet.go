package css

import (
	"strings"

	douceur "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// Stylesheet is an ordered list of rules.
type Stylesheet struct {
	Rules []Rule

	// Unsupported lists selectors that were dropped during parsing because
	// they use combinators, pseudo-classes or compound forms we do not match.
	Unsupported []string
}

// Rule applies its declarations to every node matched by any of its
// selectors.
type Rule struct {
	Selectors    []Selector
	Declarations []Declaration
}

// Declaration is a single property: value pair. Order inside a rule is kept.
type Declaration struct {
	Name  string
	Value string
}

// ParseError reports stylesheet text the parser could not make sense of.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "stylesheet: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseStylesheet parses stylesheet text into rules. Tokenizing and block
// structure are handled by douceur; this converts its qualified rules into
// our selector model. At-rules are skipped.
func ParseStylesheet(text string) (*Stylesheet, error) {
	sheet := &Stylesheet{
		Rules: make([]Rule, 0),
	}
	if strings.TrimSpace(text) == "" {
		return sheet, nil
	}

	parsed, err := parser.Parse(text)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	for _, r := range parsed.Rules {
		if r.Kind != douceur.QualifiedRule {
			continue
		}
		rule, ok := convertRule(r, sheet)
		if ok {
			sheet.Rules = append(sheet.Rules, rule)
		}
	}
	return sheet, nil
}

func convertRule(r *douceur.Rule, sheet *Stylesheet) (Rule, bool) {
	rule := Rule{
		Selectors:    make([]Selector, 0, len(r.Selectors)),
		Declarations: make([]Declaration, 0, len(r.Declarations)),
	}

	for _, raw := range r.Selectors {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		sel, ok := ParseSelector(raw)
		if !ok {
			sheet.Unsupported = append(sheet.Unsupported, raw)
			continue
		}
		rule.Selectors = append(rule.Selectors, sel)
	}
	// A rule none of whose selectors we understand can never match
	if len(rule.Selectors) == 0 {
		return Rule{}, false
	}

	for _, d := range r.Declarations {
		name := strings.ToLower(strings.TrimSpace(d.Property))
		value := strings.TrimSpace(d.Value)
		if name == "" || value == "" {
			continue
		}
		rule.Declarations = append(rule.Declarations, Declaration{Name: name, Value: value})
	}
	return rule, true
}
