package schemafile

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/schemakit/pkg/sanitizer"
)

// ParseRules reads a YAML or JSON sanitizer document.
//
// A mapping becomes a sanitizer.RuleSet with optional string, number,
// boolean, array, object and date blocks plus default and use (names of
// registered rules run after the set). A mapping with a single family block
// and no default applies that family to any input. A sequence of mappings
// becomes a sanitizer.Chain.
func ParseRules(data []byte, reg *Registry) (sanitizer.Rule, error) {
	root, err := parseNode(data)
	if err != nil {
		return nil, errors.Join(ErrInvalidRules, err)
	}
	return parseRule(root, reg)
}

var ruleKeys = []string{"string", "number", "boolean", "array", "object", "date", "default", "use"}

type ruleDoc struct {
	String  *stringDoc  `yaml:"string"`
	Number  *numberDoc  `yaml:"number"`
	Boolean *booleanDoc `yaml:"boolean"`
	Array   *arrayDoc   `yaml:"array"`
	Object  *objectDoc  `yaml:"object"`
	Date    *dateDoc    `yaml:"date"`
	Default any         `yaml:"default"`
	Use     []string    `yaml:"use"`
}

type stringDoc struct {
	Trim         bool         `yaml:"trim"`
	Case         string       `yaml:"case"`
	Truncate     int          `yaml:"truncate"`
	Ellipsis     string       `yaml:"ellipsis"`
	Replace      []replaceDoc `yaml:"replace"`
	Remove       []string     `yaml:"remove"`
	StripTags    bool         `yaml:"stripTags"`
	StripControl bool         `yaml:"stripControl"`
	Slug         bool         `yaml:"slug"`
	Alphanumeric bool         `yaml:"alphanumeric"`
	Alpha        bool         `yaml:"alpha"`
	Numeric      bool         `yaml:"numeric"`
	HexColor     bool         `yaml:"hexColor"`
	Escape       bool         `yaml:"escape"`
	Normalize    bool         `yaml:"normalize"`
	Collapse     bool         `yaml:"collapse"`
}

type replaceDoc struct {
	Pattern string `yaml:"pattern"`
	With    string `yaml:"with"`
}

type numberDoc struct {
	Default   float64  `yaml:"default"`
	Finite    bool     `yaml:"finite"`
	Integer   bool     `yaml:"integer"`
	Rounding  string   `yaml:"rounding"`
	Precision *int     `yaml:"precision"`
	Positive  bool     `yaml:"positive"`
	Negative  bool     `yaml:"negative"`
	Absolute  bool     `yaml:"absolute"`
	Min       *float64 `yaml:"min"`
	Max       *float64 `yaml:"max"`
	Clamp     bool     `yaml:"clamp"`
}

type booleanDoc struct {
	Truthy        []string `yaml:"truthy"`
	Falsy         []string `yaml:"falsy"`
	StrictNumeric bool     `yaml:"strictNumeric"`
	Default       bool     `yaml:"default"`
}

type arrayDoc struct {
	Parse     bool       `yaml:"parse"`
	Separator string     `yaml:"separator"`
	Compact   bool       `yaml:"compact"`
	Unique    bool       `yaml:"unique"`
	UniqueBy  string     `yaml:"uniqueBy"`
	Items     *yaml.Node `yaml:"items"`
	Offset    int        `yaml:"offset"`
	Limit     int        `yaml:"limit"`
	Sort      string     `yaml:"sort"`
	SortBy    string     `yaml:"sortBy"`
	Reverse   bool       `yaml:"reverse"`
	Flatten   int        `yaml:"flatten"`
}

type objectDoc struct {
	Parse         bool                  `yaml:"parse"`
	Pick          []string              `yaml:"pick"`
	Omit          []string              `yaml:"omit"`
	Rename        map[string]string     `yaml:"rename"`
	Defaults      map[string]any        `yaml:"defaults"`
	Properties    map[string]*yaml.Node `yaml:"properties"`
	RemoveEmpty   bool                  `yaml:"removeEmpty"`
	MaxProperties int                   `yaml:"maxProperties"`
}

type dateDoc struct {
	Layouts  []string `yaml:"layouts"`
	Location string   `yaml:"location"`
	Truncate string   `yaml:"truncate"`
	Min      string   `yaml:"min"`
	Max      string   `yaml:"max"`
	Clamp    bool     `yaml:"clamp"`
	Format   string   `yaml:"format"`
	Default  string   `yaml:"default"`
}

func parseRule(n *yaml.Node, reg *Registry) (sanitizer.Rule, error) {
	n = resolve(n)
	switch n.Kind {
	case yaml.SequenceNode:
		chain := make(sanitizer.Chain, 0, len(n.Content))
		for _, child := range n.Content {
			rule, err := parseRule(child, reg)
			if err != nil {
				return nil, err
			}
			chain = append(chain, rule)
		}
		return chain, nil
	case yaml.MappingNode:
	default:
		return nil, invalidRules(n, "expected a mapping or a sequence, got %s", nodeKind(n))
	}

	for i := 0; i < len(n.Content); i += 2 {
		if key := n.Content[i].Value; !slices.Contains(ruleKeys, key) {
			return nil, invalidRules(n.Content[i], "unknown key %q", key)
		}
	}

	var doc ruleDoc
	if err := n.Decode(&doc); err != nil {
		return nil, invalidRules(n, "%v", err)
	}

	set := sanitizer.RuleSet{Default: doc.Default}
	var err error
	if doc.String != nil {
		if set.String, err = doc.String.rules(n); err != nil {
			return nil, err
		}
	}
	if doc.Number != nil {
		if set.Number, err = doc.Number.rules(n); err != nil {
			return nil, err
		}
	}
	if doc.Boolean != nil {
		set.Boolean = &sanitizer.BooleanRules{
			Truthy:        doc.Boolean.Truthy,
			Falsy:         doc.Boolean.Falsy,
			StrictNumeric: doc.Boolean.StrictNumeric,
			Default:       doc.Boolean.Default,
		}
	}
	if doc.Array != nil {
		if set.Array, err = doc.Array.rules(n, reg); err != nil {
			return nil, err
		}
	}
	if doc.Object != nil {
		if set.Object, err = doc.Object.rules(reg); err != nil {
			return nil, err
		}
	}
	if doc.Date != nil {
		if set.Date, err = doc.Date.rules(n); err != nil {
			return nil, err
		}
	}

	rule := single(set, doc)
	if len(doc.Use) == 0 {
		return rule, nil
	}
	chain := sanitizer.Chain{rule}
	for _, name := range doc.Use {
		rule, ok := reg.rule(name)
		if !ok {
			return nil, errors.Join(ErrInvalidRules, ErrUnknownCheck, fmt.Errorf("line %d: rule %q is not registered", n.Line, name))
		}
		chain = append(chain, rule)
	}
	return chain, nil
}

// single unwraps a set that declares exactly one family so that the family
// coerces every input ("42" through number rules) instead of dispatching on kind.
func single(set sanitizer.RuleSet, doc ruleDoc) sanitizer.Rule {
	if doc.Default != nil {
		return set
	}
	var rules []sanitizer.Rule
	if set.String != nil {
		rules = append(rules, set.String)
	}
	if set.Number != nil {
		rules = append(rules, set.Number)
	}
	if set.Boolean != nil {
		rules = append(rules, set.Boolean)
	}
	if set.Array != nil {
		rules = append(rules, set.Array)
	}
	if set.Object != nil {
		rules = append(rules, set.Object)
	}
	if set.Date != nil {
		rules = append(rules, set.Date)
	}
	if len(rules) == 1 {
		return rules[0]
	}
	return set
}

var cases = map[string]sanitizer.Case{
	"":           sanitizer.CaseNone,
	"lower":      sanitizer.CaseLower,
	"upper":      sanitizer.CaseUpper,
	"capitalize": sanitizer.CaseCapitalize,
	"title":      sanitizer.CaseTitle,
}

func (d *stringDoc) rules(n *yaml.Node) (*sanitizer.StringRules, error) {
	c, ok := cases[d.Case]
	if !ok {
		return nil, invalidRules(n, "string.case: unknown case %q", d.Case)
	}
	r := &sanitizer.StringRules{
		Trim:         d.Trim,
		Case:         c,
		Truncate:     d.Truncate,
		Ellipsis:     d.Ellipsis,
		StripTags:    d.StripTags,
		StripControl: d.StripControl,
		Slug:         d.Slug,
		Alphanumeric: d.Alphanumeric,
		Alpha:        d.Alpha,
		Numeric:      d.Numeric,
		HexColor:     d.HexColor,
		Escape:       d.Escape,
		Normalize:    d.Normalize,
		Collapse:     d.Collapse,
	}
	for _, rep := range d.Replace {
		re, err := regexp.Compile(rep.Pattern)
		if err != nil {
			return nil, invalidRules(n, "string.replace: %v", err)
		}
		r.Replace = append(r.Replace, sanitizer.Replacement{Pattern: re, With: rep.With})
	}
	for _, expr := range d.Remove {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, invalidRules(n, "string.remove: %v", err)
		}
		r.Remove = append(r.Remove, re)
	}
	return r, nil
}

func (d *numberDoc) rules(n *yaml.Node) (*sanitizer.NumberRules, error) {
	switch sanitizer.Rounding(d.Rounding) {
	case "", sanitizer.RoundNearest, sanitizer.RoundFloor, sanitizer.RoundCeil, sanitizer.RoundTrunc:
	default:
		return nil, invalidRules(n, "number.rounding: unknown mode %q", d.Rounding)
	}
	return &sanitizer.NumberRules{
		Default:   d.Default,
		Finite:    d.Finite,
		Integer:   d.Integer,
		Rounding:  sanitizer.Rounding(d.Rounding),
		Precision: d.Precision,
		Positive:  d.Positive,
		Negative:  d.Negative,
		Absolute:  d.Absolute,
		Min:       d.Min,
		Max:       d.Max,
		Clamp:     d.Clamp,
	}, nil
}

var sortOrders = map[string]sanitizer.SortOrder{
	"":     sanitizer.SortNone,
	"asc":  sanitizer.SortAsc,
	"desc": sanitizer.SortDesc,
}

func (d *arrayDoc) rules(n *yaml.Node, reg *Registry) (*sanitizer.ArrayRules, error) {
	order, ok := sortOrders[d.Sort]
	if !ok {
		return nil, invalidRules(n, "array.sort: unknown order %q", d.Sort)
	}
	r := &sanitizer.ArrayRules{
		Parse:     d.Parse,
		Separator: d.Separator,
		Compact:   d.Compact,
		Unique:    d.Unique,
		UniqueBy:  d.UniqueBy,
		Offset:    d.Offset,
		Limit:     d.Limit,
		Sort:      order,
		SortBy:    d.SortBy,
		Reverse:   d.Reverse,
		Flatten:   d.Flatten,
	}
	if d.Items != nil {
		items, err := parseRule(d.Items, reg)
		if err != nil {
			return nil, err
		}
		r.Items = items
	}
	return r, nil
}

func (d *objectDoc) rules(reg *Registry) (*sanitizer.ObjectRules, error) {
	r := &sanitizer.ObjectRules{
		Parse:         d.Parse,
		Pick:          d.Pick,
		Omit:          d.Omit,
		Rename:        d.Rename,
		Defaults:      d.Defaults,
		RemoveEmpty:   d.RemoveEmpty,
		MaxProperties: d.MaxProperties,
	}
	if len(d.Properties) > 0 {
		r.Properties = make(map[string]sanitizer.Rule, len(d.Properties))
		for name, node := range d.Properties {
			rule, err := parseRule(node, reg)
			if err != nil {
				return nil, err
			}
			r.Properties[name] = rule
		}
	}
	return r, nil
}

func (d *dateDoc) rules(n *yaml.Node) (*sanitizer.DateRules, error) {
	r := &sanitizer.DateRules{
		Layouts: d.Layouts,
		Clamp:   d.Clamp,
		Format:  d.Format,
	}

	if d.Location != "" {
		loc, err := time.LoadLocation(d.Location)
		if err != nil {
			return nil, invalidRules(n, "date.location: %v", err)
		}
		r.Location = loc
	}
	if d.Truncate != "" {
		dur, err := time.ParseDuration(d.Truncate)
		if err != nil {
			return nil, invalidRules(n, "date.truncate: %v", err)
		}
		r.Truncate = dur
	}

	for _, bound := range []struct {
		name  string
		value string
		dst   **time.Time
	}{
		{"min", d.Min, &r.Min},
		{"max", d.Max, &r.Max},
		{"default", d.Default, &r.Default},
	} {
		if bound.value == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, bound.value)
		if err != nil {
			return nil, invalidRules(n, "date.%s: %v", bound.name, err)
		}
		*bound.dst = &t
	}
	return r, nil
}

func invalidRules(n *yaml.Node, format string, args ...any) error {
	return errors.Join(ErrInvalidRules, fmt.Errorf("line %d: "+format, append([]any{n.Line}, args...)...))
}
