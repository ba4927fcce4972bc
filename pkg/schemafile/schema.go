package schemafile

import (
	"errors"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/schemakit/pkg/kind"
	"github.com/dmitrymomot/schemakit/pkg/validator"
)

// ParseSchema reads a YAML or JSON schema document.
//
// Keys: type (a kind name or a list of names), required, default, properties
// (declaration order is kept), items, minLength, maxLength, pattern, format,
// formats, min, max, integer, minItems, maxItems, enum, trim, check,
// checkAsync and messages. Every format name is also accepted as a boolean
// shorthand ("email: true"). title and description are ignored.
func ParseSchema(data []byte, reg *Registry) (validator.Schema, error) {
	root, err := parseNode(data)
	if err != nil {
		return validator.Schema{}, errors.Join(ErrInvalidSchema, err)
	}
	p := &schemaParser{reg: reg}
	return p.schema(root)
}

type schemaParser struct {
	reg   *Registry
	async bool
}

func (p *schemaParser) schema(n *yaml.Node) (validator.Schema, error) {
	n = resolve(n)
	var s validator.Schema
	if n.Kind != yaml.MappingNode {
		return s, invalidSchema(n, "expected a mapping, got %s", nodeKind(n))
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i].Value, resolve(n.Content[i+1])
		if err := p.field(&s, key, val); err != nil {
			return s, err
		}
	}
	return s, nil
}

func (p *schemaParser) field(s *validator.Schema, key string, n *yaml.Node) error {
	var err error
	switch key {
	case "type":
		s.Type, err = parseKinds(n)
	case "required":
		err = decode(n, &s.Required)
	case "default":
		err = decode(n, &s.Default)
	case "properties":
		props, perr := p.properties(n)
		if perr != nil {
			return perr
		}
		s.Properties = props
	case "items":
		items, ierr := p.schema(n)
		if ierr != nil {
			return ierr
		}
		s.Items = &items
	case "minLength":
		s.MinLength, err = optional[int](n)
	case "maxLength":
		s.MaxLength, err = optional[int](n)
	case "pattern":
		var expr string
		if err = decode(n, &expr); err == nil {
			if s.Pattern, err = regexp.Compile(expr); err != nil {
				return invalidSchema(n, "pattern: %v", err)
			}
		}
	case "format":
		var name string
		if err = decode(n, &name); err == nil {
			return addFormat(s, n, name)
		}
	case "formats":
		var names []string
		if err = decode(n, &names); err == nil {
			for _, name := range names {
				if ferr := addFormat(s, n, name); ferr != nil {
					return ferr
				}
			}
		}
	case "min":
		s.Min, err = optional[float64](n)
	case "max":
		s.Max, err = optional[float64](n)
	case "integer":
		err = decode(n, &s.Integer)
	case "minItems":
		s.MinItems, err = optional[int](n)
	case "maxItems":
		s.MaxItems, err = optional[int](n)
	case "enum":
		err = decode(n, &s.Enum)
	case "trim":
		err = decode(n, &s.Trim)
	case "check":
		var name string
		if err = decode(n, &name); err == nil {
			pred, ok := p.reg.check(name)
			if !ok {
				return errors.Join(ErrInvalidSchema, ErrUnknownCheck, fmt.Errorf("line %d: check %q is not registered", n.Line, name))
			}
			s.Validate = pred
		}
	case "checkAsync":
		var name string
		if err = decode(n, &name); err == nil {
			pred, ok := p.reg.asyncCheck(name)
			if !ok {
				return errors.Join(ErrInvalidSchema, ErrUnknownCheck, fmt.Errorf("line %d: async check %q is not registered", n.Line, name))
			}
			s.ValidateAsync = pred
			p.async = true
		}
	case "messages":
		var msgs map[string]string
		if err = decode(n, &msgs); err == nil {
			s.Messages = make(map[validator.ErrorType]string, len(msgs))
			for t, msg := range msgs {
				s.Messages[validator.ErrorType(t)] = msg
			}
		}
	case "title", "description":
	default:
		f, ok := validator.ParseFormat(key)
		if !ok {
			return invalidSchema(n, "unknown key %q", key)
		}
		var on bool
		if err = decode(n, &on); err == nil && on {
			s.Formats = append(s.Formats, f)
		}
	}

	if err != nil {
		return invalidSchema(n, "%s: %v", key, err)
	}
	return nil
}

func (p *schemaParser) properties(n *yaml.Node) ([]validator.Property, error) {
	if n.Kind != yaml.MappingNode {
		return nil, invalidSchema(n, "properties: expected a mapping, got %s", nodeKind(n))
	}
	props := make([]validator.Property, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		child, err := p.schema(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		props = append(props, validator.Prop(n.Content[i].Value, child))
	}
	return props, nil
}

func parseKinds(n *yaml.Node) (kind.Kind, error) {
	var names []string
	switch n.Kind {
	case yaml.ScalarNode:
		names = []string{n.Value}
	case yaml.SequenceNode:
		if err := n.Decode(&names); err != nil {
			return 0, err
		}
	default:
		return 0, fmt.Errorf("expected a kind name or a list of names")
	}

	var k kind.Kind
	for _, name := range names {
		parsed, ok := kind.Parse(name)
		if !ok {
			return 0, fmt.Errorf("unknown kind %q", name)
		}
		k |= parsed
	}
	return k, nil
}

func addFormat(s *validator.Schema, n *yaml.Node, name string) error {
	f, ok := validator.ParseFormat(name)
	if !ok {
		return invalidSchema(n, "unknown format %q", name)
	}
	s.Formats = append(s.Formats, f)
	return nil
}

func invalidSchema(n *yaml.Node, format string, args ...any) error {
	return errors.Join(ErrInvalidSchema, fmt.Errorf("line %d: "+format, append([]any{n.Line}, args...)...))
}
