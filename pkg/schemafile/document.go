package schemafile

import (
	"errors"

	"github.com/dmitrymomot/schemakit/pkg/pipeline"
	"github.com/dmitrymomot/schemakit/pkg/sanitizer"
	"github.com/dmitrymomot/schemakit/pkg/validator"
)

// Document is a named schema with optional sanitizer rules.
//
// A document file either holds a bare schema, or a mapping with a "schema"
// key and an optional "sanitize" key holding a rule document.
type Document struct {
	Name   string
	Schema validator.Schema
	// Rules is nil when the document declares no sanitizer.
	Rules sanitizer.Rule
	// Async reports whether any node declares checkAsync.
	Async bool
}

// Parse reads a document.
func Parse(name string, data []byte, reg *Registry) (*Document, error) {
	root, err := parseNode(data)
	if err != nil {
		return nil, errors.Join(ErrInvalidSchema, err)
	}

	doc := &Document{Name: name}
	body := root
	if s := mappingKey(root, "schema"); s != nil {
		body = s
		if r := mappingKey(root, "sanitize"); r != nil {
			if doc.Rules, err = parseRule(r, reg); err != nil {
				return nil, err
			}
		}
		for i := 0; i+1 < len(root.Content); i += 2 {
			switch key := root.Content[i].Value; key {
			case "schema", "sanitize", "title", "description":
			default:
				return nil, invalidSchema(root.Content[i], "unknown document key %q", key)
			}
		}
	}

	p := &schemaParser{reg: reg}
	if doc.Schema, err = p.schema(body); err != nil {
		return nil, err
	}
	doc.Async = p.async
	return doc, nil
}

// Validator binds the document schema to a reusable async validator.
// Documents without async checks validate synchronously through it as well.
func (d *Document) Validator(defaults ...validator.Option) *validator.AsyncValidator {
	return validator.NewAsync(d.Schema, defaults...)
}

// Pipeline sanitizes (when rules are declared) and then validates.
func (d *Document) Pipeline(defaults ...validator.Option) pipeline.Stage {
	return pipeline.New(
		pipeline.Sanitize(d.Rules),
		pipeline.ValidateAsync(d.Validator(defaults...)),
	)
}
