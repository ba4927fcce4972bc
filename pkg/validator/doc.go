// Package validator checks arbitrary nested values (as produced by decoding
// JSON or YAML into any) against a declarative Schema and reports every
// failure as a structured, path-qualified ValidationError.
//
// A Schema describes the expected kind of a value (a single kind.Kind or a
// union), whether it is required, an optional default, nested property and item
// schemas, scalar constraints (length, pattern, range, integer, item counts),
// named semantic formats such as email or uuid, and custom predicates.
//
// # Architecture
//
// Validate walks the value depth-first. For each node it injects defaults,
// handles required/absent values, checks the kind, runs the kind specific
// constraints and finally the custom Predicate. An absent required value yields
// exactly one "required" error and nothing else for that node; a kind mismatch
// stops descending into that node. Properties are visited in declaration order,
// so the error list is deterministic.
//
// ValidateAsync adds a second phase: nodes that declare an AsyncPredicate and
// passed their synchronous checks run concurrently, and their failures are
// appended in schema order rather than completion order.
//
// The package holds no global mutable state. Schemas are read-only after
// construction and Validator values are safe for concurrent use.
//
// # Usage
//
//	signup := validator.New(validator.Schema{
//	    Type: kind.Object,
//	    Properties: []validator.Property{
//	        validator.Prop("name", validator.Schema{Type: kind.String, Required: true, Trim: true, MinLength: kind.Ptr(2)}),
//	        validator.Prop("email", validator.Schema{Type: kind.String, Required: true, Formats: []validator.Format{validator.FormatEmail}}),
//	        validator.Prop("age", validator.Schema{Type: kind.Number, Integer: true, Min: kind.Ptr(18.0)}),
//	    },
//	})
//
//	res := signup.Validate(payload)
//	if !res.Valid {
//	    for _, e := range res.Errors {
//	        fmt.Println(e.Path, e.Type, e.Message)
//	    }
//	}
//
// # Error Handling
//
// Validation failures are data, never returned errors. Result.Err exposes them
// as ValidationErrors, which implements error and matches ErrValidationFailed
// through errors.Is. A panicking Predicate or AsyncPredicate is recovered and
// reported as a "custom" or "asyncCustom" error carrying the panic message.
package validator
