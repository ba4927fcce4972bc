// Package schemafile loads validator schemas and sanitizer rules from YAML or
// JSON documents.
//
// A schema document mirrors validator.Schema:
//
//	type: object
//	properties:
//	  username:
//	    type: string
//	    required: true
//	    minLength: 3
//	    checkAsync: username_available
//	  email:
//	    type: string
//	    email: true
//
// Property order in the document is the order errors are reported in.
// Predicates cannot be written in a document, so check and checkAsync refer
// to names bound in a Registry:
//
//	reg := schemafile.NewRegistry()
//	reg.RegisterAsync("username_available", checks.RedisAbsent(rdb, "usernames"))
//	docs, err := schemafile.LoadDir(ctx, "./schemas", reg)
//
// A combined document adds sanitizer rules under "sanitize" and moves the
// schema under "schema". Document.Pipeline runs both in order.
package schemafile
