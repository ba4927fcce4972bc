// Package httpvalidate enforces a validation pipeline on JSON request bodies.
//
//	stage := pipeline.New(
//	    pipeline.Sanitize(rules),
//	    pipeline.ValidateAsync(validator.NewAsync(schema)),
//	)
//	r.With(httpvalidate.Middleware(stage)).Post("/signup", func(w http.ResponseWriter, r *http.Request) {
//	    body, _ := httpvalidate.FromContext(r.Context())
//	    ...
//	})
//
// Rejected requests get a JSON envelope:
//
//	{"error": {"code": "validation_failed", "message": "Validation failed",
//	           "details": [{"path": "email", "message": "...", "type": "email"}]}}
//
// Status codes: 400 for malformed JSON, 413 above the body limit, 415 for a
// non JSON content type, 422 for validation failures and 500 when a stage
// returns an error.
package httpvalidate
