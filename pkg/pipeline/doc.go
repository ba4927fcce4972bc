// Package pipeline composes sanitizers, validators and arbitrary transforms
// into a single stage.
//
// Every stage shares one signature, so a composed pipeline is itself a Stage
// and can be nested inside another:
//
//	signup := pipeline.New(
//	    pipeline.Sanitize(sanitizer.ObjectRules{
//	        Pick: []string{"email", "username"},
//	        Properties: map[string]sanitizer.Rule{
//	            "email": sanitizer.StringRules{Trim: true, Case: sanitizer.CaseLower},
//	        },
//	    }),
//	    pipeline.ValidateAsync(usernameValidator),
//	    pipeline.Transform(normalizeProfile),
//	)
//
//	res, _ := signup(ctx, payload, validator.AbortEarly(true))
//
// Stage failures never escape as errors: a failing or panicking stage is
// reported as a single "pipeline" ValidationError at the root path.
package pipeline
