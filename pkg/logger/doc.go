// Package logger builds *slog.Logger values with functional options and
// provides the attribute helpers used across schemakit.
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("SCHEMAKIT_ENV"), "schemakit"),
//	    logger.WithContextExtractors(requestid.Extractor),
//	)
//	log.InfoContext(ctx, "schema loaded", logger.Schema("signup"), logger.Path(path))
//
// Context extractors run on every record, so request scoped values such as
// the request id show up without passing a derived logger around.
package logger
