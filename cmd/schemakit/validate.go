package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/dmitrymomot/schemakit/pkg/kind"
	"github.com/dmitrymomot/schemakit/pkg/schemafile"
	"github.com/dmitrymomot/schemakit/pkg/validator"
)

func runValidate(ctx context.Context, a *app, args []string) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	schemaPath := fs.String("schema", "", "schema document, YAML or JSON (required)")
	inputPath := fs.String("input", "-", "value to validate, - reads stdin")
	abortEarly := fs.Bool("abort-early", false, "stop at the first error")
	pretty := fs.Bool("pretty", false, "indent the output")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}
	if *schemaPath == "" {
		fmt.Fprintln(a.stderr, "schemakit validate: -schema is required")
		fs.Usage()
		return exitError
	}

	reg := schemafile.NewRegistry(schemafile.WithLogger(a.log))
	b, err := connectBackends(ctx, a, reg)
	if err != nil {
		return a.fail(err)
	}
	defer b.Close()

	doc, err := schemafile.LoadFile(*schemaPath, reg)
	if err != nil {
		return a.fail(err)
	}
	value, err := a.readInput(ctx, *inputPath)
	if err != nil {
		return a.fail(err)
	}

	res, err := doc.Pipeline(validator.AbortEarly(*abortEarly))(ctx, value)
	if err != nil {
		return a.fail(err)
	}
	if res.Errors == nil {
		res.Errors = validator.ValidationErrors{}
	}
	res.Value = output(res.Value)
	if err := a.writeJSON(res, *pretty); err != nil {
		return a.fail(err)
	}
	if !res.Valid {
		return exitInvalid
	}
	return exitOK
}

// output maps the absent marker to null for encoding.
func output(v any) any {
	if kind.IsAbsent(v) {
		return nil
	}
	return v
}
