package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/dmitrymomot/schemakit/pkg/schemafile"
)

func runSanitize(ctx context.Context, a *app, args []string) int {
	fs := flag.NewFlagSet("sanitize", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	rulesPath := fs.String("rules", "", "sanitizer rule document, YAML or JSON (required)")
	inputPath := fs.String("input", "-", "value to sanitize, - reads stdin")
	pretty := fs.Bool("pretty", false, "indent the output")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}
	if *rulesPath == "" {
		fmt.Fprintln(a.stderr, "schemakit sanitize: -rules is required")
		fs.Usage()
		return exitError
	}

	data, err := os.ReadFile(*rulesPath)
	if err != nil {
		return a.fail(errors.Join(schemafile.ErrFailedToRead, err))
	}
	rule, err := schemafile.ParseRules(data, schemafile.NewRegistry(schemafile.WithLogger(a.log)))
	if err != nil {
		return a.fail(fmt.Errorf("%s: %w", *rulesPath, err))
	}
	value, err := a.readInput(ctx, *inputPath)
	if err != nil {
		return a.fail(err)
	}

	if err := a.writeJSON(output(rule.Sanitize(value)), *pretty); err != nil {
		return a.fail(err)
	}
	return exitOK
}
