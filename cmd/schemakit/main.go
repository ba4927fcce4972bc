// Command schemakit validates and sanitizes JSON or YAML values against
// schema documents, from the command line or over HTTP.
//
//	schemakit validate -schema schemas/signup.yaml -input body.json
//	schemakit sanitize -rules rules/profile.yaml < body.json
//	schemakit serve -dir schemas -addr :8080
//
// Settings not given as flags are read from SCHEMAKIT_* environment variables
// and an optional .env file.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Exit codes.
const (
	exitOK      = 0
	exitInvalid = 1
	exitError   = 2
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, app *app, args []string) int
}

var commands = []command{
	{"validate", "sanitize (if the document declares rules) and validate a value", runValidate},
	{"sanitize", "apply a sanitizer rule document to a value", runSanitize},
	{"serve", "serve POST /validate/{name} for every document in a directory", runServe},
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		usage(stderr)
		if len(args) == 0 {
			return exitError
		}
		return exitOK
	}

	for _, cmd := range commands {
		if cmd.name != args[0] {
			continue
		}
		a, err := newApp(stdin, stdout, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "schemakit: %v\n", err)
			return exitError
		}
		return cmd.run(ctx, a, args[1:])
	}

	fmt.Fprintf(stderr, "schemakit: unknown command %q\n\n", args[0])
	usage(stderr)
	return exitError
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: schemakit <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", cmd.name, cmd.usage)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, `Run "schemakit <command> -h" for the flags of a command.`)
}
