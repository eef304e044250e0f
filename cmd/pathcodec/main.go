// Package main provides the CLI entrypoint for pathcodec.
//
// pathcodec reads a YAML schema of types whose fields live at key paths
// inside nested keyed containers and:
//   - prints the synthesized decode / encode plans
//   - generates Go codecs running those plans
//   - decodes and encodes documents by interpreting the plans
//   - validates schemas with readable diagnostics
//   - scans pathcodec struct tags of Go packages into a schema
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// version is overridden at link time.
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type command struct {
	name  string
	short string
	run   func(c *cli, args []string) error
}

var commands = []command{
	{"plan", "Print the decode and encode plans of schema types", (*cli).plan},
	{"gen", "Generate Go codecs for schema types", (*cli).gen},
	{"decode", "Decode a JSON or YAML document with a schema type", (*cli).decode},
	{"encode", "Encode field values into a document with a schema type", (*cli).encode},
	{"scan", "Write a schema for the annotated structs of Go packages", (*cli).scan},
	{"validate", "Validate a schema file", (*cli).validate},
	{"init", "Write a default configuration file", (*cli).initConfig},
	{"version", "Show version information", (*cli).version},
}

// run executes one command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 2
	}

	name := args[0]
	if name == "-h" || name == "-help" || name == "--help" || name == "help" {
		printUsage(stdout)
		return 0
	}

	for _, cmd := range commands {
		if cmd.name != name {
			continue
		}

		c := &cli{name: name, stdout: stdout, stderr: stderr}
		defer c.close()

		switch err := cmd.run(c, args[1:]); {
		case err == nil, errors.Is(err, errHelp):
			return 0
		case errors.Is(err, errUsage):
			return 2
		default:
			fmt.Fprintf(stderr, "%s: %v\n", name, err)
			return 1
		}
	}

	fmt.Fprintf(stderr, "Unknown command: %s\n", name)
	printUsage(stderr)

	return 2
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: pathcodec <command> [options]\n")
	fmt.Fprintf(w, "\nCommands:\n")

	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", cmd.name, cmd.short)
	}

	fmt.Fprintf(w, "\nRun 'pathcodec <command> -h' for help on a specific command.\n")
}
