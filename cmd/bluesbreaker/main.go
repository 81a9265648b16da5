// Command bluesbreaker runs audio through the Bluesbreaker amp model.
//
// Usage:
//
//	bluesbreaker <command> [flags] [args]
//
// Commands:
//
//	render    process one wav file into another
//	batch     process many wav files into a directory
//	play      loop a wav file through the amp with keyboard knobs
//	response  print the small-signal magnitude response of a knob setting
//	info      print the resolved stages and coefficients
//
// Examples:
//
//	bluesbreaker render -gain 7 -tone 4 in.wav out.wav
//	bluesbreaker batch -out rendered -jobs 4 takes/*.wav
//	bluesbreaker play -gain 8 riff.wav
//	bluesbreaker response -gain 10 -tone 2 -measure
//	bluesbreaker info -shaper tanh
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

type command struct {
	name  string
	usage string
	run   func(args []string, stdout, stderr io.Writer) error
}

var commands = []command{
	{"render", "process one wav file into another", runRender},
	{"batch", "process many wav files into a directory", runBatch},
	{"play", "loop a wav file through the amp with keyboard knobs", runPlay},
	{"response", "print the small-signal magnitude response", runResponse},
	{"info", "print the resolved stages and coefficients", runInfo},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "-help" || args[0] == "help" {
		usage(stderr)

		if len(args) == 0 {
			return 2
		}

		return 0
	}

	for _, c := range commands {
		if c.name != args[0] {
			continue
		}

		err := c.run(args[1:], stdout, stderr)
		switch {
		case err == nil:
			return 0
		case errors.Is(err, flag.ErrHelp):
			return 0
		case errors.Is(err, errUsage):
			return 2
		default:
			_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
	}

	_, _ = fmt.Fprintf(stderr, "error: unknown command %q\n\n", args[0])
	usage(stderr)

	return 2
}

func usage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Usage: bluesbreaker <command> [flags] [args]\n\n")
	_, _ = fmt.Fprintf(w, "Runs audio through a Bluesbreaker-style overdrive model.\n\n")
	_, _ = fmt.Fprintf(w, "Commands:\n")

	for _, c := range commands {
		_, _ = fmt.Fprintf(w, "  %-9s %s\n", c.name, c.usage)
	}

	_, _ = fmt.Fprintf(w, "\nRun 'bluesbreaker <command> -h' for command flags.\n")
}
