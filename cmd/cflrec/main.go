/*
Cflrec decides, for a batch of query words read from a file or stdin,
whether each belongs to the language of a context-free grammar also read
from that input.

Usage:

	cflrec [flags]

The flags are:

	-v, --version
		Give the current version of cflrec and then exit.

	-f, --file FILE
		Read the grammar and query batch from FILE instead of stdin.

	-e, --engine earley|lr1|both
		Select which recognizer engine(s) decide membership. "both" (the
		default) fits both engines and cross-checks their answers against
		each other on every query.

	-t, --trace
		Print the fitted LR(1) ACTION/GOTO table to stderr before answering
		any query. Has no effect when --engine=earley.

Input format is described in SPEC_FULL.md, section 6. Output is one "Yes" or "No"
line per query, written to stdout.
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dekarrin/cflrec/internal/driver"
	"github.com/dekarrin/cflrec/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates every query in the batch was processed.
	ExitSuccess = iota

	// ExitUsageError indicates a bad --engine value or similar CLI misuse.
	ExitUsageError

	// ExitInputError indicates a malformed grammar, start symbol, rule, or
	// query word in the input batch.
	ExitInputError
)

var (
	returnCode  = ExitSuccess
	flagVersion = pflag.BoolP("version", "v", false, "Gives the version info")
	inputFile   = pflag.StringP("file", "f", "", "Read the grammar and queries from this file instead of stdin")
	engineFlag  = pflag.StringP("engine", "e", "both", "Recognizer engine to use: earley, lr1, or both")
	traceFlag   = pflag.BoolP("trace", "t", false, "Print the fitted LR(1) ACTION/GOTO table to stderr before answering queries")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	which, err := parseEngine(*engineFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitUsageError
		return
	}

	in := os.Stdin
	if *inputFile != "" {
		f, openErr := os.Open(*inputFile)
		if openErr != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", openErr.Error())
			returnCode = ExitInputError
			return
		}
		defer f.Close()
		in = f
	}

	var trace io.Writer
	if *traceFlag {
		trace = os.Stderr
	}

	if runErr := driver.RunTrace(in, os.Stdout, which, trace); runErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", runErr.Error())
		returnCode = ExitInputError
		return
	}
}

func parseEngine(s string) (driver.Engine, error) {
	switch s {
	case "earley":
		return driver.Earley, nil
	case "lr1":
		return driver.LR1, nil
	case "both":
		return driver.Both, nil
	default:
		return 0, fmt.Errorf("unknown engine %q: want earley, lr1, or both", s)
	}
}
