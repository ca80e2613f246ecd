// Package main provides the beankit command.
//
// beankit works on the struct types of a Go package and on the small data
// formats the beankit library reads:
//   - gen writes property bag adapters for struct types
//   - shape prints the properties and getters the library sees on a type
//   - xml prints the text of a node of an XML document
//   - inlist joins stdin lines into an SQL IN list body
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
)

// errUsage reports bad command line input; the message was already printed.
var errUsage = errors.New("usage")

func main() {
	log.SetFlags(0)
	log.SetPrefix("beankit: ")

	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	default:
		log.Fatal(err)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		usage(stderr)
		return errUsage
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "gen":
		return genCmd(rest, stdout, stderr)
	case "shape":
		return shapeCmd(rest, stdout, stderr)
	case "xml":
		return xmlCmd(rest, stdout, stderr)
	case "inlist":
		return inlistCmd(rest, stdin, stdout, stderr)
	default:
		usage(stderr)
		return errUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `beankit

Usage:
  beankit gen -pkg ./path [-type T1,T2] [-config beankit.yaml] [-o dir]
  beankit shape -pkg ./path [-type T1,T2] [-v]
  beankit xml -file doc.xml [-path a/b] -node c
  beankit inlist < values.txt
`)
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	return fs
}
