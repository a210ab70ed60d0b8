// Package main provides the evalnet CLI.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
)

const version = "v0.1.0-dev"

func main() {
	log.SetFlags(0)
	log.SetPrefix("evalnet: ")

	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		usage(stdout)
		return nil
	}

	switch args[0] {
	case "version":
		_, err := fmt.Fprintf(stdout, "evalnet %s\n", version)
		return err
	case "describe":
		return describe(args[1:], stdout)
	case "export":
		return export(args[1:], stdout)
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	default:
		usage(stdout)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "evalnet - fixed-shape evaluation networks")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version                 Show version")
	fmt.Fprintln(w, "  describe [-arch name]   Print the stages and parameter counts of a network")
	fmt.Fprintln(w, "  export -out file        Initialize a network, take one Adam step and write its parameters")
}
