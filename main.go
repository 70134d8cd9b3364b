package main

import (
	"fmt"
	"os"
)

// Version information, set at build time.
var version = "dev"

func main() {
	err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func run() error {
	a := newApp(os.Stdout)
	cmd := newRootCommand(a)
	return cmd.Execute()
}
