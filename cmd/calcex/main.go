// Command calcex is the textual front end for the expression engine:
// a cobra command tree replacing the teacher's (robpike.io/ivy) hand-
// rolled flag.Parse loop in its own main.go.
package main

import (
	"fmt"
	"os"

	"mathex.dev/calcex/cmd/calcex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
