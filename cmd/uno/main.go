// uno checks the one-definition-per-file rule: every production source file
// declares exactly one top-level class or function.
package main

import (
	"fmt"
	"os"

	"github.com/cursorcult/uno/cmd/uno/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if code := cmd.ExitCode(err); code >= 0 {
			os.Exit(code)
		}
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(2)
	}
}
