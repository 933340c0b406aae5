// acdat scans text for a set of patterns with a double-array Aho-Corasick automaton.
package main

import (
	"os"

	"acdat/cmd/acdat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
