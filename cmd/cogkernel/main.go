// Command cogkernel runs the cognitive pipeline runtime: Salience, Memory
// Windows, Thought Assembly, Attention, and Continuity, coordinated by the
// Cognitive Loop, each isolated behind its own goakt actor mailbox.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
