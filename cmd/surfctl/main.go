// surfctl is an operator CLI for the surf bot: a local chat REPL against the
// same dialogue engine the Kafka bridge runs, and direct calibration edits.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "surfctl",
		Short:         "Operator tooling for the surf session bot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newChatCmd(), newAdjustCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
