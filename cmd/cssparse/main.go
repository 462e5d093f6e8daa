package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cssparse",
		Short: "Stream CSS parse events for a stylesheet",
		Long: `cssparse reads a CSS stylesheet and prints its parse events in document
order: rule boundaries, declarations, at-rules, and syntax errors.`,
	}

	rootCmd.AddCommand(parseCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
