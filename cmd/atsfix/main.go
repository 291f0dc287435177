// Package main provides the entry point for the ATS resume fixer.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "atsfix",
	Short: "ATS Resume Fixer",
	Long:  "atsfix scores resumes for ATS compatibility and regenerates them as clean, parseable PDFs, preserving as much of the original layout as the score allows.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
