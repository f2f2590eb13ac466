// Package main provides the entry point for the GapDebug career coaching API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gapdebug",
	Short: "GapDebug career coaching API server",
	Long:  "GapDebug parses resumes, analyzes onboarding profiles, and generates skill-gap learning roadmaps through OpenRouter-hosted models, exposed over a REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
