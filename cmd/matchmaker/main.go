// Package main provides the entry point for the JobFit matchmaker API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "matchmaker",
	Short: "Resume matching HTTP API server",
	Long:  "Matchmaker analyzes job descriptions, retrieves candidate resumes via hybrid search, and ranks them with per-dimension LLM evaluations via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
