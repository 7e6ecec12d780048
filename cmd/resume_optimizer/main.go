// Package main implements the resume_optimizer CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_optimizer",
	Short: "Resume vs job posting analysis and optimization",
	Long:  "Resume Optimizer parses a resume and a job posting into structured records, scores their compatibility, and rewrites the resume to surface evidence the posting asks for, via CLI commands or a REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
