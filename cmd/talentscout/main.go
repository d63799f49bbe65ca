// Package main provides the entry point for the TalentScout hiring assistant server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "talentscout",
	Short: "TalentScout AI Hiring Assistant",
	Long:  "TalentScout runs scripted screening interviews over a REST API: it collects candidate details, asks one role-appropriate technical question, and stores a recruiter-ready profile.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
