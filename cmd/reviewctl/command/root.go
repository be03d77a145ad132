package command

import (
	"fmt"
	"os"

	"bookreviews/pkg/client"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var apiURL string // Global flag for API server URL

var rootCmd = &cobra.Command{
	Use:   "reviewctl",
	Short: "reviewctl - command line client for the book reviews API",
	Long: `reviewctl talks to the book reviews API. It can:
- list reviews, newest first
- add a review
- edit fields of an existing review
- delete a review

The API address comes from --api or REVIEWS_API_URL.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	_ = godotenv.Load()

	defaultURL := os.Getenv("REVIEWS_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:5000"
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultURL, "API server URL")

	rootCmd.AddCommand(listCmd, addCmd, editCmd, rmCmd)
}

func newClient() *client.Client {
	return client.New(apiURL)
}
