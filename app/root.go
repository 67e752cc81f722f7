// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "guestbook",
	Short: "Guestbook is a small self-hosted guestbook web service",
	Long: `Guestbook is a small self-hosted guestbook web service with optional
moderation, an admin panel and an embeddable widget script for third-party pages.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
