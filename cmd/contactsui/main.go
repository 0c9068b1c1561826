package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "contactsui",
	Short: "Contact management front end for the contacts API",
	Long: `contactsui serves the contact list, upload, add and edit views for browsers
and forwards every change to the remote contacts API named by API_HOST.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(newServeCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
