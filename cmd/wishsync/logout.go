package main

import (
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out of your Bharatshaala account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := apiClient.Auth.Logout(cmd.Context()); err != nil {
			printError("Logout failed: %v", err)
			return err
		}

		if jsonOutput {
			printJSON(map[string]interface{}{"success": true})
		} else {
			printSuccess("Logged out")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
