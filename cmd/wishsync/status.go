package main

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication state and collection sizes",
	RunE: func(cmd *cobra.Command, args []string) error {
		authenticated := apiClient.Auth.IsAuthenticated()

		status := map[string]interface{}{
			"authenticated": authenticated,
			"wishlist":      apiClient.Wishlist.Count(),
			"cart":          apiClient.Cart.Count(),
		}
		if session, err := apiClient.Auth.Session(); err == nil {
			status["email"] = session.Email
			status["user_id"] = session.UserID
		}

		if jsonOutput {
			printJSON(status)
			return nil
		}

		if authenticated {
			printInfo("Signed in as %s", status["email"])
		} else {
			printInfo("Browsing as guest (collections stored on this device)")
		}
		printInfo("Wishlist: %d items", apiClient.Wishlist.Count())
		printInfo("Cart:     %d items", apiClient.Cart.Count())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
