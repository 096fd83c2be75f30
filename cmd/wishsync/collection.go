package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bharatshaala/wishsync/internal/models"
	"github.com/bharatshaala/wishsync/internal/services/collection"
)

func init() {
	wishlistCmd := newCollectionCmd("wishlist", func() *collection.Service { return apiClient.Wishlist })
	wishlistCmd.AddCommand(&cobra.Command{
		Use:   "move-to-cart",
		Short: "Move every wishlist item into the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			ok := apiClient.Wishlist.MoveAllTo(cmd.Context(), apiClient.Cart)
			if jsonOutput {
				printJSON(map[string]interface{}{
					"moved":    ok,
					"wishlist": apiClient.Wishlist.Count(),
					"cart":     apiClient.Cart.Count(),
				})
			}
			return nil
		},
	})

	rootCmd.AddCommand(wishlistCmd)
	rootCmd.AddCommand(newCollectionCmd("cart", func() *collection.Service { return apiClient.Cart }))
}

// newCollectionCmd builds the shared command tree for one collection.
// The service getter defers resolution until the client exists.
func newCollectionCmd(name string, svc func() *collection.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Manage your %s", name),
	}

	var item models.CollectionItem
	var outOfStock bool

	addItemFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&item.ID, "id", "", "Product ID (required)")
		c.Flags().StringVar(&item.Name, "name", "", "Product name")
		c.Flags().Float64Var(&item.Price, "price", 0, "Product price")
		c.Flags().StringVar(&item.Image, "image", "", "Product image URL")
		c.Flags().StringVar(&item.Category, "category", "", "Product category")
		c.Flags().StringVar(&item.Vendor, "vendor", "", "Product vendor")
		c.Flags().StringVar(&item.Market, "market", "", "Product market")
		c.Flags().BoolVar(&outOfStock, "out-of-stock", false, "Mark the product out of stock")
		_ = c.MarkFlagRequired("id")
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: fmt.Sprintf("Add a product to the %s", name),
		RunE: func(cmd *cobra.Command, args []string) error {
			item.InStock = !outOfStock
			changed := svc().Add(cmd.Context(), item)
			return reportMutation(svc(), "added", changed)
		},
	}
	addItemFlags(addCmd)

	toggleCmd := &cobra.Command{
		Use:   "toggle",
		Short: fmt.Sprintf("Add or remove a product from the %s", name),
		RunE: func(cmd *cobra.Command, args []string) error {
			item.InStock = !outOfStock
			changed := svc().Toggle(cmd.Context(), item)
			return reportMutation(svc(), "toggled", changed)
		},
	}
	addItemFlags(toggleCmd)

	removeCmd := &cobra.Command{
		Use:   "remove <product-id>",
		Short: fmt.Sprintf("Remove a product from the %s", name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := svc().Remove(cmd.Context(), args[0])
			return reportMutation(svc(), "removed", changed)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List the %s contents", name),
		RunE: func(cmd *cobra.Command, args []string) error {
			items := svc().Items()

			if jsonOutput {
				printJSON(map[string]interface{}{
					"count": len(items),
					"items": items,
				})
				return nil
			}

			if len(items) == 0 {
				printInfo("Your %s is empty", name)
				return nil
			}
			for _, it := range items {
				line := fmt.Sprintf("%-12s %-30s ₹%.2f", it.ID, it.Name, it.Price)
				if !it.InStock {
					line += "  (out of stock)"
				}
				printInfo("%s", line)
			}
			printInfo("%d items", len(items))
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: fmt.Sprintf("Remove everything from the %s", name),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := svc().Clear(cmd.Context())
			return reportMutation(svc(), "cleared", changed)
		},
	}

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: fmt.Sprintf("Re-fetch the %s from your account", name),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok := svc().Refresh(cmd.Context())
			if !ok && !apiClient.Auth.IsAuthenticated() {
				printInfo("Refresh is only available when signed in")
				return nil
			}
			return reportMutation(svc(), "refreshed", ok)
		},
	}

	cmd.AddCommand(addCmd, toggleCmd, removeCmd, listCmd, clearCmd, refreshCmd)
	return cmd
}

func reportMutation(svc *collection.Service, verb string, changed bool) error {
	if jsonOutput {
		out := map[string]interface{}{
			verb:    changed,
			"count": svc.Count(),
		}
		if err := svc.Err(); err != nil {
			out["error"] = err.Error()
		}
		printJSON(out)
	}
	return nil
}
