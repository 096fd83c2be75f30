package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bharatshaala/wishsync/internal/client"
	"github.com/bharatshaala/wishsync/internal/config"
	"github.com/bharatshaala/wishsync/internal/events"
)

var (
	cfgFile    string
	jsonOutput bool

	cfg       *config.Config
	logger    *events.Logger
	apiClient *client.Client
)

var rootCmd = &cobra.Command{
	Use:   "wishsync",
	Short: "Bharatshaala wishlist and cart sync client",
	Long: `wishsync keeps your Bharatshaala wishlist and shopping cart in sync.

As a guest your collections live on this device; after login they live in
your storefront account, and anything collected as a guest is merged into
the account the moment you sign in.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.NewLoader(cfgFile).Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger = events.NewLogger(cfg.Log.Level, cfg.Log.Format)

		apiClient, err = client.New(cfg, notifier(), logger)
		if err != nil {
			return fmt.Errorf("create client: %w", err)
		}

		apiClient.Start(cmd.Context())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if apiClient != nil {
			return apiClient.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Config file path (default: ./wishsync.yaml, ~/.wishsync/wishsync.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Output results as JSON")
}
