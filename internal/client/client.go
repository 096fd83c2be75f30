package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bharatshaala/wishsync/internal/config"
	"github.com/bharatshaala/wishsync/internal/events"
	"github.com/bharatshaala/wishsync/internal/models"
	"github.com/bharatshaala/wishsync/internal/remote"
	"github.com/bharatshaala/wishsync/internal/services/auth"
	"github.com/bharatshaala/wishsync/internal/services/collection"
	"github.com/bharatshaala/wishsync/internal/store"
	"github.com/bharatshaala/wishsync/internal/transport"
)

// Client provides the high-level API for storefront collection sync.
type Client struct {
	Auth     *auth.Service
	Wishlist *collection.Service
	Cart     *collection.Service

	config    *config.Config
	logger    *events.Logger
	transport transport.Transport
	local     store.Store
}

// New creates a client with all collaborators wired.
func New(cfg *config.Config, notifier events.Notifier, logger *events.Logger) (*Client, error) {
	transportClient := transport.NewHTTPClient(&cfg.API, logger)

	localStore, err := newLocalStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	tokenFile := cfg.Auth.TokenFile
	if tokenFile == "" {
		tokenFile = filepath.Join(cfg.Storage.DataDir, "token.json")
	}

	authService := auth.NewService(transportClient, tokenFile, logger)

	if notifier == nil {
		notifier = events.NewLogNotifier(logger)
	}

	wishlist := collection.NewService(
		models.KindWishlist,
		localStore,
		remote.NewStore(transportClient, models.KindWishlist, logger),
		authService,
		notifier,
		logger,
	)
	cart := collection.NewService(
		models.KindCart,
		localStore,
		remote.NewStore(transportClient, models.KindCart, logger),
		authService,
		notifier,
		logger,
	)

	// The merge watchers must be registered before any login or session
	// restore so the sign-in edge is never missed.
	authService.Watch(wishlist.HandleAuthChange)
	authService.Watch(cart.HandleAuthChange)

	return &Client{
		Auth:      authService,
		Wishlist:  wishlist,
		Cart:      cart,
		config:    cfg,
		logger:    logger,
		transport: transportClient,
		local:     localStore,
	}, nil
}

// Start restores a persisted session, if any, and populates both
// collections for the resulting authentication mode.
func (c *Client) Start(ctx context.Context) {
	if err := c.Auth.Restore(); err != nil {
		// Not authenticated; collections load from the guest store.
		c.Wishlist.Load(ctx)
		c.Cart.Load(ctx)
	}
	// A successful restore fires the auth watchers, which populate the
	// collections from the remote store.
}

// Close releases resources.
func (c *Client) Close() error {
	if err := c.local.Close(); err != nil {
		return fmt.Errorf("close local store: %w", err)
	}
	return c.transport.Close()
}

func newLocalStore(cfg *config.Config, logger *events.Logger) (store.Store, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		if err := os.MkdirAll(cfg.Storage.DataDir, 0700); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		return store.NewSQLiteStore(filepath.Join(cfg.Storage.DataDir, "collections.db"), logger)
	default:
		return store.NewJSONStore(cfg.Storage.DataDir, logger)
	}
}
