// Package app builds the service from its configuration. Everything here is
// constructed once per process and reused by every request.
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/githbnaboulsi/shipcore-api/internal/api"
	"github.com/githbnaboulsi/shipcore-api/internal/api/handlers"
	"github.com/githbnaboulsi/shipcore-api/internal/auth/ebay"
	"github.com/githbnaboulsi/shipcore-api/internal/auth/token"
	"github.com/githbnaboulsi/shipcore-api/internal/config"
	"github.com/githbnaboulsi/shipcore-api/internal/db"
	"github.com/githbnaboulsi/shipcore-api/internal/db/mongodb"
	"github.com/githbnaboulsi/shipcore-api/internal/secrets"
	"golang.org/x/oauth2"
)

// Store covers both persistence contracts.
type Store interface {
	token.Store
	handlers.ProductStore
}

// App holds the wired service.
type App struct {
	Handler http.Handler
	Tokens  *token.Manager

	closers []func(context.Context) error
}

// New opens the store, resolves the secrets backend and assembles the router.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	provider, err := newSecretsProvider(ctx, cfg.Secrets)
	if err != nil {
		return nil, err
	}

	a := &App{}
	store, err := a.openStore(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	oauthConfig := func(ctx context.Context) (*oauth2.Config, error) {
		return ebay.GetOAuthConfig(ctx, provider, cfg.Ebay.Secrets, cfg.Ebay.TokenURL)
	}
	a.Tokens = token.NewManager(store, ebay.NewClient(cfg.Ebay.ExchangeTimeout()), oauthConfig,
		token.WithSkew(cfg.Ebay.StatusSkew()),
		token.WithEnvironment(cfg.Ebay.Environment),
	)

	a.Handler = api.NewRouter(api.Deps{
		Tokens:         a.Tokens,
		Products:       store,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		APIKey:         cfg.Server.APIKey,
	})
	return a, nil
}

// Close releases the store connection.
func (a *App) Close(ctx context.Context) error {
	var firstErr error
	for _, c := range a.closers {
		if err := c(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (a *App) openStore(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	if cfg.Driver == config.DriverMongoDB {
		client, err := mongodb.Connect(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Disconnect)
		return mongodb.NewStore(client.Database(cfg.MongoDatabase)), nil
	}

	database, err := db.InitDB(cfg.Driver, cfg.DSN, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	a.closers = append(a.closers, func(context.Context) error { return sqlDB.Close() })
	return db.NewStore(database), nil
}

func newSecretsProvider(ctx context.Context, cfg config.SecretsConfig) (secrets.Provider, error) {
	switch cfg.Provider {
	case config.SecretsSSM:
		log.Printf("🔑 Resolving eBay credentials from SSM (region=%s)", cfg.Region)
		return secrets.NewSSMProvider(ctx, cfg.Region)
	default:
		log.Printf("🔑 Resolving eBay credentials from environment")
		return secrets.NewEnvProvider(cfg.EnvFile)
	}
}
