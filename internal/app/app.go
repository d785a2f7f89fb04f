// Package app wires configuration, storage and the HTTP router together.
// Both the standalone server and the Lambda entry point build on it.
package app

import (
	"context"
	"fmt"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/login-api/internal/api"
	"github.com/isdelr/login-api/internal/auth"
	"github.com/isdelr/login-api/internal/config"
	"github.com/isdelr/login-api/internal/database"
	"github.com/isdelr/login-api/internal/services"
	"github.com/isdelr/login-api/internal/store"
	"github.com/rs/zerolog/log"
)

// App holds the long-lived dependencies of the service.
type App struct {
	Config *config.Config
	Router *chi.Mux

	closers []func() error
}

// New builds the credential store selected by cfg.StoreDriver and the router on top of it.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	credStore, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authService := services.NewAuthService(credStore, tokens, cfg.BcryptCost)
	a.Router = api.NewRouter(authService, cfg.CORSAllowedOrigins)

	log.Info().Str("store", cfg.StoreDriver).Dur("token_ttl", cfg.TokenTTL).Msg("Application initialized")
	return a, nil
}

func (a *App) openStore(ctx context.Context) (store.CredentialStore, error) {
	cfg := a.Config
	switch cfg.StoreDriver {
	case config.DriverDynamoDB:
		client, err := store.NewDynamoClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize DynamoDB client: %w", err)
		}
		return store.NewDynamoStore(client, cfg.UserTable), nil

	case config.DriverSQLite, config.DriverPostgres:
		dialect, dsn := database.SQLite, cfg.DatabasePath
		if cfg.StoreDriver == config.DriverPostgres {
			dialect, dsn = database.Postgres, cfg.DatabaseURL
		}
		db, err := database.New(ctx, dialect, dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.closers = append(a.closers, db.Close)

		if err := database.Migrate(ctx, db); err != nil {
			return nil, err
		}
		return store.NewSQLStore(db), nil

	case config.DriverMemory:
		log.Warn().Msg("Using in-memory credential store, users are lost on restart")
		return store.NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// Close releases the store connections.
func (a *App) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			log.Error().Err(err).Msg("Failed to close resource")
		}
	}
	a.closers = nil
}
