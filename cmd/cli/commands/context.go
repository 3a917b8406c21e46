package commands

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jakechorley/nurse-roster/internal/config"
	"github.com/jakechorley/nurse-roster/pkg/clients/sheetsclient"
	"github.com/jakechorley/nurse-roster/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands.
// Config, database and sheets client are created on first use so that commands
// working on local instance files need neither.
type AppContext struct {
	Env    string
	Logger *zap.Logger
	Ctx    context.Context

	cfg      *config.Config
	database *postgres.DB
	sheets   *sheetsclient.Client
}

// Config loads the configuration of the environment
func (app *AppContext) Config() (*config.Config, error) {
	if app.cfg != nil {
		return app.cfg, nil
	}

	app.Logger.Info("Loading configuration")
	cfg, err := config.LoadWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.cfg = cfg
	return cfg, nil
}

// Database connects to PostgreSQL and applies pending migrations
func (app *AppContext) Database() (*postgres.DB, error) {
	if app.database != nil {
		return app.database, nil
	}

	cfg, err := app.Config()
	if err != nil {
		return nil, err
	}

	app.Logger.Info("Connecting to database")
	database, err := postgres.NewDB(app.Ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(app.Ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Logger.Debug("Database initialized successfully")

	app.database = database
	return database, nil
}

// SheetsClient loads the OAuth client configuration and authorizes a sheets client
func (app *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if app.sheets != nil {
		return app.sheets, nil
	}

	app.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	app.Logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env, os.Stdin, app.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	app.Logger.Debug("Sheets client initialized successfully")

	app.sheets = client
	return client, nil
}

// Close releases the database connection if one was opened
func (app *AppContext) Close() {
	if app.database != nil {
		app.database.Close()
	}
}
