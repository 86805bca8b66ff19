// Package server wires configuration, storage, services and the REST
// transport together and runs them until the process is signalled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/redesocial/internal/logging"
	"github.com/dmitrijs2005/redesocial/internal/server/auth"
	"github.com/dmitrijs2005/redesocial/internal/server/config"
	"github.com/dmitrijs2005/redesocial/internal/server/httpapi"
	"github.com/dmitrijs2005/redesocial/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/redesocial/internal/server/services"
)

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	accounts *services.AccountService
	posts    *services.PostService
	tokens   *auth.TokenIssuer
}

// NewApp opens the database, applies migrations and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := sqlOpen("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	app := newApp(c, logger, db, rm)
	return app, nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) *App {
	accountRepo := rm.Accounts(db)
	postRepo := rm.Posts(db)

	hasher := auth.NewBcryptHasher(c.BcryptCost)
	tokens := auth.NewTokenIssuer([]byte(c.SecretKey), c.AccessTokenValidityDuration)
	authenticator := auth.NewAuthenticator(accountRepo, hasher)
	media := services.NewMediaService(c)

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		accounts: services.NewAccountService(accountRepo, hasher, tokens, authenticator, media, logger),
		posts:    services.NewPostService(postRepo, accountRepo, logger),
		tokens:   tokens,
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	api := httpapi.NewAPI(app.accounts, app.posts, app.tokens, app.logger)
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, api.Handler(), app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a termination signal arrives or the server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close failed", "error", err.Error())
	}
	app.logger.Info(ctx, "App stopped")
}
