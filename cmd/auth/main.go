package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/brokerz/brokerz-auth/internal/bootstrap"
	"github.com/brokerz/brokerz-auth/internal/config"
	httptransport "github.com/brokerz/brokerz-auth/internal/http"
	"github.com/brokerz/brokerz-auth/internal/http/handler"
	httpmiddleware "github.com/brokerz/brokerz-auth/internal/http/middleware"
	"github.com/brokerz/brokerz-auth/internal/jwt"
	"github.com/brokerz/brokerz-auth/internal/repository"
	"github.com/brokerz/brokerz-auth/internal/server"
	"github.com/brokerz/brokerz-auth/internal/service"
	"github.com/brokerz/brokerz-auth/internal/telemetry"
)

func main() {
	app := fx.New(
		fx.Provide(
			newConfig,
			newLogger,
			newTelemetry,
			newDB,
			newUserRepository,
			newTokenGenerator,
			service.NewAccountService,
			handler.NewAccountHandler,
			newAuthMiddleware,
			httptransport.NewRouter,
			server.NewHTTPServer,
		),
		fx.Invoke(useTelemetry, bootstrap.EnsureSchema, warnInsecureSecret, startHTTPServer),
	)

	app.Run()
}

func newConfig() (config.Config, error) {
	return config.Load()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Environment == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func newTelemetry(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (*telemetry.Provider, error) {
	provider, err := telemetry.New(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("telemetry init: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return provider.Shutdown(stopCtx)
		},
	})

	return provider, nil
}

func newDB(lc fx.Lifecycle, cfg config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.DatabasePath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return db.Close()
		},
	})

	return db, nil
}

func newUserRepository(db *sql.DB) repository.UserRepository {
	return repository.NewSQLiteUserRepo(db)
}

func newTokenGenerator(cfg config.Config) *jwt.Generator {
	return jwt.NewGenerator(cfg.JWTSecret, cfg.TokenTTL)
}

func newAuthMiddleware(tokens *jwt.Generator) *httpmiddleware.Auth {
	return &httpmiddleware.Auth{Tokens: tokens}
}

func warnInsecureSecret(cfg config.Config, logger *zap.Logger) {
	if cfg.UsesDefaultSecret() {
		logger.Warn("JWT_SECRET not set, using the insecure development default")
	}
}

func startHTTPServer(lc fx.Lifecycle, srv *server.HTTPServer, cfg config.Config, logger *zap.Logger) {
	addr := ":" + cfg.HTTPPort
	var (
		cancel context.CancelFunc
		done   chan struct{}
	)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			runCtx, stop := context.WithCancel(context.Background())
			cancel = stop
			done = make(chan struct{})

			go func() {
				if err := srv.Run(runCtx, addr); err != nil {
					logger.Error("http server stopped", zap.Error(err))
				}
				close(done)
			}()

			logger.Info("http server listening", zap.String("addr", addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
			}
			if done == nil {
				return nil
			}
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func useTelemetry(*telemetry.Provider) {}
