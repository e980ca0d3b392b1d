package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/veicsys/veicsys/internal/api"
	"github.com/veicsys/veicsys/internal/api/handler"
	"github.com/veicsys/veicsys/internal/core/service"
	"github.com/veicsys/veicsys/internal/core/session"
	"github.com/veicsys/veicsys/internal/infrastructure/config"
	mongodb "github.com/veicsys/veicsys/internal/infrastructure/db/mongo"
	redisdb "github.com/veicsys/veicsys/internal/infrastructure/db/redis"
	"github.com/veicsys/veicsys/internal/infrastructure/queue"
	"github.com/veicsys/veicsys/internal/infrastructure/registry"
	"github.com/veicsys/veicsys/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Env: cfg.Env, Pretty: cfg.IsDevelopment()})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := mongodb.NewUserRepository(db)
	profileStore := mongodb.NewProfileRepository(db)
	processes := mongodb.NewProcessRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, profileStore, processes); err != nil {
		return err
	}

	profiles := redisdb.NewProfileCache(profileStore, rdb, cfg.Session.ProfileCacheTTL, log)

	authSvc := service.NewAuthService(users, profiles, cfg.JWTSecret, cfg.Session.TokenTTL)
	processSvc := service.NewProcessService(processes, log)
	eventSvc := service.NewEventService(processes, mongodb.NewEventRepository(db), redisdb.NewDedupChecker(rdb), log)
	cnpjSvc := service.NewCNPJService(
		mongodb.NewCNPJCacheRepository(db),
		registry.NewClient(registry.Config{BaseURL: cfg.CNPJ.APIURL, Timeout: cfg.CNPJ.Timeout}),
		log,
	)

	dispatcher := queue.NewDispatcher(cfg.Events.Workers, eventSvc, log)
	dispatcher.Start(context.WithoutCancel(ctx))
	defer dispatcher.Stop()

	e, err := api.NewRouter(api.Dependencies{
		Auth:       authSvc,
		Resolver:   session.NewResolver(authSvc, profiles, log),
		Processes:  processSvc,
		CNPJ:       cnpjSvc,
		Dispatcher: dispatcher,
		Health: map[string]handler.Pinger{
			"mongodb": func(ctx context.Context) error { return mongodb.Ping(ctx, mongoClient) },
			"redis":   func(ctx context.Context) error { return redisdb.Ping(ctx, rdb) },
		},
		Logger: log,
	}, api.Options{
		CookieName:         cfg.Session.Cookie,
		TokenTTL:           cfg.Session.TokenTTL,
		SecureCookies:      !cfg.IsDevelopment(),
		ResolveTimeout:     cfg.Session.ResolveTimeout,
		PreserveReturnPath: cfg.Session.PreserveReturnPath,
	})
	if err != nil {
		return fmt.Errorf("router: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("listening")
		errCh <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
