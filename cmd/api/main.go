package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fiaisis/fia-auth/internal/config"
	"github.com/fiaisis/fia-auth/internal/experiments"
	"github.com/fiaisis/fia-auth/internal/httpapi"
	"github.com/fiaisis/fia-auth/internal/identity"
	"github.com/fiaisis/fia-auth/internal/metrics"
	"github.com/fiaisis/fia-auth/internal/ratelimit"
	"github.com/fiaisis/fia-auth/internal/roles"
	"github.com/fiaisis/fia-auth/internal/session"
	"github.com/fiaisis/fia-auth/internal/token"
	"github.com/fiaisis/fia-auth/pkg/logger"
	"github.com/fiaisis/fia-auth/pkg/utils"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	codec, err := token.NewCodec(cfg.Auth)
	if err != nil {
		log.Error("token codec init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	resolver := roles.NewResolver(
		roles.NewPostgresRoster(db, log),
		roles.NewUOWSRoleService(cfg.UOWS, log),
	)
	sessions := session.NewService(
		identity.NewUOWSExchange(cfg.UOWS, log),
		resolver,
		codec,
		log,
	)

	handlers := httpapi.Handlers{
		Sessions:    sessions,
		Allocations: experiments.NewGraphQLClient(cfg.Allocations, cfg.UOWS.APIKey, log),
		Limiter:     ratelimit.NewLoginLimiter(rdb, cfg.Login, log),
		Metrics:     metrics.New(prometheus.DefaultRegisterer),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))
	r.Use(httpapi.CORS())

	registerRoutes(r, handlers, cfg.Auth.APIKey)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}
