package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/rentwheels/rental-web/internal/api"
	"github.com/rentwheels/rental-web/internal/api/routepath"
	"github.com/rentwheels/rental-web/internal/api/web"
	"github.com/rentwheels/rental-web/internal/core/ports"
	"github.com/rentwheels/rental-web/internal/core/service"
	"github.com/rentwheels/rental-web/internal/infrastructure/config"
	"github.com/rentwheels/rental-web/internal/infrastructure/db/redis"
	"github.com/rentwheels/rental-web/internal/infrastructure/http/handlers"
	"github.com/rentwheels/rental-web/internal/infrastructure/queue"
	"github.com/rentwheels/rental-web/internal/infrastructure/rentalapi"
	"github.com/rentwheels/rental-web/internal/infrastructure/session"
	"github.com/rentwheels/rental-web/internal/infrastructure/token"
	"github.com/rentwheels/rental-web/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		l := logger.Get()
		l.Error().Err(err).Msg("fatal error")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Signal-aware root context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Configuration and logging.
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "rental-web",
		Env:     cfg.Env,
	})
	log.Info().
		Str("port", cfg.Port).
		Str("api_base_url", cfg.API.BaseURL).
		Bool("redis", cfg.Redis.Addr != "").
		Msg("config loaded")

	// 3. Rental API client.
	client := rentalapi.NewClient(rentalapi.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout})
	readiness := map[string]handlers.Pinger{"rental_api": client}

	// 4. Optional Redis-backed catalog cache and booking dedup.
	var (
		cache ports.CatalogCache
		dedup ports.BookingDedup
	)
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
			Timeout:  cfg.Redis.Timeout,
		})
		if err != nil {
			return err
		}
		defer closeRedis(rdb, log)
		cache = redis.NewCatalogCache(rdb, cfg.Cache.CatalogTTL)
		dedup = redis.NewBookingDedup(rdb, cfg.Cache.BookingDedupTTL)
		readiness["redis"] = handlers.RedisPinger(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	}

	// 5. Background catalog refresher.
	var refresher ports.CatalogRefresher
	if cache != nil {
		r := queue.NewRefresher(client, cache, logger.Component("refresher"))
		r.Start(ctx)
		r.Request()
		refresher = r
	}

	// 6. Services and guard.
	sessions := session.NewManager(session.Config{
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.Secure,
	})
	guard := service.NewRouteGuard(token.NewDecoder(), service.GuardPaths{
		Login:      routepath.Login,
		Root:       routepath.Root,
		ListerHome: routepath.Dashboard,
	}, logger.Component("guard"))

	renderer, err := web.NewRenderer(cfg.AssetBase())
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Deps{
		Guard:     guard,
		Sessions:  sessions,
		Renderer:  renderer,
		Auth:      service.NewAuthService(client, logger.Component("auth")),
		Lister:    service.NewListerService(client, client, cache, refresher, logger.Component("lister")),
		Renter:    service.NewRenterService(client, client, cache, dedup, refresher, logger.Component("renter")),
		Readiness: readiness,
		Log:       logger.Component("http"),

		LoginRatePerMinute: cfg.RateLimit.LoginPerMinute,
		LoginRateBurst:     cfg.RateLimit.LoginBurst,
	})

	// 7. Serve until the context is cancelled.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func closeRedis(rdb *goredis.Client, log zerolog.Logger) {
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("error closing redis")
	}
}
