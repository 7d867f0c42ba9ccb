// @title                       Users API
// @version                     1.0
// @description                 User accounts, password sessions and role-based access. Session tokens carry userId, name, role and iat (issuedAt, Unix seconds); they do not expire.
// @BasePath                    /
// @securityDefinitions.apikey  AccessToken
// @in                          header
// @name                        x-access-token
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/usermgmt/users-api/internal/api"
	"github.com/usermgmt/users-api/internal/api/handler"
	"github.com/usermgmt/users-api/internal/api/metrics"
	"github.com/usermgmt/users-api/internal/core/service"
	"github.com/usermgmt/users-api/internal/infrastructure/config"
	mongodb "github.com/usermgmt/users-api/internal/infrastructure/db/mongo"
	redisdb "github.com/usermgmt/users-api/internal/infrastructure/db/redis"
	"github.com/usermgmt/users-api/internal/infrastructure/queue"
	"github.com/usermgmt/users-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger level is not known yet; fall back to a bare JSON logger.
		l := zerolog.New(os.Stderr).With().Timestamp().Logger()
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "users-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	redisClient, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer redisClient.Close()

	userStore := mongodb.NewUserRepository(db)
	if err := userStore.EnsureIndexes(ctx); err != nil {
		return err
	}
	auditStore := mongodb.NewAuditRepository(db)
	if err := auditStore.EnsureIndexes(ctx); err != nil {
		return err
	}

	users := redisdb.NewCachedUserRepository(userStore, redisClient, cfg.Redis.UserCacheTTL, log)

	key, err := service.NewSigningKey(cfg.JWTSecret)
	if err != nil {
		return err
	}
	verifier, err := service.NewCredentialVerifier(users, cfg.BcryptCost,
		service.WithVerifyObserver(metrics.ObserveCredentialVerification))
	if err != nil {
		return err
	}

	audit := queue.NewDispatcher(cfg.Audit.Workers, auditStore, log)

	e := api.NewRouter(api.Dependencies{
		Sessions: service.NewSessionService(verifier, service.NewTokenIssuer(key), audit, log),
		Users:    service.NewUserService(users, cfg.BcryptCost),
		Gate:     service.NewAccessGate(service.NewTokenValidator(key)),
		Audit:    audit,
		Checks: map[string]handler.DependencyCheck{
			"mongodb": mongodb.Ping(db),
			"redis":   redisdb.Ping(redisClient),
		},
		Log:     log,
		Metrics: prometheus.DefaultRegisterer,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	// Workers outlive the signal so Close can drain them.
	audit.Start(context.WithoutCancel(ctx))

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(sctx)
		// Requests have drained; flush queued audit events before the
		// store disconnects.
		audit.Close()
		return err
	})

	return g.Wait()
}
