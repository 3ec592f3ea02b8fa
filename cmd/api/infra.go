package main

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"pet-grooming-agenda/internal/adapters/auth/jwtverifier"
	"pet-grooming-agenda/internal/adapters/auth/remote"
	"pet-grooming-agenda/internal/adapters/blob"
	evadapter "pet-grooming-agenda/internal/adapters/events"
	pg "pet-grooming-agenda/internal/adapters/storage/postgres"
	"pet-grooming-agenda/internal/middleware"
	"pet-grooming-agenda/internal/platform/config"
	"pet-grooming-agenda/internal/platform/logger"
	"pet-grooming-agenda/internal/platform/tracing"
	"pet-grooming-agenda/internal/ports/auth"
	"pet-grooming-agenda/internal/ports/blobstore"
	"pet-grooming-agenda/internal/ports/events"
)

type handlerParams struct {
	fx.In

	Config      *config.Config
	Logger      *slog.Logger
	DB          *sql.DB
	Blob        blobstore.Store
	Publisher   events.Publisher
	Verifier    auth.AuthVerifier
	RateLimiter *middleware.RateLimiter
	Tracing     tracingReady
}

// tracingReady fuerza que el provider global exista antes de armar el handler.
type tracingReady struct{}

func newLogger(cfg *config.Config) *slog.Logger {
	l := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Env.Log.Level),
		Format: logger.ParseFormat(cfg.Env.Log.Format),
		App:    cfg.Env.ServiceName,
	})
	slog.SetDefault(l)
	return l
}

func newTracing(lc fx.Lifecycle, cfg *config.Config) (tracingReady, error) {
	shutdown, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:     cfg.OTel.Enabled,
		ServiceName: cfg.Env.ServiceName,
		Endpoint:    cfg.OTel.Endpoint,
		SampleRatio: cfg.OTel.SampleRatio,
	})
	if err != nil {
		return tracingReady{}, err
	}
	lc.Append(fx.Hook{OnStop: shutdown})
	return tracingReady{}, nil
}

// newDB devuelve nil sin DSN: el router cae en los repos in-memory.
func newDB(lc fx.Lifecycle, cfg *config.Config, log *slog.Logger) (*sql.DB, error) {
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		log.Warn("postgres dsn empty, using in-memory repositories")
		return nil, nil
	}

	db, err := pg.Open(dsn)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return pg.Migrate(ctx, db)
		},
		OnStop: func(context.Context) error {
			return db.Close()
		},
	})
	return db, nil
}

func newBlobStore(lc fx.Lifecycle, cfg *config.Config) (blobstore.Store, error) {
	s, err := blob.Open(context.Background(), cfg.Storage.BucketURL, cfg.Storage.PublicBaseURL)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{OnStop: func(context.Context) error { return s.Close() }})
	return s, nil
}

func newPublisher(lc fx.Lifecycle, cfg *config.Config, log *slog.Logger) (events.Publisher, error) {
	if len(evadapter.SplitBrokers(cfg.Kafka.Brokers)) == 0 {
		return evadapter.NewLogPublisher(log), nil
	}
	p, err := evadapter.NewKafkaPublisher(evadapter.KafkaConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{OnStop: func(context.Context) error { return p.Close() }})
	return p, nil
}

func newVerifier(cfg *config.Config) (auth.AuthVerifier, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Auth.Mode)) {
	case "dev":
		return nil, nil
	case "jwt":
		return jwtverifier.New(cfg.Auth.JWTSecret, cfg.Auth.Audience)
	case "remote":
		c, err := remote.NewClient(remote.Config{
			BaseURL: cfg.Auth.Remote.BaseURL,
			APIKey:  cfg.Auth.Remote.APIKey,
			Timeout: cfg.Auth.Remote.Timeout,
		})
		if err != nil {
			return nil, err
		}
		if !c.IsConfigured() {
			return nil, remote.ErrNotConfigured
		}
		return remote.NewVerifier(c), nil
	default:
		return nil, errors.Errorf("unknown auth mode %q", cfg.Auth.Mode)
	}
}

// newRateLimiter devuelve nil sin Redis configurado.
func newRateLimiter(lc fx.Lifecycle, cfg *config.Config) *middleware.RateLimiter {
	addr := strings.TrimSpace(cfg.Redis.Addr)
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{OnStop: func(context.Context) error { return rdb.Close() }})
	return middleware.NewRateLimiter(rdb, cfg.Redis.RateLimit, cfg.Redis.Window)
}
