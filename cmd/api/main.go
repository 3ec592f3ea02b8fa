package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"pet-grooming-agenda/internal/platform/config"
	"pet-grooming-agenda/internal/router"
)

type serverParams struct {
	fx.In
	fx.Lifecycle

	Config  *config.Config
	Logger  *slog.Logger
	Handler http.Handler
}

func main() {
	fx.New(
		fx.WithLogger(func(l *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: l}
		}),
		injectInfra(),
		injectAdapters(),
		fx.Provide(newHandler),
		fx.Invoke(startServer),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		newLogger,
		newTracing,
		newDB,
	)
}

func injectAdapters() fx.Option {
	return fx.Provide(
		newBlobStore,
		newPublisher,
		newVerifier,
		newRateLimiter,
	)
}

func newHandler(p handlerParams) (http.Handler, error) {
	loc, err := p.Config.Business.Location()
	if err != nil {
		return nil, err
	}

	h, err := router.NewRouter(router.Options{
		AuthVerifier:      p.Verifier,
		DB:                p.DB,
		Logger:            p.Logger,
		Blob:              p.Blob,
		Publisher:         p.Publisher,
		RateLimiter:       p.RateLimiter,
		RateLimitFailOpen: p.Config.Redis.FailOpen,
		BootstrapAdmins:   p.Config.Bootstrap.AdminUserIDs,
		MaxUpload:         p.Config.Storage.MaxUploadSize,
		Location:          loc,
	})
	if err != nil {
		return nil, err
	}
	if p.Config.HTTP.MaxRequestBody > 0 {
		h = limitBody(h, p.Config.HTTP.MaxRequestBody, p.Config.Storage.MaxUploadSize)
	}
	return otelhttp.NewHandler(h, p.Config.Env.ServiceName), nil
}

// limitBody acota el body de los requests JSON; los multipart llevan su propio tope.
func limitBody(next http.Handler, jsonMax, uploadMax int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		max := jsonMax
		if isMultipart(r) {
			max = uploadMax + 1<<20
		}
		r.Body = http.MaxBytesReader(w, r.Body, max)
		next.ServeHTTP(w, r)
	})
}

func startServer(p serverParams) {
	cfg := p.Config
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      p.Handler,
		ReadTimeout:  cfg.HTTP.Timeouts.Read,
		WriteTimeout: cfg.HTTP.Timeouts.Write,
		IdleTimeout:  cfg.HTTP.Timeouts.Idle,
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			p.Logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.Name, "auth_mode", cfg.Auth.Mode)
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("server error", "err", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, cfg.HTTP.Timeouts.Shutdown)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	})
}

func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}
