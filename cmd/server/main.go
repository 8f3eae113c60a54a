package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/devfolio/backend/api/handler"
	"github.com/devfolio/backend/internal/config"
	"github.com/devfolio/backend/internal/infrastructure/monitor"
	"github.com/devfolio/backend/internal/middleware"
	"github.com/devfolio/backend/internal/router"
	"github.com/devfolio/backend/internal/services/lifecycle"
	"github.com/devfolio/backend/internal/session"
	"github.com/devfolio/backend/pkg/httpcontext"
	"github.com/devfolio/backend/pkg/logger"
	authUC "github.com/devfolio/backend/usecase/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.Auth.Secret == config.DefaultSecret {
		zapLogger.Warn("AUTH_SECRET not set, using the development default")
	}

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	appCtx := manager.Context(context.Background())

	mon := monitor.New(cfg.BackendHealthURL(), 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	creds := session.NewCredentials(cfg.Auth.Username, cfg.Auth.Password)
	codec := session.NewCodec(cfg.Auth.Secret)
	authUseCase := authUC.New(creds, codec, cfg.Auth.SessionMaxAge, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:   apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, cfg.Auth.CookieName),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
		Pages:  apiHandler.NewPageHandler(cfg.Static.Dir, zapLogger),
	}

	r := router.New(handlers)

	guard := middleware.RouteGuard(middleware.GuardConfig{
		ProtectedPrefix: cfg.Auth.ProtectedPrefix,
		LoginPath:       cfg.Auth.LoginPath,
		CookieName:      cfg.Auth.CookieName,
	}, zapLogger)

	server := &fasthttp.Server{
		Handler:      guard(r.Handler),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
