package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	billingapp "github.com/shivaccounts/backend/internal/application/billing"
	masterdataapp "github.com/shivaccounts/backend/internal/application/masterdata"
	reportapp "github.com/shivaccounts/backend/internal/application/report"
	tradeapp "github.com/shivaccounts/backend/internal/application/trade"
	"github.com/shivaccounts/backend/internal/infrastructure/config"
	"github.com/shivaccounts/backend/internal/infrastructure/logger"
	"github.com/shivaccounts/backend/internal/infrastructure/persistence/memory"
	"github.com/shivaccounts/backend/internal/interfaces/http/handler"
	"github.com/shivaccounts/backend/internal/interfaces/http/middleware"
	"github.com/shivaccounts/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Shiv Accounts Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	store := memory.NewStore()

	masterdataService := masterdataapp.NewService(store, log)
	orderService := tradeapp.NewOrderService(store, log)
	paymentService := billingapp.NewPaymentService(store, log)
	reportService := reportapp.NewService(store, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}
	engine.Use(
		middleware.RequestID(),
		middleware.CORS(middleware.CORSConfig{
			AllowOrigins: cfg.HTTP.CORSAllowOrigins,
			AllowMethods: cfg.HTTP.CORSAllowMethods,
			AllowHeaders: cfg.HTTP.CORSAllowHeaders,
			MaxAge:       cfg.HTTP.CORSMaxAge,
		}),
		logger.GinMiddleware(log),
		logger.Recovery(log),
	)

	router.NewRouter(engine).
		Register(handler.NewSystemHandler(cfg.App.Name, cfg.App.Env)).
		Register(handler.NewMasterDataHandler(masterdataService)).
		Register(handler.NewOrderHandler(orderService)).
		Register(handler.NewPaymentHandler(paymentService)).
		Register(handler.NewReportHandler(reportService)).
		Setup()

	srv := &http.Server{
		Addr:           cfg.Addr(),
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()
	log.Info("HTTP server listening", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
