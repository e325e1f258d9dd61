package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"canteen/internal/config"
	"canteen/internal/database"
	"canteen/internal/handlers"
	"canteen/internal/logger"
	"canteen/internal/middleware"
	"canteen/internal/ordering"
	"canteen/internal/wallet"
	"canteen/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatal(err)
	}
	defer zap.L().Sync()

	// Amounts go out as JSON numbers, and request bodies with unknown
	// fields are rejected.
	decimal.MarshalJSONWithoutQuotes = true
	binding.EnableDecoderDisallowUnknownFields = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		zap.L().Fatal("mongo connection failed", zap.Error(err))
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			zap.L().Error("mongo disconnect failed", zap.Error(err))
		}
	}()

	db := client.Database(cfg.DBName)
	zap.L().Info("MongoDB connected", zap.String("database", db.Name()))

	if err := database.EnsureIndexes(db); err != nil {
		zap.L().Warn("index bootstrap incomplete", zap.Error(err))
	}

	st := database.NewStore(db)
	hub := ws.NewHub()
	go hub.Run(ctx)

	ledger := wallet.NewLedger(st, wallet.WithCreditLimit(decimal.NewFromInt(cfg.WalletCreditLimit)))
	orders := ordering.NewService(st, st, st, ledger, hub, ordering.Config{
		TaxPercent:    cfg.TaxRatePercent,
		EstimatedTime: cfg.EstimatedPrepMinutes,
	})

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	handlers.RegisterRoutes(r, handlers.Dependencies{
		Orders:    orders,
		Ledger:    ledger,
		Catalog:   st,
		DB:        st,
		Hub:       hub,
		JWTSecret: cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zap.L().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("graceful shutdown failed", zap.Error(err))
	}
}
