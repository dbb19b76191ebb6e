package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/vibeshop/vibeshop/internal/config"
	"github.com/vibeshop/vibeshop/internal/es"
	"github.com/vibeshop/vibeshop/internal/httpserver"
	"github.com/vibeshop/vibeshop/internal/logging"
	"github.com/vibeshop/vibeshop/internal/metrics"
	"github.com/vibeshop/vibeshop/internal/mykafka"
	"github.com/vibeshop/vibeshop/internal/repo"
	"github.com/vibeshop/vibeshop/internal/seed"
	"github.com/vibeshop/vibeshop/internal/service"
	"github.com/vibeshop/vibeshop/internal/service/search"
	"github.com/vibeshop/vibeshop/pkg/db"
	loggingmw "github.com/vibeshop/vibeshop/pkg/middleware/logging"
)

const productIndex = "products"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	ctx := context.Background()

	database, err := db.Open(ctx, cfg)
	if err != nil {
		logger.Error("database open failed", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(database); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
	if err := seed.Products(ctx, database); err != nil {
		logger.Error("catalog seed failed", "error", err)
		os.Exit(1)
	}

	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = mykafka.NewProducer(cfg.KafkaBrokers)
	}

	r := repo.New(database)
	m := metrics.New()

	deps := &httpserver.Deps{
		CatalogHandler:  &httpserver.CatalogHTTP{Svc: &service.CatalogService{Repo: r}},
		CartHandler:     &httpserver.CartHTTP{Svc: &service.CartService{Repo: r}, Producer: producer, Metrics: m},
		CheckoutHandler: &httpserver.CheckoutHTTP{Svc: service.NewCheckoutService(r), Producer: producer, Metrics: m},
		ReceiptHandler:  &httpserver.ReceiptHTTP{Svc: &service.ReceiptService{Repo: r}},
	}

	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg, logger)
		if err != nil {
			logger.Error("elasticsearch connect failed", "error", err)
			os.Exit(1)
		}
		products, err := r.ListProducts(ctx)
		if err != nil {
			logger.Error("catalog read failed", "error", err)
			os.Exit(1)
		}
		if err := search.IndexProducts(ctx, esClient, productIndex, products); err != nil {
			logger.Error("catalog indexing failed", "error", err)
			os.Exit(1)
		}
		deps.SearchHandler = &httpserver.SearchHTTP{ES: esClient, Index: productIndex}
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger, m))

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	} else {
		logger.Error("db() error", "error", err)
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
