package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/senkudev/otaku_shop/internal/config"
	"github.com/senkudev/otaku_shop/internal/db"
	"github.com/senkudev/otaku_shop/internal/httpserver"
	"github.com/senkudev/otaku_shop/internal/logging"
	"github.com/senkudev/otaku_shop/internal/mailer"
	loggingmw "github.com/senkudev/otaku_shop/internal/middleware/logging"
	"github.com/senkudev/otaku_shop/internal/mykafka"
	"github.com/senkudev/otaku_shop/internal/oauth"
	"github.com/senkudev/otaku_shop/internal/repo"
	"github.com/senkudev/otaku_shop/internal/service"
)

func main() {
	cfg := config.MustLoad()
	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	gormDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db init: %v", err)
	}

	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka init: %v", err)
		}
	} else {
		logger.Warn("KAFKA_BROKERS not set, domain events disabled")
	}

	var m *mailer.Mailer
	if cfg.SMTPHost != "" {
		m = mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom, cfg.FrontendURL)
	} else {
		logger.Warn("SMTP_HOST not set, outbound email disabled")
	}

	r := &repo.GormRepo{DB: gormDB}

	authSvc := &service.AuthService{
		Repo:          r,
		JWTSecret:     cfg.JWTSecret,
		RefreshSecret: cfg.RefreshSecret,
		Producer:      producer,
		Mailer:        m,
		OAuth:         oauth.NewClient(cfg.GoogleUserinfoURL, cfg.FacebookUserinfoURL),
	}

	deps := &httpserver.Deps{
		AuthHandler:     &httpserver.AuthHTTP{Svc: authSvc},
		CartHandler:     &httpserver.CartHTTP{Svc: &service.CartService{Repo: r, Producer: producer}},
		WishlistHandler: &httpserver.WishlistHTTP{Svc: &service.WishlistService{Repo: r}},
		PurchaseHandler: &httpserver.PurchaseHTTP{Svc: &service.PurchaseService{Repo: r, Producer: producer}},
		ProductHandler:  &httpserver.ProductHTTP{Svc: &service.ProductService{Repo: r}},
		JWTSecret:       cfg.JWTSecret,
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	logger.Info("server started", "port", cfg.ServerPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
