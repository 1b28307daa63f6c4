package main

import (
	"context"
	"net/http"
	"os"

	"github.com/galleryhaus/gallery-backend/api/routes"
	"github.com/galleryhaus/gallery-backend/internal/inquiry"
	"github.com/galleryhaus/gallery-backend/pkg/config"
	"github.com/galleryhaus/gallery-backend/pkg/logger"
	"github.com/galleryhaus/gallery-backend/pkg/mail"
	"github.com/galleryhaus/gallery-backend/pkg/redis"
	"github.com/galleryhaus/gallery-backend/pkg/storefront"
	"github.com/joho/godotenv"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "gallery-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "gallery-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	mailClient, err := mail.NewClient(cfg.SMTP)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap smtp client", err)
		os.Exit(1)
	}

	storefrontClient, err := storefront.NewClient(cfg.Storefront, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap storefront client", err)
		os.Exit(1)
	}

	inquiryService, err := inquiry.NewService(mailClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create inquiry service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting gallery api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, redisClient, mailClient, storefrontClient, inquiryService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "gallery api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
