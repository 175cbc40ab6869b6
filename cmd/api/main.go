package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/rfm/internal/config"
	rfmHttp "github.com/MrJamesThe3rd/rfm/internal/http"
	rfmHandler "github.com/MrJamesThe3rd/rfm/internal/http/rfm"
	"github.com/MrJamesThe3rd/rfm/internal/importer"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	importService := importer.NewService()
	rfmH := rfmHandler.NewHandler(importService, cfg.RFM.MaxUploadMB)

	router := rfmHttp.New(rfmH, rfmHttp.Options{
		AuthSecret:  cfg.Auth.Secret,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	if cfg.Auth.Secret == "" {
		slog.Warn("AUTH_SECRET not set, API is unauthenticated")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "name", cfg.App.Name, "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
