package main

import (
	"fmt"
	"net/http"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gstparse/invoice-extract-service/api"
	"github.com/gstparse/invoice-extract-service/internal/auth"
	"github.com/gstparse/invoice-extract-service/internal/db"
	"github.com/gstparse/invoice-extract-service/internal/logging"
	"github.com/gstparse/invoice-extract-service/internal/models"
	"github.com/gstparse/invoice-extract-service/internal/storage"
)

func main() {
	config, err := loadConfig("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(config.Log)

	if err := auth.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize auth")
	}
	log.Info().Msg("JWT authentication initialized")

	if err := db.Init(); err != nil {
		log.Warn().Err(err).Msg("database not available, running in extract-only mode")
	} else {
		defer db.Close()
		log.Info().Msg("database connection pool initialized")
	}

	if err := storage.Init(); err != nil {
		log.Warn().Err(err).Msg("storage not available, source documents will not be kept")
	} else {
		log.Info().Msg("MinIO storage initialized")
	}

	handler := api.NewHandler(config, log)
	router := handler.SetupRoutes()
	router.HandleFunc("/api/login", auth.LoginHandler).Methods("POST")

	protectedRouter := auth.JWTMiddleware(router)

	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)
	log.Info().
		Str("addr", addr).
		Str("version", api.Version).
		Bool("database", db.Pool != nil).
		Bool("storage", storage.Client != nil).
		Msg("starting invoice extraction service")

	if err := http.ListenAndServe(addr, protectedRouter); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func loadConfig(path string) (*models.Config, error) {
	var config models.Config
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	config.ApplyDefaults()
	return &config, nil
}
