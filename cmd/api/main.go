package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"time"

	"litter-milestones/internal/adapters/auth/odin"
	pg "litter-milestones/internal/adapters/storage/postgres"
	"litter-milestones/internal/platform/config"
	"litter-milestones/internal/platform/logger"
	"litter-milestones/internal/ports/auth"
	"litter-milestones/internal/router"
)

// @title Litter Milestones API
// @version 1.0
// @description Seguimiento de protocolos de estimulación temprana y curva de peso por cachorro.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{}).Error("invalid config", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres unavailable", map[string]any{"err": err})
			os.Exit(1)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = pg.EnsureSchema(ctx, db)
		cancel()
		if err != nil {
			log.Error("schema bootstrap failed", map[string]any{"err": err})
			os.Exit(1)
		}
	}

	// sin Odin configurado => modo dev (X-Debug-User-ID)
	var verifier auth.AuthVerifier
	if cfg.OdinEnabled() {
		client, err := odin.NewClient(odin.Config{BaseURL: cfg.OdinBaseURL, APIKey: cfg.OdinAPIKey})
		if err != nil {
			log.Error("invalid odin config", map[string]any{"err": err})
			os.Exit(1)
		}
		verifier = odin.NewVerifier(client)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier:   verifier,
		DB:             db,
		Logger:         log,
		EnforceWindows: cfg.EnforceProtocolWindows,
		LocalStateTTL:  cfg.LocalStateTTL,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	log.Info("starting server", map[string]any{
		"addr":            cfg.Addr(),
		"storage":         storageName(db),
		"enforce_windows": cfg.EnforceProtocolWindows,
		"odin":            cfg.OdinEnabled(),
		"local_state_ttl": cfg.LocalStateTTL.String(),
	})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"err": err})
		os.Exit(1)
	}
}

func storageName(db *sql.DB) string {
	if db == nil {
		return "memory"
	}
	return "postgres"
}
