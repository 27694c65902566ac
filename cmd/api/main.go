package main

import (
	"net/http"
	"os"
	"time"

	_ "family-med-tracker/docs"
	"family-med-tracker/internal/adapters/auth/hosted"
	"family-med-tracker/internal/adapters/druginfo/medinfo"
	"family-med-tracker/internal/platform/logger"
	"family-med-tracker/internal/ports/auth"
	"family-med-tracker/internal/ports/druginfo"
	"family-med-tracker/internal/router"

	"github.com/joho/godotenv"
)

// @title family-med-tracker API
// @version 0.1
// @description Agenda de medicación familiar: tratamientos recurrentes, agenda diaria de dosis y adherencia.
func main() {
	_ = godotenv.Load() // .env opcional en dev

	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	var verifier auth.Verifier
	if base := os.Getenv("AUTH_BASE_URL"); base != "" {
		client, err := hosted.NewClient(hosted.Config{
			BaseURL: base,
			APIKey:  os.Getenv("AUTH_API_KEY"),
		})
		if err != nil {
			log.Error("invalid auth config", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		verifier = hosted.NewVerifier(client)
		log.Info("auth: hosted verifier", nil)
	} else {
		log.Warn("auth: dev mode (X-Debug-User-ID)", nil)
	}

	var lookup druginfo.Lookup
	if base := os.Getenv("MEDINFO_BASE_URL"); base != "" {
		client, err := medinfo.NewClient(medinfo.Config{
			BaseURL: base,
			APIKey:  os.Getenv("MEDINFO_API_KEY"),
		})
		if err != nil {
			log.Error("invalid medinfo config", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		lookup = client
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		DrugInfo:     lookup,
		Log:          log,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
