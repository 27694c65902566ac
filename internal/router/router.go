package router

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"

	mem "family-med-tracker/internal/adapters/storage/memory"
	pg "family-med-tracker/internal/adapters/storage/postgres"
	"family-med-tracker/internal/domain/confirmations"
	"family-med-tracker/internal/domain/members"
	"family-med-tracker/internal/domain/schedule"
	"family-med-tracker/internal/domain/treatments"
	"family-med-tracker/internal/middleware"
	"family-med-tracker/internal/platform/logger"
	"family-med-tracker/internal/ports/auth"
	"family-med-tracker/internal/ports/druginfo"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.Verifier // puede ser nil (modo dev: X-Debug-User-ID)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: colaborador de consulta de medicamentos.
	DrugInfo druginfo.Lookup

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		membersRepo       members.Repository
		treatmentsRepo    treatments.Repository
		confirmationsRepo confirmations.Repository
	)

	// Si no te pasan DB explícita, intenta por env (dev/handoff).
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err != nil {
				log.Warn("postgres unavailable, falling back to in-memory", map[string]any{"error": err.Error()})
			} else {
				db = opened
			}
		}
	}

	if db != nil {
		membersRepo = pg.NewMembersRepo(db)
		treatmentsRepo = pg.NewTreatmentsRepo(db)
		confirmationsRepo = pg.NewConfirmationsRepo(db)
		log.Info("storage: postgres", nil)
	} else {
		membersRepo = mem.NewMembersRepo()
		treatmentsRepo = mem.NewTreatmentsRepo()
		confirmationsRepo = mem.NewConfirmationsRepo()
		log.Info("storage: in-memory", nil)
	}

	// Services por módulo. El motor de agenda se construye una sola vez
	// acá y se pasa por referencia; nada de singletons a nivel paquete.
	membersSvc := members.NewService(membersRepo)
	treatmentsSvc := treatments.NewService(treatmentsRepo)
	scheduleSvc := schedule.NewService(treatmentsSvc, membersSvc, confirmationsRepo)

	members.RegisterRoutes(r, membersSvc)
	treatments.RegisterRoutes(r, treatmentsSvc, membersSvc)
	schedule.RegisterRoutes(r, scheduleSvc)

	r.Get("/medications/{medication}/info", drugInfoHandler(opts.DrugInfo))

	return r
}

// drugInfoHandler proxyea la consulta al colaborador de IA. 503 si no
// hay adapter configurado; el motor no depende de esto.
func drugInfoHandler(lookup druginfo.Lookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if lookup == nil {
			http.Error(w, "drug info not available", http.StatusServiceUnavailable)
			return
		}

		info, err := lookup.Lookup(r.Context(), chi.URLParam(r, "medication"))
		if err != nil {
			if errors.Is(err, druginfo.ErrNotConfigured) {
				http.Error(w, "drug info not available", http.StatusServiceUnavailable)
				return
			}
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"medication":   info.Medication,
			"summary":      info.Summary,
			"side_effects": info.SideEffects,
			"source":       info.Source,
		})
	}
}
