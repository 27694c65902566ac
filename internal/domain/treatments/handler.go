package treatments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"family-med-tracker/internal/domain/members"
	"family-med-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, membersSvc *members.Service) {
	r.Route("/treatments", func(tr chi.Router) {
		tr.Post("/", createTreatmentHandler(svc, membersSvc))
		tr.Get("/", listTreatmentsHandler(svc))
		tr.Get("/{treatmentID}", getTreatmentHandler(svc))
		tr.Patch("/{treatmentID}", updateTreatmentHandler(svc))
		tr.Post("/{treatmentID}/status", setStatusHandler(svc))
	})
}

type createTreatmentRequest struct {
	MemberID       string `json:"member_id"`
	Medication     string `json:"medication"`
	Dosage         string `json:"dosage"`
	FrequencyValue int    `json:"frequency_value"`
	FrequencyUnit  string `json:"frequency_unit"` // hours|days (acepta horas/dias)
	StartAt        string `json:"start_at"`       // RFC3339
	DurationDays   int    `json:"duration_days"`  // 0 = continuo
	Notes          string `json:"notes"`
}

type updateTreatmentRequest struct {
	Medication     *string `json:"medication"`
	Dosage         *string `json:"dosage"`
	FrequencyValue *int    `json:"frequency_value"`
	FrequencyUnit  *string `json:"frequency_unit"`
	DurationDays   *int    `json:"duration_days"`
	Notes          *string `json:"notes"`
}

type setStatusRequest struct {
	Status string `json:"status"` // active|paused|finished
}

type treatmentResponse struct {
	ID             string    `json:"id"`
	OwnerUserID    string    `json:"owner_user_id"`
	MemberID       string    `json:"member_id"`
	Medication     string    `json:"medication"`
	Dosage         string    `json:"dosage"`
	FrequencyValue int       `json:"frequency_value"`
	FrequencyUnit  string    `json:"frequency_unit"`
	StartAt        time.Time `json:"start_at"`
	DurationDays   int       `json:"duration_days"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// @Summary Crear tratamiento recurrente
// @Tags treatments
// @Accept json
// @Produce json
// @Param body body createTreatmentRequest true "Tratamiento"
// @Success 201 {object} treatmentResponse
// @Router /treatments [post]
func createTreatmentHandler(svc *Service, membersSvc *members.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createTreatmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		startAt, err := time.Parse(time.RFC3339, req.StartAt)
		if err != nil {
			http.Error(w, "start_at must be RFC3339", http.StatusBadRequest)
			return
		}

		// El miembro tiene que existir y ser del dueño.
		m, err := membersSvc.GetByID(r.Context(), req.MemberID)
		if err != nil || m.OwnerUserID != claims.UserID {
			http.Error(w, "member not found", http.StatusBadRequest)
			return
		}

		t, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			MemberID:       req.MemberID,
			Medication:     req.Medication,
			Dosage:         req.Dosage,
			FrequencyValue: req.FrequencyValue,
			FrequencyUnit:  req.FrequencyUnit,
			StartAt:        startAt,
			DurationDays:   req.DurationDays,
			Notes:          req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toTreatmentResponse(t))
	}
}

// @Summary Listar tratamientos del dueño
// @Tags treatments
// @Produce json
// @Param status query string false "Filtrar por status (active|paused|finished)"
// @Success 200 {array} treatmentResponse
// @Router /treatments [get]
func listTreatmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var filter Status
		if q := strings.TrimSpace(r.URL.Query().Get("status")); q != "" {
			st, ok := ParseStatus(q)
			if !ok {
				http.Error(w, "invalid status filter", http.StatusBadRequest)
				return
			}
			filter = st
		}

		var items []Treatment
		var err error
		if filter == StatusActive {
			items, err = svc.ListActiveByOwner(r.Context(), claims.UserID)
		} else {
			items, err = svc.ListByOwner(r.Context(), claims.UserID)
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]treatmentResponse, 0, len(items))
		for _, t := range items {
			if filter != "" && t.Status != filter {
				continue
			}
			out = append(out, toTreatmentResponse(t))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getTreatmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		t, err := svc.GetByID(r.Context(), chi.URLParam(r, "treatmentID"))
		if err != nil || t.OwnerUserID != claims.UserID {
			http.Error(w, "treatment not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toTreatmentResponse(t))
	}
}

func updateTreatmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateTreatmentRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := svc.Update(r.Context(), chi.URLParam(r, "treatmentID"), claims.UserID, UpdateInput{
			Medication:     req.Medication,
			Dosage:         req.Dosage,
			FrequencyValue: req.FrequencyValue,
			FrequencyUnit:  req.FrequencyUnit,
			DurationDays:   req.DurationDays,
			Notes:          req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toTreatmentResponse(t))
	}
}

// @Summary Cambiar status del tratamiento (pausar/reactivar/finalizar)
// @Tags treatments
// @Accept json
// @Produce json
// @Param treatmentID path string true "ID del tratamiento"
// @Param body body setStatusRequest true "Nuevo status"
// @Success 200 {object} treatmentResponse
// @Router /treatments/{treatmentID}/status [post]
func setStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req setStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		status, ok := ParseStatus(req.Status)
		if !ok {
			http.Error(w, "status must be active|paused|finished", http.StatusBadRequest)
			return
		}

		t, err := svc.SetStatus(r.Context(), chi.URLParam(r, "treatmentID"), claims.UserID, status)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toTreatmentResponse(t))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "treatment not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toTreatmentResponse(t Treatment) treatmentResponse {
	return treatmentResponse{
		ID:             t.ID,
		OwnerUserID:    t.OwnerUserID,
		MemberID:       t.MemberID,
		Medication:     t.Medication,
		Dosage:         t.Dosage,
		FrequencyValue: t.FrequencyValue,
		FrequencyUnit:  string(t.FrequencyUnit),
		StartAt:        t.StartAt,
		DurationDays:   t.DurationDays,
		Status:         string(t.Status),
		Notes:          t.Notes,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
