package schedule

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"family-med-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/schedule", getDayScheduleHandler(svc))
	r.Get("/stats", getStatisticsHandler(svc))
	r.Post("/doses/taken", markTakenHandler(svc))
}

type doseEventResponse struct {
	TreatmentID    string     `json:"treatment_id"`
	MemberID       string     `json:"member_id"`
	MemberName     string     `json:"member_name"`
	Medication     string     `json:"medication"`
	Dosage         string     `json:"dosage"`
	ScheduledAt    time.Time  `json:"scheduled_at"`
	Status         string     `json:"status"`
	ConfirmationID string     `json:"confirmation_id,omitempty"`
	ConfirmedAt    *time.Time `json:"confirmed_at,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

type dayScheduleResponse struct {
	Day    string              `json:"day"`
	Events []doseEventResponse `json:"events"`
	Stats  statsResponse       `json:"stats"`
}

type statsResponse struct {
	Total      int `json:"total"`
	Taken      int `json:"taken"`
	Pending    int `json:"pending"`
	Overdue    int `json:"overdue"`
	Percentage int `json:"percentage"`
}

type statisticsResponse struct {
	Today              statsResponse `json:"today"`
	ActiveTreatments   int           `json:"active_treatments"`
	TotalTreatments    int           `json:"total_treatments"`
	TopMedication      string        `json:"top_medication,omitempty"`
	TopMedicationCount int           `json:"top_medication_count,omitempty"`
	TopMemberID        string        `json:"top_member_id,omitempty"`
	TopMemberName      string        `json:"top_member_name,omitempty"`
	TopMemberCount     int           `json:"top_member_count,omitempty"`
	Insights           []string      `json:"insights"`
}

type markTakenRequest struct {
	TreatmentID string `json:"treatment_id"`
	MemberID    string `json:"member_id"`
	Medication  string `json:"medication"`
	Dosage      string `json:"dosage"`
	ScheduledAt string `json:"scheduled_at"` // RFC3339
	Notes       string `json:"notes"`
}

type markTakenResponse struct {
	ID          string    `json:"id"`
	TreatmentID string    `json:"treatment_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	ConfirmedAt time.Time `json:"confirmed_at"`
	Status      string    `json:"status"`
}

// @Summary Agenda de dosis de un día
// @Tags schedule
// @Produce json
// @Param date query string false "Día (YYYY-MM-DD); default hoy"
// @Success 200 {object} dayScheduleResponse
// @Router /schedule [get]
func getDayScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		day := svc.now()
		if q := strings.TrimSpace(r.URL.Query().Get("date")); q != "" {
			parsed, err := time.ParseInLocation("2006-01-02", q, day.Location())
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			day = parsed
		}

		ds, err := svc.DaySchedule(r.Context(), claims.UserID, day)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		events := make([]doseEventResponse, 0, len(ds.Events))
		for _, ev := range ds.Events {
			events = append(events, toDoseEventResponse(ev))
		}

		writeJSON(w, http.StatusOK, dayScheduleResponse{
			Day:    ds.Day,
			Events: events,
			Stats:  toStatsResponse(Aggregate(ds.Events)),
		})
	}
}

// @Summary Estadísticas de adherencia e insights
// @Tags schedule
// @Produce json
// @Success 200 {object} statisticsResponse
// @Router /stats [get]
func getStatisticsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		st, err := svc.Statistics(r.Context(), claims.UserID)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, statisticsResponse{
			Today:              toStatsResponse(st.Today),
			ActiveTreatments:   st.ActiveTreatments,
			TotalTreatments:    st.TotalTreatments,
			TopMedication:      st.TopMedication,
			TopMedicationCount: st.TopMedicationCount,
			TopMemberID:        st.TopMemberID,
			TopMemberName:      st.TopMemberName,
			TopMemberCount:     st.TopMemberCount,
			Insights:           st.Insights,
		})
	}
}

// @Summary Marcar una dosis como tomada
// @Tags schedule
// @Accept json
// @Produce json
// @Param body body markTakenRequest true "Dosis"
// @Success 201 {object} markTakenResponse
// @Router /doses/taken [post]
func markTakenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req markTakenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
		if err != nil {
			http.Error(w, "scheduled_at must be RFC3339", http.StatusBadRequest)
			return
		}

		rec, err := svc.MarkTaken(r.Context(), claims.UserID, MarkTakenInput{
			TreatmentID: req.TreatmentID,
			MemberID:    req.MemberID,
			Medication:  req.Medication,
			Dosage:      req.Dosage,
			ScheduledAt: scheduledAt,
			Notes:       req.Notes,
		})
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, markTakenResponse{
			ID:          rec.ID,
			TreatmentID: rec.TreatmentID,
			ScheduledAt: rec.ScheduledAt,
			ConfirmedAt: rec.ConfirmedAt,
			Status:      string(rec.Status),
		})
	}
}

func writeEngineError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidInput) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	// Falla de storage: nunca devolvemos agenda parcial, el cliente
	// muestra reintento.
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func toDoseEventResponse(ev DoseEvent) doseEventResponse {
	return doseEventResponse{
		TreatmentID:    ev.TreatmentID,
		MemberID:       ev.MemberID,
		MemberName:     ev.MemberName,
		Medication:     ev.Medication,
		Dosage:         ev.Dosage,
		ScheduledAt:    ev.ScheduledAt,
		Status:         string(ev.Status),
		ConfirmationID: ev.ConfirmationID,
		ConfirmedAt:    ev.ConfirmedAt,
		Notes:          ev.Notes,
	}
}

func toStatsResponse(st Stats) statsResponse {
	return statsResponse{
		Total:      st.Total,
		Taken:      st.Taken,
		Pending:    st.Pending,
		Overdue:    st.Overdue,
		Percentage: st.Percentage,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
