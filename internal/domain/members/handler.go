package members

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
	r.Route("/members", func(mr chi.Router) {
		mr.Post("/", createMemberHandler(svc))
		mr.Get("/", listMembersHandler(svc))
		mr.Get("/{memberID}", getMemberHandler(svc))
		mr.Patch("/{memberID}", updateMemberHandler(svc))
		mr.Delete("/{memberID}", deleteMemberHandler(svc))
	})
}

type createMemberRequest struct {
	Name      string `json:"name"`
	Relation  string `json:"relation"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD opcional
	Allergies string `json:"allergies"`
	Notes     string `json:"notes"`
}

type updateMemberRequest struct {
	Name      *string `json:"name"`
	Relation  *string `json:"relation"`
	BirthDate *string `json:"birth_date"` // YYYY-MM-DD; null = limpiar
	Allergies *string `json:"allergies"`
	Notes     *string `json:"notes"`
}

type memberResponse struct {
	ID          string     `json:"id"`
	OwnerUserID string     `json:"owner_user_id"`
	Name        string     `json:"name"`
	Relation    string     `json:"relation"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Allergies   string     `json:"allergies"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// @Summary Registrar miembro de la familia
// @Tags members
// @Accept json
// @Produce json
// @Param body body createMemberRequest true "Miembro"
// @Success 201 {object} memberResponse
// @Router /members [post]
func createMemberHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createMemberRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		m, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:      req.Name,
			Relation:  req.Relation,
			BirthDate: bd,
			Allergies: req.Allergies,
			Notes:     req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toMemberResponse(m))
	}
}

// @Summary Listar miembros de la familia
// @Tags members
// @Produce json
// @Success 200 {array} memberResponse
// @Router /members [get]
func listMembersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]memberResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMemberResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getMemberHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		m, err := svc.GetByID(r.Context(), chi.URLParam(r, "memberID"))
		if err != nil || m.OwnerUserID != claims.UserID {
			http.Error(w, "member not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toMemberResponse(m))
	}
}

func updateMemberHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Para distinguir "birth_date": null de campo ausente, decodificamos
		// primero a raw y miramos presencia.
		var raw map[string]json.RawMessage
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updateMemberRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		in := UpdateInput{
			Name:      req.Name,
			Relation:  req.Relation,
			Allergies: req.Allergies,
			Notes:     req.Notes,
		}
		if v, exists := raw["birth_date"]; exists {
			if string(v) == "null" {
				in.ClearBirthDate = true
			} else {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					http.Error(w, "birth_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				t, err := time.Parse("2006-01-02", s)
				if err != nil {
					http.Error(w, "birth_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				in.BirthDate = &t
			}
		}

		m, err := svc.Update(r.Context(), chi.URLParam(r, "memberID"), claims.UserID, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toMemberResponse(m))
	}
}

func deleteMemberHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "memberID"), claims.UserID); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "member not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toMemberResponse(m Member) memberResponse {
	return memberResponse{
		ID:          m.ID,
		OwnerUserID: m.OwnerUserID,
		Name:        m.Name,
		Relation:    string(m.Relation),
		BirthDate:   m.BirthDate,
		Allergies:   m.Allergies,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo;
// si aparece en más módulos todavía, recién ahí conviene extraerlo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
