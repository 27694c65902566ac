package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"family-med-tracker/internal/router"
)

func TestHTTP_EndToEnd_ScheduleAndAdherence(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "owner-1"

	// 0) Sin identidad no hay agenda
	{
		st, _ := doReq(t, ts.URL, "GET", "/schedule", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without identity, got %d", st)
		}
	}

	// 1) Owner registra un miembro
	memberID := createJSON(t, ts.URL, "/members", ownerID, map[string]any{
		"name":     "Lucas",
		"relation": "child",
	})

	// 2) Owner crea un tratamiento cada 8 horas anclado a ayer 00:05,
	// así la grilla de hoy siempre es 00:05 / 08:05 / 16:05.
	y, m, d := time.Now().Date()
	startAt := time.Date(y, m, d, 0, 5, 0, 0, time.Local).AddDate(0, 0, -1)
	treatmentID := createJSON(t, ts.URL, "/treatments", ownerID, map[string]any{
		"member_id":       memberID,
		"medication":      "Amoxicilina",
		"dosage":          "500 mg",
		"frequency_value": 8,
		"frequency_unit":  "hours",
		"start_at":        startAt.Format(time.RFC3339),
	})

	// 3) La agenda de hoy tiene las dosis de la grilla de 8h (3 por día)
	var schedule struct {
		Day    string `json:"day"`
		Events []struct {
			TreatmentID string `json:"treatment_id"`
			ScheduledAt string `json:"scheduled_at"`
			Status      string `json:"status"`
		} `json:"events"`
		Stats struct {
			Total int `json:"total"`
			Taken int `json:"taken"`
		} `json:"stats"`
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/schedule", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 fetching schedule, got %d body=%s", st, string(body))
		}
		if err := json.Unmarshal(body, &schedule); err != nil {
			t.Fatalf("invalid schedule json: %v", err)
		}
		if len(schedule.Events) != 3 {
			t.Fatalf("expected 3 doses on an 8h grid, got %d", len(schedule.Events))
		}
		if schedule.Stats.Taken != 0 {
			t.Fatalf("expected no doses taken yet, got %d", schedule.Stats.Taken)
		}
		for _, ev := range schedule.Events {
			if ev.Status == "taken" {
				t.Fatalf("expected no dose taken yet, got %+v", ev)
			}
		}
	}

	// 4) Owner marca la primera dosis como tomada
	{
		st, body := doReq(t, ts.URL, "POST", "/doses/taken", ownerID, map[string]any{
			"treatment_id": treatmentID,
			"member_id":    memberID,
			"medication":   "Amoxicilina",
			"dosage":       "500 mg",
			"scheduled_at": schedule.Events[0].ScheduledAt,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 marking dose taken, got %d body=%s", st, string(body))
		}
	}

	// 5) La agenda refleja la confirmación en la siguiente corrida
	{
		st, body := doReq(t, ts.URL, "GET", "/schedule", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 refetching schedule, got %d", st)
		}
		if err := json.Unmarshal(body, &schedule); err != nil {
			t.Fatalf("invalid schedule json: %v", err)
		}
		if schedule.Events[0].Status != "taken" {
			t.Fatalf("expected first dose taken after confirming, got %s", schedule.Events[0].Status)
		}
		if schedule.Stats.Taken != 1 {
			t.Fatalf("expected 1 dose taken in stats, got %d", schedule.Stats.Taken)
		}
	}

	// 6) Estadísticas globales
	{
		st, body := doReq(t, ts.URL, "GET", "/stats", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 fetching stats, got %d body=%s", st, string(body))
		}
		var stats struct {
			ActiveTreatments int    `json:"active_treatments"`
			TotalTreatments  int    `json:"total_treatments"`
			TopMedication    string `json:"top_medication"`
			TopMemberName    string `json:"top_member_name"`
		}
		if err := json.Unmarshal(body, &stats); err != nil {
			t.Fatalf("invalid stats json: %v", err)
		}
		if stats.ActiveTreatments != 1 || stats.TotalTreatments != 1 {
			t.Fatalf("expected 1 active / 1 total, got %d / %d", stats.ActiveTreatments, stats.TotalTreatments)
		}
		if stats.TopMedication != "Amoxicilina" || stats.TopMemberName != "Lucas" {
			t.Fatalf("expected top tallies resolved, got %q / %q", stats.TopMedication, stats.TopMemberName)
		}
	}

	// 7) Otro usuario no ve nada del owner
	{
		st, body := doReq(t, ts.URL, "GET", "/schedule", "stranger-1", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 for stranger, got %d", st)
		}
		if err := json.Unmarshal(body, &schedule); err != nil {
			t.Fatalf("invalid schedule json: %v", err)
		}
		if len(schedule.Events) != 0 {
			t.Fatalf("expected empty schedule for stranger, got %d events", len(schedule.Events))
		}
	}

	// 8) Recursos inexistentes devuelven 404, no 500
	{
		if st, _ := doReq(t, ts.URL, "GET", "/members/no-such-id", ownerID, nil); st != http.StatusNotFound {
			t.Fatalf("expected 404 for missing member, got %d", st)
		}
		st, _ := doReq(t, ts.URL, "POST", "/treatments/no-such-id/status", ownerID, map[string]any{"status": "paused"})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for missing treatment, got %d", st)
		}
	}
}

func TestHTTP_PauseRemovesFromSchedule(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "owner-2"

	memberID := createJSON(t, ts.URL, "/members", ownerID, map[string]any{
		"name":     "Sofía",
		"relation": "parent",
	})
	startAt := time.Now().Add(-3 * time.Hour).Truncate(time.Minute)
	treatmentID := createJSON(t, ts.URL, "/treatments", ownerID, map[string]any{
		"member_id":       memberID,
		"medication":      "Enalapril",
		"dosage":          "10 mg",
		"frequency_value": 1,
		"frequency_unit":  "dias", // grafía legacy
		"start_at":        startAt.Format(time.RFC3339),
	})

	{
		st, body := doReq(t, ts.URL, "POST", "/treatments/"+treatmentID+"/status", ownerID, map[string]any{
			"status": "paused",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 pausing, got %d body=%s", st, string(body))
		}
	}

	{
		st, body := doReq(t, ts.URL, "GET", "/schedule", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 fetching schedule, got %d", st)
		}
		var schedule struct {
			Events []json.RawMessage `json:"events"`
		}
		if err := json.Unmarshal(body, &schedule); err != nil {
			t.Fatalf("invalid schedule json: %v", err)
		}
		if len(schedule.Events) != 0 {
			t.Fatalf("expected no doses for paused treatment, got %d", len(schedule.Events))
		}
	}

	// El filtro ?status=active deja afuera al tratamiento pausado
	{
		st, body := doReq(t, ts.URL, "GET", "/treatments?status=active", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 listing active treatments, got %d", st)
		}
		var active []json.RawMessage
		if err := json.Unmarshal(body, &active); err != nil {
			t.Fatalf("invalid treatments json: %v", err)
		}
		if len(active) != 0 {
			t.Fatalf("expected no active treatments after pausing, got %d", len(active))
		}

		st, body = doReq(t, ts.URL, "GET", "/treatments", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 listing all treatments, got %d", st)
		}
		var all []json.RawMessage
		if err := json.Unmarshal(body, &all); err != nil {
			t.Fatalf("invalid treatments json: %v", err)
		}
		if len(all) != 1 {
			t.Fatalf("expected paused treatment still listed, got %d", len(all))
		}
	}
}

// -------------------------
// Helpers
// -------------------------

func doReq(t *testing.T, baseURL, method, path, userID string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, b
}

func createJSON(t *testing.T, baseURL, path, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 creating %s, got %d body=%s", path, st, string(body))
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &out); err != nil || out.ID == "" {
		t.Fatalf("expected id in response, body=%s err=%v", string(body), err)
	}
	return out.ID
}
