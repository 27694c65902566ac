package schedule

import (
	"testing"
	"time"

	"family-med-tracker/internal/domain/treatments"
)

func activeTreatment(startAt time.Time, freq int, unit treatments.FrequencyUnit) treatments.Treatment {
	return treatments.Treatment{
		ID:             "t-1",
		OwnerUserID:    "owner-1",
		MemberID:       "member-1",
		Medication:     "Ibuprofeno",
		Dosage:         "200 mg",
		FrequencyValue: freq,
		FrequencyUnit:  unit,
		StartAt:        startAt,
		Status:         treatments.StatusActive,
	}
}

func TestExpand_PeriodicityLaw(t *testing.T) {
	// Sobre [S, S+10F] tienen que salir exactamente 11 horarios espaciados F.
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	tr := activeTreatment(start, 6, treatments.UnitHours)

	period := 6 * time.Hour
	got := Expand(tr, start, start.Add(10*period))

	if len(got) != 11 {
		t.Fatalf("expected 11 occurrences, got %d", len(got))
	}
	for i, at := range got {
		want := start.Add(time.Duration(i) * period)
		if !at.Equal(want) {
			t.Fatalf("occurrence %d: expected %v, got %v", i, want, at)
		}
	}
}

func TestExpand_JumpsElapsedPeriods(t *testing.T) {
	// Tratamiento cada 2 días que empezó 4 días atrás a las 09:00:
	// el salto por períodos enteros tiene que caer justo en hoy 09:00,
	// única ocurrencia del día.
	start := time.Date(2026, 3, 6, 9, 0, 0, 0, time.UTC)
	tr := activeTreatment(start, 2, treatments.UnitDays)

	dayStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24*time.Hour - time.Second)

	got := Expand(tr, dayStart, dayEnd)
	if len(got) != 1 {
		t.Fatalf("expected 1 occurrence, got %d (%v)", len(got), got)
	}
	want := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	if !got[0].Equal(want) {
		t.Fatalf("expected %v, got %v", want, got[0])
	}
}

func TestExpand_OccurrenceExactlyAtWindowStart(t *testing.T) {
	// Una ocurrencia que cae exacto en windowStart se incluye: el salto
	// es "primera ocurrencia en o después de windowStart".
	start := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC) // medianoche, cada 24h
	tr := activeTreatment(start, 24, treatments.UnitHours)

	dayStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24*time.Hour - time.Second)

	got := Expand(tr, dayStart, dayEnd)
	if len(got) != 1 {
		t.Fatalf("expected 1 occurrence, got %d (%v)", len(got), got)
	}
	if !got[0].Equal(dayStart) {
		t.Fatalf("expected occurrence at window start %v, got %v", dayStart, got[0])
	}
}

func TestExpand_InclusiveUpperBound(t *testing.T) {
	// Una ocurrencia exactamente igual a windowEnd se incluye.
	windowEnd := time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)
	tr := activeTreatment(windowEnd, 8, treatments.UnitHours)

	got := Expand(tr, windowEnd.Add(-time.Hour), windowEnd)
	if len(got) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(got))
	}
	if !got[0].Equal(windowEnd) {
		t.Fatalf("expected %v, got %v", windowEnd, got[0])
	}
}

func TestExpand_EmptyCases(t *testing.T) {
	dayStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24*time.Hour - time.Second)

	// start después de windowEnd
	late := activeTreatment(dayEnd.Add(time.Minute), 8, treatments.UnitHours)
	if got := Expand(late, dayStart, dayEnd); len(got) != 0 {
		t.Fatalf("expected no occurrences for start after window, got %d", len(got))
	}

	// status no-active
	paused := activeTreatment(dayStart, 8, treatments.UnitHours)
	paused.Status = treatments.StatusPaused
	if got := Expand(paused, dayStart, dayEnd); len(got) != 0 {
		t.Fatalf("expected no occurrences for paused treatment, got %d", len(got))
	}

	// frecuencia malformada: no rompe, devuelve vacío
	broken := activeTreatment(dayStart, 0, treatments.UnitHours)
	if got := Expand(broken, dayStart, dayEnd); len(got) != 0 {
		t.Fatalf("expected no occurrences for zero frequency, got %d", len(got))
	}
}

func TestExpand_FiniteDurationClampsWindow(t *testing.T) {
	// Tratamiento de 1 día cada 12h que empezó ayer 08:00: termina hoy
	// 08:00, así que hoy solo emite la dosis de las 08:00 (la de las
	// 20:00 queda afuera del span).
	start := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	tr := activeTreatment(start, 12, treatments.UnitHours)
	tr.DurationDays = 1 // fin: 2026-03-10 08:00

	dayStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24*time.Hour - time.Second)

	got := Expand(tr, dayStart, dayEnd)
	if len(got) != 1 {
		t.Fatalf("expected 1 occurrence, got %d (%v)", len(got), got)
	}
	want := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	if !got[0].Equal(want) {
		t.Fatalf("expected %v, got %v", want, got[0])
	}

	// Y un tratamiento ya terminado antes de la ventana no emite nada.
	over := activeTreatment(start.Add(-10*24*time.Hour), 12, treatments.UnitHours)
	over.DurationDays = 2
	if got := Expand(over, dayStart, dayEnd); len(got) != 0 {
		t.Fatalf("expected no occurrences for finished span, got %d", len(got))
	}
}
