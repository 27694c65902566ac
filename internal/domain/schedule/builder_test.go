package schedule

import (
	"testing"
	"time"

	"family-med-tracker/internal/domain/confirmations"
	"family-med-tracker/internal/domain/members"
	"family-med-tracker/internal/domain/treatments"
)

func familyMember(id, name string) members.Member {
	return members.Member{
		ID:          id,
		OwnerUserID: "owner-1",
		Name:        name,
		Relation:    members.RelationChild,
	}
}

// Escenario base: tratamiento cada 8h que empezó hoy 08:00, son las 14:00.
// La agenda del día es [08:00 overdue, 16:00 pending].
func TestBuildDay_OverdueAndPending(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	tr := activeTreatment(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), 8, treatments.UnitHours)
	tr.MemberID = "m-1"

	got := BuildDay(
		[]treatments.Treatment{tr},
		[]members.Member{familyMember("m-1", "Lucas")},
		nil,
		day, now,
	)

	if len(got) != 2 {
		t.Fatalf("expected 2 dose events, got %d", len(got))
	}
	if got[0].ScheduledAt.Hour() != 8 || got[0].Status != StatusOverdue {
		t.Fatalf("expected 08:00 overdue, got %v %s", got[0].ScheduledAt, got[0].Status)
	}
	if got[1].ScheduledAt.Hour() != 16 || got[1].Status != StatusPending {
		t.Fatalf("expected 16:00 pending, got %v %s", got[1].ScheduledAt, got[1].Status)
	}
	if got[0].MemberName != "Lucas" {
		t.Fatalf("expected member name resolved, got %q", got[0].MemberName)
	}
}

// Mismo escenario, pero con confirmación para las 08:00 (±2 min):
// la dosis de la mañana queda taken y la de la tarde sigue pending.
func TestBuildDay_ConfirmedDoseIsTaken(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	tr := activeTreatment(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), 8, treatments.UnitHours)
	tr.MemberID = "m-1"

	conf := confirmationAt("c-1", tr.ID, time.Date(2026, 3, 10, 8, 2, 0, 0, time.UTC), now)

	got := BuildDay(
		[]treatments.Treatment{tr},
		[]members.Member{familyMember("m-1", "Lucas")},
		[]confirmations.Record{conf},
		day, now,
	)

	if len(got) != 2 {
		t.Fatalf("expected 2 dose events, got %d", len(got))
	}
	if got[0].Status != StatusTaken {
		t.Fatalf("expected 08:00 taken, got %s", got[0].Status)
	}
	if got[0].ConfirmationID != "c-1" {
		t.Fatalf("expected confirmation linked, got %q", got[0].ConfirmationID)
	}
	if got[0].ConfirmedAt == nil {
		t.Fatalf("expected confirmed_at attached")
	}
	if got[1].Status != StatusPending {
		t.Fatalf("expected 16:00 pending, got %s", got[1].Status)
	}
}

func TestBuildDay_SortedRegardlessOfInputOrder(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)

	trA := activeTreatment(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), 24, treatments.UnitHours)
	trA.ID = "t-a"
	trA.MemberID = "m-1"
	trB := activeTreatment(time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC), 24, treatments.UnitHours)
	trB.ID = "t-b"
	trB.MemberID = "m-1"
	// mismo horario que trA para el desempate por id
	trC := activeTreatment(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), 24, treatments.UnitHours)
	trC.ID = "t-0"
	trC.MemberID = "m-1"

	ms := []members.Member{familyMember("m-1", "Lucas")}

	got := BuildDay([]treatments.Treatment{trA, trB, trC}, ms, nil, day, now)
	if len(got) != 3 {
		t.Fatalf("expected 3 dose events, got %d", len(got))
	}
	if got[0].TreatmentID != "t-b" {
		t.Fatalf("expected 07:00 first, got %s", got[0].TreatmentID)
	}
	if got[1].TreatmentID != "t-0" || got[2].TreatmentID != "t-a" {
		t.Fatalf("expected tie broken by treatment id, got %s then %s", got[1].TreatmentID, got[2].TreatmentID)
	}

	// Otra permutación de entrada: misma salida.
	again := BuildDay([]treatments.Treatment{trC, trA, trB}, ms, nil, day, now)
	for i := range got {
		if again[i].TreatmentID != got[i].TreatmentID || !again[i].ScheduledAt.Equal(got[i].ScheduledAt) {
			t.Fatalf("expected identical ordering across permutations")
		}
	}
}

func TestBuildDay_SkipsBrokenTreatments(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	ok := activeTreatment(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), 24, treatments.UnitHours)
	ok.ID = "t-ok"
	ok.MemberID = "m-1"

	// miembro colgado: se omite sin abortar la agenda
	dangling := activeTreatment(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), 24, treatments.UnitHours)
	dangling.ID = "t-dangling"
	dangling.MemberID = "m-ghost"

	// pausado: no aporta dosis
	paused := activeTreatment(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), 24, treatments.UnitHours)
	paused.ID = "t-paused"
	paused.MemberID = "m-1"
	paused.Status = treatments.StatusPaused

	// futuro respecto de now: todavía no empezó, aunque la ventana del
	// día matemáticamente lo incluya
	future := activeTreatment(time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC), 24, treatments.UnitHours)
	future.ID = "t-future"
	future.MemberID = "m-1"

	// frecuencia malformada
	broken := activeTreatment(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), 0, treatments.UnitHours)
	broken.ID = "t-broken"
	broken.MemberID = "m-1"

	got := BuildDay(
		[]treatments.Treatment{ok, dangling, paused, future, broken},
		[]members.Member{familyMember("m-1", "Lucas")},
		nil,
		day, now,
	)

	if len(got) != 1 {
		t.Fatalf("expected only the healthy treatment's dose, got %d", len(got))
	}
	if got[0].TreatmentID != "t-ok" {
		t.Fatalf("expected t-ok, got %s", got[0].TreatmentID)
	}
}

func TestBuildDay_EmptyInputs(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := day

	got := BuildDay(nil, nil, nil, day, now)
	if len(got) != 0 {
		t.Fatalf("expected empty schedule, got %d events", len(got))
	}
}
