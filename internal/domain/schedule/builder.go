package schedule

import (
	"sort"
	"time"

	"family-med-tracker/internal/domain/confirmations"
	"family-med-tracker/internal/domain/members"
	"family-med-tracker/internal/domain/treatments"
)

// DayWindow devuelve la ventana [00:00:00, 23:59:59] del día calendario
// de day, en hora de pared local (sin conversión de timezone).
func DayWindow(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.Add(24*time.Hour - time.Second)
}

// BuildDay arma la agenda del día: expande cada tratamiento activo,
// cruza cada horario con las confirmaciones del día y resuelve el estado
// de cada dosis. Operación pura: no toca storage ni estado compartido.
//
// Un tratamiento roto (frecuencia inválida, miembro colgado) se saltea
// sin abortar la agenda del resto. Tratamientos con StartAt en el futuro
// respecto de now todavía no aportan dosis.
func BuildDay(ts []treatments.Treatment, ms []members.Member, confs []confirmations.Record, day, now time.Time) []DoseEvent {
	windowStart, windowEnd := DayWindow(day)

	membersByID := make(map[string]members.Member, len(ms))
	for _, m := range ms {
		membersByID[m.ID] = m
	}

	out := make([]DoseEvent, 0)

	for _, t := range ts {
		if t.Status != treatments.StatusActive {
			continue
		}
		if t.StartAt.After(now) {
			continue
		}
		m, ok := membersByID[t.MemberID]
		if !ok {
			// referencia colgada: omisión, no error fatal
			continue
		}

		for _, at := range Expand(t, windowStart, windowEnd) {
			ev := DoseEvent{
				TreatmentID: t.ID,
				MemberID:    m.ID,
				MemberName:  m.Name,
				Medication:  t.Medication,
				Dosage:      t.Dosage,
				ScheduledAt: at,
			}

			if c, matched := MatchConfirmation(at, t.ID, confs); matched {
				confirmedAt := c.ConfirmedAt
				ev.Status = StatusTaken
				ev.ConfirmationID = c.ID
				ev.ConfirmedAt = &confirmedAt
				ev.Notes = c.Notes
			} else if at.Before(now) {
				ev.Status = StatusOverdue
			} else {
				ev.Status = StatusPending
			}

			out = append(out, ev)
		}
	}

	// Orden estable: por horario y, a igual horario, por tratamiento,
	// para que corridas repetidas den exactamente la misma agenda.
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].TreatmentID < out[j].TreatmentID
	})

	return out
}
