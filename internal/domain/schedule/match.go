package schedule

import (
	"time"

	"family-med-tracker/internal/domain/confirmations"
)

// MatchTolerance es la diferencia máxima entre el horario programado de
// una dosis y el ScheduledAt de una confirmación para considerarlas el
// mismo evento. Versiones viejas del producto usaban 60s en la app y 5min
// en el tooling de diagnóstico; el contrato vigente es 5 minutos.
const MatchTolerance = 5 * time.Minute

// MatchConfirmation busca la confirmación que responde a la dosis
// (treatmentID, scheduledAt) dentro de la tolerancia. Si hay más de una
// (el storage no garantiza unicidad) gana la de menor diferencia
// absoluta; empates se resuelven por CreatedAt más antiguo.
func MatchConfirmation(scheduledAt time.Time, treatmentID string, confs []confirmations.Record) (confirmations.Record, bool) {
	var best confirmations.Record
	var bestDiff time.Duration
	found := false

	for _, c := range confs {
		if c.TreatmentID != treatmentID {
			continue
		}

		diff := c.ScheduledAt.Sub(scheduledAt)
		if diff < 0 {
			diff = -diff
		}
		if diff > MatchTolerance {
			continue
		}

		switch {
		case !found:
			best, bestDiff, found = c, diff, true
		case diff < bestDiff:
			best, bestDiff = c, diff
		case diff == bestDiff && c.CreatedAt.Before(best.CreatedAt):
			best = c
		}
	}

	return best, found
}
