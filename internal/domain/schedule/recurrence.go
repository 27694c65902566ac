package schedule

import (
	"time"

	"family-med-tracker/internal/domain/treatments"
)

// Expand despliega la regla de recurrencia de un tratamiento dentro de la
// ventana [windowStart, windowEnd] (ambos extremos inclusive) y devuelve
// los horarios de dosis en orden ascendente.
//
// Para tratamientos que empezaron mucho antes de la ventana no se itera
// período a período desde el inicio: se calculan los períodos enteros
// transcurridos y se salta directo desde el ancla (StartAt + n*período),
// que además evita acumular error por sumas repetidas sobre historiales
// largos. Dentro de la ventana (un día) sí se avanza de a un período.
func Expand(t treatments.Treatment, windowStart, windowEnd time.Time) []time.Time {
	if t.Status != treatments.StatusActive {
		return nil
	}

	period := t.Period()
	if period <= 0 {
		return nil
	}

	start := t.StartAt
	if start.After(windowEnd) {
		return nil
	}

	// Duración finita: no se emiten dosis después del fin del tratamiento.
	if end, ok := t.EndAt(); ok {
		if end.Before(windowStart) {
			return nil
		}
		if end.Before(windowEnd) {
			windowEnd = end
		}
	}

	cursor := start
	if start.Before(windowStart) {
		elapsed := windowStart.Sub(start)
		periods := int64(elapsed / period)
		cursor = start.Add(time.Duration(periods) * period)
		if cursor.Before(windowStart) {
			cursor = cursor.Add(period)
		}
	}

	out := make([]time.Time, 0, 4)
	for !cursor.After(windowEnd) {
		out = append(out, cursor)
		cursor = cursor.Add(period)
	}
	return out
}
