package schedule

import (
	"fmt"
	"time"

	"family-med-tracker/internal/domain/members"
	"family-med-tracker/internal/domain/treatments"
)

// buildInsights evalúa una lista fija de reglas en orden determinístico.
// Cada regla aporta un mensaje o nada; no hay aleatoriedad, así que para
// los mismos datos el resultado es siempre el mismo.
func buildInsights(today Stats, ts []treatments.Treatment, ms []members.Member, topMember members.Member, topMemberCount int, now time.Time) []string {
	out := make([]string, 0, 4)

	// 1. Dosis atrasadas hoy
	if today.Overdue == 1 {
		out = append(out, "Hay 1 dosis atrasada hoy.")
	} else if today.Overdue > 1 {
		out = append(out, fmt.Sprintf("Hay %d dosis atrasadas hoy.", today.Overdue))
	}

	// 2. Sin tratamientos activos (solo tiene sentido si ya hay miembros)
	active := 0
	for _, t := range ts {
		if t.Status == treatments.StatusActive {
			active++
		}
	}
	if active == 0 && len(ms) > 0 {
		out = append(out, "No hay tratamientos activos en este momento.")
	}

	// 3. Tratamientos nuevos esta semana
	weekAgo := now.Add(-7 * 24 * time.Hour)
	newThisWeek := 0
	for _, t := range ts {
		if t.CreatedAt.After(weekAgo) {
			newThisWeek++
		}
	}
	if newThisWeek == 1 {
		out = append(out, "Se agregó 1 tratamiento nuevo esta semana.")
	} else if newThisWeek > 1 {
		out = append(out, fmt.Sprintf("Se agregaron %d tratamientos nuevos esta semana.", newThisWeek))
	}

	// 4. Miembro con más tratamientos
	if topMemberCount > 0 && topMember.Name != "" {
		out = append(out, fmt.Sprintf("%s es quien más tratamientos tiene (%d).", topMember.Name, topMemberCount))
	}

	// 5. Nivel de adherencia del día (solo si hubo dosis programadas)
	if today.Total > 0 {
		switch {
		case today.Percentage >= 80:
			out = append(out, fmt.Sprintf("Excelente adherencia hoy: %d%%.", today.Percentage))
		case today.Percentage >= 60:
			out = append(out, fmt.Sprintf("Buena adherencia hoy: %d%%. Se puede mejorar.", today.Percentage))
		default:
			out = append(out, fmt.Sprintf("Adherencia baja hoy: %d%%. Revisá las dosis pendientes.", today.Percentage))
		}
	}

	return out
}
