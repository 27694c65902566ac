package schedule

import (
	"math"

	"family-med-tracker/internal/domain/members"
	"family-med-tracker/internal/domain/treatments"
)

// Aggregate cuenta los estados de una agenda diaria. Con agenda vacía
// devuelve todo en cero (nunca NaN ni división por cero).
func Aggregate(events []DoseEvent) Stats {
	st := Stats{Total: len(events)}

	for _, ev := range events {
		switch ev.Status {
		case StatusTaken:
			st.Taken++
		case StatusOverdue:
			st.Overdue++
		default:
			st.Pending++
		}
	}

	if st.Total > 0 {
		st.Percentage = int(math.Round(float64(st.Taken) / float64(st.Total) * 100))
	}
	return st
}

// TopMedication devuelve el medicamento que aparece en más tratamientos.
// A igual conteo gana el primero visto en el orden de entrada (que es el
// listado estable del storage, por nombre).
func TopMedication(ts []treatments.Treatment) (string, int) {
	counts := map[string]int{}
	for _, t := range ts {
		counts[t.Medication]++
	}

	// Dos pasadas: primero el conteo completo, después el primer
	// medicamento del orden de entrada que alcanza el máximo. Actualizar
	// el máximo mientras se cuenta dejaría ganar al último en llegar.
	best := ""
	bestCount := 0
	for _, t := range ts {
		if counts[t.Medication] > bestCount {
			best = t.Medication
			bestCount = counts[t.Medication]
		}
	}
	return best, bestCount
}

// TopMember devuelve el miembro con más tratamientos, mismo criterio de
// desempate first-seen-wins que TopMedication.
func TopMember(ts []treatments.Treatment, ms []members.Member) (members.Member, int) {
	counts := map[string]int{}
	for _, t := range ts {
		counts[t.MemberID]++
	}

	bestID := ""
	bestCount := 0
	for _, t := range ts {
		if counts[t.MemberID] > bestCount {
			bestID = t.MemberID
			bestCount = counts[t.MemberID]
		}
	}

	for _, m := range ms {
		if m.ID == bestID {
			return m, bestCount
		}
	}
	return members.Member{}, 0
}
