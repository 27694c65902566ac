package treatments

import "time"

// Treatment es una orden recurrente de medicación para un miembro.
type Treatment struct {
	ID          string
	OwnerUserID string
	MemberID    string

	Medication string
	Dosage     string // texto libre: "10 mg", "2 gotas"

	FrequencyValue int // > 0
	FrequencyUnit  FrequencyUnit

	// StartAt es hora de pared local, sin conversión de timezone.
	// Inmutable después de crear: editar el horario implica una
	// nueva línea base de recurrencia (un tratamiento nuevo).
	StartAt time.Time

	// DurationDays: 0 = tratamiento continuo.
	DurationDays int

	Status Status
	Notes  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Period devuelve el intervalo entre dosis en horas enteras
// (days se normaliza a value*24h). Cero si el tratamiento está malformado.
func (t Treatment) Period() time.Duration {
	if t.FrequencyValue <= 0 {
		return 0
	}
	hours := t.FrequencyValue
	if t.FrequencyUnit == UnitDays {
		hours *= 24
	}
	return time.Duration(hours) * time.Hour
}

// EndAt devuelve el fin del tratamiento si tiene duración finita.
func (t Treatment) EndAt() (time.Time, bool) {
	if t.DurationDays <= 0 {
		return time.Time{}, false
	}
	return t.StartAt.Add(time.Duration(t.DurationDays) * 24 * time.Hour), true
}
