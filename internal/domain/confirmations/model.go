package confirmations

import "time"

// Status del registro de confirmación.
// @Enum taken, missed, late
type Status string

const (
	StatusTaken  Status = "taken"
	StatusMissed Status = "missed"
	StatusLate   Status = "late"
)

// Record registra que una dosis programada fue tomada. Se crea una vez
// y no se muta ni se borra en operación normal.
//
// Invariante de aplicación: a lo sumo un Record por
// (TreatmentID, ScheduledAt). El storage no lo garantiza, así que el
// matcher de la agenda es defensivo ante duplicados.
type Record struct {
	ID          string
	OwnerUserID string
	TreatmentID string
	MemberID    string

	// Copia desnormalizada para mostrar historial sin joins.
	Medication string
	Dosage     string

	// ScheduledAt es el horario de la dosis que este registro responde;
	// ConfirmedAt es cuándo el usuario confirmó de verdad.
	ScheduledAt time.Time
	ConfirmedAt time.Time

	Status Status
	Notes  string

	CreatedAt time.Time
}

// Day devuelve la fecha calendario (YYYY-MM-DD) del horario programado.
// El filtro por día compara este string, no un rango de timestamps,
// para no pisarse con offsets de timezone entre cliente y storage.
func (r Record) Day() string {
	return r.ScheduledAt.Format("2006-01-02")
}
