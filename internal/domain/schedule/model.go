package schedule

import "time"

// DoseStatus es el estado resuelto de una dosis del día.
// @Enum pending, taken, overdue
type DoseStatus string

const (
	StatusPending DoseStatus = "pending"
	StatusTaken   DoseStatus = "taken"
	StatusOverdue DoseStatus = "overdue"
)

// DoseEvent es una ocurrencia derivada de la agenda: se reconstruye en
// cada corrida del builder y no se persiste nunca.
type DoseEvent struct {
	TreatmentID string
	MemberID    string
	MemberName  string

	Medication string
	Dosage     string

	ScheduledAt time.Time
	Status      DoseStatus

	// Seteados solo cuando hay confirmación matcheada.
	ConfirmationID string
	ConfirmedAt    *time.Time
	Notes          string
}

// DaySchedule es la agenda completa de un día calendario, ordenada
// ascendente por horario programado.
type DaySchedule struct {
	Day    string // YYYY-MM-DD
	Events []DoseEvent
}

// Stats son los contadores del día. Percentage = round(taken/total*100),
// 0 cuando no hay dosis.
type Stats struct {
	Total      int
	Taken      int
	Pending    int
	Overdue    int
	Percentage int
}

// Statistics es lo que ve la pantalla de estadísticas: los contadores de
// hoy más los tallies globales sobre la lista completa de tratamientos.
type Statistics struct {
	Today Stats

	ActiveTreatments int
	TotalTreatments  int

	TopMedication      string
	TopMedicationCount int

	TopMemberID    string
	TopMemberName  string
	TopMemberCount int

	Insights []string
}
