package treatments

import "strings"

// FrequencyUnit es la unidad del intervalo entre dosis.
// @Enum hours, days
type FrequencyUnit string

const (
	UnitHours FrequencyUnit = "hours"
	UnitDays  FrequencyUnit = "days"
)

// ParseFrequencyUnit acepta además las grafías legacy de los formularios
// ("horas", "dias"/"días") y las normaliza.
func ParseFrequencyUnit(s string) (FrequencyUnit, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hours", "horas", "hour", "hora":
		return UnitHours, true
	case "days", "dias", "días", "day", "dia", "día":
		return UnitDays, true
	default:
		return "", false
	}
}

// Status es el ciclo de vida del tratamiento. Nunca se borra físicamente
// mientras tenga historial; se retira con finished/paused.
// @Enum active, paused, finished
type Status string

const (
	StatusActive   Status = "active"
	StatusPaused   Status = "paused"
	StatusFinished Status = "finished"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive, true
	case StatusPaused:
		return StatusPaused, true
	case StatusFinished:
		return StatusFinished, true
	default:
		return "", false
	}
}
