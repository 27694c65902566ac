package druginfo

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured indica que no hay backend de consulta configurado.
	ErrNotConfigured = errors.New("druginfo: not configured")
)

// Info es el texto informativo que devuelve el colaborador de IA
// para un medicamento. El motor nunca lo consume; es solo para la UI.
type Info struct {
	Medication  string
	Summary     string
	SideEffects string
	Source      string
}

// Lookup consulta información de un medicamento en el backend externo.
type Lookup interface {
	Lookup(ctx context.Context, medication string) (Info, error)
}
