package confirmations

import "context"

type Repository interface {
	Create(ctx context.Context, rec Record) error
	// ListByOwnerAndDay filtra por la fecha calendario (YYYY-MM-DD) del
	// horario programado, semántica de Record.Day.
	ListByOwnerAndDay(ctx context.Context, ownerUserID, day string) ([]Record, error)
}
