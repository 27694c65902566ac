package treatments

import "context"

type Repository interface {
	Create(ctx context.Context, t Treatment) error
	GetByID(ctx context.Context, id string) (Treatment, error)
	// ListByOwner devuelve todos los tratamientos del dueño (cualquier
	// status), ordenados por nombre de medicamento (listado estable).
	ListByOwner(ctx context.Context, ownerUserID string) ([]Treatment, error)
	Update(ctx context.Context, t Treatment) error
}
