package members

import "context"

type Repository interface {
	Create(ctx context.Context, m Member) error
	GetByID(ctx context.Context, id string) (Member, error)
	// ListByOwner devuelve los miembros ordenados por nombre (listado estable).
	ListByOwner(ctx context.Context, ownerUserID string) ([]Member, error)
	Update(ctx context.Context, m Member) error
	// Delete borra el miembro. El cascade de tratamientos e historial
	// es responsabilidad del storage (FK ON DELETE CASCADE), no del motor.
	Delete(ctx context.Context, id string) error
}
