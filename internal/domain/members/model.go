package members

import "time"

// Relation describe el vínculo del miembro con el dueño de la cuenta.
// @Enum self, partner, child, parent, other
type Relation string

const (
	RelationSelf    Relation = "self"
	RelationPartner Relation = "partner"
	RelationChild   Relation = "child"
	RelationParent  Relation = "parent"
	RelationOther   Relation = "other"
)

// Member es una persona de la familia que recibe tratamientos.
type Member struct {
	ID          string
	OwnerUserID string

	Name     string
	Relation Relation

	BirthDate *time.Time

	// Atributos médicos opcionales (texto libre por ahora).
	Allergies string
	Notes     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
