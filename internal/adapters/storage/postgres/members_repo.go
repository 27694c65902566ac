package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"family-med-tracker/internal/domain/members"
)

type MembersRepo struct {
	db *sql.DB
}

func NewMembersRepo(db *sql.DB) *MembersRepo {
	return &MembersRepo{db: db}
}

func (r *MembersRepo) Create(ctx context.Context, m members.Member) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO members (
			id, owner_user_id,
			name, relation, birth_date,
			allergies, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		m.ID,
		m.OwnerUserID,
		m.Name,
		string(m.Relation),
		m.BirthDate,
		m.Allergies,
		m.Notes,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return err
}

func (r *MembersRepo) GetByID(ctx context.Context, id string) (members.Member, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return members.Member{}, members.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id,
			name, relation, birth_date,
			allergies, notes,
			created_at, updated_at
		FROM members
		WHERE id = $1
	`, id)

	m, err := scanMember(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return members.Member{}, members.ErrNotFound
		}
		return members.Member{}, err
	}
	return m, nil
}

func (r *MembersRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]members.Member, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id,
			name, relation, birth_date,
			allergies, notes,
			created_at, updated_at
		FROM members
		WHERE owner_user_id = $1
		ORDER BY name, id
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]members.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MembersRepo) Update(ctx context.Context, m members.Member) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE members SET
			name = $2,
			relation = $3,
			birth_date = $4,
			allergies = $5,
			notes = $6,
			updated_at = $7
		WHERE id = $1
	`,
		m.ID,
		m.Name,
		string(m.Relation),
		m.BirthDate,
		m.Allergies,
		m.Notes,
		m.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return members.ErrNotFound
	}
	return nil
}

// Delete borra el miembro; los tratamientos y confirmaciones asociados
// caen por FK ON DELETE CASCADE en el esquema.
func (r *MembersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return members.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (members.Member, error) {
	var m members.Member
	var relation string
	var birthDate sql.NullTime

	if err := row.Scan(
		&m.ID,
		&m.OwnerUserID,
		&m.Name,
		&relation,
		&birthDate,
		&m.Allergies,
		&m.Notes,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return members.Member{}, err
	}

	m.Relation = members.Relation(relation)
	if birthDate.Valid {
		bd := birthDate.Time
		m.BirthDate = &bd
	}
	return m, nil
}
