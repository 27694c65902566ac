package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"family-med-tracker/internal/domain/treatments"
)

type TreatmentsRepo struct {
	db *sql.DB
}

func NewTreatmentsRepo(db *sql.DB) *TreatmentsRepo {
	return &TreatmentsRepo{db: db}
}

func (r *TreatmentsRepo) Create(ctx context.Context, t treatments.Treatment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO treatments (
			id, owner_user_id, member_id,
			medication, dosage,
			frequency_value, frequency_unit,
			start_at, duration_days,
			status, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		t.ID,
		t.OwnerUserID,
		t.MemberID,
		t.Medication,
		t.Dosage,
		t.FrequencyValue,
		string(t.FrequencyUnit),
		t.StartAt,
		t.DurationDays,
		string(t.Status),
		t.Notes,
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

func (r *TreatmentsRepo) GetByID(ctx context.Context, id string) (treatments.Treatment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return treatments.Treatment{}, treatments.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id, member_id,
			medication, dosage,
			frequency_value, frequency_unit,
			start_at, duration_days,
			status, notes,
			created_at, updated_at
		FROM treatments
		WHERE id = $1
	`, id)

	t, err := scanTreatment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return treatments.Treatment{}, treatments.ErrNotFound
		}
		return treatments.Treatment{}, err
	}
	return t, nil
}

func (r *TreatmentsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]treatments.Treatment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id, member_id,
			medication, dosage,
			frequency_value, frequency_unit,
			start_at, duration_days,
			status, notes,
			created_at, updated_at
		FROM treatments
		WHERE owner_user_id = $1
		ORDER BY medication, id
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]treatments.Treatment, 0)
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TreatmentsRepo) Update(ctx context.Context, t treatments.Treatment) error {
	// start_at queda afuera a propósito: es la línea base inmutable
	// de la recurrencia.
	res, err := r.db.ExecContext(ctx, `
		UPDATE treatments SET
			medication = $2,
			dosage = $3,
			frequency_value = $4,
			frequency_unit = $5,
			duration_days = $6,
			status = $7,
			notes = $8,
			updated_at = $9
		WHERE id = $1
	`,
		t.ID,
		t.Medication,
		t.Dosage,
		t.FrequencyValue,
		string(t.FrequencyUnit),
		t.DurationDays,
		string(t.Status),
		t.Notes,
		t.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return treatments.ErrNotFound
	}
	return nil
}

func scanTreatment(row rowScanner) (treatments.Treatment, error) {
	var t treatments.Treatment
	var unit, status string

	if err := row.Scan(
		&t.ID,
		&t.OwnerUserID,
		&t.MemberID,
		&t.Medication,
		&t.Dosage,
		&t.FrequencyValue,
		&unit,
		&t.StartAt,
		&t.DurationDays,
		&status,
		&t.Notes,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return treatments.Treatment{}, err
	}

	t.FrequencyUnit = treatments.FrequencyUnit(unit)
	t.Status = treatments.Status(status)
	return t, nil
}
