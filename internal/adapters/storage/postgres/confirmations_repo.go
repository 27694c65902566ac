package postgres

import (
	"context"
	"database/sql"

	"family-med-tracker/internal/domain/confirmations"
)

type ConfirmationsRepo struct {
	db *sql.DB
}

func NewConfirmationsRepo(db *sql.DB) *ConfirmationsRepo {
	return &ConfirmationsRepo{db: db}
}

func (r *ConfirmationsRepo) Create(ctx context.Context, rec confirmations.Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dose_confirmations (
			id, owner_user_id, treatment_id, member_id,
			medication, dosage,
			scheduled_at, confirmed_at,
			status, notes,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		rec.ID,
		rec.OwnerUserID,
		rec.TreatmentID,
		rec.MemberID,
		rec.Medication,
		rec.Dosage,
		rec.ScheduledAt,
		rec.ConfirmedAt,
		string(rec.Status),
		rec.Notes,
		rec.CreatedAt,
	)
	return err
}

// ListByOwnerAndDay compara la fecha calendario (YYYY-MM-DD) del horario
// programado, no un rango de timestamps, para no desfasarse con el offset
// de timezone entre cliente y valor guardado.
func (r *ConfirmationsRepo) ListByOwnerAndDay(ctx context.Context, ownerUserID, day string) ([]confirmations.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id, treatment_id, member_id,
			medication, dosage,
			scheduled_at, confirmed_at,
			status, notes,
			created_at
		FROM dose_confirmations
		WHERE owner_user_id = $1
		  AND to_char(scheduled_at, 'YYYY-MM-DD') = $2
		ORDER BY scheduled_at, created_at
	`, ownerUserID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]confirmations.Record, 0)
	for rows.Next() {
		var rec confirmations.Record
		var status string
		if err := rows.Scan(
			&rec.ID,
			&rec.OwnerUserID,
			&rec.TreatmentID,
			&rec.MemberID,
			&rec.Medication,
			&rec.Dosage,
			&rec.ScheduledAt,
			&rec.ConfirmedAt,
			&status,
			&rec.Notes,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		rec.Status = confirmations.Status(status)
		out = append(out, rec)
	}
	return out, rows.Err()
}
