package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"family-med-tracker/internal/domain/confirmations"
)

type confirmationsRepo struct {
	mu   sync.RWMutex
	byID map[string]confirmations.Record
}

func NewConfirmationsRepo() confirmations.Repository {
	return &confirmationsRepo{
		byID: make(map[string]confirmations.Record),
	}
}

func (r *confirmationsRepo) Create(ctx context.Context, rec confirmations.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.ID == "" {
		return errors.New("confirmation id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("confirmation already exists")
	}
	// Nota: a propósito NO se valida unicidad de (treatment, scheduled_at);
	// el matcher del motor es defensivo ante duplicados.
	r.byID[rec.ID] = rec
	return nil
}

func (r *confirmationsRepo) ListByOwnerAndDay(ctx context.Context, ownerUserID, day string) ([]confirmations.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]confirmations.Record, 0)
	for _, rec := range r.byID {
		if rec.OwnerUserID != ownerUserID {
			continue
		}
		// Comparación por fecha calendario del horario programado,
		// no por rango de timestamps.
		if rec.Day() != day {
			continue
		}
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
