package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"family-med-tracker/internal/domain/treatments"
)

type treatmentsRepo struct {
	mu   sync.RWMutex
	byID map[string]treatments.Treatment
}

func NewTreatmentsRepo() treatments.Repository {
	return &treatmentsRepo{
		byID: make(map[string]treatments.Treatment),
	}
}

func (r *treatmentsRepo) Create(ctx context.Context, t treatments.Treatment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t.ID == "" {
		return errors.New("treatment id required")
	}
	if _, exists := r.byID[t.ID]; exists {
		return errors.New("treatment already exists")
	}
	r.byID[t.ID] = t
	return nil
}

func (r *treatmentsRepo) GetByID(ctx context.Context, id string) (treatments.Treatment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return treatments.Treatment{}, treatments.ErrNotFound
	}
	return t, nil
}

func (r *treatmentsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]treatments.Treatment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]treatments.Treatment, 0)
	for _, t := range r.byID {
		if t.OwnerUserID == ownerUserID {
			out = append(out, t)
		}
	}

	// Listado estable por medicamento (desempate por id); los tallies
	// first-seen-wins de stats dependen de este orden.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Medication != out[j].Medication {
			return out[i].Medication < out[j].Medication
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *treatmentsRepo) Update(ctx context.Context, t treatments.Treatment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[t.ID]; !ok {
		return treatments.ErrNotFound
	}
	r.byID[t.ID] = t
	return nil
}
