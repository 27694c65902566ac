package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"family-med-tracker/internal/domain/members"
)

type membersRepo struct {
	mu   sync.RWMutex
	byID map[string]members.Member
}

func NewMembersRepo() members.Repository {
	return &membersRepo{
		byID: make(map[string]members.Member),
	}
}

func (r *membersRepo) Create(ctx context.Context, m members.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID == "" {
		return errors.New("member id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("member already exists")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *membersRepo) GetByID(ctx context.Context, id string) (members.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return members.Member{}, members.ErrNotFound
	}
	return m, nil
}

func (r *membersRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]members.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]members.Member, 0)
	for _, m := range r.byID {
		if m.OwnerUserID == ownerUserID {
			out = append(out, m)
		}
	}

	// Listado estable por nombre (desempate por id)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *membersRepo) Update(ctx context.Context, m members.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[m.ID]; !ok {
		return members.ErrNotFound
	}
	r.byID[m.ID] = m
	return nil
}

func (r *membersRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return members.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
