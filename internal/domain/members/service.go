package members

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name      string
	Relation  string
	BirthDate *time.Time
	Allergies string
	Notes     string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Member, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Member{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Member{}, ErrInvalidInput
	}

	rel := Relation(strings.TrimSpace(in.Relation))
	if rel == "" {
		rel = RelationOther
	}

	now := s.now()
	m := Member{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Relation:    rel,
		BirthDate:   in.BirthDate,
		Allergies:   strings.TrimSpace(in.Allergies),
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Member{}, err
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Member, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Member{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Member, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerUserID)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name           *string
	Relation       *string
	BirthDate      *time.Time
	ClearBirthDate bool
	Allergies      *string
	Notes          *string
}

func (s *Service) Update(ctx context.Context, id, ownerUserID string, in UpdateInput) (Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Member{}, err
	}
	if m.OwnerUserID != ownerUserID {
		return Member{}, ErrForbidden
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Member{}, ErrInvalidInput
		}
		m.Name = name
	}
	if in.Relation != nil {
		m.Relation = Relation(strings.TrimSpace(*in.Relation))
	}
	if in.ClearBirthDate {
		m.BirthDate = nil
	} else if in.BirthDate != nil {
		m.BirthDate = in.BirthDate
	}
	if in.Allergies != nil {
		m.Allergies = strings.TrimSpace(*in.Allergies)
	}
	if in.Notes != nil {
		m.Notes = strings.TrimSpace(*in.Notes)
	}

	m.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, m); err != nil {
		return Member{}, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id, ownerUserID string) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m.OwnerUserID != ownerUserID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
