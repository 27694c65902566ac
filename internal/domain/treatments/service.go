package treatments

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
	MemberID       string
	Medication     string
	Dosage         string
	FrequencyValue int
	FrequencyUnit  string
	StartAt        time.Time
	DurationDays   int
	Notes          string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Treatment, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Treatment{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.MemberID) == "" {
		return Treatment{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Medication) == "" {
		return Treatment{}, ErrInvalidInput
	}
	if in.FrequencyValue <= 0 {
		return Treatment{}, ErrInvalidInput
	}
	unit, ok := ParseFrequencyUnit(in.FrequencyUnit)
	if !ok {
		return Treatment{}, ErrInvalidInput
	}
	if in.StartAt.IsZero() {
		return Treatment{}, ErrInvalidInput
	}
	if in.DurationDays < 0 {
		return Treatment{}, ErrInvalidInput
	}

	now := s.now()
	t := Treatment{
		ID:             uuid.NewString(),
		OwnerUserID:    ownerUserID,
		MemberID:       strings.TrimSpace(in.MemberID),
		Medication:     strings.TrimSpace(in.Medication),
		Dosage:         strings.TrimSpace(in.Dosage),
		FrequencyValue: in.FrequencyValue,
		FrequencyUnit:  unit,
		StartAt:        in.StartAt,
		DurationDays:   in.DurationDays,
		Status:         StatusActive,
		Notes:          strings.TrimSpace(in.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return Treatment{}, err
	}
	return t, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Treatment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Treatment{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Treatment, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// ListActiveByOwner filtra en memoria sobre el listado completo;
// respalda el filtro ?status=active del listado HTTP.
func (s *Service) ListActiveByOwner(ctx context.Context, ownerUserID string) ([]Treatment, error) {
	all, err := s.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	out := make([]Treatment, 0, len(all))
	for _, t := range all {
		if t.Status == StatusActive {
			out = append(out, t)
		}
	}
	return out, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	// StartAt no se edita: es la línea base de la recurrencia.
	Medication     *string
	Dosage         *string
	FrequencyValue *int
	FrequencyUnit  *string
	DurationDays   *int
	Notes          *string
}

func (s *Service) Update(ctx context.Context, id, ownerUserID string, in UpdateInput) (Treatment, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Treatment{}, err
	}
	if t.OwnerUserID != ownerUserID {
		return Treatment{}, ErrForbidden
	}

	if in.Medication != nil {
		med := strings.TrimSpace(*in.Medication)
		if med == "" {
			return Treatment{}, ErrInvalidInput
		}
		t.Medication = med
	}
	if in.Dosage != nil {
		t.Dosage = strings.TrimSpace(*in.Dosage)
	}
	if in.FrequencyValue != nil {
		if *in.FrequencyValue <= 0 {
			return Treatment{}, ErrInvalidInput
		}
		t.FrequencyValue = *in.FrequencyValue
	}
	if in.FrequencyUnit != nil {
		unit, ok := ParseFrequencyUnit(*in.FrequencyUnit)
		if !ok {
			return Treatment{}, ErrInvalidInput
		}
		t.FrequencyUnit = unit
	}
	if in.DurationDays != nil {
		if *in.DurationDays < 0 {
			return Treatment{}, ErrInvalidInput
		}
		t.DurationDays = *in.DurationDays
	}
	if in.Notes != nil {
		t.Notes = strings.TrimSpace(*in.Notes)
	}

	t.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, t); err != nil {
		return Treatment{}, err
	}
	return t, nil
}

// SetStatus pausa, reactiva o finaliza un tratamiento (retiro suave;
// nunca se borra mientras tenga historial de confirmaciones).
func (s *Service) SetStatus(ctx context.Context, id, ownerUserID string, status Status) (Treatment, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Treatment{}, err
	}
	if t.OwnerUserID != ownerUserID {
		return Treatment{}, ErrForbidden
	}

	// Idempotente
	if t.Status == status {
		return t, nil
	}

	t.Status = status
	t.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, t); err != nil {
		return Treatment{}, err
	}
	return t, nil
}
