package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"family-med-tracker/internal/domain/confirmations"
	"family-med-tracker/internal/domain/members"
	"family-med-tracker/internal/domain/treatments"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// TreatmentSource y MemberSource son lo único que el motor necesita de
// los otros módulos; los *Service respectivos las satisfacen.
type TreatmentSource interface {
	ListByOwner(ctx context.Context, ownerUserID string) ([]treatments.Treatment, error)
}

type MemberSource interface {
	ListByOwner(ctx context.Context, ownerUserID string) ([]members.Member, error)
}

// ConfirmationStore es el colaborador de storage para el historial de
// confirmaciones: una lectura por día y la escritura del recorder.
type ConfirmationStore interface {
	ListByOwnerAndDay(ctx context.Context, ownerUserID, day string) ([]confirmations.Record, error)
	Create(ctx context.Context, rec confirmations.Record) error
}

// Service es el motor de agenda y adherencia. No tiene estado mutable
// propio: cada invocación deriva todo de las lecturas de storage, así
// que llamadas concurrentes no interfieren entre sí.
type Service struct {
	treatments    TreatmentSource
	members       MemberSource
	confirmations ConfirmationStore
	now           func() time.Time
}

func NewService(ts TreatmentSource, ms MemberSource, cs ConfirmationStore) *Service {
	return &Service{
		treatments:    ts,
		members:       ms,
		confirmations: cs,
		now:           time.Now,
	}
}

// DaySchedule arma la agenda completa de un día. Las tres lecturas son
// independientes y se disparan en paralelo; si cualquiera falla, falla
// la llamada entera (nunca se devuelve una agenda parcial en silencio).
func (s *Service) DaySchedule(ctx context.Context, ownerUserID string, day time.Time) (DaySchedule, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return DaySchedule{}, ErrInvalidInput
	}

	ts, ms, confs, err := s.fetchDay(ctx, ownerUserID, day)
	if err != nil {
		return DaySchedule{}, err
	}

	return DaySchedule{
		Day:    day.Format("2006-01-02"),
		Events: BuildDay(ts, ms, confs, day, s.now()),
	}, nil
}

// Statistics calcula los contadores de hoy más los tallies globales
// e insights sobre la lista completa de tratamientos.
func (s *Service) Statistics(ctx context.Context, ownerUserID string) (Statistics, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Statistics{}, ErrInvalidInput
	}

	now := s.now()
	ts, ms, confs, err := s.fetchDay(ctx, ownerUserID, now)
	if err != nil {
		return Statistics{}, err
	}

	today := Aggregate(BuildDay(ts, ms, confs, now, now))

	active := 0
	for _, t := range ts {
		if t.Status == treatments.StatusActive {
			active++
		}
	}

	topMed, topMedCount := TopMedication(ts)
	topMember, topMemberCount := TopMember(ts, ms)

	return Statistics{
		Today:              today,
		ActiveTreatments:   active,
		TotalTreatments:    len(ts),
		TopMedication:      topMed,
		TopMedicationCount: topMedCount,
		TopMemberID:        topMember.ID,
		TopMemberName:      topMember.Name,
		TopMemberCount:     topMemberCount,
		Insights:           buildInsights(today, ts, ms, topMember, topMemberCount, now),
	}, nil
}

type MarkTakenInput struct {
	TreatmentID string
	MemberID    string
	Medication  string
	Dosage      string
	ScheduledAt time.Time
	Notes       string
}

// MarkTaken persiste la confirmación de una dosis (recorder). El horario
// real de confirmación es "ahora"; si la escritura falla, el error sube
// tal cual y no queda ningún estado local a medias.
//
// No es idempotente: dos llamadas para la misma dosis crean dos registros.
// El caller no debe reintentar a ciegas ante un timeout ambiguo.
func (s *Service) MarkTaken(ctx context.Context, ownerUserID string, in MarkTakenInput) (confirmations.Record, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return confirmations.Record{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.TreatmentID) == "" || strings.TrimSpace(in.MemberID) == "" {
		return confirmations.Record{}, ErrInvalidInput
	}
	if in.ScheduledAt.IsZero() {
		return confirmations.Record{}, ErrInvalidInput
	}

	now := s.now()
	rec := confirmations.Record{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		TreatmentID: strings.TrimSpace(in.TreatmentID),
		MemberID:    strings.TrimSpace(in.MemberID),
		Medication:  strings.TrimSpace(in.Medication),
		Dosage:      strings.TrimSpace(in.Dosage),
		ScheduledAt: in.ScheduledAt,
		ConfirmedAt: now,
		Status:      confirmations.StatusTaken,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
	}

	if err := s.confirmations.Create(ctx, rec); err != nil {
		return confirmations.Record{}, fmt.Errorf("create confirmation: %w", err)
	}
	return rec, nil
}

// fetchDay dispara las tres lecturas de storage en paralelo y espera a
// todas. No hay dependencia entre ellas, así que el paralelismo solo
// recorta latencia de punta a punta.
func (s *Service) fetchDay(ctx context.Context, ownerUserID string, day time.Time) ([]treatments.Treatment, []members.Member, []confirmations.Record, error) {
	var (
		ts    []treatments.Treatment
		ms    []members.Member
		confs []confirmations.Record
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if ts, err = s.treatments.ListByOwner(gctx, ownerUserID); err != nil {
			return fmt.Errorf("list treatments: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if ms, err = s.members.ListByOwner(gctx, ownerUserID); err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if confs, err = s.confirmations.ListByOwnerAndDay(gctx, ownerUserID, day.Format("2006-01-02")); err != nil {
			return fmt.Errorf("list confirmations: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return ts, ms, confs, nil
}
