// Package lifecycle conduz o agendamento pelos estados da fila: agendado, na fila,
// na cadeira e os estados terminais cancelado e não compareceu.
package lifecycle

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hugohenrick/barbearia-api/internal/domain/appointment"
	"github.com/hugohenrick/barbearia-api/internal/domain/store"
	"github.com/hugohenrick/barbearia-api/internal/service/availability"
	"github.com/hugohenrick/barbearia-api/pkg/apperror"
	"github.com/hugohenrick/barbearia-api/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// CreateInput são os dados de um novo agendamento
type CreateInput struct {
	BarberID               string
	ServiceID              string
	ScheduledAt            time.Time
	Customer               appointment.Customer
	Notes                  string
	WantsFreeCutRedemption bool
}

// Service implementa as operações do ciclo de vida do agendamento
type Service struct {
	store  store.Store
	logger logger.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// NewService cria uma nova instância de Service
func NewService(st store.Store, log logger.Logger) *Service {
	return &Service{
		store:  st,
		logger: log,
		tracer: otel.Tracer("barbearia/lifecycle"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create valida e grava um novo agendamento no estado scheduled
func (s *Service) Create(ctx context.Context, in CreateInput) (*appointment.Appointment, error) {
	ctx, span := s.tracer.Start(ctx, "appointment.create",
		trace.WithAttributes(
			attribute.String("barber.id", in.BarberID),
			attribute.String("service.id", in.ServiceID),
			attribute.Bool("free_cut.requested", in.WantsFreeCutRedemption),
		),
	)
	defer span.End()

	a, err := appointment.NewAppointment(in.BarberID, in.ServiceID, in.ScheduledAt, in.Customer, in.WantsFreeCutRedemption)
	if err != nil {
		return nil, fail(span, err)
	}
	a.Notes = strings.TrimSpace(in.Notes)

	err = s.store.InTx(ctx, func(tx store.Tx) error {
		svc, err := tx.Catalog().FindService(ctx, a.ServiceID)
		if err != nil {
			return apperror.OrPersistence("falha ao consultar o serviço", err)
		}
		if !svc.Active {
			return apperror.Validation("serviço %s está inativo", svc.Name)
		}

		if a.Customer.ID != nil {
			c, err := tx.Customers().FindByID(ctx, *a.Customer.ID)
			if err != nil {
				return apperror.OrPersistence("falha ao consultar o cliente", err)
			}
			if a.WantsFreeCutRedemption && !c.HasFreeCutCredit() {
				return apperror.Validation("cliente não possui corte grátis disponível")
			}
		}

		guard := availability.NewGuard(tx.Appointments())
		if err := guard.AssertNoDuplicateBooking(ctx, a.Customer.ID, a.ScheduledAt); err != nil {
			return err
		}
		if a.WantsFreeCutRedemption {
			if err := guard.AssertNoDuplicateFreeCutIntent(ctx, a.Customer.ID); err != nil {
				return err
			}
		}

		a.ChargedPrice = svc.Price
		a.EstimatedDurationMinutes = svc.DurationMinutes
		return apperror.OrPersistence("falha ao gravar o agendamento", tx.Appointments().Create(ctx, a))
	})
	if err != nil {
		return nil, fail(span, err)
	}

	span.SetAttributes(attribute.String("appointment.id", a.ID))
	s.logger.Info("agendamento criado",
		"appointment_id", a.ID,
		"barber_id", a.BarberID,
		"scheduled_at", a.ScheduledAt,
	)
	return a, nil
}

// ReservedSlots lista os horários ocupados do barbeiro no dia
func (s *Service) ReservedSlots(ctx context.Context, barberID string, date time.Time) ([]time.Time, error) {
	return availability.NewGuard(s.store.Appointments()).ListReservedSlots(ctx, barberID, date)
}

// Enqueue coloca o cliente na fila do barbeiro; repetir a chamada não altera a posição
func (s *Service) Enqueue(ctx context.Context, id, barberID string) (*appointment.Appointment, error) {
	return s.transition(ctx, "appointment.enqueue", id, barberID,
		func(tx store.Tx, a *appointment.Appointment, now time.Time) (bool, error) {
			position := 0
			if a.Status == appointment.StatusScheduled {
				next, err := tx.Appointments().NextQueuePosition(ctx, a.BarberID)
				if err != nil {
					return false, apperror.OrPersistence("falha ao calcular a posição na fila", err)
				}
				position = next
			}
			return a.Enqueue(position, now)
		})
}

// StartService leva o cliente da fila para a cadeira
func (s *Service) StartService(ctx context.Context, id, barberID string) (*appointment.Appointment, error) {
	return s.transition(ctx, "appointment.start_service", id, barberID,
		func(_ store.Tx, a *appointment.Appointment, now time.Time) (bool, error) {
			return a.StartService(now)
		})
}

// Cancel cancela um agendamento ainda não atendido
func (s *Service) Cancel(ctx context.Context, id, barberID, reason string) (*appointment.Appointment, error) {
	return s.transition(ctx, "appointment.cancel", id, barberID,
		func(_ store.Tx, a *appointment.Appointment, now time.Time) (bool, error) {
			return a.Cancel(reason, now)
		})
}

// MarkNoShow registra a ausência do cliente
func (s *Service) MarkNoShow(ctx context.Context, id, barberID string) (*appointment.Appointment, error) {
	return s.transition(ctx, "appointment.no_show", id, barberID,
		func(_ store.Tx, a *appointment.Appointment, now time.Time) (bool, error) {
			return a.MarkNoShow(now)
		})
}

// Get retorna um agendamento do barbeiro autenticado
func (s *Service) Get(ctx context.Context, id, barberID string) (*appointment.Appointment, error) {
	a, err := s.store.Appointments().FindByID(ctx, id)
	if err != nil {
		return nil, apperror.OrPersistence("falha ao consultar o agendamento", err)
	}
	if err := a.AssertOwner(barberID); err != nil {
		return nil, err
	}
	return a, nil
}

// Agenda lista os agendamentos do dia com resumo de serviço e venda.
// Um barbeiro só consulta a própria agenda; barberID vazio assume o autenticado.
func (s *Service) Agenda(ctx context.Context, callerID, barberID string, date time.Time) ([]*appointment.AgendaEntry, error) {
	if barberID == "" {
		barberID = callerID
	}
	if barberID != callerID {
		return nil, apperror.Authorization("barbeiro só pode consultar a própria agenda")
	}
	from, to := appointment.DayBounds(date)
	entries, err := s.store.Appointments().ListAgenda(ctx, barberID, from, to)
	if err != nil {
		return nil, apperror.OrPersistence("falha ao consultar a agenda", err)
	}
	return entries, nil
}

type transitionFunc func(tx store.Tx, a *appointment.Appointment, now time.Time) (bool, error)

// transition carrega o agendamento com lock, confere o dono e grava a mudança de estado
func (s *Service) transition(ctx context.Context, op, id, barberID string, fn transitionFunc) (*appointment.Appointment, error) {
	ctx, span := s.tracer.Start(ctx, op,
		trace.WithAttributes(
			attribute.String("appointment.id", id),
			attribute.String("barber.id", barberID),
		),
	)
	defer span.End()

	var result *appointment.Appointment
	var changed bool
	err := s.store.InTx(ctx, func(tx store.Tx) error {
		a, err := tx.Appointments().FindByIDForUpdate(ctx, id)
		if err != nil {
			return apperror.OrPersistence("falha ao consultar o agendamento", err)
		}
		if err := a.AssertOwner(barberID); err != nil {
			return err
		}

		expected := a.Status
		changed, err = fn(tx, a, s.now())
		if err != nil {
			return err
		}
		if changed {
			if err := tx.Appointments().UpdateState(ctx, a, expected); err != nil {
				return apperror.OrPersistence("falha ao atualizar o agendamento", err)
			}
		}
		result = a
		return nil
	})
	if err != nil {
		if errors.Is(err, apperror.ErrAuthorization) {
			s.logger.Warn("barbeiro tentou alterar agendamento de outro barbeiro",
				"appointment_id", id, "barber_id", barberID)
		}
		return nil, fail(span, err)
	}

	span.SetAttributes(
		attribute.Bool("state.changed", changed),
		attribute.String("appointment.status", string(result.Status)),
	)
	if changed {
		s.logger.Info("agendamento atualizado",
			"operation", op,
			"appointment_id", result.ID,
			"status", result.Status,
		)
	}
	return result, nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, apperror.Message(err))
	return err
}
