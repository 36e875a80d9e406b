package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/barbearia-api/internal/domain/appointment"
	"github.com/hugohenrick/barbearia-api/internal/domain/catalog"
	"github.com/hugohenrick/barbearia-api/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const appointmentColumns = `
	a.id, a.barber_id, a.service_id, a.customer_id, a.customer_name, a.customer_phone,
	a.customer_email, a.notes, a.scheduled_at, a.estimated_duration_minutes, a.charged_price,
	a.status, a.queue_stage, a.queue_position, a.arrived_at, a.service_started_at,
	a.service_ended_at, a.cancellation_reason, a.wants_free_cut_redemption, a.sale_generated,
	a.created_at, a.updated_at`

const activeStatuses = `('scheduled', 'waiting', 'in_chair')`

// AppointmentRepository implementa a interface appointment.Repository
type AppointmentRepository struct {
	db database.DBTX
}

// NewAppointmentRepository cria uma nova instância de AppointmentRepository
func NewAppointmentRepository(db database.DBTX) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// scanAppointment lê as colunas de appointmentColumns; extra recebe colunas adicionais da consulta
func scanAppointment(row scanner, extra ...any) (*appointment.Appointment, error) {
	var a appointment.Appointment
	var phone, email, notes, reason *string

	dest := []any{
		&a.ID, &a.BarberID, &a.ServiceID, &a.Customer.ID, &a.Customer.Name, &phone,
		&email, &notes, &a.ScheduledAt, &a.EstimatedDurationMinutes, &a.ChargedPrice,
		&a.Status, &a.QueueStage, &a.QueuePosition, &a.ArrivedAt, &a.ServiceStartedAt,
		&a.ServiceEndedAt, &reason, &a.WantsFreeCutRedemption, &a.SaleGenerated,
		&a.CreatedAt, &a.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	a.Customer.Phone = deref(phone)
	a.Customer.Email = deref(email)
	a.Notes = deref(notes)
	a.CancellationReason = deref(reason)
	a.ScheduledAt = a.ScheduledAt.UTC()
	return &a, nil
}

// Create implementa appointment.Repository.Create
func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO appointments (
			id, barber_id, service_id, customer_id, customer_name, customer_phone,
			customer_email, notes, scheduled_at, booking_day, estimated_duration_minutes,
			charged_price, status, queue_stage, queue_position, arrived_at,
			service_started_at, service_ended_at, cancellation_reason,
			wants_free_cut_redemption, sale_generated, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23
		)`,
		a.ID, a.BarberID, a.ServiceID, a.Customer.ID, a.Customer.Name, nullable(a.Customer.Phone),
		nullable(a.Customer.Email), nullable(a.Notes), a.ScheduledAt, a.BookingDay(), a.EstimatedDurationMinutes,
		a.ChargedPrice, a.Status, a.QueueStage, a.QueuePosition, a.ArrivedAt,
		a.ServiceStartedAt, a.ServiceEndedAt, nullable(a.CancellationReason),
		a.WantsFreeCutRedemption, a.SaleGenerated, a.CreatedAt, a.UpdatedAt)

	if err != nil {
		switch {
		case isUniqueViolation(err, "ux_appointments_customer_day_active"):
			return appointment.ErrDuplicateBooking.Wrap(err)
		case isUniqueViolation(err, "ux_appointments_customer_free_cut_active"):
			return appointment.ErrDuplicateFreeCut.Wrap(err)
		case isForeignKeyViolation(err, "appointments_service_id_fkey"):
			return catalog.ErrServiceNotFound.Wrap(err)
		}
		return fmt.Errorf("erro ao criar agendamento: %w", err)
	}

	return nil
}

// FindByID implementa appointment.Repository.FindByID
func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*appointment.Appointment, error) {
	return r.findOne(ctx, `SELECT `+appointmentColumns+` FROM appointments a WHERE a.id = $1`, id)
}

// FindByIDForUpdate implementa appointment.Repository.FindByIDForUpdate
func (r *AppointmentRepository) FindByIDForUpdate(ctx context.Context, id string) (*appointment.Appointment, error) {
	return r.findOne(ctx, `SELECT `+appointmentColumns+` FROM appointments a WHERE a.id = $1 FOR UPDATE`, id)
}

func (r *AppointmentRepository) findOne(ctx context.Context, query, id string) (*appointment.Appointment, error) {
	a, err := scanAppointment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, appointment.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar agendamento: %w", err)
	}
	return a, nil
}

// ListReservedSlots implementa appointment.Repository.ListReservedSlots
func (r *AppointmentRepository) ListReservedSlots(ctx context.Context, barberID string, from, to time.Time) ([]time.Time, error) {
	rows, err := r.db.Query(ctx,
		`SELECT scheduled_at FROM appointments
		WHERE barber_id = $1 AND scheduled_at >= $2 AND scheduled_at < $3
		  AND status IN `+activeStatuses+`
		ORDER BY scheduled_at ASC`,
		barberID, from, to)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar horários reservados: %w", err)
	}
	defer rows.Close()

	slots := []time.Time{}
	for rows.Next() {
		var at time.Time
		if err := rows.Scan(&at); err != nil {
			return nil, fmt.Errorf("erro ao ler horário reservado: %w", err)
		}
		slots = append(slots, at.UTC())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar horários reservados: %w", err)
	}
	return slots, nil
}

// ExistsActiveForCustomer implementa appointment.Repository.ExistsActiveForCustomer
func (r *AppointmentRepository) ExistsActiveForCustomer(ctx context.Context, customerID string, from, to time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE customer_id = $1 AND scheduled_at >= $2 AND scheduled_at < $3
			  AND status IN `+activeStatuses+`
		)`,
		customerID, from, to).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar agendamentos do cliente: %w", err)
	}
	return exists, nil
}

// ExistsActiveFreeCutIntent implementa appointment.Repository.ExistsActiveFreeCutIntent
func (r *AppointmentRepository) ExistsActiveFreeCutIntent(ctx context.Context, customerID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE customer_id = $1 AND wants_free_cut_redemption
			  AND status IN `+activeStatuses+`
		)`,
		customerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar resgates pendentes: %w", err)
	}
	return exists, nil
}

// NextQueuePosition implementa appointment.Repository.NextQueuePosition.
// O lock consultivo é da transação: deve ser chamado dentro de store.InTx.
func (r *AppointmentRepository) NextQueuePosition(ctx context.Context, barberID string) (int, error) {
	if _, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, barberID); err != nil {
		return 0, fmt.Errorf("erro ao bloquear fila do barbeiro: %w", err)
	}

	var waiting int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments WHERE barber_id = $1 AND status = 'waiting'`,
		barberID).Scan(&waiting)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar fila do barbeiro: %w", err)
	}
	return waiting + 1, nil
}

// UpdateState implementa appointment.Repository.UpdateState
func (r *AppointmentRepository) UpdateState(ctx context.Context, a *appointment.Appointment, expected appointment.Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE appointments SET
			status = $2, queue_stage = $3, queue_position = $4, arrived_at = $5,
			service_started_at = $6, service_ended_at = $7, cancellation_reason = $8,
			updated_at = $9
		WHERE id = $1 AND status = $10 AND sale_generated = false`,
		a.ID, a.Status, a.QueueStage, a.QueuePosition, a.ArrivedAt,
		a.ServiceStartedAt, a.ServiceEndedAt, nullable(a.CancellationReason),
		a.UpdatedAt, expected)
	if err != nil {
		return fmt.Errorf("erro ao atualizar agendamento: %w", err)
	}

	if tag.RowsAffected() == 0 {
		if _, err := r.FindByID(ctx, a.ID); err != nil {
			return err
		}
		return appointment.ErrStaleState
	}
	return nil
}

// MarkCompleted implementa appointment.Repository.MarkCompleted
func (r *AppointmentRepository) MarkCompleted(ctx context.Context, id string, endedAt time.Time) (*appointment.Appointment, error) {
	a, err := scanAppointment(r.db.QueryRow(ctx,
		`UPDATE appointments a SET
			status = 'completed', queue_stage = 'finished', service_ended_at = $2,
			sale_generated = true, updated_at = $2
		WHERE a.id = $1 AND a.sale_generated = false AND a.status = 'in_chair'
		RETURNING `+appointmentColumns,
		id, endedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, findErr := r.FindByID(ctx, id); findErr != nil {
				return nil, findErr
			}
			return nil, appointment.ErrSaleAlreadyGenerated
		}
		return nil, fmt.Errorf("erro ao concluir agendamento: %w", err)
	}
	return a, nil
}

// ListAgenda implementa appointment.Repository.ListAgenda
func (r *AppointmentRepository) ListAgenda(ctx context.Context, barberID string, from, to time.Time) ([]*appointment.AgendaEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+appointmentColumns+`,
			s.id, s.name, s.price, s.duration_minutes,
			sa.id, sa.subtotal, sa.discount, sa.final_total, sa.is_free_cut_redemption, sa.payment_method
		FROM appointments a
		LEFT JOIN services s ON s.id = a.service_id
		LEFT JOIN sales sa ON sa.appointment_id = a.id
		WHERE a.barber_id = $1 AND a.scheduled_at >= $2 AND a.scheduled_at < $3
		ORDER BY a.scheduled_at ASC`,
		barberID, from, to)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar agenda: %w", err)
	}
	defer rows.Close()

	entries := []*appointment.AgendaEntry{}
	for rows.Next() {
		var (
			serviceID, serviceName *string
			servicePrice           decimal.NullDecimal
			serviceDuration        *int
			saleID, saleMethod     *string
			saleSubtotal           decimal.NullDecimal
			saleDiscount           decimal.NullDecimal
			saleTotal              decimal.NullDecimal
			saleRedeemed           *bool
		)

		a, err := scanAppointment(rows,
			&serviceID, &serviceName, &servicePrice, &serviceDuration,
			&saleID, &saleSubtotal, &saleDiscount, &saleTotal, &saleRedeemed, &saleMethod)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler agenda: %w", err)
		}

		entry := &appointment.AgendaEntry{Appointment: a}
		if serviceID != nil {
			entry.Service = &appointment.ServiceSummary{
				ID:              *serviceID,
				Name:            deref(serviceName),
				Price:           servicePrice.Decimal,
				DurationMinutes: derefInt(serviceDuration),
			}
		}
		if saleID != nil {
			entry.Sale = &appointment.SaleSummary{
				ID:                  *saleID,
				Subtotal:            saleSubtotal.Decimal,
				Discount:            saleDiscount.Decimal,
				FinalTotal:          saleTotal.Decimal,
				IsFreeCutRedemption: saleRedeemed != nil && *saleRedeemed,
				PaymentMethod:       deref(saleMethod),
			}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar agenda: %w", err)
	}
	return entries, nil
}

var _ appointment.Repository = (*AppointmentRepository)(nil)
