// Package availability verifica horários reservados e duplicidades antes de um agendamento.
// As verificações são consultivas; a garantia final vem das restrições de unicidade do armazenamento.
package availability

import (
	"context"
	"time"

	"github.com/hugohenrick/barbearia-api/internal/domain/appointment"
	"github.com/hugohenrick/barbearia-api/pkg/apperror"
)

// Guard consulta agendamentos ativos
type Guard struct {
	appointments appointment.Repository
}

// NewGuard cria um Guard sobre o repositório informado (conexão ou transação)
func NewGuard(appointments appointment.Repository) *Guard {
	return &Guard{appointments: appointments}
}

// ListReservedSlots retorna, em ordem crescente, os horários ativos do barbeiro no dia UTC de date
func (g *Guard) ListReservedSlots(ctx context.Context, barberID string, date time.Time) ([]time.Time, error) {
	if barberID == "" {
		return nil, appointment.ErrEmptyBarber
	}
	from, to := appointment.DayBounds(date)
	slots, err := g.appointments.ListReservedSlots(ctx, barberID, from, to)
	if err != nil {
		return nil, apperror.OrPersistence("falha ao consultar horários reservados", err)
	}
	return slots, nil
}

// AssertNoDuplicateBooking falha se o cliente já tem agendamento ativo no mesmo dia.
// Clientes avulsos (sem ID) não são verificados.
func (g *Guard) AssertNoDuplicateBooking(ctx context.Context, customerID *string, date time.Time) error {
	if customerID == nil {
		return nil
	}
	from, to := appointment.DayBounds(date)
	exists, err := g.appointments.ExistsActiveForCustomer(ctx, *customerID, from, to)
	if err != nil {
		return apperror.OrPersistence("falha ao verificar agendamentos do cliente", err)
	}
	if exists {
		return appointment.ErrDuplicateBooking
	}
	return nil
}

// AssertNoDuplicateFreeCutIntent falha se o cliente já tem um resgate de corte grátis pendente
func (g *Guard) AssertNoDuplicateFreeCutIntent(ctx context.Context, customerID *string) error {
	if customerID == nil {
		return nil
	}
	exists, err := g.appointments.ExistsActiveFreeCutIntent(ctx, *customerID)
	if err != nil {
		return apperror.OrPersistence("falha ao verificar resgates pendentes", err)
	}
	if exists {
		return appointment.ErrDuplicateFreeCut
	}
	return nil
}
