package appointment

import (
	"context"
	"time"
)

// Repository define a interface para operações de repositório de agendamentos
type Repository interface {
	// Create grava um novo agendamento; duplicidades ativas do cliente retornam
	// ErrDuplicateBooking ou ErrDuplicateFreeCut
	Create(ctx context.Context, a *Appointment) error

	// FindByID busca um agendamento pelo ID
	FindByID(ctx context.Context, id string) (*Appointment, error)

	// FindByIDForUpdate busca e bloqueia o agendamento até o fim da transação
	FindByIDForUpdate(ctx context.Context, id string) (*Appointment, error)

	// ListReservedSlots lista os horários ativos do barbeiro no intervalo [from, to)
	ListReservedSlots(ctx context.Context, barberID string, from, to time.Time) ([]time.Time, error)

	// ExistsActiveForCustomer verifica se o cliente tem agendamento ativo no intervalo [from, to)
	ExistsActiveForCustomer(ctx context.Context, customerID string, from, to time.Time) (bool, error)

	// ExistsActiveFreeCutIntent verifica se o cliente já tem um resgate pendente
	ExistsActiveFreeCutIntent(ctx context.Context, customerID string) (bool, error)

	// NextQueuePosition serializa a fila do barbeiro e retorna count(waiting)+1
	NextQueuePosition(ctx context.Context, barberID string) (int, error)

	// UpdateState grava a transição se o status persistido ainda for expected
	UpdateState(ctx context.Context, a *Appointment, expected Status) error

	// MarkCompleted conclui o atendimento uma única vez (compare-and-swap em sale_generated)
	MarkCompleted(ctx context.Context, id string, endedAt time.Time) (*Appointment, error)

	// ListAgenda lista os agendamentos do barbeiro no intervalo com resumo de serviço e venda
	ListAgenda(ctx context.Context, barberID string, from, to time.Time) ([]*AgendaEntry, error)
}
