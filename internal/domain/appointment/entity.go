package appointment

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/barbearia-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound             = apperror.NotFound("agendamento não encontrado")
	ErrNotOwner             = apperror.Authorization("agendamento pertence a outro barbeiro")
	ErrDuplicateBooking     = apperror.Conflict("cliente já possui um agendamento ativo neste dia")
	ErrDuplicateFreeCut     = apperror.Conflict("cliente já possui um resgate de corte grátis pendente")
	ErrSaleAlreadyGenerated = apperror.Conflict("venda já gerada para este agendamento")
	ErrStaleState           = apperror.Conflict("agendamento alterado por outra operação")
	ErrEmptyBarber          = apperror.Validation("barbeiro é obrigatório")
	ErrEmptyService         = apperror.Validation("serviço é obrigatório")
	ErrEmptyScheduledAt     = apperror.Validation("data e hora do agendamento são obrigatórias")
	ErrEmptyCustomerName    = apperror.Validation("nome do cliente é obrigatório")
	ErrFreeCutNeedsCustomer = apperror.Validation("resgate de corte grátis exige um cliente cadastrado")
)

// Status representa o estado do agendamento
type Status string

const (
	StatusScheduled Status = "scheduled" // Agendado
	StatusWaiting   Status = "waiting"   // Na fila de espera
	StatusInChair   Status = "in_chair"  // Em atendimento
	StatusCompleted Status = "completed" // Concluído com venda
	StatusCancelled Status = "cancelled" // Cancelado
	StatusNoShow    Status = "no_show"   // Cliente não compareceu
)

// ActiveStatuses são os estados ainda não terminais
var ActiveStatuses = []Status{StatusScheduled, StatusWaiting, StatusInChair}

// IsActive indica se o estado ainda não é terminal
func (s Status) IsActive() bool {
	return s == StatusScheduled || s == StatusWaiting || s == StatusInChair
}

// QueueStage é a projeção do status usada pela tela da fila
type QueueStage string

const (
	StageQueue     QueueStage = "queue"
	StageAttending QueueStage = "attending"
	StageFinished  QueueStage = "finished"
)

// StageFor projeta o status no estágio da fila
func StageFor(s Status) QueueStage {
	switch s {
	case StatusScheduled, StatusWaiting:
		return StageQueue
	case StatusInChair:
		return StageAttending
	default:
		return StageFinished
	}
}

// Customer identifica quem será atendido; ID nulo para clientes avulsos
type Customer struct {
	ID    *string `json:"id,omitempty"`
	Name  string  `json:"name"`
	Phone string  `json:"phone,omitempty"`
	Email string  `json:"email,omitempty"`
}

// Appointment representa um atendimento agendado ou avulso
type Appointment struct {
	ID                       string          `json:"id"`
	BarberID                 string          `json:"barber_id"`
	ServiceID                string          `json:"service_id"`
	Customer                 Customer        `json:"customer"`
	Notes                    string          `json:"notes,omitempty"`
	ScheduledAt              time.Time       `json:"scheduled_at"`
	EstimatedDurationMinutes int             `json:"estimated_duration_minutes"`
	ChargedPrice             decimal.Decimal `json:"charged_price"`
	Status                   Status          `json:"status"`
	QueueStage               QueueStage      `json:"queue_stage"`
	QueuePosition            *int            `json:"queue_position,omitempty"`
	ArrivedAt                *time.Time      `json:"arrived_at,omitempty"`
	ServiceStartedAt         *time.Time      `json:"service_started_at,omitempty"`
	ServiceEndedAt           *time.Time      `json:"service_ended_at,omitempty"`
	CancellationReason       string          `json:"cancellation_reason,omitempty"`
	WantsFreeCutRedemption   bool            `json:"wants_free_cut_redemption"`
	SaleGenerated            bool            `json:"sale_generated"`
	CreatedAt                time.Time       `json:"created_at"`
	UpdatedAt                time.Time       `json:"updated_at"`
}

// NewAppointment cria um agendamento no estado inicial
func NewAppointment(
	barberID string,
	serviceID string,
	scheduledAt time.Time,
	customer Customer,
	wantsFreeCut bool,
) (*Appointment, error) {
	if strings.TrimSpace(barberID) == "" {
		return nil, ErrEmptyBarber
	}
	if strings.TrimSpace(serviceID) == "" {
		return nil, ErrEmptyService
	}
	if scheduledAt.IsZero() {
		return nil, ErrEmptyScheduledAt
	}
	if strings.TrimSpace(customer.Name) == "" {
		return nil, ErrEmptyCustomerName
	}
	if customer.ID != nil && strings.TrimSpace(*customer.ID) == "" {
		customer.ID = nil
	}
	if wantsFreeCut && customer.ID == nil {
		return nil, ErrFreeCutNeedsCustomer
	}

	now := time.Now().UTC()
	return &Appointment{
		ID:                     uuid.New().String(),
		BarberID:               barberID,
		ServiceID:              serviceID,
		Customer:               customer,
		ScheduledAt:            scheduledAt.UTC(),
		Status:                 StatusScheduled,
		QueueStage:             StageQueue,
		WantsFreeCutRedemption: wantsFreeCut,
		CreatedAt:              now,
		UpdatedAt:              now,
	}, nil
}

// BookingDay retorna a meia-noite UTC do dia agendado
func (a *Appointment) BookingDay() time.Time {
	start, _ := DayBounds(a.ScheduledAt)
	return start
}

// IsActive verifica se o agendamento ainda não chegou a um estado terminal
func (a *Appointment) IsActive() bool {
	return a.Status.IsActive()
}

// AssertOwner garante que o barbeiro autenticado é o dono do agendamento
func (a *Appointment) AssertOwner(barberID string) error {
	if a.BarberID != barberID {
		return ErrNotOwner
	}
	return nil
}

// Enqueue coloca o cliente na fila. Retorna false quando já estava na fila ou na cadeira.
func (a *Appointment) Enqueue(position int, now time.Time) (bool, error) {
	switch a.Status {
	case StatusWaiting, StatusInChair:
		return false, nil
	case StatusScheduled:
	default:
		return false, apperror.InvalidState("não é possível colocar na fila um agendamento %s", a.Status)
	}

	a.Status = StatusWaiting
	a.QueuePosition = &position
	a.ArrivedAt = &now
	a.touch(now)
	return true, nil
}

// StartService leva o cliente da fila para a cadeira
func (a *Appointment) StartService(now time.Time) (bool, error) {
	switch a.Status {
	case StatusInChair:
		return false, nil
	case StatusWaiting:
	default:
		return false, apperror.InvalidState("só é possível iniciar o atendimento de quem está na fila (estado atual: %s)", a.Status)
	}

	a.Status = StatusInChair
	a.ServiceStartedAt = &now
	a.touch(now)
	return true, nil
}

// Cancel cancela um agendamento ainda não atendido
func (a *Appointment) Cancel(reason string, now time.Time) (bool, error) {
	switch a.Status {
	case StatusCancelled:
		return false, nil
	case StatusScheduled, StatusWaiting:
	default:
		return false, apperror.InvalidState("não é possível cancelar um agendamento %s", a.Status)
	}

	a.Status = StatusCancelled
	a.CancellationReason = strings.TrimSpace(reason)
	a.ServiceEndedAt = &now
	a.touch(now)
	return true, nil
}

// MarkNoShow registra que o cliente não compareceu
func (a *Appointment) MarkNoShow(now time.Time) (bool, error) {
	switch a.Status {
	case StatusNoShow:
		return false, nil
	case StatusScheduled, StatusWaiting:
	default:
		return false, apperror.InvalidState("não é possível marcar falta em um agendamento %s", a.Status)
	}

	a.Status = StatusNoShow
	a.touch(now)
	return true, nil
}

// Complete fecha o atendimento após a geração da venda
func (a *Appointment) Complete(now time.Time) error {
	if a.SaleGenerated {
		return ErrSaleAlreadyGenerated
	}
	if a.Status != StatusInChair {
		return apperror.InvalidState("só é possível finalizar um atendimento em andamento (estado atual: %s)", a.Status)
	}

	a.Status = StatusCompleted
	a.ServiceEndedAt = &now
	a.SaleGenerated = true
	a.touch(now)
	return nil
}

func (a *Appointment) touch(now time.Time) {
	a.QueueStage = StageFor(a.Status)
	a.UpdatedAt = now
}

// DayBounds retorna o intervalo [início, fim) do dia UTC que contém t
func DayBounds(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// ServiceSummary resume o serviço na agenda do barbeiro
type ServiceSummary struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
}

// SaleSummary resume a venda gerada pelo atendimento
type SaleSummary struct {
	ID                  string          `json:"id"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	Discount            decimal.Decimal `json:"discount"`
	FinalTotal          decimal.Decimal `json:"final_total"`
	IsFreeCutRedemption bool            `json:"is_free_cut_redemption"`
	PaymentMethod       string          `json:"payment_method"`
}

// AgendaEntry é uma linha da agenda do barbeiro
type AgendaEntry struct {
	Appointment *Appointment    `json:"appointment"`
	Service     *ServiceSummary `json:"service,omitempty"`
	Sale        *SaleSummary    `json:"sale,omitempty"`
}

// Clone retorna uma cópia profunda do agendamento
func (a *Appointment) Clone() *Appointment {
	c := *a
	if a.Customer.ID != nil {
		id := *a.Customer.ID
		c.Customer.ID = &id
	}
	if a.QueuePosition != nil {
		p := *a.QueuePosition
		c.QueuePosition = &p
	}
	c.ArrivedAt = cloneTime(a.ArrivedAt)
	c.ServiceStartedAt = cloneTime(a.ServiceStartedAt)
	c.ServiceEndedAt = cloneTime(a.ServiceEndedAt)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
