package dto

import (
	"time"

	"github.com/hugohenrick/barbearia-api/internal/domain/appointment"
	"github.com/shopspring/decimal"
)

// CustomerRequest identifica o cliente do agendamento; sem ID é um cliente avulso
type CustomerRequest struct {
	ID    *string `json:"id"`
	Name  string  `json:"name" binding:"required"`
	Phone string  `json:"phone"`
	Email string  `json:"email"`
}

// CreateAppointmentRequest representa a estrutura de dados para criação de agendamento
type CreateAppointmentRequest struct {
	BarberID               string          `json:"barber_id" binding:"required"`
	ServiceID              string          `json:"service_id" binding:"required"`
	ScheduledAt            time.Time       `json:"scheduled_at" binding:"required"`
	Customer               CustomerRequest `json:"customer" binding:"required"`
	Notes                  string          `json:"notes"`
	WantsFreeCutRedemption bool            `json:"wants_free_cut_redemption"`
}

// CancelAppointmentRequest traz o motivo opcional do cancelamento
type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// CustomerResponse representa o cliente gravado no agendamento
type CustomerResponse struct {
	ID    *string `json:"id,omitempty"`
	Name  string  `json:"name"`
	Phone string  `json:"phone,omitempty"`
	Email string  `json:"email,omitempty"`
}

// AppointmentResponse representa a estrutura de resposta para agendamento
type AppointmentResponse struct {
	ID                       string           `json:"id"`
	BarberID                 string           `json:"barber_id"`
	ServiceID                string           `json:"service_id"`
	Customer                 CustomerResponse `json:"customer"`
	Notes                    string           `json:"notes,omitempty"`
	ScheduledAt              time.Time        `json:"scheduled_at"`
	EstimatedDurationMinutes int              `json:"estimated_duration_minutes"`
	ChargedPrice             decimal.Decimal  `json:"charged_price"`
	Status                   string           `json:"status"`
	QueueStage               string           `json:"queue_stage"`
	QueuePosition            *int             `json:"queue_position,omitempty"`
	ArrivedAt                *time.Time       `json:"arrived_at,omitempty"`
	ServiceStartedAt         *time.Time       `json:"service_started_at,omitempty"`
	ServiceEndedAt           *time.Time       `json:"service_ended_at,omitempty"`
	CancellationReason       string           `json:"cancellation_reason,omitempty"`
	WantsFreeCutRedemption   bool             `json:"wants_free_cut_redemption"`
	SaleGenerated            bool             `json:"sale_generated"`
	CreatedAt                time.Time        `json:"created_at"`
	UpdatedAt                time.Time        `json:"updated_at"`
}

// ToAppointmentResponse converte um agendamento em AppointmentResponse
func ToAppointmentResponse(a *appointment.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:        a.ID,
		BarberID:  a.BarberID,
		ServiceID: a.ServiceID,
		Customer: CustomerResponse{
			ID:    a.Customer.ID,
			Name:  a.Customer.Name,
			Phone: a.Customer.Phone,
			Email: a.Customer.Email,
		},
		Notes:                    a.Notes,
		ScheduledAt:              a.ScheduledAt,
		EstimatedDurationMinutes: a.EstimatedDurationMinutes,
		ChargedPrice:             a.ChargedPrice,
		Status:                   string(a.Status),
		QueueStage:               string(a.QueueStage),
		QueuePosition:            a.QueuePosition,
		ArrivedAt:                a.ArrivedAt,
		ServiceStartedAt:         a.ServiceStartedAt,
		ServiceEndedAt:           a.ServiceEndedAt,
		CancellationReason:       a.CancellationReason,
		WantsFreeCutRedemption:   a.WantsFreeCutRedemption,
		SaleGenerated:            a.SaleGenerated,
		CreatedAt:                a.CreatedAt,
		UpdatedAt:                a.UpdatedAt,
	}
}

// ReservedSlotsResponse lista os horários ocupados do barbeiro no dia
type ReservedSlotsResponse struct {
	BarberID string      `json:"barber_id"`
	Date     string      `json:"date"`
	Slots    []time.Time `json:"slots"`
}

// AgendaEntryResponse é uma linha da agenda com os resumos de serviço e venda
type AgendaEntryResponse struct {
	AppointmentResponse
	Service *appointment.ServiceSummary `json:"service,omitempty"`
	Sale    *appointment.SaleSummary    `json:"sale,omitempty"`
}

// ToAgendaResponse converte as linhas da agenda
func ToAgendaResponse(entries []*appointment.AgendaEntry) []AgendaEntryResponse {
	out := make([]AgendaEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, AgendaEntryResponse{
			AppointmentResponse: ToAppointmentResponse(e.Appointment),
			Service:             e.Service,
			Sale:                e.Sale,
		})
	}
	return out
}
