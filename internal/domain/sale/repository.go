package sale

import (
	"context"
)

// Repository define a interface para operações de repositório de vendas
type Repository interface {
	// Create grava o cabeçalho da venda e todas as suas linhas
	Create(ctx context.Context, s *Sale) error

	// CreateRedemption grava o registro de auditoria do resgate
	CreateRedemption(ctx context.Context, r *Redemption) error

	// FindByID busca uma venda com suas linhas
	FindByID(ctx context.Context, id string) (*Sale, error)

	// FindByAppointment busca a venda gerada por um agendamento
	FindByAppointment(ctx context.Context, appointmentID string) (*Sale, error)

	// FindRedemptionBySale busca o registro de resgate de uma venda
	FindRedemptionBySale(ctx context.Context, saleID string) (*Redemption, error)
}
