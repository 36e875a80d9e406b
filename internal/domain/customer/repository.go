package customer

import (
	"context"

	"github.com/hugohenrick/barbearia-api/internal/domain/loyalty"
)

// Repository define a interface para operações de repositório de clientes
type Repository interface {
	// Create cadastra um cliente; usado por seeds e testes
	Create(ctx context.Context, c *Customer) error

	// FindByID busca um cliente pelo ID
	FindByID(ctx context.Context, id string) (*Customer, error)

	// FindByIDForUpdate busca um cliente bloqueando a linha até o fim da transação
	FindByIDForUpdate(ctx context.Context, id string) (*Customer, error)

	// ApplyLoyalty soma o delta aos contadores e grava os lançamentos do livro
	ApplyLoyalty(ctx context.Context, id string, delta loyalty.Delta, entries []loyalty.Entry) error

	// ListLedger lista os lançamentos de fidelidade do cliente em ordem cronológica
	ListLedger(ctx context.Context, id string) ([]loyalty.Entry, error)
}
