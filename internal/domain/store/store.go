// Package store agrupa os repositórios do domínio em uma unidade de trabalho transacional.
package store

import (
	"context"

	"github.com/hugohenrick/barbearia-api/internal/domain/appointment"
	"github.com/hugohenrick/barbearia-api/internal/domain/catalog"
	"github.com/hugohenrick/barbearia-api/internal/domain/customer"
	"github.com/hugohenrick/barbearia-api/internal/domain/sale"
)

// Repositories dá acesso aos repositórios ligados a uma mesma conexão ou transação
type Repositories interface {
	Appointments() appointment.Repository
	Catalog() catalog.Repository
	Customers() customer.Repository
	Sales() sale.Repository
}

// Tx é uma transação em andamento
type Tx interface {
	Repositories

	// Savepoint executa fn em um ponto de salvamento; se fn falhar, apenas
	// o que fn escreveu é desfeito e a transação externa continua válida.
	Savepoint(ctx context.Context, fn func(tx Tx) error) error
}

// Store é o ponto de entrada do armazenamento
type Store interface {
	Repositories

	// InTx executa fn em uma transação, confirmando se fn retornar nil
	InTx(ctx context.Context, fn func(tx Tx) error) error
}
