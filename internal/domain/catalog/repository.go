package catalog

import (
	"context"
)

// Repository define a interface para consultas ao catálogo de serviços e produtos
type Repository interface {
	// FindService busca um serviço pelo ID
	FindService(ctx context.Context, id string) (*Service, error)

	// FindProduct busca um produto pelo ID
	FindProduct(ctx context.Context, id string) (*Product, error)

	// ListServices lista os serviços; onlyActive filtra os desativados
	ListServices(ctx context.Context, onlyActive bool) ([]*Service, error)

	// ListProducts lista os produtos; onlyActive filtra os desativados
	ListProducts(ctx context.Context, onlyActive bool) ([]*Product, error)

	// DecrementStock baixa o estoque do produto, com piso zero, e retorna o saldo
	DecrementStock(ctx context.Context, id string, quantity int) (int, error)
}
