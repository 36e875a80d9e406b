package catalog

import (
	"github.com/hugohenrick/barbearia-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	ErrServiceNotFound = apperror.NotFound("serviço não encontrado")
	ErrProductNotFound = apperror.NotFound("produto não encontrado")
)

// ItemKind diferencia serviços de produtos nos itens de venda
type ItemKind string

const (
	KindService ItemKind = "service"
	KindProduct ItemKind = "product"
)

// Service representa um serviço oferecido pela barbearia
type Service struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
	Active          bool            `json:"active"`
}

// Product representa um produto vendido no balcão
type Product struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Stock  int             `json:"stock"`
	Active bool            `json:"active"`
}

// RemainingStock calcula o estoque após a baixa, sem ficar negativo
func RemainingStock(stock, quantity int) int {
	if quantity >= stock {
		return 0
	}
	return stock - quantity
}
