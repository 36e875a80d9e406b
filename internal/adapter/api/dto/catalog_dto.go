package dto

import (
	"github.com/hugohenrick/barbearia-api/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ServiceResponse representa um serviço do catálogo
type ServiceResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
	Active          bool            `json:"active"`
}

// ProductResponse representa um produto do catálogo
type ProductResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Stock  int             `json:"stock"`
	Active bool            `json:"active"`
}

// ToServiceResponse converte um serviço em ServiceResponse
func ToServiceResponse(s *catalog.Service) ServiceResponse {
	return ServiceResponse{ID: s.ID, Name: s.Name, Price: s.Price, DurationMinutes: s.DurationMinutes, Active: s.Active}
}

// ToServiceListResponse converte uma lista de serviços
func ToServiceListResponse(services []*catalog.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, ToServiceResponse(s))
	}
	return out
}

// ToProductListResponse converte uma lista de produtos
func ToProductListResponse(products []*catalog.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ProductResponse{ID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Stock, Active: p.Active})
	}
	return out
}
