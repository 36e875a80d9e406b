// Package servicetest monta um armazenamento em memória com catálogo e clientes de exemplo.
package servicetest

import (
	"context"
	"time"

	"github.com/hugohenrick/barbearia-api/internal/adapter/repository/memory"
	"github.com/hugohenrick/barbearia-api/internal/domain/catalog"
	"github.com/hugohenrick/barbearia-api/internal/domain/customer"
	"github.com/hugohenrick/barbearia-api/internal/domain/loyalty"
	"github.com/shopspring/decimal"
)

const (
	BarberID      = "barber-1"
	OtherBarberID = "barber-2"
	HaircutID     = "svc-haircut"
	BeardID       = "svc-beard"
	InactiveID    = "svc-old"
	PomadeID      = "prd-pomade"
	CustomerID    = "cust-1"
	RichID        = "cust-rich"
)

// Day é o dia usado nos testes
var Day = time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

// NewStore cria o armazenamento com um corte de 20000 (30 min), barba, um serviço
// inativo, uma pomada com estoque 5 e dois clientes: um sem créditos e outro com um.
func NewStore() *memory.Store {
	s := memory.NewStore()
	s.SeedService(catalog.Service{ID: HaircutID, Name: "Corte", Price: decimal.NewFromInt(20000), DurationMinutes: 30, Active: true})
	s.SeedService(catalog.Service{ID: BeardID, Name: "Barba", Price: decimal.NewFromInt(8000), DurationMinutes: 20, Active: true})
	s.SeedService(catalog.Service{ID: InactiveID, Name: "Relaxamento", Price: decimal.NewFromInt(5000), DurationMinutes: 40, Active: false})
	s.SeedProduct(catalog.Product{ID: PomadeID, Name: "Pomada", Price: decimal.NewFromInt(3500), Stock: 5, Active: true})

	ctx := context.Background()
	_ = s.Customers().Create(ctx, &customer.Customer{ID: CustomerID, Name: "Carlos", Loyalty: loyalty.Counters{CurrentLevel: 1}})
	_ = s.Customers().Create(ctx, &customer.Customer{
		ID:   RichID,
		Name: "Rafael",
		Loyalty: loyalty.Counters{
			PaidCutsCompleted:       10,
			FreeCutCreditsAvailable: 1,
			ExperiencePoints:        100,
			CurrentLevel:            2,
			TotalVisits:             10,
			TotalSpend:              decimal.NewFromInt(200000),
		},
	})
	return s
}

// Ptr retorna o endereço de uma cópia de s
func Ptr(s string) *string {
	return &s
}
