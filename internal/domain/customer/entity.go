package customer

import (
	"time"

	"github.com/hugohenrick/barbearia-api/internal/domain/loyalty"
	"github.com/hugohenrick/barbearia-api/pkg/apperror"
)

var (
	ErrNotFound = apperror.NotFound("cliente não encontrado")
)

// Customer representa o cadastro do cliente com seus contadores de fidelidade.
// O cadastro é mantido por outro sistema; aqui só os contadores são alterados.
type Customer struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Phone     string           `json:"phone,omitempty"`
	Email     string           `json:"email,omitempty"`
	Loyalty   loyalty.Counters `json:"loyalty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// HasFreeCutCredit indica se o cliente tem ao menos um corte grátis disponível
func (c *Customer) HasFreeCutCredit() bool {
	return c.Loyalty.FreeCutCreditsAvailable > 0
}

// Clone retorna uma cópia do cliente
func (c *Customer) Clone() *Customer {
	cp := *c
	if c.Loyalty.LastVisitAt != nil {
		at := *c.Loyalty.LastVisitAt
		cp.Loyalty.LastVisitAt = &at
	}
	return &cp
}
