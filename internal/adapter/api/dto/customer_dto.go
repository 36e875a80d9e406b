package dto

import (
	"time"

	"github.com/hugohenrick/barbearia-api/internal/domain/customer"
	"github.com/hugohenrick/barbearia-api/internal/domain/loyalty"
	"github.com/shopspring/decimal"
)

// LedgerEntryResponse representa um lançamento do extrato de fidelidade
type LedgerEntryResponse struct {
	Kind          string          `json:"kind"`
	Points        int             `json:"points"`
	Amount        decimal.Decimal `json:"amount"`
	AppointmentID string          `json:"appointment_id"`
	SaleID        string          `json:"sale_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// LoyaltyResponse representa os contadores de fidelidade de um cliente
type LoyaltyResponse struct {
	CustomerID              string                 `json:"customer_id"`
	Name                    string                 `json:"name"`
	PaidCutsCompleted       int                    `json:"paid_cuts_completed"`
	FreeCutCreditsAvailable int                    `json:"free_cut_credits_available"`
	ExperiencePoints        int                    `json:"experience_points"`
	CurrentLevel            int                    `json:"current_level"`
	TotalVisits             int                    `json:"total_visits"`
	TotalSpend              decimal.Decimal        `json:"total_spend"`
	LastVisitAt             *time.Time             `json:"last_visit_at,omitempty"`
	Ledger                  []LedgerEntryResponse  `json:"ledger"`
	Reconciliation          ReconciliationResponse `json:"reconciliation"`
}

// LedgerCountersResponse são contadores ou diferenças de contadores
type LedgerCountersResponse struct {
	PaidCuts   int             `json:"paid_cuts"`
	Credits    int             `json:"free_cut_credits"`
	Experience int             `json:"experience_points"`
	Visits     int             `json:"visits"`
	Spend      decimal.Decimal `json:"spend"`
}

// ReconciliationResponse compara os contadores com a projeção do extrato.
// Unledgered traz o saldo sem lançamento, como valores importados antes do extrato.
type ReconciliationResponse struct {
	InSync     bool                   `json:"in_sync"`
	Projected  LedgerCountersResponse `json:"projected"`
	Unledgered LedgerCountersResponse `json:"unledgered"`
}

// ToLoyaltyResponse converte o cliente e seu extrato, conciliando os contadores com a projeção
func ToLoyaltyResponse(c *customer.Customer, entries []loyalty.Entry) LoyaltyResponse {
	rec := loyalty.Reconcile(c.Loyalty, entries)
	ledger := make([]LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		ledger = append(ledger, LedgerEntryResponse{
			Kind:          string(e.Kind),
			Points:        e.Points,
			Amount:        e.Amount,
			AppointmentID: e.AppointmentID,
			SaleID:        e.SaleID,
			CreatedAt:     e.CreatedAt,
		})
	}
	return LoyaltyResponse{
		CustomerID:              c.ID,
		Name:                    c.Name,
		PaidCutsCompleted:       c.Loyalty.PaidCutsCompleted,
		FreeCutCreditsAvailable: c.Loyalty.FreeCutCreditsAvailable,
		ExperiencePoints:        c.Loyalty.ExperiencePoints,
		CurrentLevel:            c.Loyalty.CurrentLevel,
		TotalVisits:             c.Loyalty.TotalVisits,
		TotalSpend:              c.Loyalty.TotalSpend,
		LastVisitAt:             c.Loyalty.LastVisitAt,
		Ledger:                  ledger,
		Reconciliation: ReconciliationResponse{
			InSync: rec.InSync(),
			Projected: LedgerCountersResponse{
				PaidCuts:   rec.Projected.PaidCutsCompleted,
				Credits:    rec.Projected.FreeCutCreditsAvailable,
				Experience: rec.Projected.ExperiencePoints,
				Visits:     rec.Projected.TotalVisits,
				Spend:      rec.Projected.TotalSpend,
			},
			Unledgered: LedgerCountersResponse{
				PaidCuts:   rec.Unledgered.PaidCuts,
				Credits:    rec.Unledgered.Credits,
				Experience: rec.Unledgered.Experience,
				Visits:     rec.Unledgered.Visits,
				Spend:      rec.Unledgered.Spend,
			},
		},
	}
}
