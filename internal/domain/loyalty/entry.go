package loyalty

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind identifica o tipo de lançamento no livro de fidelidade
type EntryKind string

const (
	EntryPaidCut        EntryKind = "paid_cut"        // Corte pago contabilizado
	EntryCreditEarned   EntryKind = "credit_earned"   // Crédito de corte grátis ganho
	EntryCreditRedeemed EntryKind = "credit_redeemed" // Crédito consumido em um resgate
	EntryExperience     EntryKind = "experience"      // Pontos de experiência
	EntryVisit          EntryKind = "visit"           // Visita concluída com o valor pago
)

// Entry é um lançamento imutável do livro de fidelidade
type Entry struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	AppointmentID string          `json:"appointment_id"`
	SaleID        string          `json:"sale_id"`
	Kind          EntryKind       `json:"kind"`
	Points        int             `json:"points"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Delta converte o lançamento na variação equivalente dos contadores
func (e Entry) Delta() Delta {
	d := Delta{Spend: decimal.Zero, At: e.CreatedAt}
	switch e.Kind {
	case EntryPaidCut:
		d.PaidCuts = e.Points
	case EntryCreditEarned, EntryCreditRedeemed:
		d.Credits = e.Points
	case EntryExperience:
		d.Experience = e.Points
	case EntryVisit:
		d.Visits = e.Points
		d.Spend = e.Amount
	}
	return d
}

// Project reconstrói os contadores a partir do histórico de lançamentos
func Project(entries []Entry) Counters {
	c := Counters{CurrentLevel: 1, TotalSpend: decimal.Zero}
	for _, e := range entries {
		c = c.Add(e.Delta())
	}
	return c
}

// Reconciliation compara os contadores materializados com o extrato
type Reconciliation struct {
	Projected  Counters // contadores reconstruídos apenas pelo extrato
	Unledgered Delta    // parte dos contadores sem lançamento correspondente
}

// InSync indica que todo o saldo materializado é explicado pelo extrato
func (r Reconciliation) InSync() bool {
	u := r.Unledgered
	return u.PaidCuts == 0 && u.Credits == 0 && u.Experience == 0 && u.Visits == 0 && u.Spend.IsZero()
}

// Reconcile projeta o extrato e calcula a diferença para os contadores materializados.
// Saldos importados antes do extrato existir aparecem em Unledgered.
func Reconcile(c Counters, entries []Entry) Reconciliation {
	sum := Delta{Spend: decimal.Zero}
	for _, e := range entries {
		d := e.Delta()
		sum.PaidCuts += d.PaidCuts
		sum.Credits += d.Credits
		sum.Experience += d.Experience
		sum.Visits += d.Visits
		sum.Spend = sum.Spend.Add(d.Spend)
	}
	return Reconciliation{
		Projected: Project(entries),
		Unledgered: Delta{
			PaidCuts:   c.PaidCutsCompleted - sum.PaidCuts,
			Credits:    c.FreeCutCreditsAvailable - sum.Credits,
			Experience: c.ExperiencePoints - sum.Experience,
			Visits:     c.TotalVisits - sum.Visits,
			Spend:      c.TotalSpend.Sub(sum.Spend),
		},
	}
}
