package loyalty

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaidCutsPerCredit     = 10  // Cortes pagos necessários para ganhar um corte grátis
	ExperiencePerService  = 10  // XP por serviço realizado na visita
	MinExperiencePerVisit = 5   // XP mínimo de qualquer visita
	ExperiencePerLevel    = 100 // XP necessário para subir um nível
)

// FixedBonusAmount é o valor fixo abatido quando um corte grátis é resgatado
var FixedBonusAmount = decimal.NewFromInt(15000)

// Counters são os contadores de fidelidade materializados no cadastro do cliente
type Counters struct {
	PaidCutsCompleted       int             `json:"paid_cuts_completed"`
	FreeCutCreditsAvailable int             `json:"free_cut_credits_available"`
	ExperiencePoints        int             `json:"experience_points"`
	CurrentLevel            int             `json:"current_level"`
	TotalVisits             int             `json:"total_visits"`
	TotalSpend              decimal.Decimal `json:"total_spend"`
	LastVisitAt             *time.Time      `json:"last_visit_at,omitempty"`
}

// Visit descreve a visita sendo finalizada
type Visit struct {
	WantsRedemption bool
	Subtotal        decimal.Decimal
	ServiceCount    int
	At              time.Time
}

// Delta é a variação aditiva aplicada aos contadores (x = x + delta)
type Delta struct {
	PaidCuts   int
	Credits    int
	Experience int
	Visits     int
	Spend      decimal.Decimal
	At         time.Time
}

// Outcome é o resultado de aplicar uma visita aos contadores
type Outcome struct {
	Counters         Counters
	Delta            Delta
	Discount         decimal.Decimal
	FinalTotal       decimal.Decimal
	Redeemed         bool
	CreditsEarned    int
	ExperienceGained int
	Entries          []Entry
}

// LevelFor calcula o nível a partir da experiência acumulada
func LevelFor(experience int) int {
	if experience < 0 {
		return 1
	}
	return experience/ExperiencePerLevel + 1
}

// ExperienceFor calcula o XP ganho por uma visita com n serviços
func ExperienceFor(serviceCount int) int {
	xp := serviceCount * ExperiencePerService
	if xp < MinExperiencePerVisit {
		return MinExperiencePerVisit
	}
	return xp
}

// Apply calcula desconto, novos contadores e lançamentos de uma visita.
// Um resgate pedido sem crédito disponível vira uma visita paga comum.
func Apply(c Counters, v Visit) Outcome {
	subtotal := v.Subtotal
	if subtotal.IsNegative() {
		subtotal = decimal.Zero
	}

	out := Outcome{Discount: decimal.Zero}
	at := v.At.UTC()

	out.Redeemed = v.WantsRedemption && c.FreeCutCreditsAvailable > 0
	if out.Redeemed {
		out.Discount = decimal.Min(subtotal, FixedBonusAmount)
		out.Delta.Credits--
		out.Entries = append(out.Entries, newEntry(EntryCreditRedeemed, -1, out.Discount, at))
	} else {
		out.Delta.PaidCuts++
		out.Entries = append(out.Entries, newEntry(EntryPaidCut, 1, decimal.Zero, at))
	}

	paidAfter := c.PaidCutsCompleted + out.Delta.PaidCuts
	out.CreditsEarned = paidAfter/PaidCutsPerCredit - c.PaidCutsCompleted/PaidCutsPerCredit
	if out.CreditsEarned > 0 {
		out.Delta.Credits += out.CreditsEarned
		out.Entries = append(out.Entries, newEntry(EntryCreditEarned, out.CreditsEarned, decimal.Zero, at))
	}

	out.ExperienceGained = ExperienceFor(v.ServiceCount)
	out.Delta.Experience = out.ExperienceGained
	out.Entries = append(out.Entries, newEntry(EntryExperience, out.ExperienceGained, decimal.Zero, at))

	out.FinalTotal = subtotal.Sub(out.Discount)
	out.Delta.Visits = 1
	out.Delta.Spend = out.FinalTotal
	out.Delta.At = at
	out.Entries = append(out.Entries, newEntry(EntryVisit, 1, out.FinalTotal, at))

	out.Counters = c.Add(out.Delta)
	return out
}

// Add aplica um delta aos contadores e recalcula o nível
func (c Counters) Add(d Delta) Counters {
	c.PaidCutsCompleted += d.PaidCuts
	c.FreeCutCreditsAvailable += d.Credits
	if c.FreeCutCreditsAvailable < 0 {
		c.FreeCutCreditsAvailable = 0
	}
	c.ExperiencePoints += d.Experience
	c.CurrentLevel = LevelFor(c.ExperiencePoints)
	c.TotalVisits += d.Visits
	c.TotalSpend = c.TotalSpend.Add(d.Spend)
	if d.Visits > 0 && (c.LastVisitAt == nil || d.At.After(*c.LastVisitAt)) {
		at := d.At
		c.LastVisitAt = &at
	}
	return c
}

// Stamp vincula os lançamentos da visita ao cliente, agendamento e venda
func (o *Outcome) Stamp(customerID, appointmentID, saleID string) []Entry {
	entries := make([]Entry, len(o.Entries))
	for i, e := range o.Entries {
		e.CustomerID = customerID
		e.AppointmentID = appointmentID
		e.SaleID = saleID
		entries[i] = e
	}
	o.Entries = entries
	return entries
}

func newEntry(kind EntryKind, points int, amount decimal.Decimal, at time.Time) Entry {
	return Entry{
		ID:        uuid.New().String(),
		Kind:      kind,
		Points:    points,
		Amount:    amount,
		CreatedAt: at,
	}
}
