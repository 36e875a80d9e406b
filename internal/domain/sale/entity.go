package sale

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/barbearia-api/internal/domain/catalog"
	"github.com/hugohenrick/barbearia-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound                  = apperror.NotFound("venda não encontrada")
	ErrAlreadyExists             = apperror.Conflict("já existe uma venda para este agendamento")
	ErrInvalidPaymentMethod      = apperror.Validation("forma de pagamento inválida (use cash, card, transfer ou other)")
	ErrNoItems                   = apperror.Validation("venda sem itens")
	ErrDiscountExceedsSubtotal   = apperror.Validation("desconto maior que o subtotal")
	ErrDiscountWithoutRedemption = apperror.Validation("desconto só é permitido no resgate de corte grátis")
)

// PaymentMethod representa a forma de pagamento da venda
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"     // Dinheiro
	PaymentCard     PaymentMethod = "card"     // Cartão
	PaymentTransfer PaymentMethod = "transfer" // Pix ou transferência
	PaymentOther    PaymentMethod = "other"    // Outros
)

// ParsePaymentMethod valida e normaliza a forma de pagamento
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentOther:
		return m, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

// Item é uma linha imutável da venda
type Item struct {
	ID           string           `json:"id"`
	SaleID       string           `json:"sale_id"`
	Kind         catalog.ItemKind `json:"kind"`
	ReferenceID  string           `json:"reference_id"`
	Name         string           `json:"name"`
	Quantity     int              `json:"quantity"`
	UnitPrice    decimal.Decimal  `json:"unit_price"`
	LineSubtotal decimal.Decimal  `json:"line_subtotal"`
}

// NewItem cria uma linha de venda; quantidades menores que 1 viram 1
func NewItem(kind catalog.ItemKind, referenceID, name string, quantity int, unitPrice decimal.Decimal) Item {
	if quantity < 1 {
		quantity = 1
	}
	return Item{
		ID:           uuid.New().String(),
		Kind:         kind,
		ReferenceID:  referenceID,
		Name:         name,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		LineSubtotal: unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// Subtotal soma os subtotais das linhas
func Subtotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineSubtotal)
	}
	return total
}

// Sale representa a venda gerada ao finalizar um atendimento
type Sale struct {
	ID                  string          `json:"id"`
	AppointmentID       string          `json:"appointment_id"`
	BarberID            string          `json:"barber_id"`
	CustomerID          *string         `json:"customer_id,omitempty"`
	CustomerName        string          `json:"customer_name"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	Discount            decimal.Decimal `json:"discount"`
	FinalTotal          decimal.Decimal `json:"final_total"`
	IsFreeCutRedemption bool            `json:"is_free_cut_redemption"`
	PaymentMethod       PaymentMethod   `json:"payment_method"`
	Notes               string          `json:"notes,omitempty"`
	Items               []Item          `json:"items"`
	CreatedAt           time.Time       `json:"created_at"`
}

// NewSale monta a venda a partir das linhas e do desconto de fidelidade
func NewSale(
	appointmentID string,
	barberID string,
	customerID *string,
	customerName string,
	method PaymentMethod,
	notes string,
	items []Item,
	discount decimal.Decimal,
	redeemed bool,
	now time.Time,
) (*Sale, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if _, err := ParsePaymentMethod(string(method)); err != nil {
		return nil, err
	}

	subtotal := Subtotal(items)
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		return nil, ErrDiscountExceedsSubtotal
	}
	if discount.IsPositive() && !redeemed {
		return nil, ErrDiscountWithoutRedemption
	}

	s := &Sale{
		ID:                  uuid.New().String(),
		AppointmentID:       appointmentID,
		BarberID:            barberID,
		CustomerID:          customerID,
		CustomerName:        customerName,
		Subtotal:            subtotal,
		Discount:            discount,
		FinalTotal:          subtotal.Sub(discount),
		IsFreeCutRedemption: redeemed,
		PaymentMethod:       method,
		Notes:               strings.TrimSpace(notes),
		CreatedAt:           now.UTC(),
	}
	s.Items = make([]Item, len(items))
	for i, it := range items {
		it.SaleID = s.ID
		s.Items[i] = it
	}
	return s, nil
}

// Redemption é o registro de auditoria de um corte grátis resgatado
type Redemption struct {
	ID             string          `json:"id"`
	CustomerID     string          `json:"customer_id"`
	SaleID         string          `json:"sale_id"`
	AppointmentID  string          `json:"appointment_id"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
	CreatedAt      time.Time       `json:"created_at"`
}

// NewRedemption cria o registro de auditoria de uma venda com resgate
func NewRedemption(s *Sale) (*Redemption, error) {
	if !s.IsFreeCutRedemption || s.CustomerID == nil {
		return nil, apperror.Validation("venda %s não é um resgate de corte grátis", s.ID)
	}
	return &Redemption{
		ID:             uuid.New().String(),
		CustomerID:     *s.CustomerID,
		SaleID:         s.ID,
		AppointmentID:  s.AppointmentID,
		OriginalAmount: s.Subtotal,
		DiscountAmount: s.Discount,
		FinalAmount:    s.FinalTotal,
		CreatedAt:      s.CreatedAt,
	}, nil
}

// Clone retorna uma cópia da venda com suas linhas
func (s *Sale) Clone() *Sale {
	cp := *s
	if s.CustomerID != nil {
		id := *s.CustomerID
		cp.CustomerID = &id
	}
	cp.Items = append([]Item(nil), s.Items...)
	return &cp
}
