package dto

import (
	"time"

	"github.com/hugohenrick/barbearia-api/internal/domain/sale"
	"github.com/hugohenrick/barbearia-api/internal/service/checkout"
	"github.com/shopspring/decimal"
)

// LineRequest é um serviço extra ou produto pedido na finalização
type LineRequest struct {
	ID       string `json:"id" binding:"required"`
	Quantity int    `json:"quantity"`
}

// FinalizeRequest representa a estrutura de dados para finalizar um atendimento
type FinalizeRequest struct {
	PaymentMethod string        `json:"payment_method" binding:"required"`
	Notes         string        `json:"notes"`
	ExtraServices []LineRequest `json:"extra_services"`
	Products      []LineRequest `json:"products"`
}

// ToFinalizeInput monta a entrada do serviço de checkout
func (r FinalizeRequest) ToFinalizeInput(appointmentID, barberID string) checkout.FinalizeInput {
	return checkout.FinalizeInput{
		AppointmentID: appointmentID,
		BarberID:      barberID,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
		ExtraServices: toLines(r.ExtraServices),
		Products:      toLines(r.Products),
	}
}

func toLines(in []LineRequest) []checkout.LineRequest {
	out := make([]checkout.LineRequest, 0, len(in))
	for _, l := range in {
		out = append(out, checkout.LineRequest{ID: l.ID, Quantity: l.Quantity})
	}
	return out
}

// FinalizeResponse representa o resultado da finalização
type FinalizeResponse struct {
	SaleID          string              `json:"sale_id"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	Discount        decimal.Decimal     `json:"discount"`
	FinalTotal      decimal.Decimal     `json:"final_total"`
	FreeCutRedeemed bool                `json:"free_cut_redeemed"`
	Appointment     AppointmentResponse `json:"appointment"`
}

// ToFinalizeResponse converte o resultado do checkout
func ToFinalizeResponse(r *checkout.Result) FinalizeResponse {
	return FinalizeResponse{
		SaleID:          r.SaleID,
		Subtotal:        r.Subtotal,
		Discount:        r.Discount,
		FinalTotal:      r.FinalTotal,
		FreeCutRedeemed: r.FreeCutRedeemed,
		Appointment:     ToAppointmentResponse(r.Appointment),
	}
}

// SaleItemResponse representa uma linha da venda
type SaleItemResponse struct {
	Kind         string          `json:"kind"`
	ReferenceID  string          `json:"reference_id"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineSubtotal decimal.Decimal `json:"line_subtotal"`
}

// SaleResponse representa a estrutura de resposta para venda
type SaleResponse struct {
	ID                  string              `json:"id"`
	AppointmentID       string              `json:"appointment_id"`
	BarberID            string              `json:"barber_id"`
	CustomerID          *string             `json:"customer_id,omitempty"`
	CustomerName        string              `json:"customer_name"`
	Subtotal            decimal.Decimal     `json:"subtotal"`
	Discount            decimal.Decimal     `json:"discount"`
	FinalTotal          decimal.Decimal     `json:"final_total"`
	IsFreeCutRedemption bool                `json:"is_free_cut_redemption"`
	PaymentMethod       string              `json:"payment_method"`
	Notes               string              `json:"notes,omitempty"`
	Items               []SaleItemResponse  `json:"items"`
	Redemption          *RedemptionResponse `json:"redemption,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
}

// RedemptionResponse representa o registro de auditoria de um corte grátis
type RedemptionResponse struct {
	ID             string          `json:"id"`
	CustomerID     string          `json:"customer_id"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToSaleResponse converte uma venda e, quando houver, o registro de resgate
func ToSaleResponse(s *sale.Sale, redemption *sale.Redemption) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemResponse{
			Kind:         string(it.Kind),
			ReferenceID:  it.ReferenceID,
			Name:         it.Name,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			LineSubtotal: it.LineSubtotal,
		})
	}
	resp := SaleResponse{
		ID:                  s.ID,
		AppointmentID:       s.AppointmentID,
		BarberID:            s.BarberID,
		CustomerID:          s.CustomerID,
		CustomerName:        s.CustomerName,
		Subtotal:            s.Subtotal,
		Discount:            s.Discount,
		FinalTotal:          s.FinalTotal,
		IsFreeCutRedemption: s.IsFreeCutRedemption,
		PaymentMethod:       string(s.PaymentMethod),
		Notes:               s.Notes,
		Items:               items,
		CreatedAt:           s.CreatedAt,
	}
	if redemption != nil {
		resp.Redemption = &RedemptionResponse{
			ID:             redemption.ID,
			CustomerID:     redemption.CustomerID,
			OriginalAmount: redemption.OriginalAmount,
			DiscountAmount: redemption.DiscountAmount,
			FinalAmount:    redemption.FinalAmount,
			CreatedAt:      redemption.CreatedAt,
		}
	}
	return resp
}
