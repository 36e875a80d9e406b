// Package checkout finaliza o atendimento em uma venda, aplicando a fidelidade,
// baixando o estoque e concluindo o agendamento em uma única transação.
package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/hugohenrick/barbearia-api/internal/domain/appointment"
	"github.com/hugohenrick/barbearia-api/internal/domain/catalog"
	"github.com/hugohenrick/barbearia-api/internal/domain/customer"
	"github.com/hugohenrick/barbearia-api/internal/domain/loyalty"
	"github.com/hugohenrick/barbearia-api/internal/domain/sale"
	"github.com/hugohenrick/barbearia-api/internal/domain/store"
	"github.com/hugohenrick/barbearia-api/pkg/apperror"
	"github.com/hugohenrick/barbearia-api/pkg/logger"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// LineRequest é um serviço extra ou produto pedido na finalização
type LineRequest struct {
	ID       string
	Quantity int
}

// FinalizeInput são os dados para finalizar um atendimento
type FinalizeInput struct {
	AppointmentID string
	BarberID      string
	PaymentMethod string
	Notes         string
	ExtraServices []LineRequest
	Products      []LineRequest
}

// Result é o resumo da venda gerada
type Result struct {
	SaleID          string
	Subtotal        decimal.Decimal
	FinalTotal      decimal.Decimal
	Discount        decimal.Decimal
	FreeCutRedeemed bool
	Appointment     *appointment.Appointment
}

// Service implementa a finalização de vendas
type Service struct {
	store  store.Store
	logger logger.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// NewService cria uma nova instância de Service
func NewService(st store.Store, log logger.Logger) *Service {
	return &Service{
		store:  st,
		logger: log,
		tracer: otel.Tracer("barbearia/checkout"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Finalize transforma o atendimento em andamento em uma venda
func (s *Service) Finalize(ctx context.Context, in FinalizeInput) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "checkout.finalize",
		trace.WithAttributes(
			attribute.String("appointment.id", in.AppointmentID),
			attribute.String("barber.id", in.BarberID),
			attribute.Int("extra_services.count", len(in.ExtraServices)),
			attribute.Int("products.count", len(in.Products)),
		),
	)
	defer span.End()

	method, err := sale.ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, s.fail(span, err)
	}

	log := s.logger.With("appointment_id", in.AppointmentID, "barber_id", in.BarberID)
	var result *Result

	err = s.store.InTx(ctx, func(tx store.Tx) error {
		now := s.now()

		a, err := tx.Appointments().FindByIDForUpdate(ctx, in.AppointmentID)
		if err != nil {
			return apperror.OrPersistence("falha ao consultar o agendamento", err)
		}
		if err := a.AssertOwner(in.BarberID); err != nil {
			return err
		}
		if a.SaleGenerated {
			return appointment.ErrSaleAlreadyGenerated
		}
		if a.Status != appointment.StatusInChair {
			return apperror.InvalidState("só é possível finalizar um atendimento em andamento (estado atual: %s)", a.Status)
		}

		items, serviceCount, err := s.buildItems(ctx, tx.Catalog(), log, a.ServiceID, in)
		if err != nil {
			return err
		}
		subtotal := sale.Subtotal(items)

		cust, err := s.lockCustomer(ctx, tx.Customers(), log, a.Customer.ID)
		if err != nil {
			return err
		}

		outcome := loyalty.Outcome{Discount: decimal.Zero, FinalTotal: subtotal}
		if cust != nil {
			outcome = loyalty.Apply(cust.Loyalty, loyalty.Visit{
				WantsRedemption: a.WantsFreeCutRedemption,
				Subtotal:        subtotal,
				ServiceCount:    serviceCount,
				At:              now,
			})
			if a.WantsFreeCutRedemption && !outcome.Redeemed {
				log.Warn("resgate solicitado sem crédito disponível; visita cobrada integralmente", "customer_id", cust.ID)
			}
		}

		newSale, err := sale.NewSale(a.ID, a.BarberID, a.Customer.ID, a.Customer.Name, method, in.Notes,
			items, outcome.Discount, outcome.Redeemed, now)
		if err != nil {
			return err
		}

		if cust != nil {
			entries := outcome.Stamp(cust.ID, a.ID, newSale.ID)
			err := tx.Savepoint(ctx, func(sp store.Tx) error {
				return sp.Customers().ApplyLoyalty(ctx, cust.ID, outcome.Delta, entries)
			})
			if err != nil {
				log.Error("falha ao atualizar fidelidade do cliente; venda mantida",
					"customer_id", cust.ID, "error", err)
				span.AddEvent("loyalty.update_failed")
			}
		}

		if err := tx.Sales().Create(ctx, newSale); err != nil {
			return apperror.OrPersistence("falha ao registrar a venda", err)
		}

		if newSale.IsFreeCutRedemption {
			redemption, err := sale.NewRedemption(newSale)
			if err != nil {
				return err
			}
			if err := tx.Sales().CreateRedemption(ctx, redemption); err != nil {
				return apperror.OrPersistence("falha ao registrar o resgate", err)
			}
		}

		for _, it := range newSale.Items {
			if it.Kind != catalog.KindProduct {
				continue
			}
			item := it
			err := tx.Savepoint(ctx, func(sp store.Tx) error {
				_, err := sp.Catalog().DecrementStock(ctx, item.ReferenceID, item.Quantity)
				return err
			})
			if err != nil {
				log.Error("falha ao baixar estoque; venda mantida",
					"product_id", item.ReferenceID, "quantity", item.Quantity, "error", err)
				span.AddEvent("stock.update_failed", trace.WithAttributes(attribute.String("product.id", item.ReferenceID)))
			}
		}

		done, err := tx.Appointments().MarkCompleted(ctx, a.ID, now)
		if err != nil {
			return apperror.OrPersistence("falha ao concluir o agendamento", err)
		}

		result = &Result{
			SaleID:          newSale.ID,
			Subtotal:        newSale.Subtotal,
			FinalTotal:      newSale.FinalTotal,
			Discount:        newSale.Discount,
			FreeCutRedeemed: newSale.IsFreeCutRedemption,
			Appointment:     done,
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(span, err)
	}

	span.SetAttributes(
		attribute.String("sale.id", result.SaleID),
		attribute.String("sale.final_total", result.FinalTotal.String()),
		attribute.Bool("free_cut.redeemed", result.FreeCutRedeemed),
	)
	log.Info("venda finalizada",
		"sale_id", result.SaleID,
		"subtotal", result.Subtotal.String(),
		"discount", result.Discount.String(),
		"final_total", result.FinalTotal.String(),
		"free_cut_redeemed", result.FreeCutRedeemed,
	)
	return result, nil
}

// buildItems monta as linhas da venda; extras e produtos desconhecidos são ignorados
func (s *Service) buildItems(
	ctx context.Context,
	cat catalog.Repository,
	log logger.Logger,
	primaryServiceID string,
	in FinalizeInput,
) ([]sale.Item, int, error) {
	primary, err := cat.FindService(ctx, primaryServiceID)
	if err != nil {
		return nil, 0, apperror.OrPersistence("falha ao consultar o serviço", err)
	}
	items := []sale.Item{sale.NewItem(catalog.KindService, primary.ID, primary.Name, 1, primary.Price)}
	serviceCount := 1

	for _, req := range in.ExtraServices {
		svc, err := cat.FindService(ctx, req.ID)
		if errors.Is(err, apperror.ErrNotFound) {
			log.Warn("serviço extra desconhecido ignorado", "service_id", req.ID)
			continue
		}
		if err != nil {
			return nil, 0, apperror.OrPersistence("falha ao consultar serviço extra", err)
		}
		item := sale.NewItem(catalog.KindService, svc.ID, svc.Name, req.Quantity, svc.Price)
		serviceCount += item.Quantity
		items = append(items, item)
	}

	for _, req := range in.Products {
		p, err := cat.FindProduct(ctx, req.ID)
		if errors.Is(err, apperror.ErrNotFound) {
			log.Warn("produto desconhecido ignorado", "product_id", req.ID)
			continue
		}
		if err != nil {
			return nil, 0, apperror.OrPersistence("falha ao consultar produto", err)
		}
		items = append(items, sale.NewItem(catalog.KindProduct, p.ID, p.Name, req.Quantity, p.Price))
	}

	return items, serviceCount, nil
}

// lockCustomer bloqueia o cadastro do cliente; avulsos e cadastros removidos não pontuam
func (s *Service) lockCustomer(ctx context.Context, repo customer.Repository, log logger.Logger, id *string) (*customer.Customer, error) {
	if id == nil {
		return nil, nil
	}
	c, err := repo.FindByIDForUpdate(ctx, *id)
	if errors.Is(err, apperror.ErrNotFound) {
		log.Warn("cliente do agendamento não encontrado; venda sem fidelidade", "customer_id", *id)
		return nil, nil
	}
	if err != nil {
		return nil, apperror.OrPersistence("falha ao consultar o cliente", err)
	}
	return c, nil
}

func (s *Service) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, apperror.Message(err))
	if errors.Is(err, apperror.ErrPersistence) {
		s.logger.Error("falha ao finalizar venda", "error", err)
	}
	return err
}
