package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/barbearia-api/internal/domain/sale"
	"github.com/hugohenrick/barbearia-api/internal/infrastructure/database"
	"github.com/hugohenrick/barbearia-api/pkg/apperror"
	"github.com/jackc/pgx/v5"
)

const saleColumns = `
	id, appointment_id, barber_id, customer_id, customer_name, subtotal, discount,
	final_total, is_free_cut_redemption, payment_method, notes, created_at`

// SaleRepository implementa a interface sale.Repository
type SaleRepository struct {
	db database.DBTX
}

// NewSaleRepository cria uma nova instância de SaleRepository
func NewSaleRepository(db database.DBTX) *SaleRepository {
	return &SaleRepository{db: db}
}

// Create implementa sale.Repository.Create. Deve rodar em transação para que
// cabeçalho e linhas sejam gravados juntos.
func (r *SaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO sales (
			id, appointment_id, barber_id, customer_id, customer_name, subtotal,
			discount, final_total, is_free_cut_redemption, payment_method, notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		s.ID, s.AppointmentID, s.BarberID, s.CustomerID, s.CustomerName, s.Subtotal,
		s.Discount, s.FinalTotal, s.IsFreeCutRedemption, s.PaymentMethod, nullable(s.Notes), s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "ux_sales_appointment") {
			return sale.ErrAlreadyExists.Wrap(err)
		}
		return fmt.Errorf("erro ao criar venda: %w", err)
	}

	for i, it := range s.Items {
		_, err := r.db.Exec(ctx,
			`INSERT INTO sale_items (
				id, sale_id, position, kind, reference_id, name, quantity, unit_price, line_subtotal
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			it.ID, s.ID, i, it.Kind, it.ReferenceID, it.Name, it.Quantity, it.UnitPrice, it.LineSubtotal)
		if err != nil {
			return fmt.Errorf("erro ao criar item %d da venda: %w", i, err)
		}
	}
	return nil
}

// CreateRedemption implementa sale.Repository.CreateRedemption
func (r *SaleRepository) CreateRedemption(ctx context.Context, red *sale.Redemption) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO free_cut_redemptions (
			id, customer_id, sale_id, appointment_id, original_amount,
			discount_amount, final_amount, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		red.ID, red.CustomerID, red.SaleID, red.AppointmentID, red.OriginalAmount,
		red.DiscountAmount, red.FinalAmount, red.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "ux_free_cut_redemptions_sale") {
			return apperror.Conflict("resgate já registrado para a venda %s", red.SaleID).Wrap(err)
		}
		return fmt.Errorf("erro ao registrar resgate: %w", err)
	}
	return nil
}

// FindByID implementa sale.Repository.FindByID
func (r *SaleRepository) FindByID(ctx context.Context, id string) (*sale.Sale, error) {
	return r.findOne(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// FindByAppointment implementa sale.Repository.FindByAppointment
func (r *SaleRepository) FindByAppointment(ctx context.Context, appointmentID string) (*sale.Sale, error) {
	return r.findOne(ctx, `SELECT `+saleColumns+` FROM sales WHERE appointment_id = $1`, appointmentID)
}

func (r *SaleRepository) findOne(ctx context.Context, query, arg string) (*sale.Sale, error) {
	var s sale.Sale
	var notes *string
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&s.ID, &s.AppointmentID, &s.BarberID, &s.CustomerID, &s.CustomerName, &s.Subtotal,
		&s.Discount, &s.FinalTotal, &s.IsFreeCutRedemption, &s.PaymentMethod, &notes, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, sale.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar venda: %w", err)
	}
	s.Notes = deref(notes)

	items, err := r.listItems(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return &s, nil
}

func (r *SaleRepository) listItems(ctx context.Context, saleID string) ([]sale.Item, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, sale_id, kind, reference_id, name, quantity, unit_price, line_subtotal
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY position ASC`,
		saleID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar itens da venda: %w", err)
	}
	defer rows.Close()

	items := []sale.Item{}
	for rows.Next() {
		var it sale.Item
		if err := rows.Scan(&it.ID, &it.SaleID, &it.Kind, &it.ReferenceID, &it.Name, &it.Quantity, &it.UnitPrice, &it.LineSubtotal); err != nil {
			return nil, fmt.Errorf("erro ao ler item da venda: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar itens da venda: %w", err)
	}
	return items, nil
}

// FindRedemptionBySale implementa sale.Repository.FindRedemptionBySale
func (r *SaleRepository) FindRedemptionBySale(ctx context.Context, saleID string) (*sale.Redemption, error) {
	var red sale.Redemption
	err := r.db.QueryRow(ctx,
		`SELECT id, customer_id, sale_id, appointment_id, original_amount,
			discount_amount, final_amount, created_at
		FROM free_cut_redemptions
		WHERE sale_id = $1`,
		saleID).Scan(&red.ID, &red.CustomerID, &red.SaleID, &red.AppointmentID, &red.OriginalAmount,
		&red.DiscountAmount, &red.FinalAmount, &red.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, apperror.NotFound("resgate não encontrado para a venda %s", saleID)
		}
		return nil, fmt.Errorf("erro ao buscar resgate: %w", err)
	}
	return &red, nil
}

var _ sale.Repository = (*SaleRepository)(nil)
