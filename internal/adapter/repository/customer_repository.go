package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/barbearia-api/internal/domain/customer"
	"github.com/hugohenrick/barbearia-api/internal/domain/loyalty"
	"github.com/hugohenrick/barbearia-api/internal/infrastructure/database"
	"github.com/hugohenrick/barbearia-api/pkg/apperror"
	"github.com/jackc/pgx/v5"
)

const customerColumns = `
	id, name, phone, email, paid_cuts_completed, free_cut_credits_available,
	experience_points, current_level, total_visits, total_spend, last_visit_at,
	created_at, updated_at`

// CustomerRepository implementa a interface customer.Repository
type CustomerRepository struct {
	db database.DBTX
}

// NewCustomerRepository cria uma nova instância de CustomerRepository
func NewCustomerRepository(db database.DBTX) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create implementa customer.Repository.Create
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	level := loyalty.LevelFor(c.Loyalty.ExperiencePoints)
	_, err := r.db.Exec(ctx,
		`INSERT INTO customers (
			id, name, phone, email, paid_cuts_completed, free_cut_credits_available,
			experience_points, current_level, total_visits, total_spend, last_visit_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.Name, nullable(c.Phone), nullable(c.Email),
		c.Loyalty.PaidCutsCompleted, c.Loyalty.FreeCutCreditsAvailable,
		c.Loyalty.ExperiencePoints, level, c.Loyalty.TotalVisits,
		c.Loyalty.TotalSpend, c.Loyalty.LastVisitAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apperror.Conflict("cliente %s já cadastrado", c.ID).Wrap(err)
		}
		return fmt.Errorf("erro ao criar cliente: %w", err)
	}
	return nil
}

func scanCustomer(row scanner) (*customer.Customer, error) {
	var c customer.Customer
	var phone, email *string
	err := row.Scan(
		&c.ID, &c.Name, &phone, &email, &c.Loyalty.PaidCutsCompleted,
		&c.Loyalty.FreeCutCreditsAvailable, &c.Loyalty.ExperiencePoints,
		&c.Loyalty.CurrentLevel, &c.Loyalty.TotalVisits, &c.Loyalty.TotalSpend,
		&c.Loyalty.LastVisitAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Phone = deref(phone)
	c.Email = deref(email)
	return &c, nil
}

// FindByID implementa customer.Repository.FindByID
func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	return r.findOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

// FindByIDForUpdate implementa customer.Repository.FindByIDForUpdate
func (r *CustomerRepository) FindByIDForUpdate(ctx context.Context, id string) (*customer.Customer, error) {
	return r.findOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1 FOR UPDATE`, id)
}

func (r *CustomerRepository) findOne(ctx context.Context, query, id string) (*customer.Customer, error) {
	c, err := scanCustomer(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, customer.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}
	return c, nil
}

// ApplyLoyalty implementa customer.Repository.ApplyLoyalty.
// Os contadores mudam por deltas atômicos; o nível é derivado da experiência resultante.
func (r *CustomerRepository) ApplyLoyalty(ctx context.Context, id string, delta loyalty.Delta, entries []loyalty.Entry) error {
	var lastVisit any
	if delta.Visits > 0 {
		lastVisit = delta.At
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE customers SET
			paid_cuts_completed = paid_cuts_completed + $2,
			free_cut_credits_available = free_cut_credits_available + $3,
			experience_points = experience_points + $4,
			current_level = (experience_points + $4) / 100 + 1,
			total_visits = total_visits + $5,
			total_spend = total_spend + $6,
			last_visit_at = GREATEST(last_visit_at, $7::timestamptz),
			updated_at = now()
		WHERE id = $1`,
		id, delta.PaidCuts, delta.Credits, delta.Experience, delta.Visits, delta.Spend, lastVisit)
	if err != nil {
		return fmt.Errorf("erro ao atualizar fidelidade do cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return customer.ErrNotFound
	}

	for _, e := range entries {
		_, err := r.db.Exec(ctx,
			`INSERT INTO loyalty_ledger (
				id, customer_id, appointment_id, sale_id, kind, points, amount, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			e.ID, e.CustomerID, e.AppointmentID, e.SaleID, e.Kind, e.Points, e.Amount, e.CreatedAt)
		if err != nil {
			return fmt.Errorf("erro ao gravar lançamento de fidelidade: %w", err)
		}
	}
	return nil
}

// ListLedger implementa customer.Repository.ListLedger
func (r *CustomerRepository) ListLedger(ctx context.Context, id string) ([]loyalty.Entry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, customer_id, appointment_id, sale_id, kind, points, amount, created_at
		FROM loyalty_ledger
		WHERE customer_id = $1
		ORDER BY created_at ASC, id ASC`,
		id)
	if err != nil {
		if isInvalidText(err) {
			return []loyalty.Entry{}, nil
		}
		return nil, fmt.Errorf("erro ao listar lançamentos de fidelidade: %w", err)
	}
	defer rows.Close()

	entries := []loyalty.Entry{}
	for rows.Next() {
		var e loyalty.Entry
		if err := rows.Scan(&e.ID, &e.CustomerID, &e.AppointmentID, &e.SaleID, &e.Kind, &e.Points, &e.Amount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler lançamento de fidelidade: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar lançamentos de fidelidade: %w", err)
	}
	return entries, nil
}

var _ customer.Repository = (*CustomerRepository)(nil)
