package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/barbearia-api/internal/domain/appointment"
	"github.com/hugohenrick/barbearia-api/internal/domain/catalog"
	"github.com/hugohenrick/barbearia-api/internal/domain/customer"
	"github.com/hugohenrick/barbearia-api/internal/domain/sale"
	"github.com/hugohenrick/barbearia-api/internal/domain/store"
	"github.com/hugohenrick/barbearia-api/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

type pgRepositories struct {
	appointments *AppointmentRepository
	catalog      *CatalogRepository
	customers    *CustomerRepository
	sales        *SaleRepository
}

func newPgRepositories(db database.DBTX) pgRepositories {
	return pgRepositories{
		appointments: NewAppointmentRepository(db),
		catalog:      NewCatalogRepository(db),
		customers:    NewCustomerRepository(db),
		sales:        NewSaleRepository(db),
	}
}

func (r pgRepositories) Appointments() appointment.Repository { return r.appointments }
func (r pgRepositories) Catalog() catalog.Repository         { return r.catalog }
func (r pgRepositories) Customers() customer.Repository      { return r.customers }
func (r pgRepositories) Sales() sale.Repository              { return r.sales }

// PostgresStore implementa store.Store sobre o pool do PostgreSQL
type PostgresStore struct {
	pgRepositories
	db *database.PostgresDB
}

// NewPostgresStore cria uma nova instância de PostgresStore
func NewPostgresStore(db *database.PostgresDB) *PostgresStore {
	return &PostgresStore{
		pgRepositories: newPgRepositories(db.Pool()),
		db:             db,
	}
}

// InTx implementa store.Store.InTx
func (s *PostgresStore) InTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.db.Transaction(ctx, func(tx pgx.Tx) error {
		return fn(newPgTx(tx))
	})
}

type pgTx struct {
	pgRepositories
	tx pgx.Tx
}

func newPgTx(tx pgx.Tx) *pgTx {
	return &pgTx{pgRepositories: newPgRepositories(tx), tx: tx}
}

// Savepoint usa a transação aninhada do pgx, que emite SAVEPOINT / RELEASE / ROLLBACK TO
func (t *pgTx) Savepoint(ctx context.Context, fn func(tx store.Tx) error) error {
	sp, err := t.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao criar savepoint: %w", err)
	}

	if err := fn(newPgTx(sp)); err != nil {
		if rbErr := sp.Rollback(ctx); rbErr != nil {
			return errors.Join(err, fmt.Errorf("erro ao desfazer savepoint: %w", rbErr))
		}
		return err
	}

	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao liberar savepoint: %w", err)
	}
	return nil
}

var (
	_ store.Store = (*PostgresStore)(nil)
	_ store.Tx    = (*pgTx)(nil)
)
