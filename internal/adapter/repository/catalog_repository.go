package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/barbearia-api/internal/domain/catalog"
	"github.com/hugohenrick/barbearia-api/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

// CatalogRepository implementa a interface catalog.Repository
type CatalogRepository struct {
	db database.DBTX
}

// NewCatalogRepository cria uma nova instância de CatalogRepository
func NewCatalogRepository(db database.DBTX) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// FindService implementa catalog.Repository.FindService
func (r *CatalogRepository) FindService(ctx context.Context, id string) (*catalog.Service, error) {
	var s catalog.Service
	err := r.db.QueryRow(ctx,
		`SELECT id, name, price, duration_minutes, active FROM services WHERE id = $1`,
		id).Scan(&s.ID, &s.Name, &s.Price, &s.DurationMinutes, &s.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, catalog.ErrServiceNotFound
		}
		return nil, fmt.Errorf("erro ao buscar serviço: %w", err)
	}
	return &s, nil
}

// FindProduct implementa catalog.Repository.FindProduct
func (r *CatalogRepository) FindProduct(ctx context.Context, id string) (*catalog.Product, error) {
	var p catalog.Product
	err := r.db.QueryRow(ctx,
		`SELECT id, name, price, stock, active FROM products WHERE id = $1`,
		id).Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, fmt.Errorf("erro ao buscar produto: %w", err)
	}
	return &p, nil
}

// ListServices implementa catalog.Repository.ListServices
func (r *CatalogRepository) ListServices(ctx context.Context, onlyActive bool) ([]*catalog.Service, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, price, duration_minutes, active FROM services
		WHERE active OR NOT $1
		ORDER BY name ASC`,
		onlyActive)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar serviços: %w", err)
	}
	defer rows.Close()

	services := []*catalog.Service{}
	for rows.Next() {
		var s catalog.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Price, &s.DurationMinutes, &s.Active); err != nil {
			return nil, fmt.Errorf("erro ao ler serviço: %w", err)
		}
		services = append(services, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar serviços: %w", err)
	}
	return services, nil
}

// ListProducts implementa catalog.Repository.ListProducts
func (r *CatalogRepository) ListProducts(ctx context.Context, onlyActive bool) ([]*catalog.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, price, stock, active FROM products
		WHERE active OR NOT $1
		ORDER BY name ASC`,
		onlyActive)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos: %w", err)
	}
	defer rows.Close()

	products := []*catalog.Product{}
	for rows.Next() {
		var p catalog.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.Active); err != nil {
			return nil, fmt.Errorf("erro ao ler produto: %w", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar produtos: %w", err)
	}
	return products, nil
}

// DecrementStock implementa catalog.Repository.DecrementStock com delta atômico e piso zero
func (r *CatalogRepository) DecrementStock(ctx context.Context, id string, quantity int) (int, error) {
	var remaining int
	err := r.db.QueryRow(ctx,
		`UPDATE products SET stock = GREATEST(stock - $2, 0), updated_at = now()
		WHERE id = $1
		RETURNING stock`,
		id, quantity).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return 0, catalog.ErrProductNotFound
		}
		return 0, fmt.Errorf("erro ao baixar estoque: %w", err)
	}
	return remaining, nil
}

// CreateService cadastra um serviço; usado por seeds e testes de integração
func (r *CatalogRepository) CreateService(ctx context.Context, s *catalog.Service) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO services (id, name, price, duration_minutes, active) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.Name, s.Price, s.DurationMinutes, s.Active)
	if err != nil {
		return fmt.Errorf("erro ao criar serviço: %w", err)
	}
	return nil
}

// CreateProduct cadastra um produto; usado por seeds e testes de integração
func (r *CatalogRepository) CreateProduct(ctx context.Context, p *catalog.Product) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO products (id, name, price, stock, active) VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Name, p.Price, p.Stock, p.Active)
	if err != nil {
		return fmt.Errorf("erro ao criar produto: %w", err)
	}
	return nil
}

var _ catalog.Repository = (*CatalogRepository)(nil)
