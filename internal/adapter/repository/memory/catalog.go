package memory

import (
	"context"
	"sort"

	"github.com/hugohenrick/barbearia-api/internal/domain/catalog"
)

// CatalogRepository implementa catalog.Repository em memória
type CatalogRepository struct {
	v view
}

// FindService implementa catalog.Repository.FindService
func (r *CatalogRepository) FindService(ctx context.Context, id string) (*catalog.Service, error) {
	var found *catalog.Service
	err := r.v.run(func(d *data) error {
		s, ok := d.services[id]
		if !ok {
			return catalog.ErrServiceNotFound
		}
		cp := *s
		found = &cp
		return nil
	})
	return found, err
}

// FindProduct implementa catalog.Repository.FindProduct
func (r *CatalogRepository) FindProduct(ctx context.Context, id string) (*catalog.Product, error) {
	var found *catalog.Product
	err := r.v.run(func(d *data) error {
		p, ok := d.products[id]
		if !ok {
			return catalog.ErrProductNotFound
		}
		cp := *p
		found = &cp
		return nil
	})
	return found, err
}

// ListServices implementa catalog.Repository.ListServices
func (r *CatalogRepository) ListServices(ctx context.Context, onlyActive bool) ([]*catalog.Service, error) {
	services := []*catalog.Service{}
	err := r.v.run(func(d *data) error {
		for _, s := range d.services {
			if onlyActive && !s.Active {
				continue
			}
			cp := *s
			services = append(services, &cp)
		}
		return nil
	})
	sort.Slice(services, func(i, j int) bool { return services[i].Name < services[j].Name })
	return services, err
}

// ListProducts implementa catalog.Repository.ListProducts
func (r *CatalogRepository) ListProducts(ctx context.Context, onlyActive bool) ([]*catalog.Product, error) {
	products := []*catalog.Product{}
	err := r.v.run(func(d *data) error {
		for _, p := range d.products {
			if onlyActive && !p.Active {
				continue
			}
			cp := *p
			products = append(products, &cp)
		}
		return nil
	})
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, err
}

// DecrementStock implementa catalog.Repository.DecrementStock
func (r *CatalogRepository) DecrementStock(ctx context.Context, id string, quantity int) (int, error) {
	remaining := 0
	err := r.v.run(func(d *data) error {
		p, ok := d.products[id]
		if !ok {
			return catalog.ErrProductNotFound
		}
		p.Stock = catalog.RemainingStock(p.Stock, quantity)
		remaining = p.Stock
		return nil
	})
	return remaining, err
}
