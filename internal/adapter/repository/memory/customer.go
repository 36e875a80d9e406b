package memory

import (
	"context"
	"time"

	"github.com/hugohenrick/barbearia-api/internal/domain/customer"
	"github.com/hugohenrick/barbearia-api/internal/domain/loyalty"
	"github.com/hugohenrick/barbearia-api/pkg/apperror"
)

// CustomerRepository implementa customer.Repository em memória
type CustomerRepository struct {
	v view
}

// Create implementa customer.Repository.Create
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	return r.v.run(func(d *data) error {
		if _, exists := d.customers[c.ID]; exists {
			return apperror.Conflict("cliente %s já cadastrado", c.ID)
		}
		cp := c.Clone()
		if cp.Loyalty.CurrentLevel < 1 {
			cp.Loyalty.CurrentLevel = loyalty.LevelFor(cp.Loyalty.ExperiencePoints)
		}
		d.customers[c.ID] = cp
		return nil
	})
}

// FindByID implementa customer.Repository.FindByID
func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	var found *customer.Customer
	err := r.v.run(func(d *data) error {
		c, ok := d.customers[id]
		if !ok {
			return customer.ErrNotFound
		}
		found = c.Clone()
		return nil
	})
	return found, err
}

// FindByIDForUpdate implementa customer.Repository.FindByIDForUpdate
func (r *CustomerRepository) FindByIDForUpdate(ctx context.Context, id string) (*customer.Customer, error) {
	return r.FindByID(ctx, id)
}

// ApplyLoyalty implementa customer.Repository.ApplyLoyalty
func (r *CustomerRepository) ApplyLoyalty(ctx context.Context, id string, delta loyalty.Delta, entries []loyalty.Entry) error {
	return r.v.run(func(d *data) error {
		c, ok := d.customers[id]
		if !ok {
			return customer.ErrNotFound
		}
		c.Loyalty = c.Loyalty.Add(delta)
		c.UpdatedAt = time.Now().UTC()
		d.ledger = append(d.ledger, entries...)
		return nil
	})
}

// ListLedger implementa customer.Repository.ListLedger
func (r *CustomerRepository) ListLedger(ctx context.Context, id string) ([]loyalty.Entry, error) {
	entries := []loyalty.Entry{}
	err := r.v.run(func(d *data) error {
		for _, e := range d.ledger {
			if e.CustomerID == id {
				entries = append(entries, e)
			}
		}
		return nil
	})
	return entries, err
}
