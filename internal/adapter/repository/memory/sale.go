package memory

import (
	"context"

	"github.com/hugohenrick/barbearia-api/internal/domain/sale"
	"github.com/hugohenrick/barbearia-api/pkg/apperror"
)

// SaleRepository implementa sale.Repository em memória
type SaleRepository struct {
	v view
}

// Create implementa sale.Repository.Create
func (r *SaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	return r.v.run(func(d *data) error {
		for _, existing := range d.sales {
			if existing.AppointmentID == s.AppointmentID {
				return sale.ErrAlreadyExists
			}
		}
		d.sales[s.ID] = s.Clone()
		return nil
	})
}

// CreateRedemption implementa sale.Repository.CreateRedemption
func (r *SaleRepository) CreateRedemption(ctx context.Context, red *sale.Redemption) error {
	return r.v.run(func(d *data) error {
		if _, ok := d.sales[red.SaleID]; !ok {
			return sale.ErrNotFound
		}
		if _, exists := d.redemptions[red.SaleID]; exists {
			return apperror.Conflict("resgate já registrado para a venda %s", red.SaleID)
		}
		cp := *red
		d.redemptions[red.SaleID] = &cp
		return nil
	})
}

// FindByID implementa sale.Repository.FindByID
func (r *SaleRepository) FindByID(ctx context.Context, id string) (*sale.Sale, error) {
	var found *sale.Sale
	err := r.v.run(func(d *data) error {
		s, ok := d.sales[id]
		if !ok {
			return sale.ErrNotFound
		}
		found = s.Clone()
		return nil
	})
	return found, err
}

// FindByAppointment implementa sale.Repository.FindByAppointment
func (r *SaleRepository) FindByAppointment(ctx context.Context, appointmentID string) (*sale.Sale, error) {
	var found *sale.Sale
	err := r.v.run(func(d *data) error {
		for _, s := range d.sales {
			if s.AppointmentID == appointmentID {
				found = s.Clone()
				return nil
			}
		}
		return sale.ErrNotFound
	})
	return found, err
}

// FindRedemptionBySale implementa sale.Repository.FindRedemptionBySale
func (r *SaleRepository) FindRedemptionBySale(ctx context.Context, saleID string) (*sale.Redemption, error) {
	var found *sale.Redemption
	err := r.v.run(func(d *data) error {
		red, ok := d.redemptions[saleID]
		if !ok {
			return apperror.NotFound("resgate não encontrado para a venda %s", saleID)
		}
		cp := *red
		found = &cp
		return nil
	})
	return found, err
}
