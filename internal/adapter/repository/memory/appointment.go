package memory

import (
	"context"
	"sort"
	"time"

	"github.com/hugohenrick/barbearia-api/internal/domain/appointment"
)

// AppointmentRepository implementa appointment.Repository em memória
type AppointmentRepository struct {
	v view
}

// Create implementa appointment.Repository.Create
func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	return r.v.run(func(d *data) error {
		if a.Customer.ID != nil && a.IsActive() {
			day := a.BookingDay()
			for _, other := range d.appointments {
				if !sameActiveCustomer(other, *a.Customer.ID) {
					continue
				}
				if other.BookingDay().Equal(day) {
					return appointment.ErrDuplicateBooking
				}
				if a.WantsFreeCutRedemption && other.WantsFreeCutRedemption {
					return appointment.ErrDuplicateFreeCut
				}
			}
		}
		d.appointments[a.ID] = a.Clone()
		return nil
	})
}

func sameActiveCustomer(a *appointment.Appointment, customerID string) bool {
	return a.Customer.ID != nil && *a.Customer.ID == customerID && a.IsActive()
}

// FindByID implementa appointment.Repository.FindByID
func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*appointment.Appointment, error) {
	var found *appointment.Appointment
	err := r.v.run(func(d *data) error {
		a, ok := d.appointments[id]
		if !ok {
			return appointment.ErrNotFound
		}
		found = a.Clone()
		return nil
	})
	return found, err
}

// FindByIDForUpdate implementa appointment.Repository.FindByIDForUpdate.
// Em memória a transação já detém o lock global.
func (r *AppointmentRepository) FindByIDForUpdate(ctx context.Context, id string) (*appointment.Appointment, error) {
	return r.FindByID(ctx, id)
}

// ListReservedSlots implementa appointment.Repository.ListReservedSlots
func (r *AppointmentRepository) ListReservedSlots(ctx context.Context, barberID string, from, to time.Time) ([]time.Time, error) {
	slots := []time.Time{}
	err := r.v.run(func(d *data) error {
		for _, a := range d.appointments {
			if a.BarberID == barberID && a.IsActive() && inRange(a.ScheduledAt, from, to) {
				slots = append(slots, a.ScheduledAt)
			}
		}
		return nil
	})
	sort.Slice(slots, func(i, j int) bool { return slots[i].Before(slots[j]) })
	return slots, err
}

// ExistsActiveForCustomer implementa appointment.Repository.ExistsActiveForCustomer
func (r *AppointmentRepository) ExistsActiveForCustomer(ctx context.Context, customerID string, from, to time.Time) (bool, error) {
	exists := false
	err := r.v.run(func(d *data) error {
		for _, a := range d.appointments {
			if sameActiveCustomer(a, customerID) && inRange(a.ScheduledAt, from, to) {
				exists = true
				break
			}
		}
		return nil
	})
	return exists, err
}

// ExistsActiveFreeCutIntent implementa appointment.Repository.ExistsActiveFreeCutIntent
func (r *AppointmentRepository) ExistsActiveFreeCutIntent(ctx context.Context, customerID string) (bool, error) {
	exists := false
	err := r.v.run(func(d *data) error {
		for _, a := range d.appointments {
			if sameActiveCustomer(a, customerID) && a.WantsFreeCutRedemption {
				exists = true
				break
			}
		}
		return nil
	})
	return exists, err
}

// NextQueuePosition implementa appointment.Repository.NextQueuePosition
func (r *AppointmentRepository) NextQueuePosition(ctx context.Context, barberID string) (int, error) {
	waiting := 0
	err := r.v.run(func(d *data) error {
		for _, a := range d.appointments {
			if a.BarberID == barberID && a.Status == appointment.StatusWaiting {
				waiting++
			}
		}
		return nil
	})
	return waiting + 1, err
}

// UpdateState implementa appointment.Repository.UpdateState
func (r *AppointmentRepository) UpdateState(ctx context.Context, a *appointment.Appointment, expected appointment.Status) error {
	return r.v.run(func(d *data) error {
		current, ok := d.appointments[a.ID]
		if !ok {
			return appointment.ErrNotFound
		}
		if current.Status != expected || current.SaleGenerated {
			return appointment.ErrStaleState
		}
		d.appointments[a.ID] = a.Clone()
		return nil
	})
}

// MarkCompleted implementa appointment.Repository.MarkCompleted
func (r *AppointmentRepository) MarkCompleted(ctx context.Context, id string, endedAt time.Time) (*appointment.Appointment, error) {
	var updated *appointment.Appointment
	err := r.v.run(func(d *data) error {
		current, ok := d.appointments[id]
		if !ok {
			return appointment.ErrNotFound
		}
		if current.SaleGenerated || current.Status != appointment.StatusInChair {
			return appointment.ErrSaleAlreadyGenerated
		}
		next := current.Clone()
		if err := next.Complete(endedAt); err != nil {
			return err
		}
		d.appointments[id] = next
		updated = next.Clone()
		return nil
	})
	return updated, err
}

// ListAgenda implementa appointment.Repository.ListAgenda
func (r *AppointmentRepository) ListAgenda(ctx context.Context, barberID string, from, to time.Time) ([]*appointment.AgendaEntry, error) {
	entries := []*appointment.AgendaEntry{}
	err := r.v.run(func(d *data) error {
		for _, a := range d.appointments {
			if a.BarberID != barberID || !inRange(a.ScheduledAt, from, to) {
				continue
			}
			entry := &appointment.AgendaEntry{Appointment: a.Clone()}
			if svc, ok := d.services[a.ServiceID]; ok {
				entry.Service = &appointment.ServiceSummary{
					ID:              svc.ID,
					Name:            svc.Name,
					Price:           svc.Price,
					DurationMinutes: svc.DurationMinutes,
				}
			}
			for _, s := range d.sales {
				if s.AppointmentID == a.ID {
					entry.Sale = &appointment.SaleSummary{
						ID:                  s.ID,
						Subtotal:            s.Subtotal,
						Discount:            s.Discount,
						FinalTotal:          s.FinalTotal,
						IsFreeCutRedemption: s.IsFreeCutRedemption,
						PaymentMethod:       string(s.PaymentMethod),
					}
					break
				}
			}
			entries = append(entries, entry)
		}
		return nil
	})
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Appointment.ScheduledAt.Before(entries[j].Appointment.ScheduledAt)
	})
	return entries, err
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}
