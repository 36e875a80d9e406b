// Package memory implementa o armazenamento em memória usado em desenvolvimento e testes.
// Todas as transações são serializadas por um único mutex e aplicam as mesmas
// restrições de unicidade do banco.
package memory

import (
	"context"
	"sync"

	"github.com/hugohenrick/barbearia-api/internal/domain/appointment"
	"github.com/hugohenrick/barbearia-api/internal/domain/catalog"
	"github.com/hugohenrick/barbearia-api/internal/domain/customer"
	"github.com/hugohenrick/barbearia-api/internal/domain/loyalty"
	"github.com/hugohenrick/barbearia-api/internal/domain/sale"
	"github.com/hugohenrick/barbearia-api/internal/domain/store"
)

type data struct {
	appointments map[string]*appointment.Appointment
	services     map[string]*catalog.Service
	products     map[string]*catalog.Product
	customers    map[string]*customer.Customer
	ledger       []loyalty.Entry
	sales        map[string]*sale.Sale
	redemptions  map[string]*sale.Redemption
}

func newData() *data {
	return &data{
		appointments: make(map[string]*appointment.Appointment),
		services:     make(map[string]*catalog.Service),
		products:     make(map[string]*catalog.Product),
		customers:    make(map[string]*customer.Customer),
		sales:        make(map[string]*sale.Sale),
		redemptions:  make(map[string]*sale.Redemption),
	}
}

func (d *data) clone() *data {
	c := newData()
	for k, v := range d.appointments {
		c.appointments[k] = v.Clone()
	}
	for k, v := range d.services {
		s := *v
		c.services[k] = &s
	}
	for k, v := range d.products {
		p := *v
		c.products[k] = &p
	}
	for k, v := range d.customers {
		c.customers[k] = v.Clone()
	}
	c.ledger = append([]loyalty.Entry(nil), d.ledger...)
	for k, v := range d.sales {
		c.sales[k] = v.Clone()
	}
	for k, v := range d.redemptions {
		r := *v
		c.redemptions[k] = &r
	}
	return c
}

// view dá acesso aos dados; o Store trava o mutex a cada chamada, a transação já o detém
type view interface {
	run(fn func(d *data) error) error
}

type repositories struct {
	appointments *AppointmentRepository
	catalog      *CatalogRepository
	customers    *CustomerRepository
	sales        *SaleRepository
}

func newRepositories(v view) repositories {
	return repositories{
		appointments: &AppointmentRepository{v: v},
		catalog:      &CatalogRepository{v: v},
		customers:    &CustomerRepository{v: v},
		sales:        &SaleRepository{v: v},
	}
}

func (r repositories) Appointments() appointment.Repository { return r.appointments }
func (r repositories) Catalog() catalog.Repository         { return r.catalog }
func (r repositories) Customers() customer.Repository      { return r.customers }
func (r repositories) Sales() sale.Repository              { return r.sales }

// Store implementa store.Store em memória
type Store struct {
	repositories
	mu sync.Mutex
	d  *data
}

// NewStore cria um armazenamento em memória vazio
func NewStore() *Store {
	s := &Store{d: newData()}
	s.repositories = newRepositories(s)
	return s
}

func (s *Store) run(fn func(d *data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.d)
}

// InTx executa fn sobre uma cópia dos dados, publicada apenas se fn retornar nil
func (s *Store) InTx(ctx context.Context, fn func(tx store.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	t := newTx(s.d.clone())
	if err := fn(t); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.d = t.d
	return nil
}

// SeedService cadastra um serviço no catálogo
func (s *Store) SeedService(svc catalog.Service) {
	_ = s.run(func(d *data) error {
		d.services[svc.ID] = &svc
		return nil
	})
}

// SeedProduct cadastra um produto no catálogo
func (s *Store) SeedProduct(p catalog.Product) {
	_ = s.run(func(d *data) error {
		d.products[p.ID] = &p
		return nil
	})
}

type tx struct {
	repositories
	d *data
}

func newTx(d *data) *tx {
	t := &tx{d: d}
	t.repositories = newRepositories(t)
	return t
}

func (t *tx) run(fn func(d *data) error) error {
	return fn(t.d)
}

// Savepoint executa fn sobre uma cópia dos dados da transação
func (t *tx) Savepoint(ctx context.Context, fn func(tx store.Tx) error) error {
	child := newTx(t.d.clone())
	if err := fn(child); err != nil {
		return err
	}
	t.d = child.d
	return nil
}

var (
	_ store.Store = (*Store)(nil)
	_ store.Tx    = (*tx)(nil)
)
