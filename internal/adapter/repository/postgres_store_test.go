package repository_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/barbearia-api/internal/adapter/repository"
	"github.com/hugohenrick/barbearia-api/internal/domain/appointment"
	"github.com/hugohenrick/barbearia-api/internal/domain/catalog"
	"github.com/hugohenrick/barbearia-api/internal/domain/customer"
	"github.com/hugohenrick/barbearia-api/internal/domain/loyalty"
	"github.com/hugohenrick/barbearia-api/internal/infrastructure/database"
	"github.com/hugohenrick/barbearia-api/internal/service/checkout"
	"github.com/hugohenrick/barbearia-api/internal/service/lifecycle"
	"github.com/hugohenrick/barbearia-api/pkg/apperror"
	"github.com/hugohenrick/barbearia-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pgFixture struct {
	store     *repository.PostgresStore
	catalog   *repository.CatalogRepository
	customers *repository.CustomerRepository
	lifecycle *lifecycle.Service
	checkout  *checkout.Service
	barberID  string
	serviceID string
	productID string
}

// setupPostgres aplica as migrações em TEST_DATABASE_URL; sem banco acessível o teste é pulado
func setupPostgres(t *testing.T) *pgFixture {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL não definida")
	}

	log := logger.NewNop()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := database.NewPostgresDB(ctx, &database.PostgresConfig{URL: url, MaxConnections: 10}, log)
	if err != nil {
		t.Skipf("PostgreSQL indisponível: %v", err)
	}
	t.Cleanup(db.Close)
	require.NoError(t, database.RunMigrations(url, log))

	f := &pgFixture{
		store:     repository.NewPostgresStore(db),
		catalog:   repository.NewCatalogRepository(db.Pool()),
		customers: repository.NewCustomerRepository(db.Pool()),
		barberID:  "barber-" + uuid.NewString()[:8],
		serviceID: uuid.NewString(),
		productID: uuid.NewString(),
	}
	f.lifecycle = lifecycle.NewService(f.store, log)
	f.checkout = checkout.NewService(f.store, log)

	require.NoError(t, f.catalog.CreateService(context.Background(), &catalog.Service{
		ID: f.serviceID, Name: "Corte", Price: decimal.NewFromInt(20000), DurationMinutes: 30, Active: true,
	}))
	require.NoError(t, f.catalog.CreateProduct(context.Background(), &catalog.Product{
		ID: f.productID, Name: "Pomada", Price: decimal.NewFromInt(3500), Stock: 2, Active: true,
	}))
	return f
}

func (f *pgFixture) newCustomer(t *testing.T, counters loyalty.Counters) string {
	t.Helper()
	id := uuid.NewString()
	require.NoError(t, f.customers.Create(context.Background(), &customer.Customer{ID: id, Name: "Cliente", Loyalty: counters}))
	return id
}

func (f *pgFixture) seated(t *testing.T, customerID string, at time.Time, freeCut bool) *appointment.Appointment {
	t.Helper()
	ctx := context.Background()
	a, err := f.lifecycle.Create(ctx, lifecycle.CreateInput{
		BarberID:               f.barberID,
		ServiceID:              f.serviceID,
		ScheduledAt:            at,
		Customer:               appointment.Customer{ID: &customerID, Name: "Cliente"},
		WantsFreeCutRedemption: freeCut,
	})
	require.NoError(t, err)
	_, err = f.lifecycle.Enqueue(ctx, a.ID, f.barberID)
	require.NoError(t, err)
	a, err = f.lifecycle.StartService(ctx, a.ID, f.barberID)
	require.NoError(t, err)
	return a
}

func TestPostgresFinalizeWithRedemption(t *testing.T) {
	f := setupPostgres(t)
	ctx := context.Background()
	customerID := f.newCustomer(t, loyalty.Counters{
		PaidCutsCompleted: 10, FreeCutCreditsAvailable: 1, ExperiencePoints: 100, CurrentLevel: 2,
	})
	a := f.seated(t, customerID, time.Date(2026, 10, 16, 14, 0, 0, 0, time.UTC), true)

	res, err := f.checkout.Finalize(ctx, checkout.FinalizeInput{
		AppointmentID: a.ID,
		BarberID:      f.barberID,
		PaymentMethod: "card",
		Products:      []checkout.LineRequest{{ID: f.productID, Quantity: 5}},
	})
	require.NoError(t, err)

	assert.True(t, res.FreeCutRedeemed)
	assert.True(t, decimal.NewFromInt(37500).Equal(res.Subtotal))
	assert.True(t, decimal.NewFromInt(15000).Equal(res.Discount))
	assert.True(t, decimal.NewFromInt(22500).Equal(res.FinalTotal))
	assert.Equal(t, appointment.StatusCompleted, res.Appointment.Status)

	s, err := f.store.Sales().FindByID(ctx, res.SaleID)
	require.NoError(t, err)
	require.Len(t, s.Items, 2)
	assert.Equal(t, catalog.KindService, s.Items[0].Kind)
	assert.Equal(t, catalog.KindProduct, s.Items[1].Kind)

	red, err := f.store.Sales().FindRedemptionBySale(ctx, res.SaleID)
	require.NoError(t, err)
	assert.Equal(t, customerID, red.CustomerID)

	c, err := f.customers.FindByID(ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Loyalty.FreeCutCreditsAvailable)
	assert.Equal(t, 10, c.Loyalty.PaidCutsCompleted)
	assert.Equal(t, 110, c.Loyalty.ExperiencePoints)
	assert.Equal(t, 2, c.Loyalty.CurrentLevel)

	p, err := f.catalog.FindProduct(ctx, f.productID)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)

	_, err = f.checkout.Finalize(ctx, checkout.FinalizeInput{AppointmentID: a.ID, BarberID: f.barberID, PaymentMethod: "cash"})
	assert.ErrorIs(t, err, appointment.ErrSaleAlreadyGenerated)
}

func TestPostgresDuplicateBookingIsRejectedByIndex(t *testing.T) {
	f := setupPostgres(t)
	ctx := context.Background()
	customerID := f.newCustomer(t, loyalty.Counters{CurrentLevel: 1})
	at := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

	first, err := appointment.NewAppointment(f.barberID, f.serviceID, at, appointment.Customer{ID: &customerID, Name: "Cliente"}, false)
	require.NoError(t, err)
	require.NoError(t, f.store.Appointments().Create(ctx, first))

	// insere direto no repositório, sem passar pelo guard
	second, err := appointment.NewAppointment(f.barberID, f.serviceID, at.Add(3*time.Hour), appointment.Customer{ID: &customerID, Name: "Cliente"}, false)
	require.NoError(t, err)
	err = f.store.Appointments().Create(ctx, second)
	assert.ErrorIs(t, err, appointment.ErrDuplicateBooking)
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestPostgresConcurrentEnqueueAssignsDistinctPositions(t *testing.T) {
	f := setupPostgres(t)
	ctx := context.Background()
	const n = 5

	ids := make([]string, n)
	for i := range ids {
		a, err := f.lifecycle.Create(ctx, lifecycle.CreateInput{
			BarberID:    f.barberID,
			ServiceID:   f.serviceID,
			ScheduledAt: time.Date(2026, 10, 18, 9+i, 0, 0, 0, time.UTC),
			Customer:    appointment.Customer{Name: "Avulso"},
		})
		require.NoError(t, err)
		ids[i] = a.ID
	}

	positions := make([]int, n)
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			a, err := f.lifecycle.Enqueue(ctx, id, f.barberID)
			if assert.NoError(t, err) {
				positions[i] = *a.QueuePosition
			}
		}(i, id)
	}
	wg.Wait()

	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5}, positions)
}
