package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hugohenrick/barbearia-api/internal/domain/appointment"
	"github.com/hugohenrick/barbearia-api/internal/domain/catalog"
	"github.com/hugohenrick/barbearia-api/internal/domain/store"
	"github.com/hugohenrick/barbearia-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func book(t *testing.T, customerID string, at time.Time, freeCut bool) *appointment.Appointment {
	t.Helper()
	a, err := appointment.NewAppointment("b1", "s1", at, appointment.Customer{ID: &customerID, Name: "Cliente"}, freeCut)
	require.NoError(t, err)
	return a
}

func TestCreateRejectsSameDayActiveBooking(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	at := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.Appointments().Create(ctx, book(t, "c1", at, false)))

	err := s.Appointments().Create(ctx, book(t, "c1", at.Add(5*time.Hour), false))
	assert.ErrorIs(t, err, appointment.ErrDuplicateBooking)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	assert.NoError(t, s.Appointments().Create(ctx, book(t, "c1", at.AddDate(0, 0, 1), false)))
}

func TestCreateRejectsSecondFreeCutIntent(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	at := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.Appointments().Create(ctx, book(t, "c1", at, true)))

	err := s.Appointments().Create(ctx, book(t, "c1", at.AddDate(0, 0, 3), true))
	assert.ErrorIs(t, err, appointment.ErrDuplicateFreeCut)
}

func TestInTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := book(t, "c1", time.Now(), false)
	boom := errors.New("boom")

	err := s.InTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Appointments().Create(ctx, a))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	_, err = s.Appointments().FindByID(ctx, a.ID)
	assert.ErrorIs(t, err, appointment.ErrNotFound)
}

func TestSavepointDiscardsOnlyInnerWrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	s.SeedProduct(catalog.Product{ID: "p1", Name: "Pomada", Price: decimal.NewFromInt(3500), Stock: 4, Active: true})
	a := book(t, "c1", time.Now(), false)

	err := s.InTx(ctx, func(tx store.Tx) error {
		if err := tx.Appointments().Create(ctx, a); err != nil {
			return err
		}
		spErr := tx.Savepoint(ctx, func(sp store.Tx) error {
			if _, err := sp.Catalog().DecrementStock(ctx, "p1", 3); err != nil {
				return err
			}
			return errors.New("falha simulada")
		})
		assert.Error(t, spErr)
		return nil
	})
	require.NoError(t, err)

	_, err = s.Appointments().FindByID(ctx, a.ID)
	assert.NoError(t, err)
	p, err := s.Catalog().FindProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 4, p.Stock)
}

func TestDecrementStockFloorsAtZero(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	s.SeedProduct(catalog.Product{ID: "p1", Name: "Pomada", Stock: 2, Active: true})

	remaining, err := s.Catalog().DecrementStock(ctx, "p1", 5)

	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
}

func TestMarkCompletedOnlyOnce(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := book(t, "c1", time.Now(), false)
	now := time.Now().UTC()
	_, _ = a.Enqueue(1, now)
	_, _ = a.StartService(now)
	require.NoError(t, s.Appointments().Create(ctx, a))

	done, err := s.Appointments().MarkCompleted(ctx, a.ID, now)
	require.NoError(t, err)
	assert.Equal(t, appointment.StatusCompleted, done.Status)
	assert.True(t, done.SaleGenerated)

	_, err = s.Appointments().MarkCompleted(ctx, a.ID, now)
	assert.ErrorIs(t, err, appointment.ErrSaleAlreadyGenerated)
}

func TestUpdateStateDetectsStaleWrite(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := book(t, "c1", time.Now(), false)
	require.NoError(t, s.Appointments().Create(ctx, a))

	first := a.Clone()
	_, _ = first.Cancel("", time.Now())
	require.NoError(t, s.Appointments().UpdateState(ctx, first, appointment.StatusScheduled))

	second := a.Clone()
	_, _ = second.MarkNoShow(time.Now())
	err := s.Appointments().UpdateState(ctx, second, appointment.StatusScheduled)
	assert.ErrorIs(t, err, appointment.ErrStaleState)
}

func TestReservedSlotsAreSortedAndActiveOnly(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	day := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

	late := book(t, "c1", day.Add(16*time.Hour), false)
	early := book(t, "c2", day.Add(9*time.Hour), false)
	cancelled := book(t, "c3", day.Add(11*time.Hour), false)
	_, _ = cancelled.Cancel("", time.Now())
	for _, a := range []*appointment.Appointment{late, early, cancelled} {
		require.NoError(t, s.Appointments().Create(ctx, a))
	}

	slots, err := s.Appointments().ListReservedSlots(ctx, "b1", day, day.AddDate(0, 0, 1))

	require.NoError(t, err)
	assert.Equal(t, []time.Time{early.ScheduledAt, late.ScheduledAt}, slots)
}
