package appointment

import (
	"errors"
	"testing"
	"time"

	"github.com/hugohenrick/barbearia-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduled(t *testing.T) *Appointment {
	t.Helper()
	customerID := "c1"
	a, err := NewAppointment("b1", "s1", time.Date(2026, 10, 16, 14, 30, 0, 0, time.UTC),
		Customer{ID: &customerID, Name: "João"}, false)
	require.NoError(t, err)
	return a
}

func TestNewAppointmentValidation(t *testing.T) {
	at := time.Now()
	cases := []struct {
		name     string
		barber   string
		service  string
		at       time.Time
		customer Customer
		freeCut  bool
		want     error
	}{
		{"sem barbeiro", "", "s1", at, Customer{Name: "Ana"}, false, ErrEmptyBarber},
		{"sem serviço", "b1", " ", at, Customer{Name: "Ana"}, false, ErrEmptyService},
		{"sem horário", "b1", "s1", time.Time{}, Customer{Name: "Ana"}, false, ErrEmptyScheduledAt},
		{"sem nome", "b1", "s1", at, Customer{}, false, ErrEmptyCustomerName},
		{"resgate avulso", "b1", "s1", at, Customer{Name: "Ana"}, true, ErrFreeCutNeedsCustomer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewAppointment(tc.barber, tc.service, tc.at, tc.customer, tc.freeCut)
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, errors.Is(err, apperror.ErrValidation))
		})
	}
}

func TestNewAppointmentDropsBlankCustomerID(t *testing.T) {
	blank := "  "
	a, err := NewAppointment("b1", "s1", time.Now(), Customer{ID: &blank, Name: "Avulso"}, false)
	require.NoError(t, err)

	assert.Nil(t, a.Customer.ID)
	assert.Equal(t, StatusScheduled, a.Status)
	assert.Equal(t, StageQueue, a.QueueStage)
}

func TestDayBoundsUsesUTC(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	late := time.Date(2026, 10, 16, 22, 0, 0, 0, loc) // 01:00 UTC do dia 17

	start, end := DayBounds(late)

	assert.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), end)
}

func TestEnqueueIsIdempotent(t *testing.T) {
	a := newScheduled(t)
	now := time.Now().UTC()

	changed, err := a.Enqueue(3, now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 3, *a.QueuePosition)
	assert.Equal(t, StatusWaiting, a.Status)
	assert.Equal(t, now, *a.ArrivedAt)

	changed, err = a.Enqueue(7, now.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 3, *a.QueuePosition)
}

func TestFullLifecycle(t *testing.T) {
	a := newScheduled(t)
	now := time.Now().UTC()

	_, err := a.StartService(now)
	assert.ErrorIs(t, err, apperror.ErrInvalidState, "não pode sentar sem passar pela fila")

	_, err = a.Enqueue(1, now)
	require.NoError(t, err)
	changed, err := a.StartService(now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StageAttending, a.QueueStage)

	changed, err = a.StartService(now)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = a.Cancel("desistiu", now)
	assert.ErrorIs(t, err, apperror.ErrInvalidState)

	require.NoError(t, a.Complete(now))
	assert.Equal(t, StatusCompleted, a.Status)
	assert.Equal(t, StageFinished, a.QueueStage)
	assert.True(t, a.SaleGenerated)

	assert.ErrorIs(t, a.Complete(now), ErrSaleAlreadyGenerated)
}

func TestCancelAndNoShowOnCompletedFail(t *testing.T) {
	a := newScheduled(t)
	a.Status = StatusCompleted

	_, err := a.Cancel("", time.Now())
	assert.ErrorIs(t, err, apperror.ErrInvalidState)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	_, err = a.MarkNoShow(time.Now())
	assert.ErrorIs(t, err, apperror.ErrInvalidState)
	assert.Equal(t, StatusCompleted, a.Status)
}

func TestCancelStoresReasonAndEndTime(t *testing.T) {
	a := newScheduled(t)
	now := time.Now().UTC()

	changed, err := a.Cancel("  chuva forte ", now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "chuva forte", a.CancellationReason)
	assert.Equal(t, now, *a.ServiceEndedAt)

	changed, err = a.Cancel("de novo", now)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "chuva forte", a.CancellationReason)
}

func TestAssertOwner(t *testing.T) {
	a := newScheduled(t)

	assert.NoError(t, a.AssertOwner("b1"))
	err := a.AssertOwner("b2")
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.ErrorIs(t, err, apperror.ErrAuthorization)
}

func TestCloneIsDeep(t *testing.T) {
	a := newScheduled(t)
	_, _ = a.Enqueue(2, time.Now())

	c := a.Clone()
	*c.QueuePosition = 9
	*c.Customer.ID = "outro"

	assert.Equal(t, 2, *a.QueuePosition)
	assert.Equal(t, "c1", *a.Customer.ID)
}
