package availability

import (
	"context"
	"testing"
	"time"

	"github.com/hugohenrick/barbearia-api/internal/adapter/repository/memory"
	"github.com/hugohenrick/barbearia-api/internal/domain/appointment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

func seed(t *testing.T, s *memory.Store, customerID *string, at time.Time, freeCut bool) *appointment.Appointment {
	t.Helper()
	a, err := appointment.NewAppointment("b1", "s1", at, appointment.Customer{ID: customerID, Name: "Cliente"}, freeCut)
	require.NoError(t, err)
	require.NoError(t, s.Appointments().Create(context.Background(), a))
	return a
}

func TestListReservedSlotsUsesUTCDay(t *testing.T) {
	s := memory.NewStore()
	g := NewGuard(s.Appointments())
	inside := seed(t, s, nil, day.Add(23*time.Hour+59*time.Minute), false)
	seed(t, s, nil, day.AddDate(0, 0, 1), false)
	seed(t, s, nil, day.Add(-time.Minute), false)

	slots, err := g.ListReservedSlots(context.Background(), "b1", day.Add(12*time.Hour))

	require.NoError(t, err)
	assert.Equal(t, []time.Time{inside.ScheduledAt}, slots)
}

func TestListReservedSlotsRequiresBarber(t *testing.T) {
	g := NewGuard(memory.NewStore().Appointments())

	_, err := g.ListReservedSlots(context.Background(), "", day)

	assert.ErrorIs(t, err, appointment.ErrEmptyBarber)
}

func TestAssertNoDuplicateBooking(t *testing.T) {
	s := memory.NewStore()
	g := NewGuard(s.Appointments())
	c1 := "c1"
	seed(t, s, &c1, day.Add(10*time.Hour), false)

	err := g.AssertNoDuplicateBooking(context.Background(), &c1, day.Add(18*time.Hour))
	assert.ErrorIs(t, err, appointment.ErrDuplicateBooking)

	assert.NoError(t, g.AssertNoDuplicateBooking(context.Background(), &c1, day.AddDate(0, 0, 1)))
	assert.NoError(t, g.AssertNoDuplicateBooking(context.Background(), nil, day), "avulso não é verificado")
}

func TestAssertNoDuplicateFreeCutIntent(t *testing.T) {
	s := memory.NewStore()
	g := NewGuard(s.Appointments())
	c1, c2 := "c1", "c2"
	seed(t, s, &c1, day.Add(10*time.Hour), true)
	seed(t, s, &c2, day.Add(11*time.Hour), false)

	assert.ErrorIs(t, g.AssertNoDuplicateFreeCutIntent(context.Background(), &c1), appointment.ErrDuplicateFreeCut)
	assert.NoError(t, g.AssertNoDuplicateFreeCutIntent(context.Background(), &c2))
}
