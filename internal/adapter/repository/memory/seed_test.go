package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hugohenrick/barbearia-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSeedFile(t *testing.T) {
	path := writeSeed(t, `{
		"services": [{"id": "corte", "name": "Corte", "price": "20000", "duration_minutes": 30, "active": true}],
		"products": [{"id": "pomada", "name": "Pomada", "price": 3500, "stock": 4, "active": true}],
		"customers": [{"id": "c1", "name": "Carlos", "loyalty": {"experience_points": 230, "free_cut_credits_available": 1}}]
	}`)
	ctx := context.Background()

	seed, err := ReadSeedFile(path)
	require.NoError(t, err)
	st := NewStore()
	require.NoError(t, st.Load(ctx, seed))

	svc, err := st.Catalog().FindService(ctx, "corte")
	require.NoError(t, err)
	assert.Equal(t, "20000", svc.Price.String())
	assert.Equal(t, 30, svc.DurationMinutes)

	p, err := st.Catalog().FindProduct(ctx, "pomada")
	require.NoError(t, err)
	assert.Equal(t, 4, p.Stock)

	c, err := st.Customers().FindByID(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, c.HasFreeCutCredit())
	assert.Equal(t, 3, c.Loyalty.CurrentLevel, "nível derivado do XP quando ausente")
}

func TestLoadSeedRejectsInvalidContent(t *testing.T) {
	_, err := ReadSeedFile(writeSeed(t, `{"services": [`))
	assert.ErrorContains(t, err, "inválido")

	_, err = ReadSeedFile(filepath.Join(t.TempDir(), "ausente.json"))
	assert.Error(t, err)

	seed, err := ReadSeedFile(writeSeed(t, `{"services": [{"id": "", "name": "Sem id"}]}`))
	require.NoError(t, err)
	assert.ErrorIs(t, NewStore().Load(context.Background(), seed), apperror.ErrValidation)

	seed, err = ReadSeedFile(writeSeed(t, `{"customers": [{"id": "c1", "name": "A"}, {"id": "c1", "name": "B"}]}`))
	require.NoError(t, err)
	assert.ErrorIs(t, NewStore().Load(context.Background(), seed), apperror.ErrConflict)
}
