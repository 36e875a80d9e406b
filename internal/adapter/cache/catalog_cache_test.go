package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hugohenrick/barbearia-api/internal/adapter/repository/memory"
	"github.com/hugohenrick/barbearia-api/internal/domain/catalog"
	"github.com/hugohenrick/barbearia-api/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingCatalog conta as consultas que chegam ao repositório de origem
type countingCatalog struct {
	catalog.Repository
	findService  int
	listServices int
}

func (c *countingCatalog) FindService(ctx context.Context, id string) (*catalog.Service, error) {
	c.findService++
	return c.Repository.FindService(ctx, id)
}

func (c *countingCatalog) ListServices(ctx context.Context, onlyActive bool) ([]*catalog.Service, error) {
	c.listServices++
	return c.Repository.ListServices(ctx, onlyActive)
}

func newCache(t *testing.T) (*CatalogCache, *countingCatalog, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	st := memory.NewStore()
	st.SeedService(catalog.Service{ID: "svc-1", Name: "Corte", Price: decimal.NewFromInt(20000), DurationMinutes: 30, Active: true})
	st.SeedService(catalog.Service{ID: "svc-2", Name: "Barba", Price: decimal.NewFromInt(8000), DurationMinutes: 20, Active: false})
	st.SeedProduct(catalog.Product{ID: "prd-1", Name: "Pomada", Price: decimal.NewFromInt(3500), Stock: 3, Active: true})

	origin := &countingCatalog{Repository: st.Catalog()}
	return NewCatalogCache(origin, client, time.Minute, logger.NewNop()), origin, mr
}

func TestFindServiceReadsThroughOnce(t *testing.T) {
	c, origin, mr := newCache(t)
	ctx := context.Background()

	first, err := c.FindService(ctx, "svc-1")
	require.NoError(t, err)
	second, err := c.FindService(ctx, "svc-1")
	require.NoError(t, err)

	assert.Equal(t, 1, origin.findService)
	assert.Equal(t, first.Name, second.Name)
	assert.True(t, first.Price.Equal(second.Price))
	assert.True(t, mr.Exists(keyPrefix+"service:svc-1"))
	assert.Equal(t, time.Minute, mr.TTL(keyPrefix+"service:svc-1"))
}

func TestFindServiceDoesNotCacheMisses(t *testing.T) {
	c, origin, _ := newCache(t)
	ctx := context.Background()

	_, err := c.FindService(ctx, "nao-existe")
	assert.ErrorIs(t, err, catalog.ErrServiceNotFound)
	_, err = c.FindService(ctx, "nao-existe")
	assert.ErrorIs(t, err, catalog.ErrServiceNotFound)

	assert.Equal(t, 2, origin.findService)
}

func TestListServicesKeysByFilter(t *testing.T) {
	c, origin, _ := newCache(t)
	ctx := context.Background()

	active, err := c.ListServices(ctx, true)
	require.NoError(t, err)
	all, err := c.ListServices(ctx, false)
	require.NoError(t, err)
	_, err = c.ListServices(ctx, true)
	require.NoError(t, err)

	assert.Len(t, active, 1)
	assert.Len(t, all, 2)
	assert.Equal(t, 2, origin.listServices)
}

func TestInvalidateServices(t *testing.T) {
	c, origin, mr := newCache(t)
	ctx := context.Background()

	_, err := c.FindService(ctx, "svc-1")
	require.NoError(t, err)
	_, err = c.ListServices(ctx, true)
	require.NoError(t, err)

	require.NoError(t, c.InvalidateServices(ctx))
	assert.Empty(t, mr.Keys())

	_, err = c.FindService(ctx, "svc-1")
	require.NoError(t, err)
	assert.Equal(t, 2, origin.findService)
}

func TestRedisDownFallsBackToOrigin(t *testing.T) {
	c, origin, mr := newCache(t)
	mr.Close()

	svc, err := c.FindService(context.Background(), "svc-1")
	require.NoError(t, err)
	assert.Equal(t, "Corte", svc.Name)
	assert.Equal(t, 1, origin.findService)
}

func TestProductsBypassCache(t *testing.T) {
	c, _, mr := newCache(t)
	ctx := context.Background()

	remaining, err := c.DecrementStock(ctx, "prd-1", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)

	p, err := c.FindProduct(ctx, "prd-1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stock)
	assert.Empty(t, mr.Keys())
}
