// Package cache guarda no Redis as consultas de catálogo mais frequentes.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/barbearia-api/internal/domain/catalog"
	"github.com/hugohenrick/barbearia-api/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "barbearia:catalog:"

// CatalogCache decora um catalog.Repository com leitura via Redis para serviços.
// Produtos não passam pelo cache porque o estoque muda a cada venda.
type CatalogCache struct {
	next   catalog.Repository
	client redis.UniversalClient
	ttl    time.Duration
	logger logger.Logger
}

// NewCatalogCache cria uma nova instância de CatalogCache
func NewCatalogCache(next catalog.Repository, client redis.UniversalClient, ttl time.Duration, log logger.Logger) *CatalogCache {
	return &CatalogCache{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: log,
	}
}

// FindService busca o serviço no Redis e, na ausência, no repositório de origem
func (c *CatalogCache) FindService(ctx context.Context, id string) (*catalog.Service, error) {
	key := keyPrefix + "service:" + id

	var svc catalog.Service
	if c.get(ctx, key, &svc) {
		return &svc, nil
	}

	found, err := c.next.FindService(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, found)
	return found, nil
}

// ListServices lista os serviços usando o Redis como leitura prévia
func (c *CatalogCache) ListServices(ctx context.Context, onlyActive bool) ([]*catalog.Service, error) {
	key := keyPrefix + "services:all"
	if onlyActive {
		key = keyPrefix + "services:active"
	}

	var services []*catalog.Service
	if c.get(ctx, key, &services) {
		return services, nil
	}

	services, err := c.next.ListServices(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, services)
	return services, nil
}

// FindProduct consulta direto o repositório de origem
func (c *CatalogCache) FindProduct(ctx context.Context, id string) (*catalog.Product, error) {
	return c.next.FindProduct(ctx, id)
}

// ListProducts consulta direto o repositório de origem
func (c *CatalogCache) ListProducts(ctx context.Context, onlyActive bool) ([]*catalog.Product, error) {
	return c.next.ListProducts(ctx, onlyActive)
}

// DecrementStock repassa a baixa de estoque ao repositório de origem
func (c *CatalogCache) DecrementStock(ctx context.Context, id string, quantity int) (int, error) {
	return c.next.DecrementStock(ctx, id, quantity)
}

// InvalidateServices remove do Redis todas as entradas de serviços
func (c *CatalogCache) InvalidateServices(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"service*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("erro ao listar chaves do catálogo: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("erro ao invalidar catálogo: %w", err)
	}
	return nil
}

// get retorna false em cache miss ou em qualquer falha do Redis; falhas só geram aviso
func (c *CatalogCache) get(ctx context.Context, key string, dst any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("falha ao ler catálogo do redis", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.logger.Warn("entrada inválida no cache do catálogo", "key", key, "error", err)
		return false
	}
	return true
}

func (c *CatalogCache) set(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("falha ao serializar catálogo", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("falha ao gravar catálogo no redis", "key", key, "error", err)
	}
}

var _ catalog.Repository = (*CatalogCache)(nil)
