package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hugohenrick/barbearia-api/internal/domain/catalog"
	"github.com/hugohenrick/barbearia-api/internal/domain/customer"
	"github.com/hugohenrick/barbearia-api/pkg/apperror"
)

// Seed é o catálogo e a carteira de clientes carregados ao iniciar o armazenamento em memória
type Seed struct {
	Services  []catalog.Service   `json:"services"`
	Products  []catalog.Product   `json:"products"`
	Customers []customer.Customer `json:"customers"`
}

// ReadSeedFile lê um arquivo JSON no formato de Seed
func ReadSeedFile(path string) (*Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler seed %s: %w", path, err)
	}

	var seed Seed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("seed %s inválido: %w", path, err)
	}
	return &seed, nil
}

// Load cadastra serviços, produtos e clientes do seed
func (s *Store) Load(ctx context.Context, seed *Seed) error {
	for _, svc := range seed.Services {
		if strings.TrimSpace(svc.ID) == "" || strings.TrimSpace(svc.Name) == "" {
			return apperror.Validation("serviço do seed sem id ou nome")
		}
		s.SeedService(svc)
	}

	for _, p := range seed.Products {
		if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.Name) == "" {
			return apperror.Validation("produto do seed sem id ou nome")
		}
		s.SeedProduct(p)
	}

	for i := range seed.Customers {
		c := seed.Customers[i]
		if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Name) == "" {
			return apperror.Validation("cliente do seed sem id ou nome")
		}
		if err := s.Customers().Create(ctx, &c); err != nil {
			return fmt.Errorf("erro ao cadastrar cliente %s: %w", c.ID, err)
		}
	}
	return nil
}
