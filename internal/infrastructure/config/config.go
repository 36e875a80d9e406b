package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hugohenrick/barbearia-api/internal/infrastructure/database"
	"github.com/hugohenrick/barbearia-api/pkg/logger"
)

// Drivers de armazenamento suportados
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// ServerConfig contém as configurações do servidor HTTP
type ServerConfig struct {
	Port            string
	BasePath        string
	Mode            string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// RedisConfig contém as configurações do cache de catálogo; Addr vazio desliga o cache
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// JWTConfig contém a chave usada para validar tokens emitidos pelo provedor de identidade
type JWTConfig struct {
	SecretKey string
	Issuer    string
}

// RateLimitConfig limita as requisições públicas de agendamento por IP
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Config agrega todas as configurações da aplicação
type Config struct {
	Server         ServerConfig
	StorageDriver  string
	MemorySeedFile string // catálogo e clientes carregados pelo driver memory
	Postgres       *database.PostgresConfig
	Redis          RedisConfig
	JWT            JWTConfig
	RateLimit      RateLimitConfig
	Log            logger.Config
}

// Load lê a configuração das variáveis de ambiente
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			BasePath:        getEnv("BASE_PATH", "/api/v1"),
			Mode:            getEnv("GIN_MODE", "release"),
			AllowedOrigins:  splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		StorageDriver:  strings.ToLower(getEnv("STORAGE_DRIVER", StoragePostgres)),
		MemorySeedFile: os.Getenv("MEMORY_SEED_FILE"),
		Postgres:       database.NewPostgresConfigFromEnv(),
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		},
		JWT: JWTConfig{
			SecretKey: os.Getenv("JWT_SECRET_KEY"),
			Issuer:    os.Getenv("JWT_ISSUER"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvFloat("RATE_LIMIT_RPS", 1),
			Burst:             getEnvInt("RATE_LIMIT_BURST", 5),
		},
		Log: logger.NewConfigFromEnv(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate verifica combinações inválidas de configuração
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("STORAGE_DRIVER inválido: %q (use %s ou %s)", c.StorageDriver, StorageMemory, StoragePostgres)
	}
	if c.JWT.SecretKey == "" {
		return fmt.Errorf("JWT_SECRET_KEY não configurada")
	}
	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst < 1 {
		return fmt.Errorf("limite de requisições inválido: %v/s, rajada %d", c.RateLimit.RequestsPerSecond, c.RateLimit.Burst)
	}
	return nil
}

// getEnv retorna o valor de uma variável de ambiente ou um valor padrão
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
