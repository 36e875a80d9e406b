package main

import (
	"context"
	"log"

	"github.com/hugohenrick/barbearia-api/internal/infrastructure/config"
	"github.com/hugohenrick/barbearia-api/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}

	appLogger, err := logger.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Erro ao criar logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	// Criar aplicação
	app, err := NewApp(context.Background(), cfg, appLogger)
	if err != nil {
		appLogger.Error("erro ao iniciar aplicação", "error", err)
		return
	}
	defer app.Close()

	// Iniciar o servidor
	if err := app.Start(); err != nil {
		appLogger.Error("servidor encerrado com erro", "error", err)
	}
}
