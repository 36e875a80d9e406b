package main

import (
	"flag"
	"log"

	"github.com/hugohenrick/barbearia-api/internal/infrastructure/database"
	"github.com/hugohenrick/barbearia-api/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	down := flag.Int("down", 0, "número de migrações a desfazer")
	flag.Parse()

	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	appLogger, err := logger.NewLogger(logger.NewConfigFromEnv())
	if err != nil {
		log.Fatalf("Erro ao criar logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	databaseURL := database.NewPostgresConfigFromEnv().ConnectionURL()

	if *down > 0 {
		if err := database.RollbackMigrations(databaseURL, *down, appLogger); err != nil {
			log.Fatalf("Erro ao desfazer migrações: %v", err)
		}
		log.Println("Migrações desfeitas com sucesso!")
		return
	}

	if err := database.RunMigrations(databaseURL, appLogger); err != nil {
		log.Fatalf("Erro ao executar migrações: %v", err)
	}
	log.Println("Migrações executadas com sucesso!")
}
