package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/barbearia-api/docs"
	"github.com/hugohenrick/barbearia-api/internal/adapter/api/controller"
	"github.com/hugohenrick/barbearia-api/internal/adapter/api/route"
	"github.com/hugohenrick/barbearia-api/internal/adapter/cache"
	"github.com/hugohenrick/barbearia-api/internal/adapter/repository"
	"github.com/hugohenrick/barbearia-api/internal/adapter/repository/memory"
	"github.com/hugohenrick/barbearia-api/internal/domain/catalog"
	"github.com/hugohenrick/barbearia-api/internal/domain/store"
	"github.com/hugohenrick/barbearia-api/internal/infrastructure/config"
	"github.com/hugohenrick/barbearia-api/internal/infrastructure/database"
	"github.com/hugohenrick/barbearia-api/internal/service/checkout"
	"github.com/hugohenrick/barbearia-api/internal/service/lifecycle"
	"github.com/hugohenrick/barbearia-api/pkg/auth"
	"github.com/hugohenrick/barbearia-api/pkg/logger"
	"github.com/hugohenrick/barbearia-api/pkg/ratelimit"
	"github.com/hugohenrick/barbearia-api/pkg/receipt"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// App representa a aplicação e suas dependências
type App struct {
	config *config.Config
	logger logger.Logger
	router *gin.Engine
	db     *database.PostgresDB
	redis  *redis.Client
	store  store.Store

	appointmentController *controller.AppointmentController
	catalogController     *controller.CatalogController
	customerController    *controller.CustomerController
	saleController        *controller.SaleController
	authMiddleware        gin.HandlerFunc
	rateLimit             gin.HandlerFunc
}

// NewApp cria uma nova instância do aplicativo
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	app := &App{config: cfg, logger: log}

	// Configurar armazenamento
	switch cfg.StorageDriver {
	case config.StorageMemory:
		st, err := newMemoryStore(ctx, cfg.MemorySeedFile, log)
		if err != nil {
			return nil, err
		}
		app.store = st
	default:
		db, err := database.NewPostgresDB(ctx, cfg.Postgres, log)
		if err != nil {
			return nil, err
		}
		app.db = db
		app.store = repository.NewPostgresStore(db)
	}

	// Cache de catálogo opcional
	var catalogRepo catalog.Repository = app.store.Catalog()
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Warn("redis indisponível; catálogo sem cache", "addr", cfg.Redis.Addr, "error", err)
			_ = client.Close()
		} else {
			app.redis = client
			catalogCache := cache.NewCatalogCache(catalogRepo, client, cfg.Redis.TTL, log)
			// o catálogo pode ter mudado desde a última execução
			if err := catalogCache.InvalidateServices(ctx); err != nil {
				log.Warn("falha ao limpar cache de serviços", "error", err)
			}
			catalogRepo = catalogCache
		}
	}

	jwtService, err := auth.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.Issuer)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.authMiddleware = auth.JWTAuthMiddleware(jwtService)
	app.rateLimit = ratelimit.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst).Middleware()

	// Criar serviços e controllers
	lifecycleService := lifecycle.NewService(app.store, log)
	checkoutService := checkout.NewService(app.store, log)

	app.appointmentController = controller.NewAppointmentController(lifecycleService, checkoutService, log)
	app.catalogController = controller.NewCatalogController(catalogRepo, log)
	app.customerController = controller.NewCustomerController(app.store.Customers(), log)
	app.saleController = controller.NewSaleController(app.store.Sales(), receipt.Header{ShopName: "Barbearia"}, log)

	gin.SetMode(cfg.Server.Mode)
	app.router = gin.New()
	app.router.Use(gin.Recovery(), requestLogger(log), cors.New(corsConfig(cfg.Server.AllowedOrigins)))
	app.SetupRoutes(cfg.Server.BasePath)

	return app, nil
}

// newMemoryStore cria o armazenamento em memória com o catálogo e os clientes do seed
func newMemoryStore(ctx context.Context, seedFile string, log logger.Logger) (*memory.Store, error) {
	st := memory.NewStore()
	log.Warn("usando armazenamento em memória; os dados são perdidos ao reiniciar")

	if seedFile == "" {
		log.Warn("MEMORY_SEED_FILE não configurado; catálogo e clientes vazios")
		return st, nil
	}

	seed, err := memory.ReadSeedFile(seedFile)
	if err != nil {
		return nil, err
	}
	if err := st.Load(ctx, seed); err != nil {
		return nil, fmt.Errorf("erro ao carregar seed %s: %w", seedFile, err)
	}
	log.Info("seed carregado",
		"file", seedFile,
		"services", len(seed.Services),
		"products", len(seed.Products),
		"customers", len(seed.Customers),
	)
	return st, nil
}

// SetupRoutes configura as rotas da aplicação
func (a *App) SetupRoutes(basePath string) {
	docs.SwaggerInfo.BasePath = basePath
	a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := a.router.Group(basePath)

	// Health check
	api.GET("/health", a.health)

	route.RegisterAppointmentRoutes(api, a.appointmentController, a.authMiddleware, a.rateLimit)
	route.RegisterCatalogRoutes(api, a.catalogController)
	route.RegisterCustomerRoutes(api, a.customerController, a.authMiddleware)
	route.RegisterSaleRoutes(api, a.saleController, a.authMiddleware)
}

func (a *App) health(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{"status": "ok", "version": "1.0.0", "storage": a.config.StorageDriver}

	if a.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := a.db.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["database"] = err.Error()
		}
	}
	c.JSON(status, body)
}

// Start inicia o servidor HTTP e aguarda SIGINT/SIGTERM para encerrar
func (a *App) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              ":" + a.config.Server.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("servidor iniciado", "addr", srv.Addr, "base_path", a.config.Server.BasePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("erro ao iniciar servidor: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("encerrando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// GetRouter retorna o router da aplicação
func (a *App) GetRouter() *gin.Engine {
	return a.router
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

// requestLogger registra cada requisição no logger estruturado
func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("requisição",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
