package main

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/supplychain-inventory/docs"
	"github.com/jhoicas/supplychain-inventory/internal/application/inventory"
	"github.com/jhoicas/supplychain-inventory/internal/application/ports"
	"github.com/jhoicas/supplychain-inventory/internal/application/recommendation"
	"github.com/jhoicas/supplychain-inventory/internal/infrastructure/cache"
	infrakafka "github.com/jhoicas/supplychain-inventory/internal/infrastructure/kafka"
	"github.com/jhoicas/supplychain-inventory/internal/infrastructure/postgres"
	"github.com/jhoicas/supplychain-inventory/internal/infrastructure/productclient"
	"github.com/jhoicas/supplychain-inventory/internal/infrastructure/report"
	"github.com/jhoicas/supplychain-inventory/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/supplychain-inventory/internal/interfaces/http"
	"github.com/jhoicas/supplychain-inventory/pkg/config"
	"github.com/jhoicas/supplychain-inventory/pkg/logger"
	"github.com/jhoicas/supplychain-inventory/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar OpenTelemetry")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	if len(applied) > 0 {
		log.Info().Strs("migrations", applied).Msg("migraciones aplicadas")
	}

	invRepo := postgres.NewInventoryRepository(pool)
	txRepo := postgres.NewStockTransactionRepository(pool)
	replica := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Catálogo: servicio HTTP si hay URL, si no la réplica local. Redis delante si está configurado.
	var directory ports.ProductDirectory = replica
	if cfg.ProductService.BaseURL != "" {
		directory = productclient.NewClient(cfg.ProductService.BaseURL, cfg.ProductService.Timeout)
	}
	var redisClient *redis.Client
	var store cache.Store
	if cfg.Redis.Enabled() {
		redisClient, err = cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, se continúa sin caché")
			redisClient = nil
		} else {
			store = redisClient
		}
	}
	productCache := cache.NewProductCache(store, directory, cfg.Redis.ProductTTL, log)
	productRepo := cache.NewInvalidatingRepository(replica, productCache)

	// Eventos de inventario: Kafka si hay brokers, si no solo log.
	var publisher ports.EventPublisher = infrakafka.NewLogPublisher(log)
	var kafkaPublisher *infrakafka.Publisher
	if cfg.Kafka.Enabled() {
		writer, err := infrakafka.NewWriter(cfg.Kafka, cfg.App.Name, tp)
		if err != nil {
			log.Fatal().Err(err).Msg("crear writer de Kafka")
		}
		kafkaPublisher = infrakafka.NewPublisher(writer, cfg.Kafka.PublishTimeout, log)
		publisher = kafkaPublisher
	}

	inventoryUC := inventory.NewInventoryUseCase(invRepo, txRepo, txRunner, productCache)
	ledgerUC := inventory.NewStockLedgerUseCase(txRunner, publisher, log)
	estimator := recommendation.NewConsumptionEstimator(invRepo, txRepo)
	generator := recommendation.NewGenerator(invRepo, estimator, productCache, log, cfg.Recommendation.BatchSize)
	popularity := recommendation.NewPopularityTracker()

	// Consumidores de product-events y order-events
	var consumers sync.WaitGroup
	if cfg.Kafka.Enabled() {
		productHandler := inventory.NewProductEventHandler(productRepo, inventoryUC, log)
		orderHandler := recommendation.NewOrderEventHandler(popularity, log)
		startConsumer(ctx, &consumers, cfg.Kafka, cfg.Kafka.ProductTopic, infrakafka.ProductEvents(productHandler), log)
		startConsumer(ctx, &consumers, cfg.Kafka, cfg.Kafka.OrderTopic, infrakafka.OrderEvents(orderHandler), log)
	}

	// Escaneo programado de stock bajo
	sched := scheduler.New(log)
	if cfg.Recommendation.ScanSchedule != "" {
		job := scheduler.NewLowStockJob(generator, publisher, log)
		if err := sched.Add("low-stock-scan", cfg.Recommendation.ScanSchedule, job); err != nil {
			log.Fatal().Err(err).Msg("programar escaneo de stock bajo")
		}
		sched.Start()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.TracingMiddleware())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "Supply Chain Inventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Inventory:       inventoryUC,
		Ledger:          ledgerUC,
		Estimator:       estimator,
		Recommendations: generator,
		Popularity:      popularity,
		PopularTop:      cfg.Recommendation.PopularTop,
		PDFReport:       report.NewPDFRenderer(),
		XLSXReport:      report.NewXLSXRenderer(),
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	sched.Stop(shutdownCtx)
	consumers.Wait()
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar writer de Kafka")
		}
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("vaciar trazas pendientes")
	}

	log.Info().Msg("aplicación detenida")
}

func startConsumer(
	ctx context.Context,
	wg *sync.WaitGroup,
	cfg config.KafkaConfig,
	topic string,
	handle infrakafka.HandlerFunc,
	log *logger.Logger,
) {
	reader, err := infrakafka.NewReader(cfg, topic)
	if err != nil {
		log.Fatal().Err(err).Str("topic", topic).Msg("crear reader de Kafka")
	}
	consumer := infrakafka.NewConsumer(reader, topic, handle, log)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := consumer.Run(ctx); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("consumidor finalizado con error")
		}
	}()
}
