package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/analytics"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/auth"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/billing"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/dto"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/usecase"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/repository"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/infrastructure/cache"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/infrastructure/memory"
	infrapdf "github.com/jeancarlo3213/ferrefactura-backend/internal/infrastructure/pdf"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/infrastructure/postgres"
	httpRouter "github.com/jeancarlo3213/ferrefactura-backend/internal/interfaces/http"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/observability"
	"github.com/jeancarlo3213/ferrefactura-backend/pkg/config"
	"github.com/jeancarlo3213/ferrefactura-backend/pkg/logger"
)

// repos agrupa los adaptadores de persistencia; postgres y memoria cumplen los mismos puertos.
type repos struct {
	users         repository.UserRepository
	products      repository.ProductRepository
	specialPrices repository.SpecialPriceRepository
	invoices      repository.InvoiceRepository
	discounts     repository.DiscountRepository
	cash          repository.CashRegisterRepository
	debtors       repository.DebtorRepository
	debtRecords   repository.DebtRecordRepository
	debtPayments  repository.DebtPaymentRepository
	printJobs     repository.PrintJobRepository
	reports       repository.ReportRepository
	tx            billing.BillingTxRunner
	close         func()
}

func postgresRepos(ctx context.Context, cfg config.DBConfig) (*repos, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &repos{
		users:         postgres.NewUserRepository(pool),
		products:      postgres.NewProductRepository(pool),
		specialPrices: postgres.NewSpecialPriceRepository(pool),
		invoices:      postgres.NewInvoiceRepository(pool),
		discounts:     postgres.NewDiscountRepository(pool),
		cash:          postgres.NewCashRegisterRepository(pool),
		debtors:       postgres.NewDebtorRepository(pool),
		debtRecords:   postgres.NewDebtRecordRepository(pool),
		debtPayments:  postgres.NewDebtPaymentRepository(pool),
		printJobs:     postgres.NewPrintJobRepository(pool),
		reports:       postgres.NewReportRepository(pool),
		tx:            postgres.NewTxRunner(pool),
		close:         pool.Close,
	}, nil
}

func memoryRepos() *repos {
	store := memory.NewStore()
	return &repos{
		users:         memory.NewUserRepository(store),
		products:      memory.NewProductRepository(store),
		specialPrices: memory.NewSpecialPriceRepository(store),
		invoices:      memory.NewInvoiceRepository(store),
		discounts:     memory.NewDiscountRepository(store),
		cash:          memory.NewCashRegisterRepository(store),
		debtors:       memory.NewDebtorRepository(store),
		debtRecords:   memory.NewDebtRecordRepository(store),
		debtPayments:  memory.NewDebtPaymentRepository(store),
		printJobs:     memory.NewPrintJobRepository(store),
		reports:       memory.NewReportRepository(store),
		tx:            memory.NewTxRunner(store),
		close:         func() {},
	}
}

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
		Str("storage", cfg.App.StorageDriver).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var r *repos
	if cfg.App.UsesMemory() {
		r = memoryRepos()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	} else {
		r, err = postgresRepos(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
	}
	defer r.close()

	// Caché de reportes: opcional. Sin Redis, ReportCache nil pasa directo a la base.
	var reportCache *cache.ReportCache
	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = client.Close() }()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, reportes sin caché")
		} else {
			reportCache = cache.NewReportCache(client, cfg.Redis.TTL, log)
			reportCache.ListenForInvalidation(ctx)
		}
	}

	metrics := observability.NewMetrics()
	loc := cfg.App.Location()

	userUC := usecase.NewUserUseCase(r.users)
	if cfg.App.UsesMemory() && cfg.Admin.Password != "" {
		_, err := userUC.Create(ctx, dto.UserRequest{
			Name:     "Administrador",
			Username: cfg.Admin.Username,
			Password: cfg.Admin.Password,
			Role:     entity.RoleAdministrador,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
	}

	authUC := auth.NewAuthUseCase(r.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	createInvoiceUC := billing.NewCreateInvoiceUseCase(r.tx, reportCache, log)
	invoiceUC := billing.NewInvoiceUseCase(r.invoices, r.discounts, reportCache, log)
	pdfUC := billing.NewPDFUseCase(r.invoices, r.discounts, r.products, r.users,
		infrapdf.NewMarotoPDFGenerator(cfg.App.BusinessName))
	receiptUC := billing.NewReceiptUseCase(r.invoices, r.discounts, r.products, r.users, r.printJobs, cfg.App.BusinessName)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(metrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "FerreFactura API",
	}))

	app.Get("/metrics", metrics.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         userUC,
		ProductUC:      usecase.NewProductUseCase(r.products, reportCache, log),
		SpecialPriceUC: usecase.NewSpecialPriceUseCase(r.specialPrices, r.products),
		CreateInvoice:  createInvoiceUC,
		InvoiceUC:      invoiceUC,
		PDFUC:          pdfUC,
		ReceiptUC:      receiptUC,
		CashbookUC:     usecase.NewCashbookUseCase(r.cash, r.debtors, r.debtRecords, r.debtPayments),
		PrintUC:        usecase.NewPrintUseCase(r.printJobs),
		ReportsUC:      analytics.NewReportsUseCase(r.reports, reportCache, loc),
		InvoiceCounter: metrics,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
