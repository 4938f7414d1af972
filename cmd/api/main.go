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
	"github.com/rs/zerolog"

	"github.com/jhoicas/Estoque-api/docs"
	"github.com/jhoicas/Estoque-api/internal/application/admin"
	"github.com/jhoicas/Estoque-api/internal/application/alerts"
	"github.com/jhoicas/Estoque-api/internal/application/analytics"
	"github.com/jhoicas/Estoque-api/internal/application/auth"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/mail"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Estoque-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/redislock"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/Estoque-api/internal/interfaces/http"
	"github.com/jhoicas/Estoque-api/pkg/config"
	"github.com/jhoicas/Estoque-api/pkg/i18n"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

// repos agrupa los puertos de persistencia del driver elegido.
type repos struct {
	users       repository.UserRepository
	settings    repository.ClientSettingsRepository
	invitations repository.InvitationRepository
	products    repository.ProductRepository
	categories  repository.CategoryRepository
	suppliers   repository.SupplierRepository
	movements   repository.StockMovementRepository
	analytics   repository.AnalyticsRepository
	ledgerTx    inventory.TxRunner
	accountTx   auth.AccountTxRunner
	close       func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
	})
	defer log.Close()
	zl := log.Zerolog()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	r, err := openRepos(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer r.close()

	locker := newLocker(ctx, cfg, log)
	format := i18n.New(cfg.App.Locale)

	replenishmentUC := inventory.NewReplenishmentUseCase(r.products)
	deps := httpRouter.RouterDeps{
		AuthUC: auth.NewAuthUseCase(r.accountTx, r.users, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}, zl),
		ProductUC:     usecase.NewProductUseCase(r.products, r.categories, r.suppliers),
		CategoryUC:    usecase.NewCategoryUseCase(r.categories),
		SupplierUC:    usecase.NewSupplierUseCase(r.suppliers),
		SetupUC:       usecase.NewSetupUseCase(r.products, r.categories, r.suppliers, zl),
		Features:      usecase.NewFeatureService(r.settings),
		Ledger:        inventory.NewLedgerUseCase(r.ledgerTx, locker, r.movements, zl),
		Replenishment: replenishmentUC,
		Dashboard:     analytics.NewDashboardUseCase(r.products, r.analytics, format, cfg.App.Location()),
		Reports:       analytics.NewReportUseCase(r.products, r.users, infrapdf.NewMarotoPDFGenerator(), format, zl),
		Invitations:   admin.NewInvitationUseCase(r.invitations, zl),
		Clients:       admin.NewClientUseCase(r.users, r.settings, zl),
		Stats:         admin.NewStatsUseCase(r.analytics),
		JWTSecret:     cfg.JWT.Secret,
	}

	// Alertas de stock bajo por correo: solo con SMTP configurado.
	if cfg.SMTP.Enabled() {
		sched, err := newAlertScheduler(cfg, r, replenishmentUC, format, zl)
		if err != nil {
			log.Fatal().Err(err).Msg("programar alertas de stock bajo")
		}
		sched.Start()
		defer sched.Stop()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	app.Use(recover.New())
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))

	httpRouter.Router(app, deps)

	go func() {
		addr := cfg.HTTP.Addr()
		log.Info().Str("addr", addr).Msg("servidor HTTP escuchando")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

// openRepos construye los repositorios según DB_DRIVER.
func openRepos(ctx context.Context, cfg *config.Config) (*repos, error) {
	if cfg.DB.Driver == "memory" {
		store := memory.NewStore()
		return &repos{
			users:       memory.NewUserRepository(store),
			settings:    memory.NewClientSettingsRepository(store),
			invitations: memory.NewInvitationRepository(store),
			products:    memory.NewProductRepository(store),
			categories:  memory.NewCategoryRepository(store),
			suppliers:   memory.NewSupplierRepository(store),
			movements:   memory.NewStockMovementRepository(store),
			analytics:   memory.NewAnalyticsRepository(store),
			ledgerTx:    store,
			accountTx:   store,
			close:       func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	txRunner := postgres.NewTxRunner(pool)
	return &repos{
		users:       postgres.NewUserRepository(pool),
		settings:    postgres.NewClientSettingsRepository(pool),
		invitations: postgres.NewInvitationRepository(pool),
		products:    postgres.NewProductRepository(pool),
		categories:  postgres.NewCategoryRepository(pool),
		suppliers:   postgres.NewSupplierRepository(pool),
		movements:   postgres.NewStockMovementRepository(pool),
		analytics:   postgres.NewAnalyticsRepository(pool),
		ledgerTx:    txRunner,
		accountTx:   txRunner,
		close:       pool.Close,
	}, nil
}

// newLocker usa Redis si REDIS_ADDR está definido; si no, o si no responde, candado en proceso.
func newLocker(ctx context.Context, cfg *config.Config, log *logger.Logger) inventory.ProductLocker {
	if cfg.Redis.Addr == "" {
		return inventory.NewKeyedLocker(cfg.App.LockTimeout)
	}
	client, err := redislock.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, candado en proceso")
		return inventory.NewKeyedLocker(cfg.App.LockTimeout)
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("candado de productos en redis")
	return redislock.New(client, cfg.Redis.LockTTL, cfg.App.LockTimeout, log.Zerolog())
}

func newAlertScheduler(
	cfg *config.Config,
	r *repos,
	source alerts.AlertSource,
	format *i18n.Formatter,
	log zerolog.Logger,
) (*scheduler.Scheduler, error) {
	sender := mail.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	notifier := alerts.NewNotifier(r.users, r.settings, source, sender, format, log)

	sched, err := scheduler.New(cfg.Alerts.Timezone, log)
	if err != nil {
		return nil, err
	}
	err = sched.Add("low-stock-alerts", cfg.Alerts.Cron, func(ctx context.Context) error {
		_, err := notifier.NotifyAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sched, nil
}
