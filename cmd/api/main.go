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

	_ "github.com/jhoicas/Gestion-api/docs"
	appanalytics "github.com/jhoicas/Gestion-api/internal/application/analytics"
	"github.com/jhoicas/Gestion-api/internal/application/auth"
	"github.com/jhoicas/Gestion-api/internal/application/finance"
	"github.com/jhoicas/Gestion-api/internal/application/inventory"
	"github.com/jhoicas/Gestion-api/internal/application/notification"
	"github.com/jhoicas/Gestion-api/internal/application/reporting"
	"github.com/jhoicas/Gestion-api/internal/application/sales"
	"github.com/jhoicas/Gestion-api/internal/application/settings"
	"github.com/jhoicas/Gestion-api/internal/infrastructure/backend"
	infrapdf "github.com/jhoicas/Gestion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Gestion-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Gestion-api/internal/interfaces/http"
	"github.com/jhoicas/Gestion-api/pkg/config"
	"github.com/jhoicas/Gestion-api/pkg/logger"
)

// @title                       Gestion API
// @version                     1.0
// @description                 Gestión de stock, ventas y finanzas de una tienda.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	db, err := backend.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer db.Close()

	// El historial de reportes vive en memoria aunque el resto sea persistente.
	st, err := storage.Open(ctx, db.KV, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar colecciones")
	}
	if _, err := auth.Bootstrap(ctx, st.Users, st.UserCodes, st.Settings, cfg.Seed, log); err != nil {
		log.Fatal().Err(err).Msg("datos iniciales")
	}

	notificationUC := notification.NewUseCase(st.Notifications)
	settingsUC := settings.NewUseCase(st.Settings)
	saleService := sales.NewService(st.Tx, st.Products, st.Sales, st.Settings, notificationUC, settingsUC, log)
	productUC := inventory.NewProductUseCase(st.Products, st.Categories, settingsUC)
	categoryUC := inventory.NewCategoryUseCase(st.Categories, st.Products)
	financeUC := finance.NewUseCase(st.Finances)

	authUC := auth.NewAuthUseCase(st.Users, st.UserCodes, st.Sessions, settingsUC, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	userUC := auth.NewUserUseCase(st.Users, st.UserCodes, st.Sessions)

	dashboardUC := appanalytics.NewDashboardUseCase(st.Products, st.Sales, st.Finances)
	searchUC := appanalytics.NewSearchUseCase(st.Products, st.Categories, st.Sales)

	// PDF: exportación de reportes
	reportUC := reporting.NewUseCase(
		reporting.NewLoader(st.Products, st.Sales, st.Finances, st.Categories),
		st.Reports, st.Settings, infrapdf.NewMarotoPDFGenerator(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestion API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         userUC,
		ProductUC:      productUC,
		CategoryUC:     categoryUC,
		SaleService:    saleService,
		NotificationUC: notificationUC,
		FinanceUC:      financeUC,
		DashboardUC:    dashboardUC,
		SearchUC:       searchUC,
		ReportUC:       reportUC,
		SettingsUC:     settingsUC,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
