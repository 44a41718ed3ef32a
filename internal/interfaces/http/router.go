package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Gestion-api/internal/application/analytics"
	"github.com/jhoicas/Gestion-api/internal/application/auth"
	"github.com/jhoicas/Gestion-api/internal/application/finance"
	"github.com/jhoicas/Gestion-api/internal/application/inventory"
	"github.com/jhoicas/Gestion-api/internal/application/notification"
	"github.com/jhoicas/Gestion-api/internal/application/reporting"
	"github.com/jhoicas/Gestion-api/internal/application/sales"
	"github.com/jhoicas/Gestion-api/internal/application/settings"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *auth.UserUseCase
	ProductUC      *inventory.ProductUseCase
	CategoryUC     *inventory.CategoryUseCase
	SaleService    *sales.Service
	NotificationUC *notification.UseCase
	FinanceUC      *finance.UseCase
	DashboardUC    *appanalytics.DashboardUseCase
	SearchUC       *appanalytics.SearchUseCase
	ReportUC       *reporting.UseCase
	SettingsUC     *settings.UseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.SettingsUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/recover", authHandler.Recover)
	authGroup.Get("/recovery-question", authHandler.RecoveryQuestion)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin, entity.RoleEmployee))

	session := protected.Group("/auth")
	session.Get("/me", authHandler.Me)
	session.Post("/switch", authHandler.Switch)
	session.Post("/logout", authHandler.Logout)

	// Products: lectura para todos, escritura solo admin
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Patch("/:id/stock", adminOnly, productHandler.AdjustStock)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", adminOnly, categoryHandler.Create)
	categories.Put("/:id", adminOnly, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	// Sales: /cancelled antes de /:id
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleService)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Delete("/cancelled", adminOnly, saleHandler.DeleteAllCancelled)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/cancel", saleHandler.Cancel)
	salesGroup.Delete("/:id", adminOnly, saleHandler.DeleteCancelled)

	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Post("/read-all", notificationHandler.MarkAllAsRead)
	notifications.Patch("/:id/read", notificationHandler.MarkAsRead)
	notifications.Delete("/", notificationHandler.Clear)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.SearchUC)
	protected.Get("/search", dashboardHandler.Search)

	// ── Solo admin ────────────────────────────────────────────────────────────

	dashboard := protected.Group("/dashboard", adminOnly)
	dashboard.Get("/stats", dashboardHandler.GetStats)
	dashboard.Get("/alerts", dashboardHandler.GetAlerts)
	dashboard.Get("/summary", dashboardHandler.GetSummary)

	finances := protected.Group("/finances", adminOnly)
	financeHandler := NewFinanceHandler(deps.FinanceUC)
	finances.Get("/", financeHandler.List)
	finances.Get("/categories", financeHandler.Categories)
	finances.Post("/", financeHandler.Create)
	finances.Put("/:id", financeHandler.Update)
	finances.Delete("/:id", financeHandler.Delete)

	reports := protected.Group("/reports", adminOnly)
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/", reportHandler.List)
	reports.Post("/", reportHandler.Generate)
	reports.Get("/export", reportHandler.Export)
	reports.Get("/:id", reportHandler.GetByID)
	reports.Get("/:id/download", reportHandler.Download)
	reports.Delete("/:id", reportHandler.Delete)

	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Put("/:id/code", userHandler.ChangeCode)
	users.Delete("/:id", userHandler.Delete)

	settingsGroup := protected.Group("/settings", adminOnly)
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settingsGroup.Get("/", settingsHandler.Get)
	settingsGroup.Put("/", settingsHandler.Update)
	settingsGroup.Put("/delete-password", settingsHandler.SetDeletePassword)
	settingsGroup.Put("/recovery-question", settingsHandler.SetRecoveryQuestion)
}
