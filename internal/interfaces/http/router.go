package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soltecla/solarops-api/internal/application/access"
	"github.com/soltecla/solarops-api/internal/application/analytics"
	"github.com/soltecla/solarops-api/internal/application/auth"
	"github.com/soltecla/solarops-api/internal/application/enterprise"
	"github.com/soltecla/solarops-api/internal/application/report"
	"github.com/soltecla/solarops-api/internal/application/team"
	"github.com/soltecla/solarops-api/internal/application/usecase"
	"github.com/soltecla/solarops-api/internal/application/work"
	"github.com/soltecla/solarops-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Resolver     *access.Resolver
	AuthUC       *auth.AuthUseCase
	EnterpriseUC *enterprise.EnterpriseUseCase
	UserUC       *usecase.UserUseCase
	TeamUC       *team.TeamUseCase
	EquipmentUC  *usecase.EquipmentUseCase
	MaterialUC   *usecase.MaterialUseCase
	WorkUC       *work.WorkUseCase
	ReportUC     *report.ReportUseCase
	SummaryUC    *analytics.SummaryUseCase
	FileRemover  FileRemover
	Log          *logger.Logger
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	guard := NewGuard(deps.Resolver)
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token). El middleware solo valida la
	// firma; el guard revalida usuario y tenant contra la BD en cada petición.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Enterprises
	enterprises := protected.Group("/enterprises")
	enterpriseHandler := NewEnterpriseHandler(guard, deps.EnterpriseUC)
	enterprises.Post("/", enterpriseHandler.Create)
	enterprises.Get("/", enterpriseHandler.ListMine)
	enterprises.Get("/current", enterpriseHandler.Get)
	enterprises.Put("/current", enterpriseHandler.Update)
	enterprises.Put("/current/owners", enterpriseHandler.ReconcileOwners)

	// Users (plantilla, clientes y perfil propio)
	users := protected.Group("/users")
	userHandler := NewUserHandler(guard, deps.UserUC, deps.FileRemover, deps.Log)
	users.Post("/staff", userHandler.CreateStaff)
	users.Get("/staff", userHandler.ListStaff)
	users.Post("/customers", userHandler.CreateCustomer)
	users.Get("/customers", userHandler.ListCustomers)
	users.Put("/profile", userHandler.UpdateProfile)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/:id/block", userHandler.Block)
	users.Post("/:id/unblock", userHandler.Unblock)

	// Teams (cuadrillas)
	teams := protected.Group("/teams")
	teamHandler := NewTeamHandler(guard, deps.TeamUC)
	teams.Post("/", teamHandler.Create)
	teams.Get("/", teamHandler.List)
	teams.Get("/:id", teamHandler.GetByID)
	teams.Put("/:id", teamHandler.Update)
	teams.Delete("/:id", teamHandler.Delete)
	teams.Put("/:id/members", teamHandler.ReconcileMembers)

	// Equipments (catálogo)
	equipments := protected.Group("/equipments")
	equipmentHandler := NewEquipmentHandler(guard, deps.EquipmentUC)
	equipments.Post("/", equipmentHandler.Create)
	equipments.Get("/", equipmentHandler.List)
	equipments.Get("/:id", equipmentHandler.GetByID)
	equipments.Put("/:id", equipmentHandler.Update)
	equipments.Delete("/:id", equipmentHandler.Delete)

	// Materials (catálogo)
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(guard, deps.MaterialUC)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", materialHandler.Update)
	materials.Delete("/:id", materialHandler.Delete)

	// Works (obras)
	works := protected.Group("/works")
	workHandler := NewWorkHandler(guard, deps.WorkUC, deps.ReportUC)
	works.Post("/", workHandler.Create)
	works.Get("/", workHandler.List)
	works.Get("/:id", workHandler.GetByID)
	works.Put("/:id", workHandler.Update)
	works.Post("/:id/finish", workHandler.Finish)
	works.Post("/:id/cancel", workHandler.Cancel)
	works.Put("/:id/equipments", workHandler.ReconcileEquipment)
	works.Post("/:id/materials", workHandler.AddMaterial)
	works.Delete("/:id/materials/:materialId", workHandler.RemoveMaterial)
	works.Post("/:id/transactions", workHandler.AddTransaction)
	works.Delete("/:id/transactions/:transactionId", workHandler.RemoveTransaction)
	works.Get("/:id/report", workHandler.DownloadReport)

	// Dashboard (agregados financieros)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(guard, deps.SummaryUC)
	dashboard.Get("/summary", dashboardHandler.Summary)

	// Admin (plataforma)
	admin := protected.Group("/admin")
	adminHandler := NewAdminHandler(guard, deps.UserUC, deps.EnterpriseUC)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users/:id/block", adminHandler.BlockUser)
	admin.Post("/users/:id/unblock", adminHandler.UnblockUser)
	admin.Get("/enterprises", adminHandler.ListEnterprises)
}
