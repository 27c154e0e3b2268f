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

	"github.com/soltecla/solarops-api/internal/application/access"
	"github.com/soltecla/solarops-api/internal/application/analytics"
	"github.com/soltecla/solarops-api/internal/application/auth"
	"github.com/soltecla/solarops-api/internal/application/enterprise"
	"github.com/soltecla/solarops-api/internal/application/report"
	"github.com/soltecla/solarops-api/internal/application/team"
	"github.com/soltecla/solarops-api/internal/application/usecase"
	"github.com/soltecla/solarops-api/internal/application/work"
	infrapdf "github.com/soltecla/solarops-api/internal/infrastructure/pdf"
	"github.com/soltecla/solarops-api/internal/infrastructure/postgres"
	"github.com/soltecla/solarops-api/internal/infrastructure/storage"
	httpRouter "github.com/soltecla/solarops-api/internal/interfaces/http"
	"github.com/soltecla/solarops-api/pkg/config"
	"github.com/soltecla/solarops-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	enterpriseRepo := postgres.NewEnterpriseRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)
	equipmentRepo := postgres.NewEquipmentRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	workRepo := postgres.NewWorkRepository(pool)
	workEquipRepo := postgres.NewWorkEquipmentRepository(pool)
	workMaterialRepo := postgres.NewWorkMaterialRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	fileStore, err := storage.NewFileStore(cfg.Storage.BaseDir)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar storage de archivos")
	}

	resolver := access.NewResolver(userRepo, enterpriseRepo)

	authUC := auth.NewAuthUseCase(userRepo, enterpriseRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	enterpriseUC := enterprise.NewEnterpriseUseCase(txRunner, enterpriseRepo, userRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	teamUC := team.NewTeamUseCase(txRunner, teamRepo, userRepo)
	equipmentUC := usecase.NewEquipmentUseCase(equipmentRepo)
	materialUC := usecase.NewMaterialUseCase(materialRepo)
	workUC := work.NewWorkUseCase(
		txRunner, workRepo, workEquipRepo, workMaterialRepo,
		transactionRepo, userRepo, teamRepo,
	)
	summaryUC := analytics.NewSummaryUseCase(analyticsRepo, log)

	// PDF: informe de obra con equipos, materiales y balance
	reportGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := report.NewReportUseCase(
		workRepo, workEquipRepo, workMaterialRepo, transactionRepo,
		equipmentRepo, enterpriseRepo, userRepo, reportGenerator,
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
		Title:    "SolarOps API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Resolver:     resolver,
		AuthUC:       authUC,
		EnterpriseUC: enterpriseUC,
		UserUC:       userUC,
		TeamUC:       teamUC,
		EquipmentUC:  equipmentUC,
		MaterialUC:   materialUC,
		WorkUC:       workUC,
		ReportUC:     reportUC,
		SummaryUC:    summaryUC,
		FileRemover:  fileStore,
		Log:          log,
		JWTSecret:    cfg.JWT.Secret,
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
