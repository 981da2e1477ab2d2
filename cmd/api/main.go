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
	"github.com/shopspring/decimal"

	_ "github.com/jhoicas/replenishment-planner/docs"
	"github.com/jhoicas/replenishment-planner/internal/application/auth"
	"github.com/jhoicas/replenishment-planner/internal/application/planning"
	infrapdf "github.com/jhoicas/replenishment-planner/internal/infrastructure/pdf"
	"github.com/jhoicas/replenishment-planner/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/replenishment-planner/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/replenishment-planner/internal/interfaces/http"
	"github.com/jhoicas/replenishment-planner/pkg/config"
	"github.com/jhoicas/replenishment-planner/pkg/logger"
)

// @title                       Replenishment Planner API
// @version                     1.0
// @description                 Punto de reorden, stock de seguridad y cantidad a pedir por SKU.
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}

	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogUC := planning.NewCatalogUseCase(txRunner, decimal.NewFromFloat(cfg.Planning.DefaultZValue), time.Now)
	planningUC := planning.NewPlanningUseCase(txRunner, time.Now)
	exportUC := planning.NewExportUseCase(
		planningUC,
		infraxlsx.NewExcelizeExporter(),
		infrapdf.NewMarotoPlanGenerator(),
		time.Now,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Replenishment Planner API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CatalogUC:  catalogUC,
		PlanningUC: planningUC,
		ExportUC:   exportUC,
		JWTSecret:  cfg.JWT.Secret,
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
