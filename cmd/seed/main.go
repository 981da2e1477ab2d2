// seed crea el esquema y, opcionalmente, un propietario demo con SKUs y seis meses de ventas.
//
// Uso:
//
//	go run ./cmd/seed schema
//	go run ./cmd/seed demo --identifier demo@example.com --password demo12345
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/replenishment-planner/internal/application/auth"
	"github.com/jhoicas/replenishment-planner/internal/application/dto"
	"github.com/jhoicas/replenishment-planner/internal/application/planning"
	"github.com/jhoicas/replenishment-planner/internal/infrastructure/postgres"
	"github.com/jhoicas/replenishment-planner/pkg/config"
	"github.com/jhoicas/replenishment-planner/pkg/logger"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "db-url",
		Usage:   "Connection string de PostgreSQL (por defecto la configuración de la app)",
		EnvVars: []string{"DATABASE_URL"},
	}
}

func main() {
	app := &cli.App{
		Name:  "seed",
		Usage: "Prepara la base de datos del planificador de reposición",
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Crea las tablas si no existen",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: runSchema,
			},
			{
				Name:  "demo",
				Usage: "Crea un propietario demo con SKUs y ventas de los últimos 6 meses",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "identifier",
						Usage:   "Identificador del propietario demo",
						Value:   "demo@example.com",
						EnvVars: []string{"SEED_IDENTIFIER"},
					},
					&cli.StringFlag{
						Name:    "password",
						Usage:   "Password del propietario demo (mínimo 8 caracteres)",
						Value:   "demo12345",
						EnvVars: []string{"SEED_PASSWORD"},
					},
				},
				Action: runDemo,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if url := c.String("db-url"); url != "" {
		cfg.DB.DatabaseURL = url
	}
	return cfg, nil
}

func runSchema(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	pool, err := postgres.NewPool(c.Context, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(c.Context, pool); err != nil {
		return err
	}
	log.Info().Msg("esquema listo")
	return nil
}

func runDemo(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	pool, err := postgres.NewPool(c.Context, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(c.Context, pool); err != nil {
		return err
	}

	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	user, err := authUC.RegisterUser(c.Context, dto.RegisterRequest{
		Identifier: c.String("identifier"),
		Password:   c.String("password"),
		Name:       "Demo",
	})
	if err != nil {
		return fmt.Errorf("registrar propietario demo: %w", err)
	}

	catalog := planning.NewCatalogUseCase(postgres.NewTxRunner(pool), decimal.NewFromFloat(cfg.Planning.DefaultZValue), time.Now)
	for _, p := range demoProducts(time.Now()) {
		if _, err := catalog.SaveProductWithSales(c.Context, user.ID, p); err != nil {
			return fmt.Errorf("guardar %s: %w", p.SKU, err)
		}
		log.Info().Str("sku", p.SKU).Int("months", len(p.Sales)).Msg("SKU demo creado")
	}
	log.Info().Str("identifier", user.Identifier).Str("owner_id", user.ID).Msg("propietario demo listo")
	return nil
}
