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

	appforecast "github.com/tu-usuario/reseller-forecast/internal/application/forecast"
	fc "github.com/tu-usuario/reseller-forecast/internal/domain/forecast"
	"github.com/tu-usuario/reseller-forecast/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/reseller-forecast/internal/interfaces/http"
	"github.com/tu-usuario/reseller-forecast/pkg/config"
	"github.com/tu-usuario/reseller-forecast/pkg/logger"
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

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(rootCtx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	catalogRepo := postgres.NewCatalogRepository(pool)
	salesRepo := postgres.NewSalesLedgerRepository(pool)
	resellerRepo := postgres.NewResellerDirectoryRepository(pool)

	tuning := fc.Tuning{
		DemandWindowDays: cfg.Forecast.DemandWindowDays,
		TrendWindowDays:  cfg.Forecast.TrendWindowDays,
		TrendUpFactor:    cfg.Forecast.TrendUpFactor,
		TrendDownFactor:  cfg.Forecast.TrendDownFactor,
	}
	forecastSvc := appforecast.NewService(
		catalogRepo, salesRepo, resellerRepo,
		tuning, log.Component("forecast"),
	)

	// Cálculo inicial + suscripción al change feed. Cualquier notificación
	// en cualquiera de los dos canales dispara un recálculo completo.
	forecastSvc.Start(rootCtx)
	listener := postgres.NewListener(
		cfg.DB.ConnectionString(),
		[]string{cfg.Forecast.SalesChannel, cfg.Forecast.ProductsChannel},
		forecastSvc.Refetch,
		log.Component("changefeed"),
	)
	go listener.Run(rootCtx)

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
		Title:    "Reseller Forecast API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ForecastSvc: forecastSvc,
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
