package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/reseller-forecast/internal/application/forecast"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ForecastSvc *forecast.Service
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	forecastGroup := api.Group("/forecast")
	forecastHandler := NewForecastHandler(deps.ForecastSvc)
	forecastGroup.Get("/", forecastHandler.GetForecast)
	forecastGroup.Get("/summary", forecastHandler.GetSummary)
	forecastGroup.Post("/refetch", forecastHandler.Refetch)
}
