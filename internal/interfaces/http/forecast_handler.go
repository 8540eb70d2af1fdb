package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/reseller-forecast/internal/application/dto"
	"github.com/tu-usuario/reseller-forecast/internal/application/forecast"
)

// ForecastHandler maneja las peticiones HTTP del motor de pronóstico.
type ForecastHandler struct {
	svc *forecast.Service
}

// NewForecastHandler construye el handler.
func NewForecastHandler(svc *forecast.Service) *ForecastHandler {
	return &ForecastHandler{svc: svc}
}

// GetForecast godoc
// @Summary      Snapshot de pronóstico de reposición
// @Description  Devuelve las métricas por SKU ordenadas por prioridad de decisión,
//
//	el resumen agregado del catálogo y las banderas de ciclo
//	(loading, stale, error).
//
// @Tags         forecast
// @Produce      json
// @Success      200  {object}  dto.ForecastSnapshotResponse
// @Router       /api/forecast [get]
func (h *ForecastHandler) GetForecast(c *fiber.Ctx) error {
	return c.JSON(dto.ForecastSnapshotFromDomain(h.svc.Snapshot()))
}

// GetSummary godoc
// @Summary      Resumen agregado del catálogo
// @Tags         forecast
// @Produce      json
// @Success      200  {object}  dto.ForecastSummaryResponse
// @Router       /api/forecast/summary [get]
func (h *ForecastHandler) GetSummary(c *fiber.Ctx) error {
	return c.JSON(dto.ForecastSummaryFromDomain(h.svc.Snapshot()))
}

// Refetch godoc
// @Summary      Agendar un recálculo manual
// @Description  Dispara un recálculo bajo la misma disciplina de vuelo único que
//
//	las notificaciones del change feed: si hay un ciclo en vuelo, el
//	disparo se funde en una sola re-ejecución posterior.
//
// @Tags         forecast
// @Produce      json
// @Success      202  {object}  map[string]string
// @Router       /api/forecast/refetch [post]
func (h *ForecastHandler) Refetch(c *fiber.Ctx) error {
	h.svc.Refetch()
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "recálculo agendado"})
}
