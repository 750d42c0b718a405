package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Pinger verifica que el almacén responda.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responde el estado del servicio y de la base de datos.
type HealthHandler struct {
	service string
	db      Pinger
}

// NewHealthHandler construye el handler.
func NewHealthHandler(service string, db Pinger) *HealthHandler {
	return &HealthHandler{service: service, db: db}
}

// HealthResponse estado del servicio.
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Service  string `json:"service" example:"employee-api"`
	Database string `json:"database" example:"ok"`
}

// Health godoc
// @Summary      Estado del servicio y de la base de datos
// @Tags         Health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp := HealthResponse{Status: "ok", Service: h.service, Database: "ok"}
	if err := h.db.Ping(c.UserContext()); err != nil {
		resp.Status = "degraded"
		resp.Database = "unavailable"
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
