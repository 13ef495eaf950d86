package reconciliation

import (
	"errors"

	"table-reconcile/core/logger"
	"table-reconcile/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for reconciliation runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the reconciliation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/reconcile", h.HandleReconcile)
}

// HandleReconcile runs a reconciliation job.
// @Summary Reconcile Two Files
// @Description Compares two delimited files by key and returns missing, extra, duplicate and mismatched records. Local paths and the prefix are relative to the server data directory. Artifacts are written only when a prefix is given.
// @Tags reconcile
// @Accept json
// @Produce json
// @Param job body Job true "Reconciliation job"
// @Success 200 {object} Result "Reconciliation Result"
// @Failure 400 {object} map[string]interface{} "Invalid Job"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var job Job
	if err := c.BodyParser(&job); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
			"code":  reconcile.ExitUsage,
		})
	}

	job, err := job.WithinDir(h.service.cfg.Server.DataDir)
	if err != nil {
		l.Warn("Rejected job path", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
			"code":  reconcile.ExitUsage,
		})
	}

	result, err := h.service.Run(c.Context(), job)
	if err != nil {
		var cfgErr *reconcile.ConfigError
		if errors.As(err, &cfgErr) {
			l.Warn("Rejected reconciliation job", zap.Error(err))
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
				"code":  cfgErr.Code,
			})
		}
		l.Error("Reconciliation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(result)
}
