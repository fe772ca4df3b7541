package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UsageHandler struct {
	usageService UsageService
	logger       *zap.Logger
}

func NewUsageHandler(usageService UsageService, logger *zap.Logger) *UsageHandler {
	return &UsageHandler{
		usageService: usageService,
		logger:       logger,
	}
}

// GetUsage godoc
// @Summary Token usage of the current user
// @Tags usage
// @Produce json
// @Param since query string false "RFC3339 lower bound"
// @Security Bearer
// @Success 200 {object} dto.UsageSummaryResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/usage [get]
func (h *UsageHandler) GetUsage(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var since time.Time
	if raw := c.Query("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "since must be an RFC3339 timestamp")
		}
		since = t
	}

	summary, err := h.usageService.Summary(c.Context(), userID, since)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to load usage")
	}

	return c.JSON(summary)
}
