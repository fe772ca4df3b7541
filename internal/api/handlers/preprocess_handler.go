package handlers

import (
	"bid-leveler/internal/dto"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PreprocessHandler struct {
	preprocessService PreprocessService
	logger            *zap.Logger
}

func NewPreprocessHandler(preprocessService PreprocessService, logger *zap.Logger) *PreprocessHandler {
	return &PreprocessHandler{
		preprocessService: preprocessService,
		logger:            logger,
	}
}

// Preprocess godoc
// @Summary Reduce documents to fit an LLM context window
// @Description Strips boilerplate, selects key sections, summarizes and truncates each document while keeping cost figures. Returns one result per input document in input order; per-document failures are reported in the error field.
// @Tags preprocess
// @Accept json
// @Produce json
// @Param request body dto.PreprocessRequest true "Documents and budget"
// @Security Bearer
// @Success 200 {array} preprocess.Result
// @Failure 400 {object} map[string]string
// @Router /api/v1/preprocess [post]
func (h *PreprocessHandler) Preprocess(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.PreprocessRequest
	if msg := bindBody(c, &req); msg != "" {
		return errorJSON(c, fiber.StatusBadRequest, msg)
	}

	return c.JSON(h.preprocessService.Preprocess(c.Context(), userID, &req))
}
