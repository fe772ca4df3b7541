package handlers

import (
	"fmt"

	"bid-leveler/internal/dto"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ComparisonHandler struct {
	comparisonService ComparisonService
	exportService     ExportService
	logger            *zap.Logger
}

func NewComparisonHandler(comparisonService ComparisonService, exportService ExportService, logger *zap.Logger) *ComparisonHandler {
	return &ComparisonHandler{
		comparisonService: comparisonService,
		exportService:     exportService,
		logger:            logger,
	}
}

// CompareBids godoc
// @Summary Level the bids of a project
// @Description Preprocess all bids under a shared character budget, send them to the LLM and store the analysis
// @Tags comparisons
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body dto.CompareRequest false "Comparison options"
// @Security Bearer
// @Success 201 {object} dto.ComparisonResponse
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/projects/{id}/compare [post]
func (h *ComparisonHandler) CompareBids(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	var req dto.CompareRequest
	if len(c.Body()) > 0 {
		if msg := bindBody(c, &req); msg != "" {
			return errorJSON(c, fiber.StatusBadRequest, msg)
		}
	}

	resp, err := h.comparisonService.Compare(c.Context(), userID, projectID, &req)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to compare bids")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListComparisons godoc
// @Summary List stored comparisons of a project, newest first
// @Tags comparisons
// @Produce json
// @Param id path string true "Project ID"
// @Param limit query int false "Limit" default(10)
// @Security Bearer
// @Success 200 {array} dto.ComparisonResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/projects/{id}/comparisons [get]
func (h *ComparisonHandler) ListComparisons(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	comparisons, err := h.comparisonService.List(c.Context(), userID, projectID, c.QueryInt("limit", 10))
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to list comparisons")
	}

	return c.JSON(comparisons)
}

// ExportComparison godoc
// @Summary Download the latest comparison
// @Description XLSX workbook or PDF report with the leveling table and the analysis
// @Tags comparisons
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce application/pdf
// @Param id path string true "Project ID"
// @Param format query string false "xlsx or pdf" default(xlsx)
// @Security Bearer
// @Success 200 {file} file
// @Failure 404 {object} map[string]string
// @Failure 415 {object} map[string]string
// @Router /api/v1/projects/{id}/export [get]
func (h *ComparisonHandler) ExportComparison(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	report, err := h.exportService.Export(c.Context(), userID, projectID, c.Query("format", "xlsx"))
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to export comparison")
	}

	c.Set(fiber.HeaderContentType, report.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.FileName))
	return c.Send(report.Data)
}
