package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BidHandler struct {
	bidService BidService
	logger     *zap.Logger
}

func NewBidHandler(bidService BidService, logger *zap.Logger) *BidHandler {
	return &BidHandler{
		bidService: bidService,
		logger:     logger,
	}
}

// UploadBid godoc
// @Summary Upload a contractor bid
// @Description Upload a bid document (pdf, docx, txt, md, csv). Text is extracted and the total cost is recorded verbatim.
// @Tags bids
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Project ID"
// @Param file formData file true "Bid document"
// @Param contractor formData string false "Contractor name, defaults to the file name"
// @Security Bearer
// @Success 201 {object} dto.BidResponse
// @Failure 400 {object} map[string]string
// @Failure 415 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/projects/{id}/bids [post]
func (h *BidHandler) UploadBid(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "File is required")
	}

	src, err := file.Open()
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Failed to open file")
	}
	defer src.Close()

	bid, err := h.bidService.Upload(c.Context(), userID, projectID, src, file.Filename, c.FormValue("contractor"))
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to upload bid")
	}

	return c.Status(fiber.StatusCreated).JSON(bid)
}

// ListBids godoc
// @Summary List the bids of a project
// @Tags bids
// @Produce json
// @Param id path string true "Project ID"
// @Security Bearer
// @Success 200 {array} dto.BidResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/projects/{id}/bids [get]
func (h *BidHandler) ListBids(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	bids, err := h.bidService.List(c.Context(), userID, projectID)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to list bids")
	}

	return c.JSON(bids)
}

// GetBid godoc
// @Summary Get a bid with its extracted text
// @Tags bids
// @Produce json
// @Param id path string true "Bid ID"
// @Security Bearer
// @Success 200 {object} dto.BidResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/bids/{id} [get]
func (h *BidHandler) GetBid(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	bidID, ok := pathID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid bid ID")
	}

	bid, err := h.bidService.Get(c.Context(), userID, bidID)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to get bid")
	}

	return c.JSON(bid)
}

// DeleteBid godoc
// @Summary Delete a bid and its stored file
// @Tags bids
// @Param id path string true "Bid ID"
// @Security Bearer
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/bids/{id} [delete]
func (h *BidHandler) DeleteBid(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	bidID, ok := pathID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid bid ID")
	}

	if err := h.bidService.Delete(c.Context(), userID, bidID); err != nil {
		return serviceError(c, h.logger, err, "Failed to delete bid")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
