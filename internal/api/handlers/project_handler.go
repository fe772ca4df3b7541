package handlers

import (
	"bid-leveler/internal/dto"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ProjectHandler struct {
	projectService ProjectService
	logger         *zap.Logger
}

func NewProjectHandler(projectService ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// CreateProject godoc
// @Summary Create a project
// @Description Create a construction project that bids are collected for
// @Tags projects
// @Accept json
// @Produce json
// @Param request body dto.ProjectRequest true "Project"
// @Security Bearer
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/projects [post]
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.ProjectRequest
	if msg := bindBody(c, &req); msg != "" {
		return errorJSON(c, fiber.StatusBadRequest, msg)
	}

	project, err := h.projectService.Create(c.Context(), userID, &req)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to create project")
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

// ListProjects godoc
// @Summary List projects
// @Tags projects
// @Produce json
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Security Bearer
// @Success 200 {array} dto.ProjectResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/projects [get]
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	projects, err := h.projectService.List(c.Context(), userID, c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to list projects")
	}

	return c.JSON(projects)
}

// GetProject godoc
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Security Bearer
// @Success 200 {object} dto.ProjectResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/projects/{id} [get]
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	project, err := h.projectService.Get(c.Context(), userID, projectID)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to get project")
	}

	return c.JSON(project)
}

// UpdateProject godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body dto.ProjectRequest true "Project"
// @Security Bearer
// @Success 200 {object} dto.ProjectResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	var req dto.ProjectRequest
	if msg := bindBody(c, &req); msg != "" {
		return errorJSON(c, fiber.StatusBadRequest, msg)
	}

	project, err := h.projectService.Update(c.Context(), userID, projectID, &req)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to update project")
	}

	return c.JSON(project)
}

// DeleteProject godoc
// @Summary Delete a project with its bids and comparisons
// @Tags projects
// @Param id path string true "Project ID"
// @Security Bearer
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	if err := h.projectService.Delete(c.Context(), userID, projectID); err != nil {
		return serviceError(c, h.logger, err, "Failed to delete project")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
