package handlers

import (
	"net/http"
	"strconv"

	"freelancer-dao/internal/auth"
	"freelancer-dao/internal/models"
	"freelancer-dao/internal/services"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService    *services.ProjectService
	settlementService *services.SettlementService
}

func NewProjectHandler(
	projectService *services.ProjectService,
	settlementService *services.SettlementService,
) *ProjectHandler {
	return &ProjectHandler{
		projectService:    projectService,
		settlementService: settlementService,
	}
}

// CreateProject posts a new project with an escrowed budget
// POST /api/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	clientID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), clientID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// GetProject retrieves a project by ID
// GET /api/projects/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// ListProjects retrieves projects with optional status/category filters
// GET /api/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	limit, offset := parsePagination(c)
	status := models.ProjectStatus(c.Query("status"))
	category := c.Query("category")

	projects, total, err := h.projectService.ListProjects(c.Request.Context(), status, category, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"total":    total,
	})
}

// CompleteProject settles an in-progress project
// POST /api/projects/:id/complete
func (h *ProjectHandler) CompleteProject(c *gin.Context) {
	callerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	result, err := h.settlementService.CompleteProject(c.Request.Context(), callerID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseProjectID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return 0, false
	}
	return uint(id), true
}
