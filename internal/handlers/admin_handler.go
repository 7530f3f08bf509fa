package handlers

import (
	"context"
	"net/http"
	"strconv"

	"freelancer-dao/internal/auth"
	"freelancer-dao/internal/models"
	"freelancer-dao/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService  *services.AdminService
	paramsService *services.ParamsService
	statsService  *services.StatsService
	eventService  *services.EventService
}

func NewAdminHandler(
	adminService *services.AdminService,
	paramsService *services.ParamsService,
	statsService *services.StatsService,
	eventService *services.EventService,
) *AdminHandler {
	return &AdminHandler{
		adminService:  adminService,
		paramsService: paramsService,
		statsService:  statsService,
		eventService:  eventService,
	}
}

// AdminMiddleware rejects requests from non-admin accounts.
func (h *AdminHandler) AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		if !h.adminService.IsAdmin(c.Request.Context(), userID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetParams returns the current protocol parameter version
// GET /api/params
func (h *AdminHandler) GetParams(c *gin.Context) {
	params, err := h.paramsService.Current(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get params"})
		return
	}

	c.JSON(http.StatusOK, params)
}

// SetFee publishes a new parameter version with an updated platform fee
// PUT /api/admin/params/fee
func (h *AdminHandler) SetFee(c *gin.Context) {
	h.setParam(c, h.paramsService.SetFeeBasisPoints)
}

// SetMinimumStake publishes a new parameter version with an updated stake floor
// PUT /api/admin/params/minimum-stake
func (h *AdminHandler) SetMinimumStake(c *gin.Context) {
	h.setParam(c, h.paramsService.SetMinimumStake)
}

// SetVotingPeriod publishes a new parameter version with an updated voting window
// PUT /api/admin/params/voting-period
func (h *AdminHandler) SetVotingPeriod(c *gin.Context) {
	h.setParam(c, h.paramsService.SetVotingPeriod)
}

func (h *AdminHandler) setParam(
	c *gin.Context,
	apply func(ctx context.Context, callerID uint, value int64) (*models.ProtocolParams, error),
) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.SetParamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params, err := apply(c.Request.Context(), userID, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, params)
}

// PromoteAdmin grants admin rights to another user
// POST /api/admin/promote/:id
func (h *AdminHandler) PromoteAdmin(c *gin.Context) {
	adminID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	rawID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	targetID := uint(rawID)

	var req struct {
		Role string `json:"role"`
	}
	// role is optional, default to a plain admin
	_ = c.ShouldBindJSON(&req)
	if req.Role == "" {
		req.Role = "admin"
	}

	admin, err := h.adminService.PromoteUserToAdmin(c.Request.Context(), targetID, req.Role, adminID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, admin)
}

// GetAdminLogs lists recorded admin actions
// GET /api/admin/logs
func (h *AdminHandler) GetAdminLogs(c *gin.Context) {
	limit, offset := parsePagination(c)

	logs, err := h.adminService.GetAdminLogs(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"total": len(logs),
	})
}

// GetStats returns aggregate platform figures
// GET /api/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetPlatformStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetEvents lists emitted domain events, optionally scoped to a project
// GET /api/events?project_id=
func (h *AdminHandler) GetEvents(c *gin.Context) {
	limit, offset := parsePagination(c)

	var projectID *uint
	if raw := c.Query("project_id"); raw != "" {
		id, ok := queryInt(c, "project_id")
		if !ok || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
			return
		}
		v := uint(id)
		projectID = &v
	}

	events, err := h.eventService.List(c.Request.Context(), projectID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"total":  len(events),
	})
}
