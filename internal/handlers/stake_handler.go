package handlers

import (
	"net/http"
	"strconv"

	"freelancer-dao/internal/auth"
	"freelancer-dao/internal/models"
	"freelancer-dao/internal/services"

	"github.com/gin-gonic/gin"
)

type StakeHandler struct {
	stakeService *services.StakeService
}

func NewStakeHandler(stakeService *services.StakeService) *StakeHandler {
	return &StakeHandler{stakeService: stakeService}
}

// PlaceStake stakes tokens into a skill category
// POST /api/stakes
func (h *StakeHandler) PlaceStake(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.StakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stake, err := h.stakeService.Stake(c.Request.Context(), userID, req.Category, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, stake)
}

// GetMyProfile returns the caller's freelancer profile with stakes
// GET /api/stakes
func (h *StakeHandler) GetMyProfile(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.stakeService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetFreelancer returns a freelancer profile by user ID
// GET /api/freelancers/:id
func (h *StakeHandler) GetFreelancer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	profile, err := h.stakeService.GetProfile(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "freelancer not found"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetPool lists the skill pool of a category
// GET /api/pools/:category
func (h *StakeHandler) GetPool(c *gin.Context) {
	category := c.Param("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category required"})
		return
	}

	members, err := h.stakeService.GetPool(c.Request.Context(), category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get pool"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"members":  members,
		"total":    len(members),
	})
}
