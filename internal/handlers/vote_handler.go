package handlers

import (
	"net/http"

	"freelancer-dao/internal/auth"
	"freelancer-dao/internal/models"
	"freelancer-dao/internal/services"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	voteService *services.VoteService
}

func NewVoteHandler(voteService *services.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// CastVote records a ballot for a project candidate
// POST /api/projects/:id/votes
func (h *VoteHandler) CastVote(c *gin.Context) {
	voterID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req models.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vote, err := h.voteService.CastVote(c.Request.Context(), voterID, projectID, req.CandidateID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, vote)
}

// GetVotes lists all live ballots for a project
// GET /api/projects/:id/votes
func (h *VoteHandler) GetVotes(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	votes, err := h.voteService.ListVotes(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get votes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"votes": votes,
		"total": len(votes),
	})
}

// GetTally returns the per-candidate weight totals for a project
// GET /api/projects/:id/tally
func (h *VoteHandler) GetTally(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	tally, err := h.voteService.Tally(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute tally"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tally": tally})
}
