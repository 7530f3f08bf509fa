package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"freelancer-dao/internal/services"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors to HTTP status codes. Unknown errors are
// reported as 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInsufficientFunds),
		errors.Is(err, services.ErrNoFreelancersAvailable),
		errors.Is(err, services.ErrVotingClosed),
		errors.Is(err, services.ErrVoterNotActive),
		errors.Is(err, services.ErrCandidateNotActive),
		errors.Is(err, services.ErrCandidateUnderqualified),
		errors.Is(err, services.ErrNoVotingPower),
		errors.Is(err, services.ErrNotInProgress),
		errors.Is(err, services.ErrProjectNotOpen),
		errors.Is(err, services.ErrFeeTooHigh),
		errors.Is(err, services.ErrInvalidParameters):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// parsePagination reads limit/offset query params with sane bounds.
func parsePagination(c *gin.Context) (int, int) {
	limit := 20
	offset := 0

	if l, ok := queryInt(c, "limit"); ok && l > 0 && l <= 100 {
		limit = l
	}
	if o, ok := queryInt(c, "offset"); ok && o >= 0 {
		offset = o
	}
	return limit, offset
}

func queryInt(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, false
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return val, true
}
