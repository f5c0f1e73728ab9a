package handler

import (
	"net/http"

	"core/internal/model"
	"core/internal/repository"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler records user actions on search results, tying them back
// to the logged search for relevance analysis.
type FeedbackHandler struct {
	repo *repository.PostgresRepository
}

func NewFeedbackHandler(repo *repository.PostgresRepository) *FeedbackHandler {
	return &FeedbackHandler{repo: repo}
}

var validActions = map[string]bool{
	"shortlist":    true,
	"contact":      true,
	"view_details": true,
}

// Submit handles POST /api/v1/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req model.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}
	if !validActions[req.Action] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action, expected shortlist, contact or view_details"})
		return
	}

	if err := h.repo.LogFeedback(c.Request.Context(), req.SearchID, req.WarehouseID, req.Action); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to record feedback",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.FeedbackResponse{
		Success: true,
		Message: "Feedback recorded",
	})
}
