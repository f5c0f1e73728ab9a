package handler

import (
	"log"
	"net/http"

	"core/internal/model"
	"core/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler serves the stateless conversational endpoint. All dialogue
// state lives in the request/response context blob.
type ChatHandler struct {
	conversation *service.Conversation
}

func NewChatHandler(conversation *service.Conversation) *ChatHandler {
	return &ChatHandler{conversation: conversation}
}

// Chat handles POST /api/v1/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	// Work on a copy so the error path can echo the prior context back
	// untouched for the client to retry with.
	var working *model.RequirementState
	if req.Context != nil {
		cp := *req.Context
		working = &cp
	}

	reply, st, terminal, err := h.conversation.ProcessTurn(c.Request.Context(), working, req.Message)
	if err != nil {
		log.Printf("Chat turn failed: %v", err)
		c.JSON(http.StatusOK, model.ChatResponse{
			Message: service.ApologyMessage,
			Context: req.Context,
		})
		return
	}

	c.JSON(http.StatusOK, model.ChatResponse{
		Message:  reply,
		Context:  st,
		Terminal: terminal,
	})
}
