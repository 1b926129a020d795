package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/starterbox/backend/internal/application/assistant"
)

// ChatService runs one assistant conversation turn
type ChatService interface {
	Chat(ctx context.Context, messages []assistant.ChatMessage) (*assistant.ChatResult, error)
}

// AssistantHandler exposes the conversational assistant. svc is nil
// when the assistant is disabled by configuration.
type AssistantHandler struct {
	BaseHandler
	svc ChatService
}

// NewAssistantHandler creates an assistant handler
func NewAssistantHandler(svc ChatService) *AssistantHandler {
	return &AssistantHandler{svc: svc}
}

// RegisterRoutes registers assistant routes
func (h *AssistantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/assistant/chat", h.Chat)
}

type chatRequest struct {
	Messages []assistant.ChatMessage `json:"messages" binding:"required,min=1,dive"`
}

// Chat runs one conversation turn against the assistant
func (h *AssistantHandler) Chat(c *gin.Context) {
	if h.svc == nil {
		h.Unavailable(c, "Assistant is not configured on this deployment")
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid chat payload: "+err.Error())
		return
	}

	result, err := h.svc.Chat(c.Request.Context(), req.Messages)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
