package handlers

import (
	"net/http"

	"docassist/middleware"
	"docassist/services/assistant"
	"docassist/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler exposes the conversational assistant. The endpoint itself
// accepts anonymous callers; the assistant decides per tool what requires
// a login.
type ChatHandler struct {
	Assistant assistant.AssistantService
}

// ChatMessageHandler handles POST /api/chat.
func (h *ChatHandler) ChatMessageHandler(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	auth := authContextFrom(c)
	reply, err := h.Assistant.HandleMessage(c.Request.Context(), auth, req.Message)
	if err != nil {
		utils.GetLogger().Error("Assistant failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "assistant unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// authContextFrom builds the assistant's caller identity from the claims
// the optional auth middleware stored, or nil for anonymous callers.
func authContextFrom(c *gin.Context) *assistant.AuthContext {
	userID := c.GetString(middleware.CtxUserID)
	if userID == "" {
		return nil
	}
	return &assistant.AuthContext{
		UserID: userID,
		Email:  c.GetString(middleware.CtxUserEmail),
		Role:   c.GetString(middleware.CtxUserRole),
	}
}
