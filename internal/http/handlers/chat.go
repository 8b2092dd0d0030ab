package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bhai/internal/chat"
	"bhai/internal/http/middleware"
	"bhai/internal/models"
	"bhai/internal/storage"
)

type ChatHandler struct {
	Store     *storage.Store
	Completer chat.Completer
	Log       *zap.Logger
}

// NewConversation starts an empty conversation for the caller.
func (h *ChatHandler) NewConversation(c *gin.Context) {
	session := chat.NewSession(c.Request.Context(), h.Store, h.Completer, h.Log, middleware.MustUserID(c), "")
	h.Store.SaveConversation(c.Request.Context(), session.Conversation())
	c.JSON(http.StatusCreated, gin.H{"conversation": session.Conversation()})
}

// ListConversations returns the caller's conversation history, most recently
// updated first, so past chats can be reviewed or resumed.
func (h *ChatHandler) ListConversations(c *gin.Context) {
	convs := h.Store.ConversationsForUser(c.Request.Context(), middleware.MustUserID(c))
	if convs == nil {
		convs = []models.Conversation{}
	}
	c.JSON(http.StatusOK, gin.H{"conversations": convs})
}

func (h *ChatHandler) GetConversation(c *gin.Context) {
	conv, ok := h.Store.ConversationByID(c.Request.Context(), c.Param("id"))
	if !ok || conv.UserID != middleware.MustUserID(c) {
		c.JSON(http.StatusNotFound, gin.H{"message": "conversation not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation": conv})
}

type sendMessageReq struct {
	Content string `json:"content"`
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID := middleware.MustUserID(c)
	conv, ok := h.Store.ConversationByID(c.Request.Context(), c.Param("id"))
	if !ok || conv.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"message": "conversation not found"})
		return
	}

	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body", "error": err.Error()})
		return
	}

	session := chat.NewSession(c.Request.Context(), h.Store, h.Completer, h.Log, userID, conv.ID)
	reply, err := session.SendMessage(c.Request.Context(), req.Content)
	if err != nil {
		// The user message is already persisted; only the reply failed.
		c.JSON(http.StatusBadGateway, gin.H{
			"message":      "Failed to send message. Please try again.",
			"conversation": session.Conversation(),
		})
		return
	}
	if reply == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "message is empty"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply, "conversation": session.Conversation()})
}

// ClearConversation replaces the conversation with a fresh empty one. The
// old conversation stays retrievable by its identifier.
func (h *ChatHandler) ClearConversation(c *gin.Context) {
	userID := middleware.MustUserID(c)
	conv, ok := h.Store.ConversationByID(c.Request.Context(), c.Param("id"))
	if !ok || conv.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"message": "conversation not found"})
		return
	}
	session := chat.NewSession(c.Request.Context(), h.Store, h.Completer, h.Log, userID, conv.ID)
	session.ClearConversation(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"conversation": session.Conversation()})
}
