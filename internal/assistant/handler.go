package assistant

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Assistant *Assistant
}

func NewHandler(a *Assistant) *Handler {
	return &Handler{Assistant: a}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/suggestions", h.suggestions)
	rg.GET("/messages", h.messages)
	rg.POST("/ask", h.ask)
	rg.GET("/ws", WSHandler(h.Assistant))
}

func (h *Handler) suggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"session": h.Assistant.SessionID(),
		"active":  h.Assistant.Active(),
		"items":   SuggestedQuestions,
	})
}

func (h *Handler) messages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"session": h.Assistant.SessionID(),
		"items":   h.Assistant.Messages(),
	})
}

type askReq struct {
	Text string `json:"text"`
}

func (h *Handler) ask(c *gin.Context) {
	var req askReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text required"})
		return
	}

	userMsg, reply, err := h.Assistant.Ask(req.Text)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"question": userMsg,
		"answer":   reply,
	})
}
