package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xaenox/asesor-legal/internal/assistant"
	"github.com/xaenox/asesor-legal/internal/conversation"
	"github.com/xaenox/asesor-legal/internal/knowledge"
	"github.com/xaenox/asesor-legal/internal/models"
	"go.uber.org/zap"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type Handler struct {
	service       *conversation.Service
	assistant     *assistant.Assistant
	summaryWindow int
	logger        *zap.Logger
}

func NewHandler(service *conversation.Service, asst *assistant.Assistant, summaryWindow int, logger *zap.Logger) *Handler {
	return &Handler{
		service:       service,
		assistant:     asst,
		summaryWindow: summaryWindow,
		logger:        logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/healthz", h.handleHealth)

	api := router.Group("/api")
	api.POST("/chat", h.handleChat)
	api.GET("/quick-actions", h.handleQuickActions)
	api.GET("/quick-actions/:key", h.handleQuickAction)
	api.GET("/scenarios", h.handleScenarios)
	api.GET("/scenarios/:key", h.handleScenario)
	api.PUT("/users/:id/scenario", h.handleSetScenario)
	api.GET("/users/:id/messages", h.handleMessages)
	api.GET("/users/:id/summary", h.handleSummary)
}

type chatRequest struct {
	Message             *string               `json:"message"`
	UserID              *int64                `json:"userId"`
	LegalScenario       string                `json:"legalScenario"`
	EmotionalState      string                `json:"emotionalState"`
	ConversationHistory []models.HistoryEntry `json:"conversationHistory"`
}

type scenarioRequest struct {
	Scenario string `json:"scenario"`
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": "cuerpo de la solicitud inválido"})
		return
	}

	v := assistant.ValidateField(req.Message)
	if !v.Valid {
		c.JSON(http.StatusBadRequest, v)
		return
	}

	// Without a user id the call is stateless and the caller supplies the context.
	if req.UserID == nil {
		resp := h.assistant.GenerateResponse(v.Message, models.ConversationContext{
			LegalScenario:       req.LegalScenario,
			EmotionalState:      req.EmotionalState,
			ConversationHistory: req.ConversationHistory,
		})
		c.JSON(http.StatusOK, resp)
		return
	}

	ctx := c.Request.Context()
	if req.LegalScenario != "" {
		if err := h.service.SetScenario(ctx, *req.UserID, req.LegalScenario); err != nil {
			h.writeError(c, err)
			return
		}
	}

	resp, err := h.service.Handle(ctx, *req.UserID, v.Message)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) handleQuickActions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"quickActions": knowledge.QuickActions()})
}

func (h *Handler) handleQuickAction(c *gin.Context) {
	action := knowledge.GetQuickAction(c.Param("key"))
	if action == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "acción rápida no encontrada"})
		return
	}
	c.JSON(http.StatusOK, action)
}

func (h *Handler) handleScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"scenarios": knowledge.LegalScenarios()})
}

func (h *Handler) handleScenario(c *gin.Context) {
	entry, ok := knowledge.Lookup(c.Param("key"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "escenario no encontrado"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *Handler) handleSetScenario(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	var req scenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de la solicitud inválido"})
		return
	}

	if err := h.service.SetScenario(c.Request.Context(), userID, req.Scenario); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"userId": userID, "legalScenario": req.Scenario})
}

func (h *Handler) handleMessages(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit inválido"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	messages, err := h.service.History(c.Request.Context(), userID, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *Handler) handleSummary(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), userID, h.summaryWindow)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case assistant.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": err.Error()})
	case errors.Is(err, conversation.ErrUnknownScenario):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Request failed",
			zap.Error(err),
			zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
	}
}

func userIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id de usuario inválido"})
		return 0, false
	}
	return id, true
}
