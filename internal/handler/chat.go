package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"plantchat/internal/model"
	"plantchat/internal/service"
)

// Recommender answers customer messages with a recommendation envelope
type Recommender interface {
	Recommend(ctx context.Context, message string) *model.ChatResponse
	RecommendStream(ctx context.Context, message string, callback service.SearchEventCallback) (*model.ChatResponse, error)
}

// ChatHandler handles chat HTTP requests
type ChatHandler struct {
	recommender Recommender
}

// NewChatHandler creates a new chat handler. A nil recommender answers 503.
func NewChatHandler(recommender Recommender) *ChatHandler {
	return &ChatHandler{recommender: recommender}
}

// Chat handles POST /chat
func (h *ChatHandler) Chat(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	resp := h.recommender.Recommend(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, resp)
}

// ChatStream handles POST /chat/stream - SSE streaming chat
func (h *ChatHandler) ChatStream(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Streaming not supported"})
		return
	}
	setSSEHeaders(c)
	c.Status(http.StatusOK)

	ctx := c.Request.Context()
	_, err := h.recommender.RecommendStream(ctx, req.Message, func(event string, data any) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return sendSSE(c, flusher, event, data)
	})
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("chat stream ended early")
		if ctx.Err() == nil {
			_ = sendSSE(c, flusher, "error", gin.H{"error": err.Error()})
		}
	}
}

// bind validates the request and writes the error response when it is unusable
func (h *ChatHandler) bind(c *gin.Context) (model.ChatRequest, bool) {
	var req model.ChatRequest

	if h.recommender == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Agent not initialized. Please try again later."})
		return req, false
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return req, false
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message cannot be empty."})
		return req, false
	}

	event := log.Ctx(c.Request.Context()).Info().Int("message_length", len(req.Message))
	if req.UserID != nil {
		event = event.Str("user_id", *req.UserID)
	}
	if req.SessionID != nil {
		event = event.Str("session_id", *req.SessionID)
	}
	event.Msg("chat request")

	return req, true
}
