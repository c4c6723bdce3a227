package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BuildInfo identifies the running binary
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// SystemHandler serves health, version and welcome endpoints
type SystemHandler struct {
	build       BuildInfo
	storeDriver string
	llmEnabled  bool
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(build BuildInfo, storeDriver string, llmEnabled bool) *SystemHandler {
	return &SystemHandler{build: build, storeDriver: storeDriver, llmEnabled: llmEnabled}
}

// Root handles GET /
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Plant Recommendation Chatbot API!"})
}

// Health handles GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"service":      "plantchat",
		"store_driver": h.storeDriver,
		"llm_enabled":  h.llmEnabled,
		"version":      h.build.Version,
		"build_time":   h.build.BuildTime,
		"git_commit":   h.build.GitCommit,
	})
}

// Version handles GET /version
func (h *SystemHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":    h.build.Version,
		"build_time": h.build.BuildTime,
		"git_commit": h.build.GitCommit,
	})
}
