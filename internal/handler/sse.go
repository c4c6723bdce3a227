package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// setSSEHeaders prepares the response for a Server-Sent Events stream
func setSSEHeaders(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream; charset=utf-8")
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
}

// sendSSE writes one Server-Sent Event and flushes it to the client
func sendSSE(c *gin.Context, flusher http.Flusher, event string, data any) error {
	payload := []byte("{}")
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			_, _ = fmt.Fprint(c.Writer, "event: error\ndata: {\"error\": \"JSON marshal failed\"}\n\n")
			flusher.Flush()
			return fmt.Errorf("marshal %s event: %w", event, err)
		}
		payload = jsonData
	}

	if _, err := fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return fmt.Errorf("write %s event: %w", event, err)
	}
	flusher.Flush()
	return nil
}
