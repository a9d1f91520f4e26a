package api

import (
	"io"
	"net/http"
	"time"

	"playpoint/internal/events"
	"playpoint/internal/pkg/clock"
	"playpoint/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

type StreamHandler struct {
	hub   *events.Hub
	clock clock.Clock
	cfg   config.StreamConfig
}

func NewStreamHandler(hub *events.Hub, clk clock.Clock, cfg config.StreamConfig) *StreamHandler {
	return &StreamHandler{hub: hub, clock: clk, cfg: cfg}
}

// @Summary Event stream
// @Description Server-sent events feed of session, booking, payment and station changes
// @Tags stream
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Router /stream [get]
func (h *StreamHandler) Stream(c *gin.Context) {
	sub := h.hub.Subscribe()
	defer h.hub.Unsubscribe(sub)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	keepAlive := time.NewTicker(h.cfg.KeepAlive)
	defer keepAlive.Stop()

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case <-keepAlive.C:
			c.SSEvent("keepalive", "")
			return true
		case ev, ok := <-sub.Events():
			if !ok {
				return false
			}
			// A slow viewer lost events; tell it so it can resync from the
			// query endpoints instead of trusting its local picture.
			if dropped := sub.TakeDropped(); dropped > 0 {
				lag := events.Lagged{Dropped: dropped, OccurredAt: h.clock.Now()}
				c.SSEvent(string(lag.EventType()), lag)
			}
			c.SSEvent(string(ev.EventType()), ev)
			return true
		}
	})
}
