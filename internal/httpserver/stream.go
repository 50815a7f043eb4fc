package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fonarev/gopherwallet.git/internal/httpserver/middleware"
	"github.com/fonarev/gopherwallet.git/internal/logger"
	"github.com/fonarev/gopherwallet.git/internal/models"
	"go.uber.org/zap"
)

const heartbeatInterval = 25 * time.Second

// WalletEventsHandler streams wallet events to one client over SSE.
// The connection stays open until the client goes away.
func (h *Handlers) WalletEventsHandler(rw http.ResponseWriter, r *http.Request) {
	logger.Log.Debug("WalletEventsHandler called")
	UID := middleware.UIDFromRequest(r)

	fl, ok := rw.(http.Flusher)
	if !ok {
		http.Error(rw, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Content-Type", "text/event-stream")
	rw.Header().Set("Cache-Control", "no-cache")
	rw.Header().Set("Connection", "keep-alive")
	rw.WriteHeader(http.StatusOK)

	sub := h.hub.Subscribe(UID)
	defer h.hub.Unsubscribe(sub)

	if !writeEvent(rw, fl, models.ConnectedEvent{}) {
		return
	}

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-sub.C:
			if !ok {
				return
			}
			if !writeEvent(rw, fl, event) {
				return
			}
		case <-heartbeat.C:
			if _, err := fmt.Fprint(rw, ": ping\n\n"); err != nil {
				return
			}
			fl.Flush()
		}
	}
}

func writeEvent(rw http.ResponseWriter, fl http.Flusher, event models.WalletEvent) bool {
	payload, err := models.EncodeEvent(event)
	if err != nil {
		logger.Log.Warn("event encode failed",
			zap.String("type", event.EventType()),
			zap.Error(err))
		return true
	}
	if _, err := fmt.Fprintf(rw, "data: %s\n\n", payload); err != nil {
		return false
	}
	fl.Flush()
	return true
}
