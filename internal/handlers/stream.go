package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mbark223/playablelab-sub000/internal/playable"
	"github.com/mbark223/playablelab-sub000/internal/views"
)

const keepAliveInterval = 25 * time.Second

// stream pushes every editor event to the browser, each followed by the
// re-rendered preview fragment.
func (h *ProjectHandler) stream(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	hub := h.store.Broadcaster(ed.ID())
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	sendPreview := func() {
		snap := ed.Snapshot(h.now())
		writeSSE(w, "preview", renderToString(r, views.PreviewFragment(views.BuildPreview(snap))))
		if data, err := json.Marshal(snap); err == nil {
			writeSSE(w, "snapshot", string(data))
		}
		flusher.Flush()
	}

	sendPreview()
	log.WithFields(log.Fields{"project": ed.ID(), "subscribers": hub.Count()}).Debug("stream opened")

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, open := <-sub:
			if !open {
				return
			}
			writeSSE(w, msg.Event, msg.Data)
			if msg.Event == string(playable.EventSound) {
				flusher.Flush()
				continue
			}
			sendPreview()
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		}
	}
}
