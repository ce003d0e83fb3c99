package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	log "github.com/sirupsen/logrus"

	"github.com/mbark223/playablelab-sub000/internal/channel"
	"github.com/mbark223/playablelab-sub000/internal/export"
	"github.com/mbark223/playablelab-sub000/internal/playable"
	"github.com/mbark223/playablelab-sub000/internal/quizdraft"
	"github.com/mbark223/playablelab-sub000/internal/repository"
)

func render(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "failed to render", http.StatusInternalServerError)
	}
}

func renderToString(r *http.Request, component templ.Component) string {
	var buf bytes.Buffer
	if err := component.Render(r.Context(), &buf); err != nil {
		log.WithError(err).Warn("render fragment")
	}
	return buf.String()
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// errBadRequest marks client input errors that carry no sentinel of their own.
var errBadRequest = errors.New("bad request")

// errDraftDisabled is returned when quiz drafting has no API key.
var errDraftDisabled = errors.New("quiz drafting is not configured")

func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrProjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, playable.ErrUnknownCommand),
		errors.Is(err, channel.ErrUnknownChannel),
		errors.Is(err, quizdraft.ErrNoTopic),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, export.ErrBundleTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, quizdraft.ErrEmptyDraft):
		return http.StatusBadGateway
	case errors.Is(err, errDraftDisabled):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// writeError answers with {"error": ...} and the status mapped from err.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	entry := log.WithError(err).WithFields(log.Fields{"method": r.Method, "path": r.URL.Path, "status": status})
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeSSE(w http.ResponseWriter, event string, data string) {
	_, _ = w.Write([]byte("event: " + event + "\n"))
	for _, line := range strings.Split(data, "\n") {
		_, _ = w.Write([]byte("data: " + line + "\n"))
	}
	_, _ = w.Write([]byte("\n"))
}

// isJSON reports whether the request body is JSON rather than a form.
func isJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("Hx-Request") == "true"
}

func projectURL(baseURL string, r *http.Request, id string) string {
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		return strings.TrimRight(baseURL, "/") + "/projects/" + id
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/projects/" + id
}
