package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mbark223/playablelab-sub000/internal/model"
	"github.com/mbark223/playablelab-sub000/internal/playable"
	"github.com/mbark223/playablelab-sub000/internal/project"
	"github.com/mbark223/playablelab-sub000/internal/viewmodel"
	"github.com/mbark223/playablelab-sub000/internal/views"
)

const maxImportBytes = 1 << 20

type HomeHandler struct {
	store *project.Store
}

func NewHomeHandler(store *project.Store) *HomeHandler {
	return &HomeHandler{store: store}
}

func (h *HomeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Get("/projects", h.listProjects)
	r.Post("/projects", h.createProject)
	r.Post("/projects/import", h.importProject)
}

func (h *HomeHandler) home(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.store.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	render(w, r, views.HomePage(viewmodel.HomePage{
		Title:    "Playable Lab",
		Modes:    modeOptions(playable.ModeSlots),
		Projects: toProjectRows(summaries),
	}))
}

func (h *HomeHandler) listProjects(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.store.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	type item struct {
		ID        string        `json:"id"`
		Name      string        `json:"name"`
		Mode      playable.Mode `json:"mode"`
		UpdatedAt time.Time     `json:"updatedAt"`
	}
	out := make([]item, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, item{ID: s.ID, Name: s.Name, Mode: s.Mode, UpdatedAt: s.UpdatedAt})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *HomeHandler) createProject(w http.ResponseWriter, r *http.Request) {
	var name, modeName string
	if isJSON(r) {
		var body struct {
			Name string `json:"name"`
			Mode string `json:"mode"`
		}
		if err := decodeJSON(r, &body); err != nil {
			writeError(w, r, err)
			return
		}
		name, modeName = body.Name, body.Mode
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		name, modeName = r.FormValue("name"), r.FormValue("mode")
	}
	name = strings.TrimSpace(name)
	if len(name) > 80 {
		name = name[:80]
	}
	mode, ok := playable.ParseMode(modeName)
	if !ok {
		mode = playable.ModeSlots
	}

	ed, err := h.store.Create(r.Context(), mode, name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if isJSON(r) {
		writeJSON(w, http.StatusCreated, map[string]string{"id": ed.ID()})
		return
	}
	http.Redirect(w, r, "/projects/"+ed.ID(), http.StatusSeeOther)
}

// importProject accepts a creative as YAML or JSON.
func (h *HomeHandler) importProject(w http.ResponseWriter, r *http.Request) {
	cfg, err := readConfig(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ed, err := h.store.Import(r.Context(), cfg)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": ed.ID()})
}

func readConfig(r *http.Request) (playable.Configuration, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		return playable.Configuration{}, fmt.Errorf("%w: read body: %v", errBadRequest, err)
	}
	if isJSON(r) {
		var cfg playable.Configuration
		if err := json.Unmarshal(data, &cfg); err != nil {
			return playable.Configuration{}, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		cfg.Normalize()
		return cfg, nil
	}
	cfg, err := playable.ParseYAML(data)
	if err != nil {
		return playable.Configuration{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return cfg, nil
}

func modeOptions(selected playable.Mode) []viewmodel.Option {
	out := make([]viewmodel.Option, 0, len(playable.Modes()))
	for _, m := range playable.Modes() {
		label := strings.ToUpper(string(m[:1])) + string(m[1:])
		out = append(out, viewmodel.Option{Value: string(m), Label: label, Selected: m == selected})
	}
	return out
}

func toProjectRows(summaries []model.ProjectSummary) []viewmodel.ProjectRow {
	out := make([]viewmodel.ProjectRow, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, viewmodel.ProjectRow{
			ID:      s.ID,
			Name:    s.Name,
			Mode:    string(s.Mode),
			Updated: s.UpdatedAt.Format("2006-01-02 15:04"),
		})
	}
	return out
}
