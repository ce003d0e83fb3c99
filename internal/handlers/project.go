package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mbark223/playablelab-sub000/internal/export"
	"github.com/mbark223/playablelab-sub000/internal/model"
	"github.com/mbark223/playablelab-sub000/internal/playable"
	"github.com/mbark223/playablelab-sub000/internal/project"
	"github.com/mbark223/playablelab-sub000/internal/viewmodel"
	"github.com/mbark223/playablelab-sub000/internal/views"
)

// QuizDrafter writes quiz questions on a topic.
type QuizDrafter interface {
	Draft(ctx context.Context, topic string, count int) ([]playable.QuizQuestion, error)
}

type ProjectHandler struct {
	store    *project.Store
	exporter *export.Pipeline
	drafter  QuizDrafter
	baseURL  string
	now      func() time.Time
}

// NewProjectHandler wires the editor routes. drafter may be nil.
func NewProjectHandler(store *project.Store, exporter *export.Pipeline, drafter QuizDrafter, baseURL string) *ProjectHandler {
	return &ProjectHandler{
		store:    store,
		exporter: exporter,
		drafter:  drafter,
		baseURL:  baseURL,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (h *ProjectHandler) RegisterRoutes(r chi.Router) {
	r.Route("/projects/{id}", func(r chi.Router) {
		r.Get("/", h.editorPage)
		r.Delete("/", h.deleteProject)
		r.Get("/preview", h.previewFragment)
		r.Get("/snapshot", h.snapshot)
		r.Get("/config", h.getConfig)
		r.Get("/config.yaml", h.getConfigYAML)
		r.Put("/config", h.putConfig)
		r.Post("/commands", h.command)
		r.Post("/toggle", h.toggle)
		r.Post("/restart", h.restart)
		r.Post("/view", h.setView)
		r.Post("/play", h.play)
		r.Post("/answer", h.answer)
		r.Post("/save", h.save)
		r.Post("/export", h.exportBundle)
		r.Get("/exports", h.listExports)
		r.Post("/quiz/draft", h.draftQuiz)
		r.Get("/stream", h.stream)
	})
}

// editor opens the project named in the URL, writing the error response
// itself when that fails.
func (h *ProjectHandler) editor(w http.ResponseWriter, r *http.Request) (*playable.Editor, bool) {
	ed, err := h.store.Open(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return ed, true
}

func (h *ProjectHandler) editorPage(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	cfg := ed.Config()
	history, err := h.exporter.History(r.Context(), ed.ID())
	if err != nil {
		writeError(w, r, err)
		return
	}
	cfgJSON, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		writeError(w, r, fmt.Errorf("encode config: %w", err))
		return
	}

	data := viewmodel.EditorPage{
		Title:        cfg.Name + " · Playable Lab",
		ProjectID:    ed.ID(),
		Name:         cfg.Name,
		ConfigJSON:   string(cfgJSON),
		Modes:        modeOptions(cfg.Mode),
		Channels:     h.channelOptions(cfg.ChannelID),
		Animations:   animationOptions(),
		WinConfigs:   winConfigRows(cfg),
		Exports:      toExportRows(history),
		DraftEnabled: h.drafter != nil,
		Preview:      views.BuildPreview(ed.Snapshot(h.now())),
	}
	render(w, r, views.EditorPage(data))
}

func (h *ProjectHandler) deleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProjectHandler) previewFragment(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	render(w, r, views.PreviewFragment(views.BuildPreview(ed.Snapshot(h.now()))))
}

func (h *ProjectHandler) snapshot(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ed.Snapshot(h.now()))
}

func (h *ProjectHandler) getConfig(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ed.Config())
}

func (h *ProjectHandler) getConfigYAML(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	out, err := playable.EncodeYAML(ed.Config())
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Content-Disposition", `attachment; filename="creative.yaml"`)
	_, _ = w.Write(out)
}

func (h *ProjectHandler) putConfig(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	cfg, err := readConfig(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := ed.Dispatch(h.now(), playable.ReplaceConfig{Config: cfg}); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ed.Config())
}

func (h *ProjectHandler) command(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	cmd, err := playable.DecodeCommand(body)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	if err := ed.Dispatch(h.now(), cmd); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ed.Config())
}

func (h *ProjectHandler) toggle(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	playing := ed.TogglePreview(h.now())
	h.respond(w, r, ed, playing)
}

func (h *ProjectHandler) restart(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	ed.RestartPreview(h.now())
	h.respond(w, r, ed, true)
}

func (h *ProjectHandler) setView(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	changed := ed.SetView(h.now(), playable.ParseView(r.FormValue("view")))
	h.respond(w, r, ed, changed)
}

func (h *ProjectHandler) play(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	started := ed.RequestPlay(h.now(), formInt(r, "target", -1))
	h.respond(w, r, ed, started)
}

func (h *ProjectHandler) answer(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	graded := ed.SubmitAnswer(h.now(), formInt(r, "option", -1))
	h.respond(w, r, ed, graded)
}

// respond reports whether an action took effect. Rejected actions are not
// errors: the preview simply ignores them.
func (h *ProjectHandler) respond(w http.ResponseWriter, r *http.Request, ed *playable.Editor, accepted bool) {
	if isHTMX(r) {
		render(w, r, views.PreviewFragment(views.BuildPreview(ed.Snapshot(h.now()))))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"accepted": accepted,
		"snapshot": ed.Snapshot(h.now()),
	})
}

func (h *ProjectHandler) save(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.Save(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":        p.ID,
		"updatedAt": p.UpdatedAt,
		"url":       projectURL(h.baseURL, r, p.ID),
	})
}

func (h *ProjectHandler) exportBundle(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	res, err := h.exporter.Export(r.Context(), ed.ID(), ed.ExportConfig(), r.FormValue("channel"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, http.StatusCreated, toExportJSON(res.Record))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, res.Record.FileName))
	w.Header().Set("X-Checksum-Blake2b", res.Record.Checksum)
	_, _ = w.Write(res.HTML)
}

func (h *ProjectHandler) listExports(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	history, err := h.exporter.History(r.Context(), ed.ID())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]exportJSON, 0, len(history))
	for _, rec := range history {
		out = append(out, toExportJSON(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ProjectHandler) draftQuiz(w http.ResponseWriter, r *http.Request) {
	if h.drafter == nil {
		writeError(w, r, errDraftDisabled)
		return
	}
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	qs, err := h.drafter.Draft(r.Context(), r.FormValue("topic"), formInt(r, "count", 3))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := ed.Dispatch(h.now(), playable.SetQuizQuestions{Questions: qs}); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ed.Config().QuizQuestions)
}

func (h *ProjectHandler) channelOptions(selected string) []viewmodel.Option {
	chans := h.exporter.Channels()
	out := make([]viewmodel.Option, 0, len(chans))
	for _, ch := range chans {
		out = append(out, viewmodel.Option{
			Value:    ch.ID,
			Label:    fmt.Sprintf("%s (%s)", ch.Name, ch.MaxMB()),
			Selected: ch.ID == selected,
		})
	}
	return out
}

func animationOptions() []viewmodel.Option {
	anims := playable.Animations()
	out := make([]viewmodel.Option, 0, len(anims))
	for _, a := range anims {
		out = append(out, viewmodel.Option{Value: a.ID, Label: a.Glyph + " " + a.Label})
	}
	return out
}

func winConfigRows(cfg playable.Configuration) []viewmodel.WinConfigRow {
	out := make([]viewmodel.WinConfigRow, 0, cfg.PlaysAllowed)
	for i := 0; i < cfg.PlaysAllowed && i < len(cfg.WinConfigs); i++ {
		wc := cfg.WinConfigs[i]
		out = append(out, viewmodel.WinConfigRow{Index: i, Message: wc.Message, AnimationID: wc.AnimationID})
	}
	return out
}

type exportJSON struct {
	ID        string    `json:"id"`
	ChannelID string    `json:"channelId"`
	FileName  string    `json:"fileName"`
	SizeBytes int64     `json:"sizeBytes"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"createdAt"`
}

func toExportJSON(rec model.ExportRecord) exportJSON {
	return exportJSON{
		ID:        rec.ID,
		ChannelID: rec.ChannelID,
		FileName:  rec.FileName,
		SizeBytes: rec.SizeBytes,
		Checksum:  rec.Checksum,
		CreatedAt: rec.CreatedAt,
	}
}

func toExportRows(history []model.ExportRecord) []viewmodel.ExportRow {
	out := make([]viewmodel.ExportRow, 0, len(history))
	for _, rec := range history {
		out = append(out, viewmodel.ExportRow{
			FileName: rec.FileName,
			Channel:  rec.ChannelID,
			Size:     fmt.Sprintf("%.1f KB", float64(rec.SizeBytes)/1024),
			Checksum: rec.Checksum,
			Created:  rec.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return out
}

func formInt(r *http.Request, key string, fallback int) int {
	value := strings.TrimSpace(r.FormValue(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxImportBytes)).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}
