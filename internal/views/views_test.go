package views

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/mbark223/playablelab-sub000/internal/playable"
	"github.com/mbark223/playablelab-sub000/internal/viewmodel"
)

type fixedRand struct{}

func (fixedRand) Float64() float64 { return 0.9 }
func (fixedRand) Intn(int) int     { return 1 }

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func snapshotFor(t *testing.T, mode playable.Mode, start bool) playable.Snapshot {
	t.Helper()
	now := time.Unix(0, 0).UTC()
	e := playable.NewEditor("p1", playable.DefaultConfiguration(mode), playable.WithRand(fixedRand{}))
	if start {
		e.TogglePreview(now)
	}
	return e.Snapshot(now)
}

func TestSymbolParts(t *testing.T) {
	img, glyph := symbolParts("builtin://symbols/seven.png")
	if img != "" || glyph != "7️⃣" {
		t.Errorf("builtin seven = %q %q", img, glyph)
	}
	img, glyph = symbolParts("https://cdn.example.com/a.png")
	if img != "https://cdn.example.com/a.png" || glyph != "" {
		t.Errorf("remote symbol = %q %q", img, glyph)
	}
	if _, glyph = symbolParts("builtin://symbols/unknown.png"); glyph == "" {
		t.Error("unknown builtin should still render a glyph")
	}
}

func TestBackdrop(t *testing.T) {
	url, class := backdrop(playable.DefaultBackground)
	if url != "" || class != "backdrop-casino-night" {
		t.Errorf("default backdrop = %q %q", url, class)
	}
	url, class = backdrop("https://cdn.example.com/bg.jpg")
	if url != "https://cdn.example.com/bg.jpg" || class != "" {
		t.Errorf("remote backdrop = %q %q", url, class)
	}
}

func TestBuildPreviewSlots(t *testing.T) {
	p := BuildPreview(snapshotFor(t, playable.ModeSlots, true))
	if len(p.Rows) != 3 || len(p.Rows[0]) != 3 {
		t.Fatalf("rows %dx%d, want 3x3", len(p.Rows), len(p.Rows[0]))
	}
	if !p.CanPlay {
		t.Error("fresh session should allow a play")
	}
	if p.PlaysText != "3/3 plays left" {
		t.Errorf("plays text %q, want %q", p.PlaysText, "3/3 plays left")
	}
	if len(p.Jackpots) != 3 {
		t.Errorf("jackpots %d, want 3", len(p.Jackpots))
	}
}

func TestBuildPreviewStoppedCannotPlay(t *testing.T) {
	p := BuildPreview(snapshotFor(t, playable.ModeSlots, false))
	if p.CanPlay || p.Playing {
		t.Errorf("stopped preview: playing=%v canPlay=%v", p.Playing, p.CanPlay)
	}
}

func TestBuildPreviewWheel(t *testing.T) {
	p := BuildPreview(snapshotFor(t, playable.ModeWheel, true))
	if len(p.Wheel) != 3 {
		t.Fatalf("segments %d, want 3", len(p.Wheel))
	}
	if p.Wheel[1].Angle != 120 {
		t.Errorf("second segment angle %v, want 120", p.Wheel[1].Angle)
	}
}

func TestBuildPreviewSurface(t *testing.T) {
	p := BuildPreview(snapshotFor(t, playable.ModePick, true))
	if len(p.Surface) != 9 || p.SurfaceCols != 3 {
		t.Errorf("surface %d cells, %d cols", len(p.Surface), p.SurfaceCols)
	}
	if p.Surface[4].Index != 4 {
		t.Errorf("cell index %d, want 4", p.Surface[4].Index)
	}
}

func TestBuildPreviewQuiz(t *testing.T) {
	p := BuildPreview(snapshotFor(t, playable.ModeQuiz, true))
	if p.Quiz == nil {
		t.Fatal("quiz block missing")
	}
	if p.Quiz.Number != 1 || len(p.Quiz.Options) != 4 {
		t.Errorf("quiz number %d options %d", p.Quiz.Number, len(p.Quiz.Options))
	}
	if p.PlaysText != "" || p.CanPlay {
		t.Error("quiz mode does not count plays")
	}
}

func TestPreviewFragmentRendersEveryMode(t *testing.T) {
	for _, mode := range playable.Modes() {
		t.Run(string(mode), func(t *testing.T) {
			html := renderString(t, PreviewFragment(BuildPreview(snapshotFor(t, mode, true))))
			if !strings.Contains(html, "mode-"+string(mode)) {
				t.Errorf("fragment missing mode class for %s", mode)
			}
		})
	}
}

func TestPreviewFragmentEndCard(t *testing.T) {
	p := BuildPreview(snapshotFor(t, playable.ModeSlots, false))
	p.ShowEndCard = true
	html := renderString(t, PreviewFragment(p))
	if !strings.Contains(html, "YOU WON!") || !strings.Contains(html, "INSTALL NOW") {
		t.Errorf("end card not rendered: %s", html)
	}
}

func TestHomePageEscapesNames(t *testing.T) {
	html := renderString(t, HomePage(viewmodel.HomePage{
		Title:    "Playables",
		Projects: []viewmodel.ProjectRow{{ID: "a", Name: "<b>x</b>", Mode: "slots"}},
	}))
	if strings.Contains(html, "<b>x</b>") {
		t.Error("project name not escaped")
	}
	if !strings.Contains(html, `href="/projects/a"`) {
		t.Error("project link missing")
	}
}

func TestEditorPageEmbedsPreview(t *testing.T) {
	html := renderString(t, EditorPage(viewmodel.EditorPage{
		Title:     "Editor",
		ProjectID: "p1",
		Name:      "Summer",
		Preview:   BuildPreview(snapshotFor(t, playable.ModeSlots, false)),
	}))
	if !strings.Contains(html, `id="preview"`) || !strings.Contains(html, `data-project="p1"`) {
		t.Error("editor page missing preview container")
	}
}

func TestBundleInlinesConfig(t *testing.T) {
	html := renderString(t, Bundle(viewmodel.Bundle{
		Title:          "Summer",
		ChannelID:      "dsp",
		Width:          320,
		Height:         480,
		CTAAPI:         "mraid.open",
		ConfigJSON:     `{"mode":"slots","playsAllowed":3}`,
		AnimationsJSON: `[]`,
		Preview:        BuildPreview(snapshotFor(t, playable.ModeSlots, true)),
	}))
	for _, want := range []string{`{"mode":"slots","playsAllowed":3}`, `"mraid.open"`, "width=320,height=480"} {
		if !strings.Contains(html, want) {
			t.Errorf("bundle missing %q", want)
		}
	}
	if strings.Contains(html, "/static/") {
		t.Error("bundle must not reference server assets")
	}
}

func TestStageStyleStripsBreakouts(t *testing.T) {
	p := BuildPreview(snapshotFor(t, playable.ModeSlots, true))
	p.Background = `bg.png); color: red`
	html := renderString(t, PreviewFragment(p))
	if !strings.Contains(html, "url(bg.pngcolor:red)") {
		t.Errorf("stage style not sanitized: %s", html)
	}
}

func TestBundleScriptEscapesValues(t *testing.T) {
	html := renderString(t, Bundle(viewmodel.Bundle{
		Title:   "Summer",
		Width:   320,
		Height:  480,
		CTAAPI:  "</script><b>",
		Preview: BuildPreview(snapshotFor(t, playable.ModeSlots, true)),
	}))
	if strings.Contains(html, "</script><b>") {
		t.Error("CTA API not escaped inside script")
	}
	if !strings.Contains(html, "var cfg = null") {
		t.Error("empty config should render as null")
	}
}
