package views

import (
	"fmt"
	"strings"

	"github.com/mbark223/playablelab-sub000/internal/playable"
	"github.com/mbark223/playablelab-sub000/internal/viewmodel"
)

const builtinScheme = "builtin://"

var builtinGlyphs = map[string]string{
	"symbols/cherry.png":  "🍒",
	"symbols/seven.png":   "7️⃣",
	"symbols/bell.png":    "🔔",
	"symbols/diamond.png": "💎",
	"symbols/bar.png":     "🟫",
}

// symbolParts splits a symbol reference into an image URL or a glyph. Built-in
// symbols render as glyphs so exported bundles need no external files.
func symbolParts(ref string) (image, glyph string) {
	if !strings.HasPrefix(ref, builtinScheme) {
		return ref, ""
	}
	if g, ok := builtinGlyphs[strings.TrimPrefix(ref, builtinScheme)]; ok {
		return "", g
	}
	return "", "❔"
}

// SymbolGlyph returns a printable stand-in for a symbol reference: the glyph
// of a built-in symbol, or the file name of a custom one.
func SymbolGlyph(ref string) string {
	img, glyph := symbolParts(ref)
	if glyph != "" {
		return glyph
	}
	if i := strings.LastIndex(img, "/"); i >= 0 {
		img = img[i+1:]
	}
	return img
}

func backdrop(ref string) (url, class string) {
	if strings.HasPrefix(ref, builtinScheme) {
		name := strings.TrimPrefix(ref, builtinScheme+"backgrounds/")
		name = strings.TrimSuffix(name, ".jpg")
		return "", "backdrop-" + name
	}
	return ref, ""
}

// BuildPreview turns a snapshot into the preview fragment model.
func BuildPreview(snap playable.Snapshot) viewmodel.Preview {
	bg, bgClass := backdrop(snap.Background)
	p := viewmodel.Preview{
		ProjectID:     snap.ProjectID,
		Mode:          string(snap.Mode),
		Playing:       snap.Playing,
		ShowEndCard:   snap.View == playable.ViewEndCard,
		Phase:         string(snap.Phase),
		WheelRotation: snap.WheelRotation,
		Background:    bg,
		BackdropClass: bgClass,
		Logo:          snap.Logo,
		FontSize:      snap.Style.FontSize,
		BoardScale:    snap.Style.BoardScale,
		EndCard: viewmodel.EndCard{
			Headline: snap.EndCard.Headline,
			Subtext:  snap.EndCard.Subtext,
			CTAText:  snap.EndCard.CTAText,
			CTAURL:   snap.EndCard.CTAURL,
		},
	}
	p.CanPlay = snap.Playing && !snap.Resolving && !snap.Ended && snap.PlaysRemaining > 0 && snap.Mode.Counted()
	if snap.Mode.Counted() {
		p.PlaysText = fmt.Sprintf("%d/%d plays left", snap.PlaysRemaining, snap.PlaysAllowed)
	}

	for _, j := range snap.Jackpots {
		p.Jackpots = append(p.Jackpots, viewmodel.Jackpot{Label: j.Label, Value: j.DisplayValue, Skin: j.BorderSkin})
	}

	switch snap.Mode {
	case playable.ModeSlots:
		p.Rows = slotRows(snap)
	case playable.ModeWheel:
		p.Wheel = wheelSegments(snap)
	case playable.ModeQuiz:
		p.Quiz = quizBlock(snap.Quiz)
	default:
		p.Surface, p.SurfaceCols = surface(snap)
	}

	if snap.ActiveWin != nil && snap.Animation != nil {
		p.Win = &viewmodel.WinBanner{
			Message:  snap.ActiveWin.Message,
			CSSClass: snap.Animation.CSSClass,
			Glyph:    snap.Animation.Glyph,
		}
	}
	if snap.LastOutcome != nil && !snap.LastOutcome.Triggered {
		p.LastResult = "No win this time"
	}
	return p
}

func slotRows(snap playable.Snapshot) [][]viewmodel.Cell {
	rows := make([][]viewmodel.Cell, len(snap.Grid))
	for r, line := range snap.Grid {
		rows[r] = make([]viewmodel.Cell, len(line))
		for c, sym := range line {
			img, glyph := symbolParts(sym)
			spinning := c < len(snap.ReelSpinning) && snap.ReelSpinning[c]
			rows[r][c] = viewmodel.Cell{Image: img, Glyph: glyph, Spinning: spinning}
		}
	}
	return rows
}

func wheelSegments(snap playable.Snapshot) []viewmodel.Segment {
	n := len(snap.Wheel)
	out := make([]viewmodel.Segment, n)
	for i, seg := range snap.Wheel {
		out[i] = viewmodel.Segment{
			Label:  seg.Label,
			Value:  seg.Value,
			Color:  seg.Color,
			Angle:  360 / float64(n) * float64(i),
			Landed: i == snap.LandedSegment,
		}
	}
	return out
}

func surface(snap playable.Snapshot) ([]viewmodel.SurfaceCell, int) {
	cols := 1
	if len(snap.Grid) > 0 {
		cols = len(snap.Grid[0])
	}
	revealed := make(map[int]bool, len(snap.Revealed))
	for _, idx := range snap.Revealed {
		revealed[idx] = true
	}
	cells := make([]viewmodel.SurfaceCell, 0, snap.SurfaceSize)
	for r, line := range snap.Grid {
		for c, sym := range line {
			idx := r*cols + c
			img, glyph := symbolParts(sym)
			cells = append(cells, viewmodel.SurfaceCell{Index: idx, Image: img, Glyph: glyph, Revealed: revealed[idx]})
		}
	}
	return cells, cols
}

func quizBlock(q *playable.QuizView) *viewmodel.QuizBlock {
	if q == nil {
		return nil
	}
	b := &viewmodel.QuizBlock{
		Number:   q.Index + 1,
		Total:    q.Total,
		Question: q.Question,
		Score:    q.Score,
	}
	answering := q.Status == playable.QuizIdle && !q.Complete
	for i, text := range q.Options {
		opt := viewmodel.QuizOption{Index: i, Text: text, Enabled: answering}
		switch {
		case !answering && i == q.Correct:
			opt.State = "correct"
		case !answering && i == q.Selected:
			opt.State = "wrong"
		}
		b.Options = append(b.Options, opt)
	}
	switch q.Status {
	case playable.QuizCorrect:
		b.Feedback = "Correct!"
	case playable.QuizWrong:
		b.Feedback = "Not quite"
	}
	return b
}
