package playable

// Built-in assets used whenever a reference is missing.
const (
	DefaultSymbol     = "builtin://symbols/cherry.png"
	DefaultBackground = "builtin://backgrounds/casino-night.jpg"
)

// DefaultSymbols is the starter symbol set.
var DefaultSymbols = []string{
	"builtin://symbols/cherry.png",
	"builtin://symbols/seven.png",
	"builtin://symbols/bell.png",
	"builtin://symbols/diamond.png",
	"builtin://symbols/bar.png",
}

// WheelPalette colours wheel segments by position.
var WheelPalette = []string{
	"#e11d48", "#f59e0b", "#10b981", "#3b82f6", "#8b5cf6", "#ec4899",
}

// Animation is a known win animation and how the preview renders it.
type Animation struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	CSSClass string `json:"cssClass"`
	Glyph    string `json:"glyph"`
}

// DefaultAnimationID is used for unknown or empty animation references.
const DefaultAnimationID = "confetti"

var animations = []Animation{
	{ID: "coins-burst", Label: "Coin Burst", CSSClass: "anim-coins", Glyph: "💰"},
	{ID: "confetti", Label: "Confetti", CSSClass: "anim-confetti", Glyph: "🎉"},
	{ID: "fireworks", Label: "Fireworks", CSSClass: "anim-fireworks", Glyph: "🎆"},
	{ID: "jackpot-flash", Label: "Jackpot Flash", CSSClass: "anim-jackpot", Glyph: "🎰"},
	{ID: "lightning", Label: "Lightning", CSSClass: "anim-lightning", Glyph: "⚡"},
	{ID: "gold-rain", Label: "Gold Rain", CSSClass: "anim-gold-rain", Glyph: "🪙"},
	{ID: "starburst", Label: "Starburst", CSSClass: "anim-starburst", Glyph: "🌟"},
	{ID: "spotlight", Label: "Spotlight", CSSClass: "anim-spotlight", Glyph: "🔦"},
	{ID: "shake", Label: "Screen Shake", CSSClass: "anim-shake", Glyph: "📳"},
	{ID: "pulse-glow", Label: "Pulse Glow", CSSClass: "anim-pulse", Glyph: "✨"},
	{ID: "zoom-in", Label: "Zoom In", CSSClass: "anim-zoom", Glyph: "🔍"},
	{ID: "bounce", Label: "Bounce", CSSClass: "anim-bounce", Glyph: "🏀"},
	{ID: "rainbow", Label: "Rainbow", CSSClass: "anim-rainbow", Glyph: "🌈"},
	{ID: "sparkles", Label: "Sparkles", CSSClass: "anim-sparkles", Glyph: "💫"},
	{ID: "neon-flicker", Label: "Neon Flicker", CSSClass: "anim-neon", Glyph: "💡"},
	{ID: "coin-fountain", Label: "Coin Fountain", CSSClass: "anim-fountain", Glyph: "⛲"},
	{ID: "treasure-open", Label: "Treasure Open", CSSClass: "anim-treasure", Glyph: "🧰"},
	{ID: "ribbon-drop", Label: "Ribbon Drop", CSSClass: "anim-ribbon", Glyph: "🎀"},
	{ID: "balloon-pop", Label: "Balloon Pop", CSSClass: "anim-balloon", Glyph: "🎈"},
	{ID: "mega-win", Label: "Mega Win", CSSClass: "anim-mega", Glyph: "🏆"},
}

// Animations returns the catalog.
func Animations() []Animation {
	return append([]Animation(nil), animations...)
}

// LookupAnimation finds an animation by ID.
func LookupAnimation(id string) (Animation, bool) {
	for _, a := range animations {
		if a.ID == id {
			return a, true
		}
	}
	return Animation{}, false
}

// ResolveAnimation is LookupAnimation with the default fallback.
func ResolveAnimation(id string) Animation {
	if a, ok := LookupAnimation(id); ok {
		return a
	}
	a, _ := LookupAnimation(DefaultAnimationID)
	return a
}
