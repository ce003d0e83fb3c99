package playable

import (
	"math"
	"strings"
	"testing"
)

func TestConfiguration_SymbolAtCyclesDiagonally(t *testing.T) {
	cfg := DefaultConfiguration(ModeSlots)
	cfg.SymbolSet = []string{"A", "B", "C"}

	tests := []struct {
		row, col int
		want     string
	}{
		{0, 0, "A"},
		{0, 1, "B"},
		{0, 2, "C"},
		{1, 0, "B"},
		{1, 2, "A"},
		{2, 2, "B"},
	}
	for _, tc := range tests {
		if got := cfg.SymbolAt(tc.row, tc.col); got != tc.want {
			t.Errorf("SymbolAt(%d, %d) %q, want %q", tc.row, tc.col, got, tc.want)
		}
	}
}

func TestConfiguration_OverrideWins(t *testing.T) {
	cfg := DefaultConfiguration(ModeSlots)
	cfg.SymbolSet = []string{"A", "B", "C"}
	SetCellOverride{Row: 1, Col: 1, Symbol: "WILD"}.apply(&cfg)

	if got := cfg.SymbolAt(1, 1); got != "WILD" {
		t.Errorf("SymbolAt(1, 1) %q, want WILD", got)
	}
	if got := cfg.SymbolAt(0, 1); got != "B" {
		t.Errorf("SymbolAt(0, 1) %q, want B", got)
	}

	SetCellOverride{Row: 1, Col: 1, Symbol: ""}.apply(&cfg)
	if got := cfg.SymbolAt(1, 1); got != "C" {
		t.Errorf("SymbolAt(1, 1) after clear %q, want C", got)
	}
}

func TestConfiguration_OverridesSurviveGridShrink(t *testing.T) {
	cfg := DefaultConfiguration(ModeSlots)
	SetCellOverride{Row: 4, Col: 4, Symbol: "GEM"}.apply(&cfg)
	SetGrid{Rows: 2, Cols: 2}.apply(&cfg)
	cfg.Normalize()
	SetGrid{Rows: 5, Cols: 5}.apply(&cfg)
	cfg.Normalize()
	if got := cfg.SymbolAt(4, 4); got != "GEM" {
		t.Errorf("SymbolAt(4, 4) %q, want GEM", got)
	}
}

func TestConfiguration_NormalizeClamps(t *testing.T) {
	cfg := Configuration{
		Mode:          "bogus",
		Grid:          Grid{Rows: 99, Cols: 0},
		PlaysAllowed:  0,
		SymbolSet:     []string{" ", ""},
		JackpotTiers:  make([]JackpotTier, 9),
		QuizQuestions: []QuizQuestion{{Question: "q", Options: []string{"a"}, CorrectIndex: 7}},
		Style:         Style{FontSize: 500, BoardScale: 0.1},
	}
	cfg.Normalize()

	if cfg.Mode != ModeSlots {
		t.Errorf("Mode %q, want slots", cfg.Mode)
	}
	if cfg.Grid.Rows != MaxRows || cfg.Grid.Cols != MinCols {
		t.Errorf("Grid %+v, want %dx%d", cfg.Grid, MaxRows, MinCols)
	}
	if cfg.PlaysAllowed != MinPlays {
		t.Errorf("PlaysAllowed %d, want %d", cfg.PlaysAllowed, MinPlays)
	}
	if len(cfg.SymbolSet) != len(DefaultSymbols) {
		t.Errorf("len(SymbolSet) %d, want defaults", len(cfg.SymbolSet))
	}
	if len(cfg.JackpotTiers) != MaxJackpotTiers {
		t.Errorf("len(JackpotTiers) %d, want %d", len(cfg.JackpotTiers), MaxJackpotTiers)
	}
	if len(cfg.WinConfigs) < cfg.PlaysAllowed {
		t.Errorf("len(WinConfigs) %d, want >= %d", len(cfg.WinConfigs), cfg.PlaysAllowed)
	}
	q := cfg.QuizQuestions[0]
	if len(q.Options) != QuizOptions || q.CorrectIndex != QuizOptions-1 {
		t.Errorf("question %+v, want %d options and clamped index", q, QuizOptions)
	}
	if cfg.Style.FontSize != MaxFontSize || cfg.Style.BoardScale != MinBoardScale {
		t.Errorf("Style %+v, want clamped", cfg.Style)
	}
}

func TestConfiguration_NormalizeNonFiniteScale(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		cfg := DefaultConfiguration(ModeSlots)
		cfg.Style.BoardScale = v
		cfg.Normalize()
		if cfg.Style.BoardScale != 1 {
			t.Errorf("BoardScale from %v is %v, want 1", v, cfg.Style.BoardScale)
		}
	}
}

func TestConfiguration_WinConfigsPadToPlays(t *testing.T) {
	cfg := DefaultConfiguration(ModeSlots)
	SetPlaysAllowed{Plays: 5}.apply(&cfg)
	cfg.Normalize()
	if len(cfg.WinConfigs) != 5 {
		t.Fatalf("len(WinConfigs) %d, want 5", len(cfg.WinConfigs))
	}
	if cfg.WinConfigs[0].Message != "BIG WIN!" || cfg.WinConfigs[4].Message != "JACKPOT!" {
		t.Errorf("WinConfigs %+v, want default messages", cfg.WinConfigs)
	}
	if got := cfg.WinConfigFor(42); got != cfg.WinConfigs[0] {
		t.Errorf("WinConfigFor(42) %+v, want index 0 fallback", got)
	}
}

func TestConfiguration_CloneIsDeep(t *testing.T) {
	cfg := DefaultConfiguration(ModeQuiz)
	clone := cfg.Clone()
	clone.SymbolSet[0] = "changed"
	clone.QuizQuestions[0].Options[0] = "changed"
	if cfg.SymbolSet[0] == "changed" || cfg.QuizQuestions[0].Options[0] == "changed" {
		t.Error("Clone shares slices with the original")
	}
}

func TestResolveAnimation_FallsBack(t *testing.T) {
	if got := ResolveAnimation("fireworks"); got.ID != "fireworks" {
		t.Errorf("ResolveAnimation(fireworks) %q", got.ID)
	}
	if got := ResolveAnimation("nope"); got.ID != DefaultAnimationID {
		t.Errorf("ResolveAnimation(nope) %q, want %q", got.ID, DefaultAnimationID)
	}
	if n := len(Animations()); n != 20 {
		t.Errorf("len(Animations()) %d, want 20", n)
	}
}

func TestParseYAML(t *testing.T) {
	src := `
name: Summer Slots
mode: wheel
grid: {rows: 4, cols: 9}
plays_allowed: 2
jackpot_tiers:
  - {label: GRAND, display_value: "$500"}
  - {label: MINOR, display_value: "$5"}
end_card:
  headline: WIN BIG
  cta_text: PLAY
`
	cfg, err := ParseYAML([]byte(src))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if cfg.Name != "Summer Slots" || cfg.Mode != ModeWheel {
		t.Errorf("Name %q Mode %q", cfg.Name, cfg.Mode)
	}
	if cfg.Grid.Cols != MaxCols {
		t.Errorf("Cols %d, want clamped %d", cfg.Grid.Cols, MaxCols)
	}
	if len(cfg.WheelSegments()) != 2 {
		t.Errorf("len(WheelSegments()) %d, want 2", len(cfg.WheelSegments()))
	}

	out, err := EncodeYAML(cfg)
	if err != nil {
		t.Fatalf("EncodeYAML: %v", err)
	}
	if !strings.Contains(string(out), "name: Summer Slots") {
		t.Errorf("encoded YAML missing name:\n%s", out)
	}
	back, err := ParseYAML(out)
	if err != nil {
		t.Fatalf("ParseYAML(encoded): %v", err)
	}
	if back.JackpotTiers[0].DisplayValue != "$500" {
		t.Errorf("DisplayValue %q, want $500", back.JackpotTiers[0].DisplayValue)
	}

	if _, err := ParseYAML([]byte("grid: [")); err == nil {
		t.Error("ParseYAML should fail on malformed input")
	}
}
