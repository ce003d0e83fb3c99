package playable

import (
	"math"
	"strings"
)

// Mode is the mini-game mechanic that governs a session.
type Mode string

const (
	ModeSlots   Mode = "slots"
	ModeWheel   Mode = "wheel"
	ModeScratch Mode = "scratch"
	ModePick    Mode = "pick"
	ModeMatch   Mode = "match"
	ModeFall    Mode = "fall"
	ModeQuiz    Mode = "quiz"
)

// Modes returns every supported mode in editor order.
func Modes() []Mode {
	return []Mode{ModeSlots, ModeWheel, ModeScratch, ModePick, ModeMatch, ModeFall, ModeQuiz}
}

// ParseMode resolves a mode name, case-insensitively.
func ParseMode(s string) (Mode, bool) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	return m, m.Valid()
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	for _, known := range Modes() {
		if m == known {
			return true
		}
	}
	return false
}

// Counted reports whether plays in this mode consume the plays budget.
func (m Mode) Counted() bool {
	return m != ModeQuiz
}

// Bounds enforced on every configuration mutation.
const (
	MinRows         = 1
	MaxRows         = 6
	MinCols         = 1
	MaxCols         = 5
	MinJackpotTiers = 1
	MaxJackpotTiers = 5
	MinPlays        = 1
	MaxPlays        = 20
	QuizOptions     = 4

	MinFontSize   = 12
	MaxFontSize   = 96
	MinBoardScale = 0.5
	MaxBoardScale = 1.5
)

// Grid is the slot board geometry.
type Grid struct {
	Rows int `json:"rows" yaml:"rows"`
	Cols int `json:"cols" yaml:"cols"`
}

// CellOverride pins a symbol to a single cell.
type CellOverride struct {
	Row    int    `json:"row" yaml:"row"`
	Col    int    `json:"col" yaml:"col"`
	Symbol string `json:"symbol" yaml:"symbol"`
}

// JackpotTier is one prize row; the first tier is the grand prize.
type JackpotTier struct {
	Label        string `json:"label" yaml:"label"`
	DisplayValue string `json:"displayValue" yaml:"display_value"`
	BorderSkin   string `json:"borderSkin,omitempty" yaml:"border_skin,omitempty"`
}

// WinConfig is the message and animation shown when a given play wins.
type WinConfig struct {
	Message     string `json:"message" yaml:"message"`
	AnimationID string `json:"animationId" yaml:"animation_id"`
}

// QuizQuestion is one multiple-choice question.
type QuizQuestion struct {
	Question     string   `json:"question" yaml:"question"`
	Options      []string `json:"options" yaml:"options"`
	CorrectIndex int      `json:"correctIndex" yaml:"correct_index"`
}

// EndCard is the terminal screen content.
type EndCard struct {
	Headline string `json:"headline" yaml:"headline"`
	Subtext  string `json:"subtext" yaml:"subtext"`
	CTAText  string `json:"ctaText" yaml:"cta_text"`
	CTAURL   string `json:"ctaUrl" yaml:"cta_url"`
}

// Sounds holds optional audio cue URLs.
type Sounds struct {
	Spin string `json:"spin,omitempty" yaml:"spin,omitempty"`
	Win  string `json:"win,omitempty" yaml:"win,omitempty"`
}

// Style carries cosmetic parameters with no behavioural coupling.
type Style struct {
	FontSize   int     `json:"fontSize" yaml:"font_size"`
	BoardScale float64 `json:"boardScale" yaml:"board_scale"`
}

// Configuration is the long-lived creative definition edited in the editor
// and handed unchanged to the export pipeline.
type Configuration struct {
	Name          string         `json:"name" yaml:"name"`
	Mode          Mode           `json:"mode" yaml:"mode"`
	ChannelID     string         `json:"channelId" yaml:"channel_id"`
	Grid          Grid           `json:"grid" yaml:"grid"`
	SymbolSet     []string       `json:"symbolSet" yaml:"symbol_set"`
	CellOverrides []CellOverride `json:"cellOverrides,omitempty" yaml:"cell_overrides,omitempty"`
	JackpotTiers  []JackpotTier  `json:"jackpotTiers" yaml:"jackpot_tiers"`
	WinConfigs    []WinConfig    `json:"winConfigs" yaml:"win_configs"`
	PlaysAllowed  int            `json:"playsAllowed" yaml:"plays_allowed"`
	QuizQuestions []QuizQuestion `json:"quizQuestions,omitempty" yaml:"quiz_questions,omitempty"`
	Background    string         `json:"background,omitempty" yaml:"background,omitempty"`
	Logo          string         `json:"logo,omitempty" yaml:"logo,omitempty"`
	Sounds        Sounds         `json:"sounds" yaml:"sounds"`
	EndCard       EndCard        `json:"endCard" yaml:"end_card"`
	Style         Style          `json:"style" yaml:"style"`
}

// DefaultConfiguration returns a ready-to-preview creative for mode.
func DefaultConfiguration(mode Mode) Configuration {
	if !mode.Valid() {
		mode = ModeSlots
	}
	cfg := Configuration{
		Name:         "Untitled playable",
		Mode:         mode,
		ChannelID:    "meta",
		Grid:         Grid{Rows: 3, Cols: 3},
		SymbolSet:    append([]string(nil), DefaultSymbols...),
		JackpotTiers: defaultJackpotTiers(),
		PlaysAllowed: 3,
		Background:   DefaultBackground,
		EndCard: EndCard{
			Headline: "YOU WON!",
			Subtext:  "Claim your bonus now",
			CTAText:  "INSTALL NOW",
		},
		Style: Style{FontSize: 24, BoardScale: 1},
	}
	if mode == ModeQuiz {
		cfg.QuizQuestions = defaultQuizQuestions()
	}
	cfg.Normalize()
	return cfg
}

func defaultJackpotTiers() []JackpotTier {
	return []JackpotTier{
		{Label: "GRAND", DisplayValue: "$10,000"},
		{Label: "MAJOR", DisplayValue: "$1,000"},
		{Label: "MINOR", DisplayValue: "$100"},
	}
}

func defaultWinConfig(index int) WinConfig {
	switch index {
	case 0:
		return WinConfig{Message: "BIG WIN!", AnimationID: "coins-burst"}
	case 1:
		return WinConfig{Message: "MEGA WIN!", AnimationID: "fireworks"}
	default:
		return WinConfig{Message: "JACKPOT!", AnimationID: "jackpot-flash"}
	}
}

func defaultQuizQuestions() []QuizQuestion {
	return []QuizQuestion{
		{Question: "Which symbol pays the most?", Options: []string{"Cherry", "Seven", "Bell", "Lemon"}, CorrectIndex: 1},
		{Question: "How many reels does a classic slot have?", Options: []string{"2", "3", "7", "10"}, CorrectIndex: 1},
		{Question: "What do you call the top prize?", Options: []string{"Jackpot", "Bonus", "Wild", "Scatter"}, CorrectIndex: 0},
	}
}

// Normalize clamps every field into its documented range and fills gaps
// with defaults. It never fails.
func (c *Configuration) Normalize() {
	if !c.Mode.Valid() {
		c.Mode = ModeSlots
	}
	c.Grid.Rows = clampInt(c.Grid.Rows, MinRows, MaxRows)
	c.Grid.Cols = clampInt(c.Grid.Cols, MinCols, MaxCols)
	c.PlaysAllowed = clampInt(c.PlaysAllowed, MinPlays, MaxPlays)

	symbols := c.SymbolSet[:0:0]
	for _, s := range c.SymbolSet {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}
	if len(symbols) == 0 {
		symbols = append(symbols, DefaultSymbols...)
	}
	c.SymbolSet = symbols

	if len(c.JackpotTiers) == 0 {
		c.JackpotTiers = defaultJackpotTiers()[:MinJackpotTiers]
	}
	if len(c.JackpotTiers) > MaxJackpotTiers {
		c.JackpotTiers = c.JackpotTiers[:MaxJackpotTiers]
	}

	for i := len(c.WinConfigs); i < c.PlaysAllowed; i++ {
		c.WinConfigs = append(c.WinConfigs, defaultWinConfig(i))
	}

	if c.Mode == ModeQuiz && len(c.QuizQuestions) == 0 {
		c.QuizQuestions = defaultQuizQuestions()
	}
	for i := range c.QuizQuestions {
		c.QuizQuestions[i].normalize()
	}

	if c.Style.FontSize == 0 {
		c.Style.FontSize = 24
	}
	c.Style.FontSize = clampInt(c.Style.FontSize, MinFontSize, MaxFontSize)
	if c.Style.BoardScale == 0 || math.IsNaN(c.Style.BoardScale) || math.IsInf(c.Style.BoardScale, 0) {
		c.Style.BoardScale = 1
	}
	if c.Style.BoardScale < MinBoardScale {
		c.Style.BoardScale = MinBoardScale
	}
	if c.Style.BoardScale > MaxBoardScale {
		c.Style.BoardScale = MaxBoardScale
	}
}

func (q *QuizQuestion) normalize() {
	opts := make([]string, QuizOptions)
	copy(opts, q.Options)
	q.Options = opts
	q.CorrectIndex = clampInt(q.CorrectIndex, 0, QuizOptions-1)
}

// SymbolAt returns the symbol rendered in cell (row, col): the override when
// one is set, otherwise SymbolSet[(col+row) mod len(SymbolSet)].
func (c *Configuration) SymbolAt(row, col int) string {
	if s, ok := c.Override(row, col); ok {
		return s
	}
	if len(c.SymbolSet) == 0 {
		return DefaultSymbol
	}
	idx := (col + row) % len(c.SymbolSet)
	if idx < 0 {
		idx += len(c.SymbolSet)
	}
	if s := c.SymbolSet[idx]; s != "" {
		return s
	}
	return DefaultSymbol
}

// Override returns the symbol pinned to (row, col), if any.
func (c *Configuration) Override(row, col int) (string, bool) {
	for _, o := range c.CellOverrides {
		if o.Row == row && o.Col == col && o.Symbol != "" {
			return o.Symbol, true
		}
	}
	return "", false
}

// Symbols renders the full grid.
func (c *Configuration) Symbols() [][]string {
	out := make([][]string, c.Grid.Rows)
	for r := range out {
		out[r] = make([]string, c.Grid.Cols)
		for col := range out[r] {
			out[r][col] = c.SymbolAt(r, col)
		}
	}
	return out
}

// WinConfigFor returns the win configuration for a 0-based play index,
// falling back to index 0 when out of range.
func (c *Configuration) WinConfigFor(playIndex int) WinConfig {
	if playIndex >= 0 && playIndex < len(c.WinConfigs) {
		return c.WinConfigs[playIndex]
	}
	if len(c.WinConfigs) > 0 {
		return c.WinConfigs[0]
	}
	return defaultWinConfig(0)
}

// WheelSegment is one slice of the prize wheel.
type WheelSegment struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Color string `json:"color"`
}

// WheelSegments derives the wheel from the jackpot tiers.
func (c *Configuration) WheelSegments() []WheelSegment {
	segs := make([]WheelSegment, len(c.JackpotTiers))
	for i, t := range c.JackpotTiers {
		segs[i] = WheelSegment{
			Label: t.Label,
			Value: t.DisplayValue,
			Color: WheelPalette[i%len(WheelPalette)],
		}
	}
	return segs
}

// BackgroundOrDefault returns the background URL or the built-in one.
func (c *Configuration) BackgroundOrDefault() string {
	if strings.TrimSpace(c.Background) == "" {
		return DefaultBackground
	}
	return c.Background
}

// Clone returns a deep copy.
func (c Configuration) Clone() Configuration {
	out := c
	out.SymbolSet = append([]string(nil), c.SymbolSet...)
	out.CellOverrides = append([]CellOverride(nil), c.CellOverrides...)
	out.JackpotTiers = append([]JackpotTier(nil), c.JackpotTiers...)
	out.WinConfigs = append([]WinConfig(nil), c.WinConfigs...)
	if c.QuizQuestions != nil {
		out.QuizQuestions = make([]QuizQuestion, len(c.QuizQuestions))
		for i, q := range c.QuizQuestions {
			q.Options = append([]string(nil), q.Options...)
			out.QuizQuestions[i] = q
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
