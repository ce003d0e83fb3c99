// Package viewmodel holds the view-layer types rendered by internal/views.
// They carry display-ready values only, so templates need no domain imports.
package viewmodel

// Option is a value/label pair for a select control.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// ProjectRow is one entry in the project list.
type ProjectRow struct {
	ID      string
	Name    string
	Mode    string
	Updated string
}

// HomePage lists projects and offers a create form.
type HomePage struct {
	Title    string
	Modes    []Option
	Projects []ProjectRow
}

// ExportRow is one past export.
type ExportRow struct {
	FileName string
	Channel  string
	Size     string
	Checksum string
	Created  string
}

// EditorPage is the full editor: configuration panel plus live preview.
type EditorPage struct {
	Title        string
	ProjectID    string
	Name         string
	ConfigJSON   string
	Modes        []Option
	Channels     []Option
	Animations   []Option
	WinConfigs   []WinConfigRow
	Exports      []ExportRow
	DraftEnabled bool
	Preview      Preview
}

// WinConfigRow is the editable win message for one play.
type WinConfigRow struct {
	Index       int
	Message     string
	AnimationID string
}

// Cell is one slot board cell.
type Cell struct {
	Image    string
	Glyph    string
	Spinning bool
}

// Segment is one wheel slice with its CSS rotation.
type Segment struct {
	Label  string
	Value  string
	Color  string
	Angle  float64
	Landed bool
}

// SurfaceCell is one tappable cell of scratch, pick, match and fall.
type SurfaceCell struct {
	Index    int
	Image    string
	Glyph    string
	Revealed bool
}

// QuizOption is one answer button.
type QuizOption struct {
	Index   int
	Text    string
	State   string
	Enabled bool
}

// QuizBlock renders the current question.
type QuizBlock struct {
	Number   int
	Total    int
	Question string
	Score    int
	Options  []QuizOption
	Feedback string
}

// WinBanner is the active win overlay.
type WinBanner struct {
	Message  string
	CSSClass string
	Glyph    string
}

// Jackpot is one prize row.
type Jackpot struct {
	Label string
	Value string
	Skin  string
}

// EndCard is the terminal screen.
type EndCard struct {
	Headline string
	Subtext  string
	CTAText  string
	CTAURL   string
}

// Preview is the live preview fragment, re-rendered on every update.
type Preview struct {
	ProjectID     string
	Mode          string
	Playing       bool
	ShowEndCard   bool
	CanPlay       bool
	PlaysText     string
	Phase         string
	Rows          [][]Cell
	Wheel         []Segment
	WheelRotation float64
	Surface       []SurfaceCell
	SurfaceCols   int
	Quiz          *QuizBlock
	Win           *WinBanner
	LastResult    string
	Jackpots      []Jackpot
	EndCard       EndCard
	Background    string
	BackdropClass string
	Logo          string
	FontSize      int
	BoardScale    float64
}

// Bundle is the exported single-file playable.
type Bundle struct {
	Title          string
	ChannelID      string
	Width          int
	Height         int
	CTAAPI         string
	ConfigJSON     string
	// AnimationsJSON is the animation catalog the runtime needs to show wins.
	AnimationsJSON string
	Preview        Preview
}
