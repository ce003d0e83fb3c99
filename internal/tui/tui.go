// Package tui previews a creative in the terminal, driving the same editor
// the web preview uses.
package tui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mbark223/playablelab-sub000/internal/playable"
	"github.com/mbark223/playablelab-sub000/internal/views"
)

const (
	tickInterval = 50 * time.Millisecond
	logLines     = 8
)

type keyMap struct {
	Toggle  key.Binding
	Play    key.Binding
	Restart key.Binding
	EndCard key.Binding
	Answer  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Play, k.Answer, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Restart, k.EndCard},
		{k.Play, k.Answer},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	Toggle:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview on/off")),
	Play:    key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "spin / tap")),
	Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
	EndCard: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end card")),
	Answer:  key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "answer")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FACC15")).
			Bold(true)

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#8B5CF6")).
			Padding(0, 1)

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#111111")).
			Background(lipgloss.Color("#FACC15")).
			Bold(true).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	logStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))
)

// eventLog collects editor events. The sink runs inside Update, but the
// model is copied by value, so the log lives behind a pointer.
type eventLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *eventLog) add(ev playable.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	line := string(ev.Kind)
	switch {
	case ev.Outcome != nil && ev.Outcome.Triggered:
		line += " " + ev.Outcome.Message
	case ev.Kind == playable.EventReelStopped:
		line += fmt.Sprintf(" reel %d", ev.Column+1)
	case ev.Kind == playable.EventAnswerGraded:
		line += fmt.Sprintf(" correct=%v", ev.Correct)
	}
	l.lines = append(l.lines, line)
	if len(l.lines) > logLines {
		l.lines = l.lines[len(l.lines)-logLines:]
	}
}

func (l *eventLog) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.lines, "\n")
}

type tickMsg time.Time

type Model struct {
	editor *playable.Editor
	log    *eventLog
	help   help.Model
	now    func() time.Time
	width  int
}

// New builds the preview model for cfg. rng may be nil.
func New(cfg playable.Configuration, rng playable.Rand, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	events := &eventLog{}
	opts := []playable.Option{playable.WithEventSink(events.add)}
	if rng != nil {
		opts = append(opts, playable.WithRand(rng))
	}
	return Model{
		editor: playable.NewEditor("terminal", cfg, opts...),
		log:    events,
		help:   help.New(),
		now:    now,
	}
}

// Editor exposes the underlying editor.
func (m Model) Editor() *playable.Editor {
	return m.editor
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	m.editor.TogglePreview(m.now())
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		now := m.now()
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, keys.Toggle):
			m.editor.TogglePreview(now)
		case key.Matches(msg, keys.Restart):
			m.editor.RestartPreview(now)
		case key.Matches(msg, keys.EndCard):
			snap := m.editor.Snapshot(now)
			if snap.View == playable.ViewEndCard {
				m.editor.SetView(now, playable.ViewGame)
			} else {
				m.editor.SetView(now, playable.ViewEndCard)
			}
		case key.Matches(msg, keys.Play):
			m.editor.RequestPlay(now, -1)
		case key.Matches(msg, keys.Answer):
			m.editor.SubmitAnswer(now, int(msg.String()[0]-'1'))
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case tickMsg:
		m.editor.Advance(time.Time(msg))
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	snap := m.editor.Snapshot(m.now())
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s · %s", snap.Name, snap.Mode)))
	b.WriteString("\n\n")

	main := renderStage(snap)
	side := logStyle.Width(32).Render("EVENTS\n" + m.log.String())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, main, side))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

func renderStage(snap playable.Snapshot) string {
	if snap.View == playable.ViewEndCard {
		card := snap.EndCard
		return boardStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render(card.Headline), card.Subtext, winStyle.Render(card.CTAText)))
	}

	var lines []string
	if len(snap.Jackpots) > 0 && snap.Mode != playable.ModeQuiz {
		var tiers []string
		for _, j := range snap.Jackpots {
			tiers = append(tiers, j.Label+" "+j.DisplayValue)
		}
		lines = append(lines, dimStyle.Render(strings.Join(tiers, " | ")))
	}

	switch snap.Mode {
	case playable.ModeSlots:
		for _, row := range snap.Grid {
			cells := make([]string, len(row))
			for c, sym := range row {
				if c < len(snap.ReelSpinning) && snap.ReelSpinning[c] {
					cells[c] = "░░"
				} else {
					cells[c] = views.SymbolGlyph(sym)
				}
			}
			lines = append(lines, strings.Join(cells, " "))
		}
	case playable.ModeWheel:
		for i, seg := range snap.Wheel {
			marker := "  "
			if i == snap.LandedSegment && !snap.Resolving {
				marker = "▶ "
			}
			lines = append(lines, marker+seg.Label+" "+seg.Value)
		}
		if snap.Resolving {
			lines = append(lines, dimStyle.Render("spinning…"))
		}
	case playable.ModeQuiz:
		lines = append(lines, quizLines(snap.Quiz)...)
	default:
		revealed := make(map[int]bool, len(snap.Revealed))
		for _, i := range snap.Revealed {
			revealed[i] = true
		}
		cols := 1
		if len(snap.Grid) > 0 {
			cols = len(snap.Grid[0])
		}
		for r, row := range snap.Grid {
			cells := make([]string, len(row))
			for c, sym := range row {
				if revealed[r*cols+c] {
					cells[c] = views.SymbolGlyph(sym)
				} else {
					cells[c] = "▓▓"
				}
			}
			lines = append(lines, strings.Join(cells, " "))
		}
	}

	if snap.ActiveWin != nil {
		glyph := ""
		if snap.Animation != nil {
			glyph = snap.Animation.Glyph + " "
		}
		lines = append(lines, "", winStyle.Render(glyph+snap.ActiveWin.Message))
	} else if snap.LastOutcome != nil && !snap.LastOutcome.Triggered {
		lines = append(lines, "", dimStyle.Render("No win this time"))
	}

	switch {
	case !snap.Playing:
		lines = append(lines, "", dimStyle.Render("preview off, press p"))
	case snap.Mode.Counted():
		lines = append(lines, "", fmt.Sprintf("%d/%d plays left", snap.PlaysRemaining, snap.PlaysAllowed))
	}
	return boardStyle.Render(strings.Join(lines, "\n"))
}

func quizLines(q *playable.QuizView) []string {
	if q == nil {
		return nil
	}
	lines := []string{
		dimStyle.Render(fmt.Sprintf("Question %d of %d · Score %d", q.Index+1, q.Total, q.Score)),
		q.Question,
	}
	for i, opt := range q.Options {
		mark := " "
		switch {
		case q.Status != playable.QuizIdle && i == q.Correct:
			mark = "✓"
		case q.Status != playable.QuizIdle && i == q.Selected:
			mark = "✗"
		}
		lines = append(lines, fmt.Sprintf("%s %d) %s", mark, i+1, opt))
	}
	return lines
}

// Run starts the interactive preview.
func Run(cfg playable.Configuration, rng playable.Rand) error {
	p := tea.NewProgram(New(cfg, rng, nil), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
