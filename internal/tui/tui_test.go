package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mbark223/playablelab-sub000/internal/playable"
)

type winRand struct{}

func (winRand) Float64() float64 { return 0.9 }
func (winRand) Intn(int) int     { return 0 }

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestInitStartsPreview(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	m := New(playable.DefaultConfiguration(playable.ModeSlots), winRand{}, clock.now)
	if cmd := m.Init(); cmd == nil {
		t.Error("Init should schedule a tick")
	}
	if !m.Editor().Playing() {
		t.Error("preview should start on Init")
	}
}

func TestSpinAndResolve(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	m := New(playable.DefaultConfiguration(playable.ModeSlots), winRand{}, clock.now)
	m.Init()

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if snap := m.Editor().Snapshot(clock.t); !snap.Resolving || snap.PlaysRemaining != 2 {
		t.Fatalf("after spin resolving=%v left=%d", snap.Resolving, snap.PlaysRemaining)
	}
	if !strings.Contains(m.View(), "░░") {
		t.Error("spinning reels not drawn")
	}

	clock.t = clock.t.Add(3100 * time.Millisecond)
	m = send(t, m, tickMsg(clock.t))
	view := m.View()
	if !strings.Contains(view, "BIG WIN!") {
		t.Errorf("win banner missing:\n%s", view)
	}
	if !strings.Contains(view, "win_triggered") {
		t.Errorf("event log missing win_triggered:\n%s", view)
	}
}

func TestToggleAndEndCard(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	m := New(playable.DefaultConfiguration(playable.ModeWheel), winRand{}, clock.now)
	m.Init()

	m = send(t, m, runes("p"))
	if m.Editor().Playing() {
		t.Fatal("p should stop the preview")
	}
	m = send(t, m, runes("e"))
	if !strings.Contains(m.View(), "INSTALL NOW") {
		t.Error("end card not shown")
	}
	m = send(t, m, runes("e"))
	if strings.Contains(m.View(), "INSTALL NOW") {
		t.Error("end card still shown after second toggle")
	}
}

func TestQuizAnswerKeys(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	m := New(playable.DefaultConfiguration(playable.ModeQuiz), nil, clock.now)
	m.Init()

	m = send(t, m, runes("2"))
	snap := m.Editor().Snapshot(clock.t)
	if snap.Quiz.Score != 1 || snap.Quiz.Selected != 1 {
		t.Errorf("score %d selected %d, want 1 1", snap.Quiz.Score, snap.Quiz.Selected)
	}
	if !strings.Contains(m.View(), "✓") {
		t.Error("correct mark not drawn")
	}
}

func TestQuitKey(t *testing.T) {
	m := New(playable.DefaultConfiguration(playable.ModePick), nil, nil)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
