package playable

import "time"

// Phase is the coarse state of a running session.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseResolving Phase = "resolving"
	PhaseRevealing Phase = "revealing"
	PhaseEnding    Phase = "ending"
	PhaseEnded     Phase = "ended"
	PhaseAnswering Phase = "answering"
	PhaseFeedback  Phase = "feedback"
)

// View selects what the preview surface shows.
type View string

const (
	ViewGame    View = "game"
	ViewEndCard View = "endcard"
)

// ParseView resolves a view name; unknown names map to the game view.
func ParseView(s string) View {
	if View(s) == ViewEndCard {
		return ViewEndCard
	}
	return ViewGame
}

// QuizStatus is the feedback state of the current question.
type QuizStatus string

const (
	QuizIdle    QuizStatus = "idle"
	QuizCorrect QuizStatus = "correct"
	QuizWrong   QuizStatus = "wrong"
)

// Quiz headlines.
const (
	HeadlinePerfect = "PERFECT SCORE!"
	HeadlineEffort  = "GREAT EFFORT!"
)

// QuizState tracks progress through the question list.
type QuizState struct {
	Current  int
	Score    int
	Selected int
	Status   QuizStatus
	Complete bool
}

// Session is the ephemeral state of one preview run. It is created when the
// preview is toggled on and discarded when it is toggled off. It plays
// against a frozen copy of the configuration.
type Session struct {
	cfg       Configuration
	startedAt time.Time

	playsRemaining int
	resolving      bool
	phase          Phase
	view           View
	ended          bool
	endCard        EndCard

	reels       []bool
	activeWin   *WinConfig
	winSeq      int
	lastOutcome *WinOutcome

	wheelRotation  float64
	landedSegment  int
	pendingSegment int
	revealed       []int

	quiz QuizState
}

func newSession(cfg Configuration, now time.Time) *Session {
	s := &Session{
		cfg:            cfg,
		startedAt:      now,
		playsRemaining: cfg.PlaysAllowed,
		phase:          PhaseIdle,
		view:           ViewGame,
		reels:          make([]bool, cfg.Grid.Cols),
		landedSegment:  -1,
		pendingSegment: -1,
		endCard:        cfg.EndCard,
		quiz:           QuizState{Selected: -1, Status: QuizIdle},
	}
	if cfg.Mode == ModeQuiz {
		s.phase = PhaseAnswering
	}
	return s
}

// currentPlayIndex is PlaysAllowed - PlaysRemaining.
func (s *Session) currentPlayIndex() int {
	return s.cfg.PlaysAllowed - s.playsRemaining
}

func (s *Session) canPlay() bool {
	return s.cfg.Mode.Counted() && !s.ended && !s.resolving && s.playsRemaining > 0
}

func (s *Session) anyReelSpinning() bool {
	for _, spinning := range s.reels {
		if spinning {
			return true
		}
	}
	return false
}

func (s *Session) isRevealed(idx int) bool {
	for _, r := range s.revealed {
		if r == idx {
			return true
		}
	}
	return false
}

func (s *Session) finish() {
	s.ended = true
	s.phase = PhaseEnded
	s.view = ViewEndCard
	s.activeWin = nil
}
