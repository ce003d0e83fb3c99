package playable

import "time"

// QuizView is the render state of the current quiz question.
type QuizView struct {
	Index    int        `json:"index"`
	Total    int        `json:"total"`
	Question string     `json:"question"`
	Options  []string   `json:"options"`
	Score    int        `json:"score"`
	Selected int        `json:"selected"`
	Correct  int        `json:"correct"`
	Status   QuizStatus `json:"status"`
	Complete bool       `json:"complete"`
}

// Snapshot is everything a renderer needs to draw the preview at one instant.
type Snapshot struct {
	ProjectID string `json:"projectId"`
	Name      string `json:"name"`
	Mode      Mode   `json:"mode"`
	ChannelID string `json:"channelId"`

	Playing   bool  `json:"playing"`
	Resolving bool  `json:"resolving"`
	Ended     bool  `json:"ended"`
	Phase     Phase `json:"phase"`
	View      View  `json:"view"`

	PlaysAllowed     int `json:"playsAllowed"`
	PlaysRemaining   int `json:"playsRemaining"`
	CurrentPlayIndex int `json:"currentPlayIndex"`

	Grid         [][]string `json:"grid"`
	ReelSpinning []bool     `json:"reelSpinning"`
	Spinning     bool       `json:"spinning"`

	ActiveWin   *WinConfig  `json:"activeWin,omitempty"`
	Animation   *Animation  `json:"animation,omitempty"`
	LastOutcome *WinOutcome `json:"lastOutcome,omitempty"`

	Jackpots      []JackpotTier  `json:"jackpots"`
	Wheel         []WheelSegment `json:"wheel"`
	WheelRotation float64        `json:"wheelRotation"`
	LandedSegment int            `json:"landedSegment"`

	SurfaceSize int   `json:"surfaceSize"`
	Revealed    []int `json:"revealed"`

	Quiz *QuizView `json:"quiz,omitempty"`

	EndCard    EndCard `json:"endCard"`
	Background string  `json:"background"`
	Logo       string  `json:"logo,omitempty"`
	Sounds     Sounds  `json:"sounds"`
	Style      Style   `json:"style"`
}

// Snapshot fires any timers due at now and returns the resulting state.
func (e *Editor) Snapshot(now time.Time) Snapshot {
	var snap Snapshot
	e.locked(func() {
		e.timeline.Advance(now)
		snap = e.snapshotLocked()
	})
	return snap
}

func (e *Editor) snapshotLocked() Snapshot {
	s := e.session
	cfg := &e.cfg
	if s != nil {
		cfg = &s.cfg
	}
	snap := Snapshot{
		ProjectID:     e.id,
		Name:          cfg.Name,
		Mode:          cfg.Mode,
		ChannelID:     cfg.ChannelID,
		Phase:         PhaseIdle,
		View:          e.view,
		PlaysAllowed:  cfg.PlaysAllowed,
		Grid:          cfg.Symbols(),
		ReelSpinning:  make([]bool, cfg.Grid.Cols),
		Jackpots:      append([]JackpotTier(nil), cfg.JackpotTiers...),
		Wheel:         cfg.WheelSegments(),
		LandedSegment: -1,
		SurfaceSize:   SurfaceSize(cfg),
		Revealed:      []int{},
		EndCard:       cfg.EndCard,
		Background:    cfg.BackgroundOrDefault(),
		Logo:          cfg.Logo,
		Sounds:        cfg.Sounds,
		Style:         cfg.Style,
	}

	if s == nil {
		snap.PlaysRemaining = cfg.PlaysAllowed
		if cfg.Mode == ModeQuiz {
			snap.Quiz = quizView(cfg, QuizState{Selected: -1, Status: QuizIdle})
		}
		return snap
	}

	snap.Playing = true
	snap.Resolving = s.resolving
	snap.Ended = s.ended
	snap.Phase = s.phase
	snap.View = s.view
	snap.PlaysRemaining = s.playsRemaining
	snap.CurrentPlayIndex = s.currentPlayIndex()
	copy(snap.ReelSpinning, s.reels)
	snap.Spinning = s.anyReelSpinning()
	snap.WheelRotation = s.wheelRotation
	snap.LandedSegment = s.landedSegment
	snap.Revealed = append(snap.Revealed, s.revealed...)
	snap.EndCard = s.endCard
	if s.activeWin != nil {
		win := *s.activeWin
		anim := ResolveAnimation(win.AnimationID)
		snap.ActiveWin = &win
		snap.Animation = &anim
	}
	if s.lastOutcome != nil {
		out := *s.lastOutcome
		snap.LastOutcome = &out
	}
	if cfg.Mode == ModeQuiz {
		snap.Quiz = quizView(cfg, s.quiz)
	}
	return snap
}

func quizView(cfg *Configuration, st QuizState) *QuizView {
	v := &QuizView{
		Index:    st.Current,
		Total:    len(cfg.QuizQuestions),
		Score:    st.Score,
		Selected: st.Selected,
		Correct:  -1,
		Status:   st.Status,
		Complete: st.Complete,
	}
	if st.Current < len(cfg.QuizQuestions) {
		q := cfg.QuizQuestions[st.Current]
		v.Question = q.Question
		v.Options = append([]string(nil), q.Options...)
		if st.Status != QuizIdle {
			v.Correct = q.CorrectIndex
		}
	}
	return v
}
