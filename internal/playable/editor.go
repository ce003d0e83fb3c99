package playable

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mbark223/playablelab-sub000/pkg/realtime"
)

// Option configures an Editor.
type Option func(*Editor)

// WithRand injects the random source used for win decisions and wheel stops.
func WithRand(rng Rand) Option {
	return func(e *Editor) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithEventSink registers the receiver of outbound events.
func WithEventSink(sink EventSink) Option {
	return func(e *Editor) { e.sink = sink }
}

// WithAudio registers the audio backend for sound cues.
func WithAudio(a Audio) Option {
	return func(e *Editor) { e.audio = a }
}

// Editor owns one creative's configuration and, while the preview is on, its
// session. All mutations happen under one lock and in injected time; delayed
// work lives on a Timeline that a reset cancels wholesale.
type Editor struct {
	mu       sync.Mutex
	id       string
	cfg      Configuration
	session  *Session
	timeline realtime.Timeline
	rng      Rand
	policy   WinPolicy
	sink     EventSink
	audio    Audio
	view     View
	touched  time.Time

	pending []Event
	sounds  []soundRequest
}

// NewEditor creates an editor for cfg with the preview off.
func NewEditor(id string, cfg Configuration, opts ...Option) *Editor {
	cfg = cfg.Clone()
	cfg.Normalize()
	e := &Editor{
		id:      id,
		cfg:     cfg,
		view:    ViewGame,
		touched: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewRand(0)
	}
	e.policy = NewWinPolicy(e.rng)
	return e
}

// ID returns the project ID the editor belongs to.
func (e *Editor) ID() string {
	return e.id
}

// locked runs fn under the lock, then delivers queued sounds and events
// outside it.
func (e *Editor) locked(fn func()) {
	e.mu.Lock()
	fn()
	events, sounds := e.pending, e.sounds
	e.pending, e.sounds = nil, nil
	sink, audio := e.sink, e.audio
	e.mu.Unlock()

	playSounds(audio, e.id, sounds)
	if sink == nil {
		return
	}
	for _, ev := range events {
		sink(ev)
	}
}

func (e *Editor) emit(ev Event, at time.Time) {
	ev.At = at
	e.pending = append(e.pending, ev)
}

func (e *Editor) cue(cue Cue, src string, play int, at time.Time) {
	if src == "" {
		return
	}
	e.sounds = append(e.sounds, soundRequest{cue: cue, src: src})
	e.emit(Event{Kind: EventSound, Cue: cue, Play: play}, at)
}

// TogglePreview flips the preview and reports whether it is now playing.
// Turning it on starts a fresh session; turning it off discards the session
// and every pending timer immediately.
func (e *Editor) TogglePreview(now time.Time) bool {
	playing := false
	e.locked(func() {
		e.touched = now
		if e.session != nil {
			e.stopLocked(now)
			return
		}
		e.startLocked(now)
		playing = true
	})
	return playing
}

// RestartPreview discards any running session and starts a new one.
func (e *Editor) RestartPreview(now time.Time) {
	e.locked(func() {
		e.touched = now
		if e.session != nil {
			e.stopLocked(now)
		}
		e.startLocked(now)
	})
}

// StopPreview turns the preview off. It reports whether a session was running.
func (e *Editor) StopPreview(now time.Time) bool {
	stopped := false
	e.locked(func() {
		if e.session == nil {
			return
		}
		e.stopLocked(now)
		stopped = true
	})
	return stopped
}

func (e *Editor) startLocked(now time.Time) {
	e.timeline.Cancel()
	e.session = newSession(e.cfg.Clone(), now)
	e.view = ViewGame
	log.WithFields(log.Fields{
		"project": e.id,
		"mode":    e.cfg.Mode,
		"plays":   e.cfg.PlaysAllowed,
	}).Debug("preview started")
	e.emit(Event{Kind: EventPreviewStarted, Play: -1}, now)
}

func (e *Editor) stopLocked(now time.Time) {
	e.timeline.Cancel()
	e.session = nil
	e.view = ViewGame
	log.WithField("project", e.id).Debug("preview stopped")
	e.emit(Event{Kind: EventPreviewStopped, Play: -1}, now)
}

// RequestPlay starts one play. It is a no-op returning false when the preview
// is off, a play is still resolving, no plays remain or the mode does not
// count plays. Timers due at now fire first. target picks the tapped cell in
// surface modes.
func (e *Editor) RequestPlay(now time.Time, target int) bool {
	started := false
	e.locked(func() {
		e.touched = now
		e.timeline.Advance(now)
		s := e.session
		if s == nil || !s.canPlay() {
			return
		}
		m, ok := mechanicFor(s.cfg.Mode)
		if !ok {
			return
		}
		e.startPlayLocked(s, m, now, target)
		started = true
	})
	return started
}

func (e *Editor) startPlayLocked(s *Session, m mechanic, now time.Time, target int) {
	playIndex := s.currentPlayIndex()
	s.playsRemaining--
	isLast := s.playsRemaining == 0

	if s.activeWin != nil {
		s.activeWin = nil
		e.emit(Event{Kind: EventWinCleared, Play: playIndex - 1}, now)
	}
	s.resolving = true
	s.phase = PhaseResolving
	s.lastOutcome = nil
	m.begin(s, target, e.rng)

	e.emit(Event{Kind: EventPlayStarted, Play: playIndex}, now)
	e.cue(CueSpin, s.cfg.Sounds.Spin, playIndex, now)

	for _, ms := range m.milestones(s) {
		ms := ms
		e.timeline.Schedule(now.Add(ms.offset), func(at time.Time) {
			if e.session != s {
				return
			}
			if ev := ms.apply(s); ev != nil {
				ev.Play = playIndex
				e.emit(*ev, at)
			}
		})
	}
	e.timeline.Schedule(now.Add(m.duration(s)), func(at time.Time) {
		if e.session != s {
			return
		}
		e.resolveLocked(s, m, at, playIndex, isLast)
	})
}

// resolveLocked is the shared end of every counted play: settle visuals,
// apply the win policy, show the win message and, on the last play, schedule
// the end card after the message has had its full display time.
func (e *Editor) resolveLocked(s *Session, m mechanic, at time.Time, playIndex int, isLast bool) {
	m.settle(s)
	s.resolving = false
	s.phase = PhaseIdle

	outcome := WinOutcome{}
	if e.policy.ShouldTriggerWin(isLast) {
		wc := s.cfg.WinConfigFor(playIndex)
		outcome = WinOutcome{Triggered: true, Message: wc.Message, AnimationID: wc.AnimationID}
		s.activeWin = &wc
		s.winSeq++
		seq := s.winSeq
		s.phase = PhaseRevealing
		e.emit(Event{Kind: EventWinTriggered, Play: playIndex, Outcome: &outcome}, at)
		e.cue(CueWin, s.cfg.Sounds.Win, playIndex, at)

		e.timeline.Schedule(at.Add(WinDisplayDuration), func(at time.Time) {
			if e.session != s || s.winSeq != seq || s.activeWin == nil {
				return
			}
			s.activeWin = nil
			if s.phase == PhaseRevealing {
				s.phase = PhaseIdle
			}
			e.emit(Event{Kind: EventWinCleared, Play: playIndex}, at)
		})
	}
	s.lastOutcome = &outcome
	e.emit(Event{Kind: EventPlayResolved, Play: playIndex, Outcome: &outcome}, at)

	log.WithFields(log.Fields{
		"project": e.id,
		"play":    playIndex,
		"win":     outcome.Triggered,
		"left":    s.playsRemaining,
	}).Debug("play resolved")

	if !isLast {
		return
	}
	s.phase = PhaseEnding
	delay := time.Duration(0)
	if outcome.Triggered {
		delay = WinDisplayDuration
	}
	e.timeline.Schedule(at.Add(delay), func(at time.Time) {
		if e.session != s {
			return
		}
		s.finish()
		e.emit(Event{Kind: EventSessionEnded, Play: playIndex}, at)
	})
}

// Advance fires every timer due at now. It reports whether anything fired.
func (e *Editor) Advance(now time.Time) bool {
	fired := false
	e.locked(func() {
		fired = e.timeline.Advance(now) > 0
	})
	return fired
}

// NextWake returns when the next timer is due.
func (e *Editor) NextWake() (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timeline.NextWake()
}

// Playing reports whether the preview is on.
func (e *Editor) Playing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session != nil
}

// LastTouched returns the time of the last user interaction.
func (e *Editor) LastTouched() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.touched
}

// Dispatch applies an editor command to the configuration. A running session
// keeps playing against the configuration it started with; the change shows
// from the next preview.
func (e *Editor) Dispatch(now time.Time, cmd Command) error {
	if cmd == nil {
		return ErrUnknownCommand
	}
	e.locked(func() {
		e.touched = now
		cmd.apply(&e.cfg)
		e.cfg.Normalize()
		e.emit(Event{Kind: EventConfigChanged, Play: -1}, now)
	})
	return nil
}

// SetView switches between the game and the end card while the preview is
// off. A running session controls its own view.
func (e *Editor) SetView(now time.Time, v View) bool {
	changed := false
	e.locked(func() {
		e.touched = now
		if e.session != nil || e.view == v {
			return
		}
		e.view = v
		changed = true
		e.emit(Event{Kind: EventConfigChanged, Play: -1}, now)
	})
	return changed
}

// Config returns a copy of the current configuration.
func (e *Editor) Config() Configuration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.Clone()
}

// ExportConfig returns the configuration to hand to the export pipeline.
// Session state is never part of an export.
func (e *Editor) ExportConfig() Configuration {
	return e.Config()
}
