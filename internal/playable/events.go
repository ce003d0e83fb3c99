package playable

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// EventKind names an outbound occurrence.
type EventKind string

const (
	EventPreviewStarted   EventKind = "preview_started"
	EventPreviewStopped   EventKind = "preview_stopped"
	EventPlayStarted      EventKind = "play_started"
	EventReelStopped      EventKind = "reel_stopped"
	EventPlayResolved     EventKind = "play_resolved"
	EventWinTriggered     EventKind = "win_triggered"
	EventWinCleared       EventKind = "win_cleared"
	EventSessionEnded     EventKind = "session_ended"
	EventAnswerGraded     EventKind = "answer_graded"
	EventQuestionAdvanced EventKind = "question_advanced"
	EventConfigChanged    EventKind = "config_changed"
	EventSound            EventKind = "sound"
)

// WinOutcome is the result of one resolved play.
type WinOutcome struct {
	Triggered   bool   `json:"triggered"`
	Message     string `json:"message,omitempty"`
	AnimationID string `json:"animationId,omitempty"`
}

// Event is delivered to the EventSink exactly once per occurrence.
type Event struct {
	Kind     EventKind   `json:"kind"`
	At       time.Time   `json:"at"`
	Play     int         `json:"play"`
	Column   int         `json:"column,omitempty"`
	Question int         `json:"question,omitempty"`
	Correct  bool        `json:"correct,omitempty"`
	Cue      Cue         `json:"cue,omitempty"`
	Outcome  *WinOutcome `json:"outcome,omitempty"`
}

// EventSink receives events after the editor lock is released, so it may
// read the editor but must not block for long.
type EventSink func(Event)

// Cue is an audio cue name.
type Cue string

const (
	CueSpin Cue = "spin"
	CueWin  Cue = "win"
)

// Audio plays a cue. Failures are logged and ignored by the editor.
type Audio interface {
	Play(cue Cue, src string) error
}

type soundRequest struct {
	cue Cue
	src string
}

func playSounds(audio Audio, projectID string, sounds []soundRequest) {
	if audio == nil {
		return
	}
	for _, s := range sounds {
		if err := audio.Play(s.cue, s.src); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"project": projectID,
				"cue":     s.cue,
			}).Warn("audio cue failed")
		}
	}
}
