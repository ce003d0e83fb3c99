package playable

import (
	"fmt"
	"time"
)

// SubmitAnswer grades option for the current quiz question. It is ignored
// unless the preview is running in quiz mode and the question is awaiting an
// answer. Feedback shows for QuizFeedbackDelay before the next question, or
// the end card after the last one.
func (e *Editor) SubmitAnswer(now time.Time, option int) bool {
	accepted := false
	e.locked(func() {
		e.touched = now
		e.timeline.Advance(now)
		s := e.session
		if s == nil || s.cfg.Mode != ModeQuiz || s.ended || s.quiz.Status != QuizIdle {
			return
		}
		if s.quiz.Current >= len(s.cfg.QuizQuestions) || option < 0 || option >= QuizOptions {
			return
		}
		q := s.cfg.QuizQuestions[s.quiz.Current]
		s.quiz.Selected = option
		correct := option == q.CorrectIndex
		if correct {
			s.quiz.Score++
			s.quiz.Status = QuizCorrect
		} else {
			s.quiz.Status = QuizWrong
		}
		s.phase = PhaseFeedback
		idx := s.quiz.Current
		e.emit(Event{Kind: EventAnswerGraded, Play: idx, Question: idx, Correct: correct}, now)
		if correct {
			e.cue(CueWin, s.cfg.Sounds.Win, idx, now)
		}
		e.timeline.Schedule(now.Add(QuizFeedbackDelay), func(at time.Time) {
			if e.session != s {
				return
			}
			e.advanceQuizLocked(s, at)
		})
		accepted = true
	})
	return accepted
}

func (e *Editor) advanceQuizLocked(s *Session, at time.Time) {
	total := len(s.cfg.QuizQuestions)
	if s.quiz.Current < total-1 {
		s.quiz.Current++
		s.quiz.Selected = -1
		s.quiz.Status = QuizIdle
		s.phase = PhaseAnswering
		e.emit(Event{Kind: EventQuestionAdvanced, Play: s.quiz.Current, Question: s.quiz.Current}, at)
		return
	}
	s.quiz.Complete = true
	s.endCard = QuizEndCard(s.quiz.Score, total, s.cfg.EndCard)
	s.finish()
	e.emit(Event{Kind: EventSessionEnded, Play: s.quiz.Current, Question: s.quiz.Current}, at)
}

// QuizEndCard builds the quiz end card from the final score.
func QuizEndCard(score, total int, base EndCard) EndCard {
	base.Headline = HeadlineEffort
	if score == total {
		base.Headline = HeadlinePerfect
	}
	base.Subtext = fmt.Sprintf("You scored %d/%d", score, total)
	return base
}
