package playable

import (
	"testing"
	"time"
)

func runQuiz(t *testing.T, answers []int) (Snapshot, *recorder) {
	t.Helper()
	t0 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	e, rec := newTestEditor(DefaultConfiguration(ModeQuiz), &scriptedRand{})
	e.TogglePreview(t0)

	at := t0
	for i, opt := range answers {
		if !e.SubmitAnswer(at, opt) {
			t.Fatalf("answer %d rejected", i)
		}
		if e.SubmitAnswer(at.Add(ms(100)), opt) {
			t.Errorf("answer %d accepted twice during feedback", i)
		}
		at = at.Add(QuizFeedbackDelay)
	}
	return e.Snapshot(at), rec
}

func TestQuiz_PerfectScore(t *testing.T) {
	snap, rec := runQuiz(t, []int{1, 1, 0})
	if !snap.Ended || snap.View != ViewEndCard {
		t.Fatalf("Ended %v View %q, want true endcard", snap.Ended, snap.View)
	}
	if snap.EndCard.Headline != HeadlinePerfect {
		t.Errorf("Headline %q, want %q", snap.EndCard.Headline, HeadlinePerfect)
	}
	if snap.EndCard.Subtext != "You scored 3/3" {
		t.Errorf("Subtext %q, want You scored 3/3", snap.EndCard.Subtext)
	}
	if snap.EndCard.CTAText != "INSTALL NOW" {
		t.Errorf("CTAText %q, want the configured CTA", snap.EndCard.CTAText)
	}
	if snap.Quiz == nil || !snap.Quiz.Complete || snap.Quiz.Score != 3 {
		t.Errorf("Quiz %+v, want complete with score 3", snap.Quiz)
	}
	if got := rec.count(EventQuestionAdvanced); got != 2 {
		t.Errorf("question_advanced %d, want 2", got)
	}
	if got := rec.count(EventSessionEnded); got != 1 {
		t.Errorf("session_ended %d, want 1", got)
	}
}

func TestQuiz_PartialScore(t *testing.T) {
	snap, rec := runQuiz(t, []int{1, 0, 0})
	if snap.EndCard.Headline != HeadlineEffort {
		t.Errorf("Headline %q, want %q", snap.EndCard.Headline, HeadlineEffort)
	}
	if snap.EndCard.Subtext != "You scored 2/3" {
		t.Errorf("Subtext %q, want You scored 2/3", snap.EndCard.Subtext)
	}
	var graded []bool
	for _, ev := range rec.events {
		if ev.Kind == EventAnswerGraded {
			graded = append(graded, ev.Correct)
		}
	}
	want := []bool{true, false, true}
	if len(graded) != len(want) {
		t.Fatalf("graded %v, want %v", graded, want)
	}
	for i := range want {
		if graded[i] != want[i] {
			t.Errorf("answer %d correct %v, want %v", i, graded[i], want[i])
		}
	}
}

func TestQuiz_FeedbackThenAdvance(t *testing.T) {
	t0 := time.Now().UTC()
	e, _ := newTestEditor(DefaultConfiguration(ModeQuiz), &scriptedRand{})
	e.TogglePreview(t0)

	e.SubmitAnswer(t0, 3)
	snap := e.Snapshot(t0.Add(ms(1499)))
	if snap.Quiz.Status != QuizWrong || snap.Quiz.Selected != 3 || snap.Quiz.Correct != 1 {
		t.Errorf("Quiz %+v, want wrong feedback on option 3", snap.Quiz)
	}
	if snap.Phase != PhaseFeedback {
		t.Errorf("Phase %q, want feedback", snap.Phase)
	}
	snap = e.Snapshot(t0.Add(QuizFeedbackDelay))
	if snap.Quiz.Index != 1 || snap.Quiz.Status != QuizIdle || snap.Quiz.Selected != -1 {
		t.Errorf("Quiz %+v, want question 1 awaiting an answer", snap.Quiz)
	}
}

func TestQuiz_IgnoresPlaysAndBadInput(t *testing.T) {
	t0 := time.Now().UTC()
	e, _ := newTestEditor(DefaultConfiguration(ModeQuiz), &scriptedRand{})
	if e.SubmitAnswer(t0, 1) {
		t.Error("answer accepted with the preview off")
	}
	e.TogglePreview(t0)
	if e.RequestPlay(t0, -1) {
		t.Error("quiz mode should not accept plays")
	}
	if e.SubmitAnswer(t0, QuizOptions) {
		t.Error("out-of-range option accepted")
	}
	if snap := e.Snapshot(t0); snap.PlaysRemaining != snap.PlaysAllowed {
		t.Errorf("PlaysRemaining %d, want untouched %d", snap.PlaysRemaining, snap.PlaysAllowed)
	}
}

func TestQuizEndCard(t *testing.T) {
	base := EndCard{Headline: "x", Subtext: "y", CTAText: "GO", CTAURL: "https://example.com"}
	tests := []struct {
		score, total int
		headline     string
		subtext      string
	}{
		{0, 3, HeadlineEffort, "You scored 0/3"},
		{3, 3, HeadlinePerfect, "You scored 3/3"},
		{1, 1, HeadlinePerfect, "You scored 1/1"},
	}
	for _, tc := range tests {
		got := QuizEndCard(tc.score, tc.total, base)
		if got.Headline != tc.headline || got.Subtext != tc.subtext {
			t.Errorf("QuizEndCard(%d, %d) = %q %q, want %q %q", tc.score, tc.total, got.Headline, got.Subtext, tc.headline, tc.subtext)
		}
		if got.CTAURL != base.CTAURL {
			t.Errorf("CTAURL %q, want %q", got.CTAURL, base.CTAURL)
		}
	}
}
