package quizdraft

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubGen struct {
	text   string
	err    error
	prompt string
}

func (s *stubGen) Generate(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.text, s.err
}

const goodDraft = `{"questions": [
  {"question": "Capital of France?", "options": ["Paris", "Rome", "Oslo", "Bern"], "correctIndex": 0},
  {"question": "2 + 2?", "options": ["3", "4", "5", "22"], "correctIndex": 1}
]}`

func TestDraft(t *testing.T) {
	gen := &stubGen{text: goodDraft}
	qs, err := New(gen).Draft(context.Background(), "  trivia ", 2)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("questions %d, want 2", len(qs))
	}
	if qs[1].CorrectIndex != 1 || qs[1].Options[1] != "4" {
		t.Errorf("second question %+v", qs[1])
	}
	if !strings.Contains(gen.prompt, "Write 2 ") || !strings.Contains(gen.prompt, "about: trivia") {
		t.Errorf("prompt %q", gen.prompt)
	}
}

func TestDraftNeedsTopic(t *testing.T) {
	_, err := New(&stubGen{text: goodDraft}).Draft(context.Background(), " ", 3)
	if !errors.Is(err, ErrNoTopic) {
		t.Errorf("err %v, want ErrNoTopic", err)
	}
}

func TestDraftGeneratorError(t *testing.T) {
	boom := errors.New("quota")
	_, err := New(&stubGen{err: boom}).Draft(context.Background(), "cats", 3)
	if !errors.Is(err, boom) {
		t.Errorf("err %v, want %v", err, boom)
	}
}

func TestDraftClampsCount(t *testing.T) {
	gen := &stubGen{text: goodDraft}
	if _, err := New(gen).Draft(context.Background(), "cats", 99); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(gen.prompt, "Write 10 ") {
		t.Errorf("prompt %q should ask for 10", gen.prompt)
	}
}

func TestParseDraft(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  int
		err   error
	}{
		{"fenced", "```json\n" + goodDraft + "\n```", 5, 2, nil},
		{"limit", goodDraft, 1, 1, nil},
		{"empty", "  ", 3, 0, ErrEmptyDraft},
		{"three options", `{"questions":[{"question":"q","options":["a","b","c"],"correctIndex":0}]}`, 3, 0, ErrEmptyDraft},
		{"index out of range", `{"questions":[{"question":"q","options":["a","b","c","d"],"correctIndex":4}]}`, 3, 0, ErrEmptyDraft},
		{"missing index", `{"questions":[{"question":"q","options":["a","b","c","d"]}]}`, 3, 0, ErrEmptyDraft},
		{"blank option", `{"questions":[{"question":"q","options":["a","","c","d"],"correctIndex":0}]}`, 3, 0, ErrEmptyDraft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs, err := parseDraft(tt.text, tt.limit)
			if !errors.Is(err, tt.err) {
				t.Fatalf("err %v, want %v", err, tt.err)
			}
			if len(qs) != tt.want {
				t.Errorf("questions %d, want %d", len(qs), tt.want)
			}
		})
	}
}

func TestParseDraftBadJSON(t *testing.T) {
	if _, err := parseDraft("{not json", 3); err == nil {
		t.Error("expected parse error")
	}
}
