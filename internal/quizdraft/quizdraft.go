// Package quizdraft asks Gemini for quiz questions on a topic.
package quizdraft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/mbark223/playablelab-sub000/internal/playable"
)

const (
	DefaultModel = "gemini-2.5-flash"
	MaxQuestions = 10
)

var (
	ErrNoTopic    = errors.New("quiz topic required")
	ErrEmptyDraft = errors.New("draft contained no usable questions")
)

const promptTemplate = `Write %d multiple-choice quiz questions for a mobile game ad about: %s

Return JSON in exactly this shape:
{"questions": [{"question": "...", "options": ["...", "...", "...", "..."], "correctIndex": 0}]}

Rules:
- Exactly 4 short options per question, one of them correct.
- correctIndex is the 0-based position of the correct option.
- Keep every question under 80 characters and every option under 30.
- Answer with the JSON only, no markdown.`

// Generator returns the raw model text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type gemini struct {
	client *genai.Client
	model  string
}

func (g *gemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.7)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return resp.Text(), nil
}

type Drafter struct {
	gen Generator
}

// New wraps any generator.
func New(gen Generator) *Drafter {
	return &Drafter{gen: gen}
}

// NewGemini creates a drafter backed by the Gemini API.
func NewGemini(ctx context.Context, apiKey, model string) (*Drafter, error) {
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return New(&gemini{client: client, model: model}), nil
}

// Draft returns up to count questions about topic. Malformed questions in the
// model output are dropped.
func (d *Drafter) Draft(ctx context.Context, topic string, count int) ([]playable.QuizQuestion, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrNoTopic
	}
	if count < 1 {
		count = 3
	}
	if count > MaxQuestions {
		count = MaxQuestions
	}
	text, err := d.gen.Generate(ctx, fmt.Sprintf(promptTemplate, count, topic))
	if err != nil {
		return nil, err
	}
	qs, err := parseDraft(text, count)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"topic": topic, "questions": len(qs)}).Info("quiz drafted")
	return qs, nil
}

type draftDoc struct {
	Questions []struct {
		Question     string   `json:"question"`
		Options      []string `json:"options"`
		CorrectIndex *int     `json:"correctIndex"`
	} `json:"questions"`
}

func parseDraft(text string, limit int) ([]playable.QuizQuestion, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDraft
	}

	var doc draftDoc
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("parse draft JSON: %w", err)
	}

	out := make([]playable.QuizQuestion, 0, len(doc.Questions))
	for _, q := range doc.Questions {
		if len(out) == limit {
			break
		}
		question := strings.TrimSpace(q.Question)
		if question == "" || len(q.Options) != playable.QuizOptions || q.CorrectIndex == nil {
			continue
		}
		if *q.CorrectIndex < 0 || *q.CorrectIndex >= playable.QuizOptions {
			continue
		}
		opts := make([]string, len(q.Options))
		ok := true
		for i, o := range q.Options {
			opts[i] = strings.TrimSpace(o)
			if opts[i] == "" {
				ok = false
			}
		}
		if !ok {
			continue
		}
		out = append(out, playable.QuizQuestion{Question: question, Options: opts, CorrectIndex: *q.CorrectIndex})
	}
	if len(out) == 0 {
		return nil, ErrEmptyDraft
	}
	return out, nil
}
