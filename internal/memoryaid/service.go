package memoryaid

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gtu-learn/backend/internal/models"
)

const systemPrompt = `You are a study coach who writes vivid mnemonics for exam preparation.
Given an exam question and its answer, produce two aids:
- "story": a short, concrete narrative (3-5 sentences) that encodes the key facts of the answer.
- "palace": a memory-palace walk placing each major point of the answer in a named location, in answer order.

Respond with a single JSON object: {"story": "...", "palace": "..."}. No other text.`

type Service struct {
	llm LLMClient
}

func NewService(llm LLMClient) *Service {
	return &Service{llm: llm}
}

// Generate builds memory aids for one question. The paper file itself is a
// static input and is never rewritten; the aids go back to the caller.
func (s *Service) Generate(ctx context.Context, q models.Question) (*models.MemoryAids, error) {
	userPrompt := fmt.Sprintf("Question (%d marks): %s\n\nAnswer: %s", q.Marks, q.Question, q.Answer)

	raw, err := s.llm.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("generate memory aids: %w", err)
	}

	aids, err := parseResponse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse memory aids: %w", err)
	}
	return aids, nil
}

// parseResponse extracts the JSON object from the model output, tolerating
// surrounding prose or a markdown code fence.
func parseResponse(raw string) (*models.MemoryAids, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var aids models.MemoryAids
	if err := json.Unmarshal([]byte(raw[start:end+1]), &aids); err != nil {
		return nil, err
	}
	if aids.Story == "" && aids.Palace == "" {
		return nil, fmt.Errorf("response contained no story or palace")
	}
	return &aids, nil
}
