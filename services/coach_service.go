package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Coach produces short, non-medical suggestions. Implementations never fail;
// they fall back to FallbackSuggestions.
type Coach interface {
	Swaps(ctx context.Context, mealText string) []string
	Tips(ctx context.Context, actualMeals string) []string
}

// FallbackSuggestions returns the static advice used whenever generation is
// unavailable.
func FallbackSuggestions() []string {
	return []string{
		"Reduce rice/roti portion and add more salad/vegetables.",
		"Swap fried items for grilled, baked, or air-fried versions.",
		"Avoid sugary drinks; choose water or unsweetened tea.",
	}
}

const suggestionCount = 3

// CoachService talks to an OpenAI-compatible chat completions endpoint.
type CoachService struct {
	client  *http.Client
	apiKey  string
	baseURL string
	model   string
}

func NewCoachService(apiKey, baseURL, model string) *CoachService {
	return &CoachService{
		client:  &http.Client{Timeout: 20 * time.Second},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
	}
}

func (s *CoachService) Swaps(ctx context.Context, mealText string) []string {
	prompt := "Return exactly 3 safe, non-medical 'healthy swap' suggestions for the meal below. " +
		"No medication advice. No diagnosis. Keep it practical. " +
		"Respond ONLY as a JSON array of 3 strings.\n\n" +
		"Meal: " + mealText
	return s.suggest(ctx, prompt)
}

func (s *CoachService) Tips(ctx context.Context, actualMeals string) []string {
	prompt := "User ate the following foods instead of their plan. " +
		"Give exactly 3 safe tips focused on portion control, carb awareness, and healthier preparation. " +
		"No medication advice. No diagnosis. " +
		"Respond ONLY as a JSON array of 3 strings.\n\n" +
		"Foods: " + actualMeals
	return s.suggest(ctx, prompt)
}

func (s *CoachService) suggest(ctx context.Context, prompt string) []string {
	if s.apiKey == "" {
		return FallbackSuggestions()
	}
	out, err := s.complete(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("coach completion failed, using fallback")
		return FallbackSuggestions()
	}
	return out
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (s *CoachService) complete(ctx context.Context, prompt string) ([]string, error) {
	b, err := json.Marshal(chatRequest{
		Model:       s.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.3,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat api error (%d): %s", resp.StatusCode, preview(respBytes))
	}

	var cr chatResponse
	if err := json.Unmarshal(respBytes, &cr); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return nil, errors.New("chat response has no choices")
	}
	return parseSuggestions(cr.Choices[0].Message.Content)
}

// parseSuggestions accepts only a JSON array of strings and keeps the first three.
func parseSuggestions(content string) ([]string, error) {
	var items []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &items); err != nil {
		return nil, fmt.Errorf("content is not a JSON string array: %w", err)
	}
	if len(items) == 0 {
		return nil, errors.New("empty suggestion list")
	}
	if len(items) > suggestionCount {
		items = items[:suggestionCount]
	}
	return items, nil
}

func preview(b []byte) string {
	s := string(b)
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
