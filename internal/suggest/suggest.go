// Package suggest wraps the LLM tag-suggestion call. The network call is
// glue; the real logic is parsing a JSON array out of free-form model output
// and filtering it down to tags that already exist.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stackit-team/stackit-server/internal/domain"

	"google.golang.org/genai"
)

// Suggester proposes candidate tag names for a question draft.
type Suggester interface {
	Suggest(ctx context.Context, title, description string) ([]string, error)
}

const prompt = `Suggest up to 5 short technology tags for this question.
Respond with a JSON array of strings only, no prose.

Title: %s

Description: %s`

// Gemini implements Suggester against the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("suggest: Gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("suggest: failed to create Gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Suggest(ctx context.Context, title, description string) ([]string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(fmt.Sprintf(prompt, title, description)), nil)
	if err != nil {
		return nil, fmt.Errorf("suggest: generation failed: %w", err)
	}
	return ParseCandidates(resp.Text())
}

// ParseCandidates extracts a JSON string array from free-form model output,
// tolerating markdown code fences and surrounding prose.
func ParseCandidates(raw string) ([]string, error) {
	s := strings.TrimSpace(raw)

	// Strip ``` or ```json fences.
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimPrefix(s, "json")
		if end := strings.LastIndex(s, "```"); end >= 0 {
			s = s[:end]
		}
		s = strings.TrimSpace(s)
	}

	// Fall back to the first bracketed slice if prose surrounds the array.
	if !strings.HasPrefix(s, "[") {
		start := strings.Index(s, "[")
		end := strings.LastIndex(s, "]")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("suggest: no JSON array in model output")
		}
		s = s[start : end+1]
	}

	var candidates []string
	if err := json.Unmarshal([]byte(s), &candidates); err != nil {
		return nil, fmt.Errorf("suggest: failed to parse candidates: %w", err)
	}

	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out, nil
}

// FilterExisting keeps only candidates whose name matches an existing tag,
// case-insensitively, and returns the tag's canonical casing. Duplicates
// collapse to one entry.
func FilterExisting(candidates []string, existing []*domain.TagCount) []string {
	byLower := make(map[string]string, len(existing))
	for _, t := range existing {
		byLower[strings.ToLower(t.Name)] = t.Name
	}

	out := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		canonical, ok := byLower[strings.ToLower(strings.TrimSpace(c))]
		if ok && !seen[canonical] {
			seen[canonical] = true
			out = append(out, canonical)
		}
	}
	return out
}
