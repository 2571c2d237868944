// Package gen produces AI story drafts from a one-line prompt using the
// Gemini API. The model is asked for a strict JSON object; the response
// is defensively unwrapped from a markdown code fence and its category
// coerced into the fixed enumeration before anything reaches a caller.
package gen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"google.golang.org/genai"

	"hikaya/api/internal/content"
)

var (
	// ErrNotConfigured is returned when no API credential was provided.
	ErrNotConfigured = errors.New("generation api key not configured")
	// ErrBadResponse is returned when the model reply cannot be parsed
	// into a draft.
	ErrBadResponse = errors.New("malformed generation response")
)

// Draft is a generated story proposal. Category is always one of
// content.Categories.
type Draft struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

type Service struct {
	client *genai.Client
	model  string
}

// New creates the generation service. An empty apiKey yields a disabled
// service whose Generate returns ErrNotConfigured; the rest of the
// system keeps working without AI drafts.
func New(ctx context.Context, apiKey, model string) (*Service, error) {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if apiKey == "" {
		return &Service{model: model}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Service{client: client, model: model}, nil
}

// Enabled reports whether a credential was configured.
func (s *Service) Enabled() bool {
	return s.client != nil
}

// Generate asks the model for a short Arabic story built on the prompt.
// There is no retry; a transport failure or unparsable reply surfaces as
// a single terminal error.
func (s *Service) Generate(ctx context.Context, prompt string) (Draft, error) {
	if s.client == nil {
		return Draft{}, ErrNotConfigured
	}

	fullPrompt := fmt.Sprintf(
		`Based on the following idea: %q, generate a short story in Arabic. `+
			`Provide the response as a single JSON object with three keys: "title" (in Arabic), `+
			`"content" (in Arabic), and "category". For the "category", choose the most relevant `+
			`one from this list: [%s]. Do not include any other text or markdown formatting.`,
		prompt, strings.Join(content.Categories, ", "))

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		genai.Text(fullPrompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			Temperature:      genai.Ptr[float32](0.7),
		})
	if err != nil {
		return Draft{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	return parseDraft(result.Text())
}

var fencePattern = regexp.MustCompile("(?s)^```(?:\\w+)?\\s*\\n?(.*?)\\n?\\s*```$")

// parseDraft decodes the model reply. Models sometimes wrap the JSON in
// a ```json fence despite instructions, so that wrapper is stripped
// before decoding.
func parseDraft(raw string) (Draft, error) {
	text := strings.TrimSpace(raw)
	if match := fencePattern.FindStringSubmatch(text); match != nil {
		text = strings.TrimSpace(match[1])
	}

	var draft Draft
	if err := json.Unmarshal([]byte(text), &draft); err != nil {
		return Draft{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if draft.Title == "" || draft.Content == "" || draft.Category == "" {
		return Draft{}, fmt.Errorf("%w: missing required field", ErrBadResponse)
	}

	draft.Category = content.NormalizeCategory(draft.Category)
	return draft, nil
}
