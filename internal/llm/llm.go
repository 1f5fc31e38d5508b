// Package llm is a minimal client for hosted prompt-based language models.
package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"lingosphere/internal/qerrors"

	generativelanguage "google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Client generates a completion for a prompt.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Gemini calls the Generative Language API generateContent method.
type Gemini struct {
	models  *generativelanguage.ModelsService
	model   string
	timeout time.Duration
}

type GeminiOptions struct {
	// Endpoint overrides the API root, e.g. https://generativelanguage.googleapis.com/.
	Endpoint string
	// Model is the model name with or without the "models/" prefix.
	Model  string
	APIKey string
	// Timeout bounds every Generate call. Zero leaves the caller's context as the only bound.
	Timeout time.Duration
}

func NewGemini(ctx context.Context, opts GeminiOptions) (*Gemini, error) {
	if opts.APIKey == "" {
		return nil, errors.New("llm: missing API key")
	}
	if opts.Model == "" {
		return nil, errors.New("llm: missing model")
	}

	clientOpts := []option.ClientOption{option.WithAPIKey(opts.APIKey)}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}
	svc, err := generativelanguage.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, err
	}

	model := opts.Model
	if !strings.HasPrefix(model, "models/") {
		model = "models/" + model
	}
	return &Gemini{models: svc.Models, model: model, timeout: opts.Timeout}, nil
}

// Generate sends the prompt as a single user turn and returns the text of the first candidate.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.models.GenerateContent(g.model, &generativelanguage.GenerateContentRequest{
		Contents: []*generativelanguage.Content{{
			Role:  "user",
			Parts: []*generativelanguage.Part{{Text: prompt}},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return "", classify(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", qerrors.External(nil, "hosted model returned no candidates")
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil {
			sb.WriteString(p.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", qerrors.External(nil, "hosted model returned an empty answer")
	}
	return text, nil
}

func classify(err error) error {
	var apiErr *googleapi.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded) || isTimeout(err):
		return qerrors.Timeout(err, "hosted model did not answer in time")
	case errors.As(err, &apiErr):
		return qerrors.External(nil, "hosted model returned %d: %s", apiErr.Code, apiErr.Message)
	default:
		return qerrors.External(err, "error calling hosted model")
	}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
