package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

const (
	DefaultGeminiModel = "gemini-2.0-flash"
	DefaultAPIKeyEnv   = "GEMINI_API_KEY"
)

// Gemini is a Generator backed by the Gemini API.
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGemini creates a Gemini client. The API key comes from cfg.APIKey or,
// when empty, from the environment variable named by cfg.APIKeyEnv.
func NewGemini(ctx context.Context, cfg Config) (*Gemini, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		env := cfg.APIKeyEnv
		if env == "" {
			env = DefaultAPIKeyEnv
		}
		apiKey = os.Getenv(env)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: no API key (set llm.api_key or $%s)", DefaultAPIKeyEnv)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	return &Gemini{client: client, model: model, temperature: cfg.Temperature}, nil
}

// Generate implements Generator. Images are sent before the prompt text.
func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	parts := make([]*genai.Part, 0, len(req.Images)+1)
	for _, img := range req.Images {
		parts = append(parts, genai.NewPartFromBytes(img.Data, img.MIMEType))
	}
	parts = append(parts, genai.NewPartFromText(req.Prompt))

	temperature := g.temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	}
	if req.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = toGenaiSchema(req.Schema)
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, config)
	if err != nil {
		return "", fmt.Errorf("gemini: generate: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	log.Debug().
		Str("model", g.model).
		Int("images", len(req.Images)).
		Int("response_chars", len(text)).
		Dur("elapsed", time.Since(start)).
		Msg("gemini call finished")
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func toGenaiSchema(s *Schema) *genai.Schema {
	out := &genai.Schema{
		Description: s.Description,
	}
	if s.Nullable {
		out.Nullable = genai.Ptr(true)
	}

	switch s.Kind {
	case KindString:
		out.Type = genai.TypeString
		if len(s.Enum) > 0 {
			out.Enum = append([]string(nil), s.Enum...)
		}
	case KindBoolean:
		out.Type = genai.TypeBoolean
	case KindArray:
		out.Type = genai.TypeArray
		if s.Items != nil {
			out.Items = toGenaiSchema(s.Items)
		}
	case KindObject:
		out.Type = genai.TypeObject
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		out.PropertyOrdering = make([]string, 0, len(s.Properties))
		for _, p := range s.Properties {
			out.Properties[p.Name] = toGenaiSchema(p.Schema)
			out.PropertyOrdering = append(out.PropertyOrdering, p.Name)
		}
		out.Required = append([]string(nil), s.Required...)
	}
	return out
}
