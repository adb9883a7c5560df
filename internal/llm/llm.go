// Package llm is the text and JSON generation capability used by page
// extraction, image classification and brand color extraction.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyResponse is returned when the model produced no text.
	ErrEmptyResponse = errors.New("llm: empty response")
	// ErrNoJSON is returned when no JSON value could be located in a response.
	ErrNoJSON = errors.New("llm: no JSON in response")
)

// Image is an inline image attached to a request.
type Image struct {
	MIMEType string
	Data     []byte
}

// Request is one generation call. A nil Schema asks for free text.
type Request struct {
	Prompt      string
	Schema      *Schema
	Images      []Image
	Temperature *float32
}

// Generator produces text for a request.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GenerateJSON runs req, validates the response against req.Schema and
// decodes it into out.
func GenerateJSON(ctx context.Context, g Generator, req Request, out any) error {
	if req.Schema == nil {
		return fmt.Errorf("llm: GenerateJSON requires a schema")
	}
	text, err := g.Generate(ctx, req)
	if err != nil {
		return err
	}
	return Decode(text, req.Schema, out)
}

// GenerateItems runs req, whose Schema must be an array, and returns the
// response entries for per-item decoding with DecodeItem.
func GenerateItems(ctx context.Context, g Generator, req Request) ([]json.RawMessage, error) {
	if req.Schema == nil || req.Schema.Kind != KindArray {
		return nil, fmt.Errorf("llm: GenerateItems requires an array schema")
	}
	text, err := g.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return DecodeItems(text)
}

// Config selects and configures a Generator.
type Config struct {
	Provider    string  `mapstructure:"provider"`
	Model       string  `mapstructure:"model"`
	APIKey      string  `mapstructure:"api_key"`
	APIKeyEnv   string  `mapstructure:"api_key_env"`
	Temperature float32 `mapstructure:"temperature"`
}

// New builds the Generator named by cfg.Provider.
func New(ctx context.Context, cfg Config) (Generator, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "gemini", "google":
		return NewGemini(ctx, cfg)
	default:
		return nil, fmt.Errorf("llm: unsupported provider %q", cfg.Provider)
	}
}

// Float32 returns a pointer to v for Request.Temperature.
func Float32(v float32) *float32 {
	return &v
}
