package llm

import (
	"context"
)

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any text-completion backend.
// The service is treated as unreliable: Generate may return malformed or
// verbose text, and any call may fail.
type LLMProvider interface {
	// Generate sends a single prompt to the model and returns the raw text
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// ListModels returns the names of models the backend can serve
	ListModels(ctx context.Context) ([]string, error)

	// Available reports whether the backend is reachable
	Available(ctx context.Context) bool
}
