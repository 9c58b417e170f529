package translator

import (
	"context"
	"fmt"

	"ai-datachat-be/pkg/llm"
)

// Translator turns a natural-language question into a single restricted
// dataframe expression. The model is treated as hostile: its output is
// sanitized, validated and repaired before anything downstream sees it.
type Translator struct {
	provider llm.LLMProvider
}

func NewTranslator(provider llm.LLMProvider) *Translator {
	return &Translator{provider: provider}
}

// Translate produces a validated expression for the query, or an error
// when no usable code could be extracted. A response with no code-bearing
// line triggers exactly one retry with a stripped-down prompt.
func (t *Translator) Translate(ctx context.Context, query string, columns []string, datasetContext string) (string, error) {
	prompt := BuildPrompt(query, columns, datasetContext)

	raw, err := t.provider.Generate(ctx, prompt, llm.WithTemperature(0.1))
	if err != nil {
		return "", fmt.Errorf("generate expression: %w", err)
	}

	code := Sanitize(raw)
	if code == "" {
		raw, err = t.provider.Generate(ctx, BuildStrictPrompt(query, columns), llm.WithTemperature(0.0))
		if err != nil {
			return "", fmt.Errorf("generate expression (retry): %w", err)
		}
		code = Sanitize(raw)
	}
	if code == "" {
		return "", fmt.Errorf("model returned no usable expression")
	}

	code = Repair(code)
	if err := Validate(code); err != nil {
		return "", fmt.Errorf("generated expression rejected: %w", err)
	}
	return code, nil
}
