// Package translator implements the cultural translation agent.
package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"

	contractx "github.com/worldwise-ai/worldwise/agent/contract"
	llmx "github.com/worldwise-ai/worldwise/agent/llm"
)

type Translator struct {
	runner compose.Runnable[map[string]any, contractx.TranslationResult]
}

func New(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*Translator, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: translator", contractx.ErrPromptMissing)
	}
	runner, err := llmx.CompileStructuredGraph[contractx.TranslationResult](ctx, chatModel, systemPrompt, "cultural_translator")
	if err != nil {
		return nil, fmt.Errorf("compile translator graph: %w", err)
	}
	return &Translator{runner: runner}, nil
}

func (t *Translator) Translate(ctx context.Context, req contractx.TranslationRequest) (contractx.TranslationResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return contractx.TranslationResult{}, fmt.Errorf("%w: translation text is empty", contractx.ErrValidation)
	}

	raw, err := json.Marshal(map[string]any{
		"text":            req.Text,
		"source_language": req.SourceLanguage,
		"target_language": req.TargetLanguage,
	})
	if err != nil {
		return contractx.TranslationResult{}, fmt.Errorf("marshal translation payload: %w", err)
	}

	out, err := t.runner.Invoke(ctx, map[string]any{"input": string(raw)})
	if err != nil {
		return contractx.TranslationResult{}, fmt.Errorf("%w: translator: %v", contractx.ErrModelInvoke, err)
	}
	if strings.TrimSpace(out.DirectTranslation) == "" {
		return contractx.TranslationResult{}, fmt.Errorf("%w: empty translation", contractx.ErrSchemaViolation)
	}
	return out, nil
}
