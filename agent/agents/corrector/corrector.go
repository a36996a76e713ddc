// Package corrector implements the language correction agent.
package corrector

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

type Corrector struct {
	runner compose.Runnable[map[string]any, contractx.CorrectionResult]
}

func New(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*Corrector, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: corrector", contractx.ErrPromptMissing)
	}
	runner, err := llmx.CompileStructuredGraph[contractx.CorrectionResult](ctx, chatModel, systemPrompt, "language_corrector")
	if err != nil {
		return nil, fmt.Errorf("compile corrector graph: %w", err)
	}
	return &Corrector{runner: runner}, nil
}

func (c *Corrector) Correct(ctx context.Context, req contractx.CorrectionRequest) (contractx.CorrectionResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return contractx.CorrectionResult{}, fmt.Errorf("%w: correction text is empty", contractx.ErrValidation)
	}

	raw, err := json.Marshal(map[string]any{
		"text":             req.Text,
		"target_language":  req.TargetLanguage,
		"native_language":  req.NativeLanguage,
		"audio_confidence": req.AudioConfidence,
	})
	if err != nil {
		return contractx.CorrectionResult{}, fmt.Errorf("marshal correction payload: %w", err)
	}

	out, err := c.runner.Invoke(ctx, map[string]any{"input": string(raw)})
	if err != nil {
		return contractx.CorrectionResult{}, fmt.Errorf("%w: corrector: %v", contractx.ErrModelInvoke, err)
	}
	return out, nil
}
