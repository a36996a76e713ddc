// Package culture implements the cultural context agent.
package culture

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

type Agent struct {
	runner compose.Runnable[map[string]any, contractx.CultureResult]
}

func New(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*Agent, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: culture", contractx.ErrPromptMissing)
	}
	runner, err := llmx.CompileStructuredGraph[contractx.CultureResult](ctx, chatModel, systemPrompt, "cultural_context")
	if err != nil {
		return nil, fmt.Errorf("compile culture graph: %w", err)
	}
	return &Agent{runner: runner}, nil
}

func (a *Agent) Insights(ctx context.Context, req contractx.CultureRequest) (contractx.CultureResult, error) {
	if contractx.SentinelSubject(req.Subject) {
		return contractx.CultureResult{}, fmt.Errorf("%w: culture subject is empty", contractx.ErrValidation)
	}

	raw, err := json.Marshal(map[string]any{
		"subject":      req.Subject,
		"intent":       req.Intent,
		"capabilities": req.Capabilities,
	})
	if err != nil {
		return contractx.CultureResult{}, fmt.Errorf("marshal culture payload: %w", err)
	}

	out, err := a.runner.Invoke(ctx, map[string]any{"input": string(raw)})
	if err != nil {
		return contractx.CultureResult{}, fmt.Errorf("%w: culture: %v", contractx.ErrModelInvoke, err)
	}
	return out, nil
}
