// Package evaluator implements the metadata-only interaction evaluation
// agent. Its output feeds profiles and telemetry, never the user response.
package evaluator

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

type Evaluator struct {
	runner compose.Runnable[map[string]any, contractx.EvaluationResult]
}

func New(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*Evaluator, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: evaluator", contractx.ErrPromptMissing)
	}
	runner, err := llmx.CompileStructuredGraph[contractx.EvaluationResult](ctx, chatModel, systemPrompt, "interaction_evaluator")
	if err != nil {
		return nil, fmt.Errorf("compile evaluator graph: %w", err)
	}
	return &Evaluator{runner: runner}, nil
}

func (e *Evaluator) Evaluate(ctx context.Context, req contractx.EvaluationRequest) (contractx.EvaluationResult, error) {
	raw, err := json.Marshal(map[string]any{
		"query":    req.Query,
		"subject":  req.Subject,
		"language": req.Language,
		"intent":   req.Plan.Intent,
		"profile":  req.Profile,
	})
	if err != nil {
		return contractx.EvaluationResult{}, fmt.Errorf("marshal evaluation payload: %w", err)
	}

	out, err := e.runner.Invoke(ctx, map[string]any{"input": string(raw)})
	if err != nil {
		return contractx.EvaluationResult{}, fmt.Errorf("%w: evaluator: %v", contractx.ErrModelInvoke, err)
	}
	out.Score = progressScore(out.LearningProgress)
	return out, nil
}

// progressScore collapses the qualitative assessments into one numeric score.
func progressScore(progress map[string]string) float64 {
	if len(progress) == 0 {
		return 0
	}
	var sum float64
	for _, grade := range progress {
		switch strings.ToLower(strings.TrimSpace(grade)) {
		case "excellent":
			sum += 1.0
		case "good":
			sum += 0.75
		case "fair":
			sum += 0.5
		case "needs_work":
			sum += 0.25
		}
	}
	return sum / float64(len(progress))
}
