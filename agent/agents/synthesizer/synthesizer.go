// Package synthesizer implements the response synthesis agent, the one stage
// that always runs: every non-clarifying request exits through it.
package synthesizer

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

const (
	modeGrounded = "grounded"
	modeGeneral  = "general"
)

type Synthesizer struct {
	runner compose.Runnable[map[string]any, contractx.SynthesisResult]
}

func New(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*Synthesizer, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: synthesizer", contractx.ErrPromptMissing)
	}
	runner, err := llmx.CompileStructuredGraph[contractx.SynthesisResult](ctx, chatModel, systemPrompt, "response_synthesizer")
	if err != nil {
		return nil, fmt.Errorf("compile synthesizer graph: %w", err)
	}
	return &Synthesizer{runner: runner}, nil
}

func (s *Synthesizer) Synthesize(ctx context.Context, req contractx.SynthesisRequest) (contractx.SynthesisResult, error) {
	mode := modeGeneral
	if req.Selection.HasData() {
		mode = modeGrounded
	}

	payload := map[string]any{
		"query":    req.Query,
		"language": req.Language,
		"mode":     mode,
		"intent":   req.Plan.Intent,
		"subject":  req.Plan.TargetSubject,
	}
	if len(req.Selection.Payloads) > 0 {
		payload["data"] = req.Selection.Payloads
	}
	if req.Culture != nil {
		payload["cultural_context"] = req.Culture
	}
	if req.Correction != nil && req.Correction.HasErrors {
		payload["language_corrections"] = req.Correction
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return contractx.SynthesisResult{}, fmt.Errorf("marshal synthesis payload: %w", err)
	}

	out, err := s.runner.Invoke(ctx, map[string]any{"input": string(raw)})
	if err != nil {
		return contractx.SynthesisResult{}, fmt.Errorf("%w: synthesizer: %v", contractx.ErrModelInvoke, err)
	}
	if strings.TrimSpace(out.Response) == "" {
		return contractx.SynthesisResult{}, fmt.Errorf("%w: empty response", contractx.ErrSchemaViolation)
	}
	return out, nil
}
