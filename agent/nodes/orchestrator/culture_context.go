package orchestratornode

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/worldwise-ai/worldwise/agent/contract"
)

func CultureContext(ctx context.Context, in *GraphState, agent contractx.CultureAgent) (*GraphState, error) {
	if !in.Plan.Includes(contractx.AgentCulturalContext) || contractx.SentinelSubject(in.Plan.TargetSubject) {
		return in, nil
	}

	start := time.Now()
	result, err := agent.Insights(ctx, contractx.CultureRequest{
		Subject:      in.Plan.TargetSubject,
		Intent:       in.Plan.Intent,
		Capabilities: in.Plan.Capabilities,
	})
	latency := time.Since(start)

	if err != nil {
		log.Warn().Err(err).Msg("dispatch: cultural context failed")
		in.Record(contractx.AgentCulturalContext, contractx.ErrorOutcome(contractx.AgentCulturalContext, err), latency)
		return in, nil
	}

	in.Culture = &result
	in.Record(contractx.AgentCulturalContext, contractx.AgentOutcome{
		AgentID:    contractx.AgentCulturalContext,
		Status:     contractx.OutcomeSuccess,
		Payload:    result,
		Confidence: result.Confidence,
	}, latency)
	return in, nil
}
