package orchestratornode

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/worldwise-ai/worldwise/agent/contract"
)

// Synthesize produces the user-visible reply. It always runs on the
// non-clarifying path; a failure substitutes the canned fallback reply so the
// caller still gets an answer.
func Synthesize(ctx context.Context, in *GraphState, synthesizer contractx.Synthesizer) (*GraphState, error) {
	start := time.Now()
	result, err := synthesizer.Synthesize(ctx, contractx.SynthesisRequest{
		Query:      in.Input.Query,
		Language:   in.Input.Language,
		Plan:       in.Plan,
		Selection:  in.Selection,
		Culture:    in.Culture,
		Correction: in.Correction,
	})
	latency := time.Since(start)

	if err != nil {
		log.Warn().Err(err).Msg("dispatch: synthesis failed, using fallback reply")
		in.Synthesis = contractx.FallbackSynthesis()
		in.Record(contractx.AgentConversation, contractx.ErrorOutcome(contractx.AgentConversation, err), latency)
		return in, nil
	}

	in.Synthesis = result
	in.Record(contractx.AgentConversation, contractx.AgentOutcome{
		AgentID:    contractx.AgentConversation,
		Status:     contractx.OutcomeSuccess,
		Payload:    result,
		Confidence: result.Confidence,
	}, latency)
	return in, nil
}
