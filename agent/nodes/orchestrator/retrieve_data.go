package orchestratornode

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/worldwise-ai/worldwise/agent/contract"
)

// RetrieveData fans out to the data retrieval selector when the plan asks for
// capabilities. The selector may short-circuit into clarification; that is a
// legal outcome, not a failure.
func RetrieveData(ctx context.Context, in *GraphState, selector contractx.Selector) (*GraphState, error) {
	if !in.Plan.Includes(contractx.AgentDataRetrieval) || len(in.Plan.Capabilities) == 0 {
		return in, nil
	}

	start := time.Now()
	selection, err := selector.Select(ctx, contractx.SelectRequest{
		Subject: in.Plan.TargetSubject,
		Query:   in.Input.Query,
		Plan:    in.Plan,
	})
	latency := time.Since(start)

	if err != nil {
		log.Warn().Err(err).Msg("dispatch: data retrieval failed")
		in.Record(contractx.AgentDataRetrieval, contractx.ErrorOutcome(contractx.AgentDataRetrieval, err), latency)
		return in, nil
	}

	in.Selection = selection
	if selection.Clarification != nil {
		in.Record(contractx.AgentDataRetrieval, contractx.AgentOutcome{
			AgentID:    contractx.AgentDataRetrieval,
			Status:     contractx.OutcomeClarification,
			Payload:    selection.Clarification,
			Confidence: in.Plan.Confidence,
		}, latency)
		return in, nil
	}

	in.Record(contractx.AgentDataRetrieval, contractx.AgentOutcome{
		AgentID:    contractx.AgentDataRetrieval,
		Status:     contractx.OutcomeSuccess,
		Payload:    selection.Payloads,
		Confidence: in.Plan.Confidence,
	}, latency)
	return in, nil
}
