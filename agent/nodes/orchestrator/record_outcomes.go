package orchestratornode

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/worldwise-ai/worldwise/agent/contract"
)

// RecordOutcomes runs the metadata-only sinks (evaluation, personalization)
// and flushes one telemetry record per invoked agent. Nothing here can change
// the user-visible response; every failure is swallowed into an error
// outcome.
func RecordOutcomes(
	ctx context.Context,
	in *GraphState,
	evaluator contractx.Evaluator,
	personalizer contractx.Personalizer,
	telemetry contractx.Telemetry,
) (*GraphState, error) {
	if in.Plan.Includes(contractx.AgentEvaluation) {
		start := time.Now()
		result, err := evaluator.Evaluate(ctx, contractx.EvaluationRequest{
			Query:    in.Input.Query,
			Subject:  in.Plan.TargetSubject,
			Language: in.Input.Language,
			Plan:     in.Plan,
			Profile:  contractx.Profile{Interests: in.Snapshot.Interests},
		})
		latency := time.Since(start)
		if err != nil {
			log.Warn().Err(err).Msg("dispatch: evaluation failed")
			in.Record(contractx.AgentEvaluation, contractx.ErrorOutcome(contractx.AgentEvaluation, err), latency)
		} else {
			in.Record(contractx.AgentEvaluation, contractx.AgentOutcome{
				AgentID:    contractx.AgentEvaluation,
				Status:     contractx.OutcomeSuccess,
				Payload:    result,
				Confidence: result.Confidence,
			}, latency)
		}
	}

	if in.Plan.Includes(contractx.AgentPersonalization) {
		start := time.Now()
		profile, err := personalizer.Personalize(ctx, contractx.PersonalizationRequest{
			UserID:    in.Input.UserID,
			Subject:   in.Plan.TargetSubject,
			Intent:    in.Plan.Intent,
			Language:  in.Input.Language,
			Timestamp: in.Now,
		})
		latency := time.Since(start)
		if err != nil {
			log.Warn().Err(err).Msg("dispatch: personalization failed")
			in.Record(contractx.AgentPersonalization, contractx.ErrorOutcome(contractx.AgentPersonalization, err), latency)
		} else {
			in.Record(contractx.AgentPersonalization, contractx.AgentOutcome{
				AgentID:    contractx.AgentPersonalization,
				Status:     contractx.OutcomeSuccess,
				Payload:    profile,
				Confidence: 1,
			}, latency)
		}
	}

	if telemetry != nil {
		FlushTelemetry(ctx, in, telemetry)
	}
	return in, nil
}

// FlushTelemetry emits one interaction record per recorded outcome, the
// classifier included.
func FlushTelemetry(ctx context.Context, in *GraphState, telemetry contractx.Telemetry) {
	emit := func(id contractx.AgentID) {
		outcome, ok := in.Outcomes[id]
		if !ok {
			return
		}
		telemetry.Record(ctx, contractx.InteractionRecord{
			AgentID:    id,
			UserID:     in.Input.UserID,
			SessionID:  in.Input.SessionID,
			Query:      in.Input.Query,
			Status:     outcome.Status,
			Confidence: outcome.Confidence,
			Latency:    in.Latencies[id],
			Timestamp:  in.Now,
		})
	}

	emit(contractx.AgentClassifier)
	for _, id := range contractx.DispatchOrder {
		emit(id)
	}
}
