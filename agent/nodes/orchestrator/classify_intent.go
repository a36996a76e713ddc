package orchestratornode

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/worldwise-ai/worldwise/agent/contract"
)

// ClassifyIntent produces the execution plan. A classifier error does not
// stop the request: the deterministic fallback plan takes over at fallback
// confidence.
func ClassifyIntent(ctx context.Context, in *GraphState, classifier contractx.Classifier) (*GraphState, error) {
	start := time.Now()
	plan, err := classifier.Classify(ctx, contractx.ClassifyRequest{
		Query:    in.Input.Query,
		Language: in.Input.Language,
		Context:  in.Snapshot,
		Now:      in.Now,
	})
	latency := time.Since(start)

	if err != nil {
		log.Warn().Err(err).Str("user_id", in.Input.UserID).Msg("dispatch: classifier failed, using fallback plan")
		plan = contractx.FallbackPlan(in.Snapshot.LastSubject)
		in.Plan = plan
		in.Record(contractx.AgentClassifier, contractx.ErrorOutcome(contractx.AgentClassifier, err), latency)
		return in, nil
	}

	in.Plan = plan
	in.Record(contractx.AgentClassifier, contractx.AgentOutcome{
		AgentID:    contractx.AgentClassifier,
		Status:     contractx.OutcomeSuccess,
		Payload:    plan,
		Confidence: plan.Confidence,
		Rationale:  plan.Rationale,
	}, latency)
	return in, nil
}
