package orchestratornode

import (
	contractx "github.com/worldwise-ai/worldwise/agent/contract"
)

// Finalize assembles the terminal success result. The aggregate confidence is
// the synthesizer's: it saw every upstream artifact that fed the reply.
func Finalize(in *GraphState) (GraphOutput, error) {
	meta := in.metadata()
	meta.Confidence = in.Synthesis.Confidence

	return GraphOutput{
		Result: contractx.AggregatedResult{
			Status:   contractx.StatusSuccess,
			Response: in.Synthesis.Response,
			Metadata: meta,
		},
	}, nil
}

// BuildClarification assembles the short-circuit result from either
// clarification source: the plan itself or the retrieval selector.
func BuildClarification(in *GraphState, clarification *contractx.Clarification) (GraphOutput, error) {
	if clarification == nil {
		clarification = &contractx.Clarification{
			Question: "Could you tell me more about what you're looking for?",
		}
	}
	options := clarification.Options
	if len(options) == 0 {
		options = contractx.DefaultClarificationOptions
	}

	meta := in.metadata()
	meta.Confidence = in.Plan.Confidence
	meta.Options = options

	return GraphOutput{
		Result: contractx.AggregatedResult{
			Status:   contractx.StatusClarification,
			Response: clarification.Question,
			Metadata: meta,
		},
	}, nil
}
