// Package orchestratornode holds the per-request state and node functions of
// the dispatch graph. Nodes mutate the shared GraphState and pass it along;
// fault isolation happens here, one agent at a time.
package orchestratornode

import (
	"time"

	contractx "github.com/worldwise-ai/worldwise/agent/contract"
	statex "github.com/worldwise-ai/worldwise/agent/state"
)

type GraphInput struct {
	Input contractx.UserInput
}

type GraphOutput struct {
	Result contractx.AggregatedResult
}

type GraphState struct {
	Input contractx.UserInput
	Now   time.Time

	Snapshot statex.ConversationContext
	Plan     contractx.ExecutionPlan

	Activated []contractx.AgentID
	Outcomes  map[contractx.AgentID]contractx.AgentOutcome
	Latencies map[contractx.AgentID]time.Duration

	Correction  *contractx.CorrectionResult
	Selection   contractx.Selection
	Culture     *contractx.CultureResult
	Translation *contractx.TranslationResult
	Synthesis   contractx.SynthesisResult
}

// Record registers one agent invocation: activation order, outcome and
// latency. The classifier records an outcome but never joins the activation
// list; it is the planner, not a dispatched agent.
func (s *GraphState) Record(id contractx.AgentID, outcome contractx.AgentOutcome, latency time.Duration) {
	if s.Outcomes == nil {
		s.Outcomes = make(map[contractx.AgentID]contractx.AgentOutcome)
	}
	if s.Latencies == nil {
		s.Latencies = make(map[contractx.AgentID]time.Duration)
	}
	s.Outcomes[id] = outcome
	s.Latencies[id] = latency
	if id != contractx.AgentClassifier {
		s.Activated = append(s.Activated, id)
	}
}

func (s *GraphState) metadata() contractx.ResultMetadata {
	return contractx.ResultMetadata{
		AgentsActivated: s.Activated,
		Plan:            s.Plan,
		Outcomes:        s.Outcomes,
	}
}
