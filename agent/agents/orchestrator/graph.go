package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	nodex "github.com/worldwise-ai/worldwise/agent/nodes/orchestrator"
)

// compileDispatchGraph wires the fixed-topology dispatch graph. Two branches
// can short-circuit into clarification: right after planning and right after
// retrieval. Everything else flows through synthesis.
func (p *Pipeline) compileDispatchGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.ValidateRequest(in, p.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("load_context",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.LoadContext(in, p.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node load_context: %w", err)
	}

	if err := graph.AddLambdaNode("classify_intent",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ClassifyIntent(ctx, in, p.models.Classifier())
		}),
	); err != nil {
		return nil, fmt.Errorf("add node classify_intent: %w", err)
	}

	if err := graph.AddLambdaNode("clarify_from_plan",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			if p.telemetry != nil {
				nodex.FlushTelemetry(ctx, in, p.telemetry)
			}
			return nodex.BuildClarification(in, in.Plan.Clarification)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node clarify_from_plan: %w", err)
	}

	if err := graph.AddLambdaNode("correct_language",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.CorrectLanguage(ctx, in, p.models.Corrector())
		}),
	); err != nil {
		return nil, fmt.Errorf("add node correct_language: %w", err)
	}

	if err := graph.AddLambdaNode("retrieve_data",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.RetrieveData(ctx, in, p.models.Selector())
		}),
	); err != nil {
		return nil, fmt.Errorf("add node retrieve_data: %w", err)
	}

	if err := graph.AddLambdaNode("clarify_from_retrieval",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			if p.telemetry != nil {
				nodex.FlushTelemetry(ctx, in, p.telemetry)
			}
			return nodex.BuildClarification(in, in.Selection.Clarification)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node clarify_from_retrieval: %w", err)
	}

	if err := graph.AddLambdaNode("culture_context",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.CultureContext(ctx, in, p.models.Culture())
		}),
	); err != nil {
		return nil, fmt.Errorf("add node culture_context: %w", err)
	}

	if err := graph.AddLambdaNode("translate",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.Translate(ctx, in, p.models.Translator())
		}),
	); err != nil {
		return nil, fmt.Errorf("add node translate: %w", err)
	}

	if err := graph.AddLambdaNode("synthesize",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.Synthesize(ctx, in, p.models.Synthesizer())
		}),
	); err != nil {
		return nil, fmt.Errorf("add node synthesize: %w", err)
	}

	if err := graph.AddLambdaNode("record_outcomes",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.RecordOutcomes(ctx, in, p.models.Evaluator(), p.models.Personalizer(), p.telemetry)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node record_outcomes: %w", err)
	}

	if err := graph.AddLambdaNode("update_context",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.UpdateContext(in, p.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node update_context: %w", err)
	}

	if err := graph.AddLambdaNode("finalize",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.Finalize(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize: %w", err)
	}

	planBranch := compose.NewGraphBranch(
		func(ctx context.Context, in *nodex.GraphState) (string, error) {
			if in.Plan.NeedsClarification() {
				return "clarify_from_plan", nil
			}
			return "correct_language", nil
		},
		map[string]bool{
			"clarify_from_plan": true,
			"correct_language":  true,
		},
	)
	retrievalBranch := compose.NewGraphBranch(
		func(ctx context.Context, in *nodex.GraphState) (string, error) {
			if in.Selection.Clarification != nil {
				return "clarify_from_retrieval", nil
			}
			return "culture_context", nil
		},
		map[string]bool{
			"clarify_from_retrieval": true,
			"culture_context":        true,
		},
	)

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "load_context"},
		{"load_context", "classify_intent"},
		{"correct_language", "retrieve_data"},
		{"culture_context", "translate"},
		{"translate", "synthesize"},
		{"synthesize", "record_outcomes"},
		{"record_outcomes", "update_context"},
		{"update_context", "finalize"},
		{"finalize", compose.END},
		{"clarify_from_plan", compose.END},
		{"clarify_from_retrieval", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}
	if err := graph.AddBranch("classify_intent", planBranch); err != nil {
		return nil, fmt.Errorf("add plan branch: %w", err)
	}
	if err := graph.AddBranch("retrieve_data", retrievalBranch); err != nil {
		return nil, fmt.Errorf("add retrieval branch: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("orchestrator.dispatch"))
	if err != nil {
		return nil, fmt.Errorf("compile dispatch graph: %w", err)
	}
	return runner, nil
}
