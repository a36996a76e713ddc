// Package agents wires the concrete agent implementations behind the
// dispatch catalog. Each LLM-backed agent gets its own chat model so
// per-agent overrides apply independently.
package agents

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"

	classifierx "github.com/worldwise-ai/worldwise/agent/agents/classifier"
	correctorx "github.com/worldwise-ai/worldwise/agent/agents/corrector"
	culturex "github.com/worldwise-ai/worldwise/agent/agents/culture"
	evaluatorx "github.com/worldwise-ai/worldwise/agent/agents/evaluator"
	personalizationx "github.com/worldwise-ai/worldwise/agent/agents/personalization"
	retrievalx "github.com/worldwise-ai/worldwise/agent/agents/retrieval"
	synthesizerx "github.com/worldwise-ai/worldwise/agent/agents/synthesizer"
	translatorx "github.com/worldwise-ai/worldwise/agent/agents/translator"
	contractx "github.com/worldwise-ai/worldwise/agent/contract"
	llmx "github.com/worldwise-ai/worldwise/agent/llm"
	profilex "github.com/worldwise-ai/worldwise/agent/profile"
	promptx "github.com/worldwise-ai/worldwise/agent/prompt"
)

type llmModel = einomodel.ToolCallingChatModel

// Deps carries the non-LLM collaborators the registry cannot build itself.
type Deps struct {
	// Providers maps capabilities to content sources. Missing entries are
	// legal; the selector substitutes fallback payloads for them.
	Providers map[contractx.CapabilityID]contractx.Provider

	// ProfileStore defaults to the in-memory store when nil.
	ProfileStore contractx.ProfileStore

	SelectorOptions []retrievalx.Option
}

// Registry is the constructor-wired agent catalog consumed by the dispatcher.
type Registry struct {
	classifier   *classifierx.Classifier
	corrector    *correctorx.Corrector
	translator   *translatorx.Translator
	culture      *culturex.Agent
	selector     *retrievalx.Selector
	synthesizer  *synthesizerx.Synthesizer
	evaluator    *evaluatorx.Evaluator
	personalizer *personalizationx.Personalizer
}

var _ contractx.Registry = (*Registry)(nil)

func NewRegistry(ctx context.Context, cfg llmx.Config, deps Deps) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	prompts := promptx.LoadPromptSet()

	buildModel := func(agentID contractx.AgentID) (llmModel, error) {
		modelCfg := cfg.OpenRouterFor(agentID)
		m, err := modelCfg.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("build %s model: %w", agentID, err)
		}
		return m, nil
	}

	r := &Registry{}

	model, err := buildModel(contractx.AgentClassifier)
	if err != nil {
		return nil, err
	}
	if r.classifier, err = classifierx.New(ctx, model, prompts.Classifier); err != nil {
		return nil, err
	}

	if model, err = buildModel(contractx.AgentLanguageCorrection); err != nil {
		return nil, err
	}
	if r.corrector, err = correctorx.New(ctx, model, prompts.Corrector); err != nil {
		return nil, err
	}

	if model, err = buildModel(contractx.AgentTranslation); err != nil {
		return nil, err
	}
	if r.translator, err = translatorx.New(ctx, model, prompts.Translator); err != nil {
		return nil, err
	}

	if model, err = buildModel(contractx.AgentCulturalContext); err != nil {
		return nil, err
	}
	if r.culture, err = culturex.New(ctx, model, prompts.Culture); err != nil {
		return nil, err
	}

	if model, err = buildModel(contractx.AgentConversation); err != nil {
		return nil, err
	}
	if r.synthesizer, err = synthesizerx.New(ctx, model, prompts.Synthesizer); err != nil {
		return nil, err
	}

	if model, err = buildModel(contractx.AgentEvaluation); err != nil {
		return nil, err
	}
	if r.evaluator, err = evaluatorx.New(ctx, model, prompts.Evaluator); err != nil {
		return nil, err
	}

	r.selector = retrievalx.NewSelector(deps.Providers, deps.SelectorOptions...)

	store := deps.ProfileStore
	if store == nil {
		store = profilex.NewMemoryStore()
	}
	if r.personalizer, err = personalizationx.New(store); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Registry) Classifier() contractx.Classifier     { return r.classifier }
func (r *Registry) Corrector() contractx.Corrector       { return r.corrector }
func (r *Registry) Translator() contractx.Translator     { return r.translator }
func (r *Registry) Culture() contractx.CultureAgent      { return r.culture }
func (r *Registry) Selector() contractx.Selector         { return r.selector }
func (r *Registry) Synthesizer() contractx.Synthesizer   { return r.synthesizer }
func (r *Registry) Evaluator() contractx.Evaluator       { return r.evaluator }
func (r *Registry) Personalizer() contractx.Personalizer { return r.personalizer }

// Metrics returns the counters the registry's agents expose.
func (r *Registry) Metrics() Metrics {
	return Metrics{ClassifierFallbacks: r.classifier.FallbackCount()}
}

type Metrics struct {
	ClassifierFallbacks int64 `json:"classifier_fallbacks"`
}
