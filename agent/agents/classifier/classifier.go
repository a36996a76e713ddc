package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/worldwise-ai/worldwise/agent/contract"
	llmx "github.com/worldwise-ai/worldwise/agent/llm"
)

// llmOutput mirrors the structured object the classifier prompt requests.
type llmOutput struct {
	Intent             string   `json:"intent"`
	TargetSubject      string   `json:"target_subject"`
	DataCapabilities   []string `json:"data_capabilities"`
	AgentsToActivate   []string `json:"agents_to_activate"`
	RequiresVoice      bool     `json:"requires_voice"`
	Confidence         float64  `json:"confidence"`
	Reasoning          string   `json:"reasoning"`
	NeedsClarification bool     `json:"needs_clarification"`
	ClarifyingQuestion string   `json:"clarifying_question"`
	SuggestedOptions   []string `json:"suggested_options"`
}

// Classifier plans one request per call. It never returns an error: any
// model failure is absorbed into the deterministic fallback plan so the
// pipeline keeps answering during reasoning-service outages.
type Classifier struct {
	runner        compose.Runnable[map[string]any, llmOutput]
	fallbackCount atomic.Int64
}

func New(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*Classifier, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: classifier", contractx.ErrPromptMissing)
	}
	runner, err := llmx.CompileStructuredGraph[llmOutput](ctx, chatModel, systemPrompt, "intent_classifier")
	if err != nil {
		return nil, fmt.Errorf("compile classifier graph: %w", err)
	}
	return &Classifier{runner: runner}, nil
}

// FallbackCount reports how many requests were planned by the fallback path.
func (c *Classifier) FallbackCount() int64 {
	return c.fallbackCount.Load()
}

func (c *Classifier) Classify(ctx context.Context, req contractx.ClassifyRequest) (contractx.ExecutionPlan, error) {
	payload, err := buildPayload(req)
	if err != nil {
		log.Warn().Err(err).Msg("classifier: payload build failed, using fallback plan")
		return c.fallback(req), nil
	}

	out, err := c.invoke(ctx, payload)
	if err != nil {
		// One retry covers transient transport hiccups and the occasional
		// malformed reply before giving up on the model for this request.
		out, err = c.invoke(ctx, payload)
	}
	if err != nil {
		log.Warn().Err(err).Str("query", req.Query).Msg("classifier: model failed, using fallback plan")
		return c.fallback(req), nil
	}

	return normalize(out, req), nil
}

func (c *Classifier) invoke(ctx context.Context, payload string) (llmOutput, error) {
	out, err := c.runner.Invoke(ctx, map[string]any{"input": payload})
	if err != nil {
		return llmOutput{}, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}
	if strings.TrimSpace(out.Intent) == "" {
		return llmOutput{}, fmt.Errorf("%w: empty intent", contractx.ErrSchemaViolation)
	}
	return out, nil
}

func (c *Classifier) fallback(req contractx.ClassifyRequest) contractx.ExecutionPlan {
	c.fallbackCount.Add(1)
	return contractx.FallbackPlan(req.Context.LastSubject)
}

func buildPayload(req contractx.ClassifyRequest) (string, error) {
	type turnView struct {
		Subject string `json:"subject,omitempty"`
		Intent  string `json:"intent"`
	}
	recent := req.Context.RecentWindow(3)
	turns := make([]turnView, 0, len(recent))
	for _, t := range recent {
		turns = append(turns, turnView{Subject: t.Subject, Intent: t.Intent})
	}

	raw, err := json.Marshal(map[string]any{
		"query":    req.Query,
		"language": req.Language,
		"context": map[string]any{
			"last_subject": req.Context.LastSubject,
			"recent_turns": turns,
			"interests":    req.Context.Interests,
		},
		"now": req.Now.Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("marshal classifier payload: %w", err)
	}
	return string(raw), nil
}

// normalize converts the raw model reply into a validated execution plan:
// unknown tags are skipped, sentinel subjects resolve against the
// conversation context, vague queries force the clarification branch, and
// structural invariants (data_retrieval with capabilities, conversation
// always on) are restored if the model dropped them.
func normalize(out llmOutput, req contractx.ClassifyRequest) contractx.ExecutionPlan {
	plan := contractx.ExecutionPlan{
		Intent:        strings.TrimSpace(out.Intent),
		TargetSubject: strings.TrimSpace(out.TargetSubject),
		RequiresVoice: out.RequiresVoice,
		Confidence:    clamp01(out.Confidence),
		Rationale:     strings.TrimSpace(out.Reasoning),
	}

	for _, raw := range out.DataCapabilities {
		id := contractx.CapabilityID(strings.ToLower(strings.TrimSpace(raw)))
		if !contractx.KnownCapability(id) {
			log.Debug().Str("capability", raw).Msg("classifier: skipping unknown capability")
			continue
		}
		plan.Capabilities = append(plan.Capabilities, id)
	}
	for _, raw := range out.AgentsToActivate {
		id := contractx.AgentID(strings.ToLower(strings.TrimSpace(raw)))
		if !contractx.KnownAgent(id) {
			log.Debug().Str("agent", raw).Msg("classifier: skipping unknown agent")
			continue
		}
		if !plan.Includes(id) {
			plan.Agents = append(plan.Agents, id)
		}
	}

	if contractx.SentinelSubject(plan.TargetSubject) {
		plan.TargetSubject = req.Context.LastSubject
	}

	if out.NeedsClarification {
		question := strings.TrimSpace(out.ClarifyingQuestion)
		if question == "" {
			question = clarifyingQuestion(plan.TargetSubject)
		}
		options := out.SuggestedOptions
		if len(options) == 0 {
			options = contractx.DefaultClarificationOptions
		}
		plan.Clarification = &contractx.Clarification{Question: question, Options: options}
	}

	// Deterministic guard: a vague "tell me about X" query always clarifies,
	// whatever the model decided.
	if subject, vague := vagueSubject(req.Query); vague && plan.Clarification == nil {
		if contractx.SentinelSubject(plan.TargetSubject) {
			plan.TargetSubject = subject
		}
		plan.Clarification = &contractx.Clarification{
			Question: clarifyingQuestion(plan.TargetSubject),
			Options:  contractx.DefaultClarificationOptions,
		}
	}

	if plan.Clarification != nil {
		plan.Capabilities = nil
		plan.Agents = []contractx.AgentID{contractx.AgentConversation}
		return plan
	}

	if len(plan.Capabilities) > 0 && !plan.Includes(contractx.AgentDataRetrieval) {
		plan.Agents = append(plan.Agents, contractx.AgentDataRetrieval)
	}
	if !plan.Includes(contractx.AgentConversation) {
		plan.Agents = append(plan.Agents, contractx.AgentConversation)
	}
	return plan
}

func clarifyingQuestion(subject string) string {
	if contractx.SentinelSubject(subject) {
		return "What would you like to know more about?"
	}
	return fmt.Sprintf("What would you like to know about %s?", subject)
}

var vaguePrefixes = []string{
	"tell me about",
	"what do you know about",
	"what about",
	"information about",
	"info about",
}

var aspectKeywords = []string{
	"news", "food", "eat", "restaurant", "music", "song", "playlist",
	"movie", "film", "landmark", "attraction", "visit", "travel",
	"festival", "event", "government", "politic", "history", "custom",
	"etiquette", "language",
}

// vagueSubject reports whether the query names a subject with no concrete
// aspect, returning the bare subject when it does.
func vagueSubject(query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	q = strings.TrimRight(q, "?!. ")
	for _, prefix := range vaguePrefixes {
		if !strings.HasPrefix(q, prefix+" ") {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(q, prefix))
		if rest == "" {
			return "", false
		}
		for _, kw := range aspectKeywords {
			if strings.Contains(rest, kw) {
				return "", false
			}
		}
		if len(strings.Fields(rest)) > 3 {
			return "", false
		}
		return rest, true
	}
	return "", false
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
