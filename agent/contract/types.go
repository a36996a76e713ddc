package contract

import (
	"errors"
	"strings"
	"time"
)

// AgentID identifies a single-capability processing unit in the dispatch
// catalog. The set is closed: identifiers coming back from the classifier are
// validated against it and unknown tags are skipped.
type AgentID string

const (
	// AgentClassifier is the planning agent itself. It never appears in the
	// dispatch catalog but is used as an outcome key and in activation lists.
	AgentClassifier AgentID = "orchestrator"

	AgentLanguageCorrection AgentID = "language_correction"
	AgentDataRetrieval      AgentID = "data_retrieval"
	AgentCulturalContext    AgentID = "cultural_context"
	AgentTranslation        AgentID = "translation"
	AgentConversation       AgentID = "conversation"
	AgentEvaluation         AgentID = "evaluation"
	AgentPersonalization    AgentID = "personalization"
)

// DispatchOrder is the fixed topological order the dispatcher walks.
// Correction and retrieval run before translation and synthesis; synthesis
// runs before the metadata-only sinks. The execution plan controls inclusion
// only, never sequence.
var DispatchOrder = []AgentID{
	AgentLanguageCorrection,
	AgentDataRetrieval,
	AgentCulturalContext,
	AgentTranslation,
	AgentConversation,
	AgentEvaluation,
	AgentPersonalization,
}

func KnownAgent(id AgentID) bool {
	for _, known := range DispatchOrder {
		if id == known {
			return true
		}
	}
	return false
}

// CapabilityID names a category of external content fetchable by the data
// retrieval selector.
type CapabilityID string

const (
	CapabilityNews         CapabilityID = "news"
	CapabilityMusic        CapabilityID = "music"
	CapabilityLandmarks    CapabilityID = "landmarks"
	CapabilityRestaurants  CapabilityID = "restaurants"
	CapabilityDestinations CapabilityID = "destinations"
	CapabilityFood         CapabilityID = "food"
	CapabilityMovies       CapabilityID = "movies"
	CapabilityGovernment   CapabilityID = "government"
	CapabilityFestivals    CapabilityID = "festivals"
)

var knownCapabilities = map[CapabilityID]struct{}{
	CapabilityNews:         {},
	CapabilityMusic:        {},
	CapabilityLandmarks:    {},
	CapabilityRestaurants:  {},
	CapabilityDestinations: {},
	CapabilityFood:         {},
	CapabilityMovies:       {},
	CapabilityGovernment:   {},
	CapabilityFestivals:    {},
}

func KnownCapability(id CapabilityID) bool {
	_, ok := knownCapabilities[id]
	return ok
}

// SentinelSubject reports whether a subject string carries no information.
func SentinelSubject(subject string) bool {
	switch strings.ToLower(strings.TrimSpace(subject)) {
	case "", "unknown", "none", "null":
		return true
	}
	return false
}

// Clarification is the deliberate short-circuit branch: instead of answering,
// the pipeline asks a follow-up question.
type Clarification struct {
	Question string   `json:"question"`
	Options  []string `json:"suggested_options,omitempty"`
}

// ExecutionPlan is produced exactly once per request by the intent classifier
// and consumed read-only by the dispatcher.
type ExecutionPlan struct {
	Intent        string         `json:"intent"`
	TargetSubject string         `json:"target_subject,omitempty"`
	Capabilities  []CapabilityID `json:"data_capabilities,omitempty"`
	Agents        []AgentID      `json:"agents_to_activate,omitempty"`
	RequiresVoice bool           `json:"requires_voice"`
	Confidence    float64        `json:"confidence"`
	Rationale     string         `json:"rationale,omitempty"`
	Clarification *Clarification `json:"clarification,omitempty"`

	// Fallback marks a plan substituted after a classifier failure.
	Fallback bool `json:"fallback,omitempty"`
}

func (p ExecutionPlan) Includes(id AgentID) bool {
	for _, a := range p.Agents {
		if a == id {
			return true
		}
	}
	return false
}

func (p ExecutionPlan) NeedsClarification() bool {
	return p.Clarification != nil
}

// DefaultClarificationOptions are suggested when neither the classifier nor
// the selector supplied any.
var DefaultClarificationOptions = []string{
	"Current news",
	"Food recommendations",
	"Cultural events",
	"General overview",
}

// FallbackConfidence is the ceiling for any outcome or plan substituted after
// an external-call failure.
const FallbackConfidence = 0.3

// FallbackPlan is the deterministic plan substituted when classification
// fails. It keeps the pipeline answering something rather than surfacing the
// outage to the caller.
func FallbackPlan(subject string) ExecutionPlan {
	if SentinelSubject(subject) {
		subject = ""
	}
	return ExecutionPlan{
		Intent:        "cultural_info",
		TargetSubject: subject,
		Capabilities:  []CapabilityID{CapabilityGovernment, CapabilityMusic, CapabilityFood},
		Agents:        []AgentID{AgentDataRetrieval, AgentCulturalContext, AgentConversation},
		Confidence:    FallbackConfidence,
		Rationale:     "fallback plan after classification failure",
		Fallback:      true,
	}
}

// OutcomeStatus classifies a single agent invocation.
type OutcomeStatus string

const (
	OutcomeSuccess       OutcomeStatus = "success"
	OutcomeError         OutcomeStatus = "error"
	OutcomeClarification OutcomeStatus = "clarification_needed"
)

// AgentOutcome is the per-agent, per-request result record. Error outcomes
// never propagate past the dispatcher boundary and carry confidence <= 0.3.
type AgentOutcome struct {
	AgentID    AgentID       `json:"agent_id"`
	Status     OutcomeStatus `json:"status"`
	Payload    any           `json:"payload,omitempty"`
	Confidence float64       `json:"confidence"`
	Reason     string        `json:"reason,omitempty"`
	Rationale  string        `json:"rationale,omitempty"`
}

// ErrorOutcome builds the fallback outcome substituted for a failed agent.
// The failure is classified against the sentinel taxonomy, not by matching
// message strings.
func ErrorOutcome(id AgentID, err error) AgentOutcome {
	reason := "agent_failure"
	rationale := "agent failed"
	switch {
	case errors.Is(err, ErrSchemaViolation):
		reason = "malformed_response"
	case errors.Is(err, ErrModelInvoke):
		reason = "transport_failure"
	case errors.Is(err, ErrProviderUnavailable):
		reason = "capability_unavailable"
	case errors.Is(err, ErrValidation):
		reason = "validation_failure"
	}
	if err != nil {
		rationale = err.Error()
	}
	return AgentOutcome{
		AgentID:    id,
		Status:     OutcomeError,
		Confidence: FallbackConfidence,
		Reason:     reason,
		Rationale:  rationale,
	}
}

// ResultStatus is the terminal pipeline status.
type ResultStatus string

const (
	StatusSuccess       ResultStatus = "success"
	StatusClarification ResultStatus = "clarification_needed"
	StatusError         ResultStatus = "error"
)

type ResultMetadata struct {
	AgentsActivated []AgentID                `json:"agents_activated"`
	Plan            ExecutionPlan            `json:"execution_plan"`
	Outcomes        map[AgentID]AgentOutcome `json:"agent_responses,omitempty"`
	Confidence      float64                  `json:"confidence"`
	Options         []string                 `json:"suggested_options,omitempty"`
}

// AggregatedResult is the terminal artifact returned to the caller. The
// caller always receives one; the pipeline never panics or errors out.
type AggregatedResult struct {
	Status   ResultStatus   `json:"status"`
	Response string         `json:"response"`
	Metadata ResultMetadata `json:"metadata"`
}

// UserInput is the entry-point request shape.
type UserInput struct {
	UserID          string  `json:"user_id"`
	SessionID       string  `json:"session_id,omitempty"`
	Query           string  `json:"query"`
	Text            string  `json:"text,omitempty"`
	Language        string  `json:"language,omitempty"`
	NativeLanguage  string  `json:"native_language,omitempty"`
	AudioConfidence float64 `json:"audio_confidence,omitempty"`
}

// InteractionRecord is the one-way telemetry payload emitted after each agent
// invocation. The sink's return value is never consumed.
type InteractionRecord struct {
	AgentID    AgentID       `json:"agent_id"`
	UserID     string        `json:"user_id"`
	SessionID  string        `json:"session_id,omitempty"`
	Query      string        `json:"query,omitempty"`
	Status     OutcomeStatus `json:"status"`
	Confidence float64       `json:"confidence"`
	Latency    time.Duration `json:"latency_ns"`
	Timestamp  time.Time     `json:"timestamp"`
}

// Profile is the per-user personalization record kept by the profile store.
type Profile struct {
	Interests          []string  `json:"interests,omitempty"`
	LearningGoals      []string  `json:"learning_goals,omitempty"`
	PreferredLanguages []string  `json:"preferred_languages,omitempty"`
	CulturalFocus      []string  `json:"cultural_focus,omitempty"`
	InteractionCount   int       `json:"interaction_count"`
	LastInteraction    time.Time `json:"last_interaction,omitempty"`
}
