package contract

import (
	"context"
	"time"

	statex "github.com/worldwise-ai/worldwise/agent/state"
)

// ClassifyRequest carries the query plus the caller's conversation snapshot
// into the intent classifier.
type ClassifyRequest struct {
	Query    string
	Language string
	Context  statex.ConversationContext
	Now      time.Time
}

// Classifier turns a request into an execution plan. The production
// implementation substitutes a fallback plan on any failure and never returns
// an error; the dispatcher still maps a returned error to the same fallback
// so alternative implementations cannot break the pipeline.
type Classifier interface {
	Classify(ctx context.Context, req ClassifyRequest) (ExecutionPlan, error)
}

type CorrectionRequest struct {
	Text            string
	TargetLanguage  string
	NativeLanguage  string
	AudioConfidence float64
}

type Corrector interface {
	Correct(ctx context.Context, req CorrectionRequest) (CorrectionResult, error)
}

type TranslationRequest struct {
	Text           string
	SourceLanguage string
	TargetLanguage string
}

type Translator interface {
	Translate(ctx context.Context, req TranslationRequest) (TranslationResult, error)
}

type CultureRequest struct {
	Subject      string
	Intent       string
	Capabilities []CapabilityID
}

type CultureAgent interface {
	Insights(ctx context.Context, req CultureRequest) (CultureResult, error)
}

// SelectRequest names the subject and the capabilities the plan asked for.
type SelectRequest struct {
	Subject string
	Query   string
	Plan    ExecutionPlan
}

// Selection is either a clarification request or one payload per requested
// capability. A failed capability is represented by its documented fallback
// payload, never by an omitted key.
type Selection struct {
	Clarification *Clarification
	Payloads      map[CapabilityID]CapabilityPayload
}

func (s Selection) HasData() bool {
	for _, p := range s.Payloads {
		if len(p.Records) > 0 {
			return true
		}
	}
	return false
}

// Record is one item returned by a content provider.
type Record map[string]any

// CapabilityPayload is the per-capability retrieval result.
type CapabilityPayload struct {
	Subject string   `json:"subject"`
	Records []Record `json:"records,omitempty"`
	Message string   `json:"message,omitempty"`
	Source  string   `json:"source"`
}

// FallbackPayload is the documented placeholder substituted when a provider
// fails or is unreachable.
func FallbackPayload(capability CapabilityID, subject string) CapabilityPayload {
	return CapabilityPayload{
		Subject: subject,
		Message: "not available",
		Source:  string(capability) + "_fallback",
	}
}

type Selector interface {
	Select(ctx context.Context, req SelectRequest) (Selection, error)
}

// Provider is the narrow contract for one external content source.
type Provider interface {
	Fetch(ctx context.Context, subject string, limit int) ([]Record, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, subject string, limit int) ([]Record, error)

func (f ProviderFunc) Fetch(ctx context.Context, subject string, limit int) ([]Record, error) {
	return f(ctx, subject, limit)
}

type SynthesisRequest struct {
	Query      string
	Language   string
	Plan       ExecutionPlan
	Selection  Selection
	Culture    *CultureResult
	Correction *CorrectionResult
}

// Synthesizer always produces the user-visible text, grounded in retrieval
// payloads when at least one non-empty payload exists and falling back to
// general guidance otherwise.
type Synthesizer interface {
	Synthesize(ctx context.Context, req SynthesisRequest) (SynthesisResult, error)
}

type EvaluationRequest struct {
	Query    string
	Subject  string
	Language string
	Plan     ExecutionPlan
	Profile  Profile
}

type Evaluator interface {
	Evaluate(ctx context.Context, req EvaluationRequest) (EvaluationResult, error)
}

type PersonalizationRequest struct {
	UserID    string
	Subject   string
	Intent    string
	Language  string
	Timestamp time.Time
}

type Personalizer interface {
	Personalize(ctx context.Context, req PersonalizationRequest) (Profile, error)
}

// Registry exposes one constructor-wired instance per agent.
type Registry interface {
	Classifier() Classifier
	Corrector() Corrector
	Translator() Translator
	Culture() CultureAgent
	Selector() Selector
	Synthesizer() Synthesizer
	Evaluator() Evaluator
	Personalizer() Personalizer
}

// Telemetry is the one-way interaction sink. Implementations swallow their
// own failures; the pipeline never inspects a result.
type Telemetry interface {
	Record(ctx context.Context, rec InteractionRecord)
}

// ProfileStore is the optional persistence collaborator used by the
// personalization agent only.
type ProfileStore interface {
	Save(ctx context.Context, namespace, userID string, p Profile) error
	Load(ctx context.Context, namespace, userID string) (Profile, bool, error)
}
