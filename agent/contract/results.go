package contract

// Typed outputs for the LLM-backed agents. Each mirrors the structured object
// the agent's model is instructed to emit; validation happens right after
// decoding so malformed replies surface as ErrSchemaViolation.

type GrammarFix struct {
	Original    string `json:"original"`
	Corrected   string `json:"corrected"`
	Explanation string `json:"explanation,omitempty"`
}

type PhraseFix struct {
	Original string `json:"original"`
	Improved string `json:"improved"`
	Why      string `json:"why,omitempty"`
}

type CorrectionResult struct {
	HasErrors          bool         `json:"has_errors"`
	GrammarCorrections []GrammarFix `json:"grammar_corrections,omitempty"`
	PronunciationTips  []string     `json:"pronunciation_tips,omitempty"`
	BetterPhrases      []PhraseFix  `json:"better_phrases,omitempty"`
	CulturalNotes      []string     `json:"cultural_notes,omitempty"`
	OverallQuality     string       `json:"overall_quality,omitempty"`
	Confidence         float64      `json:"confidence"`
	Explanation        string       `json:"explanation,omitempty"`
}

type AltTranslation struct {
	Translation string `json:"translation"`
	Context     string `json:"context,omitempty"`
	Formality   string `json:"formality,omitempty"`
}

type TranslationResult struct {
	DirectTranslation  string           `json:"direct_translation"`
	CulturalAdaptation string           `json:"cultural_adaptation,omitempty"`
	Alternatives       []AltTranslation `json:"alternatives,omitempty"`
	CulturalNotes      []string         `json:"cultural_notes,omitempty"`
	PronunciationGuide string           `json:"pronunciation_guide,omitempty"`
	Confidence         float64          `json:"confidence"`
	Rationale          string           `json:"rationale,omitempty"`
}

type CultureInsight struct {
	Category   string `json:"category"`
	Insight    string `json:"insight"`
	Importance string `json:"importance,omitempty"`
}

type CultureResult struct {
	Insights       []CultureInsight `json:"cultural_insights,omitempty"`
	Customs        []string         `json:"customs,omitempty"`
	Etiquette      []string         `json:"etiquette,omitempty"`
	Misconceptions []string         `json:"misconceptions,omitempty"`
	PracticalTips  []string         `json:"practical_tips,omitempty"`
	Confidence     float64          `json:"confidence"`
	Rationale      string           `json:"rationale,omitempty"`
}

type SynthesisResult struct {
	Response          string   `json:"response"`
	FollowUpQuestions []string `json:"follow_up_questions,omitempty"`
	Highlights        []string `json:"cultural_highlights,omitempty"`
	LearningTips      []string `json:"learning_tips,omitempty"`
	Tone              string   `json:"tone,omitempty"`
	Confidence        float64  `json:"confidence"`
	Rationale         string   `json:"rationale,omitempty"`
}

// FallbackSynthesis is the canned reply substituted when synthesis itself
// fails. The pipeline still answers, at fallback confidence.
func FallbackSynthesis() SynthesisResult {
	return SynthesisResult{
		Response: "I'd be happy to help you learn more about different cultures! " +
			"Could you tell me which country or culture you're curious about?",
		FollowUpQuestions: []string{"Which country would you like to explore?"},
		Tone:              "friendly",
		Confidence:        FallbackConfidence,
		Rationale:         "fallback response after synthesis failure",
	}
}

type EvaluationResult struct {
	LearningProgress map[string]string `json:"learning_progress,omitempty"`
	Strengths        []string          `json:"strengths,omitempty"`
	ImprovementAreas []string          `json:"improvement_areas,omitempty"`
	Recommendations  []string          `json:"recommendations,omitempty"`
	Score            float64           `json:"score"`
	Confidence       float64           `json:"confidence"`
	Rationale        string            `json:"rationale,omitempty"`
}
