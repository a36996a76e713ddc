package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/classifier.txt
	classifierRaw string

	//go:embed template/corrector.txt
	correctorRaw string

	//go:embed template/translator.txt
	translatorRaw string

	//go:embed template/culture.txt
	cultureRaw string

	//go:embed template/synthesizer.txt
	synthesizerRaw string

	//go:embed template/evaluator.txt
	evaluatorRaw string
)

// PromptSet holds the system prompt for each LLM-backed agent.
type PromptSet struct {
	Classifier  string
	Corrector   string
	Translator  string
	Culture     string
	Synthesizer string
	Evaluator   string
}

// LoadPromptSet returns the embedded prompts, trimmed. Safe to call
// concurrently.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Classifier:  strings.TrimSpace(classifierRaw),
		Corrector:   strings.TrimSpace(correctorRaw),
		Translator:  strings.TrimSpace(translatorRaw),
		Culture:     strings.TrimSpace(cultureRaw),
		Synthesizer: strings.TrimSpace(synthesizerRaw),
		Evaluator:   strings.TrimSpace(evaluatorRaw),
	}
}
