package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/worldwise-ai/worldwise/agent/contract"
	openrouterx "github.com/worldwise-ai/worldwise/pkg/openrouter"
)

// Config carries the shared reasoning-service settings plus optional
// per-agent model and temperature overrides. The classifier usually runs on a
// cheaper, colder model than the synthesizer.
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"1000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	ClassifierModel  string `envconfig:"CLASSIFIER_MODEL" split_words:"true"`
	CorrectorModel   string `envconfig:"CORRECTOR_MODEL" split_words:"true"`
	TranslatorModel  string `envconfig:"TRANSLATOR_MODEL" split_words:"true"`
	CultureModel     string `envconfig:"CULTURE_MODEL" split_words:"true"`
	SynthesizerModel string `envconfig:"SYNTHESIZER_MODEL" split_words:"true"`
	EvaluatorModel   string `envconfig:"EVALUATOR_MODEL" split_words:"true"`

	ClassifierTemperature  float32 `envconfig:"CLASSIFIER_TEMPERATURE" split_words:"true" default:"-1"`
	SynthesizerTemperature float32 `envconfig:"SYNTHESIZER_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: reasoning api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

// OpenRouterFor resolves the effective model configuration for one agent.
func (c Config) OpenRouterFor(agentID contractx.AgentID) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	override := func(name string) {
		if v := strings.TrimSpace(name); v != "" {
			modelName = v
		}
	}

	switch agentID {
	case contractx.AgentClassifier:
		override(c.ClassifierModel)
		if c.ClassifierTemperature >= 0 {
			temp = c.ClassifierTemperature
		}
	case contractx.AgentLanguageCorrection:
		override(c.CorrectorModel)
	case contractx.AgentTranslation:
		override(c.TranslatorModel)
	case contractx.AgentCulturalContext:
		override(c.CultureModel)
	case contractx.AgentConversation:
		override(c.SynthesizerModel)
		if c.SynthesizerTemperature >= 0 {
			temp = c.SynthesizerTemperature
		}
	case contractx.AgentEvaluation:
		override(c.EvaluatorModel)
	}

	maxToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
