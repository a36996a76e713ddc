package orchestratornode

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/worldwise-ai/worldwise/agent/contract"
)

func Translate(ctx context.Context, in *GraphState, translator contractx.Translator) (*GraphState, error) {
	if !in.Plan.Includes(contractx.AgentTranslation) || in.Input.Text == "" {
		return in, nil
	}

	start := time.Now()
	result, err := translator.Translate(ctx, contractx.TranslationRequest{
		Text:           in.Input.Text,
		SourceLanguage: in.Input.NativeLanguage,
		TargetLanguage: in.Input.Language,
	})
	latency := time.Since(start)

	if err != nil {
		log.Warn().Err(err).Msg("dispatch: translation failed")
		in.Record(contractx.AgentTranslation, contractx.ErrorOutcome(contractx.AgentTranslation, err), latency)
		return in, nil
	}

	in.Translation = &result
	in.Record(contractx.AgentTranslation, contractx.AgentOutcome{
		AgentID:    contractx.AgentTranslation,
		Status:     contractx.OutcomeSuccess,
		Payload:    result,
		Confidence: result.Confidence,
	}, latency)
	return in, nil
}
