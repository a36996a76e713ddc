package orchestratornode

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/worldwise-ai/worldwise/agent/contract"
)

// CorrectLanguage runs the correction agent when the plan includes it. A
// failure is recorded as an error outcome and the pipeline moves on without a
// correction.
func CorrectLanguage(ctx context.Context, in *GraphState, corrector contractx.Corrector) (*GraphState, error) {
	if !in.Plan.Includes(contractx.AgentLanguageCorrection) {
		return in, nil
	}

	start := time.Now()
	result, err := corrector.Correct(ctx, contractx.CorrectionRequest{
		Text:            in.Input.Text,
		TargetLanguage:  in.Input.Language,
		NativeLanguage:  in.Input.NativeLanguage,
		AudioConfidence: in.Input.AudioConfidence,
	})
	latency := time.Since(start)

	if err != nil {
		log.Warn().Err(err).Msg("dispatch: language correction failed")
		in.Record(contractx.AgentLanguageCorrection, contractx.ErrorOutcome(contractx.AgentLanguageCorrection, err), latency)
		return in, nil
	}

	in.Correction = &result
	in.Record(contractx.AgentLanguageCorrection, contractx.AgentOutcome{
		AgentID:    contractx.AgentLanguageCorrection,
		Status:     contractx.OutcomeSuccess,
		Payload:    result,
		Confidence: result.Confidence,
	}, latency)
	return in, nil
}
