// Package orchestrator is the dispatch pipeline entry point: one call in, one
// aggregated result out, whatever happens in between.
package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/worldwise-ai/worldwise/agent/contract"
	nodex "github.com/worldwise-ai/worldwise/agent/nodes/orchestrator"
	statex "github.com/worldwise-ai/worldwise/agent/state"
)

const errorResponse = "I apologize, but I encountered an error processing your request. Please try again."

// Pipeline routes each request through classification, dispatch and
// synthesis. Process never returns an error; every failure collapses into an
// error-status result.
type Pipeline struct {
	store     *statex.ContextStore
	models    contractx.Registry
	telemetry contractx.Telemetry

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	now func() time.Time
}

func New(store *statex.ContextStore, models contractx.Registry, telemetry contractx.Telemetry) (*Pipeline, error) {
	if store == nil {
		return nil, errors.New("context store is required")
	}
	if models == nil {
		return nil, errors.New("agent registry is required")
	}

	p := &Pipeline{
		store:     store,
		models:    models,
		telemetry: telemetry,
		now:       time.Now,
	}

	graphRunner, err := p.compileDispatchGraph(context.Background())
	if err != nil {
		return nil, err
	}
	p.graphRunner = graphRunner

	return p, nil
}

func (p *Pipeline) Process(ctx context.Context, input contractx.UserInput) (result contractx.AggregatedResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Any("panic", r).Str("user_id", input.UserID).Msg("pipeline: recovered from panic")
			result = errorResult()
		}
	}()

	out, err := p.graphRunner.Invoke(ctx, nodex.GraphInput{Input: input})
	if err != nil {
		log.Error().Err(err).Str("user_id", input.UserID).Msg("pipeline: request failed")
		return errorResult()
	}
	return out.Result
}

func errorResult() contractx.AggregatedResult {
	return contractx.AggregatedResult{
		Status:   contractx.StatusError,
		Response: errorResponse,
		Metadata: contractx.ResultMetadata{Confidence: 0},
	}
}
