// Package telemetry implements the one-way interaction sink. Failures are
// logged and swallowed; the pipeline never observes them.
package telemetry

import (
	"context"

	"github.com/rs/zerolog/log"
	contractx "github.com/worldwise-ai/worldwise/agent/contract"
	qstashx "github.com/worldwise-ai/worldwise/pkg/qstash"
)

const defaultTopic = "worldwise-interactions"

type QStashSink struct {
	client *qstashx.Client
	topic  string
}

func NewQStashSink(client *qstashx.Client, topic string) *QStashSink {
	if topic == "" {
		topic = defaultTopic
	}
	return &QStashSink{client: client, topic: topic}
}

func (s *QStashSink) Record(ctx context.Context, rec contractx.InteractionRecord) {
	if s == nil || s.client == nil {
		return
	}
	if err := s.client.Publish(ctx, s.topic, rec); err != nil {
		log.Warn().Err(err).
			Str("agent", string(rec.AgentID)).
			Str("user_id", rec.UserID).
			Msg("telemetry publish failed")
	}
}

// NoopSink drops every record. Used when no telemetry transport is
// configured and in tests.
type NoopSink struct{}

func (NoopSink) Record(context.Context, contractx.InteractionRecord) {}
