package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	agentsx "github.com/worldwise-ai/worldwise/agent/agents"
	orchestratorx "github.com/worldwise-ai/worldwise/agent/agents/orchestrator"
	retrievalx "github.com/worldwise-ai/worldwise/agent/agents/retrieval"
	contractx "github.com/worldwise-ai/worldwise/agent/contract"
	llmx "github.com/worldwise-ai/worldwise/agent/llm"
	profilex "github.com/worldwise-ai/worldwise/agent/profile"
	statex "github.com/worldwise-ai/worldwise/agent/state"
	telemetryx "github.com/worldwise-ai/worldwise/agent/telemetry"
	configx "github.com/worldwise-ai/worldwise/pkg/config"
	_ "github.com/worldwise-ai/worldwise/pkg/logger/autoload"
	newsapix "github.com/worldwise-ai/worldwise/pkg/newsapi"
	qstashx "github.com/worldwise-ai/worldwise/pkg/qstash"
	spotifyx "github.com/worldwise-ai/worldwise/pkg/spotify"
	tripadvisorx "github.com/worldwise-ai/worldwise/pkg/tripadvisor"
)

type AppConfig struct {
	UserID          string        `envconfig:"USER_ID" split_words:"true" default:"local"`
	TelemetryTopic  string        `envconfig:"TELEMETRY_TOPIC" split_words:"true"`
	MetricsInterval time.Duration `envconfig:"METRICS_INTERVAL" split_words:"true" default:"1m"`
}

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[AppConfig]("WORLDWISE")
	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")

	registry, err := agentsx.NewRegistry(ctx, *llmCfg, agentsx.Deps{
		Providers:    buildProviders(),
		ProfileStore: buildProfileStore(ctx),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build agent registry")
	}

	pipeline, err := orchestratorx.New(statex.NewContextStore(), registry, buildTelemetry(appCfg.TelemetryTopic))
	if err != nil {
		log.Fatal().Err(err).Msg("build pipeline")
	}

	go reportMetrics(ctx, registry, appCfg.MetricsInterval)

	runREPL(ctx, pipeline, appCfg.UserID)
}

// reportMetrics logs the registry counters on a fixed interval so the
// classifier fallback rate is visible without a metrics backend.
func reportMetrics(ctx context.Context, registry *agentsx.Registry, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m := registry.Metrics()
			log.Info().
				Int64("classifier_fallbacks", m.ClassifierFallbacks).
				Msg("pipeline metrics")
		}
	}
}

// buildProviders wires every content source whose credentials are present.
// Missing credentials disable the provider; the selector substitutes fallback
// payloads for uncovered capabilities.
func buildProviders() map[contractx.CapabilityID]contractx.Provider {
	providers := make(map[contractx.CapabilityID]contractx.Provider)

	if cfg, err := configx.New[newsapix.Config]("NEWSAPI"); err == nil {
		if client, cerr := newsapix.NewClient(*cfg); cerr == nil {
			providers[contractx.CapabilityNews] = retrievalx.NewsProvider(client)
		}
	} else {
		log.Info().Msg("news provider disabled: no NEWSAPI credentials")
	}

	if cfg, err := configx.New[spotifyx.Config]("SPOTIFY"); err == nil {
		if client, cerr := spotifyx.NewClient(*cfg); cerr == nil {
			providers[contractx.CapabilityMusic] = retrievalx.MusicProvider(client)
		}
	} else {
		log.Info().Msg("music provider disabled: no SPOTIFY credentials")
	}

	if cfg, err := configx.New[tripadvisorx.Config]("TRIPADVISOR"); err == nil {
		if client, cerr := tripadvisorx.NewClient(*cfg); cerr == nil {
			providers[contractx.CapabilityRestaurants] = retrievalx.LocationProvider(client, tripadvisorx.CategoryRestaurants)
			providers[contractx.CapabilityFood] = retrievalx.LocationProvider(client, tripadvisorx.CategoryRestaurants)
			providers[contractx.CapabilityLandmarks] = retrievalx.LocationProvider(client, tripadvisorx.CategoryAttractions)
			providers[contractx.CapabilityDestinations] = retrievalx.LocationProvider(client, tripadvisorx.CategoryGeos)
		}
	} else {
		log.Info().Msg("location providers disabled: no TRIPADVISOR credentials")
	}

	return providers
}

func buildProfileStore(ctx context.Context) contractx.ProfileStore {
	cfg, err := configx.New[profilex.Config]("PROFILE")
	if err != nil {
		log.Info().Msg("profile persistence disabled: no PROFILE_DSN, using in-memory store")
		return profilex.NewMemoryStore()
	}
	store, err := profilex.NewBunStore(*cfg)
	if err != nil {
		log.Warn().Err(err).Msg("profile store init failed, using in-memory store")
		return profilex.NewMemoryStore()
	}
	if err := store.EnsureSchema(ctx); err != nil {
		log.Warn().Err(err).Msg("profile schema init failed, using in-memory store")
		return profilex.NewMemoryStore()
	}
	return store
}

func buildTelemetry(topic string) contractx.Telemetry {
	cfg, err := configx.New[qstashx.Config]("QSTASH")
	if err != nil {
		log.Info().Msg("telemetry disabled: no QSTASH credentials")
		return telemetryx.NoopSink{}
	}
	client, err := qstashx.NewClient(*cfg)
	if err != nil {
		log.Warn().Err(err).Msg("telemetry client init failed")
		return telemetryx.NoopSink{}
	}
	return telemetryx.NewQStashSink(client, topic)
}

func runREPL(ctx context.Context, pipeline *orchestratorx.Pipeline, userID string) {
	fmt.Println("WorldWise cultural assistant. Type a question, or 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		result := pipeline.Process(ctx, contractx.UserInput{
			UserID: userID,
			Query:  line,
		})
		fmt.Println(result.Response)
		if result.Status == contractx.StatusClarification {
			for _, opt := range result.Metadata.Options {
				fmt.Println("  -", opt)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("read input")
	}
}
