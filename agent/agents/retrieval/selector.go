// Package retrieval implements the data retrieval selector: it fans out to
// the providers behind the plan's capabilities and aggregates their payloads.
package retrieval

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	contractx "github.com/worldwise-ai/worldwise/agent/contract"
)

const (
	defaultRecordLimit = 5
	defaultCallTimeout = 8 * time.Second
)

type Option func(*Selector)

func WithRecordLimit(n int) Option {
	return func(s *Selector) {
		if n > 0 {
			s.limit = n
		}
	}
}

func WithCallTimeout(d time.Duration) Option {
	return func(s *Selector) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// Selector fetches every requested capability concurrently. A failing or
// missing provider contributes its fallback payload instead of sinking the
// whole selection; an unresolvable subject short-circuits into clarification.
type Selector struct {
	providers map[contractx.CapabilityID]contractx.Provider
	limit     int
	timeout   time.Duration
}

func NewSelector(providers map[contractx.CapabilityID]contractx.Provider, opts ...Option) *Selector {
	s := &Selector{
		providers: providers,
		limit:     defaultRecordLimit,
		timeout:   defaultCallTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Selector) Select(ctx context.Context, req contractx.SelectRequest) (contractx.Selection, error) {
	capabilities := make([]contractx.CapabilityID, 0, len(req.Plan.Capabilities))
	for _, id := range req.Plan.Capabilities {
		if !contractx.KnownCapability(id) {
			log.Debug().Str("capability", string(id)).Msg("retrieval: skipping unknown capability")
			continue
		}
		capabilities = append(capabilities, id)
	}

	// News works without a subject (global headlines); everything else needs
	// one. A subjectless request for subject-bound capabilities asks back.
	if contractx.SentinelSubject(req.Subject) && !newsOnly(capabilities) {
		return contractx.Selection{
			Clarification: &contractx.Clarification{
				Question: "Which country or culture are you interested in?",
				Options:  contractx.DefaultClarificationOptions,
			},
		}, nil
	}

	payloads := make(map[contractx.CapabilityID]contractx.CapabilityPayload, len(capabilities))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range capabilities {
		g.Go(func() error {
			payload := s.fetch(gctx, id, req.Subject)
			mu.Lock()
			payloads[id] = payload
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return contractx.Selection{}, err
	}

	return contractx.Selection{Payloads: payloads}, nil
}

// fetch resolves one capability, substituting the fallback payload on any
// failure so the key is always present in the result.
func (s *Selector) fetch(ctx context.Context, id contractx.CapabilityID, subject string) contractx.CapabilityPayload {
	provider, ok := s.providers[id]
	if !ok {
		log.Debug().Str("capability", string(id)).Msg("retrieval: no provider configured")
		return contractx.FallbackPayload(id, subject)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	records, err := provider.Fetch(ctx, subject, s.limit)
	if err != nil {
		log.Warn().Err(fmt.Errorf("%w: %s: %v", contractx.ErrProviderUnavailable, id, err)).
			Str("capability", string(id)).
			Msg("retrieval: provider failed")
		return contractx.FallbackPayload(id, subject)
	}
	if len(records) == 0 {
		return contractx.FallbackPayload(id, subject)
	}

	return contractx.CapabilityPayload{
		Subject: subject,
		Records: records,
		Source:  string(id) + "_api",
	}
}

func newsOnly(capabilities []contractx.CapabilityID) bool {
	if len(capabilities) == 0 {
		return false
	}
	for _, id := range capabilities {
		if id != contractx.CapabilityNews {
			return false
		}
	}
	return true
}
