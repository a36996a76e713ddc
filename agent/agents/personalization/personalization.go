// Package personalization maintains per-user learning profiles. It runs after
// synthesis and only ever touches metadata.
package personalization

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/worldwise-ai/worldwise/agent/contract"
)

const Namespace = "profiles"

type Personalizer struct {
	store contractx.ProfileStore
}

func New(store contractx.ProfileStore) (*Personalizer, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: profile store is required", contractx.ErrValidation)
	}
	return &Personalizer{store: store}, nil
}

// Personalize folds one completed interaction into the user's profile and
// persists the result.
func (p *Personalizer) Personalize(ctx context.Context, req contractx.PersonalizationRequest) (contractx.Profile, error) {
	profile, _, err := p.store.Load(ctx, Namespace, req.UserID)
	if err != nil {
		return contractx.Profile{}, fmt.Errorf("load profile: %w", err)
	}

	profile.InteractionCount++
	profile.LastInteraction = req.Timestamp

	if !contractx.SentinelSubject(req.Subject) {
		subject := strings.TrimSpace(req.Subject)
		if !containsFold(profile.CulturalFocus, subject) {
			profile.CulturalFocus = append(profile.CulturalFocus, subject)
		}
		if !containsFold(profile.Interests, subject) {
			profile.Interests = append(profile.Interests, subject)
		}
	}
	if lang := strings.TrimSpace(req.Language); lang != "" && !containsFold(profile.PreferredLanguages, lang) {
		profile.PreferredLanguages = append(profile.PreferredLanguages, lang)
	}

	if err := p.store.Save(ctx, Namespace, req.UserID, profile); err != nil {
		return contractx.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

// Profile reads the current profile without modifying it, for the evaluation
// payload.
func (p *Personalizer) Profile(ctx context.Context, userID string) contractx.Profile {
	profile, _, err := p.store.Load(ctx, Namespace, userID)
	if err != nil {
		return contractx.Profile{}
	}
	return profile
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}
