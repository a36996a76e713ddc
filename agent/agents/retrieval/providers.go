package retrieval

import (
	"context"

	contractx "github.com/worldwise-ai/worldwise/agent/contract"
	newsapix "github.com/worldwise-ai/worldwise/pkg/newsapi"
	spotifyx "github.com/worldwise-ai/worldwise/pkg/spotify"
	tripadvisorx "github.com/worldwise-ai/worldwise/pkg/tripadvisor"
)

// NewsProvider adapts the NewsAPI client to the news capability.
func NewsProvider(client *newsapix.Client) contractx.Provider {
	return contractx.ProviderFunc(func(ctx context.Context, subject string, limit int) ([]contractx.Record, error) {
		articles, err := client.CulturalNews(ctx, subject, limit)
		if err != nil {
			return nil, err
		}
		records := make([]contractx.Record, 0, len(articles))
		for _, a := range articles {
			records = append(records, contractx.Record{
				"title":        a.Title,
				"description":  a.Description,
				"url":          a.URL,
				"source":       a.Source.Name,
				"published_at": a.PublishedAt,
			})
		}
		return records, nil
	})
}

// MusicProvider adapts the Spotify client to the music capability.
func MusicProvider(client *spotifyx.Client) contractx.Provider {
	return contractx.ProviderFunc(func(ctx context.Context, subject string, limit int) ([]contractx.Record, error) {
		playlists, err := client.SearchPlaylists(ctx, subject, limit)
		if err != nil {
			return nil, err
		}
		records := make([]contractx.Record, 0, len(playlists))
		for _, p := range playlists {
			records = append(records, contractx.Record{
				"name":        p.Name,
				"description": p.Description,
				"url":         p.URL,
				"track_count": p.TrackCount,
				"owner":       p.Owner,
			})
		}
		return records, nil
	})
}

// LocationProvider adapts the TripAdvisor client to one location-backed
// capability (restaurants, landmarks, destinations) via its category filter.
func LocationProvider(client *tripadvisorx.Client, category string) contractx.Provider {
	return contractx.ProviderFunc(func(ctx context.Context, subject string, limit int) ([]contractx.Record, error) {
		locations, err := client.SearchLocations(ctx, subject, category, limit)
		if err != nil {
			return nil, err
		}
		records := make([]contractx.Record, 0, len(locations))
		for _, l := range locations {
			records = append(records, contractx.Record{
				"location_id": l.LocationID,
				"name":        l.Name,
				"address":     l.Address,
			})
		}
		return records, nil
	})
}
