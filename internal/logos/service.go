package logos

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/errgroup"

	"github.com/ferrarinobrakes/oddsboard/internal/config"
	"github.com/ferrarinobrakes/oddsboard/internal/constants"
)

// PlaceholderURL is served whenever a badge cannot be resolved. Lookup
// failures degrade to it; they never block match rendering.
const PlaceholderURL = "/static/badge-placeholder.svg"

type badgeResponse struct {
	URL string `json:"url"`
}

// Service resolves team names to badge image URLs, with an optional redis
// cache in front of the badge API.
type Service struct {
	baseURL string
	client  *fasthttp.Client
	cache   *redis.Client // nil disables caching
	logger  zerolog.Logger
}

func New(cfg *config.Config, cache *redis.Client, logger zerolog.Logger) *Service {
	return &Service{
		baseURL: cfg.LogoAPIBaseURL,
		client: &fasthttp.Client{
			MaxConnsPerHost: 20,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
		},
		cache:  cache,
		logger: logger.With().Str("component", "logos").Logger(),
	}
}

// Lookup returns the badge URL for a team, or the placeholder on any
// failure.
func (s *Service) Lookup(ctx context.Context, team, sportKey string) string {
	key := fmt.Sprintf("logo:%s:%s", sportKey, team)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key).Result()
		if err == nil && cached != "" {
			return cached
		}
		if err != nil && err != redis.Nil {
			s.logger.Debug().Err(err).Str("team", team).Msg("logo cache read failed")
		}
	}

	resolved, err := s.fetch(ctx, team, sportKey)
	if err != nil {
		s.logger.Debug().Err(err).Str("team", team).Str("sport_key", sportKey).Msg("badge lookup failed, using placeholder")
		return PlaceholderURL
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, resolved, constants.LogoCacheTTL).Err(); err != nil {
			s.logger.Debug().Err(err).Str("team", team).Msg("logo cache write failed")
		}
	}
	return resolved
}

// Warm resolves a batch of teams ahead of rendering.
func (s *Service) Warm(ctx context.Context, sportKey string, teams []string) {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(constants.LogoWarmWorkers)

	for _, team := range teams {
		team := team
		g.Go(func() error {
			s.Lookup(gCtx, team, sportKey)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Debug().Err(err).Msg("logo warm-up interrupted")
	}
}

func (s *Service) fetch(ctx context.Context, team, sportKey string) (string, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	uri := fmt.Sprintf("%s/v1/badge?team=%s&sport=%s",
		s.baseURL, url.QueryEscape(team), url.QueryEscape(sportKey))
	req.SetRequestURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := s.client.DoDeadline(req, resp, deadline); err != nil {
			return "", err
		}
	} else {
		if err := s.client.Do(req, resp); err != nil {
			return "", err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return "", fmt.Errorf("badge API error: %d", resp.StatusCode())
	}

	var body badgeResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("decoding badge response: %w", err)
	}
	if body.URL == "" {
		return "", fmt.Errorf("badge API returned no url for %s", team)
	}
	return body.URL, nil
}
