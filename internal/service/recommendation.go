package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"

	"github.com/pageza/nutrisaur/backend/config"
	"github.com/pageza/nutrisaur/backend/internal/metrics"
	"github.com/pageza/nutrisaur/backend/internal/recommend"
	"github.com/pageza/nutrisaur/backend/internal/types"
)

const providerBreakerName = "user-context"

// breakerProvider guards a ContextProvider with a circuit breaker. While the breaker
// is open the engine gets an error at once and serves the unfiltered fallback.
type breakerProvider struct {
	next recommend.ContextProvider
	cb   *gobreaker.CircuitBreaker[recommend.UserContext]
}

func newBreakerProvider(next recommend.ContextProvider, cfg config.BreakerConfig, log zerolog.Logger) *breakerProvider {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	settings := gobreaker.Settings{
		Name:        providerBreakerName,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// a user without a profile and a cancelled request say nothing about the database
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, recommend.ErrUserNotFound) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	}
	metrics.CircuitBreakerState.WithLabelValues(providerBreakerName).Set(0)
	return &breakerProvider{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[recommend.UserContext](settings),
	}
}

func (p *breakerProvider) UserContext(ctx context.Context, userID string) (recommend.UserContext, error) {
	return p.cb.Execute(func() (recommend.UserContext, error) {
		return p.next.UserContext(ctx, userID)
	})
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// RecommendationService owns the engine. The engine and its cache are not safe for
// concurrent use, so every call goes through mu. Identical concurrent requests share
// one engine run.
type RecommendationService struct {
	mu     sync.Mutex
	engine *recommend.Engine
	group  singleflight.Group
	log    zerolog.Logger
}

// Ensure RecommendationService implements IRecommendationService
var _ IRecommendationService = (*RecommendationService)(nil)

//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRecommendationService(catalog recommend.Catalog, provider recommend.ContextProvider, engineCfg recommend.Config, breakerCfg config.BreakerConfig, log zerolog.Logger) (*RecommendationService, error) {
	if provider == nil {
		return nil, errors.New("user context provider is required")
	}
	engine, err := recommend.NewEngine(catalog, newBreakerProvider(provider, breakerCfg, log), engineCfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	return &RecommendationService{
		engine: engine,
		log:    log.With().Str("component", "recommendations").Logger(),
	}, nil
}

// Recommend returns the ranked dishes for a user and filter list.
func (s *RecommendationService) Recommend(ctx context.Context, userID uuid.UUID, filters []string) (*types.RecommendationResponse, error) {
	key := recommend.CacheKey(userID.String(), filters)
	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		return s.run(ctx, userID.String(), filters), nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.log.Debug().Str("cache_key", key).Msg("shared in-flight recommendation")
	}
	return v.(*types.RecommendationResponse), nil
}

func (s *RecommendationService) run(ctx context.Context, userID string, filters []string) *types.RecommendationResponse {
	start := time.Now()

	s.mu.Lock()
	res := s.engine.Run(ctx, userID, filters)
	entries := s.engine.CacheLen()
	s.mu.Unlock()

	metrics.ObserveRecommendation(string(res.Source), res.Candidates, res.Evicted, entries, time.Since(start))
	return toResponse(filters, res)
}

// ClearCache implements CacheClearer.
func (s *RecommendationService) ClearCache() {
	s.mu.Lock()
	s.engine.ClearCache()
	s.mu.Unlock()
	metrics.RecommendationCacheEntries.Set(0)
}

func toResponse(filters []string, res recommend.Result) *types.RecommendationResponse {
	dishes := make([]types.RecommendedDish, 0, len(res.Dishes))
	for _, r := range res.Dishes {
		dishes = append(dishes, types.RecommendedDish{
			Rank:        r.Rank,
			RankLabel:   r.RankLabel(),
			Score:       r.Score,
			ScoreLabel:  r.ScoreLabel(),
			ID:          r.Dish.ID,
			Name:        r.Dish.Name,
			Description: r.Dish.Description,
			Tags:        r.Dish.Tags.Codes(),
			Allergens:   r.Dish.Allergens.Names(),
		})
	}
	return &types.RecommendationResponse{
		Filters: recommend.NormalizeFilters(filters),
		Source:  string(res.Source),
		Count:   len(dishes),
		Dishes:  dishes,
	}
}
