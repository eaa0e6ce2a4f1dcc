package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Config bounds the engine's work and sizes its cache.
type Config struct {
	CacheSize        int     `koanf:"cache_size" validate:"min=1"`
	UnfilteredPrefix int     `koanf:"unfiltered_prefix" validate:"min=1"`
	CandidateCap     int     `koanf:"candidate_cap" validate:"min=1"`
	BackfillBelow    int     `koanf:"backfill_below" validate:"min=0"`
	BackfillTarget   int     `koanf:"backfill_target" validate:"min=0"`
	ResultCap        int     `koanf:"result_cap" validate:"min=1"`
	FallbackBonus    float64 `koanf:"fallback_bonus"`
}

// DefaultConfig returns the production limits.
func DefaultConfig() Config {
	return Config{
		CacheSize:        DefaultCacheSize,
		UnfilteredPrefix: 100,
		CandidateCap:     150,
		BackfillBelow:    30,
		BackfillTarget:   50,
		ResultCap:        50,
		FallbackBonus:    50,
	}
}

// Validate checks that the limits are consistent.
func (c Config) Validate() error {
	if c.CacheSize <= 0 {
		return errors.New("cache size must be positive")
	}
	if c.UnfilteredPrefix <= 0 || c.CandidateCap <= 0 || c.ResultCap <= 0 {
		return errors.New("prefix, candidate cap and result cap must be positive")
	}
	if c.UnfilteredPrefix > c.CandidateCap {
		return fmt.Errorf("unfiltered prefix %d exceeds candidate cap %d", c.UnfilteredPrefix, c.CandidateCap)
	}
	if c.BackfillTarget > c.CandidateCap {
		return fmt.Errorf("backfill target %d exceeds candidate cap %d", c.BackfillTarget, c.CandidateCap)
	}
	return nil
}

func (c Config) limits() Limits {
	return Limits{
		UnfilteredPrefix: c.UnfilteredPrefix,
		CandidateCap:     c.CandidateCap,
		BackfillBelow:    c.BackfillBelow,
		BackfillTarget:   c.BackfillTarget,
	}
}

// Source tells where a result came from.
type Source string

const (
	SourceCache    Source = "cache"
	SourceComputed Source = "computed"
	SourceFallback Source = "fallback"
)

// Result is a ranked list plus how it was produced.
type Result struct {
	Dishes     []RankedDish
	Source     Source
	Candidates int
	Evicted    bool
}

// Engine filters, scores and ranks catalog dishes for a user.
//
// Engine is not safe for concurrent use: its cache is unsynchronized, so callers
// sharing an instance must serialize calls.
type Engine struct {
	config   Config
	logger   zerolog.Logger
	catalog  Catalog
	provider ContextProvider
	cache    *Cache
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(catalog Catalog, provider ContextProvider, cfg Config, logger zerolog.Logger) (*Engine, error) {
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Engine{
		config:   cfg,
		logger:   logger.With().Str("component", "recommend").Logger(),
		catalog:  catalog,
		provider: provider,
		cache:    NewCache(cfg.CacheSize),
	}, nil
}

// Recommend returns the ranked dishes for a user and the active filters.
func (e *Engine) Recommend(ctx context.Context, userID string, filters []string) []RankedDish {
	return e.Run(ctx, userID, filters).Dishes
}

// Run is Recommend with details about how the result was produced.
func (e *Engine) Run(ctx context.Context, userID string, filters []string) Result {
	key := CacheKey(userID, filters)
	logger := e.logger.With().Str("user_id", userID).Str("cache_key", key).Logger()

	if cached, ok := e.cache.Get(key); ok {
		logger.Debug().Int("dishes", len(cached)).Msg("cache hit")
		return Result{Dishes: cached, Source: SourceCache}
	}

	fs := ParseFilters(filters)

	// A user with no declared data is still a valid context; only a failed lookup falls back.
	user, err := e.userContext(ctx, userID)
	if err != nil {
		ev := logger.Warn()
		if errors.Is(err, ErrUserNotFound) {
			ev = logger.Info()
		}
		ev.Err(err).Msg("user context unavailable, using unfiltered recommendations")
		return e.fallback(fs)
	}

	candidates := PreFilter(e.catalog.Dishes(), user, fs, e.config.limits())
	ranked := e.rank(candidates, user, fs)

	evicted := e.cache.Put(key, ranked)
	if evicted {
		logger.Debug().Msg("cache full, evicted one entry")
	}

	logger.Debug().
		Int("candidates", len(candidates)).
		Int("dishes", len(ranked)).
		Msg("computed recommendations")

	return Result{Dishes: ranked, Source: SourceComputed, Candidates: len(candidates), Evicted: evicted}
}

// RankContext ranks dishes for a caller-supplied context. It bypasses the provider
// and the cache.
func (e *Engine) RankContext(req FilterRequest) []RankedDish {
	fs := ParseFilters(req.Filters)
	candidates := PreFilter(e.catalog.Dishes(), req.User, fs, e.config.limits())
	return e.rank(candidates, req.User, fs)
}

// ClearCache drops every cached result. Call it after user preference data changes.
func (e *Engine) ClearCache() {
	e.cache.Clear()
	e.logger.Debug().Msg("cache cleared")
}

// CacheLen returns the number of cached results.
func (e *Engine) CacheLen() int { return e.cache.Len() }

func (e *Engine) userContext(ctx context.Context, userID string) (UserContext, error) {
	if e.provider == nil {
		return UserContext{}, errors.New("no user context provider")
	}
	return e.provider.UserContext(ctx, userID)
}

func (e *Engine) rank(candidates []Dish, user UserContext, fs FilterSet) []RankedDish {
	scored := make([]RankedDish, 0, len(candidates))
	for _, d := range candidates {
		scored = append(scored, RankedDish{Dish: d, Score: Score(d, user, fs)})
	}
	return Rank(scored, e.config.ResultCap)
}

// fallback ranks the catalog prefix by base nutritional score plus a flat bonus.
// No user exclusions apply, but allergen and strict diet filters of the request still
// do. The result is not cached.
func (e *Engine) fallback(fs FilterSet) Result {
	catalog := e.catalog.Dishes()
	n := e.config.UnfilteredPrefix
	if n > len(catalog) {
		n = len(catalog)
	}
	scored := make([]RankedDish, 0, n)
	for _, d := range catalog[:n] {
		if AvoidsAllergen(d, fs) || ViolatesDiet(d, fs) {
			continue
		}
		scored = append(scored, RankedDish{Dish: d, Score: d.NutritionalScore() + e.config.FallbackBonus})
	}
	return Result{
		Dishes:     Rank(scored, e.config.ResultCap),
		Source:     SourceFallback,
		Candidates: len(scored),
	}
}
