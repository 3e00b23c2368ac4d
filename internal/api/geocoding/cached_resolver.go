package geocoding

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/FACorreiaa/go-travel-recommendations/internal/types"
)

const defaultCacheTTL = 24 * time.Hour

var _ Resolver = (*CachedResolver)(nil)

// CachedResolver remembers geocoding answers, including "not found", for a TTL.
// Concurrent lookups of the same place share one upstream call. Errors are not cached.
type CachedResolver struct {
	logger *slog.Logger
	next   Resolver
	cache  *cache.Cache
	group  singleflight.Group
}

type cachedResult struct {
	coords *types.Coordinates
}

func NewCachedResolver(next Resolver, ttl time.Duration, logger *slog.Logger) *CachedResolver {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedResolver{
		logger: logger,
		next:   next,
		cache:  cache.New(ttl, ttl/2),
	}
}

func generatePlaceCacheKey(place string) string {
	return "geocode:" + strings.ToLower(strings.TrimSpace(place))
}

func (c *CachedResolver) Resolve(ctx context.Context, place string) (*types.Coordinates, error) {
	key := generatePlaceCacheKey(place)
	if hit, found := c.cache.Get(key); found {
		c.logger.DebugContext(ctx, "Cache hit for geocode", slog.String("cache_key", key))
		return copyCoords(hit.(cachedResult).coords), nil
	}

	// The shared call outlives any one caller; the HTTP client timeout bounds it.
	flightCtx := context.WithoutCancel(ctx)
	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		coords, err := c.next.Resolve(flightCtx, place)
		if err != nil {
			return nil, err
		}
		res := cachedResult{coords: coords}
		c.cache.Set(key, res, cache.DefaultExpiration)
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.DebugContext(ctx, "Shared in-flight geocode", slog.String("cache_key", key))
	}
	return copyCoords(v.(cachedResult).coords), nil
}

func copyCoords(c *types.Coordinates) *types.Coordinates {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}
