package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var ErrInvalidInput = errors.New("invalid input")

type SearchReq struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	RadiusKM float64 `json:"radius_km"`
	Limit    int     `json:"limit"`
}

func (r *SearchReq) Validate() error {
	if r.Limit == 0 {
		r.Limit = 20
	}
	if r.Lat < -90 || r.Lat > 90 || r.Lon < -180 || r.Lon > 180 {
		return ErrInvalidInput
	}
	if r.RadiusKM <= 0 || r.RadiusKM > 50 {
		return ErrInvalidInput
	}
	if r.Limit < 1 || r.Limit > 100 {
		return ErrInvalidInput
	}
	return nil
}

// CacheKey is stable per rounded query inputs.
func (r SearchReq) CacheKey() string {
	return fmt.Sprintf("search:%.5f:%.5f:%.2f:%d", r.Lat, r.Lon, r.RadiusKM, r.Limit)
}

type Hit struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Verified   bool     `json:"verified"`
	RatingAvg  *float64 `json:"rating_avg"`
	Skills     *string  `json:"skills"`
	PriceBand  *string  `json:"price_band"`
	Lat        *float64 `json:"lat"`
	Lon        *float64 `json:"lon"`
	DistanceKM float64  `json:"distance_km"`
}

type SearchResult struct {
	Count int   `json:"count"`
	Hits  []Hit `json:"hits"`
}

// SearchSvc runs the PostGIS radius query with a Redis cache-aside in front.
// The cache is best-effort: search keeps working with Redis down.
type SearchSvc struct {
	db     *gorm.DB
	cache  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewSearchSvc(db *gorm.DB, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) *SearchSvc {
	return &SearchSvc{db: db, cache: cache, ttl: ttl, logger: logger}
}

const providersWithinSQL = `
SELECT
  p.id, p.name, p.verified, p.rating_avg, p.skills, p.price_band, p.lat, p.lon,
  ST_Distance(
    ST_SetSRID(ST_MakePoint(p.lon, p.lat), 4326)::geography,
    ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography
  ) / 1000.0 AS distance_km
FROM providers p
WHERE p.lat IS NOT NULL AND p.lon IS NOT NULL
  AND ST_DWithin(
    ST_SetSRID(ST_MakePoint(p.lon, p.lat), 4326)::geography,
    ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography,
    ?
  )
ORDER BY distance_km ASC
LIMIT ?`

func (s *SearchSvc) Search(ctx context.Context, req SearchReq) (*SearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := req.CacheKey()
	if cached, err := s.cache.Get(ctx, key).Bytes(); err == nil {
		var res SearchResult
		if json.Unmarshal(cached, &res) == nil {
			return &res, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn().Err(err).Msg("cache get failed")
	}

	var hits []Hit
	err := s.db.WithContext(ctx).Raw(providersWithinSQL,
		req.Lon, req.Lat,
		req.Lon, req.Lat,
		int(req.RadiusKM*1000),
		req.Limit,
	).Scan(&hits).Error
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}

	res := &SearchResult{Count: len(hits), Hits: hits}
	if b, err := json.Marshal(res); err == nil {
		if err := s.cache.Set(ctx, key, b, s.ttl).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("cache set failed")
		}
	}
	return res, nil
}

// CacheHealthy reports whether the cache is reachable; search is degraded
// but functional without it.
func (s *SearchSvc) CacheHealthy(ctx context.Context) bool {
	return s.cache.Ping(ctx).Err() == nil
}
