package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const gridCacheKeyPrefix = "availability:grid:"

// GridCacheService caches computed availability grids in Redis.
//
// The read path is pure over a snapshot of persisted state, so a grid is safe
// to cache as long as every write that can change it (booking commit,
// cancellation, absence approval, shift change) invalidates the affected
// doctor+date keys. Cache failures are never fatal: the grid is recomputed.
type GridCacheService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewGridCacheService(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *GridCacheService {
	return &GridCacheService{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

func gridCacheKey(doctorID uuid.UUID, date string, serviceID uuid.UUID) string {
	return fmt.Sprintf("%s%s:%s:%s", gridCacheKeyPrefix, doctorID, date, serviceID)
}

// Get loads a cached grid into dest. Returns false on miss or cache failure.
func (s *GridCacheService) Get(ctx context.Context, doctorID uuid.UUID, date string, serviceID uuid.UUID, dest interface{}) bool {
	payload, err := s.redisClient.Get(ctx, gridCacheKey(doctorID, date, serviceID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warnf("Failed to read grid cache: %+v", err)
		}
		return false
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		s.log.Warnf("Failed to decode cached grid: %+v", err)
		return false
	}
	return true
}

// Store caches a computed grid with the configured TTL
func (s *GridCacheService) Store(ctx context.Context, doctorID uuid.UUID, date string, serviceID uuid.UUID, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		s.log.Warnf("Failed to encode grid for cache: %+v", err)
		return
	}
	if err := s.redisClient.Set(ctx, gridCacheKey(doctorID, date, serviceID), payload, s.ttl).Err(); err != nil {
		s.log.Warnf("Failed to store grid cache: %+v", err)
	}
}

// InvalidateDoctorDate drops every cached grid for the doctor on the date,
// across all services
func (s *GridCacheService) InvalidateDoctorDate(ctx context.Context, doctorID uuid.UUID, date string) {
	s.invalidatePattern(ctx, fmt.Sprintf("%s%s:%s:*", gridCacheKeyPrefix, doctorID, date))
}

// InvalidateDoctor drops every cached grid for the doctor, across all dates.
// Used when an absence approval or shift change affects an open-ended window.
func (s *GridCacheService) InvalidateDoctor(ctx context.Context, doctorID uuid.UUID) {
	s.invalidatePattern(ctx, fmt.Sprintf("%s%s:*", gridCacheKeyPrefix, doctorID))
}

// InvalidateAll drops every cached grid. Used when shift definitions change,
// since those affect every doctor.
func (s *GridCacheService) InvalidateAll(ctx context.Context) {
	s.invalidatePattern(ctx, gridCacheKeyPrefix+"*")
}

func (s *GridCacheService) invalidatePattern(ctx context.Context, pattern string) {
	keys, err := s.redisClient.Keys(ctx, pattern).Result()
	if err != nil {
		s.log.Warnf("Failed to list grid cache keys for %s: %+v", pattern, err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
		s.log.Warnf("Failed to invalidate grid cache for %s: %+v", pattern, err)
	}
}
