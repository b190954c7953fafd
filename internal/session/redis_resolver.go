package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"frontend-api/internal/metrics"
	"frontend-api/internal/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisResolver answers from a short-lived redis cache and falls back to a
// Loader on a miss, filling the cache asynchronously.
type RedisResolver struct {
	redis  *redis.Client
	loader Loader
	log    *zap.SugaredLogger
	now    func() time.Time
	ttl    time.Duration
}

func NewRedisResolver(redisClient *redis.Client, loader Loader, log *zap.SugaredLogger) *RedisResolver {
	return &RedisResolver{
		redis:  redisClient,
		loader: loader,
		log:    log,
		now:    time.Now,
		ttl:    shared.SessionCacheTTL,
	}
}

func CacheKey(token string) string {
	return fmt.Sprintf("v1:session:%s", HashToken(token))
}

func (r *RedisResolver) Resolve(ctx context.Context, token string) (*shared.Session, error) {
	if token == "" {
		return nil, shared.ErrMissingAuth
	}
	key := CacheKey(token)

	cached, getErr := r.redis.Get(ctx, key).Result()
	switch getErr {
	case nil:
		var s shared.Session
		err := json.Unmarshal([]byte(cached), &s)
		if err == nil {
			metrics.SessionLookups.WithLabelValues(metrics.SessionSourceCache).Inc()
			return r.check(&s)
		}
		r.log.Errorw("Error unmarshalling session cache", "error", err)
		fallthrough
	default:
		if getErr != nil && !errors.Is(getErr, redis.Nil) {
			r.log.Warnw("Session cache unavailable", "error", getErr)
		}
		r.log.Debugw("Session cache miss", "key", key)

		s, err := r.loader.LoadSession(ctx, HashToken(token))
		if errors.Is(err, ErrNotFound) {
			metrics.SessionLookups.WithLabelValues(metrics.SessionSourceMiss).Inc()
			return nil, shared.ErrUnauthorized
		}
		if err != nil {
			r.log.Errorw("Error loading session", "error", err)
			return nil, fmt.Errorf("%w: %w", shared.ErrUnauthorized, err)
		}
		metrics.SessionLookups.WithLabelValues(metrics.SessionSourceStore).Inc()

		s, err = r.check(s)
		if err != nil {
			return nil, err
		}
		go r.fill(key, s)
		return s, nil
	}
}

func (r *RedisResolver) check(s *shared.Session) (*shared.Session, error) {
	if s.Valid(r.now()) {
		return s, nil
	}
	if s.User != nil && s.User.APIKey != "" {
		return nil, shared.ErrSessionExpired
	}
	return nil, shared.ErrUnauthorized
}

// fill caches s for at most ttl and never past its expiry. It runs detached
// from the request so a finished request does not cancel the write.
func (r *RedisResolver) fill(key string, s *shared.Session) {
	ttl := r.ttl
	if !s.Expires.IsZero() {
		if remaining := s.Expires.Sub(r.now()); remaining < ttl {
			ttl = remaining
		}
	}
	if ttl <= 0 {
		return
	}

	payload, err := json.Marshal(s)
	if err != nil {
		r.log.Errorw("Error marshalling session", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shared.SessionCacheFillWait)
	defer cancel()
	if err := r.redis.Set(ctx, key, payload, ttl).Err(); err != nil {
		r.log.Warnw("Failed to cache session", "error", err)
	}
}
