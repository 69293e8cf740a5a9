package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vinabike/storefront/pkg/mylogger"
	"go.uber.org/zap"
)

const feedCacheKey = "storefront:feed:google-merchant"

type cachedFeedService struct {
	next        FeedService
	redisClient *redis.Client
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewCachedFeedService keeps the rendered document in redis for cacheTTL.
// Redis failures fall through to next.
func NewCachedFeedService(next FeedService, redisClient *redis.Client, cacheTTL time.Duration, logger *zap.Logger) FeedService {
	return &cachedFeedService{
		next:        next,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

func (s *cachedFeedService) Render(ctx context.Context) ([]byte, error) {
	val, err := s.redisClient.Get(ctx, feedCacheKey).Bytes()
	if err == nil {
		return val, nil
	}
	if !errors.Is(err, redis.Nil) {
		mylogger.Warn(ctx, s.logger, "Feed cache read failed", zap.Error(err))
	}

	out, err := s.next.Render(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.redisClient.Set(ctx, feedCacheKey, out, s.cacheTTL).Err(); err != nil {
		mylogger.Warn(ctx, s.logger, "Feed cache write failed", zap.Error(err))
	}

	return out, nil
}
