package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/fmzb/hub-api/internal/dto"
	"github.com/fmzb/hub-api/internal/observability"
	"github.com/fmzb/hub-api/internal/repository"
)

// ActivityFeedService exposes the recent-activity listing for the dashboard.
type ActivityFeedService interface {
	List(ctx context.Context, req dto.ActivityFeedRequest) (dto.ActivityFeedResponse, error)
}

type activityFeedService struct {
	repo   repository.ActivityLogRepository
	cache  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewActivityFeedService builds the activity feed service.
func NewActivityFeedService(repo repository.ActivityLogRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) ActivityFeedService {
	if ttl <= 0 {
		ttl = 45 * time.Second
	}
	return &activityFeedService{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With().Str("component", "activity_feed_service").Logger(),
	}
}

func (s *activityFeedService) List(ctx context.Context, req dto.ActivityFeedRequest) (dto.ActivityFeedResponse, error) {
	start := time.Now()
	defer func() {
		observability.ActivityFeedLatency().Observe(time.Since(start).Seconds())
	}()

	filter := repository.ActivityLogFilter{
		Page:         maxInt(req.Page, 1),
		PageSize:     clampPageSize(req.PageSize),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		ActivityType: strings.TrimSpace(req.ActivityType),
	}

	cacheKey := s.cacheKey(filter)
	if cacheKey != "" {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var response dto.ActivityFeedResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				response.CacheHit = true
				observability.ActivityFeedRequests().WithLabelValues("hit").Inc()
				return response, nil
			}
		}
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		observability.ActivityFeedRequests().WithLabelValues("error").Inc()
		return dto.ActivityFeedResponse{}, storeError(err)
	}

	items := make([]dto.ActivityFeedItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewActivityFeedItem(entry))
	}

	pagination := dto.PaginationMeta{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalItems: total,
	}
	if filter.PageSize > 0 {
		pagination.TotalPages = int(math.Ceil(float64(total) / float64(filter.PageSize)))
	} else {
		pagination.TotalPages = 1
	}

	response := dto.ActivityFeedResponse{Items: items, Pagination: pagination, CacheHit: false}

	if cacheKey != "" {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to write activity feed cache")
			}
		}
	}

	observability.ActivityFeedRequests().WithLabelValues("miss").Inc()

	return response, nil
}

func (s *activityFeedService) cacheKey(filter repository.ActivityLogFilter) string {
	if s.cache == nil {
		return ""
	}
	return fmt.Sprintf("activities:feed:v1:%s:%s:%d:%d", filter.Email, filter.ActivityType, filter.Page, filter.PageSize)
}

func clampPageSize(size int) int {
	if size <= 0 {
		return 20
	}
	if size > 100 {
		return 100
	}
	return size
}
