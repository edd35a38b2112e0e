package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/fmzb/hub-api/internal/dto"
	"github.com/fmzb/hub-api/internal/repository"
)

const metricsCacheKey = "dashboard:metrics:v1"

// DashboardService answers the read-only aggregation queries behind the
// admin dashboard. The three queries are independent: a failure in one does
// not affect the others.
type DashboardService interface {
	Metrics(ctx context.Context) (dto.UserMetricsResponse, error)
	RoleDistribution(ctx context.Context) (dto.RoleDistributionResponse, error)
	RecentUsers(ctx context.Context) ([]dto.RecentUserResponse, error)
}

type dashboardService struct {
	repo        repository.UserRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	recentLimit int
	logger      zerolog.Logger
}

// NewDashboardService constructs the dashboard aggregation service.
func NewDashboardService(repo repository.UserRepository, cache *redis.Client, ttl time.Duration, recentLimit int, logger zerolog.Logger) DashboardService {
	if recentLimit <= 0 {
		recentLimit = 10
	}
	return &dashboardService{
		repo:        repo,
		cache:       cache,
		cacheTTL:    ttl,
		recentLimit: recentLimit,
		logger:      logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) Metrics(ctx context.Context) (dto.UserMetricsResponse, error) {
	tracer := otel.Tracer("github.com/fmzb/hub-api/internal/service/dashboard")
	ctx, span := tracer.Start(ctx, "dashboard.metrics")
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, metricsCacheKey).Result()
		if err == nil {
			var response dto.UserMetricsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				span.SetAttributes(attribute.Bool("dashboard.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read metrics cache")
			span.RecordError(err)
		}
	}

	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "count_by_status_failed")
		return dto.UserMetricsResponse{}, storeError(err)
	}

	response := dto.UserMetricsResponse{
		Total:    counts.Total,
		Active:   counts.Active,
		Disabled: counts.Disabled,
	}
	span.SetAttributes(attribute.Int64("dashboard.total_users", counts.Total))

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, metricsCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store metrics cache")
				span.RecordError(err)
			}
		}
	}

	return response, nil
}

// RoleDistribution returns one category per role that currently has at least
// one member, ordered alphabetically so chart rendering is stable across
// calls. Roles with zero members are omitted.
func (s *dashboardService) RoleDistribution(ctx context.Context) (dto.RoleDistributionResponse, error) {
	rows, err := s.repo.CountByRole(ctx)
	if err != nil {
		return dto.RoleDistributionResponse{}, storeError(err)
	}

	categories := make([]string, 0, len(rows))
	points := make([]dto.RoleDataPoint, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, dto.CapitalizeRole(row.Role))
		points = append(points, dto.RoleDataPoint{Value: row.Count})
	}

	return dto.RoleDistributionResponse{
		Categories: categories,
		Dataset:    []dto.RoleDataset{{Data: points}},
	}, nil
}

func (s *dashboardService) RecentUsers(ctx context.Context) ([]dto.RecentUserResponse, error) {
	users, err := s.repo.ListRecent(ctx, s.recentLimit)
	if err != nil {
		return nil, storeError(err)
	}

	responses := make([]dto.RecentUserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.NewRecentUserResponse(user))
	}

	return responses, nil
}
