package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/fmzb/hub-api/internal/models"
	"github.com/fmzb/hub-api/internal/repository"
)

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
)

// SeedService provisions demo user profiles for non-production environments.
type SeedService interface {
	SeedUsers(ctx context.Context, token string, users []models.UserProfile) (int64, error)
}

type seedService struct {
	users    repository.UserRepository
	activity repository.ActivityLogRepository
	enabled  bool
	token    string
	logger   zerolog.Logger
}

// NewSeedService constructs a seeding service.
func NewSeedService(users repository.UserRepository, activity repository.ActivityLogRepository, enabled bool, token string, logger zerolog.Logger) SeedService {
	return &seedService{
		users:    users,
		activity: activity,
		enabled:  enabled,
		token:    token,
		logger:   logger.With().Str("component", "seed_service").Logger(),
	}
}

func (s *seedService) SeedUsers(ctx context.Context, token string, users []models.UserProfile) (int64, error) {
	if !s.enabled {
		return 0, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return 0, ErrSeedUnauthorized
	}

	normalized := normalizeUsers(users)

	// Re-seeding an existing profile is an update, not a registration, so
	// only profiles absent before the upsert get a "Registered" entry.
	created := make(map[string]bool, len(normalized))
	for _, user := range normalized {
		if _, err := s.users.GetByEmail(ctx, user.Email); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				created[user.Email] = true
				continue
			}
			return 0, storeError(err)
		}
	}

	affected, err := s.users.UpsertBatch(ctx, normalized)
	if err != nil {
		return 0, storeError(err)
	}

	for _, user := range normalized {
		if !created[user.Email] {
			continue
		}
		entry := models.UserActivityLog{
			Email:        user.Email,
			ActivityType: models.ActivityTypeRegistered,
		}
		if err := s.activity.Append(ctx, &entry); err != nil {
			s.logger.Warn().Err(err).Str("email", user.Email).Msg("failed to record seed registration activity")
		}
	}

	s.logger.Info().Int64("affected", affected).Msg("users seeded")
	return affected, nil
}

func (s *seedService) validateToken(token string) bool {
	expected := strings.TrimSpace(s.token)
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.TrimSpace(token))) == 1
}

func normalizeUsers(users []models.UserProfile) []models.UserProfile {
	for i := range users {
		users[i].Email = normalizeEmail(users[i].Email)
		users[i].UserType = strings.ToLower(strings.TrimSpace(users[i].UserType))
		if users[i].Status == "" {
			users[i].Status = models.UserStatusActive
		}
		if users[i].PasswordHash == "" {
			users[i].PasswordHash = "!seeded"
		}
	}
	return users
}
