package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/fmzb/hub-api/internal/dto"
	"github.com/fmzb/hub-api/internal/models"
	"github.com/fmzb/hub-api/internal/repository"
)

// AdminUserService orchestrates the administrative user management use cases.
type AdminUserService interface {
	List(ctx context.Context, req dto.AdminUserListRequest) (dto.AdminUserListResponse, error)
	Get(ctx context.Context, email string) (dto.AdminUserResponse, error)
	UpdateStatus(ctx context.Context, email string, payload dto.AdminUserStatusRequest) (dto.AdminUserResponse, error)
	Delete(ctx context.Context, email string) error
}

type adminUserService struct {
	repo      repository.UserRepository
	activity  repository.ActivityLogRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAdminUserService constructs the admin user service.
func NewAdminUserService(repo repository.UserRepository, activity repository.ActivityLogRepository, validate *validator.Validate, logger zerolog.Logger) AdminUserService {
	return &adminUserService{
		repo:      repo,
		activity:  activity,
		validator: validate,
		logger:    logger.With().Str("component", "admin_user_service").Logger(),
	}
}

func (s *adminUserService) List(ctx context.Context, req dto.AdminUserListRequest) (dto.AdminUserListResponse, error) {
	filter := repository.UserFilter{
		Search:   strings.TrimSpace(req.Search),
		UserType: strings.ToLower(strings.TrimSpace(req.UserType)),
		Status:   strings.ToLower(strings.TrimSpace(req.Status)),
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.AdminUserListResponse{}, storeError(err)
	}

	responses := make([]dto.AdminUserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.NewAdminUserResponse(user))
	}

	pagination := dto.PaginationMeta{
		Page:       maxInt(req.Page, 1),
		PageSize:   req.PageSize,
		TotalItems: total,
	}
	if req.PageSize > 0 {
		pagination.TotalPages = int(math.Ceil(float64(total) / float64(req.PageSize)))
	} else {
		pagination.TotalPages = 1
	}

	return dto.AdminUserListResponse{Items: responses, Pagination: pagination}, nil
}

func (s *adminUserService) Get(ctx context.Context, email string) (dto.AdminUserResponse, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AdminUserResponse{}, ErrUserNotFound
		}
		return dto.AdminUserResponse{}, storeError(err)
	}

	return dto.NewAdminUserResponse(user), nil
}

func (s *adminUserService) UpdateStatus(ctx context.Context, email string, payload dto.AdminUserStatusRequest) (dto.AdminUserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AdminUserResponse{}, err
	}

	email = normalizeEmail(email)
	status := strings.ToLower(payload.Status)

	if err := s.repo.UpdateStatus(ctx, email, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AdminUserResponse{}, ErrUserNotFound
		}
		return dto.AdminUserResponse{}, storeError(err)
	}

	activityType := models.ActivityTypeDeactivated
	if status == models.UserStatusActive {
		activityType = models.ActivityTypeReactivated
	}
	s.appendActivity(ctx, email, activityType, "")

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return dto.AdminUserResponse{}, storeError(err)
	}

	s.logger.Info().Str("email", email).Str("status", status).Msg("user status updated")
	return dto.NewAdminUserResponse(user), nil
}

func (s *adminUserService) Delete(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	if err := s.repo.DeleteByEmail(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return storeError(err)
	}

	s.logger.Info().Str("email", email).Msg("user deleted with activity history")
	return nil
}

func (s *adminUserService) appendActivity(ctx context.Context, email, activityType, description string) {
	entry := models.UserActivityLog{
		Email:               email,
		ActivityType:        activityType,
		ActivityDescription: description,
	}
	if err := s.activity.Append(ctx, &entry); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("failed to append activity entry")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
