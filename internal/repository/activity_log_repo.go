package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fmzb/hub-api/internal/models"
)

// ActivityLogFilter narrows activity log queries.
type ActivityLogFilter struct {
	Page         int
	PageSize     int
	Email        string
	ActivityType string
}

// ActivityLogRepository persists the append-only audit trail.
type ActivityLogRepository interface {
	Append(ctx context.Context, entry *models.UserActivityLog) error
	List(ctx context.Context, filter ActivityLogFilter) ([]models.UserActivityLog, int64, error)
}

type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository constructs the activity log repository.
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Append(ctx context.Context, entry *models.UserActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityLogRepository) List(ctx context.Context, filter ActivityLogFilter) ([]models.UserActivityLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.UserActivityLog{})

	if filter.Email != "" {
		query = query.Where("email = ?", filter.Email)
	}

	if filter.ActivityType != "" {
		query = query.Where("activity_type = ?", filter.ActivityType)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var entries []models.UserActivityLog
	if err := query.Order("activity_date DESC").Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
