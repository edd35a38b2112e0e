package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fmzb/hub-api/internal/models"
)

// RoleCount pairs a user type with the number of profiles holding it.
type RoleCount struct {
	Role  string
	Count int64
}

// StatusCounts carries the grouped status counters backing the metrics card.
type StatusCounts struct {
	Total    int64
	Active   int64
	Disabled int64
}

// UserFilter narrows admin user listings.
type UserFilter struct {
	Search   string
	UserType string
	Status   string
	Page     int
	PageSize int
}

// UserRepository supplies profile data for the dashboard and admin surfaces.
type UserRepository interface {
	CountByStatus(ctx context.Context) (StatusCounts, error)
	CountByRole(ctx context.Context) ([]RoleCount, error)
	ListRecent(ctx context.Context, limit int) ([]models.UserProfile, error)
	List(ctx context.Context, filter UserFilter) ([]models.UserProfile, int64, error)
	GetByEmail(ctx context.Context, email string) (models.UserProfile, error)
	UpdateStatus(ctx context.Context, email, status string) error
	DeleteByEmail(ctx context.Context, email string) error
	UpsertBatch(ctx context.Context, users []models.UserProfile) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs the user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CountByStatus(ctx context.Context) (StatusCounts, error) {
	type statusRow struct {
		Status string
		Count  int64
	}

	var rows []statusRow
	err := r.db.WithContext(ctx).
		Model(&models.UserProfile{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return StatusCounts{}, err
	}

	counts := StatusCounts{}
	for _, row := range rows {
		counts.Total += row.Count
		switch row.Status {
		case models.UserStatusActive:
			counts.Active = row.Count
		case models.UserStatusDisabled:
			counts.Disabled = row.Count
		}
	}

	return counts, nil
}

func (r *userRepository) CountByRole(ctx context.Context) ([]RoleCount, error) {
	var rows []RoleCount
	err := r.db.WithContext(ctx).
		Model(&models.UserProfile{}).
		Select("user_type AS role, COUNT(*) AS count").
		Group("user_type").
		Order("user_type ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *userRepository) ListRecent(ctx context.Context, limit int) ([]models.UserProfile, error) {
	if limit <= 0 {
		limit = 10
	}

	var users []models.UserProfile
	err := r.db.WithContext(ctx).
		Order("time_of_creation DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]models.UserProfile, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.UserProfile{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(email) LIKE ? OR LOWER(contact_first_name) LIKE ? OR LOWER(contact_last_name) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if filter.UserType != "" {
		query = query.Where("user_type = ?", filter.UserType)
	}

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
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

	var users []models.UserProfile
	if err := query.Order("time_of_creation DESC").Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (models.UserProfile, error) {
	var user models.UserProfile
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	return user, err
}

func (r *userRepository) UpdateStatus(ctx context.Context, email, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.UserProfile{}).
		Where("email = ?", email).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByEmail removes the profile together with its activity history. The
// schema declares ON DELETE CASCADE; the explicit delete keeps the invariant
// on stores migrated without foreign key enforcement.
func (r *userRepository) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", email).Delete(&models.UserActivityLog{}).Error; err != nil {
			return err
		}

		result := tx.Where("email = ?", email).Delete(&models.UserProfile{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *userRepository) UpsertBatch(ctx context.Context, users []models.UserProfile) (int64, error) {
	if len(users) == 0 {
		return 0, nil
	}

	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_type", "contact_first_name", "contact_last_name",
			"phone", "website", "business_name", "status",
		}),
	})

	result := tx.Create(&users)
	return result.RowsAffected, result.Error
}
