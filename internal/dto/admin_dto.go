package dto

import (
	"time"

	"gorm.io/datatypes"

	"github.com/fmzb/hub-api/internal/models"
)

// PaginationMeta captures pagination metadata for list responses.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// AdminUserListRequest defines filters for listing user profiles.
type AdminUserListRequest struct {
	Page     int
	PageSize int
	Search   string
	UserType string
	Status   string
}

// AdminUserResponse serializes profile data for admin endpoints.
type AdminUserResponse struct {
	Email            string     `json:"email"`
	UserType         string     `json:"user_type"`
	ContactFirstName string     `json:"contact_first_name"`
	ContactLastName  string     `json:"contact_last_name"`
	Phone            *string    `json:"phone,omitempty"`
	Website          *string    `json:"website,omitempty"`
	BusinessName     *string    `json:"business_name,omitempty"`
	Status           string     `json:"status"`
	TimeOfCreation   time.Time  `json:"time_of_creation"`
	LastLogin        *time.Time `json:"last_login,omitempty"`
}

// AdminUserListResponse wraps a paginated user listing.
type AdminUserListResponse struct {
	Items      []AdminUserResponse `json:"items"`
	Pagination PaginationMeta      `json:"pagination"`
}

// AdminUserStatusRequest captures the enable/disable payload.
type AdminUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active disabled"`
}

// NewAdminUserResponse converts a profile model into a DTO.
func NewAdminUserResponse(user models.UserProfile) AdminUserResponse {
	return AdminUserResponse{
		Email:            user.Email,
		UserType:         user.UserType,
		ContactFirstName: user.ContactFirstName,
		ContactLastName:  user.ContactLastName,
		Phone:            user.Phone,
		Website:          user.Website,
		BusinessName:     user.BusinessName,
		Status:           user.Status,
		TimeOfCreation:   user.TimeOfCreation,
		LastLogin:        user.LastLogin,
	}
}

// ActivityFeedRequest defines filters for retrieving activity log entries.
type ActivityFeedRequest struct {
	Page         int
	PageSize     int
	Email        string
	ActivityType string
}

// ActivityFeedItem serializes one activity log entry.
type ActivityFeedItem struct {
	ID                  uint                   `json:"id"`
	Email               string                 `json:"email"`
	ActivityType        string                 `json:"activity_type"`
	ActivityDescription string                 `json:"activity_description,omitempty"`
	Metadata            map[string]interface{} `json:"metadata,omitempty"`
	ActivityDate        time.Time              `json:"activity_date"`
}

// ActivityFeedResponse wraps a paginated activity listing.
type ActivityFeedResponse struct {
	Items      []ActivityFeedItem `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
	CacheHit   bool               `json:"cache_hit"`
}

// NewActivityFeedItem converts a log model into the feed DTO.
func NewActivityFeedItem(entry models.UserActivityLog) ActivityFeedItem {
	return ActivityFeedItem{
		ID:                  entry.ID,
		Email:               entry.Email,
		ActivityType:        entry.ActivityType,
		ActivityDescription: entry.ActivityDescription,
		Metadata:            metadataFromJSON(entry.Metadata),
		ActivityDate:        entry.ActivityDate,
	}
}

func metadataFromJSON(data datatypes.JSONMap) map[string]interface{} {
	if data == nil {
		return nil
	}
	return map[string]interface{}(data)
}
