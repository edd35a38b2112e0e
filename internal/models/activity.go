package models

import (
	"time"

	"gorm.io/datatypes"
)

// Activity types written by the flows in scope.
const (
	ActivityTypeRegistered  = "Registered"
	ActivityTypeAnalysis    = "Analysis"
	ActivityTypeDeactivated = "Deactivated"
	ActivityTypeReactivated = "Reactivated"
)

// UserActivityLog is the append-only audit trail of actions taken by or
// about a user. Rows are never updated, only appended and cascade-deleted
// with their owning profile.
type UserActivityLog struct {
	ID                  uint              `gorm:"primaryKey" json:"id"`
	Email               string            `gorm:"size:255;not null;index" json:"email"`
	ActivityType        string            `gorm:"size:64;not null;index" json:"activity_type"`
	ActivityDescription string            `gorm:"type:text" json:"activity_description,omitempty"`
	Metadata            datatypes.JSONMap `gorm:"type:json" json:"metadata,omitempty"`
	ActivityDate        time.Time         `gorm:"autoCreateTime;index" json:"activity_date"`
}
