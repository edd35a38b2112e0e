package models

import "time"

// User types persisted in the user_type column.
const (
	UserTypeCustomer = "customer"
	UserTypeMerchant = "merchant"
)

// Account statuses persisted in the status column.
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// UserProfile is the canonical record for a registered user, keyed by email.
// The password hash is credential material and is never serialized.
type UserProfile struct {
	Email            string     `gorm:"primaryKey;size:255" json:"email"`
	UserType         string     `gorm:"size:32;not null;index;check:user_type IN ('customer','merchant')" json:"user_type"`
	ContactFirstName string     `gorm:"size:255;not null" json:"contact_first_name"`
	ContactLastName  string     `gorm:"size:255;not null" json:"contact_last_name"`
	PasswordHash     string     `gorm:"size:255;not null" json:"-"`
	Phone            *string    `gorm:"size:32" json:"phone,omitempty"`
	Website          *string    `gorm:"size:255" json:"website,omitempty"`
	BusinessName     *string    `gorm:"size:255" json:"business_name,omitempty"`
	Status           string     `gorm:"size:16;not null;default:active;index;check:status IN ('active','disabled')" json:"status"`
	TimeOfCreation   time.Time  `gorm:"autoCreateTime;index" json:"time_of_creation"`
	LastLogin        *time.Time `json:"last_login,omitempty"`

	Activities []UserActivityLog `gorm:"foreignKey:Email;references:Email;constraint:OnDelete:CASCADE" json:"-"`
}
