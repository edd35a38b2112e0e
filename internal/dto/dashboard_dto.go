package dto

import (
	"strings"
	"time"

	"github.com/fmzb/hub-api/internal/models"
)

// UserMetricsResponse carries the headline counters shown on the dashboard.
// Active and disabled always sum to total; the status check constraint rules
// out a third bucket.
type UserMetricsResponse struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Disabled int64 `json:"disabled"`
}

// RoleDataPoint is a single bar value in the role distribution chart.
type RoleDataPoint struct {
	Value int64 `json:"value"`
}

// RoleDataset groups the data points of one chart series.
type RoleDataset struct {
	Data []RoleDataPoint `json:"data"`
}

// RoleDistributionResponse is the chart-ready role breakdown. Categories and
// dataset values are index-aligned and ordered alphabetically by role so
// repeated renders stay stable.
type RoleDistributionResponse struct {
	Categories []string      `json:"categories"`
	Dataset    []RoleDataset `json:"dataset"`
}

// RecentUserResponse serializes one row of the recent-users table. Field
// names match the dashboard table columns; credential material is never
// part of this shape.
type RecentUserResponse struct {
	Email            string    `json:"Email"`
	ContactFirstName string    `json:"ContactFirstName"`
	ContactLastName  string    `json:"ContactLastName"`
	UserType         string    `json:"UserType"`
	Status           string    `json:"Status"`
	TimeOfCreation   time.Time `json:"TimeOfCreation"`
}

// NewRecentUserResponse converts a profile model into the table row DTO.
func NewRecentUserResponse(user models.UserProfile) RecentUserResponse {
	return RecentUserResponse{
		Email:            user.Email,
		ContactFirstName: user.ContactFirstName,
		ContactLastName:  user.ContactLastName,
		UserType:         user.UserType,
		Status:           user.Status,
		TimeOfCreation:   user.TimeOfCreation,
	}
}

// CapitalizeRole renders a stored role value as a chart category label.
func CapitalizeRole(role string) string {
	if role == "" {
		return role
	}
	return strings.ToUpper(role[:1]) + role[1:]
}
