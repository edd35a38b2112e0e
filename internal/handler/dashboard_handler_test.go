package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/fmzb/hub-api/internal/dto"
	"github.com/fmzb/hub-api/internal/handler"
	"github.com/fmzb/hub-api/internal/service"
	"github.com/fmzb/hub-api/internal/utils"
)

type stubDashboardService struct {
	metrics      dto.UserMetricsResponse
	distribution dto.RoleDistributionResponse
	recent       []dto.RecentUserResponse
	err          error
}

func (s *stubDashboardService) Metrics(context.Context) (dto.UserMetricsResponse, error) {
	if s.err != nil {
		return dto.UserMetricsResponse{}, s.err
	}
	return s.metrics, nil
}

func (s *stubDashboardService) RoleDistribution(context.Context) (dto.RoleDistributionResponse, error) {
	if s.err != nil {
		return dto.RoleDistributionResponse{}, s.err
	}
	return s.distribution, nil
}

func (s *stubDashboardService) RecentUsers(context.Context) ([]dto.RecentUserResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.recent, nil
}

var _ service.DashboardService = (*stubDashboardService)(nil)

func newDashboardApp(svc service.DashboardService) *fiber.App {
	app := fiber.New()
	handler.NewDashboardHandler(svc, zerolog.Nop()).Register(app.Group("/api/v1/dashboard"))
	return app
}

func TestDashboardHandlerMetrics(t *testing.T) {
	svc := &stubDashboardService{metrics: dto.UserMetricsResponse{Total: 3, Active: 3, Disabled: 0}}
	app := newDashboardApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool                    `json:"success"`
		Data    dto.UserMetricsResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.True(t, payload.Success)
	require.Equal(t, int64(3), payload.Data.Total)
	require.Equal(t, payload.Data.Total, payload.Data.Active+payload.Data.Disabled)
}

func TestDashboardHandlerMetricsStoreUnavailable(t *testing.T) {
	svc := &stubDashboardService{err: service.ErrStoreUnavailable}
	app := newDashboardApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var payload utils.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.False(t, payload.Success)
	require.Equal(t, utils.KindStoreUnavailable, payload.Kind)
}

func TestDashboardHandlerRoleDistributionShape(t *testing.T) {
	svc := &stubDashboardService{distribution: dto.RoleDistributionResponse{
		Categories: []string{"Customer", "Merchant"},
		Dataset:    []dto.RoleDataset{{Data: []dto.RoleDataPoint{{Value: 2}, {Value: 1}}}},
	}}
	app := newDashboardApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/charts/roles", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Data dto.RoleDistributionResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.Equal(t, []string{"Customer", "Merchant"}, payload.Data.Categories)
	require.Len(t, payload.Data.Dataset, 1)
	require.Equal(t, int64(2), payload.Data.Dataset[0].Data[0].Value)
}

func TestDashboardHandlerRecentUsersOmitsCredentials(t *testing.T) {
	now := time.Now().UTC()
	svc := &stubDashboardService{recent: []dto.RecentUserResponse{
		{Email: "new@example.com", ContactFirstName: "New", ContactLastName: "User", UserType: "customer", Status: "active", TimeOfCreation: now},
	}}
	app := newDashboardApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/recent-users", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	require.Contains(t, string(body), `"Email":"new@example.com"`)
	require.False(t, strings.Contains(strings.ToLower(string(body)), "password"))
	require.False(t, strings.Contains(strings.ToLower(string(body)), "hash"))
}

func TestDashboardHandlerRecentUsersEmpty(t *testing.T) {
	svc := &stubDashboardService{recent: []dto.RecentUserResponse{}}
	app := newDashboardApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/recent-users", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Data []dto.RecentUserResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()
	require.Empty(t, payload.Data)
}
