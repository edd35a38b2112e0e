package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/fmzb/hub-api/internal/dto"
	"github.com/fmzb/hub-api/internal/handler"
	"github.com/fmzb/hub-api/internal/service"
	"github.com/fmzb/hub-api/internal/utils"
)

type stubAdminUserService struct {
	list       dto.AdminUserListResponse
	user       dto.AdminUserResponse
	err        error
	lastEmail  string
	lastStatus string
}

func (s *stubAdminUserService) List(_ context.Context, req dto.AdminUserListRequest) (dto.AdminUserListResponse, error) {
	if s.err != nil {
		return dto.AdminUserListResponse{}, s.err
	}
	return s.list, nil
}

func (s *stubAdminUserService) Get(_ context.Context, email string) (dto.AdminUserResponse, error) {
	s.lastEmail = email
	if s.err != nil {
		return dto.AdminUserResponse{}, s.err
	}
	return s.user, nil
}

func (s *stubAdminUserService) UpdateStatus(_ context.Context, email string, payload dto.AdminUserStatusRequest) (dto.AdminUserResponse, error) {
	s.lastEmail = email
	s.lastStatus = payload.Status
	if s.err != nil {
		return dto.AdminUserResponse{}, s.err
	}
	return s.user, nil
}

func (s *stubAdminUserService) Delete(_ context.Context, email string) error {
	s.lastEmail = email
	return s.err
}

var _ service.AdminUserService = (*stubAdminUserService)(nil)

func newAdminApp(svc service.AdminUserService) *fiber.App {
	app := fiber.New()
	handler.NewAdminUserHandler(svc, zerolog.Nop()).Register(app.Group("/api/v1/admin/users"))
	return app
}

func TestAdminUserHandlerList(t *testing.T) {
	svc := &stubAdminUserService{
		list: dto.AdminUserListResponse{
			Items: []dto.AdminUserResponse{
				{Email: "a@example.com", UserType: "customer", Status: "active"},
			},
			Pagination: dto.PaginationMeta{Page: 1, PageSize: 20, TotalItems: 1, TotalPages: 1},
		},
	}
	app := newAdminApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users?search=a", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool                      `json:"success"`
		Data    dto.AdminUserListResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.True(t, payload.Success)
	require.Len(t, payload.Data.Items, 1)
	require.Equal(t, "a@example.com", payload.Data.Items[0].Email)
	require.Equal(t, int64(1), payload.Data.Pagination.TotalItems)
}

func TestAdminUserHandlerListBadPage(t *testing.T) {
	app := newAdminApp(&stubAdminUserService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users?page=abc", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var payload utils.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()
	require.Equal(t, utils.KindClientInputInvalid, payload.Kind)
}

func TestAdminUserHandlerGetNotFound(t *testing.T) {
	svc := &stubAdminUserService{err: service.ErrUserNotFound}
	app := newAdminApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users/missing@example.com", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var payload utils.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()
	require.Equal(t, utils.KindNotFound, payload.Kind)
}

func TestAdminUserHandlerUpdateStatus(t *testing.T) {
	svc := &stubAdminUserService{
		user: dto.AdminUserResponse{Email: "a@example.com", UserType: "customer", Status: "disabled"},
	}
	app := newAdminApp(svc)

	body := strings.NewReader(`{"status":"disabled"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/users/a@example.com/status", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	require.Equal(t, "a@example.com", svc.lastEmail)
	require.Equal(t, "disabled", svc.lastStatus)
}

func TestAdminUserHandlerDelete(t *testing.T) {
	svc := &stubAdminUserService{}
	app := newAdminApp(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/users/a@example.com", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	require.Equal(t, "a@example.com", svc.lastEmail)
}
