package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SundayYogurt/approval_service/internal/domain"
	"github.com/SundayYogurt/approval_service/internal/dto"
	"github.com/SundayYogurt/approval_service/internal/helper"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRequestService struct {
	lastCaller  dto.AuthResponse
	lastFilters dto.RequestFilters
	lastStatus  string
	lastUserID  string

	request *domain.Request
	page    *dto.PageResult
	err     error
}

func (s *stubRequestService) Create(input dto.CreateRequestInput) (*domain.Request, error) {
	return s.request, s.err
}

func (s *stubRequestService) FindAllWithFilters(page, limit int, filters dto.RequestFilters, caller dto.AuthResponse) (*dto.PageResult, error) {
	s.lastFilters = filters
	s.lastCaller = caller
	return s.page, s.err
}

func (s *stubRequestService) FindByID(id string) (*domain.Request, error) {
	return s.request, s.err
}

func (s *stubRequestService) UpdateStatus(id, status, userID string, comment *string) (*domain.Request, error) {
	s.lastStatus = status
	s.lastUserID = userID
	return s.request, s.err
}

func (s *stubRequestService) Update(id string, input dto.UpdateRequestInput, userID string) (*domain.Request, error) {
	s.lastUserID = userID
	return s.request, s.err
}

func (s *stubRequestService) ListHistory(requestID string) ([]domain.History, error) {
	return nil, s.err
}

func newTestApp(t *testing.T, svc *stubRequestService) (*fiber.App, helper.Auth) {
	t.Helper()

	auth := helper.SetupAuth("test-secret")
	app := fiber.New()
	NewRequestHandler(svc, auth).SetupRoutes(app)
	return app, auth
}

func tokenFor(t *testing.T, auth helper.Auth, userID, role string) string {
	t.Helper()

	token, err := auth.GenerateToken(userID, "someone", role)
	require.NoError(t, err)
	return "Bearer " + token
}

func jsonRequest(t *testing.T, method, target, token string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	return req
}

func TestFindAll_CallerIdentityFromToken(t *testing.T) {
	svc := &stubRequestService{page: &dto.PageResult{Page: 1, Limit: 5}}
	app, auth := newTestApp(t, svc)

	// a requester trying to filter by someone else's id; the service gets
	// the caller from the token, not the body
	req := jsonRequest(t, http.MethodPost, "/api/requests/filter",
		tokenFor(t, auth, "u-1", "requester"),
		map[string]interface{}{"requester_id": "someone-else", "status": "Pending"},
	)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "u-1", svc.lastCaller.UserID)
	assert.Equal(t, "requester", svc.lastCaller.Role)
	assert.Equal(t, "Pending", svc.lastFilters.Status)
}

func TestFindAll_Unauthorized(t *testing.T) {
	svc := &stubRequestService{}
	app, _ := newTestApp(t, svc)

	req := jsonRequest(t, http.MethodPost, "/api/requests/filter", "", map[string]interface{}{})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := &stubRequestService{err: domain.ErrRequestNotFound}
	app, auth := newTestApp(t, svc)

	req := jsonRequest(t, http.MethodGet, "/api/requests/abc", tokenFor(t, auth, "u-1", "requester"), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateStatus_RequesterForbidden(t *testing.T) {
	svc := &stubRequestService{}
	app, auth := newTestApp(t, svc)

	req := jsonRequest(t, http.MethodPut, "/api/requests/abc",
		tokenFor(t, auth, "u-1", "requester"),
		map[string]interface{}{"status": "Approved"},
	)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUpdateStatus_ActingUserFromToken(t *testing.T) {
	svc := &stubRequestService{request: &domain.Request{ID: "abc", Status: domain.StatusApproved}}
	app, auth := newTestApp(t, svc)

	req := jsonRequest(t, http.MethodPut, "/api/requests/abc",
		tokenFor(t, auth, "u-2", "approver"),
		map[string]interface{}{"status": "Approved", "comment": "ok"},
	)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "Approved", svc.lastStatus)
	assert.Equal(t, "u-2", svc.lastUserID)
}

func TestUpdateStatus_InvalidStatusUnprocessable(t *testing.T) {
	svc := &stubRequestService{err: domain.ErrInvalidStatus}
	app, auth := newTestApp(t, svc)

	req := jsonRequest(t, http.MethodPut, "/api/requests/abc",
		tokenFor(t, auth, "u-2", "approver"),
		map[string]interface{}{"status": "Banana"},
	)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUpdate_OnlyRejectedUnprocessable(t *testing.T) {
	svc := &stubRequestService{err: domain.ErrOnlyRejectedEditable}
	app, auth := newTestApp(t, svc)

	req := jsonRequest(t, http.MethodPut, "/api/requests/update/abc",
		tokenFor(t, auth, "u-1", "requester"),
		map[string]interface{}{"title": "changed"},
	)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "only rejected requests may be modified")
}

func TestUpdate_EditRouteNotCapturedByStatusRoute(t *testing.T) {
	svc := &stubRequestService{request: &domain.Request{ID: "abc", Status: domain.StatusPending}}
	app, auth := newTestApp(t, svc)

	// a requester may edit via /update/:id even though PUT /:id is approver only
	req := jsonRequest(t, http.MethodPut, "/api/requests/update/abc",
		tokenFor(t, auth, "u-1", "requester"),
		map[string]interface{}{"title": "changed"},
	)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "u-1", svc.lastUserID)
}

func TestCreate_Created(t *testing.T) {
	svc := &stubRequestService{request: &domain.Request{ID: "abc", Status: domain.StatusPending}}
	app, auth := newTestApp(t, svc)

	req := jsonRequest(t, http.MethodPost, "/api/requests/",
		tokenFor(t, auth, "u-1", "requester"),
		map[string]interface{}{"title": "Buy laptop", "type": "purchase", "approver_id": "u-2"},
	)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}
