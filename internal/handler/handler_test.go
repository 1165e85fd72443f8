package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
	"projecthub/internal/domain/services"
	"projecthub/internal/httputil"
)

// MockProjectService is a mock implementation of ProjectService
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) CreateProject(ctx context.Context, req *services.CreateProjectRequest) (*models.Project, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) ListProjects(ctx context.Context, req *services.ListProjectsRequest) ([]models.Project, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockProjectService) UpdateProject(ctx context.Context, id int64, req *services.UpdateProjectRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func (m *MockProjectService) DeleteProject(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockStatisticsService is a mock implementation of StatisticsService
type MockStatisticsService struct {
	mock.Mock
}

func (m *MockStatisticsService) GetStatistics(ctx context.Context) (*models.ProjectStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectStats), args.Error(1)
}

type stubChecker struct {
	err error
}

func (s stubChecker) Name() string { return "stub" }
func (s stubChecker) Check(ctx context.Context) error { return s.err }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()
	var body httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandleErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{
			name:       "validation",
			err:        domain.NewFieldError("name", "cannot be blank"),
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: "name: cannot be blank",
		},
		{
			name:       "not found",
			err:        domain.NewNotFound("project", 9),
			wantStatus: http.StatusNotFound,
			wantDetail: "project 9 not found",
		},
		{
			name:       "conflict",
			err:        &domain.ConflictError{Message: "project with name 'A' already exists"},
			wantStatus: http.StatusConflict,
			wantDetail: "project with name 'A' already exists",
		},
		{
			name:       "storage unavailable",
			err:        domain.ErrStorageUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantDetail: "storage unavailable",
		},
		{
			name:       "unexpected error hides internals",
			err:        errors.New("pq: relation dev_projects does not exist"),
			wantStatus: http.StatusInternalServerError,
			wantDetail: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/projects", nil)

			handleError(w, r, discardLogger(), tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			body := decodeEnvelope(t, w)
			assert.Equal(t, tt.wantDetail, body.Detail)
			assert.Equal(t, http.StatusText(tt.wantStatus), body.Error)
		})
	}
}

func TestGetProjectStorageFailure(t *testing.T) {
	svc := new(MockProjectService)
	svc.On("GetProject", mock.Anything, int64(7)).Return(nil, errors.New("connection reset"))
	h := NewProjectHandler(svc, discardLogger())

	r := httptest.NewRequest(http.MethodGet, "/api/projects/7", nil)
	r.SetPathValue("id", "7")
	w := httptest.NewRecorder()

	h.GetProject(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
	svc.AssertExpectations(t)
}

func TestUpdateProjectPassesTriState(t *testing.T) {
	svc := new(MockProjectService)
	svc.On("UpdateProject", mock.Anything, int64(3), mock.MatchedBy(func(req *services.UpdateProjectRequest) bool {
		return !req.Name.Present &&
			req.Description.IsNull() &&
			req.Progress.Present && req.Progress.Value != nil && *req.Progress.Value == 0 &&
			req.Team.Present && req.Team.Value != nil && len(*req.Team.Value) == 0
	})).Return(nil)
	h := NewProjectHandler(svc, discardLogger())

	r := httptest.NewRequest(http.MethodPut, "/api/projects/3", strings.NewReader(`{"description":null,"progress":0,"team":[]}`))
	r.SetPathValue("id", "3")
	w := httptest.NewRecorder()

	h.UpdateProject(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var body httputil.MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, httputil.MessageResponse{Message: "Project updated successfully", ID: 3}, body)
	svc.AssertExpectations(t)
}

func TestListProjectsBadQueryNeverReachesService(t *testing.T) {
	svc := new(MockProjectService)
	h := NewProjectHandler(svc, discardLogger())

	r := httptest.NewRequest(http.MethodGet, "/api/projects?skip=x&limit=y", nil)
	w := httptest.NewRecorder()

	h.ListProjects(w, r)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, "must be an integer", body.Fields["skip"])
	assert.Equal(t, "must be an integer", body.Fields["limit"])
	svc.AssertNotCalled(t, "ListProjects", mock.Anything, mock.Anything)
}

func TestStatisticsStorageFailure(t *testing.T) {
	svc := new(MockStatisticsService)
	svc.On("GetStatistics", mock.Anything).Return(nil, errors.New("timeout"))
	h := NewStatisticsHandler(svc, discardLogger())

	w := httptest.NewRecorder()
	h.GetStatistics(w, httptest.NewRequest(http.MethodGet, "/api/statistics", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	svc.AssertExpectations(t)
}

func TestHealthReportsUnavailable(t *testing.T) {
	h := NewHealthHandler(discardLogger(), stubChecker{}, stubChecker{err: errors.New("dial tcp: connection refused")})

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, "error", body.Status)
	assert.Contains(t, body.Detail, "connection refused")
}
