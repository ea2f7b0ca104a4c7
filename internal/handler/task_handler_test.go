package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trustmart/internal/auth"
	"trustmart/internal/model"
	"trustmart/internal/service"
	"trustmart/internal/validation"
)

// MockTaskService is a mock implementation of service.TaskService.
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) ListTasks(ctx context.Context) (*service.TaskList, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TaskList), args.Error(1)
}

func (m *MockTaskService) CreateTask(ctx context.Context, caller auth.Identity, in *validation.TaskCreate) (*model.Task, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) UpdateTask(ctx context.Context, caller auth.Identity, id uint, in *validation.TaskUpdate) (*model.Task, error) {
	args := m.Called(ctx, caller, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, caller auth.Identity, id uint) (*model.Task, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

// testEnvelope mirrors response.Envelope for decoding in assertions.
type testEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

var callerIdentity = auth.Identity{ID: 2, Email: "user@example.com", Name: "Regular User", Role: "user"}

func newRequestContext(t *testing.T, method, target, body string, identity *auth.Identity) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if identity != nil {
		auth.SetIdentity(c, *identity)
	}
	return c, rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func fieldNames(t *testing.T, details json.RawMessage) []string {
	t.Helper()
	var fieldErrs []validation.FieldError
	require.NoError(t, json.Unmarshal(details, &fieldErrs))
	names := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		names = append(names, fe.Field)
	}
	return names
}

func TestTaskHandler_CreateRejectsUnknownStatus(t *testing.T) {
	svc := new(MockTaskService)
	h := NewTaskHandler(svc, validation.New())

	c, rec := newRequestContext(t, http.MethodPost, "/api/tasks",
		`{"title":"Write docs","status":"bogus"}`, &callerIdentity)

	require.NoError(t, h.CreateTask(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, fieldNames(t, env.Error.Details), "status")

	svc.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskHandler_CreateReportsEveryViolation(t *testing.T) {
	svc := new(MockTaskService)
	h := NewTaskHandler(svc, validation.New())

	c, rec := newRequestContext(t, http.MethodPost, "/api/tasks",
		`{"status":"bogus","priority":"urgent","assignedTo":"not-an-email"}`, &callerIdentity)

	require.NoError(t, h.CreateTask(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	names := fieldNames(t, env.Error.Details)
	assert.ElementsMatch(t, []string{"title", "status", "priority", "assignedTo"}, names)
}

func TestTaskHandler_CreateValidPayload(t *testing.T) {
	svc := new(MockTaskService)
	h := NewTaskHandler(svc, validation.New())

	created := &model.Task{ID: 42, Title: "Write docs", Status: model.TaskStatusPending, Priority: model.TaskPriorityMedium}
	svc.On("CreateTask", mock.Anything, callerIdentity, mock.AnythingOfType("*validation.TaskCreate")).Return(created, nil)

	c, rec := newRequestContext(t, http.MethodPost, "/api/tasks",
		`{"title":"Write docs"}`, &callerIdentity)

	require.NoError(t, h.CreateTask(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "Task created successfully", env.Message)

	svc.AssertExpectations(t)
}

func TestTaskHandler_ListReportsCacheState(t *testing.T) {
	for _, tc := range []struct {
		name    string
		cached  bool
		message string
	}{
		{"fresh", false, "Tasks fetched successfully"},
		{"cached", true, "Tasks fetched successfully (cached)"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockTaskService)
			h := NewTaskHandler(svc, validation.New())

			svc.On("ListTasks", mock.Anything).Return(&service.TaskList{
				Tasks:          []model.Task{{ID: 1, Title: "x", Status: model.TaskStatusCompleted}},
				TotalTasks:     1,
				CompletedTasks: 1,
				Cached:         tc.cached,
				CacheTimestamp: time.Now().UTC(),
			}, nil)

			c, rec := newRequestContext(t, http.MethodGet, "/api/tasks", "", &callerIdentity)
			require.NoError(t, h.ListTasks(c))
			assert.Equal(t, http.StatusOK, rec.Code)

			env := decodeEnvelope(t, rec)
			assert.Equal(t, tc.message, env.Message)

			var data struct {
				Cached      bool `json:"cached"`
				TotalTasks  int  `json:"totalTasks"`
				RequestedBy struct {
					Email string `json:"email"`
					Role  string `json:"role"`
				} `json:"requestedBy"`
			}
			require.NoError(t, json.Unmarshal(env.Data, &data))
			assert.Equal(t, tc.cached, data.Cached)
			assert.Equal(t, 1, data.TotalTasks)
			assert.Equal(t, callerIdentity.Email, data.RequestedBy.Email)
			assert.Equal(t, callerIdentity.Role, data.RequestedBy.Role)
		})
	}
}

func TestTaskHandler_UpdateRequiresID(t *testing.T) {
	svc := new(MockTaskService)
	h := NewTaskHandler(svc, validation.New())

	c, rec := newRequestContext(t, http.MethodPut, "/api/tasks",
		`{"title":"renamed"}`, &callerIdentity)

	require.NoError(t, h.UpdateTask(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Missing task ID in query parameters", env.Message)
	svc.AssertNotCalled(t, "UpdateTask", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskHandler_DeleteByQueryID(t *testing.T) {
	svc := new(MockTaskService)
	h := NewTaskHandler(svc, validation.New())

	deleted := &model.Task{ID: 3, Title: "old", Deleted: true, DeletedBy: callerIdentity.Email}
	svc.On("DeleteTask", mock.Anything, callerIdentity, uint(3)).Return(deleted, nil)

	c, rec := newRequestContext(t, http.MethodDelete, "/api/tasks?id=3", "", &callerIdentity)
	require.NoError(t, h.DeleteTask(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Task deleted successfully", env.Message)

	svc.AssertExpectations(t)
}
