package update

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/project-manager/internal/models"
	projectservice "github.com/magabrotheeeer/project-manager/internal/services/project"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) UpdatePartial(ctx context.Context, id int64, req models.ProjectUpdatePartial) (*models.Project, error) {
	args := m.Called(ctx, id, req)
	if res := args.Get(0); res != nil {
		return res.(*models.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		id             string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "только is_finished",
			id:   "1",
			body: `{"is_finished":true}`,
			setupMock: func(m *MockService) {
				m.On("UpdatePartial", mock.Anything, int64(1), mock.MatchedBy(func(req models.ProjectUpdatePartial) bool {
					return req.Name == nil && req.Description == nil && req.IsFinished != nil && *req.IsFinished
				})).Return(&models.Project{ID: 1, Name: "Alpha", Description: "first", IsFinished: true}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id":1,"name":"Alpha","description":"first","is_finished":true}`,
		},
		{
			name:           "попытка сменить id",
			id:             "1",
			body:           `{"id":5,"name":"Renamed"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "слишком длинное имя",
			id:             "1",
			body:           `{"name":"` + strings.Repeat("a", 101) + `"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field name must be at most 100 characters long`,
		},
		{
			name:           "некорректный id",
			id:             "abc",
			body:           `{}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid id"}`,
		},
		{
			name: "проект не найден",
			id:   "42",
			body: `{"name":"Renamed"}`,
			setupMock: func(m *MockService) {
				m.On("UpdatePartial", mock.Anything, int64(42), mock.Anything).
					Return(nil, projectservice.ErrProjectNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"Project not found"}`,
		},
		{
			name: "ошибка сервиса",
			id:   "2",
			body: `{"description":"new description"}`,
			setupMock: func(m *MockService) {
				m.On("UpdatePartial", mock.Anything, int64(2), mock.Anything).
					Return(nil, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not update project"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPatch, "/project/"+tt.id, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
