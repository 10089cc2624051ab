package middlewarectx_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/project-manager/internal/http/middlewarectx"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		enforce        bool
		authHeader     string
		mockID         int64
		mockErr        error
		callsService   bool
		wantStatusCode int
		wantCalled     bool
		wantUserID     int64
		wantUser       bool
	}{
		{
			name:           "strict: missing header",
			enforce:        true,
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "strict: wrong scheme",
			enforce:        true,
			authHeader:     "Basic sometoken",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "strict: invalid token",
			enforce:        true,
			authHeader:     "Bearer bad",
			mockErr:        errors.New("token is expired"),
			callsService:   true,
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "strict: valid token",
			enforce:        true,
			authHeader:     "Bearer good",
			mockID:         7,
			callsService:   true,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
			wantUserID:     7,
			wantUser:       true,
		},
		{
			name:           "lenient: missing header passes anonymously",
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
		{
			name:           "lenient: invalid token passes anonymously",
			authHeader:     "Bearer bad",
			mockErr:        errors.New("signature is invalid"),
			callsService:   true,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
		{
			name:           "lenient: valid token sets user",
			authHeader:     "Bearer good",
			mockID:         3,
			callsService:   true,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
			wantUserID:     3,
			wantUser:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			if tt.callsService {
				authMock.On("ValidateToken", mock.Anything, tt.authHeader[len("Bearer "):]).
					Return(tt.mockID, tt.mockErr).Once()
			}

			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				id, ok := middlewarectx.UserIDFromContext(r.Context())
				assert.Equal(t, tt.wantUser, ok)
				assert.Equal(t, tt.wantUserID, id)
				w.WriteHeader(http.StatusOK)
			})
			h := middlewarectx.JWTMiddleware(authMock, newNoopLogger(), tt.enforce)(next)

			req := httptest.NewRequest(http.MethodGet, "/project", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			if tt.wantStatusCode == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			}
			authMock.AssertExpectations(t)
		})
	}
}
