package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/project-manager/internal/lib/jwt"
	"github.com/magabrotheeeer/project-manager/internal/lib/password"
	"github.com/magabrotheeeer/project-manager/internal/lib/sl"
	"github.com/magabrotheeeer/project-manager/internal/models"
	"github.com/magabrotheeeer/project-manager/internal/storage"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newService(t *testing.T, repo *UserRepoMock) (*AuthService, *jwt.MakerImpl) {
	t.Helper()
	maker := jwt.NewJWTMaker("test_secret", 10*time.Minute)
	return NewAuthService(repo, maker, sl.Discard()), maker
}

func TestAuthService_VerifyUserAndPassword(t *testing.T) {
	hash, err := password.GetHash("secret")
	require.NoError(t, err)
	stored := &models.User{ID: 5, Name: "John", Surname: "Smith", Email: "john@example.com", HashedPassword: hash}

	tests := []struct {
		name      string
		email     string
		password  string
		setupMock func(r *UserRepoMock)
		wantErr   error
	}{
		{
			name:     "valid credentials with surrounding spaces",
			email:    "  john@example.com ",
			password: " secret ",
			setupMock: func(r *UserRepoMock) {
				r.On("GetUserByEmail", mock.Anything, "john@example.com").Return(stored, nil).Once()
			},
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "secret",
			setupMock: func(r *UserRepoMock) {
				r.On("GetUserByEmail", mock.Anything, "nobody@example.com").
					Return(nil, storage.ErrNotFound).Once()
			},
			wantErr: ErrInvalidUser,
		},
		{
			name:     "wrong password",
			email:    "john@example.com",
			password: "wrong",
			setupMock: func(r *UserRepoMock) {
				r.On("GetUserByEmail", mock.Anything, "john@example.com").Return(stored, nil).Once()
			},
			wantErr: ErrInvalidPassword,
		},
		{
			name:     "stored raw password is rejected",
			email:    "raw@example.com",
			password: "secret",
			setupMock: func(r *UserRepoMock) {
				r.On("GetUserByEmail", mock.Anything, "raw@example.com").
					Return(&models.User{ID: 6, Email: "raw@example.com", HashedPassword: "secret"}, nil).Once()
			},
			wantErr: ErrInvalidPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMock(repo)
			svc, _ := newService(t, repo)

			user, err := svc.VerifyUserAndPassword(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, stored, user)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_VerifyUserAndPassword_RepoError(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("GetUserByEmail", mock.Anything, "a@b.com").Return(nil, errors.New("db down")).Once()
	svc, _ := newService(t, repo)

	_, err := svc.VerifyUserAndPassword(context.Background(), "a@b.com", "pass")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidUser)
	assert.NotErrorIs(t, err, ErrInvalidPassword)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.GetHash("secret")
	require.NoError(t, err)
	repo := new(UserRepoMock)
	repo.On("GetUserByEmail", mock.Anything, "john@example.com").
		Return(&models.User{ID: 5, Email: "john@example.com", HashedPassword: hash}, nil).Once()
	svc, maker := newService(t, repo)

	tok, err := svc.Login(context.Background(), "john@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, 600, tok.ExpiresIn)
	assert.Equal(t, "Bearer", tok.TokenType)

	claims, err := maker.ParseToken(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "5", claims.Subject)
	assert.Equal(t, "john@example.com", claims.Email)

	userID, err := svc.ValidateToken(context.Background(), tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(5), userID)
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	svc, _ := newService(t, new(UserRepoMock))

	_, err := svc.ValidateToken(context.Background(), "garbage")
	assert.Error(t, err)

	other := jwt.NewJWTMaker("other_secret", time.Minute)
	foreign, err := other.GenerateToken(1, "a@b.com")
	require.NoError(t, err)
	_, err = svc.ValidateToken(context.Background(), foreign)
	assert.Error(t, err)
}
