// Package auth содержит логику входа: проверку учётных данных и выпуск access-токена.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/project-manager/internal/lib/jwt"
	"github.com/magabrotheeeer/project-manager/internal/lib/password"
	"github.com/magabrotheeeer/project-manager/internal/lib/sl"
	"github.com/magabrotheeeer/project-manager/internal/models"
	"github.com/magabrotheeeer/project-manager/internal/storage"
)

var (
	// ErrInvalidUser — пользователя с таким email нет.
	ErrInvalidUser = errors.New("invalid user")
	// ErrInvalidPassword — пароль не совпал с сохранённым хэшем.
	ErrInvalidPassword = errors.New("invalid password")
)

// UserRepository описывает контракт для поиска пользователей.
type UserRepository interface {
	// GetUserByEmail возвращает пользователя или storage.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService отвечает за проверку учётных данных и работу с JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// VerifyUserAndPassword ищет пользователя по email (после обрезки пробелов,
// с учётом регистра) и сверяет обрезанный пароль с сохранённым хэшем.
func (s *AuthService) VerifyUserAndPassword(ctx context.Context, email, rawPassword string) (*models.User, error) {
	const op = "services.auth.VerifyUserAndPassword"

	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidUser)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = password.CompareHash(user.HashedPassword, strings.TrimSpace(rawPassword)); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			// сохранённое значение не похоже на bcrypt-хэш
			s.log.Warn("stored password is not a valid hash",
				slog.Int64("user_id", user.ID), sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidPassword)
	}
	return user, nil
}

// CreateToken выпускает access-токен для пользователя.
func (s *AuthService) CreateToken(user *models.User) (models.TokenRead, error) {
	const op = "services.auth.CreateToken"
	token, err := s.jwtMaker.GenerateToken(user.ID, user.Email)
	if err != nil {
		return models.TokenRead{}, fmt.Errorf("%s: %w", op, err)
	}
	return models.NewTokenRead(token, s.jwtMaker.TTL()), nil
}

// Login проверяет учётные данные и возвращает токен.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (models.TokenRead, error) {
	user, err := s.VerifyUserAndPassword(ctx, email, rawPassword)
	if err != nil {
		return models.TokenRead{}, err
	}
	tok, err := s.CreateToken(user)
	if err != nil {
		return models.TokenRead{}, err
	}
	s.log.Info("user logged in", slog.Int64("user_id", user.ID))
	return tok, nil
}

// ValidateToken проверяет access-токен и возвращает ID пользователя.
func (s *AuthService) ValidateToken(_ context.Context, token string) (int64, error) {
	const op = "services.auth.ValidateToken"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	userID, err := claims.UserID()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return userID, nil
}
