// Package user содержит логику регистрации пользователей.
package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/project-manager/internal/lib/password"
	"github.com/magabrotheeeer/project-manager/internal/models"
)

// UserRepository описывает контракт для сохранения пользователей.
type UserRepository interface {
	// CreateUser сохраняет пользователя; занятый email даёт storage.ErrUserExists.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
}

// Service регистрирует пользователей.
type Service struct {
	users            UserRepository
	storeRawPassword bool
	log              *slog.Logger
}

// NewService создает сервис регистрации.
//
// storeRawPassword=true сохраняет пароль без хеширования; такой пользователь
// не сможет войти, флаг оставлен для совместимости со старыми данными.
func NewService(users UserRepository, storeRawPassword bool, log *slog.Logger) *Service {
	return &Service{
		users:            users,
		storeRawPassword: storeRawPassword,
		log:              log,
	}
}

// Insert обрезает пробелы в имени, фамилии, email и пароле и сохраняет пользователя.
func (s *Service) Insert(ctx context.Context, req models.UserCreate) (*models.User, error) {
	const op = "services.user.Insert"

	secret := strings.TrimSpace(req.Password)
	if !s.storeRawPassword {
		hashed, err := password.GetHash(secret)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		secret = hashed
	}

	user, err := s.users.CreateUser(ctx, models.User{
		Name:           strings.TrimSpace(req.Name),
		Surname:        strings.TrimSpace(req.Surname),
		Email:          strings.TrimSpace(req.Email),
		HashedPassword: secret,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user registered", slog.Int64("user_id", user.ID))
	return user, nil
}
