// Package middlewarectx содержит HTTP middleware приложения: проверку
// access-токена, ограничение частоты запросов и сбор метрик.
//
// JWTMiddleware проверяет токен из заголовка Authorization и кладёт ID
// пользователя в контекст запроса. В строгом режиме запрос без валидного
// токена получает 401, иначе проходит дальше анонимно.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/project-manager/internal/http/response"
	"github.com/magabrotheeeer/project-manager/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserID — ключ для ID пользователя (int64) в контексте.
const UserID Key = "user_id"

// Service описывает интерфейс сервиса для валидации JWT токена.
type Service interface {
	ValidateToken(ctx context.Context, token string) (int64, error)
}

// UserIDFromContext возвращает ID пользователя, если запрос прошёл проверку токена.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserID).(int64)
	return id, ok
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
//
// При enforce=true отсутствующий или невалидный токен даёт 401 Unauthorized.
func JWTMiddleware(authService Service, log *slog.Logger, enforce bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				if !enforce {
					next.ServeHTTP(w, r)
					return
				}
				log.Error("missing or invalid authorization header")
				unauthorized(w, r, "Not authenticated")
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			userID, err := authService.ValidateToken(r.Context(), tokenStr)
			if err != nil {
				if !enforce {
					log.Warn("ignoring invalid token", sl.Err(err))
					next.ServeHTTP(w, r)
					return
				}
				log.Error("invalid or expired token", sl.Err(err))
				unauthorized(w, r, "Could not validate credentials")
				return
			}

			ctx := context.WithValue(r.Context(), UserID, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, response.Error(msg))
}
