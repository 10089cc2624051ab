// Package projectmanager собирает HTTP-приложение: маршруты, middleware и сервисы.
package projectmanager

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/project-manager/internal/config"
	"github.com/magabrotheeeer/project-manager/internal/http/handlers/auth/token"
	"github.com/magabrotheeeer/project-manager/internal/http/handlers/health"
	"github.com/magabrotheeeer/project-manager/internal/http/handlers/home"
	"github.com/magabrotheeeer/project-manager/internal/http/handlers/project/create"
	"github.com/magabrotheeeer/project-manager/internal/http/handlers/project/list"
	"github.com/magabrotheeeer/project-manager/internal/http/handlers/project/read"
	"github.com/magabrotheeeer/project-manager/internal/http/handlers/project/remove"
	"github.com/magabrotheeeer/project-manager/internal/http/handlers/project/update"
	"github.com/magabrotheeeer/project-manager/internal/http/handlers/user/register"
	"github.com/magabrotheeeer/project-manager/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/project-manager/internal/services/auth"
	projectservice "github.com/magabrotheeeer/project-manager/internal/services/project"
	userservice "github.com/magabrotheeeer/project-manager/internal/services/user"
)

// Services — зависимости обработчиков.
type Services struct {
	Auth     *authservice.AuthService
	Users    *userservice.Service
	Projects *projectservice.Service
	Storage  health.Pinger
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, svc Services, metrics *middlewarectx.Metrics) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.StripSlashes,
		metrics.Middleware,
	)

	r.Get("/", home.ServeHTTP)
	r.Get("/health", health.New(logger, svc.Storage).ServeHTTP)

	r.Post("/user", register.New(logger, svc.Users).ServeHTTP)

	r.With(middlewarectx.RateLimitMiddleware(logger, cfg.RateLimit, cfg.RateBurst)).
		Post("/auth/token", token.New(logger, svc.Auth).ServeHTTP)

	r.Route("/project", func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(svc.Auth, logger, cfg.EnforceOnProjects))
		r.Post("/", create.New(logger, svc.Projects).ServeHTTP)
		r.Get("/", list.New(logger, svc.Projects).ServeHTTP)
		r.Get("/{id}", read.New(logger, svc.Projects).ServeHTTP)
		r.Patch("/{id}", update.New(logger, svc.Projects).ServeHTTP)
		r.Delete("/{id}", remove.New(logger, svc.Projects).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
