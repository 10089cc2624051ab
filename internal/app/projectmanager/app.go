package projectmanager

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi"
	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/project-manager/internal/cache"
	"github.com/magabrotheeeer/project-manager/internal/config"
	"github.com/magabrotheeeer/project-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/project-manager/internal/lib/jwt"
	"github.com/magabrotheeeer/project-manager/internal/lib/sl"
	"github.com/magabrotheeeer/project-manager/internal/migrations"
	authservice "github.com/magabrotheeeer/project-manager/internal/services/auth"
	projectservice "github.com/magabrotheeeer/project-manager/internal/services/project"
	userservice "github.com/magabrotheeeer/project-manager/internal/services/user"
	"github.com/magabrotheeeer/project-manager/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// подставляются вместо "*" в списке разрешённых заголовков
var defaultAllowedHeaders = []string{
	"Accept", "Accept-Language", "Authorization", "Content-Language", "Content-Type", "Origin", "X-Requested-With",
}

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if err := migrations.Run(cfg.StorageConnectionString); err != nil {
		return nil, err
	}
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}

	var (
		projectCache projectservice.Cache = cache.Noop{}
		redisCache   *cache.Cache
	)
	if cfg.AddressRedis != "" {
		redisCache, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		projectCache = redisCache
		logger.Info("project cache enabled", slog.String("address", cfg.AddressRedis))
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL())
	svc := Services{
		Auth:     authservice.NewAuthService(db, jwtMaker, logger),
		Users:    userservice.NewService(db, cfg.StoreRawPassword, logger),
		Projects: projectservice.NewService(db, projectCache, cfg.CacheTTL, logger),
		Storage:  db,
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, svc, middlewarectx.NewMetrics(prometheus.DefaultRegisterer))

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      withCORS(cfg.CORS)(router),
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  redisCache,
	}, nil
}

func withCORS(cfg config.CORS) func(http.Handler) http.Handler {
	headers := cfg.AllowedHeaders
	if slices.Contains(headers, "*") {
		headers = defaultAllowedHeaders
	}
	opts := []handlers.CORSOption{
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods(cfg.AllowedMethods),
		handlers.AllowedHeaders(headers),
		handlers.MaxAge(cfg.MaxAge),
	}
	if cfg.AllowCredentials {
		opts = append(opts, handlers.AllowCredentials())
	}
	return handlers.CORS(opts...)
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close cache", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
}
