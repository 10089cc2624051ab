// Package project содержит бизнес-логику для управления проектами и кешированием.
package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/project-manager/internal/lib/sl"
	"github.com/magabrotheeeer/project-manager/internal/models"
	"github.com/magabrotheeeer/project-manager/internal/storage"
)

// ErrProjectNotFound — проекта с запрошенным ID нет.
var ErrProjectNotFound = errors.New("project not found")

// ProjectRepository определяет методы для работы с проектами в хранилище.
type ProjectRepository interface {
	// CreateProject добавляет проект и возвращает его с ID.
	CreateProject(ctx context.Context, p models.Project) (*models.Project, error)
	// GetProject возвращает проект по ID или storage.ErrNotFound.
	GetProject(ctx context.Context, id int64) (*models.Project, error)
	// ListProjects возвращает все проекты.
	ListProjects(ctx context.Context) ([]*models.Project, error)
	// UpdateProject сохраняет изменяемые поля проекта.
	UpdateProject(ctx context.Context, p models.Project) (*models.Project, error)
	// DeleteProject удаляет проект по ID.
	DeleteProject(ctx context.Context, id int64) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service реализует бизнес-логику работы с проектами.
type Service struct {
	repo     ProjectRepository
	cache    Cache
	cacheTTL time.Duration
	log      *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo ProjectRepository, cache Cache, cacheTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

func cacheKey(id int64) string {
	return fmt.Sprintf("project:%d", id)
}

// Insert обрезает пробелы в name/description и сохраняет новый проект.
// ownerID проставляется, если запрос пришёл с проверенным токеном.
func (s *Service) Insert(ctx context.Context, req models.ProjectCreate, ownerID *int64) (*models.Project, error) {
	const op = "services.project.Insert"

	p := models.Project{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		UserID:      ownerID,
	}
	if req.IsFinished != nil {
		p.IsFinished = *req.IsFinished
	}

	created, err := s.repo.CreateProject(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new project", slog.Int64("id", created.ID))
	return created, nil
}

// SelectByID возвращает проект по ID, используя кеш или репозиторий.
func (s *Service) SelectByID(ctx context.Context, id int64) (*models.Project, error) {
	const op = "services.project.SelectByID"

	var cached models.Project
	found, err := s.cache.Get(ctx, cacheKey(id), &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	p, err := s.get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = s.cache.Set(ctx, cacheKey(id), p, s.cacheTTL); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	return p, nil
}

// SelectAll возвращает все проекты в порядке хранения.
func (s *Service) SelectAll(ctx context.Context) ([]*models.Project, error) {
	const op = "services.project.SelectAll"
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return projects, nil
}

// UpdatePartial меняет только поля, присутствующие в запросе, и возвращает
// сохранённую запись. ID и владельца проекта обновление не затрагивает.
func (s *Service) UpdatePartial(ctx context.Context, id int64, req models.ProjectUpdatePartial) (*models.Project, error) {
	const op = "services.project.UpdatePartial"

	p, err := s.get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req.Apply(p)
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)

	updated, err := s.repo.UpdateProject(ctx, *p)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err = ErrProjectNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, id)
	s.log.Info("updated project", slog.Int64("id", id))
	return updated, nil
}

// DeleteByID удаляет проект и инвалидирует кеш.
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	const op = "services.project.DeleteByID"

	if _, err := s.get(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.DeleteProject(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err = ErrProjectNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, id)
	s.log.Info("deleted project", slog.Int64("id", id))
	return nil
}

func (s *Service) get(ctx context.Context, id int64) (*models.Project, error) {
	p, err := s.repo.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Invalidate(ctx, cacheKey(id)); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey(id)), sl.Err(err))
	}
}
