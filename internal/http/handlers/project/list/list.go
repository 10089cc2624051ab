// Package list реализует HTTP-обработчик для получения всех проектов.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/project-manager/internal/http/response"
	"github.com/magabrotheeeer/project-manager/internal/lib/sl"
	"github.com/magabrotheeeer/project-manager/internal/models"
)

// Handler обрабатывает запросы на получение списка проектов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения списка проектов.
type Service interface {
	SelectAll(ctx context.Context) ([]*models.Project, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список проектов
// @Tags Projects
// @Produce  json
// @Success 200 {array} models.ProjectRead
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /project [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.project.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	projects, err := h.service.SelectAll(r.Context())
	if err != nil {
		log.Error("failed to list projects", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list projects"))
		return
	}

	log.Info("success to list projects", slog.Int("count", len(projects)))
	render.JSON(w, r, models.NewProjectReadList(projects))
}
