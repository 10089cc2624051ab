// Package create реализует HTTP-обработчик для создания нового проекта.
//
// Handler принимает JSON с полями проекта, отклоняет неизвестные поля,
// валидирует данные и возвращает созданную запись со статусом 201.
// Если запрос прошёл проверку токена, проект привязывается к пользователю.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/project-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/project-manager/internal/http/response"
	"github.com/magabrotheeeer/project-manager/internal/lib/sl"
	"github.com/magabrotheeeer/project-manager/internal/models"
)

// Handler управляет HTTP-запросами на создание проектов.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики проектов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания проекта.
type Service interface {
	Insert(ctx context.Context, req models.ProjectCreate, ownerID *int64) (*models.Project, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: response.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Создать проект
// @Description Создает новый проект. is_finished по умолчанию false.
// @Tags Projects
// @Accept  json
// @Produce  json
// @Param request body models.ProjectCreate true "Данные нового проекта"
// @Success 201 {object} models.ProjectRead
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Нет валидного токена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /project [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.project.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.ProjectCreate
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	var ownerID *int64
	if id, ok := middlewarectx.UserIDFromContext(r.Context()); ok {
		ownerID = &id
	}

	project, err := h.service.Insert(r.Context(), req, ownerID)
	if err != nil {
		log.Error("failed to create project", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create project"))
		return
	}

	log.Info("project created", slog.Int64("id", project.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, models.NewProjectRead(project))
}
