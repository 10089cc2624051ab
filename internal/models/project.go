package models

// Project представляет собой основную модель проекта,
// используемую в бизнес-логике и хранилище.
// UserID может быть nil: владелец проставляется только для запросов с проверенным токеном.
type Project struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsFinished  bool   `json:"is_finished"`
	UserID      *int64 `json:"user_id,omitempty"`
}

// ProjectCreate — тело запроса на создание проекта.
type ProjectCreate struct {
	Name        string `json:"name" validate:"required,min=3,max=100" example:"My First Project"`
	Description string `json:"description" validate:"required,min=3,max=1000" example:"This is my first project"`
	IsFinished  *bool  `json:"is_finished,omitempty"`
}

// ProjectUpdatePartial — тело запроса на частичное обновление.
// Поле, равное nil, в запросе отсутствовало и не меняет сохранённое значение.
type ProjectUpdatePartial struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=3,max=100" example:"My first project"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=3,max=1000" example:"This is my first project"`
	IsFinished  *bool   `json:"is_finished,omitempty" example:"true"`
}

// Apply переносит в проект только присутствующие поля обновления.
// Идентификатор и владелец проекта через обновление не меняются.
func (u ProjectUpdatePartial) Apply(p *Project) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.IsFinished != nil {
		p.IsFinished = *u.IsFinished
	}
}

// ProjectRead — представление проекта в ответе.
type ProjectRead struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsFinished  bool   `json:"is_finished"`
}

// NewProjectRead строит ProjectRead из сохранённого проекта.
func NewProjectRead(p *Project) ProjectRead {
	return ProjectRead{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		IsFinished:  p.IsFinished,
	}
}

// NewProjectReadList строит список ProjectRead; для пустого входа возвращает пустой, а не nil, срез.
func NewProjectReadList(projects []*Project) []ProjectRead {
	res := make([]ProjectRead, 0, len(projects))
	for _, p := range projects {
		res = append(res, NewProjectRead(p))
	}
	return res
}
