// Package models содержит доменные модели пользователя и проекта,
// а также структуры запросов и ответов, которыми обмениваются HTTP-обработчики.
// Ограничения на длину полей описаны тегами validate и проверяются на границе,
// хранилище их не дублирует.
package models

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID             int64  // Уникальный идентификатор пользователя
	Name           string // Имя
	Surname        string // Фамилия
	Email          string // Электронная почта (уникальная)
	HashedPassword string // Хэш пароля пользователя
}

// UserCreate используется для приёма данных регистрации из JSON-запроса.
type UserCreate struct {
	Name                 string `json:"name" validate:"required,min=3,max=100" example:"Your name"`
	Surname              string `json:"surname" validate:"required,min=3,max=100" example:"Your surname"`
	Email                string `json:"email" validate:"required,min=3,max=100,email" example:"email@example.com"`
	Password             string `json:"password" validate:"required,min=3,max=100" example:"MyPassword123"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password" example:"MyPassword123"`
}

// UserRead — представление пользователя в ответе, без пароля.
type UserRead struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
}

// NewUserRead строит UserRead из сохранённого пользователя.
func NewUserRead(u *User) UserRead {
	return UserRead{
		ID:      u.ID,
		Name:    u.Name,
		Surname: u.Surname,
		Email:   u.Email,
	}
}
