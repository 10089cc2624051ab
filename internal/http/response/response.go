// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков: ошибок, сообщений валидации
// и коротких текстовых сообщений.
package response

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator"
)

// ErrorResponse описывает JSON‑ответ с ошибкой.
// Поле Status всегда "Error", поле Error содержит текст ошибки.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

// MessageResponse — ответ с единственным текстовым сообщением.
type MessageResponse struct {
	Message string `json:"message" example:"Project deleted"`
}

// StatusResponse — ответ проверки состояния сервиса.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "ok"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// Message возвращает MessageResponse.
func Message(msg string) MessageResponse {
	return MessageResponse{Message: msg}
}

// OK возвращает StatusResponse для успешной проверки.
func OK() StatusResponse {
	return StatusResponse{Status: StatusOK}
}

// NewValidator возвращает валидатор, который называет поля по их json-тегам.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidationError формирует ErrorResponse на основе ошибок валидации.
// Каждое нарушение превращается в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		field := err.Field()
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", field))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at least %s characters long", field, err.Param()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at most %s characters long", field, err.Param()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email address", field))
		case "eqfield":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must match %s", field, strings.ToLower(err.Param())))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", field))
		}
	}
	return Error(strings.Join(errsMsgs, ", "))
}
