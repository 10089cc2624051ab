// Package home отдаёт приветствие на корневом маршруте.
package home

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/project-manager/internal/http/response"
)

// ServeHTTP godoc
// @Summary Приветствие
// @Tags Root
// @Produce  json
// @Success 200 {object} response.MessageResponse
// @Router / [get]
func ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.Message("Hello World"))
}
