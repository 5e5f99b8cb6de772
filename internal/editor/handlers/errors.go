package handlers

import (
	"errors"
	"net/http"

	"floorplanner/internal/editor"
	"floorplanner/internal/editor/document"
	"floorplanner/internal/editor/gesture"
	"floorplanner/internal/editor/repository"
	"floorplanner/internal/editor/scene"
	"floorplanner/internal/editor/selection"
	"floorplanner/internal/editor/session"
	"floorplanner/internal/editor/storage"

	"github.com/gofiber/fiber/v3"
)

var ErrConverter = errors.New("converter failed")

var notFound = []error{
	session.ErrNotFound,
	repository.ErrNotFound,
	scene.ErrNotFound,
}

var badRequest = []error{
	document.ErrMalformed,
	document.ErrUnsupportedVersion,
	document.ErrUnknownTemplate,
	editor.ErrUnknownCommand,
	gesture.ErrUnknownMode,
	scene.ErrDuplicateID,
	scene.ErrKindMismatch,
	scene.ErrInvalidObject,
	selection.ErrNotEditable,
	storage.ErrInvalidPlanID,
}

// statusOf сопоставляет ошибку домена с HTTP статусом.
func statusOf(err error) int {
	for _, target := range notFound {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	if errors.Is(err, ErrConverter) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (h *EditorHandler) fail(c fiber.Ctx, err error) error {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
