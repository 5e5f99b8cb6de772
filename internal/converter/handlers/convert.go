package handlers

import (
	"bytes"
	"io"
	"net/http"

	"floorplanner/internal/converter/mapper"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
)

// ============================================================
// Convert Handler
// ============================================================

type ConverterHandler struct {
	log zerolog.Logger
}

func NewConverterHandler(logger zerolog.Logger) *ConverterHandler {
	return &ConverterHandler{log: logger.With().Str("component", "converter").Logger()}
}

// ConvertSVG конвертирует SVG в документ плана
func (h *ConverterHandler) ConvertSVG(c fiber.Ctx) error {
	h.log.Debug().
		Str("content_type", c.Get("Content-Type")).
		Int("content_length", len(c.Body())).
		Msg("convert request")

	// Получаем файл из multipart/form-data
	file, err := c.FormFile("file")
	if err != nil {
		h.log.Warn().Err(err).Msg("form file")
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "file required in multipart/form-data",
		})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to open file",
		})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read file",
		})
	}

	doc, err := mapper.New().Convert(bytes.NewReader(data))
	if err != nil {
		h.log.Warn().Err(err).Str("file", file.Filename).Msg("conversion failed")
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.log.Info().Str("file", file.Filename).Int("objects", len(doc.Objects)).Msg("svg converted")
	return c.JSON(doc)
}
