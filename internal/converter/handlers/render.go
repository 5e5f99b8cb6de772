package handlers

import (
	"net/http"

	"floorplanner/internal/converter/mapper"
	"floorplanner/internal/editor/document"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Render Handler
// ============================================================

// RenderSVG конвертирует документ плана обратно в SVG
func (h *ConverterHandler) RenderSVG(c fiber.Ctx) error {
	doc, err := h.decode(c)
	if err != nil {
		return err
	}

	svg, err := mapper.NewRenderer(c.Query("grid") == "true").Render(doc)
	if err != nil {
		h.log.Warn().Err(err).Msg("render failed")
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}

// RasterPNG рисует документ плана в PNG.
func (h *ConverterHandler) RasterPNG(c fiber.Ctx) error {
	doc, err := h.decode(c)
	if err != nil {
		return err
	}

	png, err := mapper.NewRenderer(c.Query("grid") == "true").Raster(doc)
	if err != nil {
		h.log.Warn().Err(err).Msg("raster failed")
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}

// decode возвращает fiber.Error с кодом 400 для пустого или битого тела.
func (h *ConverterHandler) decode(c fiber.Ctx) (*document.Document, error) {
	if len(c.Body()) == 0 {
		return nil, fiber.NewError(http.StatusBadRequest, "body required")
	}
	doc, err := document.Unmarshal(c.Body())
	if err != nil {
		h.log.Warn().Err(err).Msg("decode document")
		return nil, fiber.NewError(http.StatusBadRequest, "invalid JSON payload")
	}
	return &doc, nil
}
