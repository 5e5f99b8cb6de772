package mapper

import (
	"fmt"

	"floorplanner/internal/editor/document"
	"floorplanner/internal/editor/export"
	plan "floorplanner/internal/editor/models"
	"floorplanner/internal/editor/scene"
)

// ============================================================
// Renderer
// ============================================================

// Renderer рисует документ плана без живой сессии редактора.
type Renderer struct {
	settings plan.Settings
	raster   *export.Rasterizer
}

// NewRenderer рендерит с настройками по умолчанию; showGrid управляет сеткой.
func NewRenderer(showGrid bool) *Renderer {
	settings := plan.DefaultSettings()
	settings.ShowGrid = showGrid
	return &Renderer{settings: settings, raster: export.NewRasterizer()}
}

// Render собирает SVG из документа плана.
func (r *Renderer) Render(doc *document.Document) (string, error) {
	sc, err := r.scene(doc)
	if err != nil {
		return "", err
	}
	return export.SVG(sc), nil
}

// Raster возвращает PNG документа плана.
func (r *Renderer) Raster(doc *document.Document) ([]byte, error) {
	sc, err := r.scene(doc)
	if err != nil {
		return nil, err
	}
	return r.raster.Raster(sc)
}

func (r *Renderer) scene(doc *document.Document) (*scene.Scene, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", document.ErrMalformed)
	}
	return document.Deserialize(*doc, r.settings)
}
