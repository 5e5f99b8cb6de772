package scene

import (
	"fmt"

	"floorplanner/internal/editor/models"
)

// ============================================================
// Grid
// ============================================================

// RegenerateGrid перестраивает линии сетки по размеру холста и шагу сетки.
// Grid lines always sit below the content.
func (s *Scene) RegenerateGrid() {
	content := s.objects[:0]
	for _, obj := range s.objects {
		if obj.Kind != models.KindGrid {
			content = append(content, obj)
		}
	}

	lines := GridLines(s.settings.CanvasWidth, s.settings.CanvasHeight, s.settings.GridSize)
	s.objects = append(lines, content...)
}

// SetGridVisible включает или выключает линии сетки.
func (s *Scene) SetGridVisible(visible bool) {
	s.settings.ShowGrid = visible
	if visible {
		s.RegenerateGrid()
		return
	}
	kept := s.objects[:0]
	for _, obj := range s.objects {
		if obj.Kind != models.KindGrid {
			kept = append(kept, obj)
		}
	}
	s.objects = kept
}

// SetCanvas меняет размер холста и шаг сетки; площади комнат пересчитываются.
func (s *Scene) SetCanvas(width, height, gridSize float64) {
	s.settings.CanvasWidth = width
	s.settings.CanvasHeight = height
	s.settings.GridSize = gridSize
	s.settings = s.settings.Normalize()
	if s.settings.ShowGrid {
		s.RegenerateGrid()
	}
	for i := range s.objects {
		if s.objects[i].Kind == models.KindRoom {
			s.refreshDerived(i)
		}
	}
}

// GridLines строит вертикальные и горизонтальные линии сетки.
func GridLines(width, height, gridSize float64) []models.Object {
	if gridSize <= 0 || width <= 0 || height <= 0 {
		return nil
	}
	style := models.DefaultStyle(models.KindGrid)

	var lines []models.Object
	for i := 0; float64(i) < width/gridSize; i++ {
		x := float64(i) * gridSize
		lines = append(lines, models.Object{
			ID:   fmt.Sprintf("grid-v%d", i),
			Kind: models.KindGrid,
			Geometry: models.GridGeometry{Segment: models.Segment{
				A: models.Point{X: x, Y: 0},
				B: models.Point{X: x, Y: height},
			}},
			Style: style,
		})
	}
	for i := 0; float64(i) < height/gridSize; i++ {
		y := float64(i) * gridSize
		lines = append(lines, models.Object{
			ID:   fmt.Sprintf("grid-h%d", i),
			Kind: models.KindGrid,
			Geometry: models.GridGeometry{Segment: models.Segment{
				A: models.Point{X: 0, Y: y},
				B: models.Point{X: width, Y: y},
			}},
			Style: style,
		})
	}
	return lines
}
