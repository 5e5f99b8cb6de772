package geometry

import (
	"math"

	"floorplanner/internal/editor/models"
)

// ============================================================
// Snapping
// ============================================================

// SnapValue округляет координату до ближайшего кратного gridSize.
func SnapValue(v, gridSize float64) float64 {
	if gridSize <= 0 {
		return v
	}
	return math.Round(v/gridSize) * gridSize
}

// Snap выравнивает точку по сетке, каждую ось независимо.
func Snap(p models.Point, gridSize float64) models.Point {
	return models.Point{X: SnapValue(p.X, gridSize), Y: SnapValue(p.Y, gridSize)}
}

// SnapIf применяет Snap только при включённой привязке.
func SnapIf(p models.Point, gridSize float64, enabled bool) models.Point {
	if !enabled {
		return p
	}
	return Snap(p, gridSize)
}

// ============================================================
// Units
// ============================================================

// LengthInUnits переводит длину на холсте в реальные единицы.
// One grid cell is unitsPerCell linear units.
func LengthInUnits(pixelLength, gridSize, unitsPerCell float64) float64 {
	if gridSize <= 0 {
		return 0
	}
	return pixelLength / gridSize * unitsPerCell
}

// RoundUnits округляет длину до целых единиц.
func RoundUnits(v float64) int {
	return int(math.Round(v))
}

// Area вычисляет площадь, округлённую до целой единицы.
func Area(widthUnits, heightUnits float64) int {
	return int(math.Round(math.Abs(widthUnits * heightUnits)))
}

// RectArea вычисляет площадь прямоугольника холста в квадратных единицах.
func RectArea(r models.Rect, gridSize, unitsPerCell float64) int {
	return Area(
		LengthInUnits(r.Width, gridSize, unitsPerCell),
		LengthInUnits(r.Height, gridSize, unitsPerCell),
	)
}

// ============================================================
// Shapes
// ============================================================

// BoundingRect возвращает прямоугольник по двум противоположным углам,
// в любом направлении перетаскивания.
func BoundingRect(a, b models.Point) models.Rect {
	return models.Rect{
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(b.X - a.X),
		Height: math.Abs(b.Y - a.Y),
	}
}

func Distance(p1, p2 models.Point) float64 {
	dx := p1.X - p2.X
	dy := p1.Y - p2.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func SegmentLength(s models.Segment) float64 {
	return Distance(s.A, s.B)
}

// PointToSegmentDistance возвращает расстояние от точки до отрезка.
func PointToSegmentDistance(p models.Point, s models.Segment) float64 {
	dx := s.B.X - s.A.X
	dy := s.B.Y - s.A.Y
	lenSq := dx*dx + dy*dy

	if lenSq == 0 {
		return Distance(p, s.A)
	}

	// Проекция точки на отрезок
	t := ((p.X-s.A.X)*dx + (p.Y-s.A.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))

	proj := models.Point{X: s.A.X + t*dx, Y: s.A.Y + t*dy}
	return Distance(p, proj)
}

func TranslateSegment(s models.Segment, d models.Point) models.Segment {
	return models.Segment{A: s.A.Add(d), B: s.B.Add(d)}
}

func TranslateRect(r models.Rect, d models.Point) models.Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// DoorSill возвращает линию порога, проходящую посередине толщины двери.
func DoorSill(r models.Rect) models.Segment {
	y := r.Y + r.Height/2
	return models.Segment{
		A: models.Point{X: r.X, Y: y},
		B: models.Point{X: r.X + r.Width, Y: y},
	}
}
