package models

// ============================================================
// Settings
// ============================================================

const (
	DefaultCanvasWidth   = 1000
	DefaultCanvasHeight  = 700
	DefaultGridSize      = 20
	DefaultUnitsPerCell  = 3
	DefaultHistoryLimit  = 200
	DefaultLabelText     = "Room Name"
	DefaultLabelFontSize = 16
	AreaLabelFontSize    = 14
	DoorThickness        = 10
	AreaUnit             = "sq ft"
	LengthUnit           = "ft"
)

// Settings описывает холст и сетку одного редактора.
type Settings struct {
	CanvasWidth  float64
	CanvasHeight float64
	GridSize     float64
	UnitsPerCell float64
	SnapToGrid   bool
	ShowGrid     bool
	// KeepDegenerate keeps click-without-drag commits as zero-extent objects.
	KeepDegenerate bool
	HistoryLimit   int
}

func DefaultSettings() Settings {
	return Settings{
		CanvasWidth:  DefaultCanvasWidth,
		CanvasHeight: DefaultCanvasHeight,
		GridSize:     DefaultGridSize,
		UnitsPerCell: DefaultUnitsPerCell,
		SnapToGrid:   true,
		ShowGrid:     true,
		HistoryLimit: DefaultHistoryLimit,
	}
}

// Normalize подставляет значения по умолчанию вместо невалидных.
func (s Settings) Normalize() Settings {
	if s.CanvasWidth <= 0 {
		s.CanvasWidth = DefaultCanvasWidth
	}
	if s.CanvasHeight <= 0 {
		s.CanvasHeight = DefaultCanvasHeight
	}
	if s.GridSize <= 0 {
		s.GridSize = DefaultGridSize
	}
	if s.UnitsPerCell <= 0 {
		s.UnitsPerCell = DefaultUnitsPerCell
	}
	if s.HistoryLimit < 0 {
		s.HistoryLimit = 0
	}
	return s
}

// ============================================================
// Default styles
// ============================================================

func DefaultStyle(kind Kind) Style {
	switch kind {
	case KindWall:
		return Style{Stroke: "#000000", StrokeWidth: 6}
	case KindRoom:
		return Style{Stroke: "#0066cc", Fill: "rgba(200, 220, 240, 0.5)", StrokeWidth: 2}
	case KindDoor:
		return Style{Stroke: "#654321", Fill: "#8B4513", StrokeWidth: 2}
	case KindWindow:
		return Style{Stroke: "#4682B4", Fill: "#87CEEB", StrokeWidth: 2}
	case KindLabel:
		return Style{Fill: "#000000", FontSize: DefaultLabelFontSize}
	case KindGrid:
		return Style{Stroke: "#e0e0e0", StrokeWidth: 1}
	}
	return Style{}
}

func AreaLabelStyle() Style {
	return Style{Fill: "#0066cc", FontSize: AreaLabelFontSize}
}
