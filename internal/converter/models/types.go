package models

import (
	plan "floorplanner/internal/editor/models"
)

// ============================================================
// SVG Elements
// ============================================================

type ElementType string

const (
	TypeWall   ElementType = "wall"
	TypeRoom   ElementType = "room"
	TypeDoor   ElementType = "door"
	TypeWindow ElementType = "window"
	TypeLabel  ElementType = "label"
)

// Paint: атрибуты оформления, прочитанные из svg.
type Paint struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	FontSize    float64
}

type SVGElement struct {
	ID       string
	Type     ElementType
	Title    string
	Paint    Paint
	Geometry Geometry
}

// Geometry is one of RectGeometry, PathGeometry, LineGeometry or TextGeometry.
type Geometry interface {
	isGeometry()
}

type RectGeometry struct {
	plan.Rect
}

type PathGeometry struct {
	D string
}

type LineGeometry struct {
	plan.Segment
}

type TextGeometry struct {
	Position plan.Point
	Text     string
	// Centered is set for text-anchor="middle".
	Centered bool
}

func (RectGeometry) isGeometry() {}
func (PathGeometry) isGeometry() {}
func (LineGeometry) isGeometry() {}
func (TextGeometry) isGeometry() {}

// Canvas is the drawing size declared by the svg root.
type Canvas struct {
	Width  float64
	Height float64
}

// Drawing is the parsed content of one svg file.
type Drawing struct {
	Canvas   Canvas
	Elements []SVGElement
}
