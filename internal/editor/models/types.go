package models

// ============================================================
// Kinds
// ============================================================

type Kind string

const (
	KindWall   Kind = "wall"
	KindRoom   Kind = "room"
	KindDoor   Kind = "door"
	KindWindow Kind = "window"
	KindLabel  Kind = "label"
	KindGrid   Kind = "grid"
)

// Valid сообщает, известен ли вид объекта.
func (k Kind) Valid() bool {
	switch k {
	case KindWall, KindRoom, KindDoor, KindWindow, KindLabel, KindGrid:
		return true
	}
	return false
}

// ============================================================
// Geometry primitives
// ============================================================

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add сдвигает точку на вектор d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub возвращает вектор p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

type Segment struct {
	A Point `json:"a"`
	B Point `json:"b"`
}

type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center возвращает центр прямоугольника.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains проверяет попадание точки (границы включительно).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// ============================================================
// Geometry payloads (closed set)
// ============================================================

// Geometry is implemented only by the payload types below.
type Geometry interface {
	isGeometry()
}

// WallGeometry is a line segment between two endpoints.
type WallGeometry struct {
	Segment
}

// RectGeometry backs rooms and windows.
type RectGeometry struct {
	Rect
}

// DoorGeometry is a thin rectangle plus the sill line drawn through it.
type DoorGeometry struct {
	Rect Rect    `json:"rect"`
	Sill Segment `json:"sill"`
}

// LabelGeometry is a text anchored at its top-left position.
type LabelGeometry struct {
	Position Point  `json:"position"`
	Text     string `json:"text"`
}

// GridGeometry is a single non-interactive grid line.
type GridGeometry struct {
	Segment
}

func (WallGeometry) isGeometry()  {}
func (RectGeometry) isGeometry()  {}
func (DoorGeometry) isGeometry()  {}
func (LabelGeometry) isGeometry() {}
func (GridGeometry) isGeometry()  {}

// GeometryMatches проверяет, что полезная нагрузка соответствует виду объекта.
func GeometryMatches(kind Kind, g Geometry) bool {
	switch g.(type) {
	case WallGeometry:
		return kind == KindWall
	case RectGeometry:
		return kind == KindRoom || kind == KindWindow
	case DoorGeometry:
		return kind == KindDoor
	case LabelGeometry:
		return kind == KindLabel
	case GridGeometry:
		return kind == KindGrid
	}
	return false
}

// ============================================================
// Drawable object
// ============================================================

type Style struct {
	Stroke      string  `json:"stroke,omitempty"`
	Fill        string  `json:"fill,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	FontSize    float64 `json:"fontSize,omitempty"`
}

// Derived holds values computed from geometry. Never authoritative input.
type Derived struct {
	Area int `json:"area"`
}

type Object struct {
	ID         string
	Kind       Kind
	Name       string
	Geometry   Geometry
	Style      Style
	Derived    *Derived
	Selectable bool
	// Owner is the id of the room an area label belongs to.
	Owner string
}

// Clone возвращает независимую копию объекта.
func (o Object) Clone() Object {
	if o.Derived != nil {
		d := *o.Derived
		o.Derived = &d
	}
	return o
}

// Bounds возвращает охватывающий прямоугольник объекта.
func (o Object) Bounds() Rect {
	switch g := o.Geometry.(type) {
	case WallGeometry:
		return segmentBounds(g.Segment)
	case GridGeometry:
		return segmentBounds(g.Segment)
	case RectGeometry:
		return g.Rect
	case DoorGeometry:
		return g.Rect
	case LabelGeometry:
		size := o.Style.FontSize
		if size <= 0 {
			size = DefaultLabelFontSize
		}
		return Rect{X: g.Position.X, Y: g.Position.Y, Width: size * 0.6 * float64(len([]rune(g.Text))), Height: size}
	}
	return Rect{}
}

func segmentBounds(s Segment) Rect {
	x, y := s.A.X, s.A.Y
	if s.B.X < x {
		x = s.B.X
	}
	if s.B.Y < y {
		y = s.B.Y
	}
	w := s.A.X - s.B.X
	if w < 0 {
		w = -w
	}
	h := s.A.Y - s.B.Y
	if h < 0 {
		h = -h
	}
	return Rect{X: x, Y: y, Width: w, Height: h}
}
