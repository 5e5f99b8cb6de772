package selection

import (
	"errors"
	"fmt"

	"floorplanner/internal/editor/geometry"
	"floorplanner/internal/editor/models"
	"floorplanner/internal/editor/scene"
)

const (
	// HandleRadius is the pick radius of a resize handle, in canvas pixels.
	HandleRadius = 8.0
	// wallPickTolerance is added to half the wall stroke when hit-testing walls.
	wallPickTolerance = 4.0
)

// ErrNotEditable is returned when an operation does not apply to the object's kind.
var ErrNotEditable = errors.New("operation not supported for object")

// ============================================================
// Drag state
// ============================================================

type dragKind int

const (
	dragNone dragKind = iota
	dragMove
	dragResize
)

type drag struct {
	kind     dragKind
	start    models.Point
	original models.Object
	// endpoint is the wall endpoint being resized: 0 for A, 1 for B.
	endpoint int
	moved    bool
}

// Result reports whether a selection gesture changed the scene.
type Result struct {
	Snapshot bool
}

// ============================================================
// Controller
// ============================================================

// Controller управляет выделением и прямым редактированием объектов.
type Controller struct {
	scene    *scene.Scene
	selected string
	drag     drag
}

func New(sc *scene.Scene) *Controller {
	return &Controller{scene: sc}
}

// Selected возвращает выделенный объект, если он есть.
func (c *Controller) Selected() (models.Object, bool) {
	if c.selected == "" {
		return models.Object{}, false
	}
	obj, ok := c.scene.Get(c.selected)
	if !ok {
		c.selected = ""
	}
	return obj, ok
}

func (c *Controller) Clear() {
	c.selected = ""
	c.drag = drag{}
}

// Select выделяет объект по id.
func (c *Controller) Select(id string) error {
	obj, ok := c.scene.Get(id)
	if !ok {
		return fmt.Errorf("select %s: %w", id, scene.ErrNotFound)
	}
	if !obj.Selectable || obj.Kind == models.KindGrid {
		return fmt.Errorf("select %s: %w", id, ErrNotEditable)
	}
	c.selected = id
	return nil
}

// HitTest возвращает верхний объект под точкой, без линий сетки.
func (c *Controller) HitTest(p models.Point) (models.Object, bool) {
	if !c.scene.Interactive() {
		return models.Object{}, false
	}
	objects := c.scene.All()
	for i := len(objects) - 1; i >= 0; i-- {
		obj := objects[i]
		if obj.Kind == models.KindGrid || !obj.Selectable {
			continue
		}
		if hits(obj, p) {
			return obj, true
		}
	}
	return models.Object{}, false
}

// PointerDown выделяет объект под указателем или снимает выделение.
// A press on the selected object's handle starts a resize, anywhere else on it a move.
func (c *Controller) PointerDown(p models.Point) {
	c.drag = drag{}
	if !c.scene.Interactive() {
		return
	}

	if sel, ok := c.Selected(); ok {
		if endpoint, ok := handleAt(sel, p); ok {
			c.drag = drag{kind: dragResize, start: p, original: sel, endpoint: endpoint}
			return
		}
	}

	obj, ok := c.HitTest(p)
	if !ok {
		c.selected = ""
		return
	}
	c.selected = obj.ID
	c.drag = drag{kind: dragMove, start: p, original: obj}
}

// PointerMove применяет перетаскивание к выделенному объекту.
func (c *Controller) PointerMove(p models.Point) error {
	if c.drag.kind == dragNone {
		return nil
	}
	settings := c.scene.Settings()
	var next models.Geometry

	switch c.drag.kind {
	case dragMove:
		start := geometry.SnapIf(c.drag.start, settings.GridSize, settings.SnapToGrid)
		current := geometry.SnapIf(p, settings.GridSize, settings.SnapToGrid)
		next = translate(c.drag.original.Geometry, current.Sub(start))
	case dragResize:
		current := geometry.SnapIf(p, settings.GridSize, settings.SnapToGrid)
		next = resize(c.drag.original.Geometry, current, c.drag.endpoint)
	}
	if next == nil {
		return nil
	}
	if err := c.scene.Update(c.drag.original.ID, scene.Patch{Geometry: next}); err != nil {
		return fmt.Errorf("drag %s: %w", c.drag.original.ID, err)
	}
	c.drag.moved = next != c.drag.original.Geometry
	return nil
}

// PointerUp завершает перетаскивание; снимок истории нужен только при изменении.
func (c *Controller) PointerUp(p models.Point) (Result, error) {
	if c.drag.kind == dragNone {
		return Result{}, nil
	}
	if err := c.PointerMove(p); err != nil {
		c.drag = drag{}
		return Result{}, err
	}
	moved := c.drag.moved
	c.drag = drag{}
	return Result{Snapshot: moved}, nil
}

// Delete удаляет выделенный объект.
func (c *Controller) Delete() (Result, error) {
	if c.selected == "" {
		return Result{}, nil
	}
	id := c.selected
	c.Clear()
	if err := c.scene.Remove(id); err != nil {
		return Result{}, fmt.Errorf("delete %s: %w", id, err)
	}
	return Result{Snapshot: true}, nil
}

// EditText меняет текст подписи.
func (c *Controller) EditText(id, text string) (Result, error) {
	obj, ok := c.scene.Get(id)
	if !ok {
		return Result{}, fmt.Errorf("edit text %s: %w", id, scene.ErrNotFound)
	}
	g, ok := obj.Geometry.(models.LabelGeometry)
	if !ok || obj.Owner != "" {
		return Result{}, fmt.Errorf("edit text %s: %w", id, ErrNotEditable)
	}
	if g.Text == text {
		return Result{}, nil
	}
	g.Text = text
	if err := c.scene.Update(id, scene.Patch{Geometry: g}); err != nil {
		return Result{}, fmt.Errorf("edit text %s: %w", id, err)
	}
	return Result{Snapshot: true}, nil
}

// Rename задаёт имя комнаты.
func (c *Controller) Rename(id, name string) (Result, error) {
	obj, ok := c.scene.Get(id)
	if !ok {
		return Result{}, fmt.Errorf("rename %s: %w", id, scene.ErrNotFound)
	}
	if obj.Kind != models.KindRoom {
		return Result{}, fmt.Errorf("rename %s: %w", id, ErrNotEditable)
	}
	if obj.Name == name {
		return Result{}, nil
	}
	if err := c.scene.Update(id, scene.Patch{Name: &name}); err != nil {
		return Result{}, fmt.Errorf("rename %s: %w", id, err)
	}
	return Result{Snapshot: true}, nil
}

// ============================================================
// Geometry helpers
// ============================================================

func hits(obj models.Object, p models.Point) bool {
	switch g := obj.Geometry.(type) {
	case models.WallGeometry:
		tolerance := obj.Style.StrokeWidth/2 + wallPickTolerance
		return geometry.PointToSegmentDistance(p, g.Segment) <= tolerance
	case models.RectGeometry:
		return g.Rect.Contains(p)
	case models.DoorGeometry:
		return g.Rect.Contains(p)
	case models.LabelGeometry:
		return obj.Bounds().Contains(p)
	}
	return false
}

// handleAt находит маркер изменения размера под точкой.
// Rectangles have one handle at the bottom-right corner, walls one per endpoint.
func handleAt(obj models.Object, p models.Point) (int, bool) {
	switch g := obj.Geometry.(type) {
	case models.WallGeometry:
		if geometry.Distance(p, g.A) <= HandleRadius {
			return 0, true
		}
		if geometry.Distance(p, g.B) <= HandleRadius {
			return 1, true
		}
	case models.RectGeometry:
		return 0, geometry.Distance(p, corner(g.Rect)) <= HandleRadius
	case models.DoorGeometry:
		return 0, geometry.Distance(p, corner(g.Rect)) <= HandleRadius
	}
	return 0, false
}

func corner(r models.Rect) models.Point {
	return models.Point{X: r.X + r.Width, Y: r.Y + r.Height}
}

func translate(g models.Geometry, d models.Point) models.Geometry {
	switch g := g.(type) {
	case models.WallGeometry:
		return models.WallGeometry{Segment: geometry.TranslateSegment(g.Segment, d)}
	case models.RectGeometry:
		return models.RectGeometry{Rect: geometry.TranslateRect(g.Rect, d)}
	case models.DoorGeometry:
		rect := geometry.TranslateRect(g.Rect, d)
		return models.DoorGeometry{Rect: rect, Sill: geometry.DoorSill(rect)}
	case models.LabelGeometry:
		g.Position = g.Position.Add(d)
		return g
	}
	return nil
}

func resize(g models.Geometry, to models.Point, endpoint int) models.Geometry {
	switch g := g.(type) {
	case models.WallGeometry:
		if endpoint == 0 {
			g.A = to
		} else {
			g.B = to
		}
		return g
	case models.RectGeometry:
		g.Width = max(0, to.X-g.X)
		g.Height = max(0, to.Y-g.Y)
		return g
	case models.DoorGeometry:
		rect := g.Rect
		rect.Width = max(0, to.X-rect.X)
		return models.DoorGeometry{Rect: rect, Sill: geometry.DoorSill(rect)}
	}
	return nil
}
