package gesture

import (
	"errors"
	"fmt"

	"floorplanner/internal/editor/geometry"
	"floorplanner/internal/editor/models"
	"floorplanner/internal/editor/scene"
)

// ============================================================
// Modes
// ============================================================

var ErrUnknownMode = errors.New("unknown drawing mode")

type Mode string

const (
	ModeSelect Mode = "select"
	ModeWall   Mode = "wall"
	ModeRoom   Mode = "room"
	ModeDoor   Mode = "door"
	ModeWindow Mode = "window"
	ModeLabel  Mode = "label"
)

// ParseMode разбирает имя режима; "text" принимается как синоним "label".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSelect, ModeWall, ModeRoom, ModeDoor, ModeWindow, ModeLabel:
		return Mode(s), nil
	case "text":
		return ModeLabel, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownMode, s)
}

func (m Mode) kind() models.Kind {
	switch m {
	case ModeWall:
		return models.KindWall
	case ModeRoom:
		return models.KindRoom
	case ModeDoor:
		return models.KindDoor
	case ModeWindow:
		return models.KindWindow
	case ModeLabel:
		return models.KindLabel
	}
	return ""
}

// ============================================================
// Session
// ============================================================

// Session lives between pointer-down and pointer-up of one drawing gesture.
type Session struct {
	Mode    Mode
	Anchor  models.Point
	Current models.Point
	Preview models.Object
}

// Result reports what a pointer event committed.
type Result struct {
	// Committed lists ids added to the scene, in insertion order.
	Committed []string
	// Snapshot is set when the caller must record a history entry.
	Snapshot bool
	// EditLabel is the id of a label opened for inline text entry.
	EditLabel string
}

// ============================================================
// Machine
// ============================================================

// Machine переводит последовательности событий указателя в геометрию.
type Machine struct {
	scene   *scene.Scene
	mode    Mode
	session *Session
}

func New(sc *scene.Scene) *Machine {
	return &Machine{scene: sc, mode: ModeSelect}
}

func (m *Machine) Mode() Mode {
	return m.mode
}

// Active сообщает, открыта ли сессия рисования.
func (m *Machine) Active() bool {
	return m.session != nil
}

// Preview возвращает незафиксированный объект текущей сессии.
func (m *Machine) Preview() (models.Object, bool) {
	if m.session == nil {
		return models.Object{}, false
	}
	return m.session.Preview.Clone(), true
}

// SetMode переключает режим; открытая сессия отбрасывается без изменений сцены.
func (m *Machine) SetMode(mode Mode) {
	m.discard()
	m.mode = mode
}

// Cancel отбрасывает открытую сессию.
func (m *Machine) Cancel() {
	m.discard()
}

// PointerDown открывает сессию рисования в точке, выровненной по сетке.
func (m *Machine) PointerDown(raw models.Point) (Result, error) {
	if m.mode == ModeSelect {
		return Result{}, nil
	}
	m.discard()

	settings := m.scene.Settings()
	anchor := geometry.SnapIf(raw, settings.GridSize, settings.SnapToGrid)

	if m.mode == ModeLabel {
		return m.commitLabel(anchor)
	}

	m.session = &Session{
		Mode:    m.mode,
		Anchor:  anchor,
		Current: anchor,
		Preview: m.previewAt(anchor, anchor),
	}
	m.scene.Suspend()
	return Result{}, nil
}

// PointerMove перестраивает превью целиком по якорю и текущей точке.
func (m *Machine) PointerMove(raw models.Point) {
	if m.session == nil {
		return
	}
	settings := m.scene.Settings()
	current := geometry.SnapIf(raw, settings.GridSize, settings.SnapToGrid)
	m.session.Current = current
	m.session.Preview = m.previewAt(m.session.Anchor, current)
}

// PointerUp фиксирует превью в сцене и закрывает сессию.
func (m *Machine) PointerUp(raw models.Point) (Result, error) {
	if m.session == nil {
		return Result{}, nil
	}
	m.PointerMove(raw)

	session := m.session
	m.session = nil
	m.scene.Resume()

	if degenerate(session.Preview) && !m.scene.Settings().KeepDegenerate {
		return Result{}, nil
	}

	obj := session.Preview
	obj.ID = m.scene.NewID()
	obj.Selectable = true
	if err := m.scene.Add(obj); err != nil {
		return Result{}, fmt.Errorf("commit %s: %w", obj.Kind, err)
	}
	res := Result{Committed: []string{obj.ID}, Snapshot: true}

	if obj.Kind == models.KindRoom {
		stored, _ := m.scene.Get(obj.ID)
		label := m.scene.AreaLabel(stored)
		if err := m.scene.Add(label); err != nil {
			return Result{}, fmt.Errorf("commit area label: %w", err)
		}
		res.Committed = append(res.Committed, label.ID)
	}
	return res, nil
}

func (m *Machine) commitLabel(at models.Point) (Result, error) {
	obj := models.Object{
		ID:         m.scene.NewID(),
		Kind:       models.KindLabel,
		Geometry:   models.LabelGeometry{Position: at, Text: models.DefaultLabelText},
		Style:      models.DefaultStyle(models.KindLabel),
		Selectable: true,
	}
	if err := m.scene.Add(obj); err != nil {
		return Result{}, fmt.Errorf("commit label: %w", err)
	}
	return Result{Committed: []string{obj.ID}, Snapshot: true, EditLabel: obj.ID}, nil
}

func (m *Machine) discard() {
	if m.session == nil {
		return
	}
	m.session = nil
	m.scene.Resume()
}

// previewAt строит геометрию превью для текущего режима.
// degenerate: стена нулевой длины или прямоугольник без ширины или высоты.
func degenerate(obj models.Object) bool {
	switch g := obj.Geometry.(type) {
	case models.WallGeometry:
		return geometry.SegmentLength(g.Segment) == 0
	case models.RectGeometry:
		return g.Rect.Width == 0 || g.Rect.Height == 0
	case models.DoorGeometry:
		return g.Rect.Width == 0
	}
	return true
}

func (m *Machine) previewAt(anchor, current models.Point) models.Object {
	kind := m.mode.kind()
	obj := models.Object{Kind: kind, Style: models.DefaultStyle(kind)}

	switch m.mode {
	case ModeWall:
		obj.Geometry = models.WallGeometry{Segment: models.Segment{A: anchor, B: current}}
	case ModeRoom, ModeWindow:
		obj.Geometry = models.RectGeometry{Rect: geometry.BoundingRect(anchor, current)}
	case ModeDoor:
		// Width follows the horizontal drag only, thickness is fixed.
		x := anchor.X
		width := current.X - anchor.X
		if width < 0 {
			x, width = current.X, -width
		}
		rect := models.Rect{X: x, Y: anchor.Y, Width: width, Height: models.DoorThickness}
		obj.Geometry = models.DoorGeometry{Rect: rect, Sill: geometry.DoorSill(rect)}
	}
	return obj
}
