package scene

import (
	"errors"
	"fmt"

	"floorplanner/internal/editor/geometry"
	"floorplanner/internal/editor/models"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("object not found")
	ErrDuplicateID   = errors.New("duplicate object id")
	ErrKindMismatch  = errors.New("geometry does not match object kind")
	ErrInvalidObject = errors.New("invalid object")
)

// ============================================================
// Scene Model
// ============================================================

// Scene хранит упорядоченный набор объектов плана.
// Insertion order is paint order: later objects are drawn on top.
type Scene struct {
	objects   []models.Object
	settings  models.Settings
	suspended bool
	newID     func() string
}

func New(settings models.Settings) *Scene {
	s := &Scene{
		settings: settings.Normalize(),
		newID:    uuid.NewString,
	}
	if s.settings.ShowGrid {
		s.RegenerateGrid()
	}
	return s
}

func (s *Scene) Settings() models.Settings {
	return s.settings
}

// NewID выдаёт новый идентификатор объекта.
func (s *Scene) NewID() string {
	return s.newID()
}

// Add добавляет объект поверх остальных.
func (s *Scene) Add(obj models.Object) error {
	if obj.Geometry == nil || !models.GeometryMatches(obj.Kind, obj.Geometry) {
		return fmt.Errorf("add %s: %w", obj.Kind, ErrKindMismatch)
	}
	if obj.ID == "" {
		obj.ID = s.NewID()
	}
	lookup := s.indexOf
	if obj.Kind == models.KindGrid {
		lookup = s.gridIndexOf
	}
	if lookup(obj.ID) >= 0 {
		return fmt.Errorf("add %s: %w", obj.ID, ErrDuplicateID)
	}
	obj = obj.Clone()
	if obj.Kind == models.KindGrid {
		obj.Selectable = false
	}
	s.objects = append(s.objects, obj)
	if obj.Kind == models.KindRoom {
		s.refreshDerived(len(s.objects) - 1)
	}
	return nil
}

// Remove удаляет объект; площадная подпись комнаты удаляется вместе с ней.
func (s *Scene) Remove(id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}
	s.objects = append(s.objects[:idx], s.objects[idx+1:]...)

	kept := s.objects[:0]
	for _, obj := range s.objects {
		if obj.Owner == id {
			continue
		}
		kept = append(kept, obj)
	}
	s.objects = kept
	return nil
}

// Patch describes a partial update. Nil fields are left untouched.
type Patch struct {
	Geometry models.Geometry
	Style    *models.Style
	Name     *string
}

// Update применяет частичное изменение и пересчитывает производные поля.
func (s *Scene) Update(id string, p Patch) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	obj := &s.objects[idx]
	if p.Geometry != nil {
		if !models.GeometryMatches(obj.Kind, p.Geometry) {
			return fmt.Errorf("update %s: %w", id, ErrKindMismatch)
		}
		obj.Geometry = p.Geometry
	}
	if p.Style != nil {
		obj.Style = *p.Style
	}
	if p.Name != nil {
		obj.Name = *p.Name
	}
	if obj.Kind == models.KindRoom {
		s.refreshDerived(idx)
	}
	return nil
}

func (s *Scene) Get(id string) (models.Object, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return models.Object{}, false
	}
	return s.objects[idx].Clone(), true
}

// All возвращает копии всех объектов в порядке отрисовки.
func (s *Scene) All() []models.Object {
	out := make([]models.Object, len(s.objects))
	for i, obj := range s.objects {
		out[i] = obj.Clone()
	}
	return out
}

// Content возвращает все объекты, кроме линий сетки.
func (s *Scene) Content() []models.Object {
	var out []models.Object
	for _, obj := range s.objects {
		if obj.Kind == models.KindGrid {
			continue
		}
		out = append(out, obj.Clone())
	}
	return out
}

func (s *Scene) Len() int {
	return len(s.objects)
}

// Clear удаляет все объекты; линии сетки сохраняются при keepGrid.
func (s *Scene) Clear(keepGrid bool) {
	if !keepGrid {
		s.objects = nil
		return
	}
	kept := s.objects[:0]
	for _, obj := range s.objects {
		if obj.Kind == models.KindGrid {
			kept = append(kept, obj)
		}
	}
	s.objects = kept
}

// Replace заменяет содержимое сцены целиком, сетка остаётся текущей.
// Objects are validated first; on error the scene is left untouched.
func (s *Scene) Replace(objects []models.Object) error {
	seen := make(map[string]bool, len(objects))
	next := make([]models.Object, 0, len(objects))
	for _, obj := range objects {
		if obj.Kind == models.KindGrid {
			continue
		}
		if obj.ID == "" {
			return fmt.Errorf("replace: %w: empty id", ErrInvalidObject)
		}
		if seen[obj.ID] {
			return fmt.Errorf("replace %s: %w", obj.ID, ErrDuplicateID)
		}
		if obj.Geometry == nil || !models.GeometryMatches(obj.Kind, obj.Geometry) {
			return fmt.Errorf("replace %s: %w", obj.ID, ErrKindMismatch)
		}
		seen[obj.ID] = true
		next = append(next, obj.Clone())
	}

	s.Clear(true)
	s.objects = append(s.objects, next...)
	for i := range s.objects {
		if s.objects[i].Kind == models.KindRoom {
			s.refreshDerived(i)
		}
	}
	return nil
}

// ============================================================
// Interactivity
// ============================================================

// Suspend делает все объекты временно неинтерактивными (идёт рисование).
func (s *Scene) Suspend() {
	s.suspended = true
}

func (s *Scene) Resume() {
	s.suspended = false
}

func (s *Scene) Interactive() bool {
	return !s.suspended
}

// ============================================================
// Derived fields
// ============================================================

// refreshDerived пересчитывает площадь комнаты и её подпись.
func (s *Scene) refreshDerived(idx int) {
	room := &s.objects[idx]
	g, ok := room.Geometry.(models.RectGeometry)
	if !ok {
		return
	}
	area := geometry.RectArea(g.Rect, s.settings.GridSize, s.settings.UnitsPerCell)
	room.Derived = &models.Derived{Area: area}

	for i := range s.objects {
		if s.objects[i].Owner != room.ID || s.objects[i].Kind != models.KindLabel {
			continue
		}
		s.objects[i].Geometry = models.LabelGeometry{
			Position: g.Rect.Center(),
			Text:     AreaText(area),
		}
	}
}

// AreaText форматирует подпись площади комнаты.
func AreaText(area int) string {
	return fmt.Sprintf("%d %s", area, models.AreaUnit)
}

// AreaLabel строит площадную подпись для комнаты.
// Owned label positions are the room center, not a top-left corner.
func (s *Scene) AreaLabel(room models.Object) models.Object {
	area := 0
	if room.Derived != nil {
		area = room.Derived.Area
	}
	var center models.Point
	if g, ok := room.Geometry.(models.RectGeometry); ok {
		center = g.Rect.Center()
	}
	return models.Object{
		ID:       s.NewID(),
		Kind:     models.KindLabel,
		Geometry: models.LabelGeometry{Position: center, Text: AreaText(area)},
		Style:    models.AreaLabelStyle(),
		Owner:    room.ID,
	}
}

// indexOf ищет только среди объектов плана: id линий сетки живут отдельно
// и могут совпадать с id загруженного объекта.
func (s *Scene) indexOf(id string) int {
	for i := range s.objects {
		if s.objects[i].Kind != models.KindGrid && s.objects[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Scene) gridIndexOf(id string) int {
	for i := range s.objects {
		if s.objects[i].Kind == models.KindGrid && s.objects[i].ID == id {
			return i
		}
	}
	return -1
}
