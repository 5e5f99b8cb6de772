package document

import (
	"encoding/json"
	"errors"
	"fmt"

	"floorplanner/internal/editor/geometry"
	"floorplanner/internal/editor/models"
	"floorplanner/internal/editor/scene"

	"github.com/google/uuid"
)

// Version is the only document version this package reads and writes.
const Version = 1

var (
	ErrUnsupportedVersion = errors.New("unsupported document version")
	ErrMalformed          = errors.New("malformed document")
)

// ============================================================
// Wire format
// ============================================================

type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// GeometryDoc is the flattened geometry of one object.
// Which fields are set depends on the object kind.
type GeometryDoc struct {
	Start    *models.Point   `json:"start,omitempty"`
	End      *models.Point   `json:"end,omitempty"`
	Rect     *models.Rect    `json:"rect,omitempty"`
	Sill     *models.Segment `json:"sill,omitempty"`
	Position *models.Point   `json:"position,omitempty"`
	Text     *string         `json:"text,omitempty"`
}

type ObjectDoc struct {
	ID       string          `json:"id"`
	Kind     models.Kind     `json:"kind"`
	Name     string          `json:"name,omitempty"`
	Geometry GeometryDoc     `json:"geometry"`
	Style    models.Style    `json:"style"`
	Derived  *models.Derived `json:"derived,omitempty"`
	Owner    string          `json:"owner,omitempty"`
}

// Document: сохраняемое представление плана.
type Document struct {
	Version int         `json:"version"`
	Name    string      `json:"name,omitempty"`
	Canvas  Canvas      `json:"canvas"`
	Objects []ObjectDoc `json:"objects"`
}

// ============================================================
// Serialize
// ============================================================

// Serialize выгружает все объекты сцены, кроме линий сетки.
func Serialize(sc *scene.Scene) Document {
	settings := sc.Settings()
	doc := Document{
		Version: Version,
		Canvas:  Canvas{Width: settings.CanvasWidth, Height: settings.CanvasHeight},
		Objects: []ObjectDoc{},
	}
	for _, obj := range sc.Content() {
		doc.Objects = append(doc.Objects, EncodeObject(obj))
	}
	return doc
}

// EncodeObject переводит объект в формат документа.
func EncodeObject(obj models.Object) ObjectDoc {
	out := ObjectDoc{
		ID:      obj.ID,
		Kind:    obj.Kind,
		Name:    obj.Name,
		Style:   obj.Style,
		Derived: obj.Derived,
		Owner:   obj.Owner,
	}
	switch g := obj.Geometry.(type) {
	case models.WallGeometry:
		a, b := g.A, g.B
		out.Geometry = GeometryDoc{Start: &a, End: &b}
	case models.RectGeometry:
		r := g.Rect
		out.Geometry = GeometryDoc{Rect: &r}
	case models.DoorGeometry:
		r, sill := g.Rect, g.Sill
		out.Geometry = GeometryDoc{Rect: &r, Sill: &sill}
	case models.LabelGeometry:
		pos, text := g.Position, g.Text
		out.Geometry = GeometryDoc{Position: &pos, Text: &text}
	}
	return out
}

// ============================================================
// Deserialize
// ============================================================

// Decode проверяет документ и восстанавливает объекты сцены.
// It fails on the first problem and never returns a partial result.
// Rooms without an area label get one; stored derived values are ignored.
func Decode(doc Document) ([]models.Object, error) {
	if doc.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}

	objects := make([]models.Object, 0, len(doc.Objects))
	kinds := make(map[string]models.Kind, len(doc.Objects))
	for i, od := range doc.Objects {
		if od.Kind == models.KindGrid {
			continue
		}
		obj, err := decodeObject(od)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		if _, dup := kinds[obj.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrMalformed, obj.ID)
		}
		kinds[obj.ID] = obj.Kind
		objects = append(objects, obj)
	}

	labelled := make(map[string]bool)
	for _, obj := range objects {
		if obj.Owner == "" {
			continue
		}
		if kinds[obj.Owner] != models.KindRoom {
			return nil, fmt.Errorf("%w: label %s owned by unknown room %s", ErrMalformed, obj.ID, obj.Owner)
		}
		if labelled[obj.Owner] {
			return nil, fmt.Errorf("%w: room %s has more than one area label", ErrMalformed, obj.Owner)
		}
		labelled[obj.Owner] = true
	}

	out := make([]models.Object, 0, len(objects))
	for _, obj := range objects {
		out = append(out, obj)
		if obj.Kind == models.KindRoom && !labelled[obj.ID] {
			out = append(out, areaLabel(obj))
		}
	}
	return out, nil
}

func decodeObject(od ObjectDoc) (models.Object, error) {
	if !od.Kind.Valid() {
		return models.Object{}, fmt.Errorf("%w: unknown kind %q", ErrMalformed, od.Kind)
	}
	id := od.ID
	if id == "" {
		id = uuid.NewString()
	}
	obj := models.Object{
		ID:         id,
		Kind:       od.Kind,
		Style:      od.Style,
		Selectable: true,
	}
	if obj.Style == (models.Style{}) {
		obj.Style = models.DefaultStyle(od.Kind)
	}

	g := od.Geometry
	switch od.Kind {
	case models.KindWall:
		if g.Start == nil || g.End == nil {
			return models.Object{}, fmt.Errorf("%w: wall %s needs start and end", ErrMalformed, id)
		}
		obj.Geometry = models.WallGeometry{Segment: models.Segment{A: *g.Start, B: *g.End}}
	case models.KindRoom, models.KindWindow:
		if g.Rect == nil || g.Rect.Width < 0 || g.Rect.Height < 0 {
			return models.Object{}, fmt.Errorf("%w: %s %s needs a rect", ErrMalformed, od.Kind, id)
		}
		obj.Geometry = models.RectGeometry{Rect: *g.Rect}
		if od.Kind == models.KindRoom {
			obj.Name = od.Name
		}
	case models.KindDoor:
		if g.Rect == nil || g.Rect.Width < 0 || g.Rect.Height < 0 {
			return models.Object{}, fmt.Errorf("%w: door %s needs a rect", ErrMalformed, id)
		}
		sill := geometry.DoorSill(*g.Rect)
		if g.Sill != nil {
			sill = *g.Sill
		}
		obj.Geometry = models.DoorGeometry{Rect: *g.Rect, Sill: sill}
	case models.KindLabel:
		if g.Position == nil {
			return models.Object{}, fmt.Errorf("%w: label %s needs a position", ErrMalformed, id)
		}
		text := ""
		if g.Text != nil {
			text = *g.Text
		}
		obj.Geometry = models.LabelGeometry{Position: *g.Position, Text: text}
		if od.Owner != "" {
			obj.Owner = od.Owner
			obj.Selectable = false
			if od.Style == (models.Style{}) {
				obj.Style = models.AreaLabelStyle()
			}
		}
	}
	return obj, nil
}

// areaLabel строит недостающую подпись площади; текст и позицию сцена пересчитает.
func areaLabel(room models.Object) models.Object {
	g := room.Geometry.(models.RectGeometry)
	return models.Object{
		ID:       uuid.NewString(),
		Kind:     models.KindLabel,
		Geometry: models.LabelGeometry{Position: g.Rect.Center()},
		Style:    models.AreaLabelStyle(),
		Owner:    room.ID,
	}
}

// Deserialize строит новую сцену из документа.
// The document canvas overrides the settings' canvas, grid lines follow the settings' grid size.
func Deserialize(doc Document, settings models.Settings) (*scene.Scene, error) {
	objects, err := Decode(doc)
	if err != nil {
		return nil, err
	}
	if doc.Canvas.Width > 0 {
		settings.CanvasWidth = doc.Canvas.Width
	}
	if doc.Canvas.Height > 0 {
		settings.CanvasHeight = doc.Canvas.Height
	}
	sc := scene.New(settings)
	if err := sc.Replace(objects); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return sc, nil
}

// Apply загружает документ в существующую сцену; при ошибке сцена не меняется.
func Apply(sc *scene.Scene, doc Document) error {
	objects, err := Decode(doc)
	if err != nil {
		return err
	}
	if err := sc.Replace(objects); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	settings := sc.Settings()
	width, height := settings.CanvasWidth, settings.CanvasHeight
	if doc.Canvas.Width > 0 {
		width = doc.Canvas.Width
	}
	if doc.Canvas.Height > 0 {
		height = doc.Canvas.Height
	}
	if width != settings.CanvasWidth || height != settings.CanvasHeight {
		sc.SetCanvas(width, height, settings.GridSize)
	}
	return nil
}

// ============================================================
// JSON
// ============================================================

func Marshal(doc Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return data, nil
}

// Unmarshal разбирает JSON-документ; ошибки разбора оборачиваются в ErrMalformed.
func Unmarshal(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return doc, nil
}
