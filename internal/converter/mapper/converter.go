package mapper

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"floorplanner/internal/converter/graph"
	"floorplanner/internal/converter/models"
	"floorplanner/internal/converter/parser"
	"floorplanner/internal/editor/document"
	"floorplanner/internal/editor/geometry"
	plan "floorplanner/internal/editor/models"

	"github.com/google/uuid"
)

// ============================================================
// Converter
// ============================================================

// Converter переводит svg чертёж в документ плана.
type Converter struct {
	builder *graph.GraphBuilder
	ids     map[string]bool
}

func New() *Converter {
	return &Converter{}
}

// Convert SVG → документ плана. The result is checked with the same
// rules a load applies, so a returned document always loads.
func (c *Converter) Convert(r io.Reader) (*document.Document, error) {
	drawing, err := parser.ParseSVG(r)
	if err != nil {
		return nil, fmt.Errorf("parse SVG: %w", err)
	}

	c.builder = graph.NewGraphBuilder()
	c.ids = make(map[string]bool)

	var (
		objects []plan.Object
		walls   = make(map[int]int) // индекс в builder -> индекс в objects
	)
	for _, elem := range drawing.Elements {
		obj, ok, err := c.convertElement(elem)
		if err != nil {
			return nil, fmt.Errorf("element %s: %w", elem.ID, err)
		}
		if !ok {
			continue
		}
		if g, isWall := obj.Geometry.(plan.WallGeometry); isWall {
			walls[c.builder.AddWall(g.Segment)] = len(objects)
		}
		objects = append(objects, obj)
	}

	// стены после склейки концов; схлопнувшиеся выбрасываются
	keep := make([]bool, len(objects))
	for i := range objects {
		_, isWall := objects[i].Geometry.(plan.WallGeometry)
		keep[i] = !isWall
	}
	for _, edge := range c.builder.Build() {
		i := walls[edge.Index]
		objects[i].Geometry = plan.WallGeometry{Segment: edge.Segment}
		keep[i] = true
	}

	var kept []plan.Object
	for i, obj := range objects {
		if keep[i] {
			kept = append(kept, obj)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return layer(kept[i].Kind) < layer(kept[j].Kind)
	})

	canvas := document.Canvas{Width: drawing.Canvas.Width, Height: drawing.Canvas.Height}
	if canvas.Width <= 0 || canvas.Height <= 0 {
		canvas = document.Canvas{Width: plan.DefaultCanvasWidth, Height: plan.DefaultCanvasHeight}
	}

	doc := &document.Document{Version: document.Version, Canvas: canvas, Objects: make([]document.ObjectDoc, 0, len(kept))}
	for _, obj := range kept {
		doc.Objects = append(doc.Objects, document.EncodeObject(obj))
	}
	if _, err := document.Decode(*doc); err != nil {
		return nil, fmt.Errorf("converted plan: %w", err)
	}
	return doc, nil
}

// convertElement возвращает ok=false для элементов без площади или длины.
func (c *Converter) convertElement(elem models.SVGElement) (plan.Object, bool, error) {
	var obj plan.Object
	switch elem.Type {
	case models.TypeWall:
		seg, thickness, err := wallShape(elem.Geometry)
		if err != nil {
			return obj, false, err
		}
		if geometry.SegmentLength(seg) == 0 {
			return obj, false, nil
		}
		obj = c.newObject(elem, plan.KindWall)
		obj.Geometry = plan.WallGeometry{Segment: seg}
		if elem.Paint.StrokeWidth <= 0 && thickness > 0 {
			obj.Style.StrokeWidth = thickness
		}

	case models.TypeRoom, models.TypeDoor, models.TypeWindow:
		rect, err := areaShape(elem.Geometry)
		if err != nil {
			return obj, false, err
		}
		if rect.Width <= 0 || rect.Height <= 0 {
			return obj, false, nil
		}
		switch elem.Type {
		case models.TypeRoom:
			obj = c.newObject(elem, plan.KindRoom)
			obj.Name = roomName(elem)
			obj.Geometry = plan.RectGeometry{Rect: rect}
		case models.TypeDoor:
			obj = c.newObject(elem, plan.KindDoor)
			obj.Geometry = plan.DoorGeometry{Rect: rect, Sill: geometry.DoorSill(rect)}
		default:
			obj = c.newObject(elem, plan.KindWindow)
			obj.Geometry = plan.RectGeometry{Rect: rect}
		}

	case models.TypeLabel:
		text, ok := elem.Geometry.(models.TextGeometry)
		if !ok {
			return obj, false, nil
		}
		obj = c.newObject(elem, plan.KindLabel)
		pos := text.Position
		if text.Centered {
			size := obj.Style.FontSize
			pos.X -= size * 0.6 * float64(utf8.RuneCountInString(text.Text)) / 2
			pos.Y -= size / 2
		}
		obj.Geometry = plan.LabelGeometry{Position: pos, Text: text.Text}

	default:
		return obj, false, nil
	}
	return obj, true, nil
}

func (c *Converter) newObject(elem models.SVGElement, kind plan.Kind) plan.Object {
	return plan.Object{
		ID:         c.objectID(elem.ID),
		Kind:       kind,
		Style:      styleFor(kind, elem.Paint),
		Selectable: true,
	}
}

// objectID снимает префикс типа; пустые и повторные id заменяются uuid.
func (c *Converter) objectID(svgID string) string {
	id := svgID
	for _, prefix := range []string{"Hui_Wall_", "Wall_", "Door_", "Window_", "Room_", "Label_"} {
		if strings.HasPrefix(id, prefix) {
			id = strings.TrimPrefix(id, prefix)
			break
		}
	}
	if id == "" || c.ids[id] || strings.HasPrefix(id, "grid-") {
		id = uuid.NewString()
	}
	c.ids[id] = true
	return id
}

// ============================================================
// Geometry helpers
// ============================================================

func wallShape(g models.Geometry) (plan.Segment, float64, error) {
	switch geom := g.(type) {
	case models.LineGeometry:
		return geom.Segment, 0, nil
	case models.RectGeometry:
		seg, thickness := graph.Centerline(geom.Rect)
		return seg, thickness, nil
	case models.PathGeometry:
		points, err := parser.ParsePath(geom.D)
		if err != nil {
			return plan.Segment{}, 0, err
		}
		if len(points) == 2 {
			return plan.Segment{A: points[0], B: points[1]}, 0, nil
		}
		seg, thickness := graph.Centerline(graph.Bounds(points))
		return seg, thickness, nil
	}
	return plan.Segment{}, 0, fmt.Errorf("unsupported wall shape %T", g)
}

func areaShape(g models.Geometry) (plan.Rect, error) {
	switch geom := g.(type) {
	case models.RectGeometry:
		return geom.Rect, nil
	case models.PathGeometry:
		points, err := parser.ParsePath(geom.D)
		if err != nil {
			return plan.Rect{}, err
		}
		return graph.Bounds(points), nil
	}
	return plan.Rect{}, fmt.Errorf("unsupported shape %T", g)
}

// ============================================================
// Defaults
// ============================================================

func styleFor(kind plan.Kind, paint models.Paint) plan.Style {
	style := plan.DefaultStyle(kind)
	if paint.Fill == "none" {
		style.Fill = ""
	} else if paint.Fill != "" {
		style.Fill = paint.Fill
	}
	if paint.Stroke == "none" {
		style.Stroke = ""
	} else if paint.Stroke != "" {
		style.Stroke = paint.Stroke
	}
	if paint.StrokeWidth > 0 {
		style.StrokeWidth = paint.StrokeWidth
	}
	if paint.FontSize > 0 {
		style.FontSize = paint.FontSize
	}
	return style
}

// roomName: title, затем имя из id вида Hall_room; Room_* без title безымянна.
func roomName(elem models.SVGElement) string {
	if elem.Title != "" {
		return elem.Title
	}
	id := elem.ID
	switch {
	case strings.HasSuffix(id, "_room"), strings.HasSuffix(id, "_Room"):
		return strings.ReplaceAll(id[:len(id)-len("_room")], "_", " ")
	case strings.HasPrefix(id, "Balcony"):
		return "Balcony"
	}
	return ""
}

func layer(kind plan.Kind) int {
	switch kind {
	case plan.KindRoom:
		return 0
	case plan.KindWall:
		return 1
	case plan.KindDoor, plan.KindWindow:
		return 2
	}
	return 3
}
