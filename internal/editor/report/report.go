package report

import (
	"fmt"
	"strconv"

	"floorplanner/internal/editor/geometry"
	"floorplanner/internal/editor/models"
	"floorplanner/internal/editor/scene"
)

// ============================================================
// Selection dimensions
// ============================================================

// Dimensions: измерения одного объекта в реальных единицах.
type Dimensions struct {
	ID       string      `json:"id"`
	Kind     models.Kind `json:"kind"`
	Length   *float64    `json:"length,omitempty"`
	Width    *float64    `json:"width,omitempty"`
	Height   *float64    `json:"height,omitempty"`
	Area     *int        `json:"area,omitempty"`
	Text     string      `json:"text,omitempty"`
	FontSize float64     `json:"fontSize,omitempty"`
	Unit     string      `json:"unit,omitempty"`
	Display  string      `json:"display"`
}

// Describe измеряет выделенный объект; без выделения возвращает nil.
func Describe(obj *models.Object, settings models.Settings) *Dimensions {
	if obj == nil {
		return nil
	}
	units := func(px float64) float64 {
		return float64(geometry.RoundUnits(geometry.LengthInUnits(px, settings.GridSize, settings.UnitsPerCell)))
	}
	d := &Dimensions{ID: obj.ID, Kind: obj.Kind}

	switch g := obj.Geometry.(type) {
	case models.WallGeometry:
		length := units(geometry.SegmentLength(g.Segment))
		d.Length = &length
		d.Unit = models.LengthUnit
		d.Display = fmt.Sprintf("%s %s", formatUnits(length), models.LengthUnit)
	case models.RectGeometry:
		describeRect(d, g.Rect, units, settings)
	case models.DoorGeometry:
		describeRect(d, g.Rect, units, settings)
	case models.LabelGeometry:
		d.Text = g.Text
		d.FontSize = obj.Style.FontSize
		d.Display = fmt.Sprintf("%q (%gpx)", g.Text, obj.Style.FontSize)
	default:
		return nil
	}
	return d
}

func describeRect(d *Dimensions, r models.Rect, units func(float64) float64, settings models.Settings) {
	width, height := units(r.Width), units(r.Height)
	area := geometry.RectArea(r, settings.GridSize, settings.UnitsPerCell)
	d.Width, d.Height, d.Area = &width, &height, &area
	d.Unit = models.LengthUnit
	d.Display = fmt.Sprintf("%s × %s %s, %s", formatUnits(width), formatUnits(height), models.LengthUnit, scene.AreaText(area))
}

// formatUnits печатает длину, уже округлённую до целых единиц.
func formatUnits(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ============================================================
// Plan summary
// ============================================================

type RoomEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Area  int    `json:"area"`
	Label string `json:"label"`
}

type Summary struct {
	TotalArea int         `json:"totalArea"`
	Unit      string      `json:"unit"`
	Rooms     []RoomEntry `json:"rooms"`
}

// Summarize суммирует площади всех комнат плана.
// Unnamed rooms are listed as "Room N" in paint order.
func Summarize(sc *scene.Scene) Summary {
	content := sc.Content()
	labels := make(map[string]string)
	for _, obj := range content {
		if g, ok := obj.Geometry.(models.LabelGeometry); ok && obj.Owner != "" {
			labels[obj.Owner] = g.Text
		}
	}

	sum := Summary{Unit: models.AreaUnit, Rooms: []RoomEntry{}}
	for _, obj := range content {
		if obj.Kind != models.KindRoom {
			continue
		}
		area := 0
		if obj.Derived != nil {
			area = obj.Derived.Area
		}
		name := obj.Name
		if name == "" {
			name = fmt.Sprintf("Room %d", len(sum.Rooms)+1)
		}
		label, ok := labels[obj.ID]
		if !ok {
			label = scene.AreaText(area)
		}
		sum.Rooms = append(sum.Rooms, RoomEntry{ID: obj.ID, Name: name, Area: area, Label: label})
		sum.TotalArea += area
	}
	return sum
}
