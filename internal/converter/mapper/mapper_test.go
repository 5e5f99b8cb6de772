package mapper

import (
	"strings"
	"testing"

	"floorplanner/internal/editor/document"
	"floorplanner/internal/editor/export"
	plan "floorplanner/internal/editor/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const planJSON = `{
  "version": 1,
  "name": "Round trip",
  "canvas": {"width": 640, "height": 480},
  "objects": [
    {"id": "r1", "kind": "room", "name": "Kitchen", "geometry": {"rect": {"x": 20, "y": 20, "width": 200, "height": 120}},
     "style": {"stroke": "#0066cc", "fill": "rgba(200, 220, 240, 0.5)", "strokeWidth": 2}},
    {"id": "w1", "kind": "wall", "geometry": {"start": {"x": 20, "y": 20}, "end": {"x": 220, "y": 20}},
     "style": {"stroke": "#000000", "strokeWidth": 6}},
    {"id": "w2", "kind": "wall", "geometry": {"start": {"x": 220, "y": 20}, "end": {"x": 220, "y": 140}},
     "style": {"stroke": "#000000", "strokeWidth": 6}},
    {"id": "d1", "kind": "door", "geometry": {"rect": {"x": 60, "y": 135, "width": 40, "height": 10}},
     "style": {"stroke": "#654321", "fill": "#8B4513", "strokeWidth": 2}},
    {"id": "win1", "kind": "window", "geometry": {"rect": {"x": 120, "y": 15, "width": 60, "height": 10}},
     "style": {"stroke": "#4682B4", "fill": "#87CEEB", "strokeWidth": 2}},
    {"id": "l1", "kind": "label", "geometry": {"position": {"x": 300, "y": 300}, "text": "North & South"},
     "style": {"fill": "#000000", "fontSize": 16}}
  ]
}`

func userObjects(t *testing.T, doc document.Document) map[string]plan.Object {
	t.Helper()
	objs, err := document.Decode(doc)
	require.NoError(t, err)
	out := make(map[string]plan.Object)
	for _, obj := range objs {
		if obj.Owner != "" {
			continue
		}
		out[obj.ID] = obj
	}
	return out
}

func TestExportedSVGConvertsBack(t *testing.T) {
	original, err := document.Unmarshal([]byte(planJSON))
	require.NoError(t, err)
	sc, err := document.Deserialize(original, plan.DefaultSettings())
	require.NoError(t, err)

	converted, err := New().Convert(strings.NewReader(export.SVG(sc)))
	require.NoError(t, err)

	assert.Equal(t, document.Canvas{Width: 640, Height: 480}, converted.Canvas)
	assert.Equal(t, userObjects(t, original), userObjects(t, *converted))
	assert.Equal(t, plan.KindRoom, converted.Objects[0].Kind)
}

func TestConvertSourcePlan(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="500" height="400">
  <rect id="Wall_a" x="0" y="0" width="300" height="10" />
  <rect id="Wall_b" x="296" y="2" width="10" height="200" />
  <path id="Hall_room" d="M10 10 H290 V190 H10 Z" />
  <rect id="Door_1" x="100" y="185" width="40" height="10" />
  <rect id="Room_" x="0" y="0" width="0" height="50" />
</svg>`

	doc, err := New().Convert(strings.NewReader(svg))
	require.NoError(t, err)
	objs := userObjects(t, *doc)
	require.Len(t, objs, 4)

	room := objs["Hall_room"]
	assert.Equal(t, "Hall", room.Name)
	assert.Equal(t, plan.RectGeometry{Rect: plan.Rect{X: 10, Y: 10, Width: 280, Height: 180}}, room.Geometry)
	require.NotNil(t, room.Derived)
	assert.Equal(t, 14*9*9, room.Derived.Area)

	a := objs["a"].Geometry.(plan.WallGeometry)
	b := objs["b"].Geometry.(plan.WallGeometry)
	assert.Equal(t, a.B, b.A, "wall ends within tolerance are joined")
	assert.Equal(t, 10.0, objs["a"].Style.StrokeWidth)

	door := objs["1"].Geometry.(plan.DoorGeometry)
	assert.Equal(t, 190.0, door.Sill.A.Y)
}

func TestConvertRejectsBadInput(t *testing.T) {
	_, err := New().Convert(strings.NewReader("not svg"))
	assert.Error(t, err)

	_, err = New().Convert(strings.NewReader(`<svg><path id="Wall_x" d="C 1 2" /></svg>`))
	assert.Error(t, err)
}

func TestConvertDuplicateIDs(t *testing.T) {
	svg := `<svg><rect id="Room_a" x="0" y="0" width="40" height="40" /><rect id="Window_a" x="0" y="0" width="20" height="5" /></svg>`
	doc, err := New().Convert(strings.NewReader(svg))
	require.NoError(t, err)
	require.Len(t, doc.Objects, 2)
	assert.Equal(t, "a", doc.Objects[0].ID)
	assert.NotEqual(t, "a", doc.Objects[1].ID)
	assert.Equal(t, document.Canvas{Width: plan.DefaultCanvasWidth, Height: plan.DefaultCanvasHeight}, doc.Canvas)
}

func TestRenderer(t *testing.T) {
	doc, err := document.LoadTemplate("studio")
	require.NoError(t, err)

	svg, err := NewRenderer(false).Render(&doc)
	require.NoError(t, err)
	assert.Contains(t, svg, `id="Room_studio-main"`)
	assert.Contains(t, svg, "2700 sq ft")
	assert.NotContains(t, svg, "#e0e0e0")

	withGrid, err := NewRenderer(true).Render(&doc)
	require.NoError(t, err)
	assert.Contains(t, withGrid, "#e0e0e0")

	_, err = NewRenderer(false).Render(nil)
	assert.ErrorIs(t, err, document.ErrMalformed)
}
