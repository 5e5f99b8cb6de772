package document

import (
	"testing"

	"floorplanner/internal/editor/models"
	"floorplanner/internal/editor/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y float64) models.Point {
	return models.Point{X: x, Y: y}
}

func sampleScene(t *testing.T, gridSize float64) *scene.Scene {
	t.Helper()
	settings := models.DefaultSettings()
	settings.GridSize = gridSize
	sc := scene.New(settings)

	add := func(obj models.Object) {
		obj.Style = models.DefaultStyle(obj.Kind)
		obj.Selectable = true
		require.NoError(t, sc.Add(obj))
	}
	add(models.Object{ID: "wall", Kind: models.KindWall, Geometry: models.WallGeometry{Segment: models.Segment{A: pt(0, 0), B: pt(100, 0)}}})
	add(models.Object{ID: "room", Kind: models.KindRoom, Name: "Kitchen", Geometry: models.RectGeometry{Rect: models.Rect{Width: 60, Height: 60}}})
	room, _ := sc.Get("room")
	require.NoError(t, sc.Add(sc.AreaLabel(room)))
	rect := models.Rect{X: 40, Y: 100, Width: 40, Height: models.DoorThickness}
	add(models.Object{ID: "door", Kind: models.KindDoor, Geometry: models.DoorGeometry{Rect: rect, Sill: models.Segment{A: pt(40, 105), B: pt(80, 105)}}})
	add(models.Object{ID: "window", Kind: models.KindWindow, Geometry: models.RectGeometry{Rect: models.Rect{X: 200, Y: 0, Width: 60, Height: 20}}})
	add(models.Object{ID: "label", Kind: models.KindLabel, Geometry: models.LabelGeometry{Position: pt(300, 300), Text: "Hall"}})
	return sc
}

func TestSerializeExcludesGrid(t *testing.T) {
	sc := sampleScene(t, 20)
	doc := Serialize(sc)

	assert.Equal(t, Version, doc.Version)
	assert.Equal(t, Canvas{Width: 1000, Height: 700}, doc.Canvas)
	require.Len(t, doc.Objects, 6)
	for _, od := range doc.Objects {
		assert.NotEqual(t, models.KindGrid, od.Kind)
	}
	assert.Equal(t, 81, doc.Objects[1].Derived.Area)
}

func TestRoundTripAcrossGridSizes(t *testing.T) {
	for _, grids := range [][2]float64{{20, 20}, {20, 10}, {10, 40}} {
		original := sampleScene(t, grids[0])

		data, err := Marshal(Serialize(original))
		require.NoError(t, err)
		doc, err := Unmarshal(data)
		require.NoError(t, err)

		settings := models.DefaultSettings()
		settings.GridSize = grids[1]
		loaded, err := Deserialize(doc, settings)
		require.NoError(t, err)

		want, got := original.Content(), loaded.Content()
		require.Len(t, got, len(want))
		for i := range want {
			assert.Equal(t, want[i].ID, got[i].ID)
			assert.Equal(t, want[i].Kind, got[i].Kind)
			assert.Equal(t, want[i].Style, got[i].Style)
			assert.Equal(t, want[i].Owner, got[i].Owner)
			if want[i].Owner == "" {
				assert.Equal(t, want[i].Geometry, got[i].Geometry)
				assert.Equal(t, want[i].Name, got[i].Name)
				assert.Equal(t, want[i].Selectable, got[i].Selectable)
			}
		}
	}
}

func TestDeserializeRecomputesStaleArea(t *testing.T) {
	doc := Serialize(sampleScene(t, 20))
	doc.Objects[1].Derived = &models.Derived{Area: 9999}
	stale := "9999 sq ft"
	doc.Objects[2].Geometry.Text = &stale

	sc, err := Deserialize(doc, models.DefaultSettings())
	require.NoError(t, err)
	room, _ := sc.Get("room")
	assert.Equal(t, 81, room.Derived.Area)

	label, _ := sc.Get(doc.Objects[2].ID)
	assert.Equal(t, "81 sq ft", label.Geometry.(models.LabelGeometry).Text)
}

func TestDeserializeAddsMissingAreaLabel(t *testing.T) {
	doc := Document{
		Version: Version,
		Objects: []ObjectDoc{{
			ID:       "r",
			Kind:     models.KindRoom,
			Geometry: GeometryDoc{Rect: &models.Rect{Width: 40, Height: 40}},
		}},
	}
	sc, err := Deserialize(doc, models.DefaultSettings())
	require.NoError(t, err)

	content := sc.Content()
	require.Len(t, content, 2)
	assert.Equal(t, models.DefaultStyle(models.KindRoom), content[0].Style)
	assert.Equal(t, "r", content[1].Owner)
	assert.False(t, content[1].Selectable)
	assert.Equal(t, models.LabelGeometry{Position: pt(20, 20), Text: "36 sq ft"}, content[1].Geometry)
}

func TestDeserializeFailsClosed(t *testing.T) {
	good := Serialize(sampleScene(t, 20))

	cases := map[string]struct {
		mutate func(*Document)
		want   error
	}{
		"version": {func(d *Document) { d.Version = 2 }, ErrUnsupportedVersion},
		"kind":    {func(d *Document) { d.Objects[0].Kind = "stairs" }, ErrMalformed},
		"wall":    {func(d *Document) { d.Objects[0].Geometry.End = nil }, ErrMalformed},
		"dup id":  {func(d *Document) { d.Objects[3].ID = d.Objects[0].ID }, ErrMalformed},
		"owner":   {func(d *Document) { d.Objects[2].Owner = "wall" }, ErrMalformed},
		"rect":    {func(d *Document) { d.Objects[4].Geometry.Rect = nil }, ErrMalformed},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			doc := good
			doc.Objects = append([]ObjectDoc(nil), good.Objects...)
			tc.mutate(&doc)

			sc := sampleScene(t, 20)
			before := sc.Content()
			err := Apply(sc, doc)
			require.ErrorIs(t, err, tc.want)
			assert.Equal(t, before, sc.Content(), "scene must be untouched")
		})
	}
}

func TestDeserializeSkipsGridObjects(t *testing.T) {
	doc := Document{
		Version: Version,
		Objects: []ObjectDoc{{
			ID:       "grid-v0",
			Kind:     models.KindGrid,
			Geometry: GeometryDoc{Start: &models.Point{}, End: &models.Point{Y: 700}},
		}},
	}
	sc, err := Deserialize(doc, models.DefaultSettings())
	require.NoError(t, err)
	assert.Empty(t, sc.Content())
}

func TestApplyUsesDocumentCanvas(t *testing.T) {
	sc := scene.New(models.DefaultSettings())
	doc := Document{Version: Version, Canvas: Canvas{Width: 400, Height: 200}}

	require.NoError(t, Apply(sc, doc))
	assert.Equal(t, 400.0, sc.Settings().CanvasWidth)
	// 400/20 vertical + 200/20 horizontal
	assert.Equal(t, 30, sc.Len())
}

func TestUnmarshalMalformed(t *testing.T) {
	_, err := Unmarshal([]byte(`{"version":`))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestTemplates(t *testing.T) {
	areas := map[string][]int{
		"blank":       nil,
		"studio":      {2700},
		"two-bedroom": {675, 675, 1890},
		"office":      {1350, 1080, 1080},
	}
	require.Len(t, Templates(), len(areas))

	for _, tpl := range Templates() {
		doc, err := LoadTemplate(tpl.ID)
		require.NoError(t, err, tpl.ID)
		sc, err := Deserialize(doc, models.DefaultSettings())
		require.NoError(t, err, tpl.ID)

		var got []int
		for _, obj := range sc.Content() {
			if obj.Kind == models.KindRoom {
				got = append(got, obj.Derived.Area)
			}
		}
		assert.Equal(t, areas[tpl.ID], got, tpl.ID)
	}

	_, err := LoadTemplate("castle")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}
