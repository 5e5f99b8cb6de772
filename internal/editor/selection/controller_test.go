package selection

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

func newScene(t *testing.T) *scene.Scene {
	t.Helper()
	return scene.New(models.DefaultSettings())
}

func addRoom(t *testing.T, sc *scene.Scene, id string, r models.Rect) {
	t.Helper()
	require.NoError(t, sc.Add(models.Object{
		ID:         id,
		Kind:       models.KindRoom,
		Geometry:   models.RectGeometry{Rect: r},
		Style:      models.DefaultStyle(models.KindRoom),
		Selectable: true,
	}))
}

func TestHitTestEmptyScene(t *testing.T) {
	c := New(newScene(t))
	_, ok := c.HitTest(pt(20, 20))
	assert.False(t, ok, "grid lines are never hit")

	c.PointerDown(pt(20, 20))
	_, ok = c.Selected()
	assert.False(t, ok)
}

func TestHitTestTopmostWins(t *testing.T) {
	sc := newScene(t)
	addRoom(t, sc, "bottom", models.Rect{X: 0, Y: 0, Width: 100, Height: 100})
	addRoom(t, sc, "top", models.Rect{X: 50, Y: 50, Width: 100, Height: 100})
	c := New(sc)

	obj, ok := c.HitTest(pt(75, 75))
	require.True(t, ok)
	assert.Equal(t, "top", obj.ID)

	obj, ok = c.HitTest(pt(25, 25))
	require.True(t, ok)
	assert.Equal(t, "bottom", obj.ID)

	_, ok = c.HitTest(pt(300, 300))
	assert.False(t, ok)
}

func TestHitTestSuspendedScene(t *testing.T) {
	sc := newScene(t)
	addRoom(t, sc, "r", models.Rect{Width: 100, Height: 100})
	sc.Suspend()

	_, ok := New(sc).HitTest(pt(10, 10))
	assert.False(t, ok)
}

func TestHitTestWall(t *testing.T) {
	sc := newScene(t)
	require.NoError(t, sc.Add(models.Object{
		ID:         "w",
		Kind:       models.KindWall,
		Geometry:   models.WallGeometry{Segment: models.Segment{A: pt(0, 100), B: pt(200, 100)}},
		Style:      models.DefaultStyle(models.KindWall),
		Selectable: true,
	}))
	c := New(sc)

	_, ok := c.HitTest(pt(50, 105))
	assert.True(t, ok)
	_, ok = c.HitTest(pt(50, 120))
	assert.False(t, ok)
}

func TestDragMovesSelectedRoom(t *testing.T) {
	sc := newScene(t)
	addRoom(t, sc, "r", models.Rect{X: 20, Y: 20, Width: 60, Height: 60})
	c := New(sc)

	c.PointerDown(pt(40, 40))
	sel, ok := c.Selected()
	require.True(t, ok)
	assert.Equal(t, "r", sel.ID)

	require.NoError(t, c.PointerMove(pt(61, 40)))
	res, err := c.PointerUp(pt(81, 59))
	require.NoError(t, err)
	assert.True(t, res.Snapshot)

	got, _ := sc.Get("r")
	assert.Equal(t, models.RectGeometry{Rect: models.Rect{X: 60, Y: 40, Width: 60, Height: 60}}, got.Geometry)
}

func TestClickWithoutDragDoesNotSnapshot(t *testing.T) {
	sc := newScene(t)
	addRoom(t, sc, "r", models.Rect{X: 20, Y: 20, Width: 60, Height: 60})
	c := New(sc)

	c.PointerDown(pt(40, 40))
	res, err := c.PointerUp(pt(42, 41))
	require.NoError(t, err)
	assert.False(t, res.Snapshot)
}

func TestResizeHandle(t *testing.T) {
	sc := newScene(t)
	addRoom(t, sc, "r", models.Rect{X: 20, Y: 20, Width: 60, Height: 60})
	c := New(sc)
	require.NoError(t, c.Select("r"))

	c.PointerDown(pt(79, 81))
	res, err := c.PointerUp(pt(120, 60))
	require.NoError(t, err)
	assert.True(t, res.Snapshot)

	got, _ := sc.Get("r")
	assert.Equal(t, models.RectGeometry{Rect: models.Rect{X: 20, Y: 20, Width: 100, Height: 40}}, got.Geometry)
	// 15ft x 6ft
	assert.Equal(t, 90, got.Derived.Area)
}

func TestResizeWallEndpoint(t *testing.T) {
	sc := newScene(t)
	require.NoError(t, sc.Add(models.Object{
		ID:         "w",
		Kind:       models.KindWall,
		Geometry:   models.WallGeometry{Segment: models.Segment{A: pt(0, 0), B: pt(100, 0)}},
		Style:      models.DefaultStyle(models.KindWall),
		Selectable: true,
	}))
	c := New(sc)
	require.NoError(t, c.Select("w"))

	c.PointerDown(pt(98, 2))
	_, err := c.PointerUp(pt(100, 80))
	require.NoError(t, err)

	got, _ := sc.Get("w")
	assert.Equal(t, models.WallGeometry{Segment: models.Segment{A: pt(0, 0), B: pt(100, 80)}}, got.Geometry)
}

func TestDeleteSelected(t *testing.T) {
	sc := newScene(t)
	addRoom(t, sc, "r", models.Rect{X: 20, Y: 20, Width: 60, Height: 60})
	c := New(sc)

	res, err := c.Delete()
	require.NoError(t, err)
	assert.False(t, res.Snapshot, "nothing selected")

	require.NoError(t, c.Select("r"))
	res, err = c.Delete()
	require.NoError(t, err)
	assert.True(t, res.Snapshot)
	_, ok := c.Selected()
	assert.False(t, ok)
	assert.Empty(t, sc.Content())
}

func TestEditText(t *testing.T) {
	sc := newScene(t)
	require.NoError(t, sc.Add(models.Object{
		ID:         "l",
		Kind:       models.KindLabel,
		Geometry:   models.LabelGeometry{Position: pt(10, 10), Text: models.DefaultLabelText},
		Style:      models.DefaultStyle(models.KindLabel),
		Selectable: true,
	}))
	addRoom(t, sc, "r", models.Rect{Width: 20, Height: 20})
	c := New(sc)

	res, err := c.EditText("l", "Kitchen")
	require.NoError(t, err)
	assert.True(t, res.Snapshot)
	got, _ := sc.Get("l")
	assert.Equal(t, "Kitchen", got.Geometry.(models.LabelGeometry).Text)

	res, err = c.EditText("l", "Kitchen")
	require.NoError(t, err)
	assert.False(t, res.Snapshot)

	_, err = c.EditText("r", "x")
	assert.ErrorIs(t, err, ErrNotEditable)
	_, err = c.EditText("missing", "x")
	assert.ErrorIs(t, err, scene.ErrNotFound)
}

func TestRename(t *testing.T) {
	sc := newScene(t)
	addRoom(t, sc, "r", models.Rect{Width: 20, Height: 20})
	c := New(sc)

	res, err := c.Rename("r", "Bedroom")
	require.NoError(t, err)
	assert.True(t, res.Snapshot)
	got, _ := sc.Get("r")
	assert.Equal(t, "Bedroom", got.Name)
}

func TestSelectRejectsGrid(t *testing.T) {
	c := New(newScene(t))
	assert.Error(t, c.Select("grid-v1"))
}
