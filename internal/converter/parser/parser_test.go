package parser

import (
	"strings"
	"testing"

	"floorplanner/internal/converter/models"
	plan "floorplanner/internal/editor/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePathAbsoluteAndRelative(t *testing.T) {
	points, err := ParsePath("M10,10 L110 10 v50 h-100 z")
	require.NoError(t, err)
	assert.Equal(t, []plan.Point{
		{X: 10, Y: 10}, {X: 110, Y: 10}, {X: 110, Y: 60}, {X: 10, Y: 60}, {X: 10, Y: 10},
	}, points)
}

func TestParsePathImplicitLineTo(t *testing.T) {
	points, err := ParsePath("m 5 5 10 0 0 10")
	require.NoError(t, err)
	assert.Equal(t, []plan.Point{{X: 5, Y: 5}, {X: 15, Y: 5}, {X: 15, Y: 15}}, points)
}

func TestParsePathErrors(t *testing.T) {
	_, err := ParsePath("  ")
	assert.Error(t, err)
	_, err = ParsePath("Q 1 2 3 4")
	assert.Error(t, err)
}

const sample = `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800 600">
  <rect id="Wall_1" x="0" y="0" width="200" height="10" />
  <rect id="Kitchen_room" x="10" y="10" width="100" height="80" fill="#fff"><title> Kitchen </title></rect>
  <rect id="decor" x="0" y="0" width="5" height="5" />
  <path id="Window_2" d="M20 0 H60 V10 H20 Z" stroke-width="3px" />
  <line id="Wall_3" x1="0" y1="0" x2="0" y2="100" stroke="#333" stroke-width="6" />
  <line x1="0" y1="20" x2="800" y2="20" stroke="#e0e0e0" />
  <g id="Door_4">
    <rect x="50" y="90" width="30" height="10" />
  </g>
  <g><rect id="Door_5" x="90" y="90" width="20" height="10" /><line x1="90" y1="95" x2="110" y2="95" /></g>
  <text id="Label_6" x="30" y="40" font-size="18" text-anchor="middle">Pantry</text>
  <text x="1" y="1">ignored</text>
</svg>`

func TestParseSVG(t *testing.T) {
	drawing, err := ParseSVG(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, models.Canvas{Width: 800, Height: 600}, drawing.Canvas)

	byID := make(map[string]models.SVGElement)
	for _, elem := range drawing.Elements {
		byID[elem.ID] = elem
	}
	require.Len(t, byID, 7)

	assert.Equal(t, models.TypeWall, byID["Wall_1"].Type)
	room := byID["Kitchen_room"]
	assert.Equal(t, models.TypeRoom, room.Type)
	assert.Equal(t, "Kitchen", room.Title)
	assert.Equal(t, "#fff", room.Paint.Fill)

	assert.Equal(t, models.TypeWindow, byID["Window_2"].Type)
	assert.Equal(t, 3.0, byID["Window_2"].Paint.StrokeWidth)

	wall := byID["Wall_3"]
	assert.Equal(t, models.LineGeometry{Segment: plan.Segment{B: plan.Point{Y: 100}}}, wall.Geometry)

	assert.Equal(t, models.RectGeometry{Rect: plan.Rect{X: 50, Y: 90, Width: 30, Height: 10}}, byID["Door_4"].Geometry)
	assert.Equal(t, models.TypeDoor, byID["Door_5"].Type)

	label := byID["Label_6"]
	assert.Equal(t, models.TextGeometry{Position: plan.Point{X: 30, Y: 40}, Text: "Pantry", Centered: true}, label.Geometry)
	assert.Equal(t, 18.0, label.Paint.FontSize)
}

func TestParseSVGCanvasFromSize(t *testing.T) {
	drawing, err := ParseSVG(strings.NewReader(`<svg width="640px" height="480" viewBox="0 0 1 1"></svg>`))
	require.NoError(t, err)
	assert.Equal(t, models.Canvas{Width: 640, Height: 480}, drawing.Canvas)
	assert.Empty(t, drawing.Elements)
}

func TestParseSVGMalformed(t *testing.T) {
	_, err := ParseSVG(strings.NewReader("<svg><rect"))
	assert.Error(t, err)
}

func TestClassifyElementByID(t *testing.T) {
	tests := map[string]models.ElementType{
		"Wall_7":      models.TypeWall,
		"Hui_Wall_7":  models.TypeWall,
		"Door_1":      models.TypeDoor,
		"Window_1":    models.TypeWindow,
		"Room_1":      models.TypeRoom,
		"Hall_room":   models.TypeRoom,
		"Toilet_Room": models.TypeRoom,
		"Balcony2":    models.TypeRoom,
		"Label_x":     models.TypeLabel,
		"grid-v1":     "",
		"":            "",
	}
	for id, want := range tests {
		assert.Equal(t, want, classifyElementByID(id), id)
	}
}
