package graph

import (
	"testing"

	plan "floorplanner/internal/editor/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seg(ax, ay, bx, by float64) plan.Segment {
	return plan.Segment{A: plan.Point{X: ax, Y: ay}, B: plan.Point{X: bx, Y: by}}
}

func TestBuildMergesCloseEndpoints(t *testing.T) {
	g := NewGraphBuilder()
	g.AddWall(seg(0, 0, 100, 0))
	g.AddWall(seg(103, 2, 103, 100))

	edges := g.Build()
	require.Len(t, edges, 2)
	assert.Equal(t, edges[0].Segment.B, edges[1].Segment.A)
}

func TestBuildStraightensNearAxisWalls(t *testing.T) {
	g := NewGraphBuilder()
	g.AddWall(seg(0, 0, 100, 3))

	edges := g.Build()
	require.Len(t, edges, 1)
	assert.Equal(t, seg(0, 1.5, 100, 1.5), edges[0].Segment)
}

func TestBuildDropsCollapsedWalls(t *testing.T) {
	g := NewGraphBuilder()
	g.AddWall(seg(0, 0, 100, 0))
	g.AddWall(seg(0, 0, 5, 5))

	edges := g.Build()
	require.Len(t, edges, 1)
	assert.Equal(t, 0, edges[0].Index)
}

func TestCenterline(t *testing.T) {
	s, thickness := Centerline(plan.Rect{X: 0, Y: 0, Width: 200, Height: 10})
	assert.Equal(t, seg(0, 5, 200, 5), s)
	assert.Equal(t, 10.0, thickness)

	s, thickness = Centerline(plan.Rect{X: 10, Y: 0, Width: 6, Height: 90})
	assert.Equal(t, seg(13, 0, 13, 90), s)
	assert.Equal(t, 6.0, thickness)
}

func TestBounds(t *testing.T) {
	assert.Equal(t, plan.Rect{}, Bounds(nil))
	r := Bounds([]plan.Point{{X: 5, Y: 9}, {X: -1, Y: 2}, {X: 3, Y: 4}})
	assert.Equal(t, plan.Rect{X: -1, Y: 2, Width: 6, Height: 7}, r)
}
