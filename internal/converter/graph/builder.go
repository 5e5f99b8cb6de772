package graph

import (
	"math"

	"floorplanner/internal/editor/geometry"
	plan "floorplanner/internal/editor/models"
)

// ============================================================
// Graph Builder
// ============================================================

const (
	mergeTolerance    = 8.0 // Радиус склейки близких концов стен
	axisSnapTolerance = 4.0 // Насколько расходиться от оси, чтобы зафиксировать координату
)

// Edge is a joined wall: the index it was added under and its final segment.
type Edge struct {
	Index   int
	Segment plan.Segment
}

// GraphBuilder склеивает концы импортированных стен.
// Endpoints closer than mergeTolerance become one vertex, and nearly
// horizontal or vertical walls are straightened.
type GraphBuilder struct {
	vertices []plan.Point
	walls    [][2]int
}

func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{}
}

// AddWall регистрирует сегмент стены и возвращает его индекс.
func (g *GraphBuilder) AddWall(s plan.Segment) int {
	a := g.findOrCreateVertex(s.A)
	b := g.findOrCreateVertex(s.B)
	g.walls = append(g.walls, [2]int{a, b})
	return len(g.walls) - 1
}

// Build возвращает стены после склейки; стены, схлопнувшиеся в точку, пропускаются.
func (g *GraphBuilder) Build() []Edge {
	g.snapAxisAligned()

	edges := make([]Edge, 0, len(g.walls))
	for i, w := range g.walls {
		if w[0] == w[1] {
			continue
		}
		edges = append(edges, Edge{Index: i, Segment: plan.Segment{A: g.vertices[w[0]], B: g.vertices[w[1]]}})
	}
	return edges
}

func (g *GraphBuilder) findOrCreateVertex(p plan.Point) int {
	for i, v := range g.vertices {
		if geometry.Distance(p, v) <= mergeTolerance {
			return i
		}
	}
	g.vertices = append(g.vertices, p)
	return len(g.vertices) - 1
}

// snapAxisAligned фиксирует координаты вершин по осям для почти горизонтальных/вертикальных стен.
func (g *GraphBuilder) snapAxisAligned() {
	type agg struct {
		sumX, sumY float64
		cntX, cntY int
	}
	aggs := make(map[int]*agg)
	at := func(v int) *agg {
		a := aggs[v]
		if a == nil {
			a = &agg{}
			aggs[v] = a
		}
		return a
	}

	for _, w := range g.walls {
		if w[0] == w[1] {
			continue
		}
		v1, v2 := g.vertices[w[0]], g.vertices[w[1]]
		dx, dy := v1.X-v2.X, v1.Y-v2.Y

		switch {
		case dy != 0 && math.Abs(dy) <= axisSnapTolerance:
			target := (v1.Y + v2.Y) / 2
			for _, v := range w {
				a := at(v)
				a.sumY += target
				a.cntY++
			}
		case dx != 0 && math.Abs(dx) <= axisSnapTolerance:
			target := (v1.X + v2.X) / 2
			for _, v := range w {
				a := at(v)
				a.sumX += target
				a.cntX++
			}
		}
	}

	for v, a := range aggs {
		p := g.vertices[v]
		if a.cntX > 0 {
			p.X = a.sumX / float64(a.cntX)
		}
		if a.cntY > 0 {
			p.Y = a.sumY / float64(a.cntY)
		}
		g.vertices[v] = p
	}
}

// ============================================================
// Wall shapes
// ============================================================

// Centerline превращает прямоугольник стены в осевую линию по длинной стороне.
func Centerline(r plan.Rect) (plan.Segment, float64) {
	thickness := math.Min(r.Width, r.Height)
	if r.Width >= r.Height {
		y := r.Y + r.Height/2
		return plan.Segment{A: plan.Point{X: r.X, Y: y}, B: plan.Point{X: r.X + r.Width, Y: y}}, thickness
	}
	x := r.X + r.Width/2
	return plan.Segment{A: plan.Point{X: x, Y: r.Y}, B: plan.Point{X: x, Y: r.Y + r.Height}}, thickness
}

// Bounds возвращает охватывающий прямоугольник точек.
func Bounds(points []plan.Point) plan.Rect {
	if len(points) == 0 {
		return plan.Rect{}
	}
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return plan.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
