package svgscene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenRect(t *testing.T) {
	var p Path
	p.addRect(1, 2, 4, 6)
	polys := p.Flatten(0.25, 16)
	require.Len(t, polys, 1)

	// a closed subpath repeats its first point as its last
	poly := polys[0]
	require.Len(t, poly, 5)
	assert.Equal(t, poly[0], poly[4])
	assert.ElementsMatch(t,
		Polyline{{1, 2}, {4, 2}, {4, 6}, {1, 6}},
		poly[:4])
}

func TestFlattenOpenLine(t *testing.T) {
	var p Path
	p.Start(Point{0, 0})
	p.Line(Point{10, 0})
	polys := p.Flatten(0.25, 16)
	require.Len(t, polys, 1)
	assert.Equal(t, Polyline{{0, 0}, {10, 0}}, polys[0])
}

func TestFlattenDropsDegenerate(t *testing.T) {
	var p Path
	p.Start(Point{5, 5}) // bare move, no segments
	p.Start(Point{0, 0})
	p.Line(Point{0, 0}) // zero-length segment
	p.Line(Point{1, 0})
	polys := p.Flatten(0.25, 16)
	require.Len(t, polys, 1)
	assert.Equal(t, Polyline{{0, 0}, {1, 0}}, polys[0])
}

func TestFlattenSubpaths(t *testing.T) {
	var p Path
	p.addRect(0, 0, 1, 1)
	p.addRect(2, 0, 3, 1)
	polys := p.Flatten(0.25, 16)
	require.Len(t, polys, 2)
}

// segmentDistance is the distance from p to the segment a-b.
func segmentDistance(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	u := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	if u < 0 {
		u = 0
	} else if u > 1 {
		u = 1
	}
	return math.Hypot(p.X-(a.X+u*dx), p.Y-(a.Y+u*dy))
}

func polylineDistance(p Point, poly Polyline) float64 {
	best := math.Inf(1)
	for i := 0; i+1 < len(poly); i++ {
		if d := segmentDistance(p, poly[i], poly[i+1]); d < best {
			best = d
		}
	}
	return best
}

func cubicAt(p0, p1, p2, p3 Point, u float64) Point {
	v := 1 - u
	return Point{
		X: v*v*v*p0.X + 3*v*v*u*p1.X + 3*v*u*u*p2.X + u*u*u*p3.X,
		Y: v*v*v*p0.Y + 3*v*v*u*p1.Y + 3*v*u*u*p2.Y + u*u*u*p3.Y,
	}
}

func TestFlattenCubicTolerance(t *testing.T) {
	p0 := Point{0, 0}
	p1 := Point{0, 10}
	p2 := Point{10, 10}
	p3 := Point{10, 0}

	for _, flatness := range []float64{1.0, 0.25, 0.05} {
		var p Path
		p.Start(p0)
		p.CubeBezier(p1, p2, p3)
		polys := p.Flatten(flatness, 16)
		require.Len(t, polys, 1)
		poly := polys[0]
		require.GreaterOrEqual(t, len(poly), 2)
		assert.Equal(t, p0, poly[0])
		assert.Equal(t, p3, poly[len(poly)-1])

		for k := 0; k <= 100; k++ {
			u := float64(k) / 100
			d := polylineDistance(cubicAt(p0, p1, p2, p3, u), poly)
			assert.LessOrEqualf(t, d, flatness*1.01,
				"flatness %v, t=%v", flatness, u)
		}
	}
}

func TestFlattenTighterFlatnessMorePoints(t *testing.T) {
	mk := func(flatness float64) int {
		var p Path
		p.Start(Point{0, 0})
		p.QuadBezier(Point{5, 10}, Point{10, 0})
		polys := p.Flatten(flatness, 16)
		require.Len(t, polys, 1)
		return len(polys[0])
	}
	loose := mk(1.0)
	tight := mk(0.01)
	assert.Greater(t, tight, loose)
}

func TestFlattenCubicSCurve(t *testing.T) {
	// an s-shaped curve crosses its own chord at the midpoint; it
	// must still flatten within tolerance, not collapse to nothing
	p0 := Point{0, 0}
	p1 := Point{10, 10}
	p2 := Point{-10, -10}
	p3 := Point{0, 0}

	var p Path
	p.Start(p0)
	p.CubeBezier(p1, p2, p3)
	polys := p.Flatten(0.1, 16)
	require.Len(t, polys, 1)
	poly := polys[0]
	require.Greater(t, len(poly), 3)

	// the curve reaches almost 3 units from its chord; the polyline
	// has to follow it out there
	assert.Less(t, polylineDistance(Point{2.88, 2.88}, poly), 0.11)
	for k := 0; k <= 200; k++ {
		u := float64(k) / 200
		d := polylineDistance(cubicAt(p0, p1, p2, p3, u), poly)
		assert.LessOrEqualf(t, d, 0.101, "t=%v", u)
	}
}

func TestFlattenArcCoincidentEndpoints(t *testing.T) {
	// an arc whose start and end coincide is omitted, and must not
	// take the rest of the subpath down with it
	var p Path
	p.Start(Point{0, 0})
	p.Arc(5, 5, 0, false, true, Point{0, 0})
	p.Line(Point{1, 0})
	polys := p.Flatten(0.25, 16)
	require.Len(t, polys, 1)
	assert.Equal(t, Polyline{{0, 0}, {1, 0}}, polys[0])
}

func TestFlattenArcEndsOnEndpoint(t *testing.T) {
	var p Path
	p.Start(Point{0, 0})
	p.Arc(1, 1, 0, false, true, Point{2, 0})
	polys := p.Flatten(0.05, 16)
	require.Len(t, polys, 1)
	poly := polys[0]

	last := poly[len(poly)-1]
	assert.InDelta(t, 2, last.X, 1e-6)
	assert.InDelta(t, 0, last.Y, 1e-6)

	// sweep=1 bulges toward negative y in the y-down user space
	apex := polylineDistance(Point{1, -1}, poly)
	assert.Less(t, apex, 0.06)
}
