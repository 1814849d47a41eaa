package svgscene

import "math"

// Flattening of path operations into polylines.

// Polyline is an ordered run of distinct points. A closed subpath
// repeats its first point as the last one.
type Polyline []Point

// flattener accumulates polylines while walking a Path.
type flattener struct {
	flatness float64
	maxDepth int

	out    []Polyline
	cur    Polyline
	first  Point // start of the current subpath
	inPath bool
}

// Flatten subdivides the curved segments of p until their deviation
// from the emitted chords is below flatness, bounded by maxDepth
// subdivision levels, and returns the resulting polylines.
func (p Path) Flatten(flatness float64, maxDepth int) []Polyline {
	if flatness <= 0 {
		flatness = defaultFlatness
	}
	if maxDepth <= 0 {
		maxDepth = defaultCurveDepth
	}
	f := flattener{flatness: flatness, maxDepth: maxDepth}
	pen := Point{}
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			f.start(Point(op))
			pen = Point(op)
		case LineTo:
			f.add(Point(op))
			pen = Point(op)
		case QuadTo:
			f.quad(pen, op[0], op[1], f.maxDepth)
			pen = op[1]
		case CubicTo:
			f.cubic(pen, op[0], op[1], op[2], f.maxDepth)
			pen = op[2]
		case ArcTo:
			for _, cb := range arcToCubics(pen, op) {
				f.cubic(pen, cb[0], cb[1], cb[2], f.maxDepth)
				pen = cb[2]
			}
		case Close:
			f.close()
			pen = f.first
		}
	}
	f.finish()
	return f.out
}

func (f *flattener) start(a Point) {
	f.finish()
	f.cur = Polyline{a}
	f.first = a
	f.inPath = true
}

// add appends a point, dropping degenerate zero-length segments.
func (f *flattener) add(b Point) {
	if !f.inPath {
		f.start(b)
		return
	}
	if last := f.cur[len(f.cur)-1]; samePoint(last, b) {
		return
	}
	f.cur = append(f.cur, b)
}

func (f *flattener) close() {
	if !f.inPath {
		return
	}
	f.add(f.first)
	f.finish()
}

// finish flushes the current polyline; runs of fewer than two points
// carry no geometry and are discarded.
func (f *flattener) finish() {
	if f.inPath && len(f.cur) >= 2 {
		f.out = append(f.out, f.cur)
	}
	f.cur = nil
	f.inPath = false
}

// quad recursively subdivides the quadratic curve until the control
// point is within flatness of the chord. The curve lies in the convex
// hull of its control points, so this bounds the true deviation; an
// S-shaped curve can cross its chord at the midpoint, which a
// midpoint-only test would wrongly accept.
func (f *flattener) quad(p0, p1, p2 Point, depth int) {
	if depth <= 0 || chordDistance(p1, p0, p2) <= f.flatness {
		f.add(p2)
		return
	}
	// de Casteljau split at t = 1/2
	mid := Point{
		X: 0.25*p0.X + 0.5*p1.X + 0.25*p2.X,
		Y: 0.25*p0.Y + 0.5*p1.Y + 0.25*p2.Y,
	}
	l1 := midPoint(p0, p1)
	r1 := midPoint(p1, p2)
	f.quad(p0, l1, mid, depth-1)
	f.quad(mid, r1, p2, depth-1)
}

// cubic is the cubic analog of quad; both control points must be
// within flatness of the chord.
func (f *flattener) cubic(p0, p1, p2, p3 Point, depth int) {
	if depth <= 0 ||
		(chordDistance(p1, p0, p3) <= f.flatness &&
			chordDistance(p2, p0, p3) <= f.flatness) {
		f.add(p3)
		return
	}
	mid := Point{
		X: 0.125*p0.X + 0.375*p1.X + 0.375*p2.X + 0.125*p3.X,
		Y: 0.125*p0.Y + 0.375*p1.Y + 0.375*p2.Y + 0.125*p3.Y,
	}
	l1 := midPoint(p0, p1)
	m := midPoint(p1, p2)
	r2 := midPoint(p2, p3)
	l2 := midPoint(l1, m)
	r1 := midPoint(m, r2)
	f.cubic(p0, l1, l2, mid, depth-1)
	f.cubic(mid, r1, r2, p3, depth-1)
}

func midPoint(a, b Point) Point {
	return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// samePoint collapses points closer than the resolution any
// tolerance could meaningfully distinguish.
func samePoint(a, b Point) bool {
	const eps = 1e-12
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

// chordDistance is the distance from p to the chord segment a-b. The
// segment, not the infinite line: a control point overshooting the
// chord longitudinally pulls the curve past the chord ends as well.
func chordDistance(p, a, b Point) float64 {
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
