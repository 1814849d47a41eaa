package svgscene

import (
	"fmt"
	"math"
	"strings"
)

// This file defines the basic path structure.

// Point is a position in user space.
type Point struct {
	X, Y float64
}

// Operation groups the different SVG path commands.
// All coordinates are absolute.
type Operation interface {
	appendSVG(chunks []string) []string
}

// MoveTo starts a new subpath at the given point.
type MoveTo Point

// LineTo draws a line to the given point.
type LineTo Point

// QuadTo draws a quadratic Bezier curve; [0] is the control point,
// [1] the end point.
type QuadTo [2]Point

// CubicTo draws a cubic Bezier curve; [0] and [1] are the control
// points, [2] the end point.
type CubicTo [3]Point

// ArcTo draws an elliptical arc to End, in the endpoint
// parameterization of the SVG `A` command. It is reduced to cubic
// Bezier curves when the path is flattened.
type ArcTo struct {
	Rx, Ry, Rotation float64 // radii and x-axis rotation in radians
	LargeArc, Sweep  bool
	End              Point
}

// Close closes the current subpath back to its starting point.
type Close struct{}

// Path describes a sequence of basic SVG operations.
// Higher-level shapes are reduced to a path before flattening.
type Path []Operation

// Start starts a new subpath at the given point.
func (p *Path) Start(a Point) {
	*p = append(*p, MoveTo(a))
}

// Line adds a linear segment to the current subpath.
func (p *Path) Line(b Point) {
	*p = append(*p, LineTo(b))
}

// QuadBezier adds a quadratic segment to the current subpath.
func (p *Path) QuadBezier(b, c Point) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current subpath.
func (p *Path) CubeBezier(b, c, d Point) {
	*p = append(*p, CubicTo{b, c, d})
}

// Arc adds an elliptical arc segment to the current subpath.
func (p *Path) Arc(rx, ry, rotation float64, largeArc, sweep bool, end Point) {
	*p = append(*p, ArcTo{Rx: rx, Ry: ry, Rotation: rotation, LargeArc: largeArc, Sweep: sweep, End: end})
}

// Stop joins the ends of the subpath if closeLoop is true.
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// Clear zeros the path slice.
func (p *Path) Clear() {
	*p = (*p)[:0]
}

func (op MoveTo) appendSVG(chunks []string) []string {
	return append(chunks, fmt.Sprintf("M%4.3f,%4.3f", op.X, op.Y))
}

func (op LineTo) appendSVG(chunks []string) []string {
	return append(chunks, fmt.Sprintf("L%4.3f,%4.3f", op.X, op.Y))
}

func (op QuadTo) appendSVG(chunks []string) []string {
	return append(chunks, fmt.Sprintf("Q%4.3f,%4.3f,%4.3f,%4.3f",
		op[0].X, op[0].Y, op[1].X, op[1].Y))
}

func (op CubicTo) appendSVG(chunks []string) []string {
	return append(chunks, fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f",
		op[0].X, op[0].Y, op[1].X, op[1].Y, op[2].X, op[2].Y))
}

func (op ArcTo) appendSVG(chunks []string) []string {
	large, sweep := 0, 0
	if op.LargeArc {
		large = 1
	}
	if op.Sweep {
		sweep = 1
	}
	return append(chunks, fmt.Sprintf("A%4.3f,%4.3f,%4.3f,%d,%d,%4.3f,%4.3f",
		op.Rx, op.Ry, op.Rotation*180/math.Pi, large, sweep, op.End.X, op.End.Y))
}

func (op Close) appendSVG(chunks []string) []string {
	return append(chunks, "Z")
}

// ToSVGPath returns a string representation of the path.
func (p Path) ToSVGPath() string {
	chunks := make([]string, 0, len(p))
	for _, op := range p {
		chunks = op.appendSVG(chunks)
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}
