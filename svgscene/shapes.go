package svgscene

import "math"

// This file implements the transformation from high level shapes to
// their path equivalent.

// maxDx is the maximum radians a cubic spline is allowed to span
// when approximating an off-axis ellipse arc.
const maxDx float64 = math.Pi / 8

// quarterKappa is the control point offset approximating a quarter
// circle with a single cubic Bezier.
const quarterKappa = 0.5522847498307936

// addRect adds an axis-aligned rectangle as a closed subpath.
func (p *Path) addRect(minX, minY, maxX, maxY float64) {
	p.Start(Point{minX, minY})
	p.Line(Point{maxX, minY})
	p.Line(Point{maxX, maxY})
	p.Line(Point{minX, maxY})
	p.Stop(true)
}

// addRoundRect adds a rectangle with elliptical corners of radius rx
// in the x axis and ry in the y axis. Zero radii fall back to addRect.
func (p *Path) addRoundRect(minX, minY, maxX, maxY, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		p.addRect(minX, minY, maxX, maxY)
		return
	}
	if w := maxX - minX; w < rx*2 {
		rx = w / 2
	}
	if h := maxY - minY; h < ry*2 {
		ry = h / 2
	}
	kx, ky := rx*quarterKappa, ry*quarterKappa

	p.Start(Point{minX + rx, minY})
	p.Line(Point{maxX - rx, minY})
	p.CubeBezier(Point{maxX - rx + kx, minY}, Point{maxX, minY + ry - ky}, Point{maxX, minY + ry})
	p.Line(Point{maxX, maxY - ry})
	p.CubeBezier(Point{maxX, maxY - ry + ky}, Point{maxX - rx + kx, maxY}, Point{maxX - rx, maxY})
	p.Line(Point{minX + rx, maxY})
	p.CubeBezier(Point{minX + rx - kx, maxY}, Point{minX, maxY - ry + ky}, Point{minX, maxY - ry})
	p.Line(Point{minX, minY + ry})
	p.CubeBezier(Point{minX, minY + ry - ky}, Point{minX + rx - kx, minY}, Point{minX + rx, minY})
	p.Stop(true)
}

// addEllipse adds the ellipse centered at cx, cy as a closed polygonal
// subpath, sampled parametrically with an angular step no larger than
// step radians.
func (p *Path) addEllipse(cx, cy, rx, ry, step float64) {
	if step <= 0 || step > maxDx {
		step = maxDx
	}
	segs := int(math.Ceil(2 * math.Pi / step))
	p.Start(Point{cx + rx, cy})
	for i := 1; i < segs; i++ {
		eta := 2 * math.Pi * float64(i) / float64(segs)
		p.Line(Point{cx + rx*math.Cos(eta), cy + ry*math.Sin(eta)})
	}
	p.Stop(true)
}

// ellipseStepFor returns the largest angular step whose chord
// deviation on an ellipse with the given radii stays below flatness.
func ellipseStepFor(rx, ry, flatness float64) float64 {
	r := math.Max(rx, ry)
	if r <= flatness {
		return maxDx
	}
	// deviation of a chord spanning theta is r*(1-cos(theta/2))
	return 2 * math.Acos(1-flatness/r)
}

// arcToCubics reduces an endpoint-parameterized elliptical arc
// starting at the pen position to a run of cubic Bezier curves,
// using the method of L. Maisonobe, "Drawing an elliptical arc using
// polylines, quadratic or cubic Bezier curves", 2003.
// https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf
func arcToCubics(start Point, arc ArcTo) []CubicTo {
	// an arc whose endpoints coincide is omitted (SVG F.6.2); it
	// also has no well-defined center
	if samePoint(start, arc.End) {
		return nil
	}
	ra, rb := arc.Rx, arc.Ry
	cx, cy := findEllipseCenter(&ra, &rb, arc.Rotation,
		start.X, start.Y, arc.End.X, arc.End.Y, arc.Sweep, arc.LargeArc)

	startAngle := math.Atan2(start.Y-cy, start.X-cx) - arc.Rotation
	endAngle := math.Atan2(arc.End.Y-cy, arc.End.X-cx) - arc.Rotation
	deltaTheta := endAngle - startAngle
	arcBig := math.Abs(deltaTheta) > math.Pi

	etaStart := math.Atan2(math.Sin(startAngle)/rb, math.Cos(startAngle)/ra)
	etaEnd := math.Atan2(math.Sin(endAngle)/rb, math.Cos(endAngle)/ra)
	deltaEta := etaEnd - etaStart
	if arcBig != arc.LargeArc { // Go has no boolean XOR
		if deltaEta < 0 {
			deltaEta += math.Pi * 2
		} else {
			deltaEta -= math.Pi * 2
		}
	}
	// needed if the ellipse center is at the midpoint of the
	// start and end lines
	if deltaEta < 0 && arc.Sweep {
		deltaEta += math.Pi * 2
	} else if deltaEta >= 0 && !arc.Sweep {
		deltaEta -= math.Pi * 2
	}

	segs := int(math.Abs(deltaEta)/maxDx) + 1
	dEta := deltaEta / float64(segs)
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3
	lx, ly := start.X, start.Y
	sinTheta, cosTheta := math.Sin(arc.Rotation), math.Cos(arc.Rotation)
	ldx, ldy := ellipsePrime(ra, rb, sinTheta, cosTheta, etaStart)

	out := make([]CubicTo, 0, segs)
	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float64(i)
		var px, py float64
		if i == segs {
			px, py = arc.End.X, arc.End.Y // exact endpoint, no roundoff error
		} else {
			px, py = ellipsePointAt(ra, rb, sinTheta, cosTheta, eta, cx, cy)
		}
		dx, dy := ellipsePrime(ra, rb, sinTheta, cosTheta, eta)
		out = append(out, CubicTo{
			Point{lx + alpha*ldx, ly + alpha*ldy},
			Point{px - alpha*dx, py - alpha*dy},
			Point{px, py},
		})
		lx, ly, ldx, ldy = px, py, dx, dy
	}
	return out
}

// ellipsePrime gives tangent vectors for the parameterized ellipse;
// a, b are the radii, eta the parameter.
func ellipsePrime(a, b, sinTheta, cosTheta, eta float64) (px, py float64) {
	bCosEta := b * math.Cos(eta)
	aSinEta := a * math.Sin(eta)
	px = -aSinEta*cosTheta - bCosEta*sinTheta
	py = -aSinEta*sinTheta + bCosEta*cosTheta
	return
}

// ellipsePointAt gives points for the parameterized ellipse;
// a, b are the radii, eta the parameter, cx, cy the center.
func ellipsePointAt(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	aCosEta := a * math.Cos(eta)
	bSinEta := b * math.Sin(eta)
	px = cx + aCosEta*cosTheta - bSinEta*sinTheta
	py = cy + aCosEta*sinTheta + bSinEta*cosTheta
	return
}

// findEllipseCenter locates the center of the ellipse if it exists. If
// it does not exist, the radius values are increased minimally for a
// solution to be possible while preserving the ra to rb ratio. ra and
// rb arguments are pointers that can be checked after the call to see
// if the values changed. This method uses coordinate transformations
// to reduce the problem to finding the center of a circle that
// includes the origin and an arbitrary point. The center of the circle
// is then transformed back to the original coordinates and returned.
func findEllipseCenter(ra, rb *float64, rotX, startX, startY, endX, endY float64, sweep, largeArc bool) (cx, cy float64) {
	cos, sin := math.Cos(rotX), math.Sin(rotX)

	// Move origin to start point
	nx, ny := endX-startX, endY-startY

	// Rotate ellipse x-axis to coordinate x-axis
	nx, ny = nx*cos+ny*sin, -nx*sin+ny*cos
	// Scale X dimension so that ra = rb
	nx *= *rb / *ra // Now the ellipse is a circle radius rb; therefore foci and center coincide

	midX, midY := nx/2, ny/2
	midlenSq := midX*midX + midY*midY

	var hr float64
	if *rb**rb < midlenSq {
		// Requested ellipse does not exist; scale ra, rb to fit. Length of
		// span is greater than max width of ellipse, must scale *ra, *rb
		nrb := math.Sqrt(midlenSq)
		if *ra == *rb {
			*ra = nrb // prevents roundoff
		} else {
			*ra = *ra * nrb / *rb
		}
		*rb = nrb
	} else {
		hr = math.Sqrt(*rb**rb-midlenSq) / math.Sqrt(midlenSq)
	}
	// Notice that if hr is zero, both answers are the same.
	// The center sits on the side selected by the sweep and
	// large-arc flags (the sign rule of the SVG endpoint to
	// center conversion).
	if sweep == largeArc {
		cx = midX + midY*hr
		cy = midY - midX*hr
	} else {
		cx = midX - midY*hr
		cy = midY + midX*hr
	}

	// reverse scale
	cx *= *ra / *rb
	// Reverse rotate and translate back to original coordinates
	return cx*cos - cy*sin + startX, cx*sin + cy*cos + startY
}
