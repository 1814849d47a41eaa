package svgscene

import "image/color"

// Style holds the resolved paint state of a shape.
// A nil fill or stroke color means that side is not drawn;
// there is no implicit black.
type Style struct {
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth float64
	Opacity     float64 // 0..1, inherited multiplicatively through groups
}

// DefaultStyle is the paint state at the document root.
var DefaultStyle = Style{
	StrokeWidth: 1.0,
	Opacity:     1.0,
}

// ShapeRecord binds flattened geometry to a style and the cumulative
// transform resolved at parse time.
type ShapeRecord struct {
	Polylines []Polyline
	Style     Style
	Transform Matrix2D
}

// Bounds defines a bounding box, such as a viewport or a path extent.
type Bounds struct{ X, Y, W, H float64 }

// Scene is the resolved, renderer-agnostic form of a parsed SVG
// document: shape records in document paint order. It is immutable
// after parsing; the per-frame top level transform is passed to Draw
// and never stored, so one Scene may be shared by concurrent readers.
type Scene struct {
	ViewBox Bounds
	Records []ShapeRecord

	opts Options
}

// FitTo returns the transform mapping the scene's viewBox onto the
// rectangle x, y, w, h. With no viewBox the mapping only offsets.
func (s *Scene) FitTo(x, y, w, h float64) Matrix2D {
	scaleW, scaleH := 1.0, 1.0
	if s.ViewBox.W != 0 {
		scaleW = w / s.ViewBox.W
	}
	if s.ViewBox.H != 0 {
		scaleH = h / s.ViewBox.H
	}
	// records are in canvas space, where the view box origin is
	// already at (0, 0)
	return Identity.Translate(x, y).Scale(scaleW, scaleH)
}
