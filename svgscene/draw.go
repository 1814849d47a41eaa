package svgscene

import "image/color"

// GraphicContext is the surface a Scene renders onto. Implementations
// receive device-space coordinates; all transforms have already been
// applied. The points slice is reused between calls and must not be
// retained.
type GraphicContext interface {
	// Clear resets the surface to its background.
	Clear()
	// FillPolygon fills the closed polygon described by points,
	// using the non-zero winding rule.
	FillPolygon(points []Point, col color.Color, opacity float64)
	// StrokePolyline strokes the open polyline described by points.
	StrokePolyline(points []Point, width float64, col color.Color, opacity float64)
	// Present flushes the finished frame.
	Present()
}

// Draw renders every shape of the scene onto ctx. The top transform
// is composed on top of each record's own cumulative transform, so
// the same scene can be drawn each frame under a different placement
// without re-parsing. opacity multiplies every shape's own opacity.
//
// Draw neither clears nor presents; the caller owns the frame
// lifecycle around it. It does not mutate the scene and may be
// called from several goroutines at once with distinct contexts.
func (s *Scene) Draw(ctx GraphicContext, top Matrix2D, opacity float64) {
	s.draw(ctx, top, nil, opacity)
}

// DrawTinted is Draw with every painted color replaced by tint.
// Shape geometry, stroke widths and opacities are kept.
func (s *Scene) DrawTinted(ctx GraphicContext, top Matrix2D, tint color.Color, opacity float64) {
	s.draw(ctx, top, tint, opacity)
}

func (s *Scene) draw(ctx GraphicContext, top Matrix2D, tint color.Color, opacity float64) {
	buf := make([]Point, 0, 64)
	for i := range s.Records {
		rec := &s.Records[i]
		m := top.Mult(rec.Transform)
		if m.Determinant() == 0 {
			s.opts.Logger.Warn().Int("record", i).
				Msg("skipping shape with degenerate transform")
			continue
		}
		fill, stroke := rec.Style.Fill, rec.Style.Stroke
		if tint != nil {
			if fill != nil {
				fill = tint
			}
			if stroke != nil {
				stroke = tint
			}
		}
		alpha := opacity * rec.Style.Opacity
		for _, poly := range rec.Polylines {
			if len(poly) < 2 {
				s.opts.Logger.Warn().Int("record", i).
					Msg("skipping degenerate polyline")
				continue
			}
			buf = buf[:0]
			for _, p := range poly {
				buf = append(buf, m.Apply(p))
			}
			if fill != nil && len(buf) >= 3 {
				ctx.FillPolygon(buf, fill, alpha)
			}
			if stroke != nil {
				ctx.StrokePolyline(buf, rec.Style.StrokeWidth, stroke, alpha)
			}
		}
	}
}
