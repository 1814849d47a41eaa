package svgscene

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

// svgFunc processes an element start, appending any geometry the
// element defines to the cursor's working path.
type svgFunc func(c *sceneCursor, attrs []xml.Attr) error

var buildFuncs = map[string]svgFunc{
	"svg":      svgF,
	"g":        gF,
	"line":     lineF,
	"rect":     rectF,
	"circle":   circleF,
	"ellipse":  circleF, // circleF handles both r and rx/ry
	"polyline": polylineF,
	"polygon":  polygonF,
	"path":     pathF,
}

var errBadDimensions = errors.New("negative length or radius")

// floatAttr parses the named attribute as a length, returning def
// when the attribute is absent.
func floatAttr(attrs []xml.Attr, name string, def float64) (float64, error) {
	for _, attr := range attrs {
		if attr.Name.Local == name {
			return parseUnitFloat(attr.Value)
		}
	}
	return def, nil
}

func stringAttr(attrs []xml.Attr, name string) string {
	for _, attr := range attrs {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

func svgF(c *sceneCursor, attrs []xml.Attr) error {
	vb := Bounds{}
	if s := stringAttr(attrs, "viewBox"); s != "" {
		if err := c.getPoints(s); err != nil || len(c.points) != 4 {
			return fmt.Errorf("invalid viewBox attribute %q", s)
		}
		vb = Bounds{X: c.points[0], Y: c.points[1], W: c.points[2], H: c.points[3]}
	} else {
		// no viewBox: fall back to the declared size, if any
		w, err := floatAttr(attrs, "width", 0)
		if err != nil {
			w = 0
		}
		h, err := floatAttr(attrs, "height", 0)
		if err != nil {
			h = 0
		}
		vb = Bounds{W: w, H: h}
	}
	c.scene.ViewBox = vb
	if vb.X != 0 || vb.Y != 0 {
		// shift the view box origin onto the canvas origin;
		// every descendant inherits this through the style stack
		top := c.curStyle()
		top.transform = top.transform.Translate(-vb.X, -vb.Y)
	}
	return nil
}

func gF(c *sceneCursor, attrs []xml.Attr) error { return nil }

func rectF(c *sceneCursor, attrs []xml.Attr) error {
	var x, y, w, h, rx, ry float64
	var err error
	if x, err = floatAttr(attrs, "x", 0); err != nil {
		return err
	}
	if y, err = floatAttr(attrs, "y", 0); err != nil {
		return err
	}
	if w, err = floatAttr(attrs, "width", 0); err != nil {
		return err
	}
	if h, err = floatAttr(attrs, "height", 0); err != nil {
		return err
	}
	if rx, err = floatAttr(attrs, "rx", 0); err != nil {
		return err
	}
	if ry, err = floatAttr(attrs, "ry", 0); err != nil {
		return err
	}
	if w < 0 || h < 0 || rx < 0 || ry < 0 {
		return errBadDimensions
	}
	if w == 0 || h == 0 {
		return nil // zero area, nothing to draw
	}
	if rx == 0 && ry == 0 {
		c.path.addRect(x, y, x+w, y+h)
		return nil
	}
	if rx == 0 {
		rx = ry
	} else if ry == 0 {
		ry = rx
	}
	c.path.addRoundRect(x, y, x+w, y+h, rx, ry)
	return nil
}

func circleF(c *sceneCursor, attrs []xml.Attr) error {
	var cx, cy, rx, ry float64
	var err error
	if cx, err = floatAttr(attrs, "cx", 0); err != nil {
		return err
	}
	if cy, err = floatAttr(attrs, "cy", 0); err != nil {
		return err
	}
	r, err := floatAttr(attrs, "r", 0)
	if err != nil {
		return err
	}
	rx, ry = r, r
	if rx, err = floatAttr(attrs, "rx", rx); err != nil {
		return err
	}
	if ry, err = floatAttr(attrs, "ry", ry); err != nil {
		return err
	}
	if rx < 0 || ry < 0 {
		return errBadDimensions
	}
	if rx == 0 || ry == 0 {
		return nil
	}
	step := c.opts.EllipseStep
	if step <= 0 {
		step = ellipseStepFor(rx, ry, c.opts.Flatness)
	}
	c.path.addEllipse(cx, cy, rx, ry, step)
	return nil
}

func lineF(c *sceneCursor, attrs []xml.Attr) error {
	var x1, y1, x2, y2 float64
	var err error
	if x1, err = floatAttr(attrs, "x1", 0); err != nil {
		return err
	}
	if y1, err = floatAttr(attrs, "y1", 0); err != nil {
		return err
	}
	if x2, err = floatAttr(attrs, "x2", 0); err != nil {
		return err
	}
	if y2, err = floatAttr(attrs, "y2", 0); err != nil {
		return err
	}
	c.path.Start(Point{x1, y1})
	c.path.Line(Point{x2, y2})
	return nil
}

func polyPoints(c *sceneCursor, attrs []xml.Attr) ([]Point, error) {
	s := stringAttr(attrs, "points")
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	if err := c.getPoints(s); err != nil {
		return nil, err
	}
	if len(c.points)%2 != 0 {
		return nil, fmt.Errorf("odd number of points in polygon")
	}
	pts := make([]Point, 0, len(c.points)/2)
	for i := 0; i < len(c.points); i += 2 {
		pts = append(pts, Point{c.points[i], c.points[i+1]})
	}
	return pts, nil
}

func polylineF(c *sceneCursor, attrs []xml.Attr) error {
	pts, err := polyPoints(c, attrs)
	if err != nil {
		return err
	}
	if len(pts) < 2 {
		return nil
	}
	c.path.Start(pts[0])
	for _, p := range pts[1:] {
		c.path.Line(p)
	}
	return nil
}

func polygonF(c *sceneCursor, attrs []xml.Attr) error {
	if err := polylineF(c, attrs); err != nil {
		return err
	}
	if len(c.path) > 0 {
		c.path.Stop(true)
	}
	return nil
}

func pathF(c *sceneCursor, attrs []xml.Attr) error {
	d := stringAttr(attrs, "d")
	if strings.TrimSpace(d) == "" {
		return nil
	}
	c.init()
	if err := c.compilePath(d); err != nil {
		return err
	}
	return nil
}
