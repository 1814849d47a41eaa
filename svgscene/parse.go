package svgscene

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// styleState is one level of the inherited paint state: the resolved
// style plus the cumulative transform down to this element.
type styleState struct {
	Style
	transform Matrix2D
}

// sceneCursor is used while parsing SVG documents.
type sceneCursor struct {
	pathCursor
	scene      *Scene
	opts       Options
	styleStack []styleState
	rootSeen   bool
	skipDepth  int // nesting depth inside an unrecognized subtree
}

func (c *sceneCursor) curStyle() *styleState {
	return &c.styleStack[len(c.styleStack)-1]
}

// handleShapeError resolves a recoverable, shape-local failure
// according to the error mode: nil return means "dropped, continue".
func (c *sceneCursor) handleShapeError(element string, err error) error {
	if c.opts.ErrorMode == StrictErrorMode {
		return fmt.Errorf("element %s: %w", element, err)
	}
	if c.opts.ErrorMode == WarnErrorMode {
		c.opts.Logger.Warn().Str("element", element).Err(err).
			Msg("dropping shape")
	}
	return nil
}

func (c *sceneCursor) readStartElement(se xml.StartElement) error {
	if c.skipDepth > 0 {
		c.skipDepth++
		return nil
	}
	name := se.Name.Local
	if !c.rootSeen {
		if name != "svg" {
			return fmt.Errorf("%w: found <%s>", errNoSVGRoot, name)
		}
		c.rootSeen = true
	}
	bf, ok := buildFuncs[name]
	if !ok {
		// unrecognized elements are skipped along with their
		// children; only recognized containers are traversed
		if c.opts.ErrorMode == StrictErrorMode {
			return fmt.Errorf("cannot process svg element <%s>", name)
		}
		if c.opts.ErrorMode == WarnErrorMode {
			c.opts.Logger.Warn().Str("element", name).Msg("skipping svg element")
		}
		c.skipDepth = 1
		return nil
	}

	if err := c.pushStyle(se.Attr); err != nil {
		return fmt.Errorf("element %s: %w", name, err)
	}
	if err := bf(c, se.Attr); err != nil {
		c.path.Clear()
		return c.handleShapeError(name, err)
	}
	if len(c.path) > 0 {
		// the element produced geometry; resolve it into the scene
		polys := c.path.Flatten(c.opts.Flatness, c.opts.CurveDepth)
		c.path.Clear()
		if len(polys) > 0 {
			top := c.curStyle()
			c.scene.Records = append(c.scene.Records, ShapeRecord{
				Polylines: polys,
				Style:     top.Style,
				Transform: top.transform,
			})
		}
	}
	return nil
}

func (c *sceneCursor) readEndElement() {
	if c.skipDepth > 0 {
		c.skipDepth--
		return
	}
	if len(c.styleStack) > 1 {
		c.styleStack = c.styleStack[:len(c.styleStack)-1]
	}
}

// pushStyle reads the recognized style attributes from an element
// start and places the combined state on top of the style stack.
// Both presentation attributes and the style="…" shorthand are read.
// A value that does not parse fails that attribute only: the
// inherited value stays in effect.
func (c *sceneCursor) pushStyle(attrs []xml.Attr) error {
	var pairs []string
	for _, attr := range attrs {
		switch strings.ToLower(attr.Name.Local) {
		case "style":
			pairs = append(pairs, strings.Split(attr.Value, ";")...)
		default:
			pairs = append(pairs, attr.Name.Local+":"+attr.Value)
		}
	}
	// Make a copy of the top style
	curStyle := *c.curStyle()
	for _, pair := range pairs {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 {
			continue
		}
		k := strings.ToLower(strings.TrimSpace(kv[0]))
		v := strings.TrimSpace(kv[1])
		if err := c.readStyleAttr(&curStyle, k, v); err != nil {
			if c.opts.ErrorMode == StrictErrorMode {
				return fmt.Errorf("attribute %s=%q: %w", k, v, err)
			}
			if c.opts.ErrorMode == WarnErrorMode {
				c.opts.Logger.Warn().Str("attr", k).Str("value", v).Err(err).
					Msg("dropping attribute")
			}
		}
	}
	c.styleStack = append(c.styleStack, curStyle)
	return nil
}

func (c *sceneCursor) readStyleAttr(curStyle *styleState, k, v string) error {
	switch k {
	case "fill":
		optCol, err := parseSVGColor(v)
		if err != nil {
			return err // keep the inherited paint
		}
		curStyle.Fill = optCol.asColor()
	case "stroke":
		optCol, err := parseSVGColor(v)
		if err != nil {
			return err
		}
		curStyle.Stroke = optCol.asColor()
	case "stroke-width":
		width, err := parseUnitFloat(v)
		if err != nil {
			return err
		}
		if width <= 0 {
			return errValueMismatch
		}
		curStyle.StrokeWidth = width
	case "opacity":
		op, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		if op < 0 {
			op = 0
		} else if op > 1 {
			op = 1
		}
		curStyle.Opacity *= op
	case "transform":
		m, err := c.parseTransform(v, curStyle.transform)
		if err != nil {
			return err
		}
		curStyle.transform = m
	}
	return nil
}

// parseTransform parses a transform attribute value: one or more
// transform functions, composed left to right onto base.
func (c *sceneCursor) parseTransform(v string, base Matrix2D) (Matrix2D, error) {
	ts := strings.Split(v, ")")
	m1 := base
	for _, t := range ts {
		t = strings.TrimSpace(t)
		if len(t) == 0 {
			continue
		}
		d := strings.SplitN(t, "(", 2)
		if len(d) != 2 || len(d[1]) < 1 {
			return base, errParamMismatch // badly formed transformation
		}
		if err := c.getPoints(d[1]); err != nil {
			return base, err
		}
		var err error
		m1, err = c.readTransformAttr(m1, strings.ToLower(strings.TrimSpace(d[0])))
		if err != nil {
			return base, err
		}
	}
	return m1, nil
}

func (c *sceneCursor) readTransformAttr(m1 Matrix2D, k string) (Matrix2D, error) {
	ln := len(c.points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(c.points[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(c.points[1], c.points[2]).
				Rotate(c.points[0]*math.Pi/180).
				Translate(-c.points[1], -c.points[2])
		} else {
			return m1, errParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(c.points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(c.points[0], c.points[1])
		} else {
			return m1, errParamMismatch
		}
	case "skewx":
		if ln == 1 {
			m1 = m1.SkewX(c.points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "skewy":
		if ln == 1 {
			m1 = m1.SkewY(c.points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(c.points[0], c.points[0])
		} else if ln == 2 {
			m1 = m1.Scale(c.points[0], c.points[1])
		} else {
			return m1, errParamMismatch
		}
	case "matrix":
		if ln == 6 {
			m1 = m1.Mult(Matrix2D{
				A: c.points[0],
				B: c.points[1],
				C: c.points[2],
				D: c.points[3],
				E: c.points[4],
				F: c.points[5],
			})
		} else {
			return m1, errParamMismatch
		}
	default:
		return m1, errParamMismatch
	}
	return m1, nil
}

// parseUnitFloat parses a numeric attribute value, tolerating a px
// suffix (the only absolute unit this parser honors).
func parseUnitFloat(v string) (float64, error) {
	v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	return strconv.ParseFloat(v, 64)
}
