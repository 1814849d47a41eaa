package svgscene

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// optionalColor distinguishes "no paint" from an actual color;
// "none" is valid and means the shape side is not drawn.
type optionalColor struct {
	valid bool
	color color.NRGBA
}

func (c optionalColor) asColor() color.Color {
	if !c.valid {
		return nil
	}
	return c.color
}

// parseSVGColor parses an SVG color value: #rrggbb, #rgb, rgb(r,g,b),
// the SVG 1.1 color keywords, and "none".
func parseSVGColor(colorStr string) (optionalColor, error) {
	v := strings.ToLower(strings.TrimSpace(colorStr))
	if v == "none" {
		return optionalColor{}, nil
	}
	if strings.HasPrefix(v, "#") {
		r, g, b, err := parseSVGColorNum(v)
		if err != nil {
			return optionalColor{}, err
		}
		return optionalColor{valid: true, color: color.NRGBA{r, g, b, 0xFF}}, nil
	}
	if strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")") {
		vals := strings.Split(v[4:len(v)-1], ",")
		if len(vals) != 3 {
			return optionalColor{}, errParamMismatch
		}
		var cvals [3]uint8
		for i := range cvals {
			c, err := parseColorValue(vals[i])
			if err != nil {
				return optionalColor{}, err
			}
			cvals[i] = c
		}
		return optionalColor{valid: true, color: color.NRGBA{cvals[0], cvals[1], cvals[2], 0xFF}}, nil
	}
	if cn, ok := colornames.Map[v]; ok {
		return optionalColor{valid: true, color: color.NRGBA{cn.R, cn.G, cn.B, cn.A}}, nil
	}
	return optionalColor{}, errValueMismatch
}

// parseSVGColorNum reads a hex color string, e.g. #FBD9BD or #ccc.
func parseSVGColorNum(colorStr string) (r, g, b uint8, err error) {
	colorStr = strings.TrimPrefix(colorStr, "#")
	if len(colorStr) == 3 {
		// duplicate characters for 3 digit hex numbers
		colorStr = string([]byte{
			colorStr[0], colorStr[0],
			colorStr[1], colorStr[1],
			colorStr[2], colorStr[2],
		})
	}
	if len(colorStr) != 6 {
		return 0, 0, 0, errValueMismatch
	}
	var t uint64
	for _, v := range []struct {
		c *uint8
		s string
	}{
		{&r, colorStr[0:2]},
		{&g, colorStr[2:4]},
		{&b, colorStr[4:6]},
	} {
		t, err = strconv.ParseUint(v.s, 16, 8)
		if err != nil {
			return 0, 0, 0, errValueMismatch
		}
		*v.c = uint8(t)
	}
	return r, g, b, nil
}

// parseColorValue reads one rgb() component, either 0-255 or a
// percentage.
func parseColorValue(v string) (uint8, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(v, "%")))
		if err != nil {
			return 0, err
		}
		if n > 100 {
			n = 100
		} else if n < 0 {
			n = 0
		}
		return uint8(n * 0xFF / 100), nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n > 255 {
		n = 255
	} else if n < 0 {
		n = 0
	}
	return uint8(n), nil
}
