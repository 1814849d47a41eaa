package svgscene

import (
	"errors"
	"math"
	"strconv"
)

// Interpreter for the SVG path data mini-language (the `d` attribute).

var (
	errParamMismatch  = errors.New("param mismatch")
	errCommandUnknown = errors.New("unknown command")
	errValueMismatch  = errors.New("value mismatch")
)

// pathCursor tracks the pen while compiling path data into a Path.
type pathCursor struct {
	path                   Path
	placeX, placeY         float64 // current pen position
	pathStartX, pathStartY float64 // start of the current subpath
	cntlPtX, cntlPtY       float64 // last control point, for S/T reflection
	lastKey                byte    // previous command letter
	inPath                 bool
	points                 []float64 // scratch buffer for numeric arguments
}

func (c *pathCursor) init() {
	c.placeX, c.placeY = 0, 0
	c.pathStartX, c.pathStartY = 0, 0
	c.cntlPtX, c.cntlPtY = 0, 0
	c.lastKey = 0
	c.inPath = false
	c.points = c.points[:0]
}

func isPathSeparator(b byte) bool {
	return b == ' ' || b == ',' || b == '\t' || b == '\n' || b == '\r'
}

func isCommandLetter(b byte) bool {
	switch b {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v',
		'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

// argCounts maps each command letter to its required argument count.
var argCounts = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1,
	'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7, 'Z': 0,
}

// readNum reads one signed float starting at *i, skipping leading
// separators. A sign or a second decimal point terminates the token,
// so runs like "10-5" or "1.5.3" split correctly.
func readNum(d string, i *int) (float64, error) {
	for *i < len(d) && isPathSeparator(d[*i]) {
		*i++
	}
	start := *i
	j := *i
	seenDot := false
	if j < len(d) && (d[j] == '-' || d[j] == '+') {
		j++
	}
	for j < len(d) {
		b := d[j]
		switch {
		case b >= '0' && b <= '9':
			j++
		case b == '.' && !seenDot:
			seenDot = true
			j++
		case b == 'e' || b == 'E':
			// exponent, may carry its own sign
			j++
			if j < len(d) && (d[j] == '-' || d[j] == '+') {
				j++
			}
		default:
			goto done
		}
	}
done:
	if j == start {
		return 0, errValueMismatch
	}
	f, err := strconv.ParseFloat(d[start:j], 64)
	if err != nil {
		return 0, errValueMismatch
	}
	*i = j
	return f, nil
}

// getPoints parses a whitespace/comma separated float list into
// c.points, replacing its previous content. Used for `points`,
// `viewBox` and transform function arguments.
func (c *pathCursor) getPoints(s string) error {
	c.points = c.points[:0]
	i := 0
	for {
		for i < len(s) && isPathSeparator(s[i]) {
			i++
		}
		if i >= len(s) {
			return nil
		}
		f, err := readNum(s, &i)
		if err != nil {
			return err
		}
		c.points = append(c.points, f)
	}
}

// readArgs reads exactly n numeric arguments into c.points.
func (c *pathCursor) readArgs(d string, i *int, n int) error {
	c.points = c.points[:0]
	for k := 0; k < n; k++ {
		f, err := readNum(d, i)
		if err != nil {
			return err
		}
		c.points = append(c.points, f)
	}
	return nil
}

// hasMoreArgs reports whether another numeric token follows,
// which triggers implicit command repetition.
func hasMoreArgs(d string, i int) bool {
	for i < len(d) && isPathSeparator(d[i]) {
		i++
	}
	if i >= len(d) {
		return false
	}
	b := d[i]
	return b == '-' || b == '+' || b == '.' || (b >= '0' && b <= '9')
}

// compilePath translates the SVG path data string into path operations
// on c.path. A failure leaves the already-compiled prefix in c.path;
// the caller is expected to discard it.
func (c *pathCursor) compilePath(d string) error {
	c.init()
	i := 0
	for i < len(d) {
		for i < len(d) && isPathSeparator(d[i]) {
			i++
		}
		if i >= len(d) {
			break
		}
		cmd := d[i]
		if !isCommandLetter(cmd) {
			return errCommandUnknown
		}
		i++
		for {
			if err := c.applyCommand(cmd, d, &i); err != nil {
				return err
			}
			// a command letter may be omitted for repetitions;
			// repeated M/m continue as L/l, per the path grammar
			if cmd == 'Z' || cmd == 'z' || !hasMoreArgs(d, i) {
				break
			}
			switch cmd {
			case 'M':
				cmd = 'L'
			case 'm':
				cmd = 'l'
			}
		}
	}
	return nil
}

// moveTo starts a subpath, synthesizing the starting point for path
// data whose first command is not a move.
func (c *pathCursor) moveTo(x, y float64) {
	c.path.Start(Point{x, y})
	c.placeX, c.placeY = x, y
	c.pathStartX, c.pathStartY = x, y
	c.inPath = true
}

func (c *pathCursor) ensureInPath() {
	if !c.inPath {
		c.moveTo(c.placeX, c.placeY)
	}
}

func (c *pathCursor) lineTo(x, y float64) {
	c.ensureInPath()
	c.path.Line(Point{x, y})
	c.placeX, c.placeY = x, y
}

func (c *pathCursor) applyCommand(cmd byte, d string, i *int) error {
	rel := cmd >= 'a' // lowercase commands are relative
	upper := cmd
	if rel {
		upper = cmd - 'a' + 'A'
	}
	n, ok := argCounts[upper]
	if !ok {
		return errCommandUnknown
	}
	if err := c.readArgs(d, i, n); err != nil {
		return err
	}
	pts := c.points
	switch upper {
	case 'M':
		x, y := pts[0], pts[1]
		if rel {
			x += c.placeX
			y += c.placeY
		}
		c.moveTo(x, y)
	case 'L':
		x, y := pts[0], pts[1]
		if rel {
			x += c.placeX
			y += c.placeY
		}
		c.lineTo(x, y)
	case 'H':
		x := pts[0]
		if rel {
			x += c.placeX
		}
		c.lineTo(x, c.placeY)
	case 'V':
		y := pts[0]
		if rel {
			y += c.placeY
		}
		c.lineTo(c.placeX, y)
	case 'C':
		if rel {
			for k := 0; k < 6; k += 2 {
				pts[k] += c.placeX
				pts[k+1] += c.placeY
			}
		}
		c.ensureInPath()
		c.path.CubeBezier(Point{pts[0], pts[1]}, Point{pts[2], pts[3]}, Point{pts[4], pts[5]})
		c.cntlPtX, c.cntlPtY = pts[2], pts[3]
		c.placeX, c.placeY = pts[4], pts[5]
	case 'S':
		if rel {
			for k := 0; k < 4; k += 2 {
				pts[k] += c.placeX
				pts[k+1] += c.placeY
			}
		}
		c.ensureInPath()
		c1x, c1y := c.reflectControl('C', 'S')
		c.path.CubeBezier(Point{c1x, c1y}, Point{pts[0], pts[1]}, Point{pts[2], pts[3]})
		c.cntlPtX, c.cntlPtY = pts[0], pts[1]
		c.placeX, c.placeY = pts[2], pts[3]
	case 'Q':
		if rel {
			for k := 0; k < 4; k += 2 {
				pts[k] += c.placeX
				pts[k+1] += c.placeY
			}
		}
		c.ensureInPath()
		c.path.QuadBezier(Point{pts[0], pts[1]}, Point{pts[2], pts[3]})
		c.cntlPtX, c.cntlPtY = pts[0], pts[1]
		c.placeX, c.placeY = pts[2], pts[3]
	case 'T':
		x, y := pts[0], pts[1]
		if rel {
			x += c.placeX
			y += c.placeY
		}
		c.ensureInPath()
		cx, cy := c.reflectControl('Q', 'T')
		c.path.QuadBezier(Point{cx, cy}, Point{x, y})
		c.cntlPtX, c.cntlPtY = cx, cy
		c.placeX, c.placeY = x, y
	case 'A':
		x, y := pts[5], pts[6]
		if rel {
			x += c.placeX
			y += c.placeY
		}
		rx, ry := math.Abs(pts[0]), math.Abs(pts[1])
		if rx == 0 || ry == 0 {
			// degenerate arc draws as a straight line
			c.lineTo(x, y)
			break
		}
		c.ensureInPath()
		c.path.Arc(rx, ry, pts[2]*math.Pi/180, pts[3] != 0, pts[4] != 0, Point{x, y})
		c.placeX, c.placeY = x, y
	case 'Z':
		if !c.inPath {
			return errParamMismatch
		}
		c.path.Stop(true)
		c.placeX, c.placeY = c.pathStartX, c.pathStartY
		c.inPath = false
	}
	c.lastKey = cmd
	return nil
}

// reflectControl returns the first control point for a smooth curve
// command: the previous control point reflected about the pen, or the
// pen itself when the previous command was not of the matching family.
func (c *pathCursor) reflectControl(abs, smooth byte) (float64, float64) {
	switch c.lastKey {
	case abs, abs + 'a' - 'A', smooth, smooth + 'a' - 'A':
		return 2*c.placeX - c.cntlPtX, 2*c.placeY - c.cntlPtY
	}
	return c.placeX, c.placeY
}
