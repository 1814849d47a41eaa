// Package svgscene parses a subset of SVG into a flat, resolved scene
// of flattened polylines, which can then be drawn every frame against
// a host graphics context. See for example the rasterctx package.
package svgscene

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/net/html/charset"
)

// ErrorMode controls how shape-local problems (a malformed path,
// an unknown color, an element the parser does not handle) are
// treated. Document-level problems are always fatal.
type ErrorMode uint8

const (
	// IgnoreErrorMode drops the offending shape or attribute silently.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode drops it and logs a warning.
	WarnErrorMode
	// StrictErrorMode aborts parsing on the first problem.
	StrictErrorMode
)

// Configuration defaults.
const (
	defaultFlatness   = 0.25
	defaultCurveDepth = 16
)

// Options configures parsing and rendering. The zero value is usable;
// zero fields take the package defaults.
type Options struct {
	// Flatness is the maximum deviation, in user-space units, of a
	// flattened curve from the true curve.
	Flatness float64

	// CurveDepth bounds Bezier subdivision recursion.
	CurveDepth int

	// EllipseStep is the angular sampling step for circles and
	// ellipses, in radians. If zero, a step satisfying Flatness is
	// derived per shape.
	EllipseStep float64

	ErrorMode ErrorMode

	// Logger receives dropped-shape warnings and render warnings.
	Logger zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.Flatness <= 0 {
		o.Flatness = defaultFlatness
	}
	if o.CurveDepth <= 0 {
		o.CurveDepth = defaultCurveDepth
	}
	return o
}

var errNoSVGRoot = errors.New("missing <svg> root element")

// ReadScene parses an SVG document held in a string.
func ReadScene(svg string, opts Options) (*Scene, error) {
	return ReadSceneStream(strings.NewReader(svg), opts)
}

// ReadSceneFile parses the named SVG file.
func ReadSceneFile(name string, opts Options) (*Scene, error) {
	fin, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return ReadSceneStream(fin, opts)
}

// ReadSceneStream parses an SVG document from the given reader.
// This only supports a sub-set of SVG, but is enough to display many
// icons and figures. Malformed XML or a missing <svg> root fail the
// whole document; a bad shape only drops that shape (see ErrorMode).
func ReadSceneStream(stream io.Reader, opts Options) (*Scene, error) {
	opts = opts.withDefaults()
	scene := &Scene{opts: opts}
	cursor := &sceneCursor{
		scene:      scene,
		opts:       opts,
		styleStack: []styleState{{Style: DefaultStyle, transform: Identity}},
	}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !cursor.rootSeen {
					return nil, errNoSVGRoot
				}
				break
			}
			return nil, fmt.Errorf("invalid svg document: %w", err)
		}
		switch se := t.(type) {
		case xml.StartElement:
			if err := cursor.readStartElement(se); err != nil {
				return nil, err
			}
		case xml.EndElement:
			cursor.readEndElement()
		}
	}
	return scene, nil
}
