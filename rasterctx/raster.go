// Implements an image backend for rendering scenes,
// by wrapping rasterx.
package rasterctx

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/N-of-1/mandala-svg/svgscene"
)

var _ svgscene.GraphicContext = (*Context)(nil) // assert interface conformance

// Context rasterizes scene geometry into an RGBA image.
// It is not safe for concurrent use; render each frame from one
// goroutine, or give each goroutine its own Context.
type Context struct {
	img        *image.RGBA
	background color.Color
	filler     *rasterx.Filler // to avoid shared state
	dasher     *rasterx.Dasher // we use separated instances
}

// New returns a context rendering onto a fresh RGBA image of the
// given size, cleared to background. A nil background means
// transparent.
func New(width, height int, background color.Color) *Context {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if background == nil {
		background = color.Transparent
	}
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	c := &Context{
		img:        img,
		background: background,
		filler:     rasterx.NewFiller(width, height, scanner),
		dasher:     rasterx.NewDasher(width, height, scanner),
	}
	c.Clear()
	return c
}

// Image exposes the render target. The pixels are valid once the
// frame has been drawn.
func (c *Context) Image() *image.RGBA { return c.img }

func (c *Context) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.background), image.Point{}, draw.Src)
}

// Present is a no-op for an image target; the frame is complete in
// Image() as soon as the draw calls return.
func (c *Context) Present() {}

func toFixed(p svgscene.Point) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(p.X * 64),
		Y: fixed.Int26_6(p.Y * 64),
	}
}

func (c *Context) FillPolygon(points []svgscene.Point, col color.Color, opacity float64) {
	if len(points) < 3 {
		return
	}
	c.filler.Scanner.SetColor(rasterx.ApplyOpacity(col, opacity))
	c.filler.Start(toFixed(points[0]))
	for _, p := range points[1:] {
		c.filler.Line(toFixed(p))
	}
	c.filler.Stop(true)
	c.filler.Draw()
	c.filler.Clear()
}

func (c *Context) StrokePolyline(points []svgscene.Point, width float64, col color.Color, opacity float64) {
	if len(points) < 2 || width <= 0 {
		return
	}
	// a closed subpath repeats its first point last; stroke it
	// closed so the seam gets a join instead of two butt caps
	closed := len(points) > 2 && points[0] == points[len(points)-1]
	if closed {
		points = points[:len(points)-1]
	}
	c.dasher.Scanner.SetColor(rasterx.ApplyOpacity(col, opacity))
	c.dasher.SetStroke(
		fixed.Int26_6(width*64), 4*64,
		rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.Bevel,
		nil, 0,
	)
	c.dasher.Start(toFixed(points[0]))
	for _, p := range points[1:] {
		c.dasher.Line(toFixed(p))
	}
	c.dasher.Stop(closed)
	c.dasher.Draw()
	c.dasher.Clear()
}

// RenderToImage rasterizes the whole scene once, scaled to fit a
// width x height image.
func RenderToImage(scene *svgscene.Scene, width, height int, background color.Color) *image.RGBA {
	ctx := New(width, height, background)
	top := scene.FitTo(0, 0, float64(width), float64(height))
	scene.Draw(ctx, top, 1.0)
	ctx.Present()
	return ctx.Image()
}
