package rasterctx

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/N-of-1/mandala-svg/svgscene"
)

const circleSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
	<circle cx="50" cy="50" r="40" fill="red"/>
</svg>`

func TestRenderCircle(t *testing.T) {
	scene, err := svgscene.ReadScene(circleSVG, svgscene.Options{})
	require.NoError(t, err)

	img := RenderToImage(scene, 100, 100, nil)
	require.Equal(t, 100, img.Bounds().Dx())

	r, g, b, a := img.At(50, 50).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(0), b)
	assert.Equal(t, uint32(0xFFFF), a)

	// outside the circle the background shows through
	_, _, _, a = img.At(2, 2).RGBA()
	assert.Equal(t, uint32(0), a)
}

func TestRenderBackground(t *testing.T) {
	scene := &svgscene.Scene{ViewBox: svgscene.Bounds{W: 10, H: 10}}
	img := RenderToImage(scene, 10, 10, color.NRGBA{0, 0, 0xFF, 0xFF})
	_, _, b, _ := img.At(5, 5).RGBA()
	assert.Equal(t, uint32(0xFFFF), b)
}

func TestRenderStroke(t *testing.T) {
	doc := `<svg viewBox="0 0 100 100">
		<line x1="0" y1="50" x2="100" y2="50" stroke="lime" stroke-width="10"/>
	</svg>`
	scene, err := svgscene.ReadScene(doc, svgscene.Options{})
	require.NoError(t, err)

	img := RenderToImage(scene, 100, 100, nil)
	_, g, _, _ := img.At(50, 50).RGBA()
	assert.Equal(t, uint32(0xFFFF), g)

	// well away from the stroked line nothing is painted
	_, _, _, a := img.At(50, 10).RGBA()
	assert.Equal(t, uint32(0), a)
}

func TestRenderClosedStrokeSeam(t *testing.T) {
	// a stroked rect closes at its first corner; that corner must
	// get a join like the other three, not two butt-capped ends
	doc := `<svg viewBox="0 0 100 100">
		<rect x="20" y="20" width="60" height="60" fill="none" stroke="red" stroke-width="10"/>
	</svg>`
	scene, err := svgscene.ReadScene(doc, svgscene.Options{})
	require.NoError(t, err)

	img := RenderToImage(scene, 100, 100, nil)

	// just inside the outer joint at the closing corner (20, 20)
	_, _, _, a := img.At(18, 18).RGBA()
	assert.NotEqual(t, uint32(0), a)

	// mid-edge and an already-joined corner, for reference
	_, _, _, a = img.At(50, 20).RGBA()
	assert.NotEqual(t, uint32(0), a)
	_, _, _, a = img.At(81, 81).RGBA()
	assert.NotEqual(t, uint32(0), a)
}

func TestContextReuseAcrossFrames(t *testing.T) {
	scene, err := svgscene.ReadScene(circleSVG, svgscene.Options{})
	require.NoError(t, err)

	ctx := New(100, 100, nil)
	top := scene.FitTo(0, 0, 100, 100)
	for i := 0; i < 3; i++ {
		ctx.Clear()
		scene.Draw(ctx, top, 1.0)
		ctx.Present()
		r, _, _, _ := ctx.Image().At(50, 50).RGBA()
		assert.Equal(t, uint32(0xFFFF), r, "frame %d", i)
	}
}
