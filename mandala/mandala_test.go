package mandala

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/N-of-1/mandala-svg/svgscene"
)

const petalSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
	<path d="M5 0 L6 4 5 5 4 4 Z" fill="white"/>
</svg>`

type fillRecorder struct {
	colors []color.Color
	firsts []svgscene.Point
}

func (f *fillRecorder) Clear()   {}
func (f *fillRecorder) Present() {}

func (f *fillRecorder) FillPolygon(points []svgscene.Point, col color.Color, opacity float64) {
	f.colors = append(f.colors, col)
	f.firsts = append(f.firsts, points[0])
}

func (f *fillRecorder) StrokePolyline(points []svgscene.Point, width float64, col color.Color, opacity float64) {
}

func petalScene(t *testing.T) *svgscene.Scene {
	t.Helper()
	scene, err := svgscene.ReadScene(petalSVG, svgscene.Options{})
	require.NoError(t, err)
	return scene
}

func idleState(col color.NRGBA) State {
	return State{
		Color:     col,
		Rotate:    svgscene.Identity,
		Scale:     svgscene.Identity,
		Translate: svgscene.Identity,
	}
}

func TestMandalaValueFixed(t *testing.T) {
	m := New(petalScene(t), svgscene.Point{}, 1, 4,
		idleState(color.NRGBA{A: 0xFF}), idleState(color.NRGBA{A: 0xFF}), 0.7)
	assert.InDelta(t, 0.7, m.Value(0), 1e-12)
	assert.InDelta(t, 0.7, m.Value(100), 1e-12)
}

func TestMandalaTransition(t *testing.T) {
	m := New(petalScene(t), svgscene.Point{}, 1, 4,
		idleState(color.NRGBA{A: 0xFF}), idleState(color.NRGBA{A: 0xFF}), 0)

	m.StartTransition(10, 2, 1)
	assert.InDelta(t, 0.0, m.Value(10), 1e-12)
	assert.InDelta(t, 0.5, m.Value(11), 1e-12)
	assert.InDelta(t, 1.0, m.Value(12), 1e-12)
	// the value holds after the transition completes
	assert.InDelta(t, 1.0, m.Value(50), 1e-12)
}

func TestMandalaRetargetMidFlight(t *testing.T) {
	m := New(petalScene(t), svgscene.Point{}, 1, 4,
		idleState(color.NRGBA{A: 0xFF}), idleState(color.NRGBA{A: 0xFF}), 0)

	m.StartTransition(0, 2, 1)
	// halfway through, head back down; the ring departs from 0.5
	m.StartTransition(1, 2, 0)
	assert.InDelta(t, 0.5, m.Value(1), 1e-12)
	assert.InDelta(t, 0.25, m.Value(2), 1e-12)
	assert.InDelta(t, 0.0, m.Value(3), 1e-12)
}

func TestMandalaColorBlend(t *testing.T) {
	closed := idleState(color.NRGBA{R: 0, G: 0, B: 0, A: 0xFF})
	open := idleState(color.NRGBA{R: 0xFF, G: 0, B: 0, A: 0xFF})
	m := New(petalScene(t), svgscene.Point{}, 1, 1, open, closed, 0.5)

	rec := &fillRecorder{}
	m.Draw(0, rec)
	require.Len(t, rec.colors, 1)
	assert.Equal(t, color.NRGBA{R: 0x80, G: 0, B: 0, A: 0xFF}, rec.colors[0])
}

func TestMandalaPetalRing(t *testing.T) {
	scene := petalScene(t)
	m := New(scene, svgscene.Point{X: 100, Y: 100}, 1, 4,
		idleState(color.NRGBA{R: 0xFF, A: 0xFF}),
		idleState(color.NRGBA{R: 0xFF, A: 0xFF}), 1)

	rec := &fillRecorder{}
	m.Draw(0, rec)
	require.Len(t, rec.firsts, 4)

	// the four petals are the same shape rotated in 90 degree steps
	// about the hub
	for i, p := range rec.firsts {
		angle := math.Pi / 2 * float64(i)
		want := svgscene.Identity.
			Translate(100, 100).
			Rotate(angle).
			Apply(svgscene.Point{X: 5, Y: 0})
		assert.InDelta(t, want.X, p.X, 1e-9, "petal %d", i)
		assert.InDelta(t, want.Y, p.Y, 1e-9, "petal %d", i)
	}
}

func TestMandalaScaleAndTranslateStates(t *testing.T) {
	scene := petalScene(t)
	closed := State{
		Color:     color.NRGBA{A: 0xFF},
		Rotate:    svgscene.Identity,
		Scale:     svgscene.Identity,
		Translate: svgscene.Identity,
	}
	open := State{
		Color:     color.NRGBA{A: 0xFF},
		Rotate:    svgscene.Identity,
		Scale:     svgscene.Identity.Scale(2, 2),
		Translate: svgscene.Identity.Translate(10, 0),
	}
	m := New(scene, svgscene.Point{}, 1, 1, open, closed, 1)

	rec := &fillRecorder{}
	m.Draw(0, rec)
	require.Len(t, rec.firsts, 1)
	// fully open: translate by 10, then the shape scales by 2
	assert.InDelta(t, 20, rec.firsts[0].X, 1e-9)
	assert.InDelta(t, 0, rec.firsts[0].Y, 1e-9)
}
