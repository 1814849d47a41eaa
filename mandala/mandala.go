// Package mandala animates a flower-like ring of petals, each petal an
// instance of the same vector scene arranged evenly around a central
// hub. The ring blends between two end states (open and closed) with
// clock-based interpolation, so rendering stays smooth even when the
// values driving it arrive unevenly.
package mandala

import (
	"image/color"
	"math"

	"github.com/rs/zerolog"

	"github.com/N-of-1/mandala-svg/svgscene"
)

// State is one endpoint of the petal motion: the petal tint and the
// per-petal transforms applied inside each ring slot.
type State struct {
	Color     color.NRGBA
	Rotate    svgscene.Matrix2D
	Scale     svgscene.Matrix2D
	Translate svgscene.Matrix2D
}

// transition is a single animation between two ring values over time.
// Times are in seconds, values in [0, 1].
type transition struct {
	start    float64
	duration float64
	from     float64
	to       float64
}

// fixedValue is a non-animated transition pinned at value.
func fixedValue(value float64) transition {
	return transition{duration: 0.1, from: value, to: value}
}

// Mandala is a ring of petalCount copies of one scene. A value of 0
// renders the closed state, 1 the open state, anything between a
// linear blend of the two.
type Mandala struct {
	// Logger receives transition events. The zero value is silent.
	Logger zerolog.Logger

	scene         *svgscene.Scene
	petalCount    int
	open, closed  State
	center        svgscene.Matrix2D
	petalRotation []svgscene.Matrix2D
	current       transition
}

// New arranges petalCount copies of scene around the hub at position,
// uniformly scaled. value fixes the initial ring state; call
// StartTransition to animate away from it.
func New(scene *svgscene.Scene, position svgscene.Point, scale float64,
	petalCount int, open, closed State, value float64) *Mandala {
	if petalCount < 1 {
		petalCount = 1
	}
	rotation := make([]svgscene.Matrix2D, petalCount)
	petalAngle := 2 * math.Pi / float64(petalCount)
	for i := range rotation {
		rotation[i] = svgscene.Identity.Rotate(petalAngle * float64(i))
	}
	return &Mandala{
		scene:         scene,
		petalCount:    petalCount,
		open:          open,
		closed:        closed,
		center:        svgscene.Identity.Translate(position.X, position.Y).Scale(scale, scale),
		petalRotation: rotation,
		current:       fixedValue(value),
	}
}

// StartTransition begins an animation at now [sec] toward target
// [0, 1], completing duration seconds later. The ring departs from
// whatever value it shows at now, so retargeting mid-flight never
// jumps.
//
// For continuous animation driven by an uneven source, pick a
// duration slightly larger than the expected arrival interval of new
// targets; the ring then keeps moving through late arrivals at the
// cost of trailing the source by the same margin.
func (m *Mandala) StartTransition(now, duration, target float64) {
	from := m.Value(now)
	m.Logger.Debug().
		Float64("from", from).Float64("target", target).
		Msg("starting mandala transition")
	m.current = transition{start: now, duration: duration, from: from, to: target}
}

// Value reports the ring state at now: 0 is fully closed, 1 fully
// open.
func (m *Mandala) Value(now float64) float64 {
	return m.current.from + (m.current.to-m.current.from)*m.percent(now)
}

// percent is how far the current transition has progressed at now,
// clamped to [0, 1].
func (m *Mandala) percent(now float64) float64 {
	if m.current.duration <= 0 || now >= m.current.start+m.current.duration {
		return 1
	}
	if now <= m.current.start {
		return 0
	}
	return (now - m.current.start) / m.current.duration
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpByte(a, b uint8, t float64) uint8 {
	v := lerp(float64(a), float64(b), t)
	if v < 0 {
		v = 0
	} else if v > 255 {
		v = 255
	}
	return uint8(math.Round(v))
}

// lerpColor blends each channel independently. This may pass through
// a brighter center-of-color-wheel value on the way; choose endpoint
// colors accordingly.
func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	return color.NRGBA{
		R: lerpByte(a.R, b.R, t),
		G: lerpByte(a.G, b.G, t),
		B: lerpByte(a.B, b.B, t),
		A: lerpByte(a.A, b.A, t),
	}
}

// lerpMatrix interpolates each matrix element independently. For the
// translate and scale endpoints this is exact; for rotations it cuts
// the corner slightly, which reads fine at animation rates.
func lerpMatrix(a, b svgscene.Matrix2D, t float64) svgscene.Matrix2D {
	return svgscene.Matrix2D{
		A: lerp(a.A, b.A, t),
		B: lerp(a.B, b.B, t),
		C: lerp(a.C, b.C, t),
		D: lerp(a.D, b.D, t),
		E: lerp(a.E, b.E, t),
		F: lerp(a.F, b.F, t),
	}
}

// stateAt blends the closed and open endpoints at now.
func (m *Mandala) stateAt(now float64) State {
	t := m.Value(now)
	return State{
		Color:     lerpColor(m.closed.Color, m.open.Color, t),
		Rotate:    lerpMatrix(m.closed.Rotate, m.open.Rotate, t),
		Scale:     lerpMatrix(m.closed.Scale, m.open.Scale, t),
		Translate: lerpMatrix(m.closed.Translate, m.open.Translate, t),
	}
}

// Draw renders the ring at now onto ctx. Each petal draws the scene
// tinted with the interpolated state color under its slot transform.
func (m *Mandala) Draw(now float64, ctx svgscene.GraphicContext) {
	state := m.stateAt(now)
	for _, rot := range m.petalRotation {
		top := m.center.Mult(rot).
			Mult(state.Translate).
			Mult(state.Scale).
			Mult(state.Rotate)
		m.scene.DrawTinted(ctx, top, state.Color, 1.0)
	}
}
