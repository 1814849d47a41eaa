package svgscene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPointNear(t *testing.T, want, got Point, eps float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps)
	assert.InDelta(t, want.Y, got.Y, eps)
}

func TestMatrixApply(t *testing.T) {
	p := Point{3, 4}
	assertPointNear(t, p, Identity.Apply(p), 1e-12)
	assertPointNear(t, Point{5, 7}, Identity.Translate(2, 3).Apply(p), 1e-12)
	assertPointNear(t, Point{6, -4}, Identity.Scale(2, -1).Apply(p), 1e-12)
	assertPointNear(t, Point{-4, 3}, Identity.Rotate(math.Pi/2).Apply(p), 1e-12)
}

func TestMatrixComposition(t *testing.T) {
	// applying a composed matrix must match applying the factors
	// child-first
	ms := []Matrix2D{
		Identity,
		Identity.Translate(5, -2),
		Identity.Scale(2, 3).Rotate(0.3),
		Identity.Rotate(1.2).Translate(-1, 4).Scale(0.5, 0.5),
		Identity.SkewX(0.2).SkewY(-0.1),
	}
	pts := []Point{{0, 0}, {1, 0}, {0, 1}, {-3.5, 7.25}}
	for _, a := range ms {
		for _, b := range ms {
			ab := a.Mult(b)
			for _, p := range pts {
				assertPointNear(t, a.Apply(b.Apply(p)), ab.Apply(p), 1e-9)
			}
		}
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Identity.Translate(3, -1).Rotate(0.7).Scale(2, 5)
	inv, ok := m.Invert()
	require.True(t, ok)
	for _, p := range []Point{{0, 0}, {10, -4}, {1.5, 2.5}} {
		assertPointNear(t, p, inv.Apply(m.Apply(p)), 1e-9)
	}

	_, ok = Identity.Scale(1, 0).Invert()
	assert.False(t, ok)
	assert.Equal(t, 0.0, Identity.Scale(0, 4).Determinant())
}

func TestRotateAboutCenter(t *testing.T) {
	// rotate(90, 5, 5) keeps the pivot fixed
	m := Identity.Translate(5, 5).Rotate(math.Pi / 2).Translate(-5, -5)
	assertPointNear(t, Point{5, 5}, m.Apply(Point{5, 5}), 1e-12)
	assertPointNear(t, Point{5, 10}, m.Apply(Point{10, 5}), 1e-9)
}
