// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vec3

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestDotAndCrossOrthogonalBasisVectors(t *testing.T) {
	chk.PrintTitle("dot and cross of orthogonal basis vectors")
	x, y := New(1, 0, 0), New(0, 1, 0)
	chk.Scalar(t, "x.y", 1e-15, x.Dot(y), 0)
	got := x.Cross(y)
	chk.Vector(t, "x x y", 1e-15, []float64{got.X, got.Y, got.Z}, []float64{0, 0, 1})
}

func TestNormalizeProducesUnitVector(t *testing.T) {
	v := New(3, 4, 0).Normalize()
	chk.Scalar(t, "norm", 1e-12, v.Norm(), 1)
}

func TestNormalizeLeavesZeroVectorUnchanged(t *testing.T) {
	got := (V{}).Normalize()
	chk.Vector(t, "normalize(0)", 1e-15, []float64{got.X, got.Y, got.Z}, []float64{0, 0, 0})
}

func TestPreciseNormalizeMatchesNormalizeOnWellScaledInput(t *testing.T) {
	v := New(1, 2, 2)
	a := v.Normalize()
	b := v.PreciseNormalize()
	chk.Vector(t, "Normalize vs PreciseNormalize", 1e-12, []float64{a.X, a.Y, a.Z}, []float64{b.X, b.Y, b.Z})
}

func TestRandomUnitIsAlwaysUnitLength(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := RandomUnit()
		chk.Scalar(t, "norm", 1e-9, v.Norm(), 1)
	}
}

func TestAccumulateSigned(t *testing.T) {
	a := New(1, 1, 1)
	got := a.AccumulateSigned(-2, New(1, 0, 0))
	chk.Vector(t, "AccumulateSigned", 1e-15, []float64{got.X, got.Y, got.Z}, []float64{-1, 1, 1})
}

func TestOrthogonalDetectsNonOrthogonalPair(t *testing.T) {
	a, b := New(1, 0, 0), New(1, 1, 0)
	if a.Orthogonal(b, 1e-9) {
		t.Fatal("expected a and b not to be reported as orthogonal")
	}
}
