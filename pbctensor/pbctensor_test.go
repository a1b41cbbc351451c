// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pbctensor

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/fangohr/oommf-sub006/newell"
)

func TestKtailDecreasesWithLargerPeriod(t *testing.T) {
	chk.PrintTitle("Ktail shrinks as period/gamma grows")
	k1 := Ktail(10, 1, 1, 1)
	k2 := Ktail(1000, 1, 1, 1)
	if k2 > k1 {
		t.Fatalf("expected ktail to shrink as period/gamma grows: k1=%d k2=%d", k1, k2)
	}
	if k1 < 1 || k2 < 1 {
		t.Fatalf("ktail must be at least 1, got k1=%d k2=%d", k1, k2)
	}
}

func TestComputeTensorFinite(t *testing.T) {
	tens := New(AxisX, 1, 1, 1, 10, 5, 1.5, 1e-4)
	nab, ncd, nef := tens.ComputeTensor(0.5, 0.5, 0)
	for _, v := range []float64{nab, ncd, nef} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite periodic tensor component: %v", v)
		}
	}
}

func TestAxisRotationConsistency(t *testing.T) {
	// A PBC-y tensor evaluated at (x,y,z) should equal a PBC-x tensor
	// evaluated at the coordinate-swapped point, since rotate() exists
	// solely to reduce every axis to the "x" case.
	chk.PrintTitle("axis rotation consistency")
	tx := New(AxisX, 1, 2, 3, 10, 5, 1.5, 1e-4)
	ty := New(AxisY, 2, 1, 3, 10, 5, 1.5, 1e-4)
	axx, axy, axz := tx.ComputeTensor(0.3, 0.7, 0.1)
	ayx, ayy, ayz := ty.ComputeTensor(0.7, 0.3, 0.1)
	chk.Scalar(t, "Nxx", 1e-9, axx, ayx)
	chk.Scalar(t, "Nxy", 1e-9, axy, ayy)
	chk.Scalar(t, "Nxz", 1e-9, axz, ayz)
}

// directSum evaluates the periodic image sum by brute force, summing exact
// Newell closed-form terms for |k| <= n images, with no asymptotic/tail
// shortcut at all. This is the §4.4/§8 reference the decomposed algorithm
// in ComputeTensor must converge to. The closed form loses precision at
// large offsets (see package asymp), so callers keep n small: with n=50
// the omitted tail is of order 1e-7.
func directSum(dx, dy, dz, period, x, y, z float64, n int) (nxx, nxy, nxz float64) {
	for k := -n; k <= n; k++ {
		ox := x + float64(k)*period
		if v, err := newell.Nxx(ox, y, z, dx, dy, dz); err == nil {
			nxx += v
		}
		if v, err := newell.Nxy(ox, y, z, dx, dy, dz); err == nil {
			nxy += v
		}
		if v, err := newell.Nxz(ox, y, z, dx, dy, dz); err == nil {
			nxz += v
		}
	}
	return
}

// TestComputeTensorMatchesDirectImageSum is the §8 headline invariant: the
// near/mid/tail decomposition in ComputeTensor must agree with a direct
// (brute-force) summation over the nearest ±50 periodic images. Direct
// summation of the 1/R^3-decaying Nab series converges slowly in plain
// float64, so the tolerance here is looser than the double-double-precision
// 1e-10/1e-12 figures in §8; it still confirms the decomposition is a
// faithful rearrangement of the same series, not a different algorithm.
func TestComputeTensorMatchesDirectImageSum(t *testing.T) {
	chk.PrintTitle("periodic tensor matches direct image sum")
	dx, dy, dz := 1.0, 1.0, 1.0
	period := 10.0
	tens := New(AxisX, dx, dy, dz, period, 5, 1.5, 1e-4)

	x, y, z := 0.3, 0.6, 0.2
	gotXX, gotXY, gotXZ := tens.ComputeTensor(x, y, z)
	wantXX, wantXY, wantXZ := directSum(dx, dy, dz, period, x, y, z, 50)

	chk.AnaNum(t, "Nxx", 1e-6, gotXX, wantXX, false)
	chk.AnaNum(t, "Nxy", 1e-6, gotXY, wantXY, false)
	chk.AnaNum(t, "Nxz", 1e-6, gotXZ, wantXZ, false)
}

func TestComputeTensorMatchesDirectImageSumOffAxis(t *testing.T) {
	chk.PrintTitle("periodic tensor matches direct image sum, off-axis cell")
	dx, dy, dz := 2.0, 1.0, 3.0
	period := 20.0
	tens := New(AxisX, dx, dy, dz, period, 8, 1.5, 1e-4)

	x, y, z := 1.1, -0.4, 0.9
	gotXX, gotXY, gotXZ := tens.ComputeTensor(x, y, z)
	wantXX, wantXY, wantXZ := directSum(dx, dy, dz, period, x, y, z, 50)

	chk.AnaNum(t, "Nxx", 1e-6, gotXX, wantXX, false)
	chk.AnaNum(t, "Nxy", 1e-6, gotXY, wantXY, false)
	chk.AnaNum(t, "Nxz", 1e-6, gotXZ, wantXZ, false)
}
