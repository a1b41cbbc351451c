// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asymp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// For a cubic cell (Δx=Δy=Δz), all O(1/R^5) asymptotic coefficients vanish.
func TestCubicCellOrder5Vanishes(t *testing.T) {
	c := NewNxxCoeffs(2, 2, 2)
	if !c.cubic {
		t.Fatal("expected cubic flag set")
	}
	if c.a1 != 0 || c.a2 != 0 || c.a3 != 0 || c.a4 != 0 || c.a5 != 0 || c.a6 != 0 {
		t.Fatalf("expected all order-5 Nxx coefficients to vanish for a cubic cell, got %+v", c)
	}
	cxy := NewNxyCoeffs(2, 2, 2)
	if cxy.a1 != 0 || cxy.a2 != 0 || cxy.a3 != 0 {
		t.Fatalf("expected all order-5 Nxy coefficients to vanish for a cubic cell, got %+v", cxy)
	}
}

func TestTensorFarFieldAgreesWithDipoleSign(t *testing.T) {
	tens := NewTensor(1, 1, 1, 1.5, 1e-4)
	// Near the x axis the leading dipole term of Nxx is negative, and the
	// value must be finite and unchanged when y and z flip sign.
	v1 := tens.Nxx(100, 1, 1)
	v2 := tens.Nxx(100, -1, -1)
	if v1 != v2 {
		t.Fatalf("asymptotic Nxx not symmetric under y,z sign flip: %v vs %v", v1, v2)
	}
	if math.IsNaN(v1) || math.IsInf(v1, 0) {
		t.Fatalf("non-finite asymptotic Nxx: %v", v1)
	}
	if v1 >= 0 {
		t.Fatalf("expected negative dipole-like Nxx near the x axis, got %v", v1)
	}
}

func TestRefinementResultScale(t *testing.T) {
	r := NewRefinement(6, 1, 1, 1.5)
	if r.Xcount*r.Ycount*r.Zcount == 0 {
		t.Fatal("expected nonzero subcell counts")
	}
	want := 1.0 / float64(r.Xcount*r.Ycount*r.Zcount)
	chk.Scalar(t, "ResultScale", 1e-15, r.ResultScale, want)
}

func TestNeedsRefinement(t *testing.T) {
	if NeedsRefinement(1, 1, 1, 1.5) {
		t.Fatal("cube should not need refinement")
	}
	if !NeedsRefinement(10, 1, 1, 1.5) {
		t.Fatal("elongated cell should need refinement")
	}
}
