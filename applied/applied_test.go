// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package applied

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/fangohr/oommf-sub006/vec3"
)

func identityCoords(i, k int) (float64, float64) { return float64(i), float64(k) }

func TestUniformFieldScalesByMs(t *testing.T) {
	u := &Uniform{}
	if err := u.SetCoords(2, 2, identityCoords); err != nil {
		t.Fatal(err)
	}
	ms := 8e5
	b := vec3.New(0, 0, 1e-3)
	if err := u.SetNomField(ms, b, 0); err != nil {
		t.Fatal(err)
	}
	want := b.Scale(1 / (mu0 * ms))
	got := u.LocalH(0, 0)
	chk.Scalar(t, "LocalH.Z", 1e-9, got.Z, want.Z)
}

func TestUniformRejectsNonPositiveMs(t *testing.T) {
	u := &Uniform{}
	u.SetCoords(1, 1, identityCoords)
	if err := u.SetNomField(0, vec3.V{}, 0); err == nil {
		t.Fatal("expected error for zero Ms")
	}
}

func TestRibbonFieldIsFiniteEverywhere(t *testing.T) {
	r := NewRibbon(1.0, -5, 0, 5, 0, 2)
	if err := r.SetCoords(4, 4, func(i, k int) (float64, float64) {
		return float64(i) - 2, float64(k) - 2
	}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		for k := 0; k < 4; k++ {
			h := r.LocalH(i, k)
			if math.IsNaN(h.X) || math.IsNaN(h.Y) || math.IsInf(h.X, 0) || math.IsInf(h.Y, 0) {
				t.Fatalf("non-finite ribbon field at (%d,%d): %+v", i, k, h)
			}
		}
	}
}

func TestRibbonSplitsOctantBoundaryConsistently(t *testing.T) {
	r := NewRibbon(1.0, -3, 0, 3, 0, 1)
	// A window straddling x=0 is split into two halves at x=0; check the
	// result is symmetric in x: mirroring the window flips hpar and keeps hperp.
	hpar1, hperp1 := r.fieldCalc(-1, 6, 0.5)
	hpar2, hperp2 := r.fieldCalc(-5, 6, 0.5) // window [-5,1], the mirror image of [-1,5]
	if math.IsNaN(hpar1) || math.IsNaN(hperp1) || math.IsNaN(hpar2) || math.IsNaN(hperp2) {
		t.Fatal("fieldCalc produced NaN")
	}
	if math.Abs(hpar1+hpar2) > 1e-12*(1+math.Abs(hpar1)) {
		t.Fatalf("hpar not antisymmetric under x mirror: %v vs %v", hpar1, hpar2)
	}
	if math.Abs(hperp1-hperp2) > 1e-12*(1+math.Abs(hperp1)) {
		t.Fatalf("hperp not symmetric under x mirror: %v vs %v", hperp1, hperp2)
	}
}

func TestTieFieldZeroOutsideStrip(t *testing.T) {
	tie := NewTie(vec3.New(1, 0, 0), 0, 0, 10, 0, 2)
	if err := tie.SetCoords(3, 3, func(i, k int) (float64, float64) {
		return float64(i) * 5, float64(k)*5 + 10 // far outside the strip in y
	}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			if tie.LocalH(i, k) != (vec3.V{}) {
				t.Fatalf("expected zero field outside the tie strip at (%d,%d)", i, k)
			}
		}
	}
}

func TestFileSequenceClampsStepIndex(t *testing.T) {
	samples := []Sample{
		{H: [][]vec3.V{{vec3.New(1, 0, 0)}}},
		{H: [][]vec3.V{{vec3.New(2, 0, 0)}}},
	}
	fs := NewFileSequence(samples)
	if err := fs.SetCoords(1, 1, identityCoords); err != nil {
		t.Fatal(err)
	}
	fs.SetNomField(1, vec3.V{}, 99)
	if fs.LocalH(0, 0) != vec3.New(2, 0, 0) {
		t.Fatalf("expected clamp to last sample, got %+v", fs.LocalH(0, 0))
	}
	fs.SetNomField(1, vec3.V{}, -5)
	if fs.LocalH(0, 0) != vec3.New(1, 0, 0) {
		t.Fatalf("expected clamp to first sample, got %+v", fs.LocalH(0, 0))
	}
}

func TestMultiSumsSubFields(t *testing.T) {
	u1 := &Uniform{}
	u1.SetCoords(1, 1, identityCoords)
	u1.SetNomField(1, vec3.New(mu0, 0, 0), 0)
	u2 := &Uniform{}
	u2.SetCoords(1, 1, identityCoords)
	u2.SetNomField(1, vec3.New(0, mu0, 0), 0)
	m := NewMulti(u1, u2)
	if err := m.SetCoords(1, 1, identityCoords); err != nil {
		t.Fatal(err)
	}
	got := m.LocalH(0, 0)
	chk.Vector(t, "summed field", 1e-9, []float64{got.X, got.Y, got.Z}, []float64{1, 1, 0})
}
