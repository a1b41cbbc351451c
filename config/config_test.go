// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/fangohr/oommf-sub006/anis"
	"github.com/fangohr/oommf-sub006/vec3"
)

func validSim() *Sim {
	return &Sim{
		Ms:            8e5,
		A:             1.3e-11,
		CellSize:      5e-9,
		PartWidth:     50e-9,
		PartHeight:    25e-9,
		PartThickness: 3e-9,
		PartShape:     Rectangle,
		AnisType:      anis.Uniaxial,
		AnisDirA:      vec3.New(1, 0, 0),
	}
}

func TestValidateAcceptsWellFormedSim(t *testing.T) {
	s := validSim()
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestValidateRejectsNonPositiveMs(t *testing.T) {
	s := validSim()
	s.Ms = 0
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for zero Ms")
	}
}

func TestValidateRejectsNonOrthogonalCubicAxes(t *testing.T) {
	s := validSim()
	s.AnisType = anis.Cubic
	s.AnisDirB = vec3.New(1, 0, 0) // parallel to AnisDirA, not orthogonal
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for non-orthogonal cubic axes")
	}
}

func TestValidateRejectsCellsizeLargerThanPart(t *testing.T) {
	s := validSim()
	s.CellSize = 1000e-9
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for oversized cellsize")
	}
}

func TestValidateRejectsNonDividingCellsize(t *testing.T) {
	s := validSim()
	s.PartWidth = 51e-9 // not a multiple of 5nm within 1e-4 relative
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for non-dividing cellsize")
	}
}

func TestGridDimsMatchesWidthHeightOverCellsize(t *testing.T) {
	s := validSim()
	nx, nz := s.GridDims()
	if nx != 10 || nz != 5 {
		t.Fatalf("GridDims=(%d,%d), want (10,5)", nx, nz)
	}
}

func TestArgValueAndArgValues(t *testing.T) {
	a := fun.Prms{{N: "theta", V: 45}, {N: "phi", V: 0}}
	v, ok := ArgValue(a, "theta")
	if !ok {
		t.Fatal("expected ok=true for theta")
	}
	chk.Scalar(t, "theta", 1e-15, v, 45)
	if _, ok := ArgValue(a, "missing"); ok {
		t.Fatal("expected ok=false for missing arg")
	}
	vals := ArgValues(a)
	chk.Vector(t, "ArgValues", 1e-15, vals, []float64{45, 0})
}
