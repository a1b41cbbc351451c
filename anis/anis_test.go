// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anis

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/fangohr/oommf-sub006/vec3"
)

func TestUniaxialEnergyMinimalAlongEasyAxis(t *testing.T) {
	dirs := Dirs{A: vec3.New(1, 0, 0)}
	onAxis := Energy(Uniaxial, 1.0, dirs, vec3.New(1, 0, 0))
	offAxis := Energy(Uniaxial, 1.0, dirs, vec3.New(0, 1, 0))
	if onAxis >= offAxis {
		t.Fatalf("on-axis energy %v should be below off-axis energy %v", onAxis, offAxis)
	}
	chk.Scalar(t, "on-axis uniaxial energy", 1e-15, onAxis, 0)
}

func TestUniaxialFieldPointsAlongEasyAxis(t *testing.T) {
	dirs := Dirs{A: vec3.New(1, 0, 0)}
	h := Field(Uniaxial, 1.0, dirs, vec3.New(0, 1, 0).Add(vec3.New(1, 0, 0)).Normalize())
	if h.Y != 0 || h.Z != 0 {
		t.Fatalf("uniaxial field should lie along the easy axis, got %+v", h)
	}
}

func TestCubicEnergyVanishesAlongCoordinateAxis(t *testing.T) {
	got := Energy(Cubic, 1.0, Dirs{}, vec3.New(1, 0, 0))
	chk.Scalar(t, "cubic energy on coordinate axis", 1e-15, got, 0)
}

func TestGenCubicMatchesCubicWhenAxesAreCoordinateFrame(t *testing.T) {
	dirs := Dirs{A: vec3.New(1, 0, 0), B: vec3.New(0, 1, 0), C: vec3.New(0, 0, 1), HasB: true, HasC: true}
	spin := vec3.New(1, 2, 2).Normalize()
	e1 := Energy(Cubic, 0.7, Dirs{}, spin)
	e2 := Energy(GenCubic, 0.7, dirs, spin)
	chk.Scalar(t, "GenCubic vs Cubic", 1e-12, e2, e1)
}

func TestSurfaceFieldScalesWithNormalComponent(t *testing.T) {
	n := vec3.New(0, 0, 1)
	spin := vec3.New(0, 0.6, 0.8)
	h := SurfaceField(0.5, n, spin)
	want := n.Scale(2 * 0.5 * 0.8)
	chk.Vector(t, "SurfaceField", 1e-12, []float64{h.X, h.Y, h.Z}, []float64{want.X, want.Y, want.Z})
}
