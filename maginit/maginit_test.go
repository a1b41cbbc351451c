// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package maginit

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestNewRejectsUnknownPattern(t *testing.T) {
	if _, err := New("bogus", 4, 4, nil); err == nil {
		t.Fatal("expected error for unknown pattern name")
	}
}

func TestNewRejectsWrongParamCount(t *testing.T) {
	if _, err := New("uniform", 4, 4, []float64{1}); err == nil {
		t.Fatal("expected error for wrong parameter count")
	}
}

func TestNewEmptyNameDefaultsToRandom(t *testing.T) {
	m, err := New("", 3, 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(m) != 3 || len(m[0]) != 3 {
		t.Fatalf("unexpected grid shape: %dx%d", len(m), len(m[0]))
	}
}

func TestRandomProducesUnitVectors(t *testing.T) {
	m, err := New("random", 5, 5, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := range m {
		for k := range m[i] {
			chk.Scalar(t, "random spin norm", 1e-9, m[i][k].Norm(), 1)
		}
	}
}

func TestUniformPointsAtRequestedAngle(t *testing.T) {
	m, err := New("uniform", 2, 2, []float64{90, 0})
	if err != nil {
		t.Fatal(err)
	}
	v := m[0][0]
	chk.Vector(t, "uniform(theta=90,phi=0)", 1e-9, []float64{v.X, v.Y, v.Z}, []float64{1, 0, 0})
}

func TestInOutIsAntisymmetricAboutMidplane(t *testing.T) {
	m, err := New("inout", 4, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if m[0][0].Z >= 0 || m[3][0].Z <= 0 {
		t.Fatalf("expected opposite z on each half: left=%v right=%v", m[0][0].Z, m[3][0].Z)
	}
}

func TestVortexCenterPointsOutOfPlane(t *testing.T) {
	m, err := New("vortex", 5, 5, nil)
	if err != nil {
		t.Fatal(err)
	}
	c := m[2][2]
	chk.Scalar(t, "vortex center Z", 1e-9, c.Z, 1)
}

func TestSphereCenterPointsOutOfPlane(t *testing.T) {
	m, err := New("sphere", 9, 9, nil)
	if err != nil {
		t.Fatal(err)
	}
	c := m[4][4]
	if c.Z <= 0.9 {
		t.Fatalf("sphere center should be mostly out-of-plane, got %+v", c)
	}
}

func Test7DomainAllUnit(t *testing.T) {
	m, err := New("7domain", 6, 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := range m {
		for k := range m[i] {
			n := m[i][k].Norm()
			if n < 0.99 || n > 1.01 {
				t.Fatalf("7domain[%d][%d] norm=%v", i, k, n)
			}
		}
	}
}

func TestParamCountMatchesRegistry(t *testing.T) {
	n, err := ParamCount("neel")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("neel ParamCount=%d, want 2", n)
	}
}

func TestCRotRejectsDegenerateGrid(t *testing.T) {
	if _, err := New("crot", 1, 5, []float64{30}); err == nil {
		t.Fatal("expected error for nx=1 crot")
	}
}
