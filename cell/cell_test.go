// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cell

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/fangohr/oommf-sub006/anis"
	"github.com/fangohr/oommf-sub006/oxserr"
	"github.com/fangohr/oommf-sub006/vec3"
)

func TestSetK1RejectsNonPositiveMs(t *testing.T) {
	c := &Cell{}
	if err := c.SetK1(1e3, 0, 1); err == nil {
		t.Fatal("expected error for zero Ms")
	} else if !oxserr.Is(err, oxserr.ConfigurationInvalid) {
		t.Fatalf("expected ConfigurationInvalid, got %v", err)
	}
}

func TestInitAnisDirsRejectsNonUnit(t *testing.T) {
	c := &Cell{}
	err := c.InitAnisDirs(anis.Uniaxial, vec3.New(2, 0, 0), vec3.V{}, vec3.V{})
	if err == nil || !oxserr.Is(err, oxserr.InvalidAxis) {
		t.Fatalf("expected InvalidAxis error, got %v", err)
	}
}

func TestInitAnisDirsRejectsNonOrthogonalCubic(t *testing.T) {
	c := &Cell{}
	a := vec3.New(1, 0, 0)
	b := vec3.New(1, 0, 0) // not orthogonal to a
	cc := vec3.New(0, 0, 1)
	err := c.InitAnisDirs(anis.GenCubic, a, b, cc)
	if err == nil || !oxserr.Is(err, oxserr.InvalidAxis) {
		t.Fatalf("expected InvalidAxis error, got %v", err)
	}
}

func TestSetupNeighborsRejectsTooMany(t *testing.T) {
	c := &Cell{}
	ns := make([]Neighbor, MaxNeighbors+1)
	if err := c.SetupNeighbors(ns); err == nil {
		t.Fatal("expected error for too many neighbors")
	}
}

func TestCalculateExchangeAligned(t *testing.T) {
	cells := []*Cell{
		{Spin: vec3.New(1, 0, 0)},
		{Spin: vec3.New(1, 0, 0)},
	}
	cells[0].Neighbors = []Neighbor{{Index: 1, Weight: 2.0}}
	h := cells[0].CalculateExchange(cells)
	chk.Scalar(t, "exchange field norm", 1e-15, h.Norm(), 0)
}

func TestCalculateExchangeEnergyAntiAligned(t *testing.T) {
	cells := []*Cell{
		{Spin: vec3.New(1, 0, 0)},
		{Spin: vec3.New(-1, 0, 0)},
	}
	cells[0].Neighbors = []Neighbor{{Index: 1, Weight: 1.0}}
	e := cells[0].CalculateExchangeEnergy(cells)
	chk.Scalar(t, "exchange energy density", 1e-15, e, 1.0)
}

func TestAnisotropyEnergyUniaxialEasyAxis(t *testing.T) {
	c := &Cell{Spin: vec3.New(0, 0, 1), AnisCoef: 5}
	if err := c.InitAnisDirs(anis.Uniaxial, vec3.New(0, 0, 1), vec3.V{}, vec3.V{}); err != nil {
		t.Fatal(err)
	}
	e := c.AnisotropyEnergy()
	chk.Scalar(t, "anisotropy energy on easy axis", 1e-15, e, 0)
}

func TestPerturbStaysUnit(t *testing.T) {
	c := &Cell{Spin: vec3.New(1, 0, 0)}
	c.Perturb(0.01)
	if !c.Spin.IsUnit(1e-9) {
		t.Fatalf("perturbed spin is not unit length: %+v (norm %v)", c.Spin, c.Spin.Norm())
	}
}

func TestCopyDataExcludesNeighbors(t *testing.T) {
	src := &Cell{Spin: vec3.New(0, 1, 0), Thickness: 2, AnisCoef: 3,
		Neighbors: []Neighbor{{Index: 7, Weight: 1}}}
	dst := &Cell{Neighbors: []Neighbor{{Index: 9, Weight: 2}}}
	dst.CopyData(src)
	if dst.Spin != src.Spin || dst.Thickness != src.Thickness || dst.AnisCoef != src.AnisCoef {
		t.Fatal("CopyData did not copy per-cell state")
	}
	if len(dst.Neighbors) != 1 || dst.Neighbors[0].Index != 9 {
		t.Fatal("CopyData must not overwrite the neighbor topology")
	}
}
