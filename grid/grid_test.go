// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/fangohr/oommf-sub006/anis"
	"github.com/fangohr/oommf-sub006/applied"
	"github.com/fangohr/oommf-sub006/config"
	"github.com/fangohr/oommf-sub006/integrator"
	"github.com/fangohr/oommf-sub006/vec3"
)

func chainConfig() config.Sim {
	return config.Sim{
		Ms:            8e5,
		A:             1.3e-11,
		CellSize:      5e-9,
		PartWidth:     20 * 5e-9,
		PartHeight:    5e-9,
		PartThickness: 3e-9,
		PartShape:     config.Rectangle,
		AnisType:      anis.Uniaxial,
		AnisDirA:      vec3.New(1, 0, 0),
		MagInit:       config.MagInitSpec{Name: "uniform", Args: fun.Prms{{N: "theta", V: 45}, {N: "phi", V: 0}}},
		DampCoef:      0.5,
		MinStep:       1e-15,
		InitIncrement: 1e-4,
	}
}

func TestBuildProducesExpectedGridDims(t *testing.T) {
	g, err := Build(chainConfig(), nil, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if g.Nx != 20 || g.Nz != 1 {
		t.Fatalf("Nx,Nz=%d,%d want 20,1", g.Nx, g.Nz)
	}
	if g.NumCells() != 20 {
		t.Fatalf("NumCells=%d want 20", g.NumCells())
	}
}

func TestBuildAppliesUniformMagInit(t *testing.T) {
	g, err := Build(chainConfig(), nil, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range g.Spins() {
		chk.Scalar(t, "spin norm", 1e-6, s.Norm(), 1)
	}
}

func TestUpdateHAndEnergyAreFinite(t *testing.T) {
	g, err := Build(chainConfig(), nil, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.UpdateH(false); err != nil {
		t.Fatal(err)
	}
	e, err := g.CalculateEnergy()
	if err != nil {
		t.Fatal(err)
	}
	if math.IsNaN(e.Total) || math.IsInf(e.Total, 0) {
		t.Fatalf("non-finite total energy: %+v", e)
	}
}

func TestStepEulerAcceptsStepsOnChain(t *testing.T) {
	cfg := chainConfig()
	cfg.MagInit = config.MagInitSpec{Name: "uniform", Args: fun.Prms{{N: "theta", V: 45}, {N: "phi", V: 0}}}
	g, err := Build(cfg, nil, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.UpdateH(false); err != nil {
		t.Fatal(err)
	}
	cfg2 := g.IntCfg
	cfg2.AllowedSpinError = 1e-3
	state := &integrator.State{StepSize: 1e-6, InitialStepSize: 1e-6}
	for i := 0; i < 50; i++ {
		if _, err := integrator.StepEuler(g, cfg2, state); err != nil {
			t.Fatal(err)
		}
	}
	if state.StepTotal == 0 {
		t.Fatal("expected at least one accepted step")
	}
}

func TestAppliedFieldIsRotatedIntoInternalFrame(t *testing.T) {
	cfg := chainConfig()
	u := &applied.Uniform{}
	g, err := Build(cfg, u, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := u.SetNomField(cfg.Ms, vec3.New(0, 0, 0.01), 0); err != nil {
		t.Fatal(err)
	}
	if err := g.UpdateH(false); err != nil {
		t.Fatal(err)
	}
	// external (0,0,B) (out-of-plane) rotates to internal -y (thickness
	// direction), per (x,y,z)_ext <-> (x,-z,y)_int.
	if g.H()[0].Y == 0 {
		t.Fatal("expected the rotated applied field to contribute a nonzero internal y-component")
	}
}

func TestResetReappliesMagInitAndClearsState(t *testing.T) {
	g, err := Build(chainConfig(), nil, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	g.SetSpins(make([]vec3.V, g.NumCells())) // corrupt to the zero vector
	if err := g.Reset(); err != nil {
		t.Fatal(err)
	}
	for _, s := range g.Spins() {
		chk.Scalar(t, "spin norm after reset", 1e-6, s.Norm(), 1)
	}
	if g.IntState.StepTotal != 0 {
		t.Fatalf("expected StepTotal=0 after reset, got %d", g.IntState.StepTotal)
	}
}
