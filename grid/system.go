// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"github.com/fangohr/oommf-sub006/integrator"
	"github.com/fangohr/oommf-sub006/vec3"
)

// zeroApplied is the fallback field.Applied used when no AppliedField is
// configured: every cell sees zero external field.
type zeroApplied struct{}

func (zeroApplied) LocalH(i, k int) vec3.V { return vec3.V{} }

func (g *Grid) localApplied() localApplier {
	if g.applied == nil {
		return zeroApplied{}
	}
	return appliedAdapter{g.applied}
}

// localApplier is field.Applied, aliased locally so this file doesn't
// need to import package field just for the interface name.
type localApplier interface {
	LocalH(i, k int) vec3.V
}

// NumCells, Spins, SetSpins, UpdateH, H, Energy and PerturbAll implement
// integrator.System: package integrator drives these to advance the LLG
// equation without depending on package grid directly (package grid
// imports package integrator, so the reverse import would be circular).

// NumCells returns the number of cells with nonzero thickness and the
// ones without, since the torque/spin arrays are indexed densely over
// the whole Nx*Nz grid (zero-thickness cells simply carry zero torque).
func (g *Grid) NumCells() int { return len(g.cells) }

// Spins returns the current spin of every cell, indexed i*Nz+k.
func (g *Grid) Spins() []vec3.V {
	out := make([]vec3.V, len(g.cells))
	for i, c := range g.cells {
		out[i] = c.Spin
	}
	return out
}

// SetSpins overwrites every cell's spin and invalidates the cached
// field, torque and energy (§4.10's h_valid/torque_valid/energy_valid
// flags).
func (g *Grid) SetSpins(spins []vec3.V) {
	for i, c := range g.cells {
		c.Spin = spins[i]
	}
	g.hValid, g.torqueValid, g.energyValid = false, false, false
}

// UpdateH recomputes the effective field for every cell (§4.6):
// fast=true skips the demag recompute and reuses hDemag, for RK4's
// interior evaluations.
func (g *Grid) UpdateH(fast bool) error {
	var err error
	if fast {
		err = g.evaluator.HFastUpdate(g.cells, g.localApplied(), g.h, g.hDemag)
	} else {
		err = g.evaluator.HUpdate(g.cells, g.localApplied(), g.h, g.hDemag)
		g.IntState.HUpdateCount++
	}
	if err != nil {
		return err
	}
	g.hValid = true
	g.torqueValid = false
	return nil
}

// H returns the last computed effective field.
func (g *Grid) H() []vec3.V { return g.h }

// Torques returns the LLG torque at every cell for the current spin and
// field state, computing and caching it on first use after a field or
// spin change (§4.10's torque/torque_valid pair).
func (g *Grid) Torques() []vec3.V {
	if !g.torqueValid {
		g.torque = integrator.ComputeTorques(g.Spins(), g.h, g.IntCfg.Alpha, g.IntCfg.Precession)
		g.torqueValid = true
	}
	return g.torque
}

// Energy computes and caches the total energy density average, per
// calculate_energy (§4.10); repeated calls without an intervening
// SetSpins reuse the cached value.
func (g *Grid) Energy() (float64, error) {
	if g.energyValid {
		return g.energyCache, nil
	}
	e, err := g.CalculateEnergy()
	if err != nil {
		return 0, err
	}
	g.energyCache = e.Total
	g.energyValid = true
	return g.energyCache, nil
}

// PerturbAll nudges every cell's spin by a small random kick, used by
// the integrator's perturb-and-retry stuck-step recovery (§4.7).
func (g *Grid) PerturbAll(maxAngle float64) {
	for _, c := range g.cells {
		if c.Thickness <= 0 {
			continue
		}
		c.Perturb(maxAngle)
	}
	g.hValid, g.torqueValid, g.energyValid = false, false, false
}
