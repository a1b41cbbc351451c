// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/ode"

	"github.com/fangohr/oommf-sub006/oxserr"
)

// Stepper is one of StepEuler, StepPredict2, StepRungeKutta4 (bound with
// fast=false) in the signature the outer controller dispatches through.
type Stepper func(sys System, cfg Config, state *State) (bool, error)

// StepOde is the outer step controller of §4.7: it clamps step_size so
// that step_size*max_torque <= MaxTorqueStep, invokes the selected
// stepper, falls back to a forced RK4 step on stepper failure, and as a
// last resort perturbs the magnetization and retries up to
// cfg.PerturbRetries times. verbose gates the teacher's io.Pf-style
// progress printing.
func StepOde(sys System, cfg Config, state *State, stepper Stepper, verbose bool) (errorCode int, err error) {
	torques := ComputeTorques(sys.Spins(), sys.H(), cfg.Alpha, cfg.Precession)
	maxTorque := MaxTorqueNorm(torques)
	if maxTorque > 0 && state.StepSize*maxTorque > cfg.MaxTorqueStep {
		state.StepSize = cfg.MaxTorqueStep / maxTorque
	}
	if state.StepSize <= 0 {
		state.StepSize = cfg.MaxTorqueStep
	}

	ok, err := stepper(sys, cfg, state)
	if err != nil {
		return 1, err
	}
	if ok {
		return 0, nil
	}

	// primary stepper failed outright (step collapsed below MinStep):
	// force one RK4 attempt at the floor step size before giving up.
	state.StepSize = cfg.MinStep
	ok, err = StepRungeKutta4(sys, cfg, state, false)
	if err != nil {
		return 1, err
	}
	if ok {
		return 0, nil
	}

	for attempt := 0; attempt < cfg.PerturbRetries; attempt++ {
		sys.PerturbAll(cfg.PerturbationSize)
		if err := sys.UpdateH(false); err != nil {
			return 1, err
		}
		state.StepSize = cfg.MinStep
		ok, err = StepRungeKutta4(sys, cfg, state, false)
		if err != nil {
			return 1, err
		}
		if ok {
			return -1, nil // perturb-recovered step: errorcode<0 per §4.7
		}
	}

	state.tooSmallMsgCount++
	if verbose && state.tooSmallMsgCount <= cfg.MaxTooSmallMsgs {
		io.Pfred("integrator: step_ode could not find an accepted step at or above min_step (%d/%d)\n", state.tooSmallMsgCount, cfg.MaxTooSmallMsgs)
	}
	return 1, oxserr.New(oxserr.StepTooSmall, "integrator: no accepted step found at or above min_step=%v", cfg.MinStep)
}

// crossCheckDeriv adapts a torque function to gosl/ode's dξ/dτ=f(τ,ξ)
// signature for a single-cell Stoner–Wohlfarth-style cross-check.
func crossCheckDeriv(alpha float64, precession bool, h func(m [3]float64) [3]float64) func(f []float64, dT, T float64, xi []float64, args ...interface{}) error {
	return func(f []float64, dT, T float64, xi []float64, args ...interface{}) error {
		m := [3]float64{xi[0], xi[1], xi[2]}
		hv := h(m)
		mx := m[1]*hv[2] - m[2]*hv[1]
		my := m[2]*hv[0] - m[0]*hv[2]
		mz := m[0]*hv[1] - m[1]*hv[0]
		mxhx, mxhy, mxhz := mx, my, mz
		mxmxhx := m[1]*mxhz - m[2]*mxhy
		mxmxhy := m[2]*mxhx - m[0]*mxhz
		mxmxhz := m[0]*mxhy - m[1]*mxhx
		if precession {
			f[0] = -mxhx/alpha - mxmxhx
			f[1] = -mxhy/alpha - mxmxhy
			f[2] = -mxhz/alpha - mxmxhz
		} else {
			f[0] = -mxmxhx
			f[1] = -mxmxhy
			f[2] = -mxmxhz
		}
		return nil
	}
}

// RungeKutta4CrossCheck drives an independent gosl/ode "Radau5" solve of
// the single-cell LLG equation from m0 over duration tau, for use as a
// reference value against StepRungeKutta4's own result (SPEC_FULL.md's
// DOMAIN STACK note on exercising gosl/ode for a real cross-check,
// mirroring ana/colpresfluid.go's ColumnFluidPressure.CalcNum pattern).
func RungeKutta4CrossCheck(m0 [3]float64, alpha float64, precession bool, h func(m [3]float64) [3]float64, tau float64) (mFinal [3]float64, err error) {
	var sol ode.ODE
	sol.Init("Radau5", 3, crossCheckDeriv(alpha, precession, h), nil, nil, nil, true)
	sol.Distr = false
	xi := []float64{m0[0], m0[1], m0[2]}
	if solveErr := sol.Solve(xi, 0, tau, tau, false); solveErr != nil {
		chk.Panic("integrator: cross-check ODE solve failed: %v", solveErr)
	}
	return [3]float64{xi[0], xi[1], xi[2]}, nil
}
