// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"math"

	"github.com/fangohr/oommf-sub006/vec3"
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// StepEuler attempts one forward-Euler step of size state.StepSize,
// halving on rejection per §4.7. Returns whether a step was accepted.
func StepEuler(sys System, cfg Config, state *State) (bool, error) {
	spins0 := snapshotSpins(sys)
	h0 := append([]vec3.V(nil), sys.H()...)
	torques0 := ComputeTorques(spins0, h0, cfg.Alpha, cfg.Precession)
	energy0, err := sys.Energy()
	if err != nil {
		return false, err
	}

	for {
		step := state.StepSize
		next := advance(spins0, torques0, step)
		sys.SetSpins(next)
		if err := sys.UpdateH(false); err != nil {
			return false, err
		}
		energy1, err := sys.Energy()
		if err != nil {
			return false, err
		}
		torques1 := ComputeTorques(next, sys.H(), cfg.Alpha, cfg.Precession)
		predicted := predictedEnergyChange(torques0, step)
		actual := energy1 - energy0
		n := float64(sys.NumCells())
		if actual < cfg.AllowedSpinError*n && math.Abs(predicted-actual) < cfg.AllowedSpinError*n {
			state.Torque0 = torques1
			state.StepSize0 = step
			acceptStep(state, step)
			return true, nil
		}
		if !shrinkOrFail(cfg, state) {
			sys.SetSpins(spins0)
			sys.UpdateH(false)
			return false, nil
		}
	}
}

// predictedEnergyChange estimates dE from the leading-order torque·torque
// dissipation term, used by StepEuler's acceptance test.
func predictedEnergyChange(torques []vec3.V, step float64) float64 {
	var sum float64
	for _, t := range torques {
		sum += t.Dot(t)
	}
	return -step * sum
}

// StepPredict2 implements the two-pass PECE scheme of §4.7. Falls back to
// StepRungeKutta4 when there is no step history (state.OdeIterCount<1).
func StepPredict2(sys System, cfg Config, state *State) (bool, error) {
	if state.OdeIterCount < 1 || state.Torque0 == nil {
		return StepRungeKutta4(sys, cfg, state, false)
	}
	spins0 := snapshotSpins(sys)
	torques0 := ComputeTorques(spins0, sys.H(), cfg.Alpha, cfg.Precession)
	energy0, err := sys.Energy()
	if err != nil {
		return false, err
	}
	relStep := 1.0
	if state.StepSize0 != 0 {
		relStep = state.StepSize / state.StepSize0
	}

	for {
		step := state.StepSize
		// predictor: m + step*(torque + relStep*(torque - torque0))/2-ish
		// blended explicit predictor using current and previous torque
		pred := make([]vec3.V, len(spins0))
		for i := range spins0 {
			blended := torques0[i].Scale(1 + relStep).Sub(state.Torque0[i].Scale(relStep))
			pred[i] = spins0[i].AccumulateSigned(step, blended).PreciseNormalize()
		}
		sys.SetSpins(pred)
		if err := sys.UpdateH(false); err != nil {
			return false, err
		}
		torquesPred := ComputeTorques(pred, sys.H(), cfg.Alpha, cfg.Precession)

		// corrector: trapezoidal average of torque0 and torquesPred
		corr := make([]vec3.V, len(spins0))
		for i := range spins0 {
			avg := torques0[i].Add(torquesPred[i]).Scale(0.5)
			corr[i] = spins0[i].AccumulateSigned(step, avg).PreciseNormalize()
		}

		pcError := maxDiff(pred, corr) / 6
		maxTorque := MaxTorqueNorm(torques0)
		allowed := cfg.AllowedSolverError(step, maxTorque)

		sys.SetSpins(corr)
		if err := sys.UpdateH(false); err != nil {
			return false, err
		}
		energy1, err := sys.Energy()
		if err != nil {
			return false, err
		}
		torques1 := ComputeTorques(corr, sys.H(), cfg.Alpha, cfg.Precession)

		dE0 := energyDerivative(spins0, torques0)
		dE1 := energyDerivative(corr, torques1)
		expected := (dE0 + dE1) * step / 2
		actual := energy1 - energy0
		const slack = 1e-12

		pcOK := pcError < allowed
		actualOK := actual < expected*cfg.AllowedEnergyErrorRatio+slack

		if pcOK && actualOK {
			state.Torque0 = torques1
			state.StepSize0 = step
			acceptStep(state, step)
			energyRatio := math.Sqrt(cfg.HeadRoom * math.Abs(actual/nonZero(expected)))
			pcRatio := math.Pow(cfg.HeadRoom*allowed/nonZero(pcError), 1.0/3.0)
			growth := math.Min(energyRatio, pcRatio)
			growth = clamp(growth, cfg.LowerIncreaseRatio, cfg.UpperIncreaseRatio)
			state.NextStepSize = step * growth
			return true, nil
		}

		energyRatio := math.Sqrt(cfg.HeadRoom * math.Abs(actual/nonZero(expected)))
		pcRatio := math.Pow(allowed/nonZero(pcError), 1.0/3.0)
		shrink := math.Min(energyRatio, pcRatio)
		shrink = clamp(shrink, cfg.LowerCutRatio, cfg.UpperCutRatio)
		state.StepSize *= shrink
		if state.StepSize < cfg.MinStep {
			sys.SetSpins(spins0)
			sys.UpdateH(false)
			return false, nil
		}
		state.RejectTotal++
	}
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1e-300
	}
	return v
}

func energyDerivative(spins, torques []vec3.V) float64 {
	var sum float64
	for _, t := range torques {
		sum += t.Dot(t)
	}
	return -sum
}

// StepRungeKutta4 advances one classical RK4 step with step-doubling
// error estimation (§4.7): full step vs two half steps, error = the
// largest per-cell norm of the spin difference. fast selects hFastUpdate
// for the interior evaluations.
func StepRungeKutta4(sys System, cfg Config, state *State, fast bool) (bool, error) {
	spins0 := snapshotSpins(sys)
	energy0, err := sys.Energy()
	if err != nil {
		return false, err
	}

	for {
		step := state.StepSize
		full, err := rk4Step(sys, cfg, spins0, step, fast)
		if err != nil {
			return false, err
		}
		half1, err := rk4Step(sys, cfg, spins0, step/2, fast)
		if err != nil {
			return false, err
		}
		half2, err := rk4Step(sys, cfg, half1, step/2, fast)
		if err != nil {
			return false, err
		}

		errEst := maxDiff(full, half2)

		sys.SetSpins(half2)
		if err := sys.UpdateH(false); err != nil {
			return false, err
		}
		energy1, err := sys.Energy()
		if err != nil {
			return false, err
		}

		const allowedError = 1e-6
		if errEst < allowedError && energy1 < energy0 {
			ratio := math.Pow(allowedError/nonZero(errEst), 1.0/5.0)
			state.NextStepSize = step * ratio * cfg.SafetyFactor * cfg.HeadRoom
			state.Torque0 = ComputeTorques(half2, sys.H(), cfg.Alpha, cfg.Precession)
			state.StepSize0 = step
			acceptStep(state, step)
			return true, nil
		}
		if !shrinkOrFail(cfg, state) {
			sys.SetSpins(spins0)
			sys.UpdateH(false)
			return false, nil
		}
	}
}

// rk4Step performs one classical RK4 substep of the given size starting
// from `from`, using hFastUpdate for the three interior evaluations when
// fast is set (§4.6's hFastUpdate contract).
func rk4Step(sys System, cfg Config, from []vec3.V, step float64, fast bool) ([]vec3.V, error) {
	eval := func(spins []vec3.V, fastH bool) ([]vec3.V, error) {
		sys.SetSpins(spins)
		if err := sys.UpdateH(fastH); err != nil {
			return nil, err
		}
		return ComputeTorques(spins, sys.H(), cfg.Alpha, cfg.Precession), nil
	}

	k1, err := eval(from, false)
	if err != nil {
		return nil, err
	}
	s2 := advance(from, k1, step/2)
	k2, err := eval(s2, fast)
	if err != nil {
		return nil, err
	}
	s3 := advance(from, k2, step/2)
	k3, err := eval(s3, fast)
	if err != nil {
		return nil, err
	}
	s4 := advance(from, k3, step)
	k4, err := eval(s4, fast)
	if err != nil {
		return nil, err
	}

	out := make([]vec3.V, len(from))
	for i := range from {
		blend := k1[i].Add(k2[i].Scale(2)).Add(k3[i].Scale(2)).Add(k4[i]).Scale(1.0 / 6.0)
		out[i] = from[i].AccumulateSigned(step, blend).PreciseNormalize()
	}
	return out, nil
}

// shrinkOrFail halves the step size, reports rejection, and returns false
// once the floor MinStep is reached.
func shrinkOrFail(cfg Config, state *State) bool {
	state.RejectTotal++
	state.StepSize /= 2
	return state.StepSize >= cfg.MinStep
}

// acceptStep records bookkeeping common to every successful stepper call.
func acceptStep(state *State, step float64) {
	state.StepSize = step
	state.StepTotal++
	state.OdeIterCount++
}
