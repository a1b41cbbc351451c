// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import "github.com/fangohr/oommf-sub006/vec3"

// System is the subset of GridCore's state the steppers need to drive an
// LLG step: spin read/write, field (re)evaluation, and energy. Package
// grid implements this; keeping it as an interface here follows the
// teacher's pattern of letting ana's ODE closures depend only on the
// small function/state surface they need, not the whole solver.
type System interface {
	NumCells() int
	Spins() []vec3.V
	SetSpins(spins []vec3.V)
	UpdateH(fast bool) error
	H() []vec3.V
	Energy() (float64, error)
	PerturbAll(maxAngle float64)
}

// snapshotSpins returns a defensive copy of sys.Spins().
func snapshotSpins(sys System) []vec3.V {
	src := sys.Spins()
	out := make([]vec3.V, len(src))
	copy(out, src)
	return out
}

// advance returns spins advanced by step*torque, renormalized to unit
// length per cell (the LLG flow preserves |m|=1 only to first order, so
// every stepper renormalizes after advancing).
func advance(spins, torques []vec3.V, step float64) []vec3.V {
	out := make([]vec3.V, len(spins))
	for i := range spins {
		out[i] = spins[i].AccumulateSigned(step, torques[i]).PreciseNormalize()
	}
	return out
}

func maxDiff(a, b []vec3.V) float64 {
	var max float64
	for i := range a {
		if d := a[i].Sub(b[i]).Norm(); d > max {
			max = d
		}
	}
	return max
}
