// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package integrator implements the LLG steppers of §4.7: the shared
// torque evaluation, and the Euler / predictor-corrector / RK4 steppers
// driven by a common outer step_ode controller. Grounded on the
// teacher's ana/colpresfluid.go gosl/ode usage (mirrored here by
// RungeKutta4CrossCheck) and fem/solver.go's accept/reject/retry step
// loop shape.
package integrator

import (
	"math"

	"github.com/fangohr/oommf-sub006/vec3"
)

// Torque evaluates the LLG torque T = -(1/alpha)*(m×h) - m×(m×h) at one
// cell (§4.7); when precession is disabled the first term is dropped.
func Torque(m, h vec3.V, alpha float64, precession bool) vec3.V {
	mxh := m.Cross(h)
	mxmxh := m.Cross(mxh)
	if !precession {
		return mxmxh.Scale(-1)
	}
	return mxh.Scale(-1 / alpha).Add(mxmxh.Scale(-1))
}

// ComputeTorques evaluates Torque over every cell.
func ComputeTorques(spins, h []vec3.V, alpha float64, precession bool) []vec3.V {
	out := make([]vec3.V, len(spins))
	for i := range spins {
		out[i] = Torque(spins[i], h[i], alpha, precession)
	}
	return out
}

// MaxTorqueNorm returns max_i |T_i|, used by the outer controller's
// MaxTorqueStep adjustment.
func MaxTorqueNorm(torques []vec3.V) float64 {
	var max float64
	for _, t := range torques {
		if n := t.Norm(); n > max {
			max = n
		}
	}
	return max
}

// MxHInfNorm returns the convergence criterion |mxh|_inf = max|T|/sqrt(1+1/alpha^2)
// per §4.7's convergence reporting contract.
func MxHInfNorm(torques []vec3.V, alpha float64) float64 {
	scale := 1 / math.Sqrt(1+1/(alpha*alpha))
	return MaxTorqueNorm(torques) * scale
}
