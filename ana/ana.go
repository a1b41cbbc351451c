// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana holds closed-form/semi-analytic reference solutions used to
// cross-check the grid solver, in the spirit of the teacher's own ana
// package (ana/pressurised_cylinder.go, ana/selfweight_confined.go):
// small, self-contained checks that do not themselves exercise the grid
// solver, only the physics they model in closed form.
package ana

import (
	"math"

	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/num"
)

// StonerWohlfarthEquilibriumAngle solves §8 scenario 2's single-domain
// cross-check: a macrospin with uniaxial anisotropy coefficient k1 along
// x and saturation magnetization ms, under a field b applied along y
// (perpendicular to the easy axis), settles at the angle theta (measured
// from the easy axis, 0<=theta<pi/2) minimizing
//
//	u(theta) = k1*sin(theta)^2 - ms*b*sin(theta)
//
// whose stationary point satisfies the torque balance
//
//	sin(2*theta)*k1 = cos(theta)*ms*b.
//
// The root is bracketed in (0, pi/2) and resolved with gosl/num.Brent,
// mirroring the teacher's root-finder usage pattern for scalar nonlinear
// solves.
func StonerWohlfarthEquilibriumAngle(k1, ms, b float64) (float64, error) {
	residual := func(theta float64) float64 {
		return math.Sin(2*theta)*k1 - math.Cos(theta)*ms*b
	}
	solver := num.NewBrent(fun.Ss(residual), nil)
	return solver.Root(1e-6, math.Pi/2-1e-6)
}
