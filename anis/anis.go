// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package anis implements the magneto-crystalline anisotropy energy and
// field formulas (§3, §4.5) for the three supported anisotropy kinds.
// Design Notes §9 calls for replacing the source's hidden pointer-to-
// member dispatch with a tagged enum and a single switch in two places
// (energy and field); this mirrors the teacher's mdl/solid registry
// pattern (github.com/cpmech/gofem mdl/solid/model.go) but, since there
// are exactly three fixed kinds rather than an open set of named plugins,
// a closed Kind enum is the idiomatic match rather than a name->allocator
// map.
package anis

import "github.com/fangohr/oommf-sub006/vec3"

// Kind tags which closed-form anisotropy energy/field applies to a cell.
type Kind int

const (
	// Uniaxial anisotropy about a single easy axis
	Uniaxial Kind = iota
	// Cubic anisotropy with axes aligned to the coordinate frame
	Cubic
	// GenCubic is cubic anisotropy with arbitrarily-oriented axes
	GenCubic
)

// Dirs holds up to three unit anisotropy-axis vectors (§4.5's
// init_anis_dirs contract); each Cell keeps its own copy by value.
type Dirs struct {
	A, B, C vec3.V
	HasB    bool
	HasC    bool
}

// Energy returns the anisotropy energy density (per unit volume, before
// thickness scaling) for the given kind, coefficient (K1/(mu0 Ms^2)) and
// spin direction.
func Energy(kind Kind, coef float64, dirs Dirs, spin vec3.V) float64 {
	switch kind {
	case Uniaxial:
		ma := spin.Dot(dirs.A)
		return coef * (1 - ma*ma)
	case Cubic:
		mx, my, mz := spin.X, spin.Y, spin.Z
		return coef * (mx*mx*my*my + my*my*mz*mz + mz*mz*mx*mx)
	case GenCubic:
		ma := spin.Dot(dirs.A)
		mb := spin.Dot(dirs.B)
		mc := spin.Dot(dirs.C)
		return coef * (ma*ma*mb*mb + mb*mb*mc*mc + mc*mc*ma*ma)
	}
	return 0
}

// Field returns the anisotropy field (= -dE/dm, in reduced units) for the
// given kind, coefficient and spin direction.
func Field(kind Kind, coef float64, dirs Dirs, spin vec3.V) vec3.V {
	switch kind {
	case Uniaxial:
		ma := spin.Dot(dirs.A)
		return dirs.A.Scale(2 * coef * ma)
	case Cubic:
		mx, my, mz := spin.X, spin.Y, spin.Z
		return vec3.V{
			X: -2 * coef * mx * (my*my + mz*mz),
			Y: -2 * coef * my * (mz*mz + mx*mx),
			Z: -2 * coef * mz * (mx*mx + my*my),
		}
	case GenCubic:
		ma := spin.Dot(dirs.A)
		mb := spin.Dot(dirs.B)
		mc := spin.Dot(dirs.C)
		ha := 2 * coef * ma * (mb*mb + mc*mc)
		hb := 2 * coef * mb * (mc*mc + ma*ma)
		hc := 2 * coef * mc * (ma*ma + mb*mb)
		return dirs.A.Scale(-ha).Add(dirs.B.Scale(-hb)).Add(dirs.C.Scale(-hc))
	}
	return vec3.V{}
}

// SurfaceField returns the optional per-edge-cell surface anisotropy
// contribution 2*acoef*(m·n)*n described in §4.6 step 5.
func SurfaceField(acoef float64, normal, spin vec3.V) vec3.V {
	return normal.Scale(2 * acoef * spin.Dot(normal))
}
