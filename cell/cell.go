// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cell implements the single-cell data and per-cell physics of
// §4.5: exchange coupling to up-to-8 neighbors, anisotropy energy/field
// dispatch, and the small helper operations (perturb, copy_data) the
// integrator and grid driver need. Grounded on the Cell/Spin structures
// of oommf/app/mmsolve/cell.{h,cc}; the registry-free tagged-dispatch
// style follows mdl/solid/model.go's switch-on-kind pattern used
// elsewhere in this module (package anis) rather than gofem's full
// name->allocator registry, since §9's Design Notes call for a closed
// enum here.
package cell

import (
	"github.com/cpmech/gosl/chk"

	"github.com/fangohr/oommf-sub006/anis"
	"github.com/fangohr/oommf-sub006/oxserr"
	"github.com/fangohr/oommf-sub006/vec3"
)

// MaxNeighbors bounds the exchange-coupled neighbor list (8 per §4.5:
// four in-plane edge neighbors plus four diagonal corner neighbors).
const MaxNeighbors = 8

// Neighbor is one exchange-coupled partner: the index of the partner
// cell in the owning grid's flat cell array, and the bond weight
// (combines exchange stiffness, shared-face area and separation).
type Neighbor struct {
	Index  int
	Weight float64
}

// Cell holds the per-site state and material parameters of a single
// simulation cell.
type Cell struct {
	Spin         vec3.V
	Thickness    float64
	NyCorrection float64

	AnisKind anis.Kind
	AnisCoef float64 // K1/(mu0 Ms^2), zero disables anisotropy
	AnisDirs anis.Dirs

	SurfaceAnisCoef float64 // zero disables surface anisotropy
	SurfaceNormal   vec3.V

	Neighbors []Neighbor
}

// SetK1 sets the anisotropy coefficient from K1 and Ms, per §4.5's
// "set_K1" contract (coef = K1/(mu0 Ms^2)); Ms<=0 is a configuration error.
func (c *Cell) SetK1(k1, ms, mu0 float64) error {
	if ms <= 0 {
		return oxserr.New(oxserr.ConfigurationInvalid, "cell: Ms must be positive, got %v", ms)
	}
	c.AnisCoef = k1 / (mu0 * ms * ms)
	return nil
}

// SetThickness records the out-of-plane cell thickness used by the Ny
// demag correction and by energy-density-to-energy conversion.
func (c *Cell) SetThickness(thickness float64) error {
	if thickness <= 0 {
		return oxserr.New(oxserr.ConfigurationInvalid, "cell: thickness must be positive, got %v", thickness)
	}
	c.Thickness = thickness
	return nil
}

// SetNyCorrection records the thin-film demagnetizing-factor correction
// applied to the out-of-plane field component (§4.6 step 3).
func (c *Cell) SetNyCorrection(ny float64) {
	c.NyCorrection = ny
}

// InitAnisDirs validates and installs the anisotropy axes for the given
// kind. Uniaxial needs only A; Cubic ignores the supplied dirs (axes are
// the coordinate frame); GenCubic needs all three, mutually orthogonal
// unit vectors.
func (c *Cell) InitAnisDirs(kind anis.Kind, a, b, cc vec3.V) error {
	const tol = 1e-6
	switch kind {
	case anis.Uniaxial:
		if !a.IsUnit(tol) {
			return oxserr.New(oxserr.InvalidAxis, "cell: uniaxial anisotropy direction is not unit length: %+v", a)
		}
		c.AnisDirs = anis.Dirs{A: a}
	case anis.Cubic:
		// axes are the coordinate frame; nothing to validate
	case anis.GenCubic:
		for _, v := range []vec3.V{a, b, cc} {
			if !v.IsUnit(tol) {
				return oxserr.New(oxserr.InvalidAxis, "cell: cubic anisotropy direction is not unit length: %+v", v)
			}
		}
		if !a.Orthogonal(b, tol) || !b.Orthogonal(cc, tol) || !cc.Orthogonal(a, tol) {
			return oxserr.New(oxserr.InvalidAxis, "cell: cubic anisotropy directions are not mutually orthogonal")
		}
		c.AnisDirs = anis.Dirs{A: a, B: b, C: cc, HasB: true, HasC: true}
	default:
		chk.Panic("cell: unknown anisotropy kind %v", kind)
	}
	c.AnisKind = kind
	return nil
}

// SetupNeighbors installs the exchange neighbor list, rejecting lists
// longer than MaxNeighbors per §4.5.
func (c *Cell) SetupNeighbors(neighbors []Neighbor) error {
	if len(neighbors) > MaxNeighbors {
		return oxserr.New(oxserr.ConfigurationInvalid, "cell: %d neighbors exceeds the %d-neighbor exchange stencil", len(neighbors), MaxNeighbors)
	}
	c.Neighbors = neighbors
	return nil
}

// CalculateExchange returns the exchange field contribution,
// sum_j weight_j*(spin_j - spin), over all registered neighbors.
func (c *Cell) CalculateExchange(cells []*Cell) vec3.V {
	var h vec3.V
	for _, n := range c.Neighbors {
		diff := cells[n.Index].Spin.Sub(c.Spin)
		h = h.AccumulateSigned(n.Weight, diff)
	}
	return h
}

// CalculateExchangeEnergy returns the exchange energy density contributed
// by this cell's bonds, 0.5*sum_j weight_j*(1 - spin·spin_j), the factor
// of one half avoiding double-counting when summed over all cells (each
// bond is walked from both endpoints).
func (c *Cell) CalculateExchangeEnergy(cells []*Cell) float64 {
	var e float64
	for _, n := range c.Neighbors {
		e += 0.5 * n.Weight * (1 - c.Spin.Dot(cells[n.Index].Spin))
	}
	return e
}

// AnisotropyEnergy returns the anisotropy energy density for this cell's
// current spin, dispatching on AnisKind; zero if AnisCoef is zero.
func (c *Cell) AnisotropyEnergy() float64 {
	if c.AnisCoef == 0 {
		return 0
	}
	return anis.Energy(c.AnisKind, c.AnisCoef, c.AnisDirs, c.Spin)
}

// AnisotropyField returns the anisotropy field for this cell's current
// spin, including the optional surface-anisotropy term of §4.6 step 5.
func (c *Cell) AnisotropyField() vec3.V {
	var h vec3.V
	if c.AnisCoef != 0 {
		h = anis.Field(c.AnisKind, c.AnisCoef, c.AnisDirs, c.Spin)
	}
	if c.SurfaceAnisCoef != 0 {
		h = h.Add(anis.SurfaceField(c.SurfaceAnisCoef, c.SurfaceNormal, c.Spin))
	}
	return h
}

// MinNeighborDot returns the smallest spin·neighborSpin dot product over
// this cell's bonds, used by the grid's angle-based step-size heuristic
// (§4.6 "MaxTorqueStep"); returns 1 (no constraint) if there are no
// neighbors.
func (c *Cell) MinNeighborDot(cells []*Cell) float64 {
	min := 1.0
	for _, n := range c.Neighbors {
		d := c.Spin.Dot(cells[n.Index].Spin)
		if d < min {
			min = d
		}
	}
	return min
}

// Perturb nudges the spin by a random unit vector scaled by maxAngle (in
// radians, small-angle approximation) and renormalizes; used by the
// integrator's stuck-step recovery (§4.7).
func (c *Cell) Perturb(maxAngle float64) {
	kick := vec3.RandomUnit().Scale(maxAngle)
	c.Spin = c.Spin.Add(kick).PreciseNormalize()
}

// CopyData copies all per-cell state (spin, thickness, anisotropy
// parameters, Ny correction) from src into c, but deliberately excludes
// the neighbor list, which is topology and is set up once at grid
// construction time.
func (c *Cell) CopyData(src *Cell) {
	c.Spin = src.Spin
	c.Thickness = src.Thickness
	c.NyCorrection = src.NyCorrection
	c.AnisKind = src.AnisKind
	c.AnisCoef = src.AnisCoef
	c.AnisDirs = src.AnisDirs
	c.SurfaceAnisCoef = src.SurfaceAnisCoef
	c.SurfaceNormal = src.SurfaceNormal
}
