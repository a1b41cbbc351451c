// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package field implements the per-grid effective-field evaluator of
// §4.6: hUpdate assembles applied + exchange + anisotropy + demag field
// contributions over every cell with nonzero thickness; hFastUpdate
// reuses the last demag solve. Grounded on the teacher's element
// residual-assembly sweep (fem/e_*.go's "for each element, accumulate
// into the global vector" shape), adapted here to a dense cell-pair
// demag convolution instead of an FE stiffness assembly.
package field

import (
	"github.com/cpmech/gosl/la"

	"github.com/fangohr/oommf-sub006/cell"
	"github.com/fangohr/oommf-sub006/demagext"
	"github.com/fangohr/oommf-sub006/newell"
	"github.com/fangohr/oommf-sub006/oxserr"
	"github.com/fangohr/oommf-sub006/vec3"
)

// Applied is the subset of the AppliedField interface (§4.8) FieldEval
// needs: the per-cell field already rotated into internal xzy
// coordinates. Package applied produces external-xyz fields; package
// grid adapts them to this interface at the xyz<->xzy seam (§6).
type Applied interface {
	LocalH(i, k int) vec3.V
}

// DemagCoeffs holds the dense pairwise demag coupling computed once at
// grid construction, per §3/§4.6: A and C combine into the in-plane
// field contribution (A·mx + C·mz, 0, C·mx − A·mz) from every source
// cell, and Self is the closed-form self-demag factor applied to a
// cell's own thickness-scaled moment.
type DemagCoeffs struct {
	Nx, Nz int
	A      [][]float64 // N x N, N=Nx*Nz; A[dst][src]
	C      [][]float64
	Self   float64
}

// NewDemagCoeffs builds the dense demag coefficient matrices for an
// Nx-by-Nz grid of cube cells of the given cellsize, using the exact
// Newell closed form (package newell) for every ordered cell pair and
// the accurate self-demag formula for the diagonal.
func NewDemagCoeffs(nx, nz int, cellsize float64) (*DemagCoeffs, error) {
	if nx <= 0 || nz <= 0 || cellsize <= 0 {
		return nil, oxserr.New(oxserr.ConfigurationInvalid, "field: invalid demag grid dims nx=%d nz=%d cellsize=%v", nx, nz, cellsize)
	}
	n := nx * nz
	dc := &DemagCoeffs{
		Nx: nx, Nz: nz,
		A: la.MatAlloc(n, n),
		C: la.MatAlloc(n, n),
	}
	self, err := newell.Nxx(0, 0, 0, cellsize, cellsize, cellsize)
	if err != nil {
		return nil, err
	}
	dc.Self = self
	for i0 := 0; i0 < nx; i0++ {
		for k0 := 0; k0 < nz; k0++ {
			dst := i0*nz + k0
			for i1 := 0; i1 < nx; i1++ {
				for k1 := 0; k1 < nz; k1++ {
					src := i1*nz + k1
					if dst == src {
						dc.A[dst][src] = dc.Self
						dc.C[dst][src] = 0
						continue
					}
					dx := float64(i0-i1) * cellsize
					dz := float64(k0-k1) * cellsize
					nxx, err := newell.Nxx(dx, dz, 0, cellsize, cellsize, cellsize)
					if err != nil {
						return nil, err
					}
					nxy, err := newell.Nxy(dx, dz, 0, cellsize, cellsize, cellsize)
					if err != nil {
						return nil, err
					}
					dc.A[dst][src] = nxx
					dc.C[dst][src] = nxy
				}
			}
		}
	}
	return dc, nil
}

// Evaluator is the per-grid effective-field assembler.
type Evaluator struct {
	Nx, Nz       int
	Demag        *DemagCoeffs // nil if demag is disabled
	External     demagext.Routine
	DemagEnabled bool
}

// NewEvaluator constructs a field evaluator over an Nx-by-Nz grid.
// Passing a non-nil external routine causes hUpdate's demag step to
// delegate to it instead of using Demag.
func NewEvaluator(nx, nz int, demag *DemagCoeffs, external demagext.Routine) *Evaluator {
	return &Evaluator{Nx: nx, Nz: nz, Demag: demag, External: external, DemagEnabled: demag != nil || external != nil}
}

// HUpdate recomputes the full effective field for every cell with
// nonzero thickness, per §4.6 steps 1-6. cells, applied, h and hDemag
// must all be indexed as i*Nz+k. hDemag is both read (cells with zero
// thickness contribute nothing and are skipped) and overwritten by a
// full demag recompute.
func (e *Evaluator) HUpdate(cells []*cell.Cell, applied Applied, h, hDemag []vec3.V) error {
	if e.DemagEnabled {
		if err := e.computeDemag(cells, hDemag); err != nil {
			return err
		}
	}
	return e.assemble(cells, applied, h, hDemag)
}

// HFastUpdate recomputes h reusing the hDemag array from the last full
// HUpdate (§4.6's "skips the expensive demag recomputation"), used by
// the RK4 integrator's interior evaluations.
func (e *Evaluator) HFastUpdate(cells []*cell.Cell, applied Applied, h, hDemag []vec3.V) error {
	return e.assemble(cells, applied, h, hDemag)
}

// assemble performs steps 1-3,5-6 of §4.6 (applied + exchange +
// anisotropy + surface anisotropy), adding in the already-computed
// hDemag and the cell's Ny correction on the out-of-plane component.
func (e *Evaluator) assemble(cells []*cell.Cell, applied Applied, h, hDemag []vec3.V) error {
	n := e.Nx * e.Nz
	if len(cells) != n || len(h) != n || len(hDemag) != n {
		return oxserr.New(oxserr.ConfigurationInvalid, "field: array length mismatch, want %d cells", n)
	}
	for idx, c := range cells {
		if c.Thickness <= 0 {
			h[idx] = vec3.V{}
			continue
		}
		i, k := idx/e.Nz, idx%e.Nz
		hv := applied.LocalH(i, k)
		hv = hv.Add(c.CalculateExchange(cells))
		hv = hv.Add(c.AnisotropyField())
		if e.DemagEnabled {
			d := hDemag[idx]
			d.Y *= 1 + c.NyCorrection
			hv = hv.Add(d)
		}
		h[idx] = hv
	}
	return nil
}

// computeDemag performs step 4 of §4.6: either delegates to the
// external plug-in or runs the dense InternalDemagCalc convolution.
func (e *Evaluator) computeDemag(cells []*cell.Cell, hDemag []vec3.V) error {
	if e.External != nil {
		return e.computeDemagExternal(cells, hDemag)
	}
	return e.internalDemagCalc(cells, hDemag)
}

// internalDemagCalc implements §4.6 step 4's InternalDemagCalc: for
// every destination cell, h_demag ← Σ_src (A·mx+C·mz, 0, C·mx−A·mz) ·
// thickness[src], expressed as a dense matrix-vector sweep over the
// gosl/la-allocated A/C matrices per SPEC_FULL.md's DOMAIN STACK note.
func (e *Evaluator) internalDemagCalc(cells []*cell.Cell, hDemag []vec3.V) error {
	n := e.Nx * e.Nz
	mx := make([]float64, n)
	mz := make([]float64, n)
	for idx, c := range cells {
		w := c.Thickness
		mx[idx] = w * c.Spin.X
		mz[idx] = w * c.Spin.Z
	}
	for dst := 0; dst < n; dst++ {
		if cells[dst].Thickness <= 0 {
			hDemag[dst] = vec3.V{}
			continue
		}
		var hx, hz float64
		arow, crow := e.Demag.A[dst], e.Demag.C[dst]
		for src := 0; src < n; src++ {
			a := arow[src]
			c := crow[src]
			hx += a*mx[src] + c*mz[src]
			hz += c*mx[src] - a*mz[src]
		}
		hDemag[dst] = vec3.V{X: hx, Y: 0, Z: hz}
	}
	return nil
}

// computeDemagExternal delegates the demag solve to a user-provided
// Routine via the write_m/fill_h projection callbacks of §6.
func (e *Evaluator) computeDemagExternal(cells []*cell.Cell, hDemag []vec3.V) error {
	writeM := func(component int, dst [][]float64) {
		for idx, c := range cells {
			i, k := idx/e.Nz, idx%e.Nz
			var v float64
			switch component {
			case 0:
				v = c.Spin.X
			case 1:
				v = c.Spin.Z
			case 2:
				v = -c.Spin.Y
			}
			dst[i][k] = v * c.Thickness
		}
	}
	fillH := func(component int, src [][]float64) {
		for idx := range cells {
			i, k := idx/e.Nz, idx%e.Nz
			v := src[i][k]
			switch component {
			case 0:
				hDemag[idx].X = v
			case 1:
				hDemag[idx].Z = v
			case 2:
				hDemag[idx].Y = -v
			}
		}
	}
	return e.External.Calc(writeM, fillH)
}
