// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package grid implements GridCore (§4.10): the container that owns all
// per-cell arrays, the demag/field evaluator, and the integrator state,
// and orchestrates construction, reset and one LLG step. Grounded on
// fem/fem.go's FEsolver/domain construction sequence (allocate, apply
// boundary data, build connectivity) and fem/domain.go's element-array
// ownership pattern, retouched onto a Cell/spin lattice instead of a
// finite-element mesh.
package grid

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/rnd"

	"github.com/fangohr/oommf-sub006/applied"
	"github.com/fangohr/oommf-sub006/cell"
	"github.com/fangohr/oommf-sub006/config"
	"github.com/fangohr/oommf-sub006/demagext"
	"github.com/fangohr/oommf-sub006/field"
	"github.com/fangohr/oommf-sub006/integrator"
	"github.com/fangohr/oommf-sub006/maginit"
	"github.com/fangohr/oommf-sub006/newell"
	"github.com/fangohr/oommf-sub006/oxserr"
	"github.com/fangohr/oommf-sub006/vec3"
)

const mu0 = 4 * math.Pi * 1e-7

// Grid is GridCore: the single-threaded owner of a sample's full state.
type Grid struct {
	Nx, Nz int
	cfg    config.Sim

	cells  []*cell.Cell // the active m buffer
	prev   []*cell.Cell // m0: snapshot taken by Build and Reset, kept for rollback/diagnostics

	h      []vec3.V
	hDemag []vec3.V

	torque []vec3.V

	evaluator *field.Evaluator
	applied   applied.Field

	IntCfg   integrator.Config
	IntState integrator.State

	hValid      bool
	torqueValid bool
	energyValid bool
	energyCache float64

	Verbose bool
}

// appliedAdapter rotates an applied.Field's external-xyz output into the
// internal xzy frame field.Evaluator expects (§6's coordinate seam).
type appliedAdapter struct{ f applied.Field }

func (a appliedAdapter) LocalH(i, k int) vec3.V { return extToInt(a.f.LocalH(i, k)) }

// Build constructs a Grid from a validated configuration descriptor:
// allocates cells, seeds the RNG, rotates the anisotropy axes xyz->xzy,
// applies the sample geometry with per-cell K1, axes and Ny correction,
// builds the neighbor graph, runs the selected MagInit, computes the
// demag coefficient tables (or wires the external routine), wires the
// applied field and sets the integrator defaults, in that order.
func Build(cfg config.Sim, appliedField applied.Field, external demagext.Routine, verbose bool) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	nx, nz := cfg.GridDims()
	n := nx * nz

	g := &Grid{Nx: nx, Nz: nz, cfg: cfg, applied: appliedField, Verbose: verbose}
	g.cells = make([]*cell.Cell, n)
	g.prev = make([]*cell.Cell, n)
	g.h = make([]vec3.V, n)
	g.hDemag = make([]vec3.V, n)
	g.torque = make([]vec3.V, n)

	if cfg.RandSeed != 0 {
		rnd.Init(int(cfg.RandSeed))
	}

	intA := extToInt(cfg.AnisDirA)
	intB := extToInt(cfg.AnisDirB)
	intC := intB.Cross(intA).Normalize() // third GenCubic axis completes the orthonormal frame

	for idx := range g.cells {
		i, k := idx/nz, idx%nz
		x, z := (float64(i)+0.5)*cfg.CellSize, (float64(k)+0.5)*cfg.CellSize
		c := &cell.Cell{}
		frac := cfg.ThicknessAt(x, z)
		thickness := cfg.PartThickness * frac
		if thickness > 0 {
			if err := c.SetThickness(thickness); err != nil {
				return nil, err
			}
			k1 := cfg.K1
			if isEdge(i, k, nx, nz) {
				k1 = cfg.EdgeK1
			}
			if err := c.SetK1(k1, cfg.Ms, mu0); err != nil {
				return nil, err
			}
			if err := c.InitAnisDirs(cfg.AnisType, intA, intB, intC); err != nil {
				return nil, err
			}
			c.SetNyCorrection(newell.SelfDemagNy(cfg.CellSize, thickness, cfg.CellSize))
		}
		g.cells[idx] = c
		prevCopy := &cell.Cell{}
		prevCopy.CopyData(c)
		g.prev[idx] = prevCopy
	}

	if err := g.buildNeighbors(); err != nil {
		return nil, err
	}

	if err := g.initMagnetization(); err != nil {
		return nil, err
	}

	if external != nil {
		if cfg.DemagRoutine == "" {
			return nil, oxserr.New(oxserr.ConfigurationInvalid, "grid: external demag routine provided but config.Sim.DemagRoutine is empty")
		}
		if err := external.Init(nx, nz, config.ArgValues(cfg.DemagArgs)); err != nil {
			return nil, err
		}
		g.evaluator = field.NewEvaluator(nx, nz, nil, external)
	} else {
		demag, err := field.NewDemagCoeffs(nx, nz, cfg.CellSize)
		if err != nil {
			return nil, err
		}
		g.evaluator = field.NewEvaluator(nx, nz, demag, nil)
	}

	if g.applied != nil {
		if err := g.applied.SetCoords(nx, nz, func(i, k int) (float64, float64) {
			return (float64(i) + 0.5) * cfg.CellSize, (float64(k) + 0.5) * cfg.CellSize
		}); err != nil {
			return nil, err
		}
		if err := g.applied.SetNomField(cfg.Ms, vec3.V{}, 0); err != nil {
			return nil, err
		}
	}

	g.IntCfg = integrator.DefaultConfig(cfg.DampCoef, cfg.Precession, false)
	g.IntCfg.MinStep = cfg.MinStep
	g.IntState.InitialStepSize = cfg.InitIncrement
	g.IntState.StepSize = cfg.InitIncrement
	g.IntState.NextStepSize = cfg.InitIncrement

	g.snapshotPrev()
	return g, nil
}

func isEdge(i, k, nx, nz int) bool {
	return i == 0 || k == 0 || i == nx-1 || k == nz-1
}

// buildNeighbors wires the 4 edge-sharing and 4 diagonal in-plane
// neighbors (up to cell.MaxNeighbors=8), weighting exchange bonds by
// A/(mu0*Ms^2*cellsize^2) for edge neighbors and half that for diagonal
// neighbors (the 2D 8-neighbor stencil's standard relative weighting).
func (g *Grid) buildNeighbors() error {
	nx, nz, cs := g.Nx, g.Nz, g.cfg.CellSize
	edgeWeight := g.cfg.A / (mu0 * g.cfg.Ms * g.cfg.Ms * cs * cs)
	diagWeight := edgeWeight / 2
	offsets := []struct {
		di, dk int
		weight float64
	}{
		{-1, 0, edgeWeight}, {1, 0, edgeWeight}, {0, -1, edgeWeight}, {0, 1, edgeWeight},
		{-1, -1, diagWeight}, {-1, 1, diagWeight}, {1, -1, diagWeight}, {1, 1, diagWeight},
	}
	for idx, c := range g.cells {
		if c.Thickness <= 0 {
			continue
		}
		i, k := idx/nz, idx%nz
		var neighbors []cell.Neighbor
		for _, o := range offsets {
			ni, nk := i+o.di, k+o.dk
			if ni < 0 || ni >= nx || nk < 0 || nk >= nz {
				continue
			}
			nidx := ni*nz + nk
			if g.cells[nidx].Thickness <= 0 {
				continue
			}
			neighbors = append(neighbors, cell.Neighbor{Index: nidx, Weight: o.weight})
		}
		if err := c.SetupNeighbors(neighbors); err != nil {
			return err
		}
	}
	return nil
}

// initMagnetization runs the configured MagInit pattern and rotates its
// external-xyz output into each cell's internal spin.
func (g *Grid) initMagnetization() error {
	m, err := maginit.New(g.cfg.MagInit.Name, g.Nx, g.Nz, config.ArgValues(g.cfg.MagInit.Args))
	if err != nil {
		return err
	}
	for idx, c := range g.cells {
		if c.Thickness <= 0 {
			continue
		}
		i, k := idx/g.Nz, idx%g.Nz
		c.Spin = extToInt(m[i][k]).PreciseNormalize()
	}
	return nil
}

// Reset re-seeds the random generator (deterministically if the
// configured seed is non-zero), re-invokes MagInit, and resets the
// step-size/iteration state, per §4.10.
func (g *Grid) Reset() error {
	if g.cfg.RandSeed != 0 {
		rnd.Init(int(g.cfg.RandSeed))
	}
	if err := g.initMagnetization(); err != nil {
		return err
	}
	g.IntState.Reset()
	g.hValid, g.torqueValid, g.energyValid = false, false, false
	g.snapshotPrev()
	if g.Verbose {
		io.Pf("grid: reset complete, %d cells\n", len(g.cells))
	}
	return nil
}

func (g *Grid) snapshotPrev() {
	for i, c := range g.cells {
		g.prev[i].CopyData(c)
	}
}
