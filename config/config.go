// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package config implements the validated configuration descriptor of
// §6: Sim.Validate rejects bad field values before any array is
// allocated, mirroring inp.Simulation's eager-validate style (the
// teacher reads and checks its whole Simulation record up front in
// inp.ReadSim before any solver object is built).
package config

import (
	"math"

	"github.com/cpmech/gosl/fun"

	"github.com/fangohr/oommf-sub006/anis"
	"github.com/fangohr/oommf-sub006/oxserr"
	"github.com/fangohr/oommf-sub006/vec3"
)

// ArgValue returns the named parameter's value from prms, or ok=false if
// absent; a thin wrapper over fun.Prms.Find for the lookup style
// mdl/diffusion/m1.go's Init uses ("p := prms.Find(name)").
func ArgValue(prms fun.Prms, name string) (float64, bool) {
	p := prms.Find(name)
	if p == nil {
		return 0, false
	}
	return p.V, true
}

// ArgValues returns the plain positional value list, the maginit and
// applied-field constructors consume (they take a parameter-count-keyed
// []float64, per §4.9's {function,param_count} registry, not a named
// lookup).
func ArgValues(prms fun.Prms) []float64 {
	out := make([]float64, len(prms))
	for i, p := range prms {
		out[i] = p.V
	}
	return out
}

// Shape is the sample geometry predicate of §6.
type Shape int

const (
	Rectangle Shape = iota + 1
	Ellipse
	Ellipsoid
	Oval
	Pyramid
	Mask
)

// AppliedFieldSpec names one term of a MultiZeeman-style variadic
// applied-field list (§6): Kind is one of "uniform", "ribbon", "tie",
// "file", "filesequence".
type AppliedFieldSpec struct {
	Kind string
	Args fun.Prms
}

// MagInitSpec names the MagInit pattern and its parameters (§4.9).
type MagInitSpec struct {
	Name string
	Args fun.Prms
}

// StopCriterion is the default control-point spec of §6 (e.g. the
// Tcl-level "-torque 1e-5"): a driver relaxes the grid until the named
// quantity falls at or below Value. Kind is "torque" (max |m x h|) or
// "energy" (the energy-change-per-step ratio); an empty Kind disables
// the stopping check and leaves the decision to the caller's own loop
// bound.
type StopCriterion struct {
	Kind  string
	Value float64
}

// Sim is the validated configuration descriptor GridCore is built from.
type Sim struct {
	Ms            float64 // saturation magnetization, A/m
	A             float64 // exchange stiffness, J/m
	K1            float64 // anisotropy coefficient, J/m^3
	EdgeK1        float64 // edge-cell anisotropy override
	AnisType      anis.Kind
	AnisDirA      vec3.V
	AnisDirB      vec3.V
	AnisInitName  string
	AnisInitArgs  fun.Prms
	DemagRoutine  string // external plug-in name; empty selects the internal convolution
	DemagArgs     fun.Prms // parameters passed to the external demag routine's Init
	PartWidth     float64
	PartHeight    float64
	PartThickness float64
	CellSize      float64
	PartShape     Shape
	ShapeParam    float64
	MagInit       MagInitSpec
	AppliedFields []AppliedFieldSpec
	Precession    bool
	GyRatio       float64
	DampCoef      float64
	InitIncrement float64 // radians
	RandSeed      int64
	MinStep       float64
	MaxStep       float64
	StopCriterion StopCriterion

	// MaskFn backs the Mask shape predicate with an externally-loaded
	// image sampler; §1 excludes image-mask loading itself from the
	// core, so callers must populate this before GridCore construction
	// when PartShape==Mask.
	MaskFn func(x, z float64) bool
}

// Validate rejects the field combinations named in §6: non-positive Ms
// or A, non-unit anisotropy directions, non-orthogonal cubic axes,
// cellsize larger than the part dimensions, and cellsize that does not
// evenly divide the part dimensions to 10^-4 relative.
func (s *Sim) Validate() error {
	if s.Ms <= 0 {
		return oxserr.New(oxserr.ConfigurationInvalid, "config: Ms must be positive, got %v", s.Ms)
	}
	if s.A <= 0 {
		return oxserr.New(oxserr.ConfigurationInvalid, "config: A must be positive, got %v", s.A)
	}
	if s.CellSize <= 0 {
		return oxserr.New(oxserr.ConfigurationInvalid, "config: cellsize must be positive, got %v", s.CellSize)
	}
	if !s.AnisDirA.IsUnit(1e-9) {
		return oxserr.New(oxserr.InvalidAxis, "config: anisotropy direction A is not unit length: %+v", s.AnisDirA)
	}
	if s.AnisType == anis.Cubic || s.AnisType == anis.GenCubic {
		if !s.AnisDirB.IsUnit(1e-9) {
			return oxserr.New(oxserr.InvalidAxis, "config: anisotropy direction B is not unit length: %+v", s.AnisDirB)
		}
		if !s.AnisDirA.Orthogonal(s.AnisDirB, 1e-6) {
			return oxserr.New(oxserr.InvalidAxis, "config: cubic anisotropy axes are not orthogonal")
		}
	}
	if s.CellSize > s.PartWidth || s.CellSize > s.PartHeight {
		return oxserr.New(oxserr.ConfigurationInvalid, "config: cellsize %v exceeds part dimensions %vx%v", s.CellSize, s.PartWidth, s.PartHeight)
	}
	if !dividesEvenly(s.PartWidth, s.CellSize) {
		return oxserr.New(oxserr.ConfigurationInvalid, "config: cellsize %v does not divide part width %v within 1e-4 relative", s.CellSize, s.PartWidth)
	}
	if !dividesEvenly(s.PartHeight, s.CellSize) {
		return oxserr.New(oxserr.ConfigurationInvalid, "config: cellsize %v does not divide part height %v within 1e-4 relative", s.CellSize, s.PartHeight)
	}
	return nil
}

func dividesEvenly(dimension, cellsize float64) bool {
	n := math.Round(dimension / cellsize)
	if n < 1 {
		return false
	}
	rel := math.Abs(dimension-n*cellsize) / dimension
	return rel <= 1e-4
}

// GridDims returns the Nx-by-Nz cell count implied by PartWidth,
// PartHeight and CellSize.
func (s *Sim) GridDims() (nx, nz int) {
	nx = int(math.Round(s.PartWidth / s.CellSize))
	nz = int(math.Round(s.PartHeight / s.CellSize))
	return
}
