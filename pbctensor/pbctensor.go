// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package pbctensor implements the 1D periodic-image demagnetization
// tensor (§4.4): an infinite sum over image cells along one periodic
// axis, decomposed into a near-field analytic regime, a mid-field
// asymptotic-pair regime, and a tail integral beyond ktail images.
// Grounded on oommf/app/oxs/ext/demagcoef.cc's Oxs_DemagPeriodicX
// (ComputeAsymptoticLimits, ComputeTensor, and the
// OxsDemagNxxIntegralXBase/OxsDemagNxyIntegralXBase tail closed forms),
// with the coordinate-rotation wrapper pattern taken from
// oommf/app/oxs/contrib/2dpbc-Oct-2013/pbc_util.cc.
package pbctensor

import (
	"math"

	"github.com/fangohr/oommf-sub006/asymp"
	"github.com/fangohr/oommf-sub006/newell"
)

// Axis names the periodic direction.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Ktail returns the image index beyond which the discrete sum is replaced
// by a tail integral, per the formula in §4.4:
// ktail = ceil(43.15/(W/gamma)^(1/4) - 2), gamma = (Δx·Δy·Δz)^(1/3).
func Ktail(period, dx, dy, dz float64) int {
	gamma := math.Cbrt(dx * dy * dz)
	ratio := math.Pow(period/gamma, 0.25)
	k := math.Ceil(43.15/ratio - 2)
	if k < 1 {
		k = 1
	}
	return int(k)
}

// Tensor computes the periodic-image sum of the demag tensor along one
// axis for a cell of edge lengths (dx,dy,dz) and period W.
type Tensor struct {
	axis             Axis
	dx, dy, dz       float64
	period           float64
	asymptoticRadius float64
	ktail            int
	asym             *asymp.Tensor

	nxxInt nxxIntegralX
	nxyInt nxyIntegralX
	nxzInt nxyIntegralX // Nxz reuses the Nxy closed form with y,z swapped
}

// New builds a periodic tensor evaluator. asymptoticRadius is the
// near/far crossover (also used by package asymp's gate); maxRatio and
// maxError configure the underlying asymp.Tensor exactly as in §4.3.
func New(axis Axis, dx, dy, dz, period, asymptoticRadius, maxRatio, maxError float64) *Tensor {
	rdx, rdy, rdz := (&Tensor{axis: axis, dx: dx, dy: dy, dz: dz}).rotatedDims()
	return &Tensor{
		axis:             axis,
		dx:               dx,
		dy:               dy,
		dz:               dz,
		period:           period,
		asymptoticRadius: asymptoticRadius,
		ktail:            Ktail(period, dx, dy, dz),
		asym:             asymp.NewTensor(rdx, rdy, rdz, maxRatio, maxError),
		nxxInt:           newNxxIntegralX(rdx, rdy, rdz, period),
		nxyInt:           newNxyIntegralX(rdx, rdy, rdz, period),
		nxzInt:           newNxyIntegralX(rdx, rdz, rdy, period),
	}
}

// rotate permutes (x,y,z) and (dx,dy,dz) so that the periodic axis always
// plays the "x" role internally, per the PBC-x/y/z wrapper design in §4.4.
func (t *Tensor) rotate(x, y, z float64) (rx, ry, rz float64) {
	switch t.axis {
	case AxisX:
		return x, y, z
	case AxisY:
		return y, x, z
	default: // AxisZ
		return z, y, x
	}
}

func (t *Tensor) rotatedDims() (ddx, ddy, ddz float64) {
	switch t.axis {
	case AxisX:
		return t.dx, t.dy, t.dz
	case AxisY:
		return t.dy, t.dx, t.dz
	default:
		return t.dz, t.dy, t.dx
	}
}

// asymptoticLimits mirrors OxsDemagPeriodic::ComputeAsymptoticLimits: k1/k2
// bound the near-field (Newell closed-form) image range, and k1a/k2a widen
// that range asymmetrically so the mid-field asymptotic pairs are struck
// about as symmetric a base offset as possible (better odd-term
// cancellation).
func (t *Tensor) asymptoticLimits(u, v, w float64) (k1, k2, k1a, k2a int) {
	W := t.period
	var ulimit float64
	if asq := t.asymptoticRadius*t.asymptoticRadius - v*v - w*w; asq > 0 {
		ulimit = math.Sqrt(asq)
	}
	k1 = int(math.Floor((-ulimit - u) / W))
	k2 = int(math.Ceil((ulimit - u) / W))
	if k1 == k2 {
		k1--
	}
	k1a, k2a = k1, k2
	sum := (u + float64(k1)*W) + (u + float64(k2)*W)
	switch {
	case sum > W/2:
		k1a = k1 - 1
	case sum < -W/2:
		k2a = k2 + 1
	}
	return k1, k2, k1a, k2a
}

// ComputeTensor accumulates the image sum of Nxx, Nxy, Nxz (in the
// rotated/internal frame) at base offset (x,y,z); the three-at-once
// signature matches §4.4's "compute_tensor(Nab,Ncd,Nef;r)" contract so
// that a single traversal over the image range serves all three
// components FieldEval needs per neighbor pair.
func (t *Tensor) ComputeTensor(x, y, z float64) (nab, ncd, nef float64) {
	rx, ry, rz := t.rotate(x, y, z)
	ddx, ddy, ddz := t.rotatedDims()
	W := t.period

	k1, k2, k1a, k2a := t.asymptoticLimits(rx, ry, rz)

	var sumXX, sumXY, sumXZ float64

	// Near field: exact Newell closed form for the genuinely close images.
	for k := k1 + 1; k < k2; k++ {
		ox := rx + float64(k)*W
		if v, err := newell.Nxx(ox, ry, rz, ddx, ddy, ddz); err == nil {
			sumXX += v
		}
		if v, err := newell.Nxy(ox, ry, rz, ddx, ddy, ddz); err == nil {
			sumXY += v
		}
		if v, err := newell.Nxz(ox, ry, rz, ddx, ddy, ddz); err == nil {
			sumXZ += v
		}
	}

	// Asymmetric single-point asymptotic tweak terms, using the same base
	// (rx,ry,rz) as the near field: (k1a,k1] and [k2,k2a).
	for k := k1a + 1; k <= k1; k++ {
		ox := rx + float64(k)*W
		sumXX += t.asym.Nxx(ox, ry, rz)
		sumXY += t.asym.Nxy(ox, ry, rz)
		sumXZ += t.asym.Nxz(ox, ry, rz)
	}
	for k := k2; k < k2a; k++ {
		ox := rx + float64(k)*W
		sumXX += t.asym.Nxx(ox, ry, rz)
		sumXY += t.asym.Nxy(ox, ry, rz)
		sumXZ += t.asym.Nxz(ox, ry, rz)
	}

	// From here on, asymptotic pairs are struck about the symmetrized base
	// (xasm, xoffasm) so that +/- images cancel their odd terms.
	xasm := rx + float64(k2a+k1a)*W/2
	xoffasm := float64(k2a-k1a) * W / 2

	kstop := t.ktail - int(math.Floor(xoffasm/W))
	if kstop < 0 {
		kstop = 0
	}

	// Mid field: paired asymptotic evaluation for the images strictly
	// before the tail bridge.
	for k := 0; k < kstop; k++ {
		uoff := xoffasm + float64(k)*W
		xp, xm := xasm+uoff, xasm-uoff
		sumXX += t.asym.Nxx(xp, ry, rz) + t.asym.Nxx(xm, ry, rz)
		sumXY += t.asym.Nxy(xp, ry, rz) + t.asym.Nxy(xm, ry, rz)
		sumXZ += t.asym.Nxz(xp, ry, rz) + t.asym.Nxz(xm, ry, rz)
	}

	// Tail bridge: an 8-term Gregory-quadrature style correction (weights
	// summing to 4) on the next tailTweakCount paired asymptotic terms,
	// per §4.4's "8-point Richardson-tweaked formula".
	for k := 0; k < tailTweakCount; k++ {
		uoff := xoffasm + float64(kstop+k)*W
		xp, xm := xasm+uoff, xasm-uoff
		wt := gregoryWeights[k]
		sumXX += wt * (t.asym.Nxx(xp, ry, rz) + t.asym.Nxx(xm, ry, rz))
		sumXY += wt * (t.asym.Nxy(xp, ry, rz) + t.asym.Nxy(xm, ry, rz))
		sumXZ += wt * (t.asym.Nxz(xp, ry, rz) + t.asym.Nxz(xm, ry, rz))
	}

	// Tail integral: the true analytic remainder of the asymptotic series
	// from the bridge midpoint to +/-infinity, replacing the (otherwise
	// infinite) discrete sum over |k| >= ktail.
	uoffInt := xoffasm + (float64(kstop)+float64(tailTweakCount-1)/2)*W
	xp, xm := xasm+uoffInt, xasm-uoffInt
	pp, pm := newPoint(xp, ry, rz), newPoint(xm, ry, rz)
	sumXX += t.nxxInt.compute(pp, pm)
	sumXY += t.nxyInt.compute(xasm, uoffInt, ry, rz, pp, pm)
	ppz, pmz := newPoint(xp, rz, ry), newPoint(xm, rz, ry)
	sumXZ += t.nxzInt.compute(xasm, uoffInt, rz, ry, ppz, pmz)

	return sumXX, sumXY, sumXZ
}
