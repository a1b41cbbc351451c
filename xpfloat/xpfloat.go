// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package xpfloat implements the compensated-arithmetic utilities
// required by §4.1 and the Design Notes ("Compensated arithmetic"): a
// compensated Kahan-Neumaier summation of an unordered array of
// doubles (AccurateSum), and a running extra-precision accumulator
// (Xpfloat, corresponding to the source's Nb_Xpfloat) used in the energy
// sums of grid.GridCore.CalculateEnergy.
//
// Grounded on oommf/app/oxs/ext/demagcoef.cc's Oxs_AccurateSum. The
// "sort by decreasing absolute value first" step follows gosl/utl's
// sort-then-reduce idiom used elsewhere in the teacher repo for ordered
// index processing; gosl/utl has no "sort floats by magnitude" primitive
// of its own so the sort itself is a short local helper (see SPEC_FULL.md).
package xpfloat

import (
	"math"
	"sort"
)

// AccurateSum sums an unordered slice of doubles using the compensated
// Neumaier (improved Kahan) algorithm, after first sorting by decreasing
// absolute value. This is required wherever the Newell closed-form
// integrals are summed: each tensor component is a sum of up to 27 signed
// corner terms whose individual magnitudes can be many orders larger than
// the final result.
func AccurateSum(terms []float64) float64 {
	if len(terms) == 0 {
		return 0
	}
	sorted := make([]float64, len(terms))
	copy(sorted, terms)
	sort.Slice(sorted, func(i, j int) bool {
		return math.Abs(sorted[i]) > math.Abs(sorted[j])
	})

	var x Xpfloat
	for _, t := range sorted {
		x.Add(t)
	}
	return x.Value()
}

// Xpfloat is a pair-of-doubles (double-double-lite) running accumulator,
// the Go analogue of the source's Nb_Xpfloat. It accumulates a sum plus a
// running correction term using Neumaier's variant of Kahan summation, so
// that long energy-density sums do not lose more than a few ulps to
// cancellation.
type Xpfloat struct {
	sum  float64
	corr float64
}

// Add accumulates x into the running sum
func (p *Xpfloat) Add(x float64) {
	t := p.sum + x
	if math.Abs(p.sum) >= math.Abs(x) {
		p.corr += (p.sum - t) + x
	} else {
		p.corr += (x - t) + p.sum
	}
	p.sum = t
}

// Value returns the compensated sum accumulated so far
func (p *Xpfloat) Value() float64 { return p.sum + p.corr }

// Reset zeroes the accumulator
func (p *Xpfloat) Reset() { p.sum, p.corr = 0, 0 }
