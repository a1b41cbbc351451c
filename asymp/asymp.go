// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package asymp implements the high-order asymptotic series for the
// demagnetization tensor (§4.3), used beyond the asymptotic start radius
// where the Newell closed form (package newell) becomes numerically
// delicate. Transcribed from oommf/app/oxs/ext/demagcoef.cc's
// Oxs_DemagNxxAsymptoticBase and Oxs_DemagNxyAsymptoticBase coefficient
// tables (orders 3, 5, 7, 9); order 11 is left as a documented extension
// point per the Open Questions in spec.md §9 rather than guessed.
package asymp

import "math"

// Order selects how many terms of the series are evaluated.
type Order int

const (
	Order3 Order = 3
	Order5 Order = 5
	Order7 Order = 7
	Order9 Order = 9
)

// Refinement describes subcell splitting of an elongated cell so that each
// subcell's edge-length ratio is within maxRatio of unity (§4.3). Mirrors
// OxsDemagAsymptoticRefineData.
type Refinement struct {
	Rdx, Rdy, Rdz          float64
	Xcount, Ycount, Zcount int
	ResultScale            float64
}

// NewRefinement computes the subcell refinement for a cell of edge lengths
// (dx,dy,dz) given the max_ratio parameter.
func NewRefinement(dx, dy, dz, maxRatio float64) Refinement {
	var r Refinement
	switch {
	case dz <= dx && dz <= dy:
		xratio := math.Ceil(dx / (maxRatio * dz))
		r.Xcount = int(xratio)
		r.Rdx = dx / xratio
		yratio := math.Ceil(dy / (maxRatio * dz))
		r.Ycount = int(yratio)
		r.Rdy = dy / yratio
		r.Zcount = 1
		r.Rdz = dz
	case dy <= dx && dy <= dz:
		xratio := math.Ceil(dx / (maxRatio * dy))
		r.Xcount = int(xratio)
		r.Rdx = dx / xratio
		zratio := math.Ceil(dz / (maxRatio * dy))
		r.Zcount = int(zratio)
		r.Rdz = dz / zratio
		r.Ycount = 1
		r.Rdy = dy
	default:
		yratio := math.Ceil(dy / (maxRatio * dx))
		r.Ycount = int(yratio)
		r.Rdy = dy / yratio
		zratio := math.Ceil(dz / (maxRatio * dx))
		r.Zcount = int(zratio)
		r.Rdz = dz / zratio
		r.Xcount = 1
		r.Rdx = dx
	}
	r.ResultScale = 1.0 / float64(r.Xcount*r.Ycount*r.Zcount)
	return r
}

// NeedsRefinement reports whether the cell edge ratios exceed maxRatio,
// the trigger condition named in §4.3 (elongated cells, aspect ratio > ~1.5).
func NeedsRefinement(dx, dy, dz, maxRatio float64) bool {
	lo := math.Min(dx, math.Min(dy, dz))
	hi := math.Max(dx, math.Max(dy, dz))
	return hi/lo > maxRatio
}

// NxxCoeffs holds the precomputed order-5/7/9 coefficients for the Nxx
// asymptotic series for one cell geometry (Oxs_DemagNxxAsymptoticBase).
// Nyy/Nzz reuse this same struct evaluated against permuted geometry and
// offsets, exactly as package newell permutes Nxx into Nyy/Nzz.
type NxxCoeffs struct {
	cubic      bool
	leadWeight float64
	a1, a2, a3, a4, a5, a6                                 float64
	b1, b2, b3, b4, b5, b6, b7, b8, b9, b10                float64
	c1, c2, c3, c4, c5, c6, c7, c8, c9, c10, c11, c12, c13, c14, c15 float64
}

// NewNxxCoeffs precomputes the Nxx asymptotic coefficients for a cell of
// edge lengths (dx,dy,dz) (after any refinement has already reduced them).
func NewNxxCoeffs(dx, dy, dz float64) NxxCoeffs {
	var c NxxCoeffs
	dx2, dy2, dz2 := dx*dx, dy*dy, dz*dz
	dx4, dy4, dz4 := dx2*dx2, dy2*dy2, dz2*dz2
	dx6 := dx4 * dx2
	c.leadWeight = -dx * dy * dz / (4 * math.Pi)
	lw := c.leadWeight

	if dx2 != dy2 || dx2 != dz2 || dy2 != dz2 {
		c.cubic = false
		base := lw / 4.0
		c.a1 = base * (8*dx2 - 4*dy2 - 4*dz2)
		c.a2 = base * (-24*dx2 + 27*dy2 - 3*dz2)
		c.a3 = base * (-24*dx2 - 3*dy2 + 27*dz2)
		c.a4 = base * (3*dx2 - 4*dy2 + 1*dz2)
		c.a5 = base * (6*dx2 - 3*dy2 - 3*dz2)
		c.a6 = base * (3*dx2 + 1*dy2 - 4*dz2)
	} else {
		c.cubic = true
	}

	b := lw / 16.0
	if c.cubic {
		c.b1 = b * (-14 * dx4)
		c.b2 = b * (105 * dx4)
		c.b3 = b * (105 * dx4)
		c.b4 = b * (-105 * dx4)
		c.b6 = b * (-105 * dx4)
		c.b7 = b * (7 * dx4)
		c.b10 = b * (7 * dx4)
	} else {
		c.b1 = b * (32*dx4 - 40*dx2*dy2 - 40*dx2*dz2 + 12*dy4 + 10*dy2*dz2 + 12*dz4)
		c.b2 = b * (-240*dx4 + 580*dx2*dy2 + 20*dx2*dz2 - 202*dy4 - 75*dy2*dz2 + 22*dz4)
		c.b3 = b * (-240*dx4 + 20*dx2*dy2 + 580*dx2*dz2 + 22*dy4 - 75*dy2*dz2 - 202*dz4)
		c.b4 = b * (180*dx4 - 505*dx2*dy2 + 55*dx2*dz2 + 232*dy4 - 75*dy2*dz2 + 8*dz4)
		c.b5 = b * (360*dx4 - 450*dx2*dy2 - 450*dx2*dz2 - 180*dy4 + 900*dy2*dz2 - 180*dz4)
		c.b6 = b * (180*dx4 + 55*dx2*dy2 - 505*dx2*dz2 + 8*dy4 - 75*dy2*dz2 + 232*dz4)
		c.b7 = b * (-10*dx4 + 30*dx2*dy2 - 5*dx2*dz2 - 16*dy4 + 10*dy2*dz2 - 2*dz4)
		c.b8 = b * (-30*dx4 + 55*dx2*dy2 + 20*dx2*dz2 + 8*dy4 - 75*dy2*dz2 + 22*dz4)
		c.b9 = b * (-30*dx4 + 20*dx2*dy2 + 55*dx2*dz2 + 22*dy4 - 75*dy2*dz2 + 8*dz4)
		c.b10 = b * (-10*dx4 - 5*dx2*dy2 + 30*dx2*dz2 - 2*dy4 + 10*dy2*dz2 - 16*dz4)
	}

	cc := lw / 192.0
	if c.cubic {
		c.c1 = cc * (32 * dx6)
		c.c2 = cc * (-448 * dx6)
		c.c3 = cc * (-448 * dx6)
		c.c4 = cc * (-150 * dx6)
		c.c5 = cc * (7620 * dx6)
		c.c6 = cc * (-150 * dx6)
		c.c7 = cc * (314 * dx6)
		c.c8 = cc * (-3810 * dx6)
		c.c9 = cc * (-3810 * dx6)
		c.c10 = cc * (314 * dx6)
		c.c11 = cc * (-16 * dx6)
		c.c12 = cc * (134 * dx6)
		c.c13 = cc * (300 * dx6)
		c.c14 = cc * (134 * dx6)
		c.c15 = cc * (-16 * dx6)
	} else {
		c.c1 = cc * (384*dx6 - 896*dx4*dy2 - 896*dx4*dz2 + 672*dx2*dy4 + 560*dx2*dy2*dz2 + 672*dx2*dz4 - 120*dy4*dy2 - 112*dy4*dz2 - 112*dy2*dz4 - 120*dz4*dz2)
		c.c2 = cc * (-5376*dx6 + 22624*dx4*dy2 + 2464*dx4*dz2 - 19488*dx2*dy4 - 7840*dx2*dy2*dz2 + 672*dx2*dz4 + 3705*dy4*dy2 + 2198*dy4*dz2 + 938*dy2*dz4 - 345*dz4*dz2)
		c.c3 = cc * (-5376*dx6 + 2464*dx4*dy2 + 22624*dx4*dz2 + 672*dx2*dy4 - 7840*dx2*dy2*dz2 - 19488*dx2*dz4 - 345*dy4*dy2 + 938*dy4*dz2 + 2198*dy2*dz4 + 3705*dz4*dz2)
		c.c4 = cc * (10080*dx6 - 48720*dx4*dy2 + 1680*dx4*dz2 + 49770*dx2*dy4 - 2625*dx2*dy2*dz2 - 630*dx2*dz4 - 10440*dy4*dy2 - 1050*dy4*dz2 + 2100*dy2*dz4 - 315*dz4*dz2)
		c.c5 = cc * (20160*dx6 - 47040*dx4*dy2 - 47040*dx4*dz2 - 6300*dx2*dy4 + 133350*dx2*dy2*dz2 - 6300*dx2*dz4 + 7065*dy4*dy2 - 26670*dy4*dz2 - 26670*dy2*dz4 + 7065*dz4*dz2)
		c.c6 = cc * (10080*dx6 + 1680*dx4*dy2 - 48720*dx4*dz2 - 630*dx2*dy4 - 2625*dx2*dy2*dz2 + 49770*dx2*dz4 - 315*dy4*dy2 + 2100*dy4*dz2 - 1050*dy2*dz4 - 10440*dz4*dz2)
		c.c7 = cc * (-3360*dx6 + 17290*dx4*dy2 - 1610*dx4*dz2 - 19488*dx2*dy4 + 5495*dx2*dy2*dz2 - 588*dx2*dz4 + 4848*dy4*dy2 - 3136*dy4*dz2 + 938*dy2*dz4 - 75*dz4*dz2)
		c.c8 = cc * (-10080*dx6 + 32970*dx4*dy2 + 14070*dx4*dz2 - 6300*dx2*dy4 - 66675*dx2*dy2*dz2 + 12600*dx2*dz4 - 10080*dy4*dy2 + 53340*dy4*dz2 - 26670*dy2*dz4 + 3015*dz4*dz2)
		c.c9 = cc * (-10080*dx6 + 14070*dx4*dy2 + 32970*dx4*dz2 + 12600*dx2*dy4 - 66675*dx2*dy2*dz2 - 6300*dx2*dz4 + 3015*dy4*dy2 - 26670*dy4*dz2 + 53340*dy2*dz4 - 10080*dz4*dz2)
		c.c10 = cc * (-3360*dx6 - 1610*dx4*dy2 + 17290*dx4*dz2 - 588*dx2*dy4 + 5495*dx2*dy2*dz2 - 19488*dx2*dz4 - 75*dy4*dy2 + 938*dy4*dz2 - 3136*dy2*dz4 + 4848*dz4*dz2)
		c.c11 = cc * (105*dx6 - 560*dx4*dy2 + 70*dx4*dz2 + 672*dx2*dy4 - 280*dx2*dy2*dz2 + 42*dx2*dz4 - 192*dy4*dy2 + 224*dy4*dz2 - 112*dy2*dz4 + 15*dz4*dz2)
		c.c12 = cc * (420*dx6 - 1610*dx4*dy2 - 350*dx4*dz2 + 672*dx2*dy4 + 2345*dx2*dy2*dz2 - 588*dx2*dz4 + 528*dy4*dy2 - 3136*dy4*dz2 + 2198*dy2*dz4 - 345*dz4*dz2)
		c.c13 = cc * (630*dx6 - 1470*dx4*dy2 - 1470*dx4*dz2 - 630*dx2*dy4 + 5250*dx2*dy2*dz2 - 630*dx2*dz4 + 360*dy4*dy2 - 1050*dy4*dz2 - 1050*dy2*dz4 + 360*dz4*dz2)
		c.c14 = cc * (420*dx6 - 350*dx4*dy2 - 1610*dx4*dz2 - 588*dx2*dy4 + 2345*dx2*dy2*dz2 + 672*dx2*dz4 - 345*dy4*dy2 + 2198*dy4*dz2 - 3136*dy2*dz4 + 528*dz4*dz2)
		c.c15 = cc * (105*dx6 + 70*dx4*dy2 - 560*dx4*dz2 + 42*dx2*dy4 - 280*dx2*dy2*dz2 + 672*dx2*dz4 + 15*dy4*dy2 - 112*dy4*dz2 + 224*dy2*dz4 - 192*dz4*dz2)
	}
	return c
}

// Eval evaluates the Nxx asymptotic series at offset (x,y,z) up to the
// given order. Returns the cubic-cell coefficient vanishing property
// automatically: for a cubic cell the order-5 term is identically zero.
func (c NxxCoeffs) Eval(x, y, z float64, order Order) float64 {
	rsq := x*x + y*y + z*z
	if rsq <= 0 {
		return 0 // caller should fall back to the self-demag closed form
	}
	r := math.Sqrt(rsq)
	tx2, ty2, tz2 := x*x/rsq, y*y/rsq, z*z/rsq

	term3 := (2*tx2 - ty2 - tz2) * c.leadWeight

	var term5, term7, term9 float64
	if order >= Order5 && !c.cubic {
		term5 = (c.a1*tx2+(c.a2*ty2+c.a3*tz2))*tx2 + (c.a4*ty2+c.a5*tz2)*ty2 + c.a6*tz2*tz2
	}
	if order >= Order7 {
		if c.cubic {
			ty4 := ty2 * ty2
			tz4 := tz2 * tz2
			term7 = ((c.b1*tx2+(c.b2*ty2+c.b3*tz2))*tx2+(c.b4*ty4+c.b6*tz4))*tx2 + c.b7*ty4*ty2 + c.b10*tz4*tz2
		} else {
			tz4 := tz2 * tz2
			term7 = ((c.b1*tx2+(c.b2*ty2+c.b3*tz2))*tx2+((c.b4*ty2+c.b5*tz2)*ty2+c.b6*tz4))*tx2 +
				((c.b7*ty2+c.b8*tz2)*ty2+c.b9*tz4)*ty2 + c.b10*tz4*tz2
		}
	}
	if order >= Order9 {
		tz4 := tz2 * tz2
		term9 = (((c.c1*tx2+(c.c2*ty2+c.c3*tz2))*tx2+((c.c4*ty2+c.c5*tz2)*ty2+c.c6*tz4))*tx2+
			(((c.c7*ty2+c.c8*tz2)*ty2+c.c9*tz4)*ty2+c.c10*tz4*tz2))*tx2 +
			(((c.c11*ty2+c.c12*tz2)*ty2+c.c13*tz4)*ty2+c.c14*tz4*tz2)*ty2 + c.c15*tz4*tz4
	}
	iR2 := 1 / rsq
	return (((term9*iR2+term7)*iR2+term5)*iR2 + term3) / (r * rsq)
}

// NxyCoeffs holds the precomputed asymptotic coefficients for the Nxy
// component (Oxs_DemagNxyAsymptoticBase).
type NxyCoeffs struct {
	cubic      bool
	leadWeight float64
	a1, a2, a3                             float64
	b1, b2, b3, b4, b5, b6                 float64
	c1, c2, c3, c4, c5, c6, c7, c8, c9, c10 float64
}

// NewNxyCoeffs precomputes the Nxy asymptotic coefficients for a cell of
// edge lengths (dx,dy,dz).
func NewNxyCoeffs(dx, dy, dz float64) NxyCoeffs {
	var c NxyCoeffs
	dx2, dy2, dz2 := dx*dx, dy*dy, dz*dz
	dx4, dy4, dz4 := dx2*dx2, dy2*dy2, dz2*dz2
	dx6 := dx4 * dx2
	c.leadWeight = -dx * dy * dz / (4 * math.Pi)
	lw := c.leadWeight

	if dx2 != dy2 || dx2 != dz2 || dy2 != dz2 {
		c.cubic = false
		base := lw * 5.0 / 4.0
		c.a1 = base * (4*dx2 - 3*dy2 - 1*dz2)
		c.a2 = base * (-3*dx2 + 4*dy2 - 1*dz2)
		c.a3 = base * (-3*dx2 - 3*dy2 + 6*dz2)
	} else {
		c.cubic = true
	}

	b := lw * 7.0 / 16.0
	if c.cubic {
		c.b1 = b * (-7 * dx4)
		c.b2 = b * (19 * dx4)
		c.b3 = b * (13 * dx4)
		c.b4 = b * (-7 * dx4)
		c.b5 = b * (13 * dx4)
		c.b6 = b * (-13 * dx4)
	} else {
		c.b1 = b * (16*dx4 - 30*dx2*dy2 - 10*dx2*dz2 + 10*dy4 + 5*dy2*dz2 + 2*dz4)
		c.b2 = b * (-40*dx4 + 105*dx2*dy2 - 5*dx2*dz2 - 40*dy4 - 5*dy2*dz2 + 4*dz4)
		c.b3 = b * (-40*dx4 - 15*dx2*dy2 + 115*dx2*dz2 + 20*dy4 - 35*dy2*dz2 - 32*dz4)
		c.b4 = b * (10*dx4 - 30*dx2*dy2 + 5*dx2*dz2 + 16*dy4 - 10*dy2*dz2 + 2*dz4)
		c.b5 = b * (20*dx4 - 15*dx2*dy2 - 35*dx2*dz2 - 40*dy4 + 115*dy2*dz2 - 32*dz4)
		c.b6 = b * (10*dx4 + 15*dx2*dy2 - 40*dx2*dz2 + 10*dy4 - 40*dy2*dz2 + 32*dz4)
	}

	cc := lw / 64.0
	if c.cubic {
		c.c1 = cc * (48 * dx6)
		c.c2 = cc * (-142 * dx6)
		c.c3 = cc * (-582 * dx6)
		c.c4 = cc * (-142 * dx6)
		c.c5 = cc * (2840 * dx6)
		c.c6 = cc * (-450 * dx6)
		c.c7 = cc * (48 * dx6)
		c.c8 = cc * (-582 * dx6)
		c.c9 = cc * (-450 * dx6)
		c.c10 = cc * (180 * dx6)
	} else {
		c.c1 = cc * (576*dx6 - 2016*dx4*dy2 - 672*dx4*dz2 + 1680*dx2*dy4 + 840*dx2*dy2*dz2 + 336*dx2*dz4 - 315*dy4*dy2 - 210*dy4*dz2 - 126*dy2*dz4 - 45*dz4*dz2)
		c.c2 = cc * (-3024*dx6 + 13664*dx4*dy2 + 448*dx4*dz2 - 12670*dx2*dy4 - 2485*dx2*dy2*dz2 + 546*dx2*dz4 + 2520*dy4*dy2 + 910*dy4*dz2 + 84*dy2*dz4 - 135*dz4*dz2)
		c.c3 = cc * (-3024*dx6 + 1344*dx4*dy2 + 12768*dx4*dz2 + 2730*dx2*dy4 - 10185*dx2*dy2*dz2 - 8694*dx2*dz4 - 945*dy4*dy2 + 1680*dy4*dz2 + 2394*dy2*dz4 + 1350*dz4*dz2)
		c.c4 = cc * (2520*dx6 - 12670*dx4*dy2 + 910*dx4*dz2 + 13664*dx2*dy4 - 2485*dx2*dy2*dz2 + 84*dx2*dz4 - 3024*dy4*dy2 + 448*dy4*dz2 + 546*dy2*dz4 - 135*dz4*dz2)
		c.c5 = cc * (5040*dx6 - 9940*dx4*dy2 - 13580*dx4*dz2 - 9940*dx2*dy4 + 49700*dx2*dy2*dz2 - 6300*dx2*dz4 + 5040*dy4*dy2 - 13580*dy4*dz2 - 6300*dy2*dz4 + 2700*dz4*dz2)
		c.c6 = cc * (2520*dx6 + 2730*dx4*dy2 - 14490*dx4*dz2 + 420*dx2*dy4 - 7875*dx2*dy2*dz2 + 17640*dx2*dz4 - 945*dy4*dy2 + 3990*dy4*dz2 - 840*dy2*dz4 - 3600*dz4*dz2)
		c.c7 = cc * (-315*dx6 + 1680*dx4*dy2 - 210*dx4*dz2 - 2016*dx2*dy4 + 840*dx2*dy2*dz2 - 126*dx2*dz4 + 576*dy4*dy2 - 672*dy4*dz2 + 336*dy2*dz4 - 45*dz4*dz2)
		c.c8 = cc * (-945*dx6 + 2730*dx4*dy2 + 1680*dx4*dz2 + 1344*dx2*dy4 - 10185*dx2*dy2*dz2 + 2394*dx2*dz4 - 3024*dy4*dy2 + 12768*dy4*dz2 - 8694*dy2*dz4 + 1350*dz4*dz2)
		c.c9 = cc * (-945*dx6 + 420*dx4*dy2 + 3990*dx4*dz2 + 2730*dx2*dy4 - 7875*dx2*dy2*dz2 - 840*dx2*dz4 + 2520*dy4*dy2 - 14490*dy4*dz2 + 17640*dy2*dz4 - 3600*dz4*dz2)
		c.c10 = cc * (-315*dx6 - 630*dx4*dy2 + 2100*dx4*dz2 - 630*dx2*dy4 + 3150*dx2*dy2*dz2 - 3360*dx2*dz4 - 315*dy4*dy2 + 2100*dy4*dz2 - 3360*dy2*dz4 + 1440*dz4*dz2)
	}
	return c
}

// Eval evaluates the Nxy asymptotic series at offset (x,y,z)
func (c NxyCoeffs) Eval(x, y, z float64, order Order) float64 {
	rsq := x*x + y*y + z*z
	if rsq <= 0 {
		return 0
	}
	tx2, ty2, tz2 := x*x/rsq, y*y/rsq, z*z/rsq

	term3 := 3 * c.leadWeight
	var term5 float64
	if order >= Order5 && !c.cubic {
		term5 = c.a1*tx2 + c.a2*ty2 + c.a3*tz2
	}
	tz4 := tz2 * tz2
	var term7 float64
	if order >= Order7 {
		term7 = (c.b1*tx2+(c.b2*ty2+c.b3*tz2))*tx2 + (c.b4*ty2+c.b5*tz2)*ty2 + c.b6*tz4
	}
	var term9 float64
	if order >= Order9 {
		term9 = ((c.c1*tx2+(c.c2*ty2+c.c3*tz2))*tx2+((c.c4*ty2+c.c5*tz2)*ty2+c.c6*tz4))*tx2 +
			((c.c7*ty2+c.c8*tz2)*ty2+c.c9*tz4)*ty2 + c.c10*tz4*tz2
	}
	iR5 := 1.0 / (rsq * rsq * math.Sqrt(rsq))
	iR2 := 1 / rsq
	return (((term9*iR2+term7)*iR2+term5)*iR2 + term3) * iR5 * x * y
}

// AsymptoticPair evaluates Eval at a symmetric pair of offsets (rplus,
// rminus) sharing the same coefficients. Used when the caller wants both
// legs of a paired offset for a cancellation-aware accumulation (§4.3,
// §4.4's mid-field regime).
func (c NxxCoeffs) AsymptoticPair(xp, yp, zp, xm, ym, zm float64, order Order) (plus, minus float64) {
	return c.Eval(xp, yp, zp, order), c.Eval(xm, ym, zm, order)
}

func (c NxyCoeffs) AsymptoticPair(xp, yp, zp, xm, ym, zm float64, order Order) (plus, minus float64) {
	return c.Eval(xp, yp, zp, order), c.Eval(xm, ym, zm, order)
}

// Tensor bundles the six-component asymptotic evaluator for one cell
// geometry, built from refined subcell dimensions, and performs the
// sub-cell averaging described in §4.3 when the cell is elongated.
type Tensor struct {
	dx, dy, dz float64
	refine     Refinement
	nxx        NxxCoeffs
	nxy        NxyCoeffs
	order      Order
}

// NewTensor builds the asymptotic evaluator for a cell of edge lengths
// (dx,dy,dz), refining automatically when elongated beyond maxRatio, and
// selecting order by the requested maxError target (a coarse mapping: the
// series order escalates as the requested relative error tightens).
func NewTensor(dx, dy, dz, maxRatio, maxError float64) *Tensor {
	var order Order
	switch {
	case maxError >= 1e-4:
		order = Order5
	case maxError >= 1e-7:
		order = Order7
	default:
		order = Order9
	}
	t := &Tensor{dx: dx, dy: dy, dz: dz, order: order}
	if NeedsRefinement(dx, dy, dz, maxRatio) {
		t.refine = NewRefinement(dx, dy, dz, maxRatio)
	} else {
		t.refine = Refinement{Rdx: dx, Rdy: dy, Rdz: dz, Xcount: 1, Ycount: 1, Zcount: 1, ResultScale: 1}
	}
	t.nxx = NewNxxCoeffs(t.refine.Rdx, t.refine.Rdy, t.refine.Rdz)
	t.nxy = NewNxyCoeffs(t.refine.Rdx, t.refine.Rdy, t.refine.Rdz)
	return t
}

// subgridOffsets returns the centered sub-cell sample offsets along one
// axis for the given count and refined sub-edge length.
func subgridOffsets(count int, redge, fulledge float64) []float64 {
	if count <= 1 {
		return []float64{0}
	}
	offs := make([]float64, count)
	start := -0.5*fulledge + 0.5*redge
	for i := 0; i < count; i++ {
		offs[i] = start + float64(i)*redge
	}
	return offs
}

// average sums f over every source/target pair of refinement sub-cells:
// each distinct pairwise offset (x+i*Rdx, y+j*Rdy, z+k*Rdz) is evaluated
// once and weighted by the number of pairs sharing it, and the sum is
// returned scaled by ResultScale.
func (t *Tensor) average(x, y, z float64, f func(dx, dy, dz float64) float64) float64 {
	xc, yc, zc := t.refine.Xcount, t.refine.Ycount, t.refine.Zcount
	var sum float64
	for i := 1 - xc; i < xc; i++ {
		for j := 1 - yc; j < yc; j++ {
			for k := 1 - zc; k < zc; k++ {
				w := (float64(xc) - math.Abs(float64(i))) * (float64(yc) - math.Abs(float64(j))) * (float64(zc) - math.Abs(float64(k)))
				sum += w * f(x+float64(i)*t.refine.Rdx, y+float64(j)*t.refine.Rdy, z+float64(k)*t.refine.Rdz)
			}
		}
	}
	return sum * t.refine.ResultScale
}

// Nxx, Nyy, Nzz, Nxy, Nxz, Nyz evaluate the six tensor components at
// offset (x,y,z), averaging over the refinement subgrid when the cell
// required refinement.
func (t *Tensor) Nxx(x, y, z float64) float64 {
	return t.average(x, y, z, func(dx, dy, dz float64) float64 { return t.nxx.Eval(dx, dy, dz, t.order) })
}
func (t *Tensor) Nyy(x, y, z float64) float64 {
	other := NewTensor(t.dy, t.dx, t.dz, 1.5, 1e-4)
	return other.average(y, x, z, func(dx, dy, dz float64) float64 { return other.nxx.Eval(dx, dy, dz, t.order) })
}
func (t *Tensor) Nzz(x, y, z float64) float64 {
	other := NewTensor(t.dz, t.dy, t.dx, 1.5, 1e-4)
	return other.average(z, y, x, func(dx, dy, dz float64) float64 { return other.nxx.Eval(dx, dy, dz, t.order) })
}
func (t *Tensor) Nxy(x, y, z float64) float64 {
	return t.average(x, y, z, func(dx, dy, dz float64) float64 { return t.nxy.Eval(dx, dy, dz, t.order) })
}
func (t *Tensor) Nxz(x, y, z float64) float64 {
	other := NewTensor(t.dx, t.dz, t.dy, 1.5, 1e-4)
	return other.average(x, z, y, func(dx, dy, dz float64) float64 { return other.nxy.Eval(dx, dy, dz, t.order) })
}
func (t *Tensor) Nyz(x, y, z float64) float64 {
	other := NewTensor(t.dy, t.dz, t.dx, 1.5, 1e-4)
	return other.average(y, z, x, func(dx, dy, dz float64) float64 { return other.nxy.Eval(dx, dy, dz, t.order) })
}

// WithinAsymptoticRegime reports whether R exceeds the configured
// asymptotic start radius and the series should be used instead of the
// Newell closed form (§4.3's "At R <= asymptotic_start_radius" rule).
func WithinAsymptoticRegime(x, y, z, startRadius float64) bool {
	r := math.Sqrt(x*x + y*y + z*z)
	return r > startRadius
}
