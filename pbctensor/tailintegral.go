// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pbctensor

import "math"

// point caches the scalars the tail-integral closed forms need at one
// evaluation offset, mirroring OxsDemagNabData in demagcoef.h/.cc.
type point struct {
	x, y, z       float64
	r, ir, ir2    float64
	tx2, ty2, tz2 float64
}

func newPoint(x, y, z float64) point {
	rsq := x*x + y*y + z*z
	r := math.Sqrt(rsq)
	return point{
		x: x, y: y, z: z,
		r: r, ir: 1 / r, ir2: 1 / rsq,
		tx2: x * x / rsq, ty2: y * y / rsq, tz2: z * z / rsq,
	}
}

// nxxIntegralX holds the Oxs_DemagNxxIntegralXBase coefficients: the
// closed-form antiderivative (with respect to the periodic coordinate x)
// of the order-3/5/7 asymptotic Nxx series, used to replace the tail of
// the periodic image sum (|k| >= ktail) by an integral from ktail*W to
// infinity. Transcribed from
// oommf/app/oxs/ext/demagcoef.cc:OxsDemagNxxIntegralXBase.
type nxxIntegralX struct {
	cubic                  bool
	scale                  float64
	a1, a2, a3             float64
	b1, b2, b3, b4, b5, b6 float64
}

func newNxxIntegralX(dx, dy, dz, Wx float64) nxxIntegralX {
	var c nxxIntegralX
	c.scale = dx * dy * dz / (4 * math.Pi * Wx)
	dx2, dy2, dz2 := dx*dx, dy*dy, dz*dz
	dx4, dy4, dz4 := dx2*dx2, dy2*dy2, dz2*dz2
	c.cubic = dx2 == dy2 && dx2 == dz2
	if !c.cubic {
		c.a1 = (2*dx2 - dy2 - dz2) * 0.25 * c.scale
		c.a2 = (-3*dx2 + 4*dy2 - dz2) * 0.25 * c.scale
		c.a3 = (-3*dx2 - dy2 + 4*dz2) * 0.25 * c.scale

		b := c.scale / 48.0
		c.b1 = b * (16*dx4 - 20*dx2*dy2 - 20*dx2*dz2 + 6*dy4 + 5*dy2*dz2 + 6*dz4)
		c.b2 = b * (-80*dx4 + 205*dx2*dy2 - 5*dx2*dz2 - 72*dy4 - 25*dy2*dz2 + 12*dz4)
		c.b3 = b * (-80*dx4 - 5*dx2*dy2 + 205*dx2*dz2 + 12*dy4 - 25*dy2*dz2 - 72*dz4)
		c.b4 = b * (30*dx4 - 90*dx2*dy2 + 15*dx2*dz2 + 48*dy4 - 30*dy2*dz2 + 6*dz4)
		c.b5 = b * (60*dx4 - 75*dx2*dy2 - 75*dx2*dz2 - 72*dy4 + 255*dy2*dz2 - 72*dz4)
		c.b6 = b * (30*dx4 + 15*dx2*dy2 - 90*dx2*dz2 + 6*dy4 - 30*dy2*dz2 + 48*dz4)
	} else {
		b := dx4 * c.scale / 48.0
		c.b1, c.b2, c.b3, c.b4, c.b5, c.b6 = -7*b, 35*b, 35*b, -21*b, 21*b, -21*b
	}
	return c
}

// compute returns the integral of the asymptotic Nxx series from pp.x to
// +infinity and from -infinity to pm.x (pp.x>0, pm.x<0), at fixed (y,z).
func (c nxxIntegralX) compute(pp, pm point) float64 {
	term3 := c.scale

	var term5p, term5m float64
	if !c.cubic {
		term5p = c.a1*pp.tx2 + c.a2*pp.ty2 + c.a3*pp.tz2
		term5m = c.a1*pm.tx2 + c.a2*pm.ty2 + c.a3*pm.tz2
	}

	term7p := (c.b1*pp.tx2+(c.b2*pp.ty2+c.b3*pp.tz2))*pp.tx2 + (c.b4*pp.ty2+c.b5*pp.tz2)*pp.ty2 + c.b6*pp.tz2*pp.tz2
	term7m := (c.b1*pm.tx2+(c.b2*pm.ty2+c.b3*pm.tz2))*pm.tx2 + (c.b4*pm.ty2+c.b5*pm.tz2)*pm.ty2 + c.b6*pm.tz2*pm.tz2

	inXXp := (term7p + term5p + term3) * pp.ir2 * pp.ir * pp.x
	inXXm := (term7m + term5m + term3) * pm.ir2 * pm.ir * pm.x
	return inXXm - inXXp
}

// nxyIntegralX is the Nxy analogue, transcribed from
// OxsDemagNxyIntegralXBase.
type nxyIntegralX struct {
	cubic                  bool
	scale                  float64
	a1, a2, a3             float64
	b1, b2, b3, b4, b5, b6 float64
}

func newNxyIntegralX(dx, dy, dz, Wx float64) nxyIntegralX {
	var c nxyIntegralX
	c.scale = dx * dy * dz / (4 * math.Pi * Wx)
	dx2, dy2, dz2 := dx*dx, dy*dy, dz*dz
	dx4, dy4, dz4 := dx2*dx2, dy2*dy2, dz2*dz2
	c.cubic = dx2 == dy2 && dx2 == dz2
	if !c.cubic {
		c.a1 = (4*dx2 - 3*dy2 - dz2) * 0.25 * c.scale
		c.a2 = (-dx2 + 2*dy2 - dz2) * 0.25 * c.scale
		c.a3 = (-dx2 - 3*dy2 + 4*dz2) * 0.25 * c.scale

		b := c.scale / 48.0
		c.b1 = b * (48*dx4 - 90*dx2*dy2 - 30*dx2*dz2 + 30*dy4 + 15*dy2*dz2 + 6*dz4)
		c.b2 = b * (-72*dx4 + 205*dx2*dy2 - 25*dx2*dz2 - 80*dy4 - 5*dy2*dz2 + 12*dz4)
		c.b3 = b * (-72*dx4 - 75*dx2*dy2 + 255*dx2*dz2 + 60*dy4 - 75*dy2*dz2 - 72*dz4)
		c.b4 = b * (6*dx4 - 20*dx2*dy2 + 5*dx2*dz2 + 16*dy4 - 20*dy2*dz2 + 6*dz4)
		c.b5 = b * (12*dx4 - 5*dx2*dy2 - 25*dx2*dz2 - 80*dy4 + 205*dy2*dz2 - 72*dz4)
		c.b6 = b * (6*dx4 + 15*dx2*dy2 - 30*dx2*dz2 + 30*dy4 - 90*dy2*dz2 + 48*dz4)
	} else {
		b := dx4 * c.scale / 48.0
		c.b1, c.b2, c.b3, c.b4, c.b5, c.b6 = -21*b, 35*b, 21*b, -7*b, 35*b, -21*b
	}
	return c
}

// compute returns the integral of the asymptotic Nxy series from pp.x to
// +infinity and from -infinity to pm.x, given the shared transverse base
// (xbase,xoffset) the pair was generated from (pp.x=xbase+xoffset,
// pm.x=xbase-xoffset) and y, z (shared by pp and pm).
func (c nxyIntegralX) compute(xbase, xoffset, y, z float64, pp, pm point) float64 {
	x2p, x2m := pp.x*pp.x, pm.x*pm.x
	r2yz := y*y + z*z
	r3p := pp.r * pp.r * pp.r
	r3m := pm.r * pm.r * pm.r

	term3 := c.scale * 4 * xoffset * xbase * (x2m*x2m + (3*r2yz+x2p)*2*(xbase*xbase+xoffset*xoffset) + 3*r2yz*r2yz) /
		(r3p * r3m * (r3p + r3m))

	ir3p := pp.ir * pp.ir2
	ir3m := pm.ir * pm.ir2

	var term5 float64
	if !c.cubic {
		term5p := (c.a1*pp.tx2 + c.a2*pp.ty2 + c.a3*pp.tz2) * ir3p
		term5m := (c.a1*pm.tx2 + c.a2*pm.ty2 + c.a3*pm.tz2) * ir3m
		term5 = term5m - term5p
	}

	term7p := ((c.b1*pp.tx2+(c.b2*pp.ty2+c.b3*pp.tz2))*pp.tx2 + (c.b4*pp.ty2+c.b5*pp.tz2)*pp.ty2 + c.b6*pp.tz2*pp.tz2) * ir3p
	term7m := ((c.b1*pm.tx2+(c.b2*pm.ty2+c.b3*pm.tz2))*pm.tx2 + (c.b4*pm.ty2+c.b5*pm.tz2)*pm.ty2 + c.b6*pm.tz2*pm.tz2) * ir3m
	term7 := term7m - term7p

	return y * (term7 + term5 + term3)
}

// tailTweakCount and gregoryWeights are OxsDemagPeriodic::TAIL_TWEAK_COUNT
// and ::D[]: an 8-term Gregory-quadrature style end correction (weights
// sum to 4) bridging the last few discrete asymptotic-pair terms before
// the tail is handed off to the closed-form integral above. Transcribed
// verbatim from demagcoef.cc/.h; do not round these rationals.
const tailTweakCount = 8

var gregoryWeights = [tailTweakCount]float64{
	464514259.0 / 464486400.0,
	464115227.0 / 464486400.0,
	467323119.0 / 464486400.0,
	438283495.0 / 464486400.0,
	26202905.0 / 464486400.0,
	-2836719.0 / 464486400.0,
	371173.0 / 464486400.0,
	-27859.0 / 464486400.0,
}
