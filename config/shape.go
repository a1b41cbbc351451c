// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import "math"

// Inside reports whether the cell center (x,z), measured from the part
// corner in meters, lies within the configured sample geometry. It is
// the geometry predicate GridCore's construction step (§4.10) consults
// to zero cell thickness outside the shape, grounded on the DOMAIN
// STACK's gm-style ellipse/oval/pyramid/mask predicates: expressed
// directly here since gm's primitives don't carry the pyramid/mask
// variants §6 names.
func (s *Sim) Inside(x, z float64) bool {
	w, h := s.PartWidth, s.PartHeight
	cx, cz := w/2, h/2
	switch s.PartShape {
	case Rectangle, 0:
		return x >= 0 && x <= w && z >= 0 && z <= h
	case Ellipse, Ellipsoid:
		dx, dz := (x-cx)/cx, (z-cz)/cz
		return dx*dx+dz*dz <= 1
	case Oval:
		// A stadium: rectangle with semicircular end caps set by
		// ShapeParam (the cap radius as a fraction of min(w,h)/2).
		r := s.ShapeParam * math.Min(cx, cz)
		if r <= 0 {
			return x >= 0 && x <= w && z >= 0 && z <= h
		}
		switch {
		case x < r:
			return (x-r)*(x-r)+(z-cz)*(z-cz) <= r*r && z >= 0 && z <= h
		case x > w-r:
			return (x-(w-r))*(x-(w-r))+(z-cz)*(z-cz) <= r*r && z >= 0 && z <= h
		default:
			return z >= 0 && z <= h
		}
	case Pyramid:
		// Thickness taper: ShapeParam is the base-to-apex slope;
		// Inside tests the in-plane rectangular footprint only
		// (the taper itself is applied by ThicknessAt).
		return x >= 0 && x <= w && z >= 0 && z <= h
	case Mask:
		// Mask image sampling is an external collaborator (§1's
		// excluded image-mask loader); callers must pre-populate a
		// MaskFn and this predicate delegates to it.
		if s.MaskFn != nil {
			return s.MaskFn(x, z)
		}
		return true
	default:
		return true
	}
}

// ThicknessAt returns the fractional thickness multiplier (1 = full
// PartThickness) at (x,z); only the Pyramid shape tapers it, per §4.10's
// "thickness arrays are set before neighbor construction" lifecycle
// note.
func (s *Sim) ThicknessAt(x, z float64) float64 {
	if !s.Inside(x, z) {
		return 0
	}
	if s.PartShape != Pyramid {
		return 1
	}
	cx, cz := s.PartWidth/2, s.PartHeight/2
	dx, dz := math.Abs(x-cx)/cx, math.Abs(z-cz)/cz
	edge := math.Max(dx, dz)
	taper := 1 - s.ShapeParam*edge
	if taper < 0 {
		taper = 0
	}
	return taper
}
