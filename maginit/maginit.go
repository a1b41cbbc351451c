// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package maginit implements the named initial-magnetization patterns of
// §4.9: a registry of allocators keyed by pattern name, each producing
// an Nx-by-Nz array of unit vectors in external xyz coordinates (Grid
// rotates to xzy and re-normalizes, per §4.9's contract). Grounded on
// original_source/oommf/app/mmsolve/maginit.cc's MI_* routines,
// registered the way mdl/solid/model.go's New(name) looks up its
// allocators map.
package maginit

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/fangohr/oommf-sub006/oxserr"
	"github.com/fangohr/oommf-sub006/vec3"
)

// Func is one named initializer: given a grid size and its declared
// parameter list, it returns the Nx-by-Nz array of unit vectors.
type Func func(nx, nz int, params []float64) ([][]vec3.V, error)

// entry pairs an initializer with the parameter count it expects, per
// MagInit::Ident's {function, param_count} records.
type entry struct {
	fn         Func
	paramCount int
}

var registry = map[string]entry{
	"random":     {miRandom, 0},
	"uniform":    {miUniform, 2},
	"vortex":     {miVortex, 0},
	"exvort":     {miExvort, 0},
	"sphere":     {miSphere, 0},
	"source":     {miSource, 0},
	"inout":      {miInOut, 0},
	"inupout":    {miInUpOut, 0},
	"inoutrot":   {miInOutRot, 1},
	"inupoutrot": {miInUpOutRot, 1},
	"crot":       {miCRot, 1},
	"bloch":      {miBloch, 1},
	"neel":       {miNeel, 2},
	"spiral":     {miSpiral, 2},
	"updowns":    {miUpDowns, 1},
	"1domain":    {mi1Domain, 0},
	"4domain":    {mi4Domain, 0},
	"7domain":    {mi7Domain, 0},
	"rightleft":  {miRightLeft, 0},
}

// New looks up a named pattern and evaluates it over an Nx-by-Nz grid.
// An empty name defaults to "random", matching MagInit::LookUp's
// contract ("NULL or empty index returns Ident[0]").
func New(name string, nx, nz int, params []float64) ([][]vec3.V, error) {
	if name == "" {
		name = "random"
	}
	e, ok := registry[name]
	if !ok {
		return nil, oxserr.New(oxserr.ConfigurationInvalid, "maginit: unknown pattern %q", name)
	}
	if len(params) != e.paramCount {
		return nil, oxserr.New(oxserr.ConfigurationInvalid, "maginit: pattern %q requires %d parameters, got %d", name, e.paramCount, len(params))
	}
	if nx < 1 || nz < 1 {
		chk.Panic("maginit: illegal grid size nx=%d nz=%d", nx, nz)
	}
	return e.fn(nx, nz, params)
}

// ParamCount reports how many parameters a named pattern requires.
func ParamCount(name string) (int, error) {
	if name == "" {
		name = "random"
	}
	e, ok := registry[name]
	if !ok {
		return 0, oxserr.New(oxserr.ConfigurationInvalid, "maginit: unknown pattern %q", name)
	}
	return e.paramCount, nil
}

func alloc(nx, nz int) [][]vec3.V {
	m := make([][]vec3.V, nx)
	for i := range m {
		m[i] = make([]vec3.V, nz)
	}
	return m
}

func degCosSin(degrees float64) (cos, sin float64) {
	rad := degrees * math.Pi / 180
	return math.Cos(rad), math.Sin(rad)
}

// perturbAndScale nudges every cell by a small random vector and
// renormalizes, mirroring MagPerturbAndScale's post-processing pass
// (most MI_* routines call this at the end).
func perturbAndScale(m [][]vec3.V, maxMag float64) {
	for i := range m {
		for k := range m[i] {
			if maxMag == 0 {
				continue
			}
			m[i][k] = m[i][k].Add(vec3.RandomUnit().Scale(maxMag)).PreciseNormalize()
		}
	}
}

const defaultPerturbation = 0.0 // matches the teacher's commented-out PERTURBATION_SIZE override

func miRandom(nx, nz int, _ []float64) ([][]vec3.V, error) {
	m := alloc(nx, nz)
	for i := range m {
		for k := range m[i] {
			m[i][k] = vec3.RandomUnit()
		}
	}
	return m, nil
}

func miUniform(nx, nz int, p []float64) ([][]vec3.V, error) {
	theta, phi := p[0], p[1]
	cphi, sphi := degCosSin(phi)
	ctheta, stheta := degCosSin(theta)
	v := vec3.New(cphi*stheta, sphi*stheta, ctheta)
	m := alloc(nx, nz)
	for i := range m {
		for k := range m[i] {
			m[i][k] = v
		}
	}
	perturbAndScale(m, defaultPerturbation)
	return m, nil
}

func miInOut(nx, nz int, _ []float64) ([][]vec3.V, error) {
	m := alloc(nx, nz)
	for i := range m {
		for k := range m[i] {
			z := 1.0
			if i < nx/2 {
				z = -1.0
			}
			m[i][k] = vec3.New(0, 0, z)
		}
	}
	perturbAndScale(m, defaultPerturbation)
	return m, nil
}

func miInUpOut(nx, nz int, _ []float64) ([][]vec3.V, error) {
	m := alloc(nx, nz)
	for i := range m {
		for k := range m[i] {
			if i < nx/2 {
				m[i][k] = vec3.New(0, 0, -1)
			} else if i > nx/2 {
				m[i][k] = vec3.New(0, 0, 1)
			} else {
				m[i][k] = vec3.New(1, 0, 0)
			}
		}
	}
	perturbAndScale(m, defaultPerturbation)
	return m, nil
}

func miInOutRot(nx, nz int, p []float64) ([][]vec3.V, error) {
	phi := p[0]
	cphi, sphi := degCosSin(phi)
	offset := float64(nx-1)*cphi/2 + float64(nz-1)*sphi/2
	m := alloc(nx, nz)
	for i := range m {
		for k := range m[i] {
			z := 1.0
			if float64(i)*cphi+float64(k)*sphi < offset {
				z = -1.0
			}
			m[i][k] = vec3.New(0, 0, z)
		}
	}
	perturbAndScale(m, defaultPerturbation)
	return m, nil
}

func miInUpOutRot(nx, nz int, p []float64) ([][]vec3.V, error) {
	phi := p[0]
	cphi, sphi := degCosSin(phi)
	center := float64(nx-1)*cphi/2 + float64(nz-1)*sphi/2
	m := alloc(nx, nz)
	for i := range m {
		for k := range m[i] {
			offset := float64(i)*cphi + float64(k)*sphi
			switch {
			case offset < center-0.5:
				m[i][k] = vec3.New(0, 0, -1)
			case offset > center+0.5:
				m[i][k] = vec3.New(0, 0, 1)
			default:
				m[i][k] = vec3.New(-sphi, cphi, 0)
			}
		}
	}
	perturbAndScale(m, defaultPerturbation)
	return m, nil
}

// miCRot is InUpOutRot with the top and bottom rows further bent toward
// a "C" shape, approximated here (per the original's geometric blend)
// by rotating the outer regions' in-plane component by a small fraction
// of phi proportional to distance from center.
func miCRot(nx, nz int, p []float64) ([][]vec3.V, error) {
	if nx < 2 || nz < 2 {
		return nil, oxserr.New(oxserr.ConfigurationInvalid, "maginit: crot requires both nx and nz > 1")
	}
	phi := p[0]
	cphi, sphi := degCosSin(phi)
	center := float64(nx-1)*cphi/2 + float64(nz-1)*sphi/2
	maxHeight := float64(nz - 1)
	m := alloc(nx, nz)
	for i := range m {
		for k := range m[i] {
			offset := float64(i)*cphi + float64(k)*sphi
			heightFrac := (float64(k) - maxHeight/2) / (maxHeight / 2)
			switch {
			case offset < center-0.5:
				m[i][k] = vec3.New(-heightFrac*sphi, -1+heightFrac*(1-cphi), 0).PreciseNormalize()
			case offset > center+0.5:
				m[i][k] = vec3.New(heightFrac*sphi, 1-heightFrac*(1-cphi), 0).PreciseNormalize()
			default:
				m[i][k] = vec3.New(-sphi, cphi, 0)
			}
		}
	}
	perturbAndScale(m, defaultPerturbation)
	return m, nil
}

func miBloch(nx, nz int, p []float64) ([][]vec3.V, error) {
	theta := p[0]
	y, z := degCosSin(theta)
	y, z = -y, -z
	m := alloc(nx, nz)
	for i := range m {
		for k := range m[i] {
			switch {
			case i < nx/2:
				m[i][k] = vec3.New(0, y, z)
			case i == nx/2:
				m[i][k] = vec3.New(0, -z, y)
			default:
				m[i][k] = vec3.New(0, -y, -z)
			}
		}
	}
	perturbAndScale(m, defaultPerturbation)
	return m, nil
}

func miNeel(nx, nz int, p []float64) ([][]vec3.V, error) {
	theta, widthProp := p[0], p[1]
	vx, vy := degCosSin(theta)
	dotref := float64(nx)/2*vx + float64(nz)/2*vy
	tempx, tempy := vx/float64(nx), vy/float64(nz)
	partWidth := 1 / math.Sqrt(tempx*tempx+tempy*tempy)
	wallWidth := partWidth * widthProp
	if wallWidth == 0 {
		wallWidth = 1e-300
	}
	scale := math.Pi / wallWidth
	m := alloc(nx, nz)
	for i := range m {
		for k := range m[i] {
			offset := scale * (float64(i)*vx + float64(k)*vy - dotref)
			xproj := 1 / math.Sqrt(1+offset*offset)
			yproj := offset * xproj
			m[i][k] = vec3.New(vx*xproj-vy*yproj, vy*xproj+vx*yproj, 0)
		}
	}
	perturbAndScale(m, defaultPerturbation)
	return m, nil
}

func miSpiral(nx, nz int, p []float64) ([][]vec3.V, error) {
	theta, periodProp := p[0], p[1]
	vx, vy := degCosSin(theta)
	dotref := float64(nx)/2*vx + float64(nz)/2*vy
	tempx, tempy := vx/float64(nx), vy/float64(nz)
	partWidth := 1 / math.Sqrt(tempx*tempx+tempy*tempy)
	period := partWidth * periodProp
	if period == 0 {
		period = 1e-300
	}
	scale := 2 * math.Pi / period
	m := alloc(nx, nz)
	for i := range m {
		for k := range m[i] {
			offset := scale * (float64(i)*vx + float64(k)*vy - dotref)
			xproj, yproj := math.Cos(offset), math.Sin(offset)
			m[i][k] = vec3.New(vx*xproj-vy*yproj, vy*xproj+vx*yproj, 0)
		}
	}
	perturbAndScale(m, defaultPerturbation)
	return m, nil
}

// miUpDowns alternates up/down stripes along x; the single parameter is
// the stripe width as a fraction of nx (at least one cell wide).
func miUpDowns(nx, nz int, p []float64) ([][]vec3.V, error) {
	widthProp := p[0]
	if widthProp <= 0 {
		widthProp = 1
	}
	period := math.Max(1, float64(nx)*widthProp)
	m := alloc(nx, nz)
	for i := range m {
		for k := range m[i] {
			z := 1.0
			if math.Mod(float64(i), period*2) < period {
				z = -1.0
			}
			m[i][k] = vec3.New(0, 0, z)
		}
	}
	perturbAndScale(m, defaultPerturbation)
	return m, nil
}

func mi1Domain(nx, nz int, _ []float64) ([][]vec3.V, error) {
	m := alloc(nx, nz)
	if nz > nx {
		for i := range m {
			for k := range m[i] {
				v := vec3.New(0, 1, 0)
				if k < nx-i || k > nz-i {
					v = vec3.New(0.707, 0.707, 0)
				}
				m[i][k] = v
			}
		}
	} else {
		for i := range m {
			for k := range m[i] {
				v := vec3.New(1, 0, 0)
				if i < nz-k || i > nx-k {
					v = vec3.New(0.707, 0.707, 0)
				}
				m[i][k] = v
			}
		}
	}
	perturbAndScale(m, defaultPerturbation)
	return m, nil
}

func mi4Domain(nx, nz int, _ []float64) ([][]vec3.V, error) {
	m := alloc(nx, nz)
	for i := range m {
		for k := range m[i] {
			x, y := 0.0, 1.0
			if i < nx/2 {
				y = -1.0
			}
			switch {
			case k < i && k < nx-1-i:
				x, y = 1.0, 0.0
			case k > nz-1-i && k > nz-nx+i:
				x, y = -1.0, 0.0
			}
			m[i][k] = vec3.New(x, y, 0)
		}
	}
	perturbAndScale(m, defaultPerturbation)
	return m, nil
}

func mi7Domain(nx, nz int, _ []float64) ([][]vec3.V, error) {
	m := alloc(nx, nz)
	if nz > nx {
		slope := float64(nz-1) / float64(2*(nx-1))
		half := float64(nz-1) / 2
		adj := 0.0
		if nx%2 == 0 {
			adj = 0.5
		}
		for i := range m {
			for k := range m[i] {
				fk := float64(k)
				t1 := fk < half-float64(i)*slope-adj
				t2 := fk < float64(i)*slope-adj
				t3 := fk > half+float64(i)*slope+adj
				t4 := fk > float64(nz-1)-float64(i)*slope+adj
				x, y := 1.0, 0.0
				switch {
				case (t1 && t2) || (t3 && t4):
					x, y = -1, 0
				case t1 || t4:
					x, y = 0, 1
				case t2 || t3:
					x, y = 0, -1
				}
				m[i][k] = vec3.New(x, y, 0)
			}
		}
	} else {
		slope := float64(nx-1) / float64(2*(nz-1))
		half := float64(nx-1) / 2
		adj := 0.0
		if nz%2 == 0 {
			adj = 0.5
		}
		for i := range m {
			for k := range m[i] {
				fi := float64(i)
				t1 := fi < half-float64(k)*slope-adj
				t2 := fi < float64(k)*slope-adj
				t3 := fi > half+float64(k)*slope+adj
				t4 := fi > float64(nx-1)-float64(k)*slope+adj
				x, y := 0.0, 1.0
				switch {
				case (t1 && t2) || (t3 && t4):
					x, y = 0, -1
				case t1 || t4:
					x, y = 1, 0
				case t2 || t3:
					x, y = -1, 0
				}
				m[i][k] = vec3.New(x, y, 0)
			}
		}
	}
	perturbAndScale(m, defaultPerturbation)
	return m, nil
}

func miVortex(nx, nz int, _ []float64) ([][]vec3.V, error) { return vortexLike(nx, nz, false) }
func miExvort(nx, nz int, _ []float64) ([][]vec3.V, error) { return vortexLike(nx, nz, true) }

func vortexLike(nx, nz int, expelling bool) ([][]vec3.V, error) {
	midx, midz := float64(nx-1)/2, float64(nz-1)/2
	m := alloc(nx, nz)
	for i := range m {
		for k := range m[i] {
			if midx == float64(i) && midz == float64(k) {
				m[i][k] = vec3.New(0, 0, 1)
				continue
			}
			x, z := float64(i)-midx, float64(k)-midz
			r := math.Hypot(x, z)
			if expelling {
				m[i][k] = vec3.New(z/r, x/r, 0)
			} else {
				m[i][k] = vec3.New(-z/r, x/r, 0)
			}
		}
	}
	perturbAndScale(m, defaultPerturbation)
	return m, nil
}

func miSphere(nx, nz int, _ []float64) ([][]vec3.V, error) {
	midx, midz := float64(nx-1)/2, float64(nz-1)/2
	radius := math.Max(math.Min(midx, midz), 1.0)
	radiusSq := radius * radius
	m := alloc(nx, nz)
	for i := range m {
		for k := range m[i] {
			x, z := float64(i)-midx, float64(k)-midz
			projLen := math.Hypot(x, z)
			if projLen >= radius {
				m[i][k] = vec3.New(x/projLen, z/projLen, 0)
			} else {
				y := math.Sqrt(radiusSq - projLen*projLen)
				m[i][k] = vec3.New(x/radius, z/radius, y/radius)
			}
		}
	}
	perturbAndScale(m, defaultPerturbation)
	return m, nil
}

func miSource(nx, nz int, _ []float64) ([][]vec3.V, error) {
	midx, midz := float64(nx-1)/2, float64(nz-1)/2
	m := alloc(nx, nz)
	for i := range m {
		for k := range m[i] {
			if midx == float64(i) && midz == float64(k) {
				m[i][k] = vec3.New(0, 0, 1)
				continue
			}
			x, z := float64(i)-midx, float64(k)-midz
			r := math.Hypot(x, z)
			m[i][k] = vec3.New(x/r, z/r, 0)
		}
	}
	perturbAndScale(m, defaultPerturbation)
	return m, nil
}

func miRightLeft(nx, nz int, _ []float64) ([][]vec3.V, error) {
	m := alloc(nx, nz)
	for i := range m {
		for k := range m[i] {
			x := 1.0
			if i >= nx/2 {
				x = -1.0
			}
			m[i][k] = vec3.New(x, 0, 0)
		}
	}
	perturbAndScale(m, defaultPerturbation)
	return m, nil
}
