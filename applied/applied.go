// Copyright 2026 The Oommf-Sub006 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package applied implements the five AppliedField (Zeeman) families of
// §4.8: Uniform, Ribbon, Tie, File/FileSequence and Multi, sharing the
// set_coords/set_nom_field/get_local_h_field contract. Grounded on
// original_source/oommf/app/mmsolve/zeeman.cc (RibbonZeeman::FieldCalc's
// octant-split closed form is transcribed verbatim in Ribbon.fieldCalc)
// and on the teacher's registry-of-models pattern (msolid/model.go)
// adapted here to a closed Kind-free interface set rather than a
// name->allocator map, since every family is a concrete exported type
// rather than a plugin looked up by name.
package applied

import (
	"math"

	"github.com/fangohr/oommf-sub006/oxserr"
	"github.com/fangohr/oommf-sub006/vec3"
)

const mu0 = 4 * math.Pi * 1e-7

// Field is the common AppliedField contract of §4.8. All fields work in
// the external xyz coordinate system; the xyz<->xzy rotation is Grid's
// concern (§6), not this package's.
type Field interface {
	SetCoords(nx, nz int, realCoord func(i, k int) (x, z float64)) error
	SetNomField(ms float64, b vec3.V, stepIndex int) error
	LocalH(i, k int) vec3.V
}

// Uniform applies an identical field at every cell.
type Uniform struct {
	nx, nz int
	h      vec3.V
}

func (u *Uniform) SetCoords(nx, nz int, _ func(i, k int) (float64, float64)) error {
	if nx < 1 || nz < 1 {
		return oxserr.New(oxserr.ConfigurationInvalid, "applied: illegal mesh size nx=%d nz=%d", nx, nz)
	}
	u.nx, u.nz = nx, nz
	return nil
}

func (u *Uniform) SetNomField(ms float64, b vec3.V, _ int) error {
	if ms <= 0 {
		return oxserr.New(oxserr.ConfigurationInvalid, "applied: Ms must be positive, got %v", ms)
	}
	u.h = b.Scale(1 / (mu0 * ms))
	return nil
}

func (u *Uniform) LocalH(i, k int) vec3.V {
	return u.h
}

// Ribbon is the H-field of a finite 2D charged sheet with endpoints
// (x0,y0)-(x1,y1), height ribHeight and relative charge relCharge.
type Ribbon struct {
	relCharge              float64
	x0, y0, x1, y1, height float64

	nx, nz int
	h      [][]vec3.V // [i][k], parallel+perp resolved into xy already
}

// NewRibbon builds a Ribbon field from the charge and geometry
// parameters named in §4.8 (relCharge is already divided by 4*pi, as
// RibbonZeeman's constructor does).
func NewRibbon(totalRelCharge, x0, y0, x1, y1, height float64) *Ribbon {
	return &Ribbon{relCharge: totalRelCharge / (4 * math.Pi), x0: x0, y0: y0, x1: x1, y1: y1, height: height}
}

func (r *Ribbon) SetCoords(nx, nz int, realCoord func(i, k int) (float64, float64)) error {
	if nx < 1 || nz < 1 {
		return oxserr.New(oxserr.ConfigurationInvalid, "applied: illegal ribbon mesh size nx=%d nz=%d", nx, nz)
	}
	r.nx, r.nz = nx, nz
	vparX, vparY := r.x1-r.x0, r.y1-r.y0
	riblength := math.Hypot(vparX, vparY)
	if riblength > 0 {
		vparX, vparY = vparX/riblength, vparY/riblength
	}
	vperpX, vperpY := -vparY, vparX

	r.h = make([][]vec3.V, nx)
	for i := 0; i < nx; i++ {
		r.h[i] = make([]vec3.V, nz)
		for k := 0; k < nz; k++ {
			x, z := realCoord(i, k)
			wx, wy := r.x0-x, r.y0-z
			dpar := wx*vparX + wy*vparY
			dperp := wx*vperpX + wy*vperpY
			hpar, hperp := r.fieldCalc(dpar, riblength, dperp)
			r.h[i][k] = vec3.V{
				X: hpar*vparX + hperp*vperpX,
				Y: hpar*vparY + hperp*vperpY,
			}
		}
	}
	return nil
}

// fieldCalc is RibbonZeeman::FieldCalc transcribed directly: the ribbon
// vertices are ({dpar,dpar+riblength}, dperp, {+/-height/2}); the
// out-of-plane coordinate crosses octant boundaries symmetrically, and
// the in-plane (x) range is split recursively when it crosses zero.
func (r *Ribbon) fieldCalc(dpar, riblength, dperp float64) (hpar, hperp float64) {
	const epsilon = 1e-13
	if dpar < 0 && dpar+riblength > 0 {
		hpara, hperpa := r.fieldCalc(dpar, -dpar, dperp)
		hparb, hperpb := r.fieldCalc(0, dpar+riblength, dperp)
		return hpara + hparb, hperpa + hperpb
	}

	radbot0sq := dpar*dpar + dperp*dperp
	radbot1sq := (dpar+riblength)*(dpar+riblength) + dperp*dperp
	radtop0 := math.Sqrt(radbot0sq + (r.height/2)*(r.height/2))
	radtop1 := math.Sqrt(radbot1sq + (r.height/2)*(r.height/2))

	switch {
	case radbot0sq < epsilon*epsilon:
		hpar = -1 / (epsilon * epsilon)
	case radbot1sq < epsilon*epsilon:
		hpar = 1 / (epsilon * epsilon)
	default:
		temp0 := r.height/2 + radtop0
		temp1 := r.height/2 + radtop1
		hpar = math.Log((temp1 * temp1 * radbot0sq) / (temp0 * temp0 * radbot1sq))
	}

	if math.Abs(dperp) < epsilon*epsilon && math.Abs(dpar) < epsilon*epsilon {
		hperp = 0
	} else {
		hperp = math.Atan2(math.Abs(dpar)*r.height, 2*math.Abs(dperp)*radtop0)
	}
	if !(math.Abs(dperp) < epsilon*epsilon && math.Abs(dpar+riblength) < epsilon*epsilon) {
		hperp -= math.Atan2(math.Abs(dpar+riblength)*r.height, 2*math.Abs(dperp)*radtop1)
	}
	hperp *= 2

	if dpar < 0 {
		hperp *= -1
	}
	if dperp < 0 {
		hperp *= -1
	}

	hpar *= r.relCharge
	hperp *= r.relCharge
	return hpar, hperp
}

func (r *Ribbon) SetNomField(ms float64, b vec3.V, _ int) error {
	// The ribbon's field shape is fixed by its geometry/charge; nominal
	// Ms/B are accepted for interface conformance but do not rescale it,
	// matching RibbonZeeman which never consults Ms or the nominal field.
	return nil
}

func (r *Ribbon) LocalH(i, k int) vec3.V {
	return r.h[i][k]
}

// Tie applies a prescribed fixed field inside a rectangular ribbon
// strip (x0,y0)-(x1,y1) of the given width, and zero outside.
type Tie struct {
	field                 vec3.V
	x0, y0, x1, y1, width float64
	nx, nz                int
	h                     [][]vec3.V
}

// NewTie builds a Tie field from its fixed internal field and the
// rectangular strip geometry named in §4.8.
func NewTie(field vec3.V, x0, y0, x1, y1, width float64) *Tie {
	return &Tie{field: field, x0: x0, y0: y0, x1: x1, y1: y1, width: width}
}

func (t *Tie) SetCoords(nx, nz int, realCoord func(i, k int) (float64, float64)) error {
	if nx < 1 || nz < 1 {
		return oxserr.New(oxserr.ConfigurationInvalid, "applied: illegal tie mesh size nx=%d nz=%d", nx, nz)
	}
	t.nx, t.nz = nx, nz
	vparX, vparY := t.x1-t.x0, t.y1-t.y0
	riblength := math.Hypot(vparX, vparY)
	if riblength > 0 {
		vparX, vparY = vparX/riblength, vparY/riblength
	}
	vperpX, vperpY := -vparY, vparX

	t.h = make([][]vec3.V, nx)
	for i := 0; i < nx; i++ {
		t.h[i] = make([]vec3.V, nz)
		for k := 0; k < nz; k++ {
			x, z := realCoord(i, k)
			wx, wy := x-t.x0, z-t.y0
			pardist := wx*vparX + wy*vparY
			perpdist := math.Abs(wx*vperpX + wy*vperpY)
			if 2*perpdist > t.width || pardist < 0 || pardist > riblength {
				t.h[i][k] = vec3.V{}
			} else {
				t.h[i][k] = t.field
			}
		}
	}
	return nil
}

func (t *Tie) SetNomField(ms float64, b vec3.V, _ int) error { return nil }

func (t *Tie) LocalH(i, k int) vec3.V {
	return t.h[i][k]
}

// Sample is one zero-order-hold data point for File/FileSequence: the
// full Nx-by-Nz field snapshot at a given sequence step.
type Sample struct {
	H [][]vec3.V // [i][k]
}

// File serves one fixed field snapshot to every step.
type File struct {
	sample Sample
}

// NewFile wraps an already-loaded field snapshot (loaded by package ovf
// or an equivalent external reader, per §6's "Excluded from the core"
// note on file formats).
func NewFile(sample Sample) *File { return &File{sample: sample} }

func (f *File) SetCoords(nx, nz int, _ func(i, k int) (float64, float64)) error {
	if len(f.sample.H) != nx || (nx > 0 && len(f.sample.H[0]) != nz) {
		return oxserr.New(oxserr.FileIO, "applied: loaded field snapshot size mismatch, want %dx%d", nx, nz)
	}
	return nil
}

func (f *File) SetNomField(ms float64, b vec3.V, stepIndex int) error { return nil }

func (f *File) LocalH(i, k int) vec3.V { return f.sample.H[i][k] }

// FileSequence selects one of several pre-loaded snapshots by step
// index, zero-order-hold: the last valid sample is reused once the
// sequence runs past its final entry.
type FileSequence struct {
	samples []Sample
	current int
}

// NewFileSequence wraps a step-indexed list of pre-loaded field
// snapshots.
func NewFileSequence(samples []Sample) *FileSequence {
	return &FileSequence{samples: samples}
}

func (fs *FileSequence) SetCoords(nx, nz int, _ func(i, k int) (float64, float64)) error {
	if len(fs.samples) == 0 {
		return oxserr.New(oxserr.FileIO, "applied: file sequence has no samples")
	}
	return nil
}

func (fs *FileSequence) SetNomField(ms float64, b vec3.V, stepIndex int) error {
	idx := stepIndex
	if idx < 0 {
		idx = 0
	}
	if idx >= len(fs.samples) {
		idx = len(fs.samples) - 1
	}
	fs.current = idx
	return nil
}

func (fs *FileSequence) LocalH(i, k int) vec3.V {
	return fs.samples[fs.current].H[i][k]
}

// Multi is a composite field: set_nom_field/get_local_h_field is applied
// to every sub-field and summed.
type Multi struct {
	subs []Field
}

// NewMulti composes several AppliedField instances additively.
func NewMulti(subs ...Field) *Multi { return &Multi{subs: subs} }

func (m *Multi) SetCoords(nx, nz int, realCoord func(i, k int) (float64, float64)) error {
	for _, s := range m.subs {
		if err := s.SetCoords(nx, nz, realCoord); err != nil {
			return err
		}
	}
	return nil
}

func (m *Multi) SetNomField(ms float64, b vec3.V, stepIndex int) error {
	for _, s := range m.subs {
		if err := s.SetNomField(ms, b, stepIndex); err != nil {
			return err
		}
	}
	return nil
}

func (m *Multi) LocalH(i, k int) vec3.V {
	var h vec3.V
	for _, s := range m.subs {
		h = h.Add(s.LocalH(i, k))
	}
	return h
}
